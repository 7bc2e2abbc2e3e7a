package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fbarbosa/granavoz/internal/models"
)

func TestHTTPFetcher(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ogg-bytes"))
	}))
	defer srv.Close()

	f := NewHTTPFetcher(srv.Client())
	data, err := f.Fetch(context.Background(), srv.URL+"/file/voice.oga")
	require.NoError(t, err)
	assert.Equal(t, []byte("ogg-bytes"), data)
}

func TestHTTPFetcherRejectsLocalPaths(t *testing.T) {
	f := NewHTTPFetcher(nil)

	for _, path := range []string{"/tmp/voice.oga", "voice.oga", "file:///tmp/voice.oga"} {
		_, err := f.Fetch(context.Background(), path)
		require.ErrorContains(t, err, "not supported", "path %q", path)
	}
}

func TestHTTPFetcherRejectsBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	f := NewHTTPFetcher(srv.Client())
	_, err := f.Fetch(context.Background(), srv.URL)
	require.ErrorContains(t, err, "unexpected status 404")
}

func TestHTTPFetcherEnforcesSizeCeiling(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		big := make([]byte, models.MaxAudioSize+1)
		_, _ = w.Write(big)
	}))
	defer srv.Close()

	f := NewHTTPFetcher(srv.Client())
	_, err := f.Fetch(context.Background(), srv.URL)
	require.ErrorIs(t, err, models.ErrAudioTooLarge)
}
