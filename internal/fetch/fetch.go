package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/fbarbosa/granavoz/internal/models"
)

// HTTPFetcher downloads audio payloads from provider-hosted URLs.
// Local file paths are deliberately not supported.
type HTTPFetcher struct {
	client *http.Client
}

func NewHTTPFetcher(client *http.Client) *HTTPFetcher {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPFetcher{client: client}
}

func (f *HTTPFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		return nil, fmt.Errorf("fetching local file paths is not supported: %q", url)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build audio request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download audio: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to download audio: unexpected status %d", resp.StatusCode)
	}

	// +1 so a payload right at the cap does not trip the limit check.
	body, err := io.ReadAll(io.LimitReader(resp.Body, models.MaxAudioSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read audio body: %w", err)
	}
	if len(body) > models.MaxAudioSize {
		return nil, fmt.Errorf("%w: download exceeded the %d byte limit", models.ErrAudioTooLarge, models.MaxAudioSize)
	}

	return body, nil
}
