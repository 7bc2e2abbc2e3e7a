package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTranscription(t *testing.T) {
	tr, err := NewTranscription(42, "maria", "Gastei 50 reais no almoço", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(42), tr.UserID)
	assert.False(t, tr.CreatedAt.IsZero())

	_, err = NewTranscription(42, "maria", "   ", nil, nil)
	require.ErrorIs(t, err, ErrValidation)

	negative := -3
	_, err = NewTranscription(42, "maria", "oi", &negative, nil)
	require.ErrorIs(t, err, ErrValidation)

	_, err = NewTranscription(0, "maria", "oi", nil, nil)
	require.ErrorIs(t, err, ErrValidation)
}

func TestTranscriptionWordCount(t *testing.T) {
	tr, err := NewTranscription(1, "u", "Gastei 50 reais no almoço", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 5, tr.WordCount())
}

func TestTranscriptionIsRecent(t *testing.T) {
	tr, err := NewTranscription(1, "u", "oi", nil, nil)
	require.NoError(t, err)
	assert.True(t, tr.IsRecent())

	tr.CreatedAt = time.Now().Add(-25 * time.Hour)
	assert.False(t, tr.IsRecent())
}

func TestTranscriptionSummary(t *testing.T) {
	tr, err := NewTranscription(1, "u", "Gastei 50 reais no almoço", nil, nil)
	require.NoError(t, err)

	assert.Equal(t, "Gastei 50 reais no almoço", tr.Summary(100))
	assert.Equal(t, "Gastei...", tr.Summary(6))
}
