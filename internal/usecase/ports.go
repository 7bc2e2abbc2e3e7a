package usecase

import (
	"context"

	"github.com/fbarbosa/granavoz/internal/models"
)

// Transcriber converts raw audio bytes into plain text.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, mimeType, fileName string) (string, error)
}

// FinancialExtractor pulls structured financial data out of free text.
type FinancialExtractor interface {
	Extract(ctx context.Context, text string) (*models.RawExtraction, error)
}

// AudioFetcher resolves a provider-hosted audio URL to its bytes.
type AudioFetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}
