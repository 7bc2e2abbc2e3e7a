package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/fbarbosa/granavoz/internal/database"
	"github.com/fbarbosa/granavoz/internal/models"
)

type PgExtractionLogRepository struct {
	db *database.DB
}

func NewExtractionLogRepository(db *database.DB) *PgExtractionLogRepository {
	return &PgExtractionLogRepository{db: db}
}

func (r *PgExtractionLogRepository) Save(ctx context.Context, userID int64, transcriptionText string, raw *models.RawExtraction, confidence float64) (int64, error) {
	payload, err := json.Marshal(raw)
	if err != nil {
		return 0, fmt.Errorf("failed to encode extracted data: %w", err)
	}

	var id int64
	err = r.db.Pool.QueryRow(ctx,
		`INSERT INTO finance_extraction_logs (user_id, transcription_text, extracted_data, confidence)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		userID, transcriptionText, payload, confidence,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to save extraction log: %w", err)
	}
	return id, nil
}
