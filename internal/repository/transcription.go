package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/fbarbosa/granavoz/internal/database"
	"github.com/fbarbosa/granavoz/internal/models"
)

type PgTranscriptionRepository struct {
	db *database.DB
}

func NewTranscriptionRepository(db *database.DB) *PgTranscriptionRepository {
	return &PgTranscriptionRepository{db: db}
}

func (r *PgTranscriptionRepository) Save(ctx context.Context, tr *models.Transcription) (*models.Transcription, error) {
	err := r.db.Pool.QueryRow(ctx,
		`INSERT INTO transcription_logs (user_id, username, text, audio_duration, metadata)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at`,
		tr.UserID, tr.Username, tr.Text, tr.AudioDuration, tr.Metadata,
	).Scan(&tr.ID, &tr.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to save transcription: %w", err)
	}
	return tr, nil
}

func (r *PgTranscriptionRepository) FindByID(ctx context.Context, id int64) (*models.Transcription, error) {
	tr := &models.Transcription{}
	err := r.db.Pool.QueryRow(ctx,
		`SELECT id, user_id, username, text, audio_duration, metadata, created_at
		 FROM transcription_logs WHERE id = $1`,
		id,
	).Scan(&tr.ID, &tr.UserID, &tr.Username, &tr.Text, &tr.AudioDuration, &tr.Metadata, &tr.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("transcription %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find transcription: %w", err)
	}
	return tr, nil
}

func (r *PgTranscriptionRepository) ListByUser(ctx context.Context, userID int64, limit int) ([]*models.Transcription, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT id, user_id, username, text, audio_duration, metadata, created_at
		 FROM transcription_logs WHERE user_id = $1
		 ORDER BY created_at DESC LIMIT $2`,
		userID, clampLimit(limit),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list transcriptions: %w", err)
	}
	defer rows.Close()

	var trs []*models.Transcription
	for rows.Next() {
		tr := &models.Transcription{}
		if err := rows.Scan(&tr.ID, &tr.UserID, &tr.Username, &tr.Text, &tr.AudioDuration, &tr.Metadata, &tr.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan transcription: %w", err)
		}
		trs = append(trs, tr)
	}
	return trs, rows.Err()
}
