package usecase

import (
	"context"
	"fmt"
	"path"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/fbarbosa/granavoz/internal/models"
	"github.com/fbarbosa/granavoz/internal/repository"
)

type TranscribeInput struct {
	Audio     models.AudioFile
	User      models.User
	Timestamp time.Time
}

type TranscriptionResult struct {
	Text      string
	FileID    string
	Duration  *int
	MIMEType  string
	Size      int64
	Timestamp time.Time
	User      models.User
}

// TranscribeAudio validates an audio reference, downloads it, transcribes it
// and records the transcript.
type TranscribeAudio struct {
	fetcher        AudioFetcher
	transcriber    Transcriber
	transcriptions repository.TranscriptionRepository
	log            zerolog.Logger
}

func NewTranscribeAudio(fetcher AudioFetcher, transcriber Transcriber, transcriptions repository.TranscriptionRepository, log zerolog.Logger) *TranscribeAudio {
	return &TranscribeAudio{
		fetcher:        fetcher,
		transcriber:    transcriber,
		transcriptions: transcriptions,
		log:            log,
	}
}

func (uc *TranscribeAudio) Execute(ctx context.Context, input TranscribeInput) (*TranscriptionResult, error) {
	log := uc.log.With().
		Str("run_id", uuid.NewString()).
		Int64("user_id", input.User.ID).
		Str("file_id", input.Audio.FileID).
		Logger()

	// Format and size checks happen before any network call.
	if err := input.Audio.Validate(); err != nil {
		log.Warn().Err(err).Msg("audio rejected")
		return nil, err
	}

	audio, err := uc.fetcher.Fetch(ctx, input.Audio.URL)
	if err != nil {
		log.Error().Err(err).Msg("audio download failed")
		return nil, fmt.Errorf("failed to fetch audio: %w", err)
	}

	fileName := path.Base(input.Audio.URL)
	if fileName == "" || fileName == "." || fileName == "/" {
		fileName = input.Audio.FileID + ".ogg"
	}

	text, err := uc.transcriber.Transcribe(ctx, audio, input.Audio.MIMEType, fileName)
	if err != nil {
		log.Error().Err(err).Msg("transcription failed")
		return nil, fmt.Errorf("transcription failed: %w", err)
	}

	duration := durationFromMetadata(input.Audio)
	transcription, err := models.NewTranscription(input.User.ID, input.User.Username, text, duration, map[string]any{
		"file_id":   input.Audio.FileID,
		"mime_type": input.Audio.MIMEType,
		"size":      input.Audio.Size,
	})
	if err != nil {
		log.Error().Err(err).Msg("transcription entity invalid")
		return nil, err
	}

	// The log row is best-effort; the transcript itself already succeeded.
	if _, err := uc.transcriptions.Save(ctx, transcription); err != nil {
		log.Warn().Err(err).Msg("could not persist transcription log")
	}

	log.Info().Int("words", transcription.WordCount()).Msg("audio transcribed")

	return &TranscriptionResult{
		Text:      text,
		FileID:    input.Audio.FileID,
		Duration:  duration,
		MIMEType:  input.Audio.MIMEType,
		Size:      input.Audio.Size,
		Timestamp: input.Timestamp,
		User:      input.User,
	}, nil
}

func durationFromMetadata(audio models.AudioFile) *int {
	// Telegram reports duration on the message, not the file; callers stash
	// it on the AudioFile via DurationSeconds when available.
	if audio.DurationSeconds > 0 {
		d := audio.DurationSeconds
		return &d
	}
	return nil
}
