package models

import (
	"strings"
	"time"
)

// Transcription is one transcribed voice message, persisted as a log row.
type Transcription struct {
	ID            int64          `json:"id"`
	UserID        int64          `json:"user_id"`
	Username      string         `json:"username"`
	Text          string         `json:"text"`
	AudioDuration *int           `json:"audio_duration,omitempty"`
	Metadata      map[string]any `json:"metadata,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
}

func NewTranscription(userID int64, username, text string, audioDuration *int, metadata map[string]any) (*Transcription, error) {
	tr := &Transcription{
		UserID:        userID,
		Username:      username,
		Text:          strings.TrimSpace(text),
		AudioDuration: audioDuration,
		Metadata:      metadata,
		CreatedAt:     time.Now(),
	}
	if err := tr.validate(); err != nil {
		return nil, err
	}
	return tr, nil
}

func (t *Transcription) validate() error {
	if t.UserID == 0 {
		return validationErrorf("transcription requires a user")
	}
	if t.Text == "" {
		return validationErrorf("transcription text must not be empty")
	}
	if t.AudioDuration != nil && *t.AudioDuration < 0 {
		return validationErrorf("audio duration must not be negative, got %d", *t.AudioDuration)
	}
	return nil
}

func (t *Transcription) WordCount() int {
	return len(strings.Fields(t.Text))
}

func (t *Transcription) IsRecent() bool {
	return time.Since(t.CreatedAt) < 24*time.Hour
}

// Summary returns the text truncated to max runes, with an ellipsis when cut.
func (t *Transcription) Summary(max int) string {
	runes := []rune(t.Text)
	if len(runes) <= max {
		return t.Text
	}
	return string(runes[:max]) + "..."
}
