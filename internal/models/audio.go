package models

import (
	"errors"
	"fmt"
)

// MaxAudioSize is the largest audio payload accepted for transcription.
// It matches the Telegram bot API download ceiling.
const MaxAudioSize = 20 * 1024 * 1024

var (
	ErrUnsupportedFormat = errors.New("unsupported audio format")
	ErrAudioTooLarge     = errors.New("audio file too large")
)

var supportedAudioMIMETypes = map[string]struct{}{
	"audio/ogg":    {},
	"audio/oga":    {},
	"audio/opus":   {},
	"audio/mpeg":   {},
	"audio/mp3":    {},
	"audio/mp4":    {},
	"audio/x-m4a":  {},
	"audio/m4a":    {},
	"audio/wav":    {},
	"audio/x-wav":  {},
	"audio/webm":   {},
	"audio/aac":    {},
	"audio/flac":   {},
	"audio/x-flac": {},
}

// AudioFile is a transient reference to a voice/audio payload. It is never
// persisted; it only exists to be validated and fetched.
type AudioFile struct {
	FileID   string `json:"file_id"`
	URL      string `json:"url"`
	MIMEType string `json:"mime_type"`
	Size     int64  `json:"size"`
	// DurationSeconds is reported by the messaging provider, 0 when unknown.
	DurationSeconds int `json:"duration_seconds"`
}

// Validate rejects unsupported formats and oversized payloads before any
// network call is made. Each violation gets its own error.
func (f AudioFile) Validate() error {
	if _, ok := supportedAudioMIMETypes[f.MIMEType]; !ok {
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, f.MIMEType)
	}
	if f.Size > MaxAudioSize {
		return fmt.Errorf("%w: %d bytes exceeds the %d byte limit", ErrAudioTooLarge, f.Size, MaxAudioSize)
	}
	return nil
}
