package handlers

import (
	"context"
	"errors"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/fbarbosa/granavoz/internal/models"
	"github.com/fbarbosa/granavoz/internal/usecase"
)

const genericErrorReply = "😕 Algo deu errado ao processar sua mensagem. Tente novamente em instantes."

// HandleVoice runs the full pipeline for a voice message.
func (h *Handlers) HandleVoice(ctx context.Context, msg *tgbotapi.Message) {
	voice := msg.Voice
	mimeType := voice.MimeType
	if mimeType == "" {
		mimeType = "audio/ogg"
	}
	h.runPipeline(ctx, msg, models.AudioFile{
		FileID:          voice.FileID,
		MIMEType:        mimeType,
		Size:            int64(voice.FileSize),
		DurationSeconds: voice.Duration,
	})
}

// HandleAudio runs the same pipeline for an audio file message.
func (h *Handlers) HandleAudio(ctx context.Context, msg *tgbotapi.Message) {
	audio := msg.Audio
	h.runPipeline(ctx, msg, models.AudioFile{
		FileID:          audio.FileID,
		MIMEType:        audio.MimeType,
		Size:            int64(audio.FileSize),
		DurationSeconds: audio.Duration,
	})
}

// runPipeline: download → transcribe → extract → persist → reply. Any error
// anywhere yields the generic notice; the reply lists only what was persisted.
func (h *Handlers) runPipeline(ctx context.Context, msg *tgbotapi.Message, audio models.AudioFile) {
	h.sendMessage(msg.Chat.ID, "🎙️ Áudio recebido, processando...")

	user := userFromMessage(msg)
	log := h.log.With().Int64("user_id", user.ID).Str("file_id", audio.FileID).Logger()

	// Reject bad format or size before resolving the file.
	if err := audio.Validate(); err != nil {
		log.Warn().Err(err).Msg("audio rejected")
		h.sendMessage(msg.Chat.ID, rejectionReply(err))
		return
	}

	url, err := h.api.GetFileDirectURL(audio.FileID)
	if err != nil {
		log.Error().Err(err).Msg("failed to resolve file URL")
		h.sendMessage(msg.Chat.ID, genericErrorReply)
		return
	}
	audio.URL = url

	transcription, err := h.usecases.Transcribe.Execute(ctx, usecase.TranscribeInput{
		Audio:     audio,
		User:      user,
		Timestamp: msg.Time(),
	})
	if err != nil {
		log.Error().Err(err).Msg("transcription step failed")
		h.sendMessage(msg.Chat.ID, rejectionReply(err))
		return
	}

	data, err := h.usecases.Extract.Execute(ctx, transcription.Text, user)
	if err != nil {
		log.Error().Err(err).Msg("extraction step failed")
		h.sendMessage(msg.Chat.ID, genericErrorReply)
		return
	}

	result, err := h.usecases.Save.Execute(ctx, data, user)
	if err != nil {
		log.Error().Err(err).Msg("persistence step failed")
		h.sendMessage(msg.Chat.ID, genericErrorReply)
		return
	}

	h.sendMessage(msg.Chat.ID, formatPipelineReply(transcription.Text, data, result))
}

// rejectionReply names the violated constraint for format/size rejections and
// falls back to the generic notice for everything else.
func rejectionReply(err error) string {
	switch {
	case errors.Is(err, models.ErrUnsupportedFormat):
		return "🚫 Esse formato de áudio não é suportado. Envie uma mensagem de voz ou um arquivo de áudio comum (ogg, mp3, m4a, wav)."
	case errors.Is(err, models.ErrAudioTooLarge):
		return "🚫 O áudio é grande demais. O limite é de 20 MB."
	default:
		return genericErrorReply
	}
}
