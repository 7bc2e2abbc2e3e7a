package bot

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"github.com/fbarbosa/granavoz/internal/bot/handlers"
)

type Bot struct {
	api      *tgbotapi.BotAPI
	handlers *handlers.Handlers
	log      zerolog.Logger
}

func New(api *tgbotapi.BotAPI, h *handlers.Handlers, log zerolog.Logger) *Bot {
	return &Bot{
		api:      api,
		handlers: h,
		log:      log,
	}
}

func (b *Bot) Start(ctx context.Context) error {
	b.log.Info().Str("account", b.api.Self.UserName).Msg("authorized")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case update := <-updates:
			go b.handleUpdate(ctx, update)
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	msg := update.Message
	if msg == nil || msg.From == nil {
		return
	}

	switch {
	case msg.IsCommand():
		b.handlers.HandleCommand(ctx, msg)
	case msg.Voice != nil:
		b.handlers.HandleVoice(ctx, msg)
	case msg.Audio != nil:
		b.handlers.HandleAudio(ctx, msg)
	default:
		b.handlers.HandleText(msg)
	}
}
