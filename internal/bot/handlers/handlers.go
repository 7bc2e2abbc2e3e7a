package handlers

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"github.com/fbarbosa/granavoz/internal/models"
	"github.com/fbarbosa/granavoz/internal/usecase"
)

// UseCases bundles the application operations the handlers orchestrate.
type UseCases struct {
	Transcribe *usecase.TranscribeAudio
	Extract    *usecase.ExtractFinancialData
	Save       *usecase.SaveFinancialData
	Summary    *usecase.FinancialSummary
}

type Handlers struct {
	api      *tgbotapi.BotAPI
	usecases *UseCases
	log      zerolog.Logger
}

func New(api *tgbotapi.BotAPI, usecases *UseCases, log zerolog.Logger) *Handlers {
	return &Handlers{
		api:      api,
		usecases: usecases,
		log:      log,
	}
}

func (h *Handlers) HandleCommand(ctx context.Context, msg *tgbotapi.Message) {
	switch msg.Command() {
	case "start":
		h.handleStart(msg)
	case "help":
		h.handleHelp(msg)
	case "resumo":
		h.handleSummary(ctx, msg)
	default:
		h.sendMessage(msg.Chat.ID, "Comando desconhecido. Use /help para ver o que eu sei fazer.")
	}
}

// HandleText answers any non-audio message with a static prompt.
func (h *Handlers) HandleText(msg *tgbotapi.Message) {
	h.sendMessage(msg.Chat.ID, "🎙️ Me envie uma mensagem de voz contando seus gastos e receitas, que eu organizo tudo para você.")
}

func (h *Handlers) handleStart(msg *tgbotapi.Message) {
	name := msg.From.FirstName
	if name == "" {
		name = msg.From.UserName
	}
	h.sendMessage(msg.Chat.ID, "👋 Olá, "+name+"!\n\n"+
		"Eu transformo mensagens de voz em registros financeiros. "+
		"Fale algo como \"gastei 50 reais no almoço\" e eu transcrevo, "+
		"identifico as transações e guardo tudo.\n\n"+
		"Use /help para mais detalhes.")
}

func (h *Handlers) handleHelp(msg *tgbotapi.Message) {
	h.sendMessage(msg.Chat.ID, "📖 *Como usar*\n\n"+
		"🎙️ Envie uma mensagem de voz ou um arquivo de áudio descrevendo gastos, receitas, contas ou metas.\n"+
		"📊 /resumo — resumo financeiro dos últimos 30 dias.\n\n"+
		"Exemplos:\n"+
		"• \"Gastei 50 reais no almoço\"\n"+
		"• \"Recebi 2000 de salário\"\n"+
		"• \"Quero juntar 5000 para viajar\"")
}

func (h *Handlers) handleSummary(ctx context.Context, msg *tgbotapi.Message) {
	summary, err := h.usecases.Summary.Execute(ctx, msg.From.ID, nil, nil)
	if err != nil {
		h.log.Error().Err(err).Int64("user_id", msg.From.ID).Msg("summary failed")
		h.sendMessage(msg.Chat.ID, genericErrorReply)
		return
	}
	h.sendMessage(msg.Chat.ID, formatSummary(summary))
}

func (h *Handlers) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = "Markdown"
	if _, err := h.api.Send(msg); err != nil {
		h.log.Error().Err(err).Int64("chat_id", chatID).Msg("failed to send message")
	}
}

func userFromMessage(msg *tgbotapi.Message) models.User {
	return models.User{
		ID:        msg.From.ID,
		Username:  msg.From.UserName,
		FirstName: msg.From.FirstName,
	}
}
