package telegram

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"time"

	"menu-planner/internal/config"
	"menu-planner/internal/planner"

	"github.com/go-chi/chi/v5"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Sender is the part of the Telegram API the bot writes through.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Bot wraps the Telegram API and the users' planners.
type Bot struct {
	api      *tgbotapi.BotAPI
	sender   Sender
	planners *planner.Registry
	cfg      *config.Config
	logger   *slog.Logger
}

// NewBot initializes the Telegram Bot and sets the Webhook.
func NewBot(cfg *config.Config, planners *planner.Registry, logger *slog.Logger) (*Bot, error) {
	if err := cfg.ValidateTelegram(); err != nil {
		return nil, fmt.Errorf("telegram config: %w", err)
	}

	bot, err := tgbotapi.NewBotAPI(cfg.Telegram.BotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram api: %w", err)
	}

	logger.Info("telegram authorized", slog.String("account", bot.Self.UserName))

	webhookURL := cfg.Telegram.WebhookURL
	wh, err := tgbotapi.NewWebhook(webhookURL)
	if err != nil {
		return nil, fmt.Errorf("invalid webhook url %s: %w", webhookURL, err)
	}
	resp, err := bot.Request(wh)
	if err != nil {
		return nil, fmt.Errorf("failed to set webhook to %s: %w", webhookURL, err)
	}
	logger.Info("telegram webhook set", slog.String("description", resp.Description))

	return &Bot{
		api:      bot,
		sender:   bot,
		planners: planners,
		cfg:      cfg,
		logger:   logger,
	}, nil
}

// RegisterHandlers mounts the webhook endpoint on r.
func (b *Bot) RegisterHandlers(r chi.Router) {
	r.Post("/webhook", b.handleWebhook)
}

func (b *Bot) handleWebhook(w http.ResponseWriter, r *http.Request) {
	update, err := b.api.HandleUpdate(r)
	if err != nil {
		b.logger.Warn("error parsing update", slog.String("error", err.Error()))
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	w.WriteHeader(http.StatusOK)

	if update.Message == nil || update.Message.From == nil {
		return
	}

	if !b.isAllowed(update.Message.From.ID) {
		b.logger.Warn("unauthorized access attempt",
			slog.Int64("user_id", update.Message.From.ID),
			slog.String("username", update.Message.From.UserName))
		return
	}

	go b.processMessage(update.Message)
}

func (b *Bot) isAllowed(userID int64) bool {
	return slices.Contains(b.cfg.Telegram.AllowedUserIDs, userID)
}

func (b *Bot) processMessage(msg *tgbotapi.Message) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	start := time.Now()
	out := b.execute(ctx, msg.From.ID, msg.Text)
	b.logger.Info("command handled",
		slog.Int64("user_id", msg.From.ID),
		slog.String("command", firstWord(msg.Text)),
		slog.Duration("latency", time.Since(start)))

	if _, err := b.sender.Send(buildMessage(msg.Chat.ID, out)); err != nil {
		b.logger.Error("failed to send reply", slog.String("error", err.Error()))
	}
}

// buildMessage turns a reply into a plain-text message, with a WhatsApp
// button when the reply carries a share link.
func buildMessage(chatID int64, out reply) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(chatID, out.Text)
	msg.DisableWebPagePreview = true
	if out.ShareURL != "" {
		keyboard := tgbotapi.NewInlineKeyboardMarkup(
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonURL("📤 Enviar no WhatsApp", out.ShareURL),
			),
		)
		msg.ReplyMarkup = keyboard
	}
	return msg
}

func firstWord(s string) string {
	cmd, _ := parseCommand(s)
	return cmd
}
