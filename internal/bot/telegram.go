package bot

import (
	"context"
	"fmt"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type TelegramBot struct {
	bot     *tgbotapi.BotAPI
	handler *Handler
	chatID  int64
}

// NewTelegramBot connects to Telegram. When chatID is set, the bot only
// answers commands from that chat and posts scheduled reports there.
func NewTelegramBot(token string, chatID int64, fantasyService FantasyService) (*TelegramBot, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("connecting to telegram: %w", err)
	}

	return &TelegramBot{
		bot:     bot,
		handler: NewHandler(fantasyService),
		chatID:  chatID,
	}, nil
}

func (t *TelegramBot) Start(ctx context.Context) error {
	slog.Info("Authorized on account", "username", t.bot.Self.UserName, "chat_id", t.chatID)
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := t.bot.GetUpdatesChan(u)
	defer t.bot.StopReceivingUpdates()

	for {
		select {
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			t.handleUpdate(ctx, update)
		case <-ctx.Done():
			return nil
		}
	}
}

func (t *TelegramBot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.Message == nil || !update.Message.IsCommand() {
		return
	}
	if !t.accepts(update.Message.Chat.ID) {
		slog.Info("Ignoring command from unknown chat", "chat_id", update.Message.Chat.ID)
		return
	}

	msg := t.handler.HandleCommand(ctx, update)
	if _, err := t.bot.Send(msg); err != nil {
		slog.Error("Error sending message", "error", err, "command", update.Message.Command())
	}
}

func (t *TelegramBot) accepts(chatID int64) bool {
	return t.chatID == 0 || t.chatID == chatID
}

func (t *TelegramBot) SendMessage(text string) error {
	if t.chatID == 0 {
		return fmt.Errorf("chat ID not set")
	}

	msg := tgbotapi.NewMessage(t.chatID, text)
	msg.ParseMode = "Markdown"
	if _, err := t.bot.Send(msg); err != nil {
		return fmt.Errorf("sending to chat %d: %w", t.chatID, err)
	}
	return nil
}
