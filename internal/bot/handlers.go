package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/omarshaarawi/sleeperboard/internal/service"
)

const helpText = "Available commands:\n" +
	"/top - Top performers this week\n" +
	"/leaders [points|yards|touchdowns] - Team leaderboards\n" +
	"/whohas <player> - Check which team has a player\n" +
	"/refresh - Reload league data\n" +
	"/status - Show when data was last loaded"

// FantasyService is what the bot needs from the dashboard service.
type FantasyService interface {
	Refresh(ctx context.Context) error
	GetStatus() string
	GetTopPerformers() (string, error)
	GetLeaderboard(category string) (string, error)
	GetWeeklyReport() (string, error)
	WhoHas(playerName string) (string, error)
}

type Handler struct {
	fantasyService FantasyService
}

func NewHandler(fantasyService FantasyService) *Handler {
	return &Handler{fantasyService: fantasyService}
}

func (h *Handler) HandleCommand(ctx context.Context, update tgbotapi.Update) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(update.Message.Chat.ID, "")
	command := strings.ToLower(update.Message.Command())
	args := update.Message.CommandArguments()
	msg.ParseMode = "Markdown"

	msg.Text = h.respond(ctx, command, args)
	return msg
}

func (h *Handler) respond(ctx context.Context, command, args string) string {
	switch command {
	case "start":
		return "Welcome to Sleeperboard! Use /help to see available commands."
	case "help":
		return helpText
	case "top":
		return reply(h.fantasyService.GetTopPerformers())
	case "leaders":
		return h.handleLeaders(args)
	case "whohas":
		return h.handleWhoHas(args)
	case "refresh":
		return h.handleRefresh(ctx)
	case "status":
		return h.fantasyService.GetStatus()
	default:
		return "Unknown command. Use /help to see available commands."
	}
}

func (h *Handler) handleLeaders(args string) string {
	if strings.TrimSpace(args) == "" {
		return reply(h.fantasyService.GetWeeklyReport())
	}
	text, err := h.fantasyService.GetLeaderboard(args)
	if errors.Is(err, service.ErrUnknownCategory) {
		return "Unknown category. Usage: /leaders [points|yards|touchdowns]"
	}
	return reply(text, err)
}

func (h *Handler) handleWhoHas(args string) string {
	if strings.TrimSpace(args) == "" {
		return "Please provide a player name. Usage: /whohas <player name>"
	}
	return reply(h.fantasyService.WhoHas(args))
}

func (h *Handler) handleRefresh(ctx context.Context) string {
	err := h.fantasyService.Refresh(ctx)
	switch {
	case errors.Is(err, service.ErrRefreshInProgress):
		return "⏳ A refresh is already running."
	case err != nil:
		return fmt.Sprintf("⚠️ %v", err)
	default:
		return "✅ League data refreshed.\n\n" + h.fantasyService.GetStatus()
	}
}

func reply(text string, err error) string {
	if errors.Is(err, service.ErrNoSnapshot) {
		return "League data is not loaded yet. Try /refresh."
	}
	if err != nil {
		return fmt.Sprintf("Error: %v", err)
	}
	return text
}
