package telegram

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/samber/lo"

	feedDomain "github.com/reshetovitsme/mobile-portal/internal/modules/feed/domain"
	feedService "github.com/reshetovitsme/mobile-portal/internal/modules/feed/service"
	placeDomain "github.com/reshetovitsme/mobile-portal/internal/modules/place/domain"
	"github.com/reshetovitsme/mobile-portal/internal/modules/place/ldb"
	placeService "github.com/reshetovitsme/mobile-portal/internal/modules/place/service"
	portalErrors "github.com/reshetovitsme/mobile-portal/internal/shared/errors"
)

// maxItems caps the number of items listed in one reply.
const maxItems = 5

const helpText = `👋 Welcome to the Mobile Portal bot!

Available commands:
/help - Show this help message
/news - List news feeds
/news <feed> - Latest items of a news feed
/events - List event feeds
/events <feed> - Upcoming events of a feed
/departures <station code> - Live departures, e.g. /departures OXF
/arrivals <station code> - Live arrivals`

// Handler answers portal commands sent to the bot
type Handler struct {
	feeds  *feedService.Service
	places *placeService.Service
	logger *slog.Logger
}

// New creates a new Telegram handler
func New(feeds *feedService.Service, places *placeService.Service, logger *slog.Logger) *Handler {
	return &Handler{
		feeds:  feeds,
		places: places,
		logger: logger.With("component", "telegram"),
	}
}

// RegisterCommands registers bot commands
func (h *Handler) RegisterCommands(b *bot.Bot) {
	b.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypeExact, h.handle)
	b.RegisterHandler(bot.HandlerTypeMessageText, "/help", bot.MatchTypeExact, h.handle)
	b.RegisterHandler(bot.HandlerTypeMessageText, "/news", bot.MatchTypePrefix, h.handle)
	b.RegisterHandler(bot.HandlerTypeMessageText, "/events", bot.MatchTypePrefix, h.handle)
	b.RegisterHandler(bot.HandlerTypeMessageText, "/departures", bot.MatchTypePrefix, h.handle)
	b.RegisterHandler(bot.HandlerTypeMessageText, "/arrivals", bot.MatchTypePrefix, h.handle)
}

// HandleUpdate is the default handler; anything that is not a command gets the help text.
func (h *Handler) HandleUpdate(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.Chat.Type == "channel" {
		return
	}
	h.send(ctx, b, update.Message.Chat.ID, helpText)
}

func (h *Handler) handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	h.send(ctx, b, update.Message.Chat.ID, h.Reply(ctx, update.Message.Text))
}

func (h *Handler) send(ctx context.Context, b *bot.Bot, chatID int64, text string) {
	if _, err := b.SendMessage(ctx, &bot.SendMessageParams{ChatID: chatID, Text: text}); err != nil {
		h.logger.Error("Failed to send reply", "chat_id", chatID, "error", err)
	}
}

// Reply builds the answer to a command message.
func (h *Handler) Reply(ctx context.Context, text string) string {
	parts := strings.Fields(text)
	if len(parts) == 0 {
		return helpText
	}

	// Commands sent in groups carry the bot's name: /news@portal_bot
	command, _, _ := strings.Cut(parts[0], "@")
	args := parts[1:]

	switch command {
	case "/news":
		return h.feedReply(ctx, feedDomain.FeedTypeNews, args)
	case "/events":
		return h.feedReply(ctx, feedDomain.FeedTypeEvent, args)
	case "/departures":
		return h.boardReply(ctx, placeDomain.BoardTypeDepartures, args)
	case "/arrivals":
		return h.boardReply(ctx, placeDomain.BoardTypeArrivals, args)
	default:
		return helpText
	}
}

func (h *Handler) feedReply(ctx context.Context, feedType feedDomain.FeedType, args []string) string {
	if len(args) == 0 {
		feeds, err := h.feeds.ListFeeds(ctx, feedType)
		if err != nil {
			h.logger.Error("Failed to list feeds", "type", feedType, "error", err)
			return "❌ Feeds are unavailable at the moment."
		}
		if len(feeds) == 0 {
			return "📭 There are no feeds to show."
		}

		var text strings.Builder
		text.WriteString("📋 Feeds:\n\n")
		for _, f := range feeds {
			fmt.Fprintf(&text, "%s: %s %s\n", f.Title, strings.TrimSuffix(feedType.Prefix(), "/"), f.Slug)
		}
		return text.String()
	}

	feed, err := h.feeds.GetFeed(ctx, feedType, args[0])
	if errors.Is(err, portalErrors.ErrNotFound) {
		return fmt.Sprintf("❌ Feed not found: %s", args[0])
	}
	if err != nil {
		h.logger.Error("Failed to get feed", "slug", args[0], "error", err)
		return "❌ Feeds are unavailable at the moment."
	}

	items, err := h.feeds.ListItems(ctx, feed)
	if err != nil {
		h.logger.Error("Failed to list items", "feed_id", feed.ID, "error", err)
		return "❌ Feeds are unavailable at the moment."
	}
	if len(items) == 0 {
		return fmt.Sprintf("📭 %s has nothing to show.", feed.Title)
	}

	var text strings.Builder
	fmt.Fprintf(&text, "📰 %s\n\n", feed.Title)
	for _, item := range lo.Slice(items, 0, maxItems) {
		text.WriteString("• " + item.Title)
		if item.DTStart != nil {
			text.WriteString(" (" + item.DTStart.Format("Mon 02 Jan 15:04") + ")")
		}
		text.WriteString("\n")
	}
	return text.String()
}

func (h *Handler) boardReply(ctx context.Context, board placeDomain.BoardType, args []string) string {
	if len(args) == 0 {
		return fmt.Sprintf("Usage: /%s <station code>\nExample: /%s OXF", board, board)
	}

	entity, err := h.places.GetWithMetadata(ctx, placeDomain.IdentifierCRS+":"+args[0], board)
	if errors.Is(err, portalErrors.ErrNotFound) {
		return fmt.Sprintf("❌ Station not found: %s", args[0])
	}
	if err != nil {
		h.logger.Error("Failed to get station", "crs", args[0], "error", err)
		return "❌ Live information is unavailable at the moment."
	}

	view := ldb.BoardFromMetadata(entity.Metadata, board)
	if view == nil || view.Error {
		return fmt.Sprintf("❌ Live information for %s is unavailable at the moment.", entity.Title)
	}

	var text strings.Builder
	title := "Departures"
	if board == placeDomain.BoardTypeArrivals {
		title = "Arrivals"
	}
	fmt.Fprintf(&text, "🚆 %s at %s", title, lo.CoalesceOrEmpty(view.LocationName, entity.Title))
	if view.GeneratedAt != "" {
		fmt.Fprintf(&text, " (%s)", view.GeneratedAt)
	}
	text.WriteString("\n\n")

	for _, m := range view.Messages {
		text.WriteString("⚠️ " + m + "\n")
	}
	if len(view.Services) == 0 {
		text.WriteString("There are no services at the moment.")
		return text.String()
	}

	for _, svc := range view.Services {
		place := svc.Destination
		if board == placeDomain.BoardTypeArrivals {
			place = "from " + svc.Origin
		}
		fmt.Fprintf(&text, "%s %s %s", svc.Scheduled, place, svc.Expected)
		if svc.Platform != "" {
			fmt.Fprintf(&text, " [%s]", svc.Platform)
		}
		text.WriteString("\n")
	}
	return text.String()
}
