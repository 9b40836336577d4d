package notify

import (
	"context"
	"errors"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/samber/oops"
)

// Sender is satisfied by *bot.Bot.
type Sender interface {
	SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error)
}

// Telegram posts notifications to operator chats
type Telegram struct {
	sender  Sender
	chatIDs []int64
}

func NewTelegram(sender Sender, chatIDs []int64) *Telegram {
	return &Telegram{sender: sender, chatIDs: chatIDs}
}

func (t *Telegram) Name() string {
	return "telegram"
}

func (t *Telegram) Notify(ctx context.Context, msg Message) error {
	var errs []error
	for _, chatID := range t.chatIDs {
		_, err := t.sender.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   msg.Subject + "\n\n" + msg.Body,
		})
		if err != nil {
			errs = append(errs, oops.With("chat_id", chatID).Wrap(err))
		}
	}
	return errors.Join(errs...)
}
