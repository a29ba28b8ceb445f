package notify

import (
	"context"
	"errors"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// TelegramSink posts messages to one chat.
type TelegramSink struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

// NewTelegramSink authorizes the bot. endpoint overrides tgbotapi.APIEndpoint when set.
func NewTelegramSink(token string, chatID int64, endpoint string) (*TelegramSink, error) {
	if chatID == 0 {
		return nil, errors.New("telegram chat id not set")
	}
	if endpoint == "" {
		endpoint = tgbotapi.APIEndpoint
	}
	bot, err := tgbotapi.NewBotAPIWithAPIEndpoint(token, endpoint)
	if err != nil {
		return nil, fmt.Errorf("telegram: %w", err)
	}
	return &TelegramSink{bot: bot, chatID: chatID}, nil
}

func (t *TelegramSink) Name() string {
	return "telegram"
}

// Send posts msg as plain text. The bot client carries its own timeout.
func (t *TelegramSink) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	text := msg.Text
	if msg.Subject != "" {
		text = msg.Subject + "\n" + text
	}
	_, err := t.bot.Send(tgbotapi.NewMessage(t.chatID, text))
	return err
}
