// Package telegram implements the transport over the Telegram Bot API's
// long polling, adapting library updates into Quill's message model.
package telegram

import (
	"context"
	"fmt"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/quill-labs/quill/pkg/channel"
	tgmsg "github.com/quill-labs/quill/pkg/telegram"
)

// Connector opens long-polling connections to the Bot API.
type Connector struct {
	// PollTimeout is the long-poll wait in seconds. Zero means 30.
	PollTimeout int
}

// Connect authenticates the token and starts long polling. A failed
// authentication or network error surfaces here, before any message is
// accepted.
func (c Connector) Connect(ctx context.Context, token string) (channel.Conn, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("connect telegram: %w", err)
	}

	timeout := c.PollTimeout
	if timeout <= 0 {
		timeout = 30
	}
	cfg := tgbotapi.NewUpdate(0)
	cfg.Timeout = timeout
	updates := api.GetUpdatesChan(cfg)

	conn := &Conn{api: api, messages: make(chan tgmsg.Message, 16)}
	go conn.pump(updates)

	slog.Info("telegram connected", "bot", api.Self.UserName)
	return conn, nil
}

// Conn is one live long-polling session.
type Conn struct {
	api      *tgbotapi.BotAPI
	messages chan tgmsg.Message
}

func (c *Conn) Messages() <-chan tgmsg.Message { return c.messages }

func (c *Conn) Send(ctx context.Context, chatID int64, text string) error {
	if _, err := c.api.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		return fmt.Errorf("send to chat %d: %w", chatID, err)
	}
	return nil
}

// Close stops long polling. The library closes its update channel, which
// drains pump and closes the message stream.
func (c *Conn) Close() error {
	c.api.StopReceivingUpdates()
	return nil
}

// pump converts library updates into the typed message model. Edited
// messages and non-message updates are skipped.
func (c *Conn) pump(updates tgbotapi.UpdatesChannel) {
	for u := range updates {
		if u.Message == nil {
			continue
		}
		c.messages <- convert(u.Message)
	}
	close(c.messages)
}

func convert(m *tgbotapi.Message) tgmsg.Message {
	out := tgmsg.Message{
		ID:   int64(m.MessageID),
		Date: int64(m.Date),
		Text: m.Text,
	}
	if m.From != nil {
		out.From = &tgmsg.User{
			ID:        m.From.ID,
			FirstName: m.From.FirstName,
			LastName:  m.From.LastName,
			Username:  m.From.UserName,
		}
	}
	if m.Chat != nil {
		out.Chat = tgmsg.Chat{
			ID:       m.Chat.ID,
			Type:     m.Chat.Type,
			Title:    m.Chat.Title,
			Username: m.Chat.UserName,
		}
	}

	// The Bot API can in principle set several media fields on one
	// update; only the first populated one is carried over, matching the
	// classifier's priority order.
	switch {
	case len(m.Photo) > 0:
		out.Photo = &tgmsg.Photo{Caption: m.Caption}
	case m.Document != nil:
		out.Document = &tgmsg.Document{Caption: m.Caption, FileName: m.Document.FileName}
	case m.Audio != nil:
		out.Audio = &tgmsg.Audio{Caption: m.Caption, Title: m.Audio.Title}
	case m.Voice != nil:
		out.Voice = &tgmsg.Voice{Duration: m.Voice.Duration}
	case m.Video != nil:
		out.Video = &tgmsg.Video{Caption: m.Caption}
	case m.Sticker != nil:
		out.Sticker = &tgmsg.Sticker{Emoji: m.Sticker.Emoji}
	case m.Location != nil:
		out.Location = &tgmsg.Location{Latitude: m.Location.Latitude, Longitude: m.Location.Longitude}
	}
	return out
}
