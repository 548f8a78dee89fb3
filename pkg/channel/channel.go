// Package channel defines the transport surface the session manager
// consumes. The concrete Telegram implementation lives in
// internal/channel/telegram; tests substitute fakes.
package channel

import (
	"context"

	"github.com/quill-labs/quill/pkg/telegram"
)

// Conn is one live connection to the messaging provider.
type Conn interface {
	// Messages returns the inbound message stream. The channel is closed
	// when the connection closes, which is how consumers learn the
	// session ended.
	Messages() <-chan telegram.Message

	// Send delivers text to a chat.
	Send(ctx context.Context, chatID int64, text string) error

	// Close shuts the connection down. The message stream closes shortly
	// after; in-flight handlers are not interrupted.
	Close() error
}

// Connector opens connections with a bot token.
type Connector interface {
	Connect(ctx context.Context, token string) (Conn, error)
}

// ConnectorFunc adapts a function to the Connector interface.
type ConnectorFunc func(ctx context.Context, token string) (Conn, error)

func (f ConnectorFunc) Connect(ctx context.Context, token string) (Conn, error) {
	return f(ctx, token)
}
