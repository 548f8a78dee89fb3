// Package session owns the bot connection lifecycle: starting and
// stopping the Telegram session, piping each inbound message through the
// note pipeline, and answering bot commands.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/quill-labs/quill/pkg/catalog"
	"github.com/quill-labs/quill/pkg/channel"
	"github.com/quill-labs/quill/pkg/note"
	"github.com/quill-labs/quill/pkg/notify"
	"github.com/quill-labs/quill/pkg/settings"
	"github.com/quill-labs/quill/pkg/telegram"
	"github.com/quill-labs/quill/pkg/vault"
)

// ErrNoToken is returned by Start when no bot token is configured.
var ErrNoToken = errors.New("bot token is not configured")

// Manager drives the Stopped/Running lifecycle of the bot connection.
// All transitions serialize on mu, so a manual start can never race a
// settings-triggered restart into two live connections.
type Manager struct {
	connector channel.Connector
	vault     vault.Vault
	catalog   *catalog.Catalog // optional
	notices   *notify.Bus

	mu        sync.Mutex
	conn      channel.Conn
	running   bool
	settings  settings.Settings
	startedAt time.Time
}

// New creates a manager. catalog may be nil; the pipeline works without
// an index.
func New(connector channel.Connector, v vault.Vault, c *catalog.Catalog, n *notify.Bus) *Manager {
	if n == nil {
		n = notify.NewBus()
	}
	return &Manager{connector: connector, vault: v, catalog: c, notices: n}
}

// Start opens a bot session with the given settings. A session already
// running is stopped first, so at most one connection is ever live. On
// any failure the manager stays Stopped.
func (m *Manager) Start(ctx context.Context, s settings.Settings) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.running {
		m.stopLocked()
	}

	if strings.TrimSpace(s.Token) == "" {
		m.notices.Publish(notify.LevelError, "Bot token is not configured. Set it before starting the bot.")
		return ErrNoToken
	}

	if err := vault.Ensure(m.vault, s.Folder); err != nil {
		slog.Error("folder provisioning failed", "folder", s.Folder, "error", err)
		m.notices.Publish(notify.LevelError, fmt.Sprintf("Could not create note folder %q: %v", s.Folder, err))
		return err
	}

	conn, err := m.connector.Connect(ctx, s.Token)
	if err != nil {
		slog.Error("telegram connect failed", "error", err)
		m.notices.Publish(notify.LevelError, fmt.Sprintf("Could not connect to Telegram: %v", err))
		return fmt.Errorf("open session: %w", err)
	}

	m.conn = conn
	m.settings = s
	m.running = true
	m.startedAt = time.Now()
	go m.dispatch(conn, s)

	slog.Info("bot session started", "folder", s.Folder, "commands", s.EnableCommands)
	m.notices.Publish(notify.LevelInfo, "Telegram bot connected.")
	return nil
}

// Stop closes the session. Safe to call when already stopped. A close
// failure is reported but the session still lands on Stopped; in-flight
// message handlers finish on their own.
func (m *Manager) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopLocked()
}

func (m *Manager) stopLocked() {
	if !m.running {
		return
	}
	if err := m.conn.Close(); err != nil {
		slog.Warn("closing telegram connection", "error", err)
		m.notices.Publish(notify.LevelWarn, fmt.Sprintf("Bot connection did not close cleanly: %v", err))
	}
	m.conn = nil
	m.running = false
	slog.Info("bot session stopped")
}

// Running reports whether a session is live.
func (m *Manager) Running() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.running
}

// OnSettingsSaved is the settings-change hook: a save while Running
// restarts the session so a changed token, folder, or template takes
// effect immediately. A save while Stopped opens nothing.
func (m *Manager) OnSettingsSaved(s settings.Settings) {
	if !m.Running() {
		return
	}
	if err := m.Start(context.Background(), s); err != nil {
		slog.Error("restart after settings change failed", "error", err)
	}
}

// dispatch reads the connection's stream until it closes. Each message is
// handled in its own goroutine so one handler blocked on vault I/O never
// delays the next; completion order across messages is not guaranteed.
func (m *Manager) dispatch(conn channel.Conn, s settings.Settings) {
	for msg := range conn.Messages() {
		go m.handle(conn, s, msg)
	}
}

// handle processes a single inbound message. Failures here are contained:
// logged and surfaced as a notice, never allowed to touch the session
// state or other in-flight messages.
func (m *Manager) handle(conn channel.Conn, s settings.Settings, msg telegram.Message) {
	if s.EnableCommands {
		if cmd, ok := command(msg.Text); ok {
			m.respond(conn, s, cmd, msg.Chat.ID)
			return
		}
	}
	if err := m.capture(s, msg); err != nil {
		slog.Error("message processing failed",
			"message_id", msg.ID,
			"chat_id", msg.Chat.ID,
			"error", err,
		)
		m.notices.Publish(notify.LevelWarn, fmt.Sprintf("A message could not be saved: %v", err))
	}
}

// capture renders one message into a note and writes it to the vault.
func (m *Manager) capture(s settings.Settings, msg telegram.Message) error {
	rendered := note.Render(msg, note.Options{
		Folder:          s.Folder,
		IncludeMetadata: s.IncludeMetadata,
		Templates:       s.Templates,
	})

	if err := m.vault.WriteFile(rendered.Path, []byte(rendered.Body)); err != nil {
		return fmt.Errorf("write note %s: %w", rendered.Path, err)
	}

	if m.catalog != nil {
		if _, err := m.catalog.Record(msg.ID, msg.Chat.ID, string(rendered.Kind), rendered.Path); err != nil {
			// The note itself is on disk; a stale index is tolerable.
			slog.Warn("catalog record failed", "path", rendered.Path, "error", err)
		}
	}

	slog.Info("note captured", "path", rendered.Path, "kind", rendered.Kind)
	return nil
}
