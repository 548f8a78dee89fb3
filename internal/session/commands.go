package session

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/quill-labs/quill/pkg/channel"
	"github.com/quill-labs/quill/pkg/notify"
	"github.com/quill-labs/quill/pkg/settings"
)

// Recognized bot commands. Matching is a case-sensitive leading token.
const (
	cmdHelp   = "/help"
	cmdStatus = "/status"
	cmdNotes  = "/notes"
)

const maxListedNotes = 5

const helpText = `Quill saves every message you send here into your vault.

Commands:
/help - show this message
/status - check that the bot is running
/notes - list your most recent notes`

// command extracts a recognized command token from inbound text.
func command(text string) (string, bool) {
	token := text
	if i := strings.IndexByte(token, ' '); i >= 0 {
		token = token[:i]
	}
	switch token {
	case cmdHelp, cmdStatus, cmdNotes:
		return token, true
	}
	return "", false
}

// respond answers a recognized command. Send failures are logged and
// surfaced, not retried.
func (m *Manager) respond(conn channel.Conn, s settings.Settings, cmd string, chatID int64) {
	var reply string
	switch cmd {
	case cmdHelp:
		reply = helpText
	case cmdStatus:
		reply = m.statusText()
	case cmdNotes:
		reply = m.notesText(s.Folder)
	}

	if err := conn.Send(context.Background(), chatID, reply); err != nil {
		slog.Error("command reply failed", "command", cmd, "chat_id", chatID, "error", err)
		m.notices.Publish(notify.LevelWarn, fmt.Sprintf("Could not reply to %s: %v", cmd, err))
	}
}

func (m *Manager) statusText() string {
	m.mu.Lock()
	startedAt := m.startedAt
	m.mu.Unlock()

	text := fmt.Sprintf("Quill is running and saving your messages (up %s).",
		time.Since(startedAt).Round(time.Second))
	if m.catalog != nil {
		if stats, err := m.catalog.Stats(); err == nil {
			text += fmt.Sprintf(" %d notes captured.", stats.Notes)
		}
	}
	return text
}

// notesText lists up to five vault markdown files under the note folder,
// in the order the vault returns them.
func (m *Manager) notesText(folder string) string {
	files, err := m.vault.ListMarkdownFiles()
	if err != nil {
		slog.Error("vault listing failed", "error", err)
		return "Could not list notes right now."
	}

	prefix := strings.TrimSuffix(folder, "/") + "/"
	var lines []string
	for _, f := range files {
		if !strings.HasPrefix(f.Path, prefix) {
			continue
		}
		lines = append(lines, "• "+f.Basename)
		if len(lines) == maxListedNotes {
			break
		}
	}

	if len(lines) == 0 {
		return "No notes found yet. Send me a message to create one!"
	}
	return "Your recent notes:\n" + strings.Join(lines, "\n")
}
