package note

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/quill-labs/quill/pkg/telegram"
)

func defaultOpts() Options {
	return Options{
		Folder:    "Telegram",
		Templates: DefaultTemplates(),
	}
}

func TestRenderTextMessage(t *testing.T) {
	msg := telegram.Message{
		ID:   42,
		Date: 1710000000, // 2024-03-09T16:40:00Z
		Chat: telegram.Chat{ID: 1, Type: "private"},
		Text: "hello",
	}

	got := Render(msg, defaultOpts())

	if got.Path != "Telegram/2024-03-09T16-40-00-42.md" {
		t.Errorf("Path = %q, want %q", got.Path, "Telegram/2024-03-09T16-40-00-42.md")
	}
	if got.Body != "## Message\n\nhello" {
		t.Errorf("Body = %q, want %q", got.Body, "## Message\n\nhello")
	}
	if got.Kind != telegram.KindText {
		t.Errorf("Kind = %q", got.Kind)
	}
}

func TestRenderLocationMessage(t *testing.T) {
	msg := telegram.Message{
		ID:       7,
		Date:     1710000000,
		Location: &telegram.Location{Latitude: 12.34, Longitude: 56.78},
	}

	got := Render(msg, defaultOpts())

	if !strings.Contains(got.Body, "Latitude: 12.34") {
		t.Errorf("Body missing latitude: %q", got.Body)
	}
	if !strings.Contains(got.Body, "Longitude: 56.78") {
		t.Errorf("Body missing longitude: %q", got.Body)
	}
}

func TestRenderPathUniquenessAndDeterminism(t *testing.T) {
	a := telegram.Message{ID: 1, Date: 1710000000, Text: "x"}
	b := telegram.Message{ID: 2, Date: 1710000000, Text: "x"}

	opts := defaultOpts()
	ra, rb := Render(a, opts), Render(b, opts)
	if ra.Path == rb.Path {
		t.Errorf("messages with distinct ids share path %q", ra.Path)
	}

	again := Render(a, opts)
	if diff := cmp.Diff(ra, again); diff != "" {
		t.Errorf("rendering is not deterministic (-first +second):\n%s", diff)
	}
}

func TestRenderMetadata(t *testing.T) {
	msg := telegram.Message{
		ID:   3,
		Date: 1710000000,
		From: &telegram.User{ID: 9, FirstName: "Ada", LastName: "Lovelace", Username: "ada"},
		Chat: telegram.Chat{ID: 1, Type: "group", Title: "Engines"},
		Text: "note this",
	}

	opts := defaultOpts()
	opts.IncludeMetadata = true
	got := Render(msg, opts)

	if !strings.HasPrefix(got.Body, "# Telegram Message\n\n") {
		t.Errorf("Body missing title: %q", got.Body)
	}
	if !strings.Contains(got.Body, "**From:** Ada Lovelace (@ada)") {
		t.Errorf("Body missing sender line: %q", got.Body)
	}
	if !strings.Contains(got.Body, "**Chat:** Engines") {
		t.Errorf("Body missing chat line: %q", got.Body)
	}
	if !strings.HasSuffix(got.Body, "## Message\n\nnote this") {
		t.Errorf("Body missing content section: %q", got.Body)
	}
}

func TestRenderMetadataFallbacks(t *testing.T) {
	// No sender handle: the @ segment is omitted entirely. No chat title
	// or handle: the chat renders as "Private Chat".
	msg := telegram.Message{
		ID:   4,
		Date: 1710000000,
		From: &telegram.User{ID: 9, FirstName: "Ada"},
		Chat: telegram.Chat{ID: 1, Type: "private"},
		Text: "x",
	}

	opts := defaultOpts()
	opts.IncludeMetadata = true
	got := Render(msg, opts)

	if strings.Contains(got.Body, "(@") {
		t.Errorf("Body should omit handle segment: %q", got.Body)
	}
	if !strings.Contains(got.Body, "**Chat:** Private Chat") {
		t.Errorf("Body missing private chat fallback: %q", got.Body)
	}
}

func TestRenderUnknownKind(t *testing.T) {
	got := Render(telegram.Message{ID: 5, Date: 1710000000}, defaultOpts())
	if !strings.Contains(got.Body, "Unsupported Message") {
		t.Errorf("Body = %q", got.Body)
	}
}

func TestRenderCustomTemplateUnresolvedMarker(t *testing.T) {
	opts := defaultOpts()
	opts.Templates.Text = "{{text}} | {{mood}}"
	got := Render(telegram.Message{ID: 6, Date: 1710000000, Text: "hi"}, opts)
	if got.Body != "hi | {{mood}}" {
		t.Errorf("Body = %q", got.Body)
	}
}
