// Package note turns an inbound message into a Markdown note: the body
// assembled from the user's templates and a vault path derived from the
// message's timestamp and id. Rendering is pure; persistence belongs to
// the caller.
package note

import (
	"fmt"
	"strings"
	"time"

	"github.com/quill-labs/quill/pkg/telegram"
	"github.com/quill-labs/quill/pkg/template"
)

// Options controls how a message is rendered.
type Options struct {
	// Folder is the vault folder notes are written under.
	Folder string
	// IncludeMetadata prepends the title and metadata templates.
	IncludeMetadata bool
	// Templates is the user's template set.
	Templates TemplateSet
}

// Rendered is one note ready to persist.
type Rendered struct {
	Path string // vault-relative
	Body string
	Kind telegram.Kind
}

// Render converts one message into a note. The path embeds the message's
// timestamp and id, so two messages with distinct ids can never collide
// and the same message always maps to the same file.
func Render(m telegram.Message, opts Options) Rendered {
	kind, vars := telegram.Classify(m)

	var b strings.Builder
	if opts.IncludeMetadata {
		b.WriteString(template.Render(opts.Templates.Title, nil))
		b.WriteString("\n\n")
		b.WriteString(template.Render(opts.Templates.Metadata, metadataVars(m)))
		b.WriteString("\n\n")
	}
	b.WriteString(template.Render(opts.Templates.ForKind(kind), vars))

	return Rendered{
		Path: fmt.Sprintf("%s/%s-%d.md", opts.Folder, timestampSlug(m.Date), m.ID),
		Body: b.String(),
		Kind: kind,
	}
}

// timestampSlug renders a unix timestamp as UTC ISO-8601 with every ':'
// and '.' replaced by '-', truncated to the first 19 characters:
// YYYY-MM-DDTHH-MM-SS.
func timestampSlug(unix int64) string {
	s := time.Unix(unix, 0).UTC().Format(time.RFC3339)
	s = strings.ReplaceAll(s, ":", "-")
	s = strings.ReplaceAll(s, ".", "-")
	if len(s) > 19 {
		s = s[:19]
	}
	return s
}

func metadataVars(m telegram.Message) map[string]string {
	var first, last, handle string
	if m.From != nil {
		first, last, handle = m.From.FirstName, m.From.LastName, m.From.Username
	}
	// Missing name parts render as empty strings; the @handle segment is
	// omitted entirely when there is no handle.
	from := first + " " + last
	if handle != "" {
		from += " (@" + handle + ")"
	}

	chat := m.Chat.Title
	if chat == "" {
		chat = m.Chat.Username
	}
	if chat == "" {
		chat = "Private Chat"
	}

	return map[string]string{
		"from": from,
		"date": time.Unix(m.Date, 0).Local().Format("January 2, 2006 at 3:04 PM"),
		"chat": chat,
	}
}
