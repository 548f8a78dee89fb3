package note

import "github.com/quill-labs/quill/pkg/telegram"

// TemplateSet maps the eleven template roles to user-editable template
// strings. Every string must stay renderable with zero placeholders
// resolved; unresolved markers come out literally.
type TemplateSet struct {
	Title    string `json:"title"`
	Metadata string `json:"metadata"`
	Text     string `json:"text"`
	Photo    string `json:"photo"`
	Document string `json:"document"`
	Audio    string `json:"audio"`
	Voice    string `json:"voice"`
	Video    string `json:"video"`
	Sticker  string `json:"sticker"`
	Location string `json:"location"`
	Unknown  string `json:"unknown"`
}

// DefaultTemplates returns the template set a fresh installation starts
// with. Users edit these in place; the pipeline never mutates them.
func DefaultTemplates() TemplateSet {
	return TemplateSet{
		Title:    "# Telegram Message",
		Metadata: "**From:** {{from}}\n**Date:** {{date}}\n**Chat:** {{chat}}",
		Text:     "## Message\n\n{{text}}",
		Photo:    "## Photo\n\n{{caption}}",
		Document: "## Document\n\nFilename: {{filename}}",
		Audio:    "## Audio\n\nTitle: {{title}}",
		Voice:    "## Voice Message\n\nDuration: {{duration}} seconds",
		Video:    "## Video\n\n{{caption}}",
		Sticker:  "## Sticker\n\n{{emoji}}",
		Location: "## Location\n\nLatitude: {{latitude}}\nLongitude: {{longitude}}",
		Unknown:  "## Unsupported Message\n\nThis message type cannot be rendered.",
	}
}

// ForKind returns the content template for a classification result.
func (t TemplateSet) ForKind(k telegram.Kind) string {
	switch k {
	case telegram.KindText:
		return t.Text
	case telegram.KindPhoto:
		return t.Photo
	case telegram.KindDocument:
		return t.Document
	case telegram.KindAudio:
		return t.Audio
	case telegram.KindVoice:
		return t.Voice
	case telegram.KindVideo:
		return t.Video
	case telegram.KindSticker:
		return t.Sticker
	case telegram.KindLocation:
		return t.Location
	default:
		return t.Unknown
	}
}
