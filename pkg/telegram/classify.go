package telegram

import "strconv"

// Kind is the content category of a message.
type Kind string

const (
	KindText     Kind = "text"
	KindPhoto    Kind = "photo"
	KindDocument Kind = "document"
	KindAudio    Kind = "audio"
	KindVoice    Kind = "voice"
	KindVideo    Kind = "video"
	KindSticker  Kind = "sticker"
	KindLocation Kind = "location"
	KindUnknown  Kind = "unknown"
)

// Classify returns the message's content kind and the variables its note
// template needs. Payload fields are checked in a fixed priority order —
// text, photo, document, audio, voice, video, sticker, location — and the
// first populated one wins. The order is the tie-break policy for
// transports that populate several fields at once and must not change:
// identical inputs have to keep producing identical notes.
func Classify(m Message) (Kind, map[string]string) {
	switch {
	case m.Text != "":
		return KindText, map[string]string{"text": m.Text}
	case m.Photo != nil:
		return KindPhoto, map[string]string{"caption": orDefault(m.Photo.Caption, "No caption")}
	case m.Document != nil:
		return KindDocument, map[string]string{"filename": orDefault(m.Document.FileName, "Unknown")}
	case m.Audio != nil:
		return KindAudio, map[string]string{"title": orDefault(m.Audio.Title, "Unknown")}
	case m.Voice != nil:
		// Duration is stringified as-is, zero value included. There is
		// deliberately no fallback text for a missing duration.
		return KindVoice, map[string]string{"duration": strconv.Itoa(m.Voice.Duration)}
	case m.Video != nil:
		return KindVideo, map[string]string{"caption": orDefault(m.Video.Caption, "No caption")}
	case m.Sticker != nil:
		return KindSticker, map[string]string{"emoji": orDefault(m.Sticker.Emoji, "No emoji")}
	case m.Location != nil:
		return KindLocation, map[string]string{
			"latitude":  strconv.FormatFloat(m.Location.Latitude, 'f', -1, 64),
			"longitude": strconv.FormatFloat(m.Location.Longitude, 'f', -1, 64),
		}
	default:
		return KindUnknown, map[string]string{}
	}
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
