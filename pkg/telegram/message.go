// Package telegram defines the inbound message model and its content
// classification. The transport adapter fills in at most one content
// payload per message; Classify arbitrates with a fixed priority order
// in case a transport ever populates more than one.
package telegram

// User identifies a message sender. All fields except ID may be empty.
type User struct {
	ID        int64
	FirstName string
	LastName  string
	Username  string
}

// Chat identifies the conversation a message arrived in.
type Chat struct {
	ID       int64
	Type     string // "private", "group", "supergroup", "channel"
	Title    string
	Username string
}

// Photo is a photo reference. Media bytes are never fetched.
type Photo struct {
	Caption string
}

// Document is an attached file reference.
type Document struct {
	Caption  string
	FileName string
}

// Audio is an audio track reference.
type Audio struct {
	Caption string
	Title   string
}

// Voice is a voice recording reference.
type Voice struct {
	Duration int // seconds
}

// Video is a video reference.
type Video struct {
	Caption string
}

// Sticker is a sticker reference.
type Sticker struct {
	Emoji string
}

// Location is a shared geolocation.
type Location struct {
	Latitude  float64
	Longitude float64
}

// Message is one inbound Telegram event. Each payload struct carries only
// its own fields; a message with no populated payload classifies as
// unknown. Messages are consumed once by the pipeline and not retained.
type Message struct {
	ID   int64
	Date int64 // unix seconds
	From *User
	Chat Chat

	Text     string
	Photo    *Photo
	Document *Document
	Audio    *Audio
	Voice    *Voice
	Video    *Video
	Sticker  *Sticker
	Location *Location
}
