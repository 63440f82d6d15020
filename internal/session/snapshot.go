package session

import "github.com/palemoky/yewchat/internal/client"

// TranscriptEntry is a message resolved for display.
type TranscriptEntry struct {
	Sender    string
	Avatar    string
	Body      string
	Timestamp string
	IsImage   bool
}

// Snapshot is everything needed to redraw the chat view.
type Snapshot struct {
	Username        string
	State           State
	Roster          []client.UserProfile
	Transcript      []TranscriptEntry
	TypingText      string
	EmojiPickerOpen bool
	Draft           string
}

// Snapshot builds a copy of the current render state. Senders missing from
// the roster get a derived profile that is not stored.
func (c *Controller) Snapshot() Snapshot {
	messages := c.chat.Transcript.Messages()
	entries := make([]TranscriptEntry, 0, len(messages))
	for _, m := range messages {
		profile := c.chat.Roster.ProfileFor(m.Sender)
		entries = append(entries, TranscriptEntry{
			Sender:    m.Sender,
			Avatar:    profile.Avatar,
			Body:      m.Body,
			Timestamp: m.TimestampText(),
			IsImage:   m.IsImage(),
		})
	}

	return Snapshot{
		Username:        c.username,
		State:           c.state,
		Roster:          c.chat.Roster.Users(),
		Transcript:      entries,
		TypingText:      c.chat.Presence.IndicatorText(),
		EmojiPickerOpen: c.chat.EmojiPickerOpen,
		Draft:           c.chat.Draft,
	}
}

// TypingUsers returns the typing set in insertion order.
func (c *Controller) TypingUsers() []string {
	return c.chat.Presence.Users()
}
