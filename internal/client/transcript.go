package client

import "strings"

// ImageSuffix marks a message body as an image reference.
const ImageSuffix = ".gif"

// ChatMessage is one received message. Body is kept verbatim.
type ChatMessage struct {
	Sender    string
	Body      string
	Timestamp *string
}

// IsImage reports whether the body is an image reference.
func (m ChatMessage) IsImage() bool {
	return strings.HasSuffix(m.Body, ImageSuffix)
}

// TimestampText returns the timestamp or "" when absent.
func (m ChatMessage) TimestampText() string {
	if m.Timestamp == nil {
		return ""
	}
	return *m.Timestamp
}

// Transcript is the append-only message log in arrival order.
type Transcript struct {
	messages []ChatMessage
}

// NewTranscript creates an empty transcript.
func NewTranscript() *Transcript {
	return &Transcript{}
}

// Append adds msg at the end. Duplicates are kept.
func (t *Transcript) Append(msg ChatMessage) {
	t.messages = append(t.messages, msg)
}

// Messages returns a copy of the log.
func (t *Transcript) Messages() []ChatMessage {
	out := make([]ChatMessage, len(t.messages))
	copy(out, t.messages)
	return out
}

// Len returns the number of messages.
func (t *Transcript) Len() int {
	return len(t.messages)
}
