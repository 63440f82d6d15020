package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChatMessage_IsImage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		body string
		want bool
	}{
		{"http://x/y.gif", true},
		{"http://x/y.png", false},
		{"party.gif", true},
		{"gif", false},
		{"http://x/y.GIF", false},
		{"look at this .gif ", false},
		{"", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ChatMessage{Body: tt.body}.IsImage(), tt.body)
	}
}

func TestChatMessage_TimestampText(t *testing.T) {
	t.Parallel()

	ts := "12:30"
	assert.Equal(t, "12:30", ChatMessage{Timestamp: &ts}.TimestampText())
	assert.Equal(t, "", ChatMessage{}.TimestampText())
}

func TestTranscript_AppendKeepsArrivalOrderAndDuplicates(t *testing.T) {
	t.Parallel()

	tr := NewTranscript()
	tr.Append(ChatMessage{Sender: "b", Body: "second?"})
	tr.Append(ChatMessage{Sender: "a", Body: "hi"})
	tr.Append(ChatMessage{Sender: "a", Body: "hi"})

	assert.Equal(t, 3, tr.Len())
	assert.Equal(t, []ChatMessage{
		{Sender: "b", Body: "second?"},
		{Sender: "a", Body: "hi"},
		{Sender: "a", Body: "hi"},
	}, tr.Messages())
}

func TestTranscript_BodyVerbatim(t *testing.T) {
	t.Parallel()

	tr := NewTranscript()
	tr.Append(ChatMessage{Sender: "a", Body: "  spaced  \n"})
	assert.Equal(t, "  spaced  \n", tr.Messages()[0].Body)
}
