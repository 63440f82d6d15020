package view

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/palemoky/yewchat/internal/client"
	"github.com/palemoky/yewchat/internal/session"
)

func TestRenderRoster(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name             string
		users            []client.UserProfile
		shouldContain    []string
		shouldNotContain []string
	}{
		{
			name:          "empty roster",
			users:         nil,
			shouldContain: []string{"在线 (0)", "暂无用户"},
		},
		{
			name:             "self is marked",
			users:            []client.UserProfile{{Name: "alice"}, {Name: "bob"}},
			shouldContain:    []string{"在线 (2)", "alice", "bob", "(you)"},
			shouldNotContain: []string{"暂无用户"},
		},
		{
			name:          "long names truncated",
			users:         []client.UserProfile{{Name: "averyveryverylongname"}},
			shouldContain: []string{"averyveryverylo…"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			result := RenderRoster(tt.users, "alice")
			for _, s := range tt.shouldContain {
				assert.Contains(t, result, s)
			}
			for _, s := range tt.shouldNotContain {
				assert.NotContains(t, result, s)
			}
		})
	}
}

func TestRenderEntry(t *testing.T) {
	t.Parallel()

	text := RenderEntry(session.TranscriptEntry{Sender: "bob", Body: "hi", Timestamp: "10:30"}, "alice")
	assert.Contains(t, text, "[10:30]")
	assert.Contains(t, text, "bob")
	assert.Contains(t, text, "hi")
	assert.NotContains(t, text, "🖼")

	image := RenderEntry(session.TranscriptEntry{Sender: "bob", Body: "https://x/cat.gif", IsImage: true}, "alice")
	assert.Contains(t, image, "🖼")
	assert.Contains(t, image, "https://x/cat.gif")
	assert.NotContains(t, image, "[")
}

func TestRenderTranscript(t *testing.T) {
	t.Parallel()

	assert.Contains(t, RenderTranscript(nil, "alice", 5), "还没有消息")

	var entries []session.TranscriptEntry
	for _, body := range []string{"m1", "m2", "m3", "m4"} {
		entries = append(entries, session.TranscriptEntry{Sender: "bob", Body: body})
	}
	result := RenderTranscript(entries, "alice", 2)
	assert.NotContains(t, result, "m1")
	assert.NotContains(t, result, "m2")
	assert.Contains(t, result, "m3")
	assert.Contains(t, result, "m4")
	assert.Equal(t, 1, strings.Count(result, "\n"))
}

func TestRenderTypingIndicator(t *testing.T) {
	t.Parallel()

	assert.Equal(t, " ", RenderTypingIndicator(""))
	assert.Contains(t, RenderTypingIndicator("bob is typing..."), "bob is typing...")
}

func TestRenderStatus(t *testing.T) {
	t.Parallel()

	assert.Contains(t, RenderStatus(session.StateConnecting, ""), "连接中")
	assert.Empty(t, RenderStatus(session.StateActive, ""))
	assert.Equal(t, "🔄 重连中", RenderStatus(session.StateActive, "🔄 重连中"))
}

func TestChatView(t *testing.T) {
	t.Parallel()

	snap := session.Snapshot{
		Username:        "alice",
		State:           session.StateActive,
		Roster:          []client.UserProfile{{Name: "alice"}, {Name: "bob"}},
		Transcript:      []session.TranscriptEntry{{Sender: "bob", Body: "hello"}},
		TypingText:      "bob is typing...",
		EmojiPickerOpen: true,
	}
	result := ChatView(snap, Layout{Width: 100, Height: 30, Input: "> draft"})

	for _, s := range []string{"YewChat", "bob", "hello", "bob is typing...", "> draft", EmojiGlyphs[0], "Ctrl+E"} {
		assert.Contains(t, result, s)
	}

	snap.EmojiPickerOpen = false
	assert.NotContains(t, ChatView(snap, Layout{Width: 100, Height: 30}), EmojiGlyphs[15])
}
