package server

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/yewchat/internal/client"
	"github.com/palemoky/yewchat/internal/session"
	"github.com/palemoky/yewchat/internal/transport"
)

// chatter 一个真实的客户端：transport + session controller
type chatter struct {
	conn *transport.Client
	ctrl *session.Controller
}

func newChatter(t *testing.T, url, name string) *chatter {
	t.Helper()
	conn := transport.NewClient(url, transport.Options{})
	require.NoError(t, conn.Connect())
	t.Cleanup(conn.Close)

	ctrl, err := session.New(name, conn)
	require.NoError(t, err)
	ctrl.Start()
	return &chatter{conn: conn, ctrl: ctrl}
}

// pumpUntil 把收到的帧交给 controller，直到 cond 满足
func (c *chatter) pumpUntil(t *testing.T, cond func(session.Snapshot) bool) session.Snapshot {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for {
		snap := c.ctrl.Snapshot()
		if cond(snap) {
			return snap
		}
		remaining := time.Until(deadline)
		if remaining <= 0 {
			t.Fatalf("condition not met, last snapshot: %+v", snap)
		}
		frame, err := c.conn.ReceiveWithTimeout(remaining)
		require.NoError(t, err)
		c.ctrl.HandleFrame(frame)
	}
}

func rosterNames(s session.Snapshot) []string {
	names := make([]string, len(s.Roster))
	for i, p := range s.Roster {
		names[i] = p.Name
	}
	return names
}

func TestRelay_TwoClientsChat(t *testing.T) {
	s, _ := newTestServer(t)
	hs := httptest.NewServer(s.Handler())
	defer hs.Close()
	url := "ws" + strings.TrimPrefix(hs.URL, "http") + "/ws"

	alice := newChatter(t, url, "alice")
	alice.pumpUntil(t, func(s session.Snapshot) bool { return len(s.Roster) == 1 })

	bob := newChatter(t, url, "bob")
	bob.pumpUntil(t, func(s session.Snapshot) bool { return len(s.Roster) == 2 })
	snap := alice.pumpUntil(t, func(s session.Snapshot) bool { return len(s.Roster) == 2 })
	assert.Equal(t, []string{"alice", "bob"}, rosterNames(snap))
	assert.Equal(t, client.DefaultAvatar("bob"), snap.Roster[1].Avatar)

	// bob 输入时 alice 看到提示
	bob.ctrl.Keystroke("hel")
	snap = alice.pumpUntil(t, func(s session.Snapshot) bool { return s.TypingText != "" })
	assert.Equal(t, "bob is typing...", snap.TypingText)

	// 提交后 typing(false) 清除提示，消息到达双方
	bob.ctrl.Keystroke("hello")
	require.True(t, bob.ctrl.KeyDown(session.KeyEnter, false))

	snap = alice.pumpUntil(t, func(s session.Snapshot) bool {
		return len(s.Transcript) == 1 && s.TypingText == ""
	})
	assert.Equal(t, "bob", snap.Transcript[0].Sender)
	assert.Equal(t, "hello", snap.Transcript[0].Body)
	assert.Equal(t, "15:04", snap.Transcript[0].Timestamp)

	snap = bob.pumpUntil(t, func(s session.Snapshot) bool { return len(s.Transcript) == 1 })
	assert.Equal(t, "hello", snap.Transcript[0].Body)
	assert.Empty(t, snap.Draft)

	// bob 离开
	bob.conn.Close()
	snap = alice.pumpUntil(t, func(s session.Snapshot) bool { return len(s.Roster) == 1 })
	assert.Equal(t, []string{"alice"}, rosterNames(snap))
}

func TestRelay_ImageMessage(t *testing.T) {
	s, _ := newTestServer(t)
	hs := httptest.NewServer(s.Handler())
	defer hs.Close()
	url := "ws" + strings.TrimPrefix(hs.URL, "http") + "/ws"

	alice := newChatter(t, url, "alice")
	alice.pumpUntil(t, func(s session.Snapshot) bool { return len(s.Roster) == 1 })

	alice.ctrl.Keystroke("https://example.com/party.gif")
	alice.ctrl.Submit()

	snap := alice.pumpUntil(t, func(s session.Snapshot) bool { return len(s.Transcript) == 1 })
	assert.True(t, snap.Transcript[0].IsImage)
}
