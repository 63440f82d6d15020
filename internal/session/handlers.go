package session

import (
	"github.com/palemoky/yewchat/internal/apperrors"
	"github.com/palemoky/yewchat/internal/client"
	"github.com/palemoky/yewchat/internal/logger"
	"github.com/palemoky/yewchat/internal/protocol"
	"github.com/palemoky/yewchat/internal/protocol/codec"
)

// frameHandler folds one decoded envelope into state and reports whether
// render state changed.
type frameHandler func(c *Controller, env *protocol.Envelope) bool

// frameHandlers 入站消息处理器映射表；未列出的类型（如 register）被忽略
var frameHandlers = map[protocol.Kind]frameHandler{
	protocol.KindUsers:   handleUsers,
	protocol.KindMessage: handleMessage,
	protocol.KindTyping:  handleTyping,
}

func handleUsers(c *Controller, env *protocol.Envelope) bool {
	c.chat.Roster.Replace(env.DataArray)
	return true
}

func handleMessage(c *Controller, env *protocol.Envelope) bool {
	md, err := codec.DecodeMessageData(env.Text())
	if err != nil {
		logger.LogError("discarding message payload (code %d): %v", apperrors.CodeOf(err), err)
		return false
	}

	msg := client.ChatMessage{
		Sender:    md.From,
		Body:      md.Message,
		Timestamp: md.Timestamp,
	}
	c.chat.Transcript.Append(msg)
	if c.onMessage != nil {
		c.onMessage(msg)
	}
	return true
}

func handleTyping(c *Controller, env *protocol.Envelope) bool {
	ts, err := codec.DecodeTypingStatus(env.Text())
	if err != nil {
		logger.LogError("discarding typing payload (code %d): %v", apperrors.CodeOf(err), err)
		return false
	}

	if ts.IsTyping {
		c.chat.Presence.Add(ts.Username)
	} else {
		c.chat.Presence.Remove(ts.Username)
	}
	return true
}
