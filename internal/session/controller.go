// Package session implements the chat view's protocol state machine.
//
// A Controller owns the roster, transcript and typing presence of one chat
// view. Inbound frames and local intents must be delivered from a single
// goroutine; the hosting runtime serializes them, so the Controller takes no
// locks.
package session

import (
	"fmt"
	"strings"

	"github.com/palemoky/yewchat/internal/apperrors"
	"github.com/palemoky/yewchat/internal/client"
	"github.com/palemoky/yewchat/internal/logger"
	"github.com/palemoky/yewchat/internal/protocol"
	"github.com/palemoky/yewchat/internal/protocol/codec"
)

// Sender is the outbound half of the transport. TrySend must not block.
type Sender interface {
	TrySend(text string) error
}

// State 会话阶段
type State int

const (
	StateConnecting State = iota
	StateActive
)

func (s State) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateActive:
		return "active"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// KeyEnter is the key name that submits the draft.
const KeyEnter = "Enter"

// Option configures a Controller.
type Option func(*Controller)

// WithAvatar sets the avatar derivation used for roster and senders.
func WithAvatar(avatar client.AvatarFunc) Option {
	return func(c *Controller) {
		c.avatar = avatar
	}
}

// WithOnChange registers the re-render callback. It runs after every
// trigger that changed render state.
func WithOnChange(fn func(Snapshot)) Option {
	return func(c *Controller) {
		c.onChange = fn
	}
}

// WithOnMessage registers a callback for every appended message.
func WithOnMessage(fn func(client.ChatMessage)) Option {
	return func(c *Controller) {
		c.onMessage = fn
	}
}

// Controller 聊天会话状态机
type Controller struct {
	username string
	sender   Sender
	state    State
	chat     *client.ChatState
	avatar   client.AvatarFunc

	onChange  func(Snapshot)
	onMessage func(client.ChatMessage)
}

// New creates a controller in StateConnecting. It fails with
// apperrors.ErrMissingIdentity when username is blank.
func New(username string, sender Sender, opts ...Option) (*Controller, error) {
	if strings.TrimSpace(username) == "" {
		return nil, apperrors.ErrMissingIdentity
	}
	if sender == nil {
		return nil, fmt.Errorf("session: nil sender")
	}

	c := &Controller{
		username: username,
		sender:   sender,
		state:    StateConnecting,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.chat = client.NewChatState(c.avatar)
	return c, nil
}

// Username returns the identity the session registered with.
func (c *Controller) Username() string {
	return c.username
}

// State returns the current phase.
func (c *Controller) State() State {
	return c.state
}

// Draft returns the current input content.
func (c *Controller) Draft() string {
	return c.chat.Draft
}

// Start dispatches the register envelope and moves to StateActive whether or
// not the send succeeded.
func (c *Controller) Start() {
	if err := c.send(protocol.NewRegister(c.username)); err == nil {
		logger.LogDebug("register sent for %s", c.username)
	}
	c.state = StateActive
}

// Restart discards everything received so far, keeps the draft and registers
// again. The transport calls for it after a reconnect.
func (c *Controller) Restart() bool {
	draft := c.chat.Draft
	c.chat.Reset()
	c.chat.Draft = draft
	c.state = StateConnecting
	c.Start()
	c.notify()
	return true
}

// HandleFrame decodes one inbound frame and folds it into state. It reports
// whether render state changed. Malformed frames are logged and dropped.
func (c *Controller) HandleFrame(text string) bool {
	if c.state != StateActive {
		logger.LogDebug("dropping frame received while %s", c.state)
		return false
	}

	env, err := codec.Decode(text)
	if err != nil {
		logger.LogError("discarding inbound frame (code %d): %v", apperrors.CodeOf(err), err)
		return false
	}

	handler, ok := frameHandlers[env.Kind]
	if !ok {
		logger.LogDebug("ignoring inbound %s envelope", env.Kind)
		return false
	}
	if !handler(c, env) {
		return false
	}
	c.notify()
	return true
}

// Submit sends the draft as a message unless it is blank, then clears the
// draft, withdraws the typing signal and closes the emoji picker. A failed
// send does not restore the draft. While connecting nothing is sent and the
// draft stays, but the picker still closes.
func (c *Controller) Submit() bool {
	if c.state != StateActive {
		logger.LogDebug("submit ignored while %s", c.state)
		return c.CloseEmojiPicker()
	}

	text := c.chat.Draft
	if strings.TrimSpace(text) != "" {
		_ = c.send(protocol.NewMessage(text))
		c.chat.Draft = ""
		c.sendTyping(false)
	}
	c.chat.EmojiPickerOpen = false
	c.notify()
	return true
}

// Keystroke records the new input content and signals typing. Every call
// sends; there is no suppression window.
func (c *Controller) Keystroke(value string) bool {
	c.chat.Draft = value
	if c.state != StateActive {
		return false
	}
	c.sendTyping(true)
	return false
}

// KeyDown submits on Enter unless a modifier is held.
func (c *Controller) KeyDown(key string, modifier bool) bool {
	if key == KeyEnter && !modifier {
		return c.Submit()
	}
	return false
}

// ToggleEmojiPicker flips the picker flag.
func (c *Controller) ToggleEmojiPicker() bool {
	c.chat.EmojiPickerOpen = !c.chat.EmojiPickerOpen
	c.notify()
	return true
}

// CloseEmojiPicker closes the picker. It reports whether it was open.
func (c *Controller) CloseEmojiPicker() bool {
	if !c.chat.EmojiPickerOpen {
		return false
	}
	return c.ToggleEmojiPicker()
}

// PickEmoji appends glyph to the draft without submitting.
func (c *Controller) PickEmoji(glyph string) bool {
	c.chat.Draft += glyph
	return false
}

func (c *Controller) sendTyping(isTyping bool) {
	env, err := codec.NewTyping(c.username, isTyping)
	if err != nil {
		logger.LogError("encode typing status: %v", err)
		return
	}
	_ = c.send(env)
}

// send is fire-and-forget: failures are logged and returned for tracing only.
func (c *Controller) send(env *protocol.Envelope) error {
	text, err := codec.Encode(env)
	if err != nil {
		logger.LogError("encode %s envelope: %v", env.Kind, err)
		return err
	}
	if err := c.sender.TrySend(text); err != nil {
		logger.LogError("error sending %s envelope: %v", env.Kind, err)
		return err
	}
	return nil
}

func (c *Controller) notify() {
	if c.onChange != nil {
		c.onChange(c.Snapshot())
	}
}
