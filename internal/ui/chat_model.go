package ui

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/palemoky/yewchat/internal/client"
	"github.com/palemoky/yewchat/internal/config"
	"github.com/palemoky/yewchat/internal/logger"
	"github.com/palemoky/yewchat/internal/session"
	"github.com/palemoky/yewchat/internal/sound"
	"github.com/palemoky/yewchat/internal/transport"
	"github.com/palemoky/yewchat/internal/ui/common"
	"github.com/palemoky/yewchat/internal/ui/input"
	"github.com/palemoky/yewchat/internal/ui/view"
)

// ChatModel 聊天界面的 model，持有一个会话控制器
type ChatModel struct {
	client *transport.Client
	ctrl   *session.Controller
	player *sound.Player
	events chan tea.Msg // 传输层回调转发到 Bubble Tea

	snap   session.Snapshot
	input  textinput.Model
	status string
	error  string

	width  int
	height int
}

// NewChatModel 创建聊天 model。用户名为空时返回 apperrors.ErrMissingIdentity
func NewChatModel(cfg config.ClientConfig) (*ChatModel, error) {
	c := transport.NewClient(cfg.ServerURL, transport.Options{
		SendBuffer:        cfg.SendBuffer,
		ReconnectAttempts: cfg.ReconnectAttempts,
		ReconnectInterval: cfg.ReconnectIntervalDuration(),
	})

	ti := textinput.New()
	ti.Placeholder = "输入消息..."
	ti.Prompt = "> "
	ti.Width = 60
	ti.Focus()

	m := &ChatModel{
		client: c,
		player: sound.NewPlayer(cfg.SoundDir, cfg.Mute),
		events: make(chan tea.Msg, 16),
		input:  ti,
	}

	ctrl, err := session.New(cfg.Username, c,
		session.WithAvatar(client.NewAvatarFunc(cfg.AvatarTemplate)),
		session.WithOnChange(m.onChange),
		session.WithOnMessage(func(client.ChatMessage) { m.player.Play(sound.CueMessage) }),
	)
	if err != nil {
		return nil, err
	}
	m.ctrl = ctrl
	m.snap = ctrl.Snapshot()

	// 传输层回调运行在其他 goroutine，通过 channel 交给 Update
	c.OnReconnecting = func(attempt, maxTries int) {
		m.emit(ReconnectingMsg{Attempt: attempt, MaxTries: maxTries})
	}
	c.OnReconnect = func() { m.emit(ReconnectSuccessMsg{}) }
	c.OnClose = func() { m.emit(ConnectionClosedMsg{}) }

	return m, nil
}

func (m *ChatModel) emit(msg tea.Msg) {
	select {
	case m.events <- msg:
	default:
		logger.LogError("ui event dropped: %T", msg)
	}
}

// onChange 控制器状态变化后刷新快照，新用户加入时播放提示音
func (m *ChatModel) onChange(snap session.Snapshot) {
	if len(snap.Roster) > len(m.snap.Roster) && len(m.snap.Roster) > 0 {
		m.player.Play(sound.CueJoin)
	}
	m.snap = snap
}

func (m *ChatModel) Init() tea.Cmd {
	go func() {
		if err := m.player.Init(); err != nil {
			logger.LogError("sound init: %v", err)
		}
	}()

	return tea.Batch(
		m.connectToServer(),
		textinput.Blink,
		m.listenForEvents(),
	)
}

// connectToServer 连接服务器
func (m *ChatModel) connectToServer() tea.Cmd {
	return func() tea.Msg {
		if err := m.client.Connect(); err != nil {
			return ConnectionErrorMsg{Err: err}
		}
		return ConnectedMsg{}
	}
}

// listenForFrames 监听服务器消息
func (m *ChatModel) listenForFrames() tea.Cmd {
	return func() tea.Msg {
		text, err := m.client.Receive()
		if err != nil {
			if errors.Is(err, transport.ErrClosed) {
				return ConnectionClosedMsg{}
			}
			return ConnectionErrorMsg{Err: err}
		}
		return FrameMsg{Text: text}
	}
}

// listenForEvents 监听传输层事件
func (m *ChatModel) listenForEvents() tea.Cmd {
	return func() tea.Msg {
		return <-m.events
	}
}

func clearStatusAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return ClearStatusMsg{} })
}

func (m *ChatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = max(msg.Width-10, 20)

	case tea.KeyMsg:
		return m, m.handleKey(msg)

	case ConnectedMsg:
		m.error = ""
		m.ctrl.Start()
		m.snap = m.ctrl.Snapshot()
		cmds = append(cmds, m.listenForFrames())

	case ConnectionErrorMsg:
		m.error = fmt.Sprintf("无法连接到服务器: %v\n\n按 Ctrl+C 退出", msg.Err)

	case ConnectionClosedMsg:
		m.status = ""
		m.error = "连接已断开，按 Ctrl+C 退出"

	case FrameMsg:
		m.ctrl.HandleFrame(msg.Text)
		cmds = append(cmds, m.listenForFrames())

	case ReconnectingMsg:
		m.status = common.MutedStyle.Render(fmt.Sprintf("🔄 正在重连 (%d/%d)...", msg.Attempt, msg.MaxTries))
		cmds = append(cmds, m.listenForEvents())

	case ReconnectSuccessMsg:
		m.ctrl.Restart()
		m.status = common.SuccessStyle.Render("✅ 重连成功！")
		cmds = append(cmds, clearStatusAfter(3*time.Second), m.listenForEvents())

	case ClearStatusMsg:
		m.status = ""

	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// handleKey 按键交给控制器，输入框与草稿保持一致
func (m *ChatModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	intent := input.Classify(msg, m.snap.EmojiPickerOpen)

	switch intent.Action {
	case input.ActionQuit:
		m.client.Close()
		m.player.Close()
		return tea.Quit

	case input.ActionEnter:
		m.ctrl.KeyDown(session.KeyEnter, intent.Modifier)
		m.syncInput()

	case input.ActionToggleEmoji:
		m.ctrl.ToggleEmojiPicker()

	case input.ActionCloseEmoji:
		m.ctrl.CloseEmojiPicker()

	case input.ActionPickEmoji:
		m.ctrl.PickEmoji(intent.Glyph)
		m.snap = m.ctrl.Snapshot()
		m.syncInput()

	case input.ActionEdit:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		if value := m.input.Value(); value != m.ctrl.Draft() {
			m.ctrl.Keystroke(value)
			m.snap = m.ctrl.Snapshot()
		}
		return cmd
	}
	return nil
}

func (m *ChatModel) syncInput() {
	if m.input.Value() != m.ctrl.Draft() {
		m.input.SetValue(m.ctrl.Draft())
		m.input.CursorEnd()
	}
}

func (m *ChatModel) View() string {
	if m.error != "" {
		return common.DocStyle.Render(common.ErrorStyle.Render(m.error))
	}
	return view.ChatView(m.snap, view.Layout{
		Width:  m.width,
		Height: m.height,
		Input:  m.input.View(),
		Status: m.status,
	})
}
