package ui

// ConnectedMsg 连接成功消息
type ConnectedMsg struct{}

// ConnectionErrorMsg 连接错误消息
type ConnectionErrorMsg struct {
	Err error
}

// ConnectionClosedMsg 连接最终关闭（重连次数耗尽或服务器关闭）
type ConnectionClosedMsg struct{}

// FrameMsg 收到一帧
type FrameMsg struct {
	Text string
}

// ReconnectingMsg 正在重连消息
type ReconnectingMsg struct {
	Attempt  int
	MaxTries int
}

// ReconnectSuccessMsg 重连成功消息
type ReconnectSuccessMsg struct{}

// ClearStatusMsg 清除状态提示
type ClearStatusMsg struct{}
