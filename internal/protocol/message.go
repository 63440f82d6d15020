// Package protocol defines the envelope exchanged with the chat peer.
package protocol

// Kind 消息类型
type Kind string

// 服务端 ↔ 客户端 消息类型
const (
	KindUsers    Kind = "users"    // 在线用户列表
	KindRegister Kind = "register" // 注册用户名
	KindMessage  Kind = "message"  // 聊天消息
	KindTyping   Kind = "typing"   // 输入状态
)

// Valid reports whether k is one of the known kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindUsers, KindRegister, KindMessage, KindTyping:
		return true
	}
	return false
}

// CarriesList reports whether the kind uses the dataArray payload.
func (k Kind) CarriesList() bool {
	return k == KindUsers
}

// Envelope 基础消息结构
//
// Exactly one of DataArray and Data is set: DataArray for KindUsers, Data for
// every other kind.
type Envelope struct {
	Kind      Kind     `json:"messageType"`
	DataArray []string `json:"dataArray"`
	Data      *string  `json:"data"`
}

// Text returns the single-string payload, or "" when absent.
func (e *Envelope) Text() string {
	if e == nil || e.Data == nil {
		return ""
	}
	return *e.Data
}

// Validate checks that the populated payload matches the kind.
func (e *Envelope) Validate() error {
	if !e.Kind.Valid() {
		return ErrMalformedEnvelope
	}
	if e.Kind.CarriesList() {
		if e.DataArray == nil || e.Data != nil {
			return ErrMalformedEnvelope
		}
		return nil
	}
	if e.Data == nil || e.DataArray != nil {
		return ErrMalformedEnvelope
	}
	return nil
}

// MessageData 聊天消息内容（message 信封的 data 字段）
type MessageData struct {
	From      string  `json:"from"`
	Message   string  `json:"message"`
	Timestamp *string `json:"timestamp"`
}

// TypingStatus 输入状态（typing 信封的 data 字段）
type TypingStatus struct {
	Username string `json:"username"`
	IsTyping bool   `json:"isTyping"`
}
