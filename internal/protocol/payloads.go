package protocol

// NewUsers 创建在线用户列表消息
func NewUsers(names []string) *Envelope {
	list := make([]string, len(names))
	copy(list, names)
	return &Envelope{Kind: KindUsers, DataArray: list}
}

// NewRegister 创建注册消息
func NewRegister(username string) *Envelope {
	return newTextEnvelope(KindRegister, username)
}

// NewMessage 创建聊天消息。data 为原始输入文本，发送者与时间由对端填充。
func NewMessage(text string) *Envelope {
	return newTextEnvelope(KindMessage, text)
}

// NewText creates a single-string envelope with an already encoded payload.
func NewText(kind Kind, data string) *Envelope {
	return newTextEnvelope(kind, data)
}

func newTextEnvelope(kind Kind, data string) *Envelope {
	return &Envelope{Kind: kind, Data: &data}
}

// StringPtr returns a pointer to s.
func StringPtr(s string) *string {
	return &s
}
