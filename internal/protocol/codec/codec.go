// Package codec encodes and decodes envelopes and their inner payloads.
//
// Output is canonical: fields in declaration order, no HTML escaping and no
// trailing newline, so a canonical text survives Decode followed by Encode
// byte for byte.
package codec

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/palemoky/yewchat/internal/protocol"
)

var errTrailingData = errors.New("trailing data after value")

// Encode 将信封编码为 JSON 文本
func Encode(env *protocol.Envelope) (string, error) {
	if env == nil {
		return "", fmt.Errorf("%w: nil envelope", protocol.ErrMalformedEnvelope)
	}
	if err := env.Validate(); err != nil {
		return "", fmt.Errorf("%w: payload does not match kind %q", err, env.Kind)
	}
	return marshal(env)
}

// MustEncode 编码信封，失败时 panic
func MustEncode(env *protocol.Envelope) string {
	text, err := Encode(env)
	if err != nil {
		panic(err)
	}
	return text
}

// rawEnvelope keeps every field nullable so absence can be told apart from
// zero values.
type rawEnvelope struct {
	Kind      *protocol.Kind `json:"messageType"`
	DataArray []string       `json:"dataArray"`
	Data      *string        `json:"data"`
}

// Decode 从 JSON 文本解码信封
func Decode(text string) (*protocol.Envelope, error) {
	var raw rawEnvelope
	if err := strictUnmarshal(text, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", protocol.ErrMalformedEnvelope, err)
	}
	if raw.Kind == nil {
		return nil, fmt.Errorf("%w: missing messageType", protocol.ErrMalformedEnvelope)
	}

	env := &protocol.Envelope{
		Kind:      *raw.Kind,
		DataArray: raw.DataArray,
		Data:      raw.Data,
	}
	if !env.Kind.Valid() {
		return nil, fmt.Errorf("%w: unknown messageType %q", protocol.ErrMalformedEnvelope, env.Kind)
	}
	if err := env.Validate(); err != nil {
		return nil, fmt.Errorf("%w: payload does not match kind %q", err, env.Kind)
	}
	return env, nil
}

// NewTyping 创建输入状态消息
func NewTyping(username string, isTyping bool) (*protocol.Envelope, error) {
	data, err := EncodeTypingStatus(protocol.TypingStatus{Username: username, IsTyping: isTyping})
	if err != nil {
		return nil, err
	}
	return protocol.NewText(protocol.KindTyping, data), nil
}

// NewChatMessage 创建带发送者信息的聊天消息（对端广播使用）
func NewChatMessage(md protocol.MessageData) (*protocol.Envelope, error) {
	data, err := EncodeMessageData(md)
	if err != nil {
		return nil, err
	}
	return protocol.NewText(protocol.KindMessage, data), nil
}

// EncodeMessageData encodes the inner payload of a message envelope.
func EncodeMessageData(md protocol.MessageData) (string, error) {
	return marshal(md)
}

// EncodeTypingStatus encodes the inner payload of a typing envelope.
func EncodeTypingStatus(ts protocol.TypingStatus) (string, error) {
	return marshal(ts)
}

// DecodeMessageData 解析 message 信封的内层数据
func DecodeMessageData(text string) (*protocol.MessageData, error) {
	var raw struct {
		From      *string `json:"from"`
		Message   *string `json:"message"`
		Timestamp *string `json:"timestamp"`
	}
	if err := strictUnmarshal(text, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", protocol.ErrMalformedPayload, err)
	}
	if raw.From == nil || raw.Message == nil {
		return nil, fmt.Errorf("%w: message requires from and message", protocol.ErrMalformedPayload)
	}
	return &protocol.MessageData{
		From:      *raw.From,
		Message:   *raw.Message,
		Timestamp: raw.Timestamp,
	}, nil
}

// DecodeTypingStatus 解析 typing 信封的内层数据
func DecodeTypingStatus(text string) (*protocol.TypingStatus, error) {
	var raw struct {
		Username *string `json:"username"`
		IsTyping *bool   `json:"isTyping"`
	}
	if err := strictUnmarshal(text, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", protocol.ErrMalformedPayload, err)
	}
	if raw.Username == nil || raw.IsTyping == nil {
		return nil, fmt.Errorf("%w: typing requires username and isTyping", protocol.ErrMalformedPayload)
	}
	return &protocol.TypingStatus{Username: *raw.Username, IsTyping: *raw.IsTyping}, nil
}

func marshal(v any) (string, error) {
	buf := GetBuffer()
	defer PutBuffer(buf)

	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

func strictUnmarshal(text string, v any) error {
	dec := json.NewDecoder(strings.NewReader(text))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return errTrailingData
	}
	return nil
}
