// Package apperrors holds the typed errors shared by the client and the relay.
package apperrors

import (
	"errors"

	"github.com/palemoky/yewchat/internal/protocol"
)

// ChatError 聊天错误（客户端和中继共享）
type ChatError struct {
	Code    int
	Message string
}

func (e *ChatError) Error() string {
	return e.Message
}

// Is matches any ChatError with the same code.
func (e *ChatError) Is(target error) bool {
	t, ok := target.(*ChatError)
	return ok && t.Code == e.Code
}

func newChatError(code int) *ChatError {
	return &ChatError{Code: code, Message: protocol.ErrorMessages[code]}
}

// 预定义错误
var (
	ErrSendFailure     = newChatError(protocol.ErrCodeSendFailure)
	ErrMissingIdentity = newChatError(protocol.ErrCodeMissingIdentity)
)

// CodeOf returns the error code for err, or ErrCodeUnknown.
func CodeOf(err error) int {
	var ce *ChatError
	switch {
	case err == nil:
		return 0
	case errors.As(err, &ce):
		return ce.Code
	case errors.Is(err, protocol.ErrMalformedEnvelope):
		return protocol.ErrCodeMalformedEnvelope
	case errors.Is(err, protocol.ErrMalformedPayload):
		return protocol.ErrCodeMalformedPayload
	default:
		return protocol.ErrCodeUnknown
	}
}
