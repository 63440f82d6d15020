package protocol

import "errors"

// 错误码
const (
	ErrCodeUnknown           = 1000
	ErrCodeMalformedEnvelope = 1001
	ErrCodeMalformedPayload  = 1002
	ErrCodeSendFailure       = 2001
	ErrCodeMissingIdentity   = 3001
)

// ErrorMessages 错误码对应的消息
var ErrorMessages = map[int]string{
	ErrCodeUnknown:           "unknown error",
	ErrCodeMalformedEnvelope: "malformed envelope",
	ErrCodeMalformedPayload:  "malformed payload",
	ErrCodeSendFailure:       "send failure",
	ErrCodeMissingIdentity:   "missing identity",
}

// Decode failures. Callers match them with errors.Is.
var (
	ErrMalformedEnvelope = errors.New(ErrorMessages[ErrCodeMalformedEnvelope])
	ErrMalformedPayload  = errors.New(ErrorMessages[ErrCodeMalformedPayload])
)
