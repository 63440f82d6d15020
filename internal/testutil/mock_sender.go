//go:build !production

package testutil

import (
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/palemoky/yewchat/internal/apperrors"
)

// MockSender 发送端 mock
type MockSender struct {
	mock.Mock
}

func (m *MockSender) TrySend(text string) error {
	args := m.Called(text)
	return args.Error(0)
}

// RecordingSender 记录所有发出的帧，不使用 testify（用于不需要断言调用的测试）
type RecordingSender struct {
	mu     sync.Mutex
	Frames []string
	Fail   bool // 为 true 时模拟通道已关闭
}

func (s *RecordingSender) TrySend(text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Fail {
		return apperrors.ErrSendFailure
	}
	s.Frames = append(s.Frames, text)
	return nil
}

// Sent returns a copy of the recorded frames.
func (s *RecordingSender) Sent() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.Frames))
	copy(out, s.Frames)
	return out
}

// Reset forgets the recorded frames.
func (s *RecordingSender) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Frames = nil
}
