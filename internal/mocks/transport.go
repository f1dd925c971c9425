package mocks

import (
	"context"
	"sync"

	"github.com/mee-pdn/go-mee/pkg/interfaces"
	"github.com/mee-pdn/go-mee/pkg/types"
)

// MockTransport 模拟 Transport 接口实现
type MockTransport struct {
	// 可覆盖的方法
	TicketFunc      func(ctx context.Context, profile types.ProfileName) (types.Ticket, error)
	OpenSessionFunc func(ctx context.Context, local types.ProfileName, remote types.Ticket) (interfaces.Session, error)

	// 调用记录
	mu               sync.Mutex
	TicketCalls      []types.ProfileName
	OpenSessionCalls []OpenSessionCall

	// Sessions 默认 OpenSession 创建的会话
	Sessions []*MockSession
}

// OpenSessionCall 记录 OpenSession 调用
type OpenSessionCall struct {
	Local  types.ProfileName
	Remote types.Ticket
}

var _ interfaces.Transport = (*MockTransport)(nil)

// NewMockTransport 创建带有默认值的 MockTransport
func NewMockTransport() *MockTransport {
	return &MockTransport{}
}

// Ticket 返回票据，默认 mock://<profile>
func (m *MockTransport) Ticket(ctx context.Context, profile types.ProfileName) (types.Ticket, error) {
	m.mu.Lock()
	m.TicketCalls = append(m.TicketCalls, profile)
	m.mu.Unlock()

	if m.TicketFunc != nil {
		return m.TicketFunc(ctx, profile)
	}
	return types.Ticket("mock://" + profile.String()), nil
}

// OpenSession 打开会话，默认返回记录发送的 MockSession
func (m *MockTransport) OpenSession(ctx context.Context, local types.ProfileName, remote types.Ticket) (interfaces.Session, error) {
	m.mu.Lock()
	m.OpenSessionCalls = append(m.OpenSessionCalls, OpenSessionCall{Local: local, Remote: remote})
	m.mu.Unlock()

	if m.OpenSessionFunc != nil {
		return m.OpenSessionFunc(ctx, local, remote)
	}

	s := NewMockSession()
	m.mu.Lock()
	m.Sessions = append(m.Sessions, s)
	m.mu.Unlock()
	return s, nil
}

// ============================================================================
//                              MockSession
// ============================================================================

// MockSession 模拟 Session 接口实现
type MockSession struct {
	// 可覆盖的方法
	SendFunc func(ctx context.Context, msg types.Message) error
	RecvFunc func(ctx context.Context) (*types.Message, error)

	// 调用记录
	mu     sync.Mutex
	Sent   []types.Message
	Closed bool
}

var _ interfaces.Session = (*MockSession)(nil)

// NewMockSession 创建 MockSession
func NewMockSession() *MockSession {
	return &MockSession{}
}

// Send 记录并发送消息
func (s *MockSession) Send(ctx context.Context, msg types.Message) error {
	if s.SendFunc != nil {
		if err := s.SendFunc(ctx, msg); err != nil {
			return err
		}
	}
	s.mu.Lock()
	s.Sent = append(s.Sent, msg)
	s.mu.Unlock()
	return nil
}

// Recv 接收消息，默认表现为只推送的传输 (nil, nil)
func (s *MockSession) Recv(ctx context.Context) (*types.Message, error) {
	if s.RecvFunc != nil {
		return s.RecvFunc(ctx)
	}
	return nil, nil
}

// Close 关闭会话
func (s *MockSession) Close() error {
	s.mu.Lock()
	s.Closed = true
	s.mu.Unlock()
	return nil
}

// SentMessages 返回已发送消息的快照
func (s *MockSession) SentMessages() []types.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]types.Message(nil), s.Sent...)
}

// IsClosed 是否已关闭
func (s *MockSession) IsClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Closed
}
