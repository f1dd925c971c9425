package memory

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/mee-pdn/go-mee/pkg/interfaces"
	"github.com/mee-pdn/go-mee/pkg/lib/log"
	"github.com/mee-pdn/go-mee/pkg/types"
)

var logger = log.Logger("core/transport/memory")

// Name 传输名（用于指标标签）
const Name = "memory"

// scheme 票据 scheme
const scheme = "mem"

// Transport 进程内传输
type Transport struct {
	hub *Hub
}

var _ interfaces.Transport = (*Transport)(nil)

// New 在 hub 上创建传输
func New(hub *Hub) *Transport {
	return &Transport{hub: hub}
}

// Hub 返回所在中继
func (t *Transport) Hub() *Hub {
	return t.hub
}

// Bind 为 profile 注册入站处理器
func (t *Transport) Bind(profile types.ProfileName, handler interfaces.InboundHandler) func() {
	return t.hub.Bind(profile, handler)
}

// Ticket 返回 mem://<hub>/<profile>
func (t *Transport) Ticket(_ context.Context, profile types.ProfileName) (types.Ticket, error) {
	if profile == "" {
		return "", interfaces.NewTransportError("ticket", types.ErrEmptyProfile)
	}
	u := url.URL{Scheme: scheme, Host: t.hub.Name(), Path: "/" + profile.String()}
	return types.Ticket(u.String()), nil
}

// OpenSession 校验票据属于本中继
func (t *Transport) OpenSession(_ context.Context, local types.ProfileName, remote types.Ticket) (interfaces.Session, error) {
	to, err := t.parseTicket(remote)
	if err != nil {
		return nil, interfaces.NewTransportError("open", err)
	}
	return &session{
		hub:    t.hub,
		local:  local,
		remote: to,
		done:   make(chan struct{}),
	}, nil
}

func (t *Transport) parseTicket(ticket types.Ticket) (types.ProfileName, error) {
	if ticket == "" {
		return "", types.ErrEmptyTicket
	}
	u, err := url.Parse(ticket.String())
	if err != nil {
		return "", fmt.Errorf("%w: %v", interfaces.ErrInvalidTicket, err)
	}
	if u.Scheme != scheme {
		return "", fmt.Errorf("%w: scheme %q", interfaces.ErrInvalidTicket, u.Scheme)
	}
	if u.Host != t.hub.Name() {
		return "", fmt.Errorf("%w: %q", ErrWrongHub, u.Host)
	}
	profile := strings.TrimPrefix(u.Path, "/")
	if profile == "" || strings.Contains(profile, "/") {
		return "", fmt.Errorf("%w: %q", interfaces.ErrInvalidTicket, ticket)
	}
	return types.ProfileName(profile), nil
}

// session 内存会话
type session struct {
	hub    *Hub
	local  types.ProfileName
	remote types.ProfileName

	sendMu    sync.Mutex
	closeOnce sync.Once
	done      chan struct{}
}

var _ interfaces.Session = (*session)(nil)

// Send 把消息交给对方
func (s *session) Send(ctx context.Context, msg types.Message) error {
	select {
	case <-s.done:
		return interfaces.NewTransportError("send", interfaces.ErrSessionClosed)
	default:
	}
	if msg.From == "" {
		msg.From = s.local
	}
	msg.Body = append([]byte(nil), msg.Body...)

	s.sendMu.Lock()
	defer s.sendMu.Unlock()
	if err := s.hub.deliver(ctx, s.remote, msg); err != nil {
		return interfaces.NewTransportError("send", err)
	}
	return nil
}

// Recv 从本地信箱取下一条消息
//
// 信箱为空时阻塞；会话关闭后返回 (nil, nil)。
func (s *session) Recv(ctx context.Context) (*types.Message, error) {
	for {
		select {
		case <-s.done:
			return nil, nil
		default:
		}

		msg, wait := s.hub.pop(s.local)
		if msg != nil {
			return msg, nil
		}

		select {
		case <-wait:
		case <-s.done:
			return nil, nil
		case <-ctx.Done():
			return nil, interfaces.NewTransportError("recv", ctx.Err())
		}
	}
}

// Close 关闭会话（幂等）
func (s *session) Close() error {
	s.closeOnce.Do(func() { close(s.done) })
	return nil
}
