package connections

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/multierr"

	"github.com/mee-pdn/go-mee/pkg/interfaces"
	"github.com/mee-pdn/go-mee/pkg/lib/log"
	"github.com/mee-pdn/go-mee/pkg/types"
)

var logger = log.Logger("protocol/connections")

// Info 连接快照
type Info struct {
	ID       string       `json:"id"`
	Ticket   types.Ticket `json:"ticket"`
	OpenedAt time.Time    `json:"opened_at"`
	Sent     int          `json:"sent"`
}

// conn 已打开的连接
type conn struct {
	info    Info
	session interfaces.Session
}

// Registry 连接注册表
type Registry struct {
	transport interfaces.Transport
	local     types.ProfileName

	mu    sync.Mutex
	conns map[string]*conn
}

// New 创建注册表
func New(t interfaces.Transport, local types.ProfileName) (*Registry, error) {
	if t == nil {
		return nil, ErrNilTransport
	}
	return &Registry{
		transport: t,
		local:     local,
		conns:     make(map[string]*conn),
	}, nil
}

// Open 对 ticket 打开会话并返回连接 ID
func (r *Registry) Open(ctx context.Context, ticket types.Ticket) (string, error) {
	s, err := r.transport.OpenSession(ctx, r.local, ticket)
	if err != nil {
		return "", err
	}

	id := uuid.New().String()
	r.mu.Lock()
	r.conns[id] = &conn{
		info:    Info{ID: id, Ticket: ticket, OpenedAt: time.Now()},
		session: s,
	}
	r.mu.Unlock()

	logger.DebugContext(ctx, "连接已打开", "id", id, "ticket", ticket)
	return id, nil
}

// List 返回全部连接，按打开时间排序
func (r *Registry) List() []Info {
	r.mu.Lock()
	out := make([]Info, 0, len(r.conns))
	for _, c := range r.conns {
		out = append(out, c.info)
	}
	r.mu.Unlock()

	sort.Slice(out, func(i, j int) bool {
		return out[i].OpenedAt.Before(out[j].OpenedAt)
	})
	return out
}

// Send 在连接上发送消息
//
// msg.From 为空时由会话填充为本地 Profile。
func (r *Registry) Send(ctx context.Context, id string, msg types.Message) error {
	r.mu.Lock()
	c, ok := r.conns[id]
	r.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	if err := c.session.Send(ctx, msg); err != nil {
		return err
	}

	r.mu.Lock()
	c.info.Sent++
	r.mu.Unlock()
	return nil
}

// Close 关闭并移除连接
func (r *Registry) Close(id string) error {
	r.mu.Lock()
	c, ok := r.conns[id]
	delete(r.conns, id)
	r.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	logger.Debug("连接已关闭", "id", id)
	return c.session.Close()
}

// CloseAll 关闭全部连接
func (r *Registry) CloseAll() error {
	r.mu.Lock()
	conns := r.conns
	r.conns = make(map[string]*conn)
	r.mu.Unlock()

	var err error
	for _, c := range conns {
		err = multierr.Append(err, c.session.Close())
	}
	return err
}
