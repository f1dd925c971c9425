package ws

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/mee-pdn/go-mee/pkg/interfaces"
	"github.com/mee-pdn/go-mee/pkg/lib/log"
	"github.com/mee-pdn/go-mee/pkg/types"
)

var logger = log.Logger("core/transport/ws")

// Name 传输名（用于指标标签）
const Name = "ws"

// wsSuffix 票据路径后缀
const wsSuffix = "/ws"

// Transport WebSocket 传输
type Transport struct {
	baseURL string // ws:// 或 wss://，无尾部 '/'
	dialer  *websocket.Dialer
}

var _ interfaces.Transport = (*Transport)(nil)

// Option Transport 选项
type Option func(*Transport) error

// WithBaseURL 设置本节点对外可达的基础 URL
//
// http(s):// 会被转换为 ws(s)://。
func WithBaseURL(base string) Option {
	return func(t *Transport) error {
		u, err := url.Parse(strings.TrimRight(base, "/"))
		if err != nil {
			return err
		}
		switch u.Scheme {
		case "http", "ws":
			u.Scheme = "ws"
		case "https", "wss":
			u.Scheme = "wss"
		default:
			return fmt.Errorf("ws: unsupported base url scheme %q", u.Scheme)
		}
		t.baseURL = u.String()
		return nil
	}
}

// WithDialTimeout 设置握手超时
func WithDialTimeout(d time.Duration) Option {
	return func(t *Transport) error {
		t.dialer.HandshakeTimeout = d
		return nil
	}
}

// New 创建 WebSocket 传输
func New(opts ...Option) (*Transport, error) {
	t := &Transport{
		dialer: &websocket.Dialer{
			Proxy:            websocket.DefaultDialer.Proxy,
			HandshakeTimeout: 5 * time.Second,
		},
	}
	for _, opt := range opts {
		if err := opt(t); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// Ticket 返回 ws(s)://<host>/profiles/<profile>/ws
func (t *Transport) Ticket(_ context.Context, profile types.ProfileName) (types.Ticket, error) {
	if t.baseURL == "" {
		return "", interfaces.NewTransportError("ticket", interfaces.ErrNotBound)
	}
	if profile == "" {
		return "", interfaces.NewTransportError("ticket", types.ErrEmptyProfile)
	}
	return types.Ticket(t.baseURL + "/profiles/" + url.PathEscape(profile.String()) + wsSuffix), nil
}

// OpenSession 校验票据并创建会话，连接在首次收发时建立
func (t *Transport) OpenSession(_ context.Context, local types.ProfileName, remote types.Ticket) (interfaces.Session, error) {
	target, err := parseTicket(remote)
	if err != nil {
		return nil, interfaces.NewTransportError("open", err)
	}
	return newSession(t.dialer, local, target), nil
}

// parseTicket 票据必须是以 /ws 结尾的绝对 ws(s) URL
func parseTicket(ticket types.Ticket) (string, error) {
	if ticket == "" {
		return "", types.ErrEmptyTicket
	}
	u, err := url.Parse(ticket.String())
	if err != nil {
		return "", fmt.Errorf("%w: %v", interfaces.ErrInvalidTicket, err)
	}
	if u.Scheme != "ws" && u.Scheme != "wss" {
		return "", fmt.Errorf("%w: scheme %q", interfaces.ErrInvalidTicket, u.Scheme)
	}
	if u.Host == "" || !strings.HasSuffix(u.Path, wsSuffix) {
		return "", fmt.Errorf("%w: %q", interfaces.ErrInvalidTicket, ticket)
	}
	return u.String(), nil
}
