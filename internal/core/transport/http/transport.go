package http

import (
	"context"
	"fmt"
	nethttp "net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mee-pdn/go-mee/pkg/interfaces"
	"github.com/mee-pdn/go-mee/pkg/lib/log"
	"github.com/mee-pdn/go-mee/pkg/types"
)

var logger = log.Logger("core/transport/http")

// Name 传输名（用于指标标签）
const Name = "http"

// inboxSuffix 收件箱路径后缀
const inboxSuffix = "/inbox"

// Transport HTTP 推送传输
type Transport struct {
	baseURL     string
	client      *nethttp.Client
	sendTimeout time.Duration
}

var _ interfaces.Transport = (*Transport)(nil)

// Option Transport 选项
type Option func(*Transport)

// WithBaseURL 设置本节点对外可达的基础 URL
func WithBaseURL(base string) Option {
	return func(t *Transport) {
		t.baseURL = strings.TrimRight(base, "/")
	}
}

// WithHTTPClient 设置 HTTP 客户端
func WithHTTPClient(c *nethttp.Client) Option {
	return func(t *Transport) {
		t.client = c
	}
}

// WithSendTimeout 设置单次发送超时，0 表示只受调用方 context 约束
func WithSendTimeout(d time.Duration) Option {
	return func(t *Transport) {
		t.sendTimeout = d
	}
}

// New 创建 HTTP 推送传输
func New(opts ...Option) *Transport {
	t := &Transport{
		client: &nethttp.Client{},
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Ticket 返回 <base_url>/profiles/<profile>/inbox
func (t *Transport) Ticket(_ context.Context, profile types.ProfileName) (types.Ticket, error) {
	if t.baseURL == "" {
		return "", interfaces.NewTransportError("ticket", interfaces.ErrNotBound)
	}
	if profile == "" {
		return "", interfaces.NewTransportError("ticket", types.ErrEmptyProfile)
	}
	return types.Ticket(t.baseURL + "/profiles/" + url.PathEscape(profile.String()) + inboxSuffix), nil
}

// OpenSession 校验票据并创建会话，不发起任何请求
func (t *Transport) OpenSession(_ context.Context, local types.ProfileName, remote types.Ticket) (interfaces.Session, error) {
	target, err := parseTicket(remote)
	if err != nil {
		return nil, interfaces.NewTransportError("open", err)
	}
	logger.Debug("打开 HTTP 会话", "local", local, "remote", target)
	return &session{
		transport: t,
		local:     local,
		target:    target,
		done:      make(chan struct{}),
	}, nil
}

// parseTicket 票据必须是以 /inbox 结尾的绝对 http(s) URL
func parseTicket(ticket types.Ticket) (string, error) {
	if ticket == "" {
		return "", types.ErrEmptyTicket
	}
	u, err := url.Parse(ticket.String())
	if err != nil {
		return "", fmt.Errorf("%w: %v", interfaces.ErrInvalidTicket, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("%w: scheme %q", interfaces.ErrInvalidTicket, u.Scheme)
	}
	if u.Host == "" || !strings.HasSuffix(u.Path, inboxSuffix) {
		return "", fmt.Errorf("%w: %q", interfaces.ErrInvalidTicket, ticket)
	}
	return u.String(), nil
}
