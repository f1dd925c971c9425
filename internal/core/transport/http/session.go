package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	nethttp "net/http"
	"sync"

	"github.com/mee-pdn/go-mee/pkg/interfaces"
	"github.com/mee-pdn/go-mee/pkg/types"
)

// session HTTP 推送会话
type session struct {
	transport *Transport
	local     types.ProfileName
	target    string

	// sendMu 保证同一会话上的发送按调用顺序交给传输
	sendMu    sync.Mutex
	closeOnce sync.Once
	done      chan struct{}
}

var _ interfaces.Session = (*session)(nil)

// Send POST 一条消息到对方收件箱
//
// 消息未设置 From 时使用会话的本地 Profile。
func (s *session) Send(ctx context.Context, msg types.Message) error {
	select {
	case <-s.done:
		return interfaces.NewTransportError("send", interfaces.ErrSessionClosed)
	default:
	}

	if msg.From == "" {
		msg.From = s.local
	}
	payload, err := json.Marshal(types.InboxItemFromMessage(msg))
	if err != nil {
		return interfaces.NewTransportError("send", err)
	}

	s.sendMu.Lock()
	defer s.sendMu.Unlock()

	if d := s.transport.sendTimeout; d > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d)
		defer cancel()
	}

	req, err := nethttp.NewRequestWithContext(ctx, nethttp.MethodPost, s.target, bytes.NewReader(payload))
	if err != nil {
		return interfaces.NewTransportError("send", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.transport.client.Do(req)
	if err != nil {
		return interfaces.NewTransportError("send", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return interfaces.NewTransportError("send",
			fmt.Errorf("unexpected status %d from %s", resp.StatusCode, s.target))
	}
	logger.Debug("消息已推送", "to", s.target, "kind", msg.Kind)
	return nil
}

// Recv HTTP 推送没有入站路径
func (s *session) Recv(context.Context) (*types.Message, error) {
	return nil, nil
}

// Close 释放会话（幂等）
func (s *session) Close() error {
	s.closeOnce.Do(func() { close(s.done) })
	return nil
}
