package ws

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/mee-pdn/go-mee/pkg/interfaces"
	"github.com/mee-pdn/go-mee/pkg/types"
)

// closeGracePeriod 发送关闭帧的等待时间
const closeGracePeriod = time.Second

// session WebSocket 会话
//
// gorilla/websocket 允许一个并发读者和一个并发写者，
// 读写分别由 readMu / writeMu 串行化。
type session struct {
	dialer *websocket.Dialer
	local  types.ProfileName
	target string

	connMu sync.Mutex
	conn   *websocket.Conn
	closed bool

	readMu  sync.Mutex
	writeMu sync.Mutex
}

var _ interfaces.Session = (*session)(nil)

func newSession(dialer *websocket.Dialer, local types.ProfileName, target string) *session {
	return &session{
		dialer: dialer,
		local:  local,
		target: target,
	}
}

// connect 返回当前连接，必要时拨号
func (s *session) connect(ctx context.Context) (*websocket.Conn, error) {
	s.connMu.Lock()
	defer s.connMu.Unlock()

	if s.closed {
		return nil, interfaces.ErrSessionClosed
	}
	if s.conn != nil {
		return s.conn, nil
	}

	conn, resp, err := s.dialer.DialContext(ctx, s.target, nil)
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}
	if err != nil {
		return nil, err
	}
	logger.Debug("WebSocket 已连接", "target", s.target)
	s.conn = conn
	return conn, nil
}

// drop 丢弃损坏的连接，下次收发重新拨号
func (s *session) drop(conn *websocket.Conn) {
	s.connMu.Lock()
	if s.conn == conn {
		s.conn = nil
	}
	s.connMu.Unlock()
	_ = conn.Close()
}

// Send 写一个 JSON 帧
func (s *session) Send(ctx context.Context, msg types.Message) error {
	conn, err := s.connect(ctx)
	if err != nil {
		return interfaces.NewTransportError("send", err)
	}
	if msg.From == "" {
		msg.From = s.local
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	deadline, _ := ctx.Deadline()
	_ = conn.SetWriteDeadline(deadline)
	if err := conn.WriteJSON(types.InboxItemFromMessage(msg)); err != nil {
		s.drop(conn)
		return interfaces.NewTransportError("send", err)
	}
	return nil
}

// Recv 读一个 JSON 帧
//
// 对端正常关闭连接时返回 (nil, nil)。ctx 取消会中断读取并丢弃连接。
func (s *session) Recv(ctx context.Context) (*types.Message, error) {
	conn, err := s.connect(ctx)
	if err != nil {
		if errors.Is(err, interfaces.ErrSessionClosed) {
			return nil, nil
		}
		return nil, interfaces.NewTransportError("recv", err)
	}

	s.readMu.Lock()
	defer s.readMu.Unlock()

	stop := context.AfterFunc(ctx, func() {
		_ = conn.SetReadDeadline(time.Now())
	})
	defer stop()

	var item types.InboxItem
	if err := conn.ReadJSON(&item); err != nil {
		s.drop(conn)
		switch {
		case websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway):
			return nil, nil
		case ctx.Err() != nil:
			return nil, interfaces.NewTransportError("recv", ctx.Err())
		default:
			return nil, interfaces.NewTransportError("recv", err)
		}
	}

	msg, err := item.Message()
	if err != nil {
		return nil, interfaces.NewTransportError("recv", err)
	}
	return &msg, nil
}

// Close 发送关闭帧并释放连接（幂等）
func (s *session) Close() error {
	s.connMu.Lock()
	conn := s.conn
	s.conn = nil
	s.closed = true
	s.connMu.Unlock()

	if conn == nil {
		return nil
	}

	s.writeMu.Lock()
	_ = conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(closeGracePeriod))
	s.writeMu.Unlock()
	return conn.Close()
}
