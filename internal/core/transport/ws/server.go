package ws

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/mee-pdn/go-mee/pkg/interfaces"
	"github.com/mee-pdn/go-mee/pkg/types"
)

// Server WebSocket 服务端
//
// 每个连接读取 JSON 帧并交给入站处理器；ping 帧回送同样内容的 ping。
type Server struct {
	profile  types.ProfileName
	handler  interfaces.InboundHandler
	upgrader websocket.Upgrader

	mu    sync.Mutex
	conns map[*websocket.Conn]struct{}
}

// NewServer 创建服务端
func NewServer(profile types.ProfileName, handler interfaces.InboundHandler) *Server {
	return &Server{
		profile: profile,
		handler: handler,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		conns: make(map[*websocket.Conn]struct{}),
	}
}

// ServeHTTP 升级连接并处理帧，直到对端关闭
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Debug("WebSocket 升级失败", "error", err)
		return
	}
	s.track(conn, true)
	defer func() {
		s.track(conn, false)
		_ = conn.Close()
	}()

	ctx := r.Context()
	for {
		var item types.InboxItem
		if err := conn.ReadJSON(&item); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Debug("WebSocket 读取结束", "error", err)
			}
			return
		}

		msg, err := item.Message()
		if err != nil {
			logger.Warn("丢弃无效帧", "from", item.From, "error", err)
			continue
		}

		if err := s.handler(ctx, msg); err != nil {
			logger.Warn("入站消息未被接受", "from", msg.From, "kind", msg.Kind, "error", err)
			continue
		}

		if msg.Kind == types.KindPing {
			echo := types.NewMessage(s.profile, types.KindPing, msg.Body)
			if err := conn.WriteJSON(types.InboxItemFromMessage(echo)); err != nil {
				logger.Debug("ping 回送失败", "error", err)
				return
			}
		}
	}
}

func (s *Server) track(conn *websocket.Conn, add bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if add {
		s.conns[conn] = struct{}{}
	} else {
		delete(s.conns, conn)
	}
}

// Close 关闭所有活动连接
func (s *Server) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	deadline := time.Now().Add(closeGracePeriod)
	for conn := range s.conns {
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutdown"), deadline)
		_ = conn.Close()
	}
	return nil
}

// ActiveConns 返回活动连接数
func (s *Server) ActiveConns() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.conns)
}
