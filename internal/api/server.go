package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/mee-pdn/go-mee/internal/core/did"
	"github.com/mee-pdn/go-mee/internal/core/metrics"
	"github.com/mee-pdn/go-mee/internal/core/transport/ws"
	"github.com/mee-pdn/go-mee/internal/protocol/connections"
	"github.com/mee-pdn/go-mee/internal/protocol/inbox"
	"github.com/mee-pdn/go-mee/pkg/interfaces"
	"github.com/mee-pdn/go-mee/pkg/lib/log"
)

var logger = log.Logger("api")

// DefaultAddr 默认监听地址
const DefaultAddr = "127.0.0.1:3000"

// Server 控制面 HTTP 服务
type Server struct {
	// 依赖组件
	node     interfaces.Node
	inbox    *inbox.Service
	conns    *connections.Registry // 可选
	identity did.LocalIdentity
	metrics  *metrics.Metrics // 可选
	ws       *ws.Server       // 仅 WebSocket 传输

	// 配置
	config  Config
	handler http.Handler

	// HTTP 服务器
	server   *http.Server
	listener net.Listener

	// errCh 监听异常退出时收到一次错误
	errCh chan error

	// 状态
	running bool
	mu      sync.Mutex
}

// Config 服务配置
type Config struct {
	// Addr 监听地址，为空时 Start 不监听
	Addr string

	// Node 必需的节点
	Node interfaces.Node

	// Inbox 必需的收件箱
	Inbox *inbox.Service

	// Connections 可选的连接注册表
	Connections *connections.Registry

	// Identity 本地身份
	Identity did.LocalIdentity

	// Metrics 可选的指标
	Metrics *metrics.Metrics

	// WebSocket 是否挂载 /profiles/{name}/ws
	WebSocket bool

	// CORSOrigins 允许跨域的来源，空表示不启用 CORS
	CORSOrigins []string

	// ReadHeaderTimeout 读取请求头超时
	ReadHeaderTimeout time.Duration

	// ShutdownTimeout 优雅关闭超时
	ShutdownTimeout time.Duration
}

// New 创建控制面服务
func New(cfg Config) (*Server, error) {
	if cfg.Node == nil {
		return nil, ErrNilNode
	}
	if cfg.Inbox == nil {
		return nil, ErrNilInbox
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = 5 * time.Second
	}

	s := &Server{
		node:     cfg.Node,
		inbox:    cfg.Inbox,
		conns:    cfg.Connections,
		identity: cfg.Identity,
		metrics:  cfg.Metrics,
		config:   cfg,
		errCh:    make(chan error, 1),
	}
	if cfg.WebSocket {
		s.ws = ws.NewServer(cfg.Node.Profile(), cfg.Inbox.Deliver)
	}
	s.handler = s.routes()
	return s, nil
}

// routes 创建路由
func (s *Server) routes() http.Handler {
	r := mux.NewRouter()
	r.Use(s.logRequests)

	r.HandleFunc("/live", s.handleLive).Methods(http.MethodGet)
	r.Handle("/metrics", s.metrics.Handler()).Methods(http.MethodGet)

	// 演示控制面
	demo := r.PathPrefix("/demo").Subrouter()
	demo.HandleFunc("/ticket", s.handleTicket).Methods(http.MethodGet)
	demo.HandleFunc("/identity", s.handleIdentity).Methods(http.MethodGet)
	demo.HandleFunc("/inbox", s.handleInbox).Methods(http.MethodGet)
	demo.HandleFunc("/send/ping", s.handleSendPing).Methods(http.MethodPost)
	if s.conns != nil {
		demo.HandleFunc("/connections", s.handleOpenConnection).Methods(http.MethodPost)
		demo.HandleFunc("/connections", s.handleListConnections).Methods(http.MethodGet)
		demo.HandleFunc("/connections/{id}/send", s.handleConnectionSend).Methods(http.MethodPost)
		demo.HandleFunc("/connections/{id}", s.handleCloseConnection).Methods(http.MethodDelete)
	}

	// 传输入站路径
	r.HandleFunc("/profiles/{name}/inbox", s.handleDeliver).Methods(http.MethodPost)
	if s.ws != nil {
		r.HandleFunc("/profiles/{name}/ws", s.handleWebSocket).Methods(http.MethodGet)
	}

	if len(s.config.CORSOrigins) == 0 {
		return r
	}
	c := cors.New(cors.Options{
		AllowedOrigins: s.config.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete},
		MaxAge:         600,
		AllowedHeaders: []string{"*"},
	})
	return c.Handler(r)
}

// logRequests 请求日志中间件
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		logger.DebugContext(r.Context(), "HTTP 请求", "method", r.Method, "path", r.URL.Path, "duration", time.Since(start))
	})
}

// Handler 返回控制面的 http.Handler（可嵌入其它服务器或用于测试）
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start 启动服务
func (s *Server) Start(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running || s.config.Addr == "" {
		return nil
	}

	listener, err := net.Listen("tcp", s.config.Addr)
	if err != nil {
		return err
	}
	s.listener = listener

	s.server = &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: s.config.ReadHeaderTimeout,
	}

	server := s.server
	go func() {
		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("控制面服务异常退出", "error", err)
			select {
			case s.errCh <- fmt.Errorf("api serve: %w", err):
			default:
			}
		}
	}()

	s.running = true
	logger.Info("控制面服务已启动", "addr", listener.Addr().String())
	return nil
}

// Stop 停止服务
func (s *Server) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ws != nil {
		_ = s.ws.Close()
	}
	if !s.running {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()

	if err := s.server.Shutdown(ctx); err != nil {
		logger.Error("关闭控制面服务失败", "error", err)
		return err
	}

	s.running = false
	logger.Info("控制面服务已停止")
	return nil
}

// Err 返回监听异常退出的错误通道
//
// 正常 Stop 不会产生错误；未监听时通道永远不会就绪。
func (s *Server) Err() <-chan error {
	return s.errCh
}

// Addr 返回实际监听地址
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.config.Addr
}
