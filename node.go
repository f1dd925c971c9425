package mee

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"go.uber.org/fx"
	"go.uber.org/multierr"

	"github.com/mee-pdn/go-mee/config"
	"github.com/mee-pdn/go-mee/internal/api"
	"github.com/mee-pdn/go-mee/internal/core/did"
	"github.com/mee-pdn/go-mee/internal/core/metrics"
	"github.com/mee-pdn/go-mee/internal/protocol/connections"
	"github.com/mee-pdn/go-mee/internal/protocol/inbox"
	"github.com/mee-pdn/go-mee/pkg/interfaces"
	"github.com/mee-pdn/go-mee/pkg/lib/log"
	"github.com/mee-pdn/go-mee/pkg/types"
)

var logger = log.Logger("mee")

const (
	// startTimeout Fx 应用启动超时
	startTimeout = 30 * time.Second

	// stopTimeout Fx 应用停止超时
	stopTimeout = 10 * time.Second
)

// ════════════════════════════════════════════════════════════════════════════
//                              节点状态
// ════════════════════════════════════════════════════════════════════════════

// NodeState 节点状态
type NodeState int

const (
	// StateIdle 空闲状态（已创建，未启动）
	StateIdle NodeState = iota

	// StateRunning 运行中
	StateRunning

	// StateClosed 已关闭（不可重新启动）
	StateClosed
)

// String 返回状态的字符串表示
func (s NodeState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// ════════════════════════════════════════════════════════════════════════════
//                              Node 结构
// ════════════════════════════════════════════════════════════════════════════

// Node 消息节点
//
// Node 聚合传输、身份与存储，自身不实现业务逻辑；
// 收件箱、出站连接与控制面都通过它访问三个子系统。
type Node struct {
	// ────────────────────────────────────────────────────────────────────────
	// 配置
	// ────────────────────────────────────────────────────────────────────────

	config  *config.Config
	profile types.ProfileName
	userID  types.UserID

	// app Fx 应用
	app *fx.App

	// ────────────────────────────────────────────────────────────────────────
	// 组件（由 Fx 注入）
	// ────────────────────────────────────────────────────────────────────────

	transport  interfaces.Transport
	didManager interfaces.DIDManager
	store      interfaces.KVStore
	identity   did.LocalIdentity
	inbox      *inbox.Service
	conns      *connections.Registry
	metrics    *metrics.Metrics
	api        *api.Server

	// ────────────────────────────────────────────────────────────────────────
	// 生命周期状态
	// ────────────────────────────────────────────────────────────────────────

	mu    sync.RWMutex
	state NodeState
}

var _ interfaces.Node = (*Node)(nil)

// ════════════════════════════════════════════════════════════════════════════
//                              构造函数
// ════════════════════════════════════════════════════════════════════════════

// New 创建新节点
//
// 创建节点但不启动，需要调用 Start() 启动。
// 返回时本地 DID 已创建（或从存储加载）。
//
// 示例：
//
//	node, err := mee.New(ctx,
//	    mee.WithProfile("alice"),
//	    mee.WithBaseURL("http://127.0.0.1:3000"),
//	    mee.WithDataDir("./data"),
//	)
func New(ctx context.Context, opts ...Option) (*Node, error) {
	o := newOptions()
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, fmt.Errorf("apply option: %w", err)
		}
	}

	if err := config.ValidateForStart(o.config); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	node := &Node{
		config:  o.config,
		profile: types.ProfileName(o.config.Node.Profile),
		userID:  types.UserID(o.config.Node.UserID),
	}

	node.app = buildFxApp(o, node)
	if err := node.app.Err(); err != nil {
		return nil, fmt.Errorf("build fx app: %w", err)
	}

	logger.Info("节点已创建",
		"profile", node.profile,
		"did", node.identity.DID,
		"transport", o.config.Transport.Kind,
		"storage", o.config.Storage.Backend)
	return node, nil
}

// Start 快捷启动函数
//
// 等价于 New() + Start()。
func Start(ctx context.Context, opts ...Option) (*Node, error) {
	node, err := New(ctx, opts...)
	if err != nil {
		return nil, err
	}
	if err := node.Start(ctx); err != nil {
		_ = node.Close()
		return nil, fmt.Errorf("start node: %w", err)
	}
	return node, nil
}

// ════════════════════════════════════════════════════════════════════════════
//                              生命周期
// ════════════════════════════════════════════════════════════════════════════

// Start 启动节点
//
// 启动存储后台任务，绑定收件箱，并在配置了监听地址时启动控制面。
func (n *Node) Start(ctx context.Context) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	switch n.state {
	case StateClosed:
		return ErrNodeClosed
	case StateRunning:
		return ErrAlreadyStarted
	}

	startCtx, cancel := context.WithTimeout(ctx, startTimeout)
	defer cancel()

	if err := n.app.Start(startCtx); err != nil {
		logger.Error("节点启动失败", "error", err)
		return fmt.Errorf("start failed: %w", err)
	}

	n.state = StateRunning
	logger.Info("节点已启动", "profile", n.profile, "addr", n.api.Addr())
	return nil
}

// Close 关闭节点（幂等）
//
// 运行中的节点按生命周期逆序停止各模块；
// 从未启动的节点直接释放存储。
func (n *Node) Close() error {
	n.mu.Lock()
	defer n.mu.Unlock()

	prev := n.state
	if prev == StateClosed {
		return nil
	}
	n.state = StateClosed

	var err error
	if prev == StateRunning {
		ctx, cancel := context.WithTimeout(context.Background(), stopTimeout)
		defer cancel()
		err = multierr.Append(err, n.app.Stop(ctx))
	}
	// 未启动时 OnStop 不会运行；对已停止的引擎重复关闭是空操作
	if c, ok := n.store.(io.Closer); ok {
		err = multierr.Append(err, c.Close())
	}

	if err != nil {
		logger.Warn("节点关闭出错", "error", err)
		return err
	}
	logger.Info("节点已关闭", "profile", n.profile)
	return nil
}

// State 返回节点状态
func (n *Node) State() NodeState {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.state
}

// ════════════════════════════════════════════════════════════════════════════
//                              interfaces.Node
// ════════════════════════════════════════════════════════════════════════════

// Profile 返回节点的传输层名称
func (n *Node) Profile() types.ProfileName {
	return n.profile
}

// NodeID 返回节点标识（由本地 DID 派生）
func (n *Node) NodeID() types.NodeID {
	return n.identity.NodeID
}

// UserID 返回可选的用户标识
func (n *Node) UserID() (types.UserID, bool) {
	return n.userID, !n.userID.IsEmpty()
}

// Transport 返回传输
func (n *Node) Transport() interfaces.Transport {
	return n.transport
}

// DIDManager 返回身份管理器
func (n *Node) DIDManager() interfaces.DIDManager {
	return n.didManager
}

// Store 返回本地存储
func (n *Node) Store() interfaces.KVStore {
	return n.store
}

// ════════════════════════════════════════════════════════════════════════════
//                              便捷方法
// ════════════════════════════════════════════════════════════════════════════

// DID 返回本地 DID
func (n *Node) DID() types.DID {
	return n.identity.DID
}

// Config 返回节点配置的副本
func (n *Node) Config() *config.Config {
	return n.config.Clone()
}

// Ticket 返回本节点的票据
func (n *Node) Ticket(ctx context.Context) (types.Ticket, error) {
	return n.transport.Ticket(ctx, n.profile)
}

// Send 对 ticket 打开一次性会话并发送消息
//
// msg.From 为空时填充为本节点 Profile。
func (n *Node) Send(ctx context.Context, ticket types.Ticket, msg types.Message) error {
	sess, err := n.transport.OpenSession(ctx, n.profile, ticket)
	if err != nil {
		return err
	}
	if msg.From == "" {
		msg.From = n.profile
	}
	return multierr.Append(sess.Send(ctx, msg), sess.Close())
}

// Inbox 返回收件箱条目
func (n *Node) Inbox(ctx context.Context) ([]types.InboxItem, error) {
	return n.inbox.List(ctx)
}

// Connections 返回出站连接注册表
func (n *Node) Connections() *connections.Registry {
	return n.conns
}

// Handler 返回控制面 http.Handler
func (n *Node) Handler() http.Handler {
	return n.api.Handler()
}

// Err 返回控制面监听异常退出的错误通道
func (n *Node) Err() <-chan error {
	return n.api.Err()
}

// Addr 返回控制面实际监听地址
func (n *Node) Addr() string {
	return n.api.Addr()
}
