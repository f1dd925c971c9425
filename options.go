package mee

import (
	"fmt"
	"net/http"

	"go.uber.org/fx"

	"github.com/mee-pdn/go-mee/config"
	"github.com/mee-pdn/go-mee/internal/core/transport/memory"
)

// Option 用户配置选项函数
type Option func(*options) error

// options 内部选项结构
type options struct {
	// config 统一配置，选项在其上修改
	config *config.Config

	// hub memory 传输共享的中继
	hub *memory.Hub

	// didHTTPClient did:web 解析使用的 HTTP 客户端
	didHTTPClient *http.Client

	// userFxOptions 用户扩展的 Fx 选项
	userFxOptions []fx.Option
}

func newOptions() *options {
	return &options{config: config.NewConfig()}
}

// MemoryHub 进程内中继
type MemoryHub = memory.Hub

// NewMemoryHub 创建进程内中继，供 WithMemoryHub 在多个节点间共享
func NewMemoryHub(name string) *MemoryHub {
	return memory.NewHub(name, 0)
}

// ════════════════════════════════════════════════════════════════════════════
//                              配置来源
// ════════════════════════════════════════════════════════════════════════════

// WithConfig 以 cfg 的副本作为基础配置
//
// 应放在其它选项之前，否则之前的修改会被覆盖。
func WithConfig(cfg *config.Config) Option {
	return func(o *options) error {
		if cfg == nil {
			return ErrNilConfig
		}
		o.config = cfg.Clone()
		return nil
	}
}

// WithConfigFile 从 JSON 或 TOML 文件加载基础配置
func WithConfigFile(path string) Option {
	return func(o *options) error {
		cfg, err := config.LoadFile(path)
		if err != nil {
			return fmt.Errorf("load config %s: %w", path, err)
		}
		o.config = cfg
		return nil
	}
}

// ════════════════════════════════════════════════════════════════════════════
//                              节点
// ════════════════════════════════════════════════════════════════════════════

// WithProfile 设置节点 Profile
func WithProfile(profile string) Option {
	return func(o *options) error {
		o.config.Node = o.config.Node.WithProfile(profile)
		return nil
	}
}

// WithUserID 设置用户标识
func WithUserID(id string) Option {
	return func(o *options) error {
		o.config.Node = o.config.Node.WithUserID(id)
		return nil
	}
}

// ════════════════════════════════════════════════════════════════════════════
//                              传输
// ════════════════════════════════════════════════════════════════════════════

// WithTransport 设置传输类型: "http"、"ws" 或 "memory"
func WithTransport(kind string) Option {
	return func(o *options) error {
		o.config.Transport = o.config.Transport.WithKind(kind)
		return nil
	}
}

// WithBaseURL 设置节点对外可达的基础 URL
func WithBaseURL(baseURL string) Option {
	return func(o *options) error {
		o.config.Transport = o.config.Transport.WithBaseURL(baseURL)
		return nil
	}
}

// WithMemoryHub 使用共享的进程内中继，并切换到 memory 传输
func WithMemoryHub(hub *MemoryHub) Option {
	return func(o *options) error {
		if hub == nil {
			return ErrNilHub
		}
		o.hub = hub
		o.config.Transport = o.config.Transport.WithKind(config.TransportMemory)
		o.config.Transport.MemoryHub = hub.Name()
		return nil
	}
}

// ════════════════════════════════════════════════════════════════════════════
//                              存储
// ════════════════════════════════════════════════════════════════════════════

// WithDataDir 使用 badger 持久化存储到 dir
func WithDataDir(dir string) Option {
	return func(o *options) error {
		o.config.Storage = o.config.Storage.WithDataDir(dir)
		return nil
	}
}

// WithMemoryStore 使用内存存储
func WithMemoryStore() Option {
	return func(o *options) error {
		o.config.Storage = o.config.Storage.WithBackend(config.StorageMemory)
		return nil
	}
}

// ════════════════════════════════════════════════════════════════════════════
//                              身份
// ════════════════════════════════════════════════════════════════════════════

// WithDIDKey 使用 did:key 作为本地身份
//
// jwk 为空时生成（并持久化）新的 Ed25519 密钥。
func WithDIDKey(jwk string, useJCSPub bool) Option {
	return func(o *options) error {
		o.config.Identity = o.config.Identity.WithMethod(config.MethodKey)
		o.config.Identity.KeyJWK = jwk
		o.config.Identity.UseJCSPub = useJCSPub
		return nil
	}
}

// WithDIDWeb 使用 did:web 作为本地身份
func WithDIDWeb(domain, path string) Option {
	return func(o *options) error {
		o.config.Identity = o.config.Identity.WithWeb(domain, path)
		return nil
	}
}

// WithDIDHTTPClient 设置 did:web 解析使用的 HTTP 客户端
func WithDIDHTTPClient(c *http.Client) Option {
	return func(o *options) error {
		o.didHTTPClient = c
		return nil
	}
}

// ════════════════════════════════════════════════════════════════════════════
//                              控制面
// ════════════════════════════════════════════════════════════════════════════

// WithListenAddr 设置控制面监听地址
func WithListenAddr(addr string) Option {
	return func(o *options) error {
		o.config.API = o.config.API.WithListenAddr(addr)
		return nil
	}
}

// WithoutListener 不监听端口，控制面只通过 Node.Handler 使用
func WithoutListener() Option {
	return WithListenAddr("")
}

// WithInboxRateLimit 设置按发送方的收件箱限速
func WithInboxRateLimit(perSecond float64, burst int) Option {
	return func(o *options) error {
		o.config.API = o.config.API.WithInboxRate(perSecond, burst)
		return nil
	}
}

// WithMetrics 开关 Prometheus 指标
func WithMetrics(enable bool) Option {
	return func(o *options) error {
		o.config.API.EnableMetrics = enable
		return nil
	}
}

// ════════════════════════════════════════════════════════════════════════════
//                              扩展
// ════════════════════════════════════════════════════════════════════════════

// WithFxOptions 追加用户 Fx 选项
func WithFxOptions(opts ...fx.Option) Option {
	return func(o *options) error {
		o.userFxOptions = append(o.userFxOptions, opts...)
		return nil
	}
}
