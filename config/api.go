package config

import (
	"errors"
	"net"
	"time"
)

// APIConfig 控制面 HTTP 服务配置
type APIConfig struct {
	// ListenAddr 监听地址，为空时不监听（仅通过 Handler 嵌入）
	ListenAddr string `json:"listen_addr" toml:"listen_addr"`

	// EnableMetrics 暴露 /metrics
	EnableMetrics bool `json:"enable_metrics" toml:"enable_metrics"`

	// CORSOrigins 允许跨域访问的来源，空表示不启用 CORS
	CORSOrigins []string `json:"cors_origins,omitempty" toml:"cors_origins"`

	// InboxRate 每个发送方每秒允许投递的消息数，0 表示不限速
	InboxRate float64 `json:"inbox_rate" toml:"inbox_rate"`

	// InboxBurst 每个发送方的突发上限
	InboxBurst int `json:"inbox_burst" toml:"inbox_burst"`

	// ReadHeaderTimeout 读取请求头超时
	ReadHeaderTimeout Duration `json:"read_header_timeout" toml:"read_header_timeout"`

	// ShutdownTimeout 优雅关闭超时
	ShutdownTimeout Duration `json:"shutdown_timeout" toml:"shutdown_timeout"`
}

// DefaultAPIConfig 返回默认控制面配置
func DefaultAPIConfig() APIConfig {
	return APIConfig{
		ListenAddr:        "127.0.0.1:3000",
		EnableMetrics:     true,
		InboxBurst:        10,
		ReadHeaderTimeout: Duration(10 * time.Second),
		ShutdownTimeout:   Duration(5 * time.Second),
	}
}

// Validate 验证控制面配置
func (c APIConfig) Validate() error {
	if c.ListenAddr != "" {
		if _, _, err := net.SplitHostPort(c.ListenAddr); err != nil {
			return errors.New("api: listen_addr must be host:port")
		}
	}
	if c.InboxRate < 0 {
		return errors.New("api: inbox_rate must not be negative")
	}
	if c.InboxRate > 0 && c.InboxBurst <= 0 {
		return errors.New("api: inbox_burst must be positive when inbox_rate is set")
	}
	return nil
}

// WithListenAddr 设置监听地址
func (c APIConfig) WithListenAddr(addr string) APIConfig {
	c.ListenAddr = addr
	return c
}

// WithInboxRate 设置收件箱限速
func (c APIConfig) WithInboxRate(perSecond float64, burst int) APIConfig {
	c.InboxRate = perSecond
	c.InboxBurst = burst
	return c
}
