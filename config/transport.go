package config

import (
	"errors"
	"net/url"
	"time"
)

// 传输类型
const (
	TransportHTTP      = "http"
	TransportWebSocket = "ws"
	TransportMemory    = "memory"
)

// TransportConfig 传输层配置
type TransportConfig struct {
	// Kind 传输类型
	// 可选值: "http"（推送）、"ws"（双向）、"memory"（进程内中继）
	Kind string `json:"kind" toml:"kind"`

	// BaseURL 节点对外可达的基础 URL，用于生成票据
	// http/ws 传输必需，例如 "http://127.0.0.1:3000"
	BaseURL string `json:"base_url" toml:"base_url"`

	// MemoryHub memory 传输的中继名
	MemoryHub string `json:"memory_hub" toml:"memory_hub"`

	// SendTimeout 单次发送超时，0 表示仅受调用方 context 约束
	SendTimeout Duration `json:"send_timeout" toml:"send_timeout"`

	// DialTimeout WebSocket 拨号超时
	DialTimeout Duration `json:"dial_timeout" toml:"dial_timeout"`

	// MailboxSize memory 传输每个 Profile 的信箱容量
	MailboxSize int `json:"mailbox_size" toml:"mailbox_size"`
}

// DefaultTransportConfig 返回默认传输配置
func DefaultTransportConfig() TransportConfig {
	return TransportConfig{
		Kind:        TransportHTTP,
		MemoryHub:   "default",
		SendTimeout: Duration(10 * time.Second),
		DialTimeout: Duration(5 * time.Second),
		MailboxSize: 256,
	}
}

// Validate 验证传输配置
func (c TransportConfig) Validate() error {
	switch c.Kind {
	case TransportHTTP, TransportWebSocket:
		if c.BaseURL != "" {
			u, err := url.Parse(c.BaseURL)
			if err != nil || u.Host == "" {
				return errors.New("transport: base_url must be an absolute URL")
			}
			if u.Scheme != "http" && u.Scheme != "https" {
				return errors.New("transport: base_url scheme must be http or https")
			}
		}
	case TransportMemory:
		if c.MemoryHub == "" {
			return errors.New("transport: memory_hub cannot be empty")
		}
		if c.MailboxSize <= 0 {
			return errors.New("transport: mailbox_size must be positive")
		}
	default:
		return errors.New("transport: kind must be http, ws or memory")
	}

	if c.SendTimeout < 0 || c.DialTimeout < 0 {
		return errors.New("transport: timeouts must not be negative")
	}
	return nil
}

// WithKind 设置传输类型
func (c TransportConfig) WithKind(kind string) TransportConfig {
	c.Kind = kind
	return c
}

// WithBaseURL 设置基础 URL
func (c TransportConfig) WithBaseURL(baseURL string) TransportConfig {
	c.BaseURL = baseURL
	return c
}
