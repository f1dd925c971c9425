package config

import (
	"errors"
	"time"
)

// DID 方法名
const (
	MethodKey = "key"
	MethodWeb = "web"
)

// IdentityConfig 身份配置
//
// 决定节点启动时用哪种 DID 方法创建本地身份，
// 以及 did:web 解析使用的 HTTP 参数。
type IdentityConfig struct {
	// Method 本地 DID 的方法
	// 可选值: "key", "web"
	Method string `json:"method" toml:"method"`

	// KeyJWK did:key 使用的 Ed25519 公钥 JWK
	// 为空时生成新密钥
	KeyJWK string `json:"key_jwk,omitempty" toml:"key_jwk"`

	// UseJCSPub did:key 使用 jwk_jcs-pub 多编解码器
	UseJCSPub bool `json:"use_jcs_pub" toml:"use_jcs_pub"`

	// WebDomain did:web 的域名（可带端口）
	WebDomain string `json:"web_domain,omitempty" toml:"web_domain"`

	// WebPath did:web 的路径（"/" 分隔）
	WebPath string `json:"web_path,omitempty" toml:"web_path"`

	// WebScheme did:web 解析使用的 URL scheme
	// 生产环境必须是 https，仅测试环境使用 http
	WebScheme string `json:"web_scheme" toml:"web_scheme"`

	// ResolveTimeout 单次 DID 解析超时
	ResolveTimeout Duration `json:"resolve_timeout" toml:"resolve_timeout"`
}

// DefaultIdentityConfig 返回默认身份配置
func DefaultIdentityConfig() IdentityConfig {
	return IdentityConfig{
		Method:         MethodKey,
		WebScheme:      "https",
		ResolveTimeout: Duration(10 * time.Second),
	}
}

// Validate 验证身份配置
func (c IdentityConfig) Validate() error {
	switch c.Method {
	case MethodKey:
	case MethodWeb:
		if c.WebDomain == "" {
			return errors.New("identity: web_domain is required for did:web")
		}
	default:
		return errors.New("identity: method must be key or web")
	}

	if c.WebScheme != "https" && c.WebScheme != "http" {
		return errors.New("identity: web_scheme must be https or http")
	}
	if c.ResolveTimeout <= 0 {
		return errors.New("identity: resolve_timeout must be positive")
	}
	return nil
}

// WithMethod 设置 DID 方法
func (c IdentityConfig) WithMethod(method string) IdentityConfig {
	c.Method = method
	return c
}

// WithWeb 设置 did:web 参数
func (c IdentityConfig) WithWeb(domain, path string) IdentityConfig {
	c.Method = MethodWeb
	c.WebDomain = domain
	c.WebPath = path
	return c
}
