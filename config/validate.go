package config

import (
	"errors"
	"fmt"
)

// ValidateAll 验证整个配置的有效性
//
// 与 Config.Validate 相同，额外检查 nil。
func ValidateAll(c *Config) error {
	if c == nil {
		return errors.New("config is nil")
	}
	return c.Validate()
}

// ValidateForStart 验证节点启动所需的完整配置
//
// 在 Validate 之上要求 Profile 已设置，
// 并要求 http/ws 传输提供 BaseURL。
func ValidateForStart(c *Config) error {
	if err := ValidateAll(c); err != nil {
		return err
	}
	if c.Node.Profile == "" {
		return errors.New("node: profile is required")
	}
	if c.Transport.Kind != TransportMemory && c.Transport.BaseURL == "" {
		return fmt.Errorf("transport: base_url is required for %s transport", c.Transport.Kind)
	}
	return nil
}

// MustValidate 验证配置，如果失败则 panic
//
// 仅用于初始化阶段或测试代码。
func MustValidate(c *Config) {
	if err := c.Validate(); err != nil {
		panic(fmt.Sprintf("config validation failed: %v", err))
	}
}
