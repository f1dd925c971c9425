package config

import (
	"errors"
	"strings"
)

// LogConfig 日志配置
type LogConfig struct {
	// Level 日志级别: debug / info / warn / error
	Level string `json:"level" toml:"level"`

	// Format 输出格式: text / json
	Format string `json:"format" toml:"format"`

	// FxEvents 输出 Fx 容器事件（调试依赖注入时使用）
	FxEvents bool `json:"fx_events" toml:"fx_events"`
}

// DefaultLogConfig 返回默认日志配置
func DefaultLogConfig() LogConfig {
	return LogConfig{
		Level:  "info",
		Format: "text",
	}
}

// Validate 验证日志配置
func (c LogConfig) Validate() error {
	switch strings.ToLower(c.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return errors.New("log: level must be debug, info, warn or error")
	}
	switch c.Format {
	case "text", "json":
	default:
		return errors.New("log: format must be text or json")
	}
	return nil
}
