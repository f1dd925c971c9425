package inbox

import "golang.org/x/time/rate"

// Config 收件箱配置
type Config struct {
	// Rate 每个发送方每秒允许的投递数，0 表示不限速
	Rate rate.Limit

	// Burst 每个发送方的突发上限
	Burst int

	// MaxSenders 跟踪限速状态的发送方上限，超出后淘汰最久未见的
	MaxSenders int
}

// DefaultConfig 返回默认配置（不限速）
func DefaultConfig() *Config {
	return &Config{
		Burst:      10,
		MaxSenders: 1024,
	}
}

// Option 配置选项函数
type Option func(*Config)

// WithRateLimit 设置按发送方限速
func WithRateLimit(perSecond float64, burst int) Option {
	return func(c *Config) {
		c.Rate = rate.Limit(perSecond)
		c.Burst = burst
	}
}

// WithMaxSenders 设置跟踪的发送方上限
func WithMaxSenders(n int) Option {
	return func(c *Config) {
		c.MaxSenders = n
	}
}
