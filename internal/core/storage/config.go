package storage

import (
	"time"

	"github.com/mee-pdn/go-mee/config"
	"github.com/mee-pdn/go-mee/internal/core/storage/engine"
	"github.com/mee-pdn/go-mee/internal/core/storage/kv"
)

// Config Storage 模块配置
//
// 测试代码应使用 t.TempDir() 创建临时目录，确保测试与生产一致。
type Config struct {
	// Backend 存储后端（config.StorageMemory / config.StorageBadger）
	Backend string

	// Path BadgerDB 数据库目录，badger 后端必需
	Path string

	// SyncWrites 是否同步写入
	SyncWrites bool

	// CacheSize 读缓存条目数
	CacheSize int

	// GCInterval 垃圾回收间隔，0 禁用
	GCInterval time.Duration
}

// DefaultConfig 返回默认配置（内存后端）
func DefaultConfig() Config {
	return Config{
		Backend:    config.StorageMemory,
		Path:       "./data/mee.db",
		CacheSize:  kv.DefaultCacheSize,
		GCInterval: 10 * time.Minute,
	}
}

// ConfigFromUnified 从统一配置创建 Storage 配置
func ConfigFromUnified(cfg *config.Config) Config {
	storageCfg := DefaultConfig()
	if cfg == nil {
		return storageCfg
	}

	storageCfg.Backend = cfg.Storage.Backend
	storageCfg.Path = cfg.Storage.DBPath()
	storageCfg.SyncWrites = cfg.Storage.SyncWrites
	storageCfg.CacheSize = cfg.Storage.CacheSize
	storageCfg.GCInterval = cfg.Storage.GCInterval.Duration()
	return storageCfg
}

// ToEngineConfig 转换为引擎配置
func (c *Config) ToEngineConfig() *engine.Config {
	engineCfg := engine.DefaultConfig(c.Path)
	engineCfg.SyncWrites = c.SyncWrites
	engineCfg.GCInterval = c.GCInterval
	return engineCfg
}

// Validate 验证配置
func (c *Config) Validate() error {
	switch c.Backend {
	case config.StorageMemory:
		return nil
	case config.StorageBadger:
		if c.Path == "" {
			return ErrInvalidConfig
		}
	default:
		return ErrUnknownBackend
	}

	if c.GCInterval > 0 && c.GCInterval < time.Minute {
		c.GCInterval = time.Minute
	}
	return nil
}

// WithPath 设置存储路径并切换到 badger 后端
func (c Config) WithPath(path string) Config {
	c.Backend = config.StorageBadger
	c.Path = path
	return c
}

// WithSyncWrites 设置同步写入
func (c Config) WithSyncWrites(sync bool) Config {
	c.SyncWrites = sync
	return c
}

// WithGC 设置垃圾回收间隔
func (c Config) WithGC(interval time.Duration) Config {
	c.GCInterval = interval
	return c
}
