package config

import (
	"errors"
	"path/filepath"
	"time"
)

// 存储后端
const (
	StorageMemory = "memory"
	StorageBadger = "badger"
)

// StorageConfig 存储配置
//
// badger 后端的数据目录结构：
//
//	${DataDir}/
//	└── mee.db/             # BadgerDB 主数据库
//	    ├── 000001.vlog     # Value Log
//	    ├── 000001.sst      # SSTable
//	    └── MANIFEST        # 数据库元信息
type StorageConfig struct {
	// Backend 存储后端
	// 可选值: "memory"（进程内，重启丢失）、"badger"（持久化）
	Backend string `json:"backend" toml:"backend"`

	// DataDir 数据目录路径
	// 默认值: "./data"
	DataDir string `json:"data_dir" toml:"data_dir"`

	// SyncWrites 每次写入都同步到磁盘
	SyncWrites bool `json:"sync_writes" toml:"sync_writes"`

	// CacheSize 读缓存条目数，0 禁用
	CacheSize int `json:"cache_size" toml:"cache_size"`

	// GCInterval 值日志回收间隔，0 禁用
	GCInterval Duration `json:"gc_interval" toml:"gc_interval"`
}

// DefaultStorageConfig 返回默认的存储配置
func DefaultStorageConfig() StorageConfig {
	return StorageConfig{
		Backend:    StorageMemory,
		DataDir:    "./data",
		CacheSize:  1024,
		GCInterval: Duration(10 * time.Minute),
	}
}

// Validate 验证存储配置的有效性
func (c *StorageConfig) Validate() error {
	switch c.Backend {
	case StorageMemory:
	case StorageBadger:
		if c.DataDir == "" {
			return errors.New("storage: data_dir cannot be empty")
		}
	default:
		return errors.New("storage: backend must be memory or badger")
	}
	if c.CacheSize < 0 {
		return errors.New("storage: cache_size must not be negative")
	}
	return nil
}

// DBPath 返回 BadgerDB 数据库路径
func (c *StorageConfig) DBPath() string {
	return filepath.Join(c.DataDir, "mee.db")
}

// WithBackend 设置存储后端
func (c StorageConfig) WithBackend(backend string) StorageConfig {
	c.Backend = backend
	return c
}

// WithDataDir 设置数据目录并切换到 badger 后端
func (c StorageConfig) WithDataDir(dir string) StorageConfig {
	c.Backend = StorageBadger
	c.DataDir = dir
	return c
}
