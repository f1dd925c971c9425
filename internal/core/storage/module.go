package storage

import (
	"context"

	"go.uber.org/fx"

	"github.com/mee-pdn/go-mee/config"
	"github.com/mee-pdn/go-mee/internal/core/metrics"
	"github.com/mee-pdn/go-mee/internal/core/storage/engine"
	"github.com/mee-pdn/go-mee/internal/core/storage/engine/badger"
	"github.com/mee-pdn/go-mee/internal/core/storage/kv"
	"github.com/mee-pdn/go-mee/internal/core/storage/mem"
	"github.com/mee-pdn/go-mee/pkg/interfaces"
	"github.com/mee-pdn/go-mee/pkg/lib/log"
)

var logger = log.Logger("core/storage")

// Params Storage 模块依赖参数
type Params struct {
	fx.In

	UnifiedCfg *config.Config   `optional:"true"`
	Metrics    *metrics.Metrics `optional:"true"`
}

// Result Storage 模块提供的结果
type Result struct {
	fx.Out

	Store  interfaces.KVStore
	Config Config
}

// Module 返回 Storage Fx 模块
//
// 提供:
//   - interfaces.KVStore: 按配置选择内存或 badger 后端
//   - Config: 存储配置
//
// 生命周期（仅 badger 后端）:
//   - OnStart: 启动引擎（GC 等后台任务）
//   - OnStop: 关闭引擎
func Module() fx.Option {
	return fx.Module("storage",
		fx.Provide(ProvideStorage),
	)
}

// ProvideStorage 提供存储和配置
func ProvideStorage(lc fx.Lifecycle, p Params) (Result, error) {
	cfg := ConfigFromUnified(p.UnifiedCfg)
	if err := cfg.Validate(); err != nil {
		return Result{}, err
	}

	if cfg.Backend == config.StorageMemory {
		logger.Debug("使用内存存储")
		return Result{Store: mem.New(p.Metrics), Config: cfg}, nil
	}

	eng, err := NewEngine(cfg)
	if err != nil {
		return Result{}, err
	}
	registerLifecycle(lc, eng)

	store, err := kv.New(eng, kv.WithCacheSize(cfg.CacheSize), kv.WithMetrics(p.Metrics))
	if err != nil {
		_ = eng.Close()
		return Result{}, err
	}
	return Result{Store: store, Config: cfg}, nil
}

// registerLifecycle 注册生命周期钩子
func registerLifecycle(lc fx.Lifecycle, eng engine.Engine) {
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			logger.Info("正在启动存储引擎")
			if err := eng.Start(); err != nil {
				logger.Error("存储引擎启动失败", "error", err)
				return err
			}
			logger.Info("存储引擎启动成功")
			return nil
		},
		OnStop: func(_ context.Context) error {
			logger.Info("正在关闭存储引擎")
			if err := eng.Close(); err != nil {
				logger.Warn("存储引擎关闭失败", "error", err)
				return err
			}
			logger.Info("存储引擎已关闭")
			return nil
		},
	})
}

// NewEngine 根据配置创建 badger 存储引擎
func NewEngine(cfg Config) (engine.Engine, error) {
	logger.Debug("创建存储引擎", "path", cfg.Path)
	eng, err := badger.New(cfg.ToEngineConfig())
	if err != nil {
		logger.Error("创建存储引擎失败", "error", err)
		return nil, err
	}
	logger.Debug("存储引擎创建成功")
	return eng, nil
}
