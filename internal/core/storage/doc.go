// Package storage 提供节点的本地键值存储服务
//
// Storage 模块按配置选择后端，对上层统一暴露 interfaces.KVStore：
//
//	┌─────────────────────────────────────────────────────────────┐
//	│                      使用方模块                              │
//	│           inbox | 本地身份 | 控制面                          │
//	└─────────────────────────────────────────────────────────────┘
//	                              │  interfaces.KVStore
//	                              ▼
//	┌──────────────────────────┐   ┌──────────────────────────────┐
//	│        mem.Store         │   │           kv.Store            │
//	│   RWMutex 保护的 map     │   │  命名空间编码 + LRU 读缓存    │
//	└──────────────────────────┘   └──────────────────────────────┘
//	                                              │
//	                               ┌──────────────────────────────┐
//	                               │        engine/badger          │
//	                               │        BadgerDB 实现          │
//	                               └──────────────────────────────┘
//
// # 使用示例
//
// 使用 Fx 依赖注入（推荐）：
//
//	app := fx.New(
//	    fx.Supply(cfg),
//	    storage.Module(),
//	)
//
// 手动创建：
//
//	eng, err := storage.NewEngine(storage.DefaultConfig().WithPath("/data/mee.db"))
//	if err != nil {
//	    return err
//	}
//	defer eng.Close()
//	store, _ := kv.New(eng)
//
// # 线程安全
//
// 所有公开的类型和方法都是线程安全的。
package storage
