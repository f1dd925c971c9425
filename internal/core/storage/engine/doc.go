// Package engine 定义存储引擎接口
//
// engine 提供字节级键值存储引擎的抽象，允许使用不同的底层实现。
// 命名空间、值类型与读缓存由上层 kv 包负责。
//
// # 实现
//
//   - badger: BadgerDB 实现（持久化后端）
//
// # 使用示例
//
//	eng, err := badger.New(engine.DefaultConfig("/data/mee.db"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer eng.Close()
package engine
