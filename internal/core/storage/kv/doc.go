// Package kv 提供命名空间隔离的 KV 存储
//
// Store 在字节级存储引擎之上实现 interfaces.KVStore：
// (Namespace, Key) 被编码为一个引擎键，前面带命名空间长度，
// 因此任何两个不同的 (ns, key) 对都不会映射到同一个引擎键。
//
// # 键空间设计
//
//	<len(ns)>:<ns>/<key>
//
//	inbox/items     -> 5:inbox/items
//	identity/did    -> 8:identity/did
//
// # 读缓存
//
// 最近读取的值保存在 LRU 缓存中。写入在同一把锁下更新引擎和缓存，
// 读未命中时在读锁下回填，因此缓存不会留下比引擎更旧的值。
//
// # 使用示例
//
//	eng, _ := badger.New(engine.DefaultConfig(dir))
//	store, _ := kv.New(eng, kv.WithCacheSize(256))
//	_ = store.Set(types.NamespaceInbox, types.KeyInboxItems, "[]")
//	v, ok, err := store.Get(types.NamespaceInbox, types.KeyInboxItems)
package kv
