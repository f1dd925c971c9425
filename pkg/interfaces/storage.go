package interfaces

import "github.com/mee-pdn/go-mee/pkg/types"

// KVStore 命名空间隔离的同步键值存储
//
// 查找以 (Namespace, Key) 为作用域，不同命名空间之间互不可见。
//
// 线程安全：实现必须保证并发读写同一 (Namespace, Key) 时不会观察到
// 部分写入的值；每次 Get 返回某次完成的 Set 之前或之后的值。
// 调用者拿到的是值的副本。
type KVStore interface {
	// Set 写入（覆盖）值，最后写入者胜出
	//
	// 仅在底层 I/O 故障时失败（*StoreError）。
	Set(ns types.Namespace, key types.Key, value types.Value) error

	// Get 读取值
	//
	// 键不存在时返回 ok=false 且 err=nil。
	Get(ns types.Namespace, key types.Key) (value types.Value, ok bool, err error)
}
