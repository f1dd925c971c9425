package engine

// Engine 字节级存储引擎
//
// 线程安全：所有实现必须保证并发调用安全，
// 单个键的 Put 对并发 Get 是原子可见的。
type Engine interface {
	// Get 获取指定键的值
	//
	// 返回值是副本；键不存在时返回 ErrNotFound。
	Get(key []byte) ([]byte, error)

	// Put 设置键值对，键已存在时覆盖
	Put(key, value []byte) error

	// Delete 删除指定键（幂等）
	Delete(key []byte) error

	// Has 检查键是否存在
	Has(key []byte) (bool, error)

	// Start 启动后台任务（GC 等）
	Start() error

	// Sync 同步数据到磁盘
	Sync() error

	// Stats 返回引擎统计信息
	Stats() *Stats

	// Close 关闭引擎，多次调用安全
	Close() error
}

// Stats 引擎统计信息
type Stats struct {
	DiskSize    int64 `json:"disk_size"`
	LSMSize     int64 `json:"lsm_size"`
	VlogSize    int64 `json:"vlog_size"`
	NumReads    int64 `json:"num_reads"`
	NumWrites   int64 `json:"num_writes"`
	NumDeletes  int64 `json:"num_deletes"`
	NumMisses   int64 `json:"num_misses"`
	NumGCCycles int64 `json:"num_gc_cycles"`
}
