// Package mem 提供进程内的 KVStore 实现
//
// 数据保存在受 RWMutex 保护的 map 中，重启即丢失。
// 适用于测试和不需要持久化的演示节点。
package mem

import (
	"sync"

	"github.com/mee-pdn/go-mee/internal/core/metrics"
	"github.com/mee-pdn/go-mee/pkg/interfaces"
	"github.com/mee-pdn/go-mee/pkg/types"
)

const backendLabel = "memory"

type entryKey struct {
	ns  types.Namespace
	key types.Key
}

// Store 内存 KV 存储
//
// 值是不可变字符串，存入与取出天然是副本。
type Store struct {
	mu      sync.RWMutex
	data    map[entryKey]types.Value
	metrics *metrics.Metrics
}

var _ interfaces.KVStore = (*Store)(nil)

// New 创建内存存储，m 可以为 nil
func New(m *metrics.Metrics) *Store {
	return &Store{
		data:    make(map[entryKey]types.Value),
		metrics: m,
	}
}

// Set 写入值
func (s *Store) Set(ns types.Namespace, key types.Key, value types.Value) error {
	s.mu.Lock()
	s.data[entryKey{ns, key}] = value
	s.mu.Unlock()

	s.metrics.ObserveStoreOp(backendLabel, "set", nil)
	return nil
}

// Get 读取值
func (s *Store) Get(ns types.Namespace, key types.Key) (types.Value, bool, error) {
	s.mu.RLock()
	v, ok := s.data[entryKey{ns, key}]
	s.mu.RUnlock()

	s.metrics.ObserveStoreOp(backendLabel, "get", nil)
	return v, ok, nil
}

// Delete 删除值（幂等）
func (s *Store) Delete(ns types.Namespace, key types.Key) error {
	s.mu.Lock()
	delete(s.data, entryKey{ns, key})
	s.mu.Unlock()

	s.metrics.ObserveStoreOp(backendLabel, "delete", nil)
	return nil
}

// Len 返回条目数
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}
