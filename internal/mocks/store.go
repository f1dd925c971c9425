package mocks

import (
	"sync"

	"github.com/mee-pdn/go-mee/pkg/interfaces"
	"github.com/mee-pdn/go-mee/pkg/types"
)

// MockKVStore 模拟 KVStore 接口实现
//
// 未设置函数字段时表现为普通的内存存储。
type MockKVStore struct {
	// 可覆盖的方法
	SetFunc func(ns types.Namespace, key types.Key, value types.Value) error
	GetFunc func(ns types.Namespace, key types.Key) (types.Value, bool, error)

	mu   sync.Mutex
	data map[string]types.Value
}

var _ interfaces.KVStore = (*MockKVStore)(nil)

// NewMockKVStore 创建 MockKVStore
func NewMockKVStore() *MockKVStore {
	return &MockKVStore{data: make(map[string]types.Value)}
}

// Set 写入值
func (m *MockKVStore) Set(ns types.Namespace, key types.Key, value types.Value) error {
	if m.SetFunc != nil {
		return m.SetFunc(ns, key, value)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[string(ns)+"\x00"+string(key)] = value
	return nil
}

// Get 读取值
func (m *MockKVStore) Get(ns types.Namespace, key types.Key) (types.Value, bool, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ns, key)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[string(ns)+"\x00"+string(key)]
	return v, ok, nil
}
