package kv

import (
	"strconv"
	"strings"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/mee-pdn/go-mee/internal/core/metrics"
	"github.com/mee-pdn/go-mee/internal/core/storage/engine"
	"github.com/mee-pdn/go-mee/pkg/interfaces"
	"github.com/mee-pdn/go-mee/pkg/types"
)

// backendLabel 指标中的后端名
const backendLabel = "badger"

// DefaultCacheSize 默认读缓存条目数
const DefaultCacheSize = 1024

// Store 命名空间隔离的 KV 存储
type Store struct {
	engine  engine.Engine
	cache   *lru.Cache[string, types.Value]
	metrics *metrics.Metrics

	// mu 串行化写入；读未命中的回填持有读锁
	mu sync.RWMutex
}

var _ interfaces.KVStore = (*Store)(nil)

// Option Store 选项
type Option func(*options)

type options struct {
	cacheSize int
	metrics   *metrics.Metrics
}

// WithCacheSize 设置读缓存条目数，0 禁用缓存
func WithCacheSize(n int) Option {
	return func(o *options) {
		o.cacheSize = n
	}
}

// WithMetrics 设置指标集合
func WithMetrics(m *metrics.Metrics) Option {
	return func(o *options) {
		o.metrics = m
	}
}

// New 创建 KV 存储
func New(eng engine.Engine, opts ...Option) (*Store, error) {
	o := options{cacheSize: DefaultCacheSize}
	for _, opt := range opts {
		opt(&o)
	}

	s := &Store{
		engine:  eng,
		metrics: o.metrics,
	}
	if o.cacheSize > 0 {
		cache, err := lru.New[string, types.Value](o.cacheSize)
		if err != nil {
			return nil, err
		}
		s.cache = cache
	}
	return s, nil
}

// EncodeKey 把 (ns, key) 编码为引擎键
func EncodeKey(ns types.Namespace, key types.Key) []byte {
	var b strings.Builder
	b.Grow(len(ns) + len(key) + 8)
	b.WriteString(strconv.Itoa(len(ns)))
	b.WriteByte(':')
	b.WriteString(string(ns))
	b.WriteByte('/')
	b.WriteString(string(key))
	return []byte(b.String())
}

// Set 写入值
func (s *Store) Set(ns types.Namespace, key types.Key, value types.Value) error {
	k := EncodeKey(ns, key)

	s.mu.Lock()
	err := s.engine.Put(k, []byte(value))
	if err == nil && s.cache != nil {
		s.cache.Add(string(k), value)
	}
	s.mu.Unlock()

	s.metrics.ObserveStoreOp(backendLabel, "set", err)
	if err != nil {
		return &interfaces.StoreError{Op: "set", Err: err}
	}
	return nil
}

// Get 读取值
func (s *Store) Get(ns types.Namespace, key types.Key) (types.Value, bool, error) {
	k := EncodeKey(ns, key)

	if s.cache != nil {
		if v, ok := s.cache.Get(string(k)); ok {
			s.metrics.ObserveStoreOp(backendLabel, "get", nil)
			return v, true, nil
		}
	}

	s.mu.RLock()
	raw, err := s.engine.Get(k)
	if err == nil && s.cache != nil {
		s.cache.Add(string(k), types.Value(raw))
	}
	s.mu.RUnlock()

	if engine.IsNotFound(err) {
		s.metrics.ObserveStoreOp(backendLabel, "get", nil)
		return "", false, nil
	}
	s.metrics.ObserveStoreOp(backendLabel, "get", err)
	if err != nil {
		return "", false, &interfaces.StoreError{Op: "get", Err: err}
	}
	return types.Value(raw), true, nil
}

// Delete 删除值（幂等）
func (s *Store) Delete(ns types.Namespace, key types.Key) error {
	k := EncodeKey(ns, key)

	s.mu.Lock()
	err := s.engine.Delete(k)
	if s.cache != nil {
		s.cache.Remove(string(k))
	}
	s.mu.Unlock()

	s.metrics.ObserveStoreOp(backendLabel, "delete", err)
	if err != nil {
		return &interfaces.StoreError{Op: "delete", Err: err}
	}
	return nil
}

// Close 关闭底层引擎（幂等）
func (s *Store) Close() error {
	return s.engine.Close()
}
