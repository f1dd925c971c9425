package did

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/mee-pdn/go-mee/pkg/interfaces"
	"github.com/mee-pdn/go-mee/pkg/types"
)

// Registry 按方法路由的 DID 管理器
type Registry struct {
	mu            sync.RWMutex
	managers      map[string]interfaces.DIDManager
	defaultMethod types.DIDMethod
}

var _ interfaces.DIDManager = (*Registry)(nil)

// NewRegistry 创建注册表
//
// defaultMethod 是 Method() 声明的方法，即节点本地身份使用的方法。
func NewRegistry(defaultMethod types.DIDMethod, managers ...interfaces.DIDManager) (*Registry, error) {
	r := &Registry{
		managers:      make(map[string]interfaces.DIDManager, len(managers)),
		defaultMethod: defaultMethod,
	}
	for _, m := range managers {
		if err := r.Register(m); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register 注册一个方法的管理器
func (r *Registry) Register(m interfaces.DIDManager) error {
	if m == nil {
		return ErrNilManager
	}
	method := m.Method().String()

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.managers[method]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateMethod, method)
	}
	r.managers[method] = m
	return nil
}

// Methods 返回已注册的方法（排序）
func (r *Registry) Methods() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	methods := make([]string, 0, len(r.managers))
	for m := range r.managers {
		methods = append(methods, m)
	}
	sort.Strings(methods)
	return methods
}

// Lookup 返回某方法已注册的管理器
//
// 需要签发非默认方法的 DID 时通过它取得对应管理器。
func (r *Registry) Lookup(method types.DIDMethod) (interfaces.DIDManager, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.managers[method.String()]
	return m, ok
}

// Method 返回默认方法
func (r *Registry) Method() types.DIDMethod {
	return r.defaultMethod
}

// Create 以默认方法创建 DID
//
// 参数变体的方法与 Method() 不一致，或默认方法没有注册管理器时返回 DIDErrMethod。
func (r *Registry) Create(ctx context.Context, params interfaces.DIDCreateParams) (types.DID, error) {
	if params == nil {
		return "", interfaces.NewDIDError(interfaces.DIDErrMethod, "nil create params")
	}
	if params.Method() != r.defaultMethod {
		return "", interfaces.NewDIDError(interfaces.DIDErrMethod,
			fmt.Sprintf("did:%s provider cannot create did:%s", r.defaultMethod, params.Method()))
	}
	m, ok := r.Lookup(params.Method())
	if !ok {
		return "", interfaces.NewDIDError(interfaces.DIDErrMethod,
			fmt.Sprintf("no provider for did:%s", params.Method()))
	}
	return m.Create(ctx, params)
}

// Resolve 按 did.Method() 路由到对应方法的管理器
//
// 格式错误时返回 DIDErrInvalid，方法没有注册解析器时返回 DIDErrResolve。
func (r *Registry) Resolve(ctx context.Context, did types.DID) (*interfaces.DIDDocument, error) {
	method := did.Method()
	if method.String() == "" {
		return nil, interfaces.NewDIDError(interfaces.DIDErrInvalid,
			fmt.Sprintf("malformed DID %q", did))
	}
	m, ok := r.Lookup(method)
	if !ok {
		return nil, interfaces.NewDIDError(interfaces.DIDErrResolve,
			fmt.Sprintf("no resolver for did:%s", method))
	}
	return m.Resolve(ctx, did)
}
