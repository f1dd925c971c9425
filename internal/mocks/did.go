package mocks

import (
	"context"
	"sync"

	"github.com/mee-pdn/go-mee/pkg/interfaces"
	"github.com/mee-pdn/go-mee/pkg/types"
)

// MockDIDManager 模拟 DIDManager 接口实现
type MockDIDManager struct {
	// 可覆盖的方法
	MethodFunc  func() types.DIDMethod
	CreateFunc  func(ctx context.Context, params interfaces.DIDCreateParams) (types.DID, error)
	ResolveFunc func(ctx context.Context, did types.DID) (*interfaces.DIDDocument, error)

	// 调用记录
	mu           sync.Mutex
	CreateCalls  []interfaces.DIDCreateParams
	ResolveCalls []types.DID
}

var _ interfaces.DIDManager = (*MockDIDManager)(nil)

// Method 返回方法，默认 did:key
func (m *MockDIDManager) Method() types.DIDMethod {
	if m.MethodFunc != nil {
		return m.MethodFunc()
	}
	return types.MethodKey
}

// Create 创建 DID，默认返回 did:<method>:mock
func (m *MockDIDManager) Create(ctx context.Context, params interfaces.DIDCreateParams) (types.DID, error) {
	m.mu.Lock()
	m.CreateCalls = append(m.CreateCalls, params)
	m.mu.Unlock()

	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, params)
	}
	return types.DID("did:" + m.Method().String() + ":mock"), nil
}

// Resolve 解析 DID，默认返回只含 #mock 验证方法的文档
func (m *MockDIDManager) Resolve(ctx context.Context, did types.DID) (*interfaces.DIDDocument, error) {
	m.mu.Lock()
	m.ResolveCalls = append(m.ResolveCalls, did)
	m.mu.Unlock()

	if m.ResolveFunc != nil {
		return m.ResolveFunc(ctx, did)
	}
	return &interfaces.DIDDocument{
		ID:                    did,
		VerificationMethodIDs: []types.DIDURL{did.URL("mock")},
	}, nil
}
