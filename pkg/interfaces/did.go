package interfaces

import (
	"context"

	"github.com/mee-pdn/go-mee/pkg/types"
)

// ════════════════════════════════════════════════════════════════════════════
//                              DID 文档
// ════════════════════════════════════════════════════════════════════════════

// DIDDocument 解析得到的身份记录
//
// 只由 DIDResolver 产生，返回后不可变。
type DIDDocument struct {
	// ID 文档所属 DID
	ID types.DID

	// VerificationMethodIDs 验证方法 URL 列表（有序）
	VerificationMethodIDs []types.DIDURL
}

// VerificationRelationship 验证关系
type VerificationRelationship int

const (
	// Authentication 认证
	Authentication VerificationRelationship = iota
	// AssertionMethod 断言
	AssertionMethod
	// KeyAgreement 密钥协商
	KeyAgreement
	// CapabilityInvocation 能力调用
	CapabilityInvocation
	// CapabilityDelegation 能力委托
	CapabilityDelegation
)

// String 返回 DID Core 中的属性名
func (r VerificationRelationship) String() string {
	switch r {
	case Authentication:
		return "authentication"
	case AssertionMethod:
		return "assertionMethod"
	case KeyAgreement:
		return "keyAgreement"
	case CapabilityInvocation:
		return "capabilityInvocation"
	case CapabilityDelegation:
		return "capabilityDelegation"
	default:
		return "unknown"
	}
}

// ════════════════════════════════════════════════════════════════════════════
//                              创建参数（标签变体）
// ════════════════════════════════════════════════════════════════════════════

// DIDCreateParams DID 创建参数
//
// 每个受支持的方法对应一个变体：
//   - KeyCreateOptions
//   - WebCreateOptions
//   - PeerCreateOptions
type DIDCreateParams interface {
	// Method 返回参数所属的 DID 方法
	Method() types.DIDMethod

	isDIDCreateParams()
}

// KeyCreateOptions did:key 创建选项
type KeyCreateOptions struct {
	// JWK 公钥 JWK（JSON 字符串），为空时生成新的 Ed25519 密钥
	JWK string

	// UseJCSPub 使用 jwk_jcs-pub 编码而不是原始公钥编码
	UseJCSPub bool
}

// Method 实现 DIDCreateParams
func (KeyCreateOptions) Method() types.DIDMethod { return types.MethodKey }

func (KeyCreateOptions) isDIDCreateParams() {}

// WebCreateOptions did:web 创建选项
type WebCreateOptions struct {
	// Domain 域名（可带端口）
	Domain string

	// Path 可选路径（"/" 分隔）
	Path string
}

// Method 实现 DIDCreateParams
func (WebCreateOptions) Method() types.DIDMethod { return types.MethodWeb }

func (WebCreateOptions) isDIDCreateParams() {}

// PeerCreateOptions did:peer 创建选项
//
// 目前没有字段，did:peer 的创建是扩展点。
type PeerCreateOptions struct{}

// Method 实现 DIDCreateParams
func (PeerCreateOptions) Method() types.DIDMethod { return types.MethodPeer }

func (PeerCreateOptions) isDIDCreateParams() {}

// ════════════════════════════════════════════════════════════════════════════
//                              能力接口
// ════════════════════════════════════════════════════════════════════════════

// DIDResolver DID 解析能力
//
// 实现必须可安全并发调用，且不得修改其他解析可观察到的共享状态。
type DIDResolver interface {
	// Resolve 解析 DID 为文档
	//
	// 失败时返回 *DIDError：
	//   - DIDErrResolve: 方法相关的查找无法完成
	//   - DIDErrNotFound: 标识符不存在
	//   - DIDErrInvalid: 标识符对该方法格式错误
	Resolve(ctx context.Context, did types.DID) (*DIDDocument, error)
}

// DIDProvider DID 签发能力
type DIDProvider interface {
	// Method 返回提供者声明的方法
	Method() types.DIDMethod

	// Create 根据参数创建新 DID
	//
	// 参数变体不属于本提供者时返回 DIDErrMethod，且不返回 DID。
	// 成功时返回的 DID 语法有效，方法与 Method() 一致。
	Create(ctx context.Context, params DIDCreateParams) (types.DID, error)
}

// DIDManager 同时满足解析与签发的组合能力
type DIDManager interface {
	DIDResolver
	DIDProvider
}
