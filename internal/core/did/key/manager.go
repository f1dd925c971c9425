package key

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"fmt"

	"github.com/mee-pdn/go-mee/pkg/interfaces"
	"github.com/mee-pdn/go-mee/pkg/lib/log"
	"github.com/mee-pdn/go-mee/pkg/types"
)

var logger = log.Logger("core/did/key")

// Manager did:key 管理器（无状态）
type Manager struct{}

var _ interfaces.DIDManager = Manager{}

// New 创建 did:key 管理器
func New() Manager {
	return Manager{}
}

// Method 返回 did:key
func (Manager) Method() types.DIDMethod {
	return types.MethodKey
}

// Create 创建 did:key
//
// KeyCreateOptions.JWK 为空时生成新的 Ed25519 密钥；私钥不会被保留。
func (m Manager) Create(ctx context.Context, params interfaces.DIDCreateParams) (types.DID, error) {
	opts, ok := params.(interfaces.KeyCreateOptions)
	if !ok {
		return "", interfaces.NewDIDError(interfaces.DIDErrMethod,
			fmt.Sprintf("did:key provider cannot create %s DIDs", methodOf(params)))
	}
	if err := ctx.Err(); err != nil {
		return "", interfaces.WrapDIDError(interfaces.DIDErrOther, "create cancelled", err)
	}

	var (
		jwk JWK
		pub ed25519.PublicKey
	)
	if opts.JWK == "" {
		generated, _, err := ed25519.GenerateKey(rand.Reader)
		if err != nil {
			return "", interfaces.WrapDIDError(interfaces.DIDErrOther, "generate ed25519 key", err)
		}
		pub = generated
		jwk = JWKFromPublicKey(pub)
	} else {
		var err error
		jwk, pub, err = ParseJWK([]byte(opts.JWK))
		if err != nil {
			return "", interfaces.WrapDIDError(interfaces.DIDErrInvalid, "parse jwk", err)
		}
	}

	did := FromPublicKey(pub)
	if opts.UseJCSPub {
		did = types.DID("did:key:" + EncodeMultibase(CodecJWKJCSPub, jwk.Canonical()))
	}
	logger.Debug("已创建 did:key", "did", log.TruncateID(did.String(), 24))
	return did, nil
}

// Resolve 解析 did:key
//
// 文档包含唯一的验证方法 did:key:z...#z...。
func (Manager) Resolve(_ context.Context, did types.DID) (*interfaces.DIDDocument, error) {
	if did.Method() != types.MethodKey {
		return nil, interfaces.NewDIDError(interfaces.DIDErrInvalid,
			fmt.Sprintf("not a did:key: %q", did))
	}

	id := did.MethodSpecificID()
	if _, err := DecodePublicKey(id); err != nil {
		return nil, interfaces.WrapDIDError(interfaces.DIDErrInvalid, "decode did:key", err)
	}

	return &interfaces.DIDDocument{
		ID:                    did,
		VerificationMethodIDs: []types.DIDURL{did.URL(id)},
	}, nil
}

// FromPublicKey 由 Ed25519 公钥构造 did:key（ed25519-pub 编码）
func FromPublicKey(pub ed25519.PublicKey) types.DID {
	return types.DID("did:key:" + EncodeMultibase(CodecEd25519Pub, pub))
}

func methodOf(params interfaces.DIDCreateParams) string {
	if params == nil {
		return "<nil>"
	}
	return params.Method().String()
}
