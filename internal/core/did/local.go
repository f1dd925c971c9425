package did

import (
	"context"
	"fmt"

	"github.com/mee-pdn/go-mee/internal/core/did/key"
	"github.com/mee-pdn/go-mee/pkg/interfaces"
	"github.com/mee-pdn/go-mee/pkg/types"
)

// LocalIdentity 节点的本地身份
type LocalIdentity struct {
	DID    types.DID
	NodeID types.NodeID
}

// EnsureLocalIdentity 读取或创建本地 DID
//
// 只有随机生成、且编码方式与配置一致的 did:key 会复用存储中的 identity/did，
// 其余参数的创建是确定的，每次按参数重新创建并写回存储。
func EnsureLocalIdentity(ctx context.Context, provider interfaces.DIDProvider,
	store interfaces.KVStore, params interfaces.DIDCreateParams) (LocalIdentity, error) {

	stored, ok, err := store.Get(types.NamespaceIdentity, types.KeyLocalDID)
	if err != nil {
		return LocalIdentity{}, fmt.Errorf("load local did: %w", err)
	}

	did := types.DID(stored)
	if ok && reusable(did, params) {
		logger.Info("已加载本地 DID", "did", did)
	} else {
		did, err = provider.Create(ctx, params)
		if err != nil {
			return LocalIdentity{}, fmt.Errorf("create local did: %w", err)
		}
		if err := store.Set(types.NamespaceIdentity, types.KeyLocalDID, types.Value(did)); err != nil {
			return LocalIdentity{}, fmt.Errorf("save local did: %w", err)
		}
		logger.Info("已创建本地 DID", "did", did)
	}

	nodeID, err := types.NodeIDFromDID(did)
	if err != nil {
		return LocalIdentity{}, err
	}
	return LocalIdentity{DID: did, NodeID: nodeID}, nil
}

// reusable 存储中的 DID 是否可以代替一次新的创建
func reusable(stored types.DID, params interfaces.DIDCreateParams) bool {
	opts, ok := params.(interfaces.KeyCreateOptions)
	if !ok || opts.JWK != "" {
		return false
	}
	if !stored.IsValid() || stored.Method() != types.MethodKey {
		return false
	}
	// 编码方式（ed25519-pub / jwk_jcs-pub）须与当前配置一致
	codec, _, err := key.DecodeMultibase(stored.MethodSpecificID())
	if err != nil {
		return false
	}
	if opts.UseJCSPub {
		return codec == key.CodecJWKJCSPub
	}
	return codec == key.CodecEd25519Pub
}
