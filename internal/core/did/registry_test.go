package did

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"

	"github.com/mee-pdn/go-mee/config"
	"github.com/mee-pdn/go-mee/internal/core/did/key"
	"github.com/mee-pdn/go-mee/internal/core/did/web"
	"github.com/mee-pdn/go-mee/internal/core/storage/mem"
	"github.com/mee-pdn/go-mee/internal/mocks"
	"github.com/mee-pdn/go-mee/pkg/interfaces"
	"github.com/mee-pdn/go-mee/pkg/types"
)

func newRegistry(t *testing.T) *Registry {
	t.Helper()
	r, err := NewRegistry(types.MethodKey, key.New(), web.New())
	require.NoError(t, err)
	return r
}

func TestRegistry_Routing(t *testing.T) {
	r := newRegistry(t)
	ctx := context.Background()

	assert.Equal(t, types.MethodKey, r.Method())
	assert.Equal(t, []string{"key", "web"}, r.Methods())

	keyDID, err := r.Create(ctx, interfaces.KeyCreateOptions{})
	require.NoError(t, err)
	assert.Equal(t, types.MethodKey, keyDID.Method())

	webManager, ok := r.Lookup(types.MethodWeb)
	require.True(t, ok)
	webDID, err := webManager.Create(ctx, interfaces.WebCreateOptions{Domain: "example.com"})
	require.NoError(t, err)
	assert.Equal(t, types.DID("did:web:example.com"), webDID)

	doc, err := r.Resolve(ctx, keyDID)
	require.NoError(t, err)
	assert.Equal(t, keyDID, doc.ID)

	_, ok = r.Lookup(types.MethodPeer)
	assert.False(t, ok)
}

func TestRegistry_CreateOtherMethod(t *testing.T) {
	r := newRegistry(t)
	ctx := context.Background()

	did, err := r.Create(ctx, interfaces.WebCreateOptions{Domain: "example.com"})
	assert.True(t, interfaces.IsDIDError(err, interfaces.DIDErrMethod), "did:key 管理器不签发 did:web")
	assert.Empty(t, did)

	webFirst, err := NewRegistry(types.MethodWeb, key.New(), web.New())
	require.NoError(t, err)
	_, err = webFirst.Create(ctx, interfaces.KeyCreateOptions{})
	assert.True(t, interfaces.IsDIDError(err, interfaces.DIDErrMethod))

	did, err = webFirst.Create(ctx, interfaces.WebCreateOptions{Domain: "example.com"})
	require.NoError(t, err)
	assert.Equal(t, webFirst.Method(), did.Method())

	t.Log("✅ Create 只签发 Method() 声明的方法")
}

func TestRegistry_Unsupported(t *testing.T) {
	r := newRegistry(t)
	ctx := context.Background()

	did, err := r.Create(ctx, interfaces.PeerCreateOptions{})
	assert.True(t, interfaces.IsDIDError(err, interfaces.DIDErrMethod))
	assert.Empty(t, did)

	_, err = r.Create(ctx, nil)
	assert.True(t, interfaces.IsDIDError(err, interfaces.DIDErrMethod))

	for _, did := range []types.DID{"did:peer:0z6Mk", "did:foo:bar"} {
		_, err = r.Resolve(ctx, did)
		assert.True(t, interfaces.IsDIDError(err, interfaces.DIDErrResolve), did)
		assert.False(t, interfaces.IsDIDError(err, interfaces.DIDErrMethod), did)
	}

	_, err = r.Resolve(ctx, "garbage")
	assert.True(t, interfaces.IsDIDError(err, interfaces.DIDErrInvalid))
}

func TestRegistry_Register(t *testing.T) {
	r := newRegistry(t)

	assert.ErrorIs(t, r.Register(key.New()), ErrDuplicateMethod)
	assert.ErrorIs(t, r.Register(nil), ErrNilManager)

	custom := &mocks.MockDIDManager{
		MethodFunc: func() types.DIDMethod { return types.MethodPeer },
	}
	require.NoError(t, r.Register(custom))

	peer, ok := r.Lookup(types.MethodPeer)
	require.True(t, ok)
	_, err := peer.Create(context.Background(), interfaces.PeerCreateOptions{})
	require.NoError(t, err, "注册后 did:peer 由自定义管理器处理")
	assert.Len(t, custom.CreateCalls, 1)

	peerFirst, err := NewRegistry(types.MethodPeer, custom)
	require.NoError(t, err)
	_, err = peerFirst.Create(context.Background(), interfaces.PeerCreateOptions{})
	require.NoError(t, err)
	assert.Len(t, custom.CreateCalls, 2)
}

func TestEnsureLocalIdentity(t *testing.T) {
	r := newRegistry(t)
	store := mem.New(nil)
	ctx := context.Background()

	first, err := EnsureLocalIdentity(ctx, r, store, interfaces.KeyCreateOptions{})
	require.NoError(t, err)
	assert.Equal(t, types.MethodKey, first.DID.Method())
	assert.Equal(t, first.DID.String(), first.NodeID.String())

	second, err := EnsureLocalIdentity(ctx, r, store, interfaces.KeyCreateOptions{})
	require.NoError(t, err)
	assert.Equal(t, first, second, "已存储的 DID 被复用")

	webFirst, err := NewRegistry(types.MethodWeb, key.New(), web.New())
	require.NoError(t, err)
	third, err := EnsureLocalIdentity(ctx, webFirst, store, interfaces.WebCreateOptions{Domain: "example.com"})
	require.NoError(t, err)
	assert.Equal(t, types.DID("did:web:example.com"), third.DID, "方法变化时重新创建")

	stored, ok, err := store.Get(types.NamespaceIdentity, types.KeyLocalDID)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, types.Value("did:web:example.com"), stored)
}

func TestEnsureLocalIdentity_CodecChange(t *testing.T) {
	r := newRegistry(t)
	store := mem.New(nil)
	ctx := context.Background()

	plain, err := EnsureLocalIdentity(ctx, r, store, interfaces.KeyCreateOptions{})
	require.NoError(t, err)

	jcs, err := EnsureLocalIdentity(ctx, r, store, interfaces.KeyCreateOptions{UseJCSPub: true})
	require.NoError(t, err)
	assert.NotEqual(t, plain.DID, jcs.DID, "配置改为 jwk_jcs-pub 时不复用 ed25519-pub DID")
	codec, _, err := key.DecodeMultibase(jcs.DID.MethodSpecificID())
	require.NoError(t, err)
	assert.Equal(t, key.CodecJWKJCSPub, codec)

	again, err := EnsureLocalIdentity(ctx, r, store, interfaces.KeyCreateOptions{UseJCSPub: true})
	require.NoError(t, err)
	assert.Equal(t, jcs, again, "编码一致时复用")

	back, err := EnsureLocalIdentity(ctx, r, store, interfaces.KeyCreateOptions{})
	require.NoError(t, err)
	assert.NotEqual(t, jcs.DID, back.DID)
}

func TestEnsureLocalIdentity_CreateFails(t *testing.T) {
	store := mem.New(nil)
	_, err := EnsureLocalIdentity(context.Background(), key.New(), store,
		interfaces.WebCreateOptions{Domain: "example.com"})
	assert.True(t, interfaces.IsDIDError(err, interfaces.DIDErrMethod))

	_, ok, _ := store.Get(types.NamespaceIdentity, types.KeyLocalDID)
	assert.False(t, ok, "创建失败不写存储")
}

func TestModule(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Identity = cfg.Identity.WithWeb("example.com", "nodes/alice")

	var (
		manager interfaces.DIDManager
		local   LocalIdentity
	)
	app := fxtest.New(t,
		fx.Supply(cfg),
		fx.Provide(func() interfaces.KVStore { return mem.New(nil) }),
		Module(),
		fx.Populate(&manager, &local),
	)
	app.RequireStart()
	defer app.RequireStop()

	assert.Equal(t, types.MethodWeb, manager.Method())
	assert.Equal(t, types.DID("did:web:example.com:nodes:alice"), local.DID)
}
