package key

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mee-pdn/go-mee/pkg/interfaces"
	"github.com/mee-pdn/go-mee/pkg/types"
)

// 来自 did:key 规范测试向量的 Ed25519 公钥
const (
	vectorDID = "did:key:z6MkiTBz1ymuepAQ4HEHYSF1H8quG5GLVVQR3djdX3mDooWp"
	vectorJWK = `{"kty":"OKP","crv":"Ed25519","x":"O2onvM62pC1io6jQKm8Nc2UyFXcd4kOmOsBIoYtZ2ik"}`
)

func TestManager_Method(t *testing.T) {
	assert.Equal(t, types.MethodKey, New().Method())
}

func TestManager_CreateFromJWK(t *testing.T) {
	did, err := New().Create(context.Background(), interfaces.KeyCreateOptions{JWK: vectorJWK})
	require.NoError(t, err)
	assert.Equal(t, types.DID(vectorDID), did)
	assert.Equal(t, types.MethodKey, did.Method())
}

func TestManager_CreateGenerated(t *testing.T) {
	m := New()

	a, err := m.Create(context.Background(), interfaces.KeyCreateOptions{})
	require.NoError(t, err)
	b, err := m.Create(context.Background(), interfaces.KeyCreateOptions{})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(a.String(), "did:key:z6Mk"), "ed25519-pub 编码以 z6Mk 开头")
	assert.NotEqual(t, a, b, "每次生成新密钥")
	assert.True(t, a.IsValid())
}

func TestManager_CreateJCS(t *testing.T) {
	m := New()

	did, err := m.Create(context.Background(), interfaces.KeyCreateOptions{JWK: vectorJWK, UseJCSPub: true})
	require.NoError(t, err)

	codec, payload, err := DecodeMultibase(did.MethodSpecificID())
	require.NoError(t, err)
	assert.Equal(t, CodecJWKJCSPub, codec)
	assert.Equal(t,
		`{"crv":"Ed25519","kty":"OKP","x":"O2onvM62pC1io6jQKm8Nc2UyFXcd4kOmOsBIoYtZ2ik"}`,
		string(payload), "JWK 按 JCS 规范化")

	doc, err := m.Resolve(context.Background(), did)
	require.NoError(t, err)
	assert.Equal(t, did, doc.ID)
}

func TestManager_CreateWrongVariant(t *testing.T) {
	m := New()

	for _, params := range []interfaces.DIDCreateParams{
		interfaces.WebCreateOptions{Domain: "example.com"},
		interfaces.PeerCreateOptions{},
		nil,
	} {
		did, err := m.Create(context.Background(), params)
		assert.True(t, interfaces.IsDIDError(err, interfaces.DIDErrMethod), "params=%v err=%v", params, err)
		assert.Empty(t, did)
	}
}

func TestManager_CreateInvalidJWK(t *testing.T) {
	cases := map[string]string{
		"not json":    `{`,
		"wrong curve": `{"kty":"OKP","crv":"X25519","x":"O2onvM62pC1io6jQKm8Nc2UyFXcd4kOmOsBIoYtZ2ik"}`,
		"short key":   `{"kty":"OKP","crv":"Ed25519","x":"AAAA"}`,
		"private":     `{"kty":"OKP","crv":"Ed25519","x":"O2onvM62pC1io6jQKm8Nc2UyFXcd4kOmOsBIoYtZ2ik","d":"AAAA"}`,
	}
	for name, jwk := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := New().Create(context.Background(), interfaces.KeyCreateOptions{JWK: jwk})
			assert.True(t, interfaces.IsDIDError(err, interfaces.DIDErrInvalid), "err=%v", err)
		})
	}
}

func TestManager_Resolve(t *testing.T) {
	doc, err := New().Resolve(context.Background(), vectorDID)
	require.NoError(t, err)

	assert.Equal(t, types.DID(vectorDID), doc.ID)
	require.Len(t, doc.VerificationMethodIDs, 1)

	vm := doc.VerificationMethodIDs[0]
	assert.Equal(t, types.DID(vectorDID), vm.DID())
	frag, ok := vm.Fragment()
	assert.True(t, ok)
	assert.Equal(t, "z6MkiTBz1ymuepAQ4HEHYSF1H8quG5GLVVQR3djdX3mDooWp", frag)
}

func TestManager_ResolveInvalid(t *testing.T) {
	cases := []types.DID{
		"did:web:example.com",
		"not-a-did",
		"did:key:",
		"did:key:6MkiTBz1ymuepAQ4HEHYSF1H8quG5GLVVQR3djdX3mDooWp", // 缺少 multibase 前缀
		"did:key:z0OIl",                                           // 非 base58 字符
		"did:key:" + types.DID(EncodeMultibase(CodecEd25519Pub, []byte{1, 2, 3})),
		"did:key:" + types.DID(EncodeMultibase(0x1200, make([]byte, 33))),
	}
	for _, did := range cases {
		_, err := New().Resolve(context.Background(), did)
		assert.True(t, interfaces.IsDIDError(err, interfaces.DIDErrInvalid), "did=%q err=%v", did, err)
	}
}

func TestFromPublicKey_RoundTrip(t *testing.T) {
	pub, _, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	did := FromPublicKey(pub)
	decoded, err := DecodePublicKey(did.MethodSpecificID())
	require.NoError(t, err)
	assert.True(t, pub.Equal(decoded))
}

func TestManager_ConcurrentResolve(t *testing.T) {
	m := New()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := m.Resolve(context.Background(), vectorDID); err != nil {
				t.Errorf("Resolve() error = %v", err)
			}
		}()
	}
	wg.Wait()
}
