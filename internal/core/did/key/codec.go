package key

import (
	"bytes"
	"crypto/ed25519"
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/mr-tron/base58"
	"github.com/multiformats/go-varint"
)

// multicodec 代码
const (
	CodecEd25519Pub uint64 = 0xed
	CodecJWKJCSPub  uint64 = 0xeb51
)

// multibasePrefix base58btc 的 multibase 前缀
const multibasePrefix = 'z'

// JWK Ed25519 OKP 公钥 JWK
//
// 字段按字典序声明，json 编码的结果即 JCS 规范形式。
type JWK struct {
	Crv string `json:"crv"`
	Kty string `json:"kty"`
	X   string `json:"x"`
}

// JWKFromPublicKey 由 Ed25519 公钥构造 JWK
func JWKFromPublicKey(pub ed25519.PublicKey) JWK {
	return JWK{
		Crv: "Ed25519",
		Kty: "OKP",
		X:   base64.RawURLEncoding.EncodeToString(pub),
	}
}

// ParseJWK 解析 JWK JSON，只接受 Ed25519 OKP 公钥
func ParseJWK(data []byte) (JWK, ed25519.PublicKey, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return JWK{}, nil, fmt.Errorf("%w: %v", ErrInvalidJWK, err)
	}
	if _, hasPrivate := raw["d"]; hasPrivate {
		return JWK{}, nil, fmt.Errorf("%w: private key material present", ErrInvalidJWK)
	}

	var jwk JWK
	if err := json.Unmarshal(data, &jwk); err != nil {
		return JWK{}, nil, fmt.Errorf("%w: %v", ErrInvalidJWK, err)
	}
	if jwk.Kty != "OKP" || jwk.Crv != "Ed25519" {
		return JWK{}, nil, fmt.Errorf("%w: kty=%q crv=%q", ErrInvalidJWK, jwk.Kty, jwk.Crv)
	}

	pub, err := base64.RawURLEncoding.DecodeString(jwk.X)
	if err != nil {
		return JWK{}, nil, fmt.Errorf("%w: x: %v", ErrInvalidJWK, err)
	}
	if len(pub) != ed25519.PublicKeySize {
		return JWK{}, nil, ErrInvalidKeySize
	}
	return jwk, ed25519.PublicKey(pub), nil
}

// Canonical 返回 JWK 的 JCS 规范化字节
func (j JWK) Canonical() []byte {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	// 三个字符串字段不会编码失败
	_ = enc.Encode(j)
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n"))
}

// EncodeMultibase 编码为 z<base58btc(varint(codec) || data)>
func EncodeMultibase(codec uint64, data []byte) string {
	prefixed := append(varint.ToUvarint(codec), data...)
	return string(multibasePrefix) + base58.Encode(prefixed)
}

// DecodeMultibase 解码 multibase 标识符，返回 multicodec 和载荷
func DecodeMultibase(id string) (uint64, []byte, error) {
	if len(id) < 2 || id[0] != multibasePrefix {
		return 0, nil, ErrNotMultibase
	}
	raw, err := base58.Decode(id[1:])
	if err != nil {
		return 0, nil, fmt.Errorf("%w: %v", ErrNotMultibase, err)
	}
	codec, n, err := varint.FromUvarint(raw)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: %v", ErrUnsupportedCodec, err)
	}
	return codec, raw[n:], nil
}

// DecodePublicKey 从方法特定标识符还原 Ed25519 公钥
func DecodePublicKey(id string) (ed25519.PublicKey, error) {
	codec, payload, err := DecodeMultibase(id)
	if err != nil {
		return nil, err
	}

	switch codec {
	case CodecEd25519Pub:
		if len(payload) != ed25519.PublicKeySize {
			return nil, ErrInvalidKeySize
		}
		return ed25519.PublicKey(payload), nil
	case CodecJWKJCSPub:
		_, pub, err := ParseJWK(payload)
		return pub, err
	default:
		return nil, fmt.Errorf("%w: 0x%x", ErrUnsupportedCodec, codec)
	}
}
