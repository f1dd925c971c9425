package key

import "errors"

// 编码错误定义
var (
	// ErrNotMultibase 方法特定标识符不是 base58btc multibase（缺少 'z' 前缀）
	ErrNotMultibase = errors.New("did:key: identifier is not base58btc multibase")

	// ErrUnsupportedCodec 不支持的 multicodec
	ErrUnsupportedCodec = errors.New("did:key: unsupported multicodec")

	// ErrInvalidKeySize 公钥长度错误
	ErrInvalidKeySize = errors.New("did:key: invalid ed25519 public key size")

	// ErrInvalidJWK JWK 不是 Ed25519 OKP 公钥
	ErrInvalidJWK = errors.New("did:key: jwk is not an Ed25519 OKP public key")
)
