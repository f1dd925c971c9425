// Package key 实现 did:key 方法
//
// did:key 的方法特定标识符是公钥本身的 multibase 编码：
//
//	did:key:z<base58btc(varint(multicodec) || key bytes)>
//
// 支持的 multicodec：
//
//	0xed    ed25519-pub    32 字节原始公钥
//	0xeb51  jwk_jcs-pub    JCS 规范化后的公钥 JWK
//
// 解析完全在本地完成，不访问网络。Manager 无状态，可以在任意多个
// goroutine 间共享。
package key
