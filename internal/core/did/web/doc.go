// Package web 实现 did:web 方法
//
// did:web 把 DID 映射为一个 HTTPS URL：
//
//	did:web:example.com                 -> https://example.com/.well-known/did.json
//	did:web:example.com:users:alice     -> https://example.com/users/alice/did.json
//	did:web:localhost%3A8443            -> https://localhost:8443/.well-known/did.json
//
// 解析只读取文档的 id 与 verificationMethod[].id，不校验签名或证明。
package web
