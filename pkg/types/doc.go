// Package types 定义 mee 的基础类型
//
// 这是整个系统的最底层包，不依赖任何其他 mee 内部包。
// 所有类型都是纯值类型，用于在各模块间传递数据。
//
// # 文件组织
//
//   - ids.go      - NodeID, UserID
//   - did.go      - DID, DIDMethod, DIDURL
//   - message.go  - ProfileName, Ticket, MessageKind, Message
//   - store.go    - Namespace, Key, Value
//   - errors.go   - 公共错误定义
//
// # 开放枚举
//
// DIDMethod 与 MessageKind 是开放枚举：未知字符串会原样保留为 Unknown 变体，
// 而不是被拒绝。这样不同协议版本之间通过容忍未知值保持前后兼容。
package types
