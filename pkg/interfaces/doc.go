// Package interfaces 定义 mee 的公共接口
//
// 节点由三类能力组合而成，每类能力是一个（或一对）独立接口：
//
//   - did.go        - DIDResolver / DIDProvider / DIDManager（身份解析与签发）
//   - storage.go    - KVStore（命名空间隔离的本地键值存储）
//   - transport.go  - Transport / Session（票据寻址与会话收发）
//   - node.go       - Node（能力聚合门面）
//   - errors.go     - 错误分类
//
// 具体实现位于 internal/core 下，通过构造参数注入到 Node，
// 而不是通过继承某个基础节点类型。
package interfaces
