// Package did 提供 DID 管理器注册表与本地身份
//
// Registry 本身满足 interfaces.DIDManager：
//   - Resolve 按 did.Method() 路由到对应方法的管理器
//   - Create 按参数变体的方法标签路由
//
// 模块启动时按 IdentityConfig 创建（或从存储中恢复）节点的本地 DID，
// 并由此派生 NodeID。
//
//	┌───────────────────────────────────────────┐
//	│                 Registry                   │
//	│   key -> key.Manager   web -> web.Manager  │
//	└───────────────────────────────────────────┘
//	                    │
//	          LocalIdentity{DID, NodeID}
package did
