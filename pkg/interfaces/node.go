package interfaces

import "github.com/mee-pdn/go-mee/pkg/types"

// Node 节点能力聚合
//
// Node 不执行任何自身逻辑，只是高层服务（例如控制面）通过一个句柄
// 触达传输、身份管理与存储三个子系统的接缝。
type Node interface {
	// Profile 返回节点的传输层名称
	Profile() types.ProfileName

	// NodeID 返回节点标识
	NodeID() types.NodeID

	// UserID 返回可选的用户标识
	UserID() (types.UserID, bool)

	// Transport 返回传输
	Transport() Transport

	// DIDManager 返回身份管理器
	DIDManager() DIDManager

	// Store 返回本地存储
	Store() KVStore
}
