package interfaces

import (
	"context"

	"github.com/mee-pdn/go-mee/pkg/types"
)

// Transport 传输能力
//
// 「获取地址」「打开通道」「交换消息」三步分离，使传输可以是单向的
// （HTTP 推送）、双向的（WebSocket）或存储转发的（内存中继），
// 对调用者都呈现相同的契约。
type Transport interface {
	// Ticket 返回 profile 的可达性票据
	//
	// 给定当前配置时结果是确定的；票据本身足以让远端找到 profile。
	// 传输当前无法产生地址时返回 *TransportError。
	Ticket(ctx context.Context, profile types.ProfileName) (types.Ticket, error)

	// OpenSession 对远端票据打开会话
	//
	// 这是获得 Session 的唯一途径。只做确认票据格式所需的最小校验，
	// 不进行实际消息交换。票据无法解释时返回 *TransportError。
	OpenSession(ctx context.Context, local types.ProfileName, remote types.Ticket) (Session, error)
}

// Session 会话
//
// 会话建立成功即处于打开状态，由打开它的调用者独占，
// 调用者负责 Close。没有显式的关闭握手。
type Session interface {
	// Send 发送一条消息
	//
	// 传输接受交付后返回（不等待远端处理）。
	// 同一调用者顺序发出的 Send 按调用顺序交给传输。
	Send(ctx context.Context, msg types.Message) error

	// Recv 接收下一条入站消息
	//
	// 传输没有入站路径时返回 (nil, nil)，这是接收的终止状态而非错误。
	Recv(ctx context.Context) (*types.Message, error)

	// Close 释放会话资源
	Close() error
}

// InboundHandler 入站消息处理器
//
// 传输把收到的消息交给节点（通常是收件箱）时调用。
// 返回错误表示消息未被接受。
type InboundHandler func(ctx context.Context, msg types.Message) error
