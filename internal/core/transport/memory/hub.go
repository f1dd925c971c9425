package memory

import (
	"context"
	"sync"

	"github.com/mee-pdn/go-mee/pkg/interfaces"
	"github.com/mee-pdn/go-mee/pkg/types"
)

// DefaultMailboxSize 默认信箱容量
const DefaultMailboxSize = 256

// Hub 进程内中继
type Hub struct {
	name string
	size int

	mu        sync.Mutex
	mailboxes map[types.ProfileName]*mailbox
}

// mailbox 单个 Profile 的信箱
type mailbox struct {
	queue   []types.Message
	handler interfaces.InboundHandler

	// wait 在有新消息时被关闭并替换
	wait chan struct{}
}

// NewHub 创建中继，size <= 0 使用默认容量
func NewHub(name string, size int) *Hub {
	if size <= 0 {
		size = DefaultMailboxSize
	}
	return &Hub{
		name:      name,
		size:      size,
		mailboxes: make(map[types.ProfileName]*mailbox),
	}
}

// Name 返回中继名
func (h *Hub) Name() string {
	return h.name
}

// box 返回 profile 的信箱，必要时创建；调用者持有 h.mu
func (h *Hub) box(profile types.ProfileName) *mailbox {
	mb, ok := h.mailboxes[profile]
	if !ok {
		mb = &mailbox{wait: make(chan struct{})}
		h.mailboxes[profile] = mb
	}
	return mb
}

// Bind 为 profile 注册入站处理器
//
// 信箱中已排队的消息先按到达顺序交给处理器，排空后才安装处理器；
// 排空期间新到的消息继续排队，保证绑定前后的发送顺序。返回的函数解除绑定。
func (h *Hub) Bind(profile types.ProfileName, handler interfaces.InboundHandler) func() {
	for {
		h.mu.Lock()
		mb := h.box(profile)
		pending := mb.queue
		mb.queue = nil
		if len(pending) == 0 {
			mb.handler = handler
			h.mu.Unlock()
			break
		}
		h.mu.Unlock()

		for _, msg := range pending {
			if err := handler(context.Background(), msg); err != nil {
				logger.Warn("排队消息投递失败", "profile", profile, "error", err)
			}
		}
	}

	return func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if mb, ok := h.mailboxes[profile]; ok {
			mb.handler = nil
		}
	}
}

// deliver 把消息交给 to
func (h *Hub) deliver(ctx context.Context, to types.ProfileName, msg types.Message) error {
	h.mu.Lock()
	mb := h.box(to)
	handler := mb.handler
	if handler == nil {
		if len(mb.queue) >= h.size {
			h.mu.Unlock()
			return ErrMailboxFull
		}
		mb.queue = append(mb.queue, msg)
		close(mb.wait)
		mb.wait = make(chan struct{})
	}
	h.mu.Unlock()

	if handler != nil {
		return handler(ctx, msg)
	}
	return nil
}

// pop 取出 profile 信箱的第一条消息；信箱为空时返回等待通道
func (h *Hub) pop(profile types.ProfileName) (*types.Message, <-chan struct{}) {
	h.mu.Lock()
	defer h.mu.Unlock()

	mb := h.box(profile)
	if len(mb.queue) == 0 {
		return nil, mb.wait
	}
	msg := mb.queue[0]
	mb.queue = mb.queue[1:]
	return &msg, nil
}

// Pending 返回 profile 信箱中排队的消息数
func (h *Hub) Pending(profile types.ProfileName) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	if mb, ok := h.mailboxes[profile]; ok {
		return len(mb.queue)
	}
	return 0
}
