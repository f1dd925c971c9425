package inbox

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/time/rate"

	"github.com/mee-pdn/go-mee/internal/core/metrics"
	"github.com/mee-pdn/go-mee/pkg/interfaces"
	"github.com/mee-pdn/go-mee/pkg/lib/log"
	"github.com/mee-pdn/go-mee/pkg/types"
)

var logger = log.Logger("protocol/inbox")

// Service 收件箱服务
type Service struct {
	store   interfaces.KVStore
	metrics *metrics.Metrics
	config  *Config

	// mu 串行化读-改-写
	mu sync.Mutex

	// limiters 发送方 -> 限速器；不限速时为 nil
	limiters *lru.Cache[types.ProfileName, *rate.Limiter]
	limMu    sync.Mutex
}

// New 创建收件箱服务
func New(store interfaces.KVStore, m *metrics.Metrics, opts ...Option) (*Service, error) {
	if store == nil {
		return nil, ErrNilStore
	}

	config := DefaultConfig()
	for _, opt := range opts {
		opt(config)
	}

	s := &Service{
		store:   store,
		metrics: m,
		config:  config,
	}

	if config.Rate > 0 {
		size := config.MaxSenders
		if size <= 0 {
			size = DefaultConfig().MaxSenders
		}
		cache, err := lru.New[types.ProfileName, *rate.Limiter](size)
		if err != nil {
			return nil, fmt.Errorf("inbox: create limiter cache: %w", err)
		}
		s.limiters = cache
	}

	return s, nil
}

// Deliver 把消息追加到收件箱
//
// 可直接作为 interfaces.InboundHandler 使用。
func (s *Service) Deliver(ctx context.Context, msg types.Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !s.allow(msg.From) {
		logger.DebugContext(ctx, "投递被限速", "from", msg.From)
		return ErrRateLimited
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.load()
	if err != nil {
		return err
	}
	items = append(items, types.InboxItemFromMessage(msg))

	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("inbox: encode items: %w", err)
	}
	if err := s.store.Set(types.NamespaceInbox, types.KeyInboxItems, types.Value(data)); err != nil {
		logger.WarnContext(ctx, "写入收件箱失败", "error", err)
		return err
	}

	s.metrics.ObserveDelivered(msg.Kind, len(items))
	logger.DebugContext(ctx, "消息已投递", "from", msg.From, "kind", msg.Kind.String(), "inboxLen", len(items))
	return nil
}

// List 返回全部条目（到达顺序），空收件箱返回空切片
func (s *Service) List(ctx context.Context) ([]types.InboxItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// Messages 返回解码后的消息
//
// body_b64 无法解码的条目被跳过。
func (s *Service) Messages(ctx context.Context) ([]types.Message, error) {
	items, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	msgs := make([]types.Message, 0, len(items))
	for _, it := range items {
		msg, err := it.Message()
		if err != nil {
			logger.Warn("跳过无法解码的收件箱条目", "from", it.From, "error", err)
			continue
		}
		msgs = append(msgs, msg)
	}
	return msgs, nil
}

// load 读取当前条目；调用者持有 s.mu
func (s *Service) load() ([]types.InboxItem, error) {
	raw, ok, err := s.store.Get(types.NamespaceInbox, types.KeyInboxItems)
	if err != nil {
		return nil, err
	}
	items := []types.InboxItem{}
	if !ok || raw == "" {
		return items, nil
	}
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return items, nil
}

// allow 检查发送方是否在速率之内
func (s *Service) allow(from types.ProfileName) bool {
	if s.limiters == nil {
		return true
	}

	s.limMu.Lock()
	lim, ok := s.limiters.Get(from)
	if !ok {
		lim = rate.NewLimiter(s.config.Rate, s.config.Burst)
		s.limiters.Add(from, lim)
	}
	s.limMu.Unlock()

	return lim.Allow()
}
