package transport

import (
	"context"
	"time"

	"github.com/mee-pdn/go-mee/internal/core/metrics"
	"github.com/mee-pdn/go-mee/pkg/interfaces"
	"github.com/mee-pdn/go-mee/pkg/types"
)

// instrumented 记录指标的传输包装
type instrumented struct {
	inner   interfaces.Transport
	name    string
	metrics *metrics.Metrics
}

// Instrument 为传输加上指标
//
// m 为 nil 时原样返回 t。
func Instrument(t interfaces.Transport, name string, m *metrics.Metrics) interfaces.Transport {
	if m == nil {
		return t
	}
	return &instrumented{inner: t, name: name, metrics: m}
}

func (t *instrumented) Ticket(ctx context.Context, profile types.ProfileName) (types.Ticket, error) {
	return t.inner.Ticket(ctx, profile)
}

func (t *instrumented) OpenSession(ctx context.Context, local types.ProfileName, remote types.Ticket) (interfaces.Session, error) {
	s, err := t.inner.OpenSession(ctx, local, remote)
	t.metrics.ObserveSessionOpen(t.name, err)
	if err != nil {
		return nil, err
	}
	return &instrumentedSession{inner: s, name: t.name, metrics: t.metrics}, nil
}

// Unwrap 返回被包装的传输
func (t *instrumented) Unwrap() interfaces.Transport {
	return t.inner
}

type instrumentedSession struct {
	inner   interfaces.Session
	name    string
	metrics *metrics.Metrics
}

func (s *instrumentedSession) Send(ctx context.Context, msg types.Message) error {
	start := time.Now()
	err := s.inner.Send(ctx, msg)
	s.metrics.ObserveSend(s.name, msg.Kind, time.Since(start), err)
	return err
}

func (s *instrumentedSession) Recv(ctx context.Context) (*types.Message, error) {
	return s.inner.Recv(ctx)
}

func (s *instrumentedSession) Close() error {
	return s.inner.Close()
}
