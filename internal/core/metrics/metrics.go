package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mee-pdn/go-mee/pkg/types"
)

const namespace = "mee"

// 结果标签
const (
	resultOK    = "ok"
	resultError = "error"
)

// Metrics 节点指标集合
type Metrics struct {
	registry *prometheus.Registry

	messagesSent     *prometheus.CounterVec
	messagesReceived *prometheus.CounterVec
	sendFailures     *prometheus.CounterVec
	sessionsOpened   *prometheus.CounterVec
	sendDuration     *prometheus.HistogramVec
	storeOps         *prometheus.CounterVec
	inboxItems       prometheus.Gauge
}

// New 创建指标集合并注册到私有 Registry
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		messagesSent: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_sent_total",
			Help:      "Messages accepted by a transport for delivery.",
		}, []string{"transport", "kind"}),
		messagesReceived: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_received_total",
			Help:      "Messages delivered into the local inbox.",
		}, []string{"kind"}),
		sendFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "send_failures_total",
			Help:      "Session sends rejected by the transport.",
		}, []string{"transport"}),
		sessionsOpened: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sessions_opened_total",
			Help:      "Session open attempts by result.",
		}, []string{"transport", "result"}),
		sendDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "send_duration_seconds",
			Help:      "Time until a transport accepted a message.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"transport"}),
		storeOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "store_ops_total",
			Help:      "Key-value store operations by backend, op and result.",
		}, []string{"backend", "op", "result"}),
		inboxItems: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "inbox_items",
			Help:      "Items currently held in the inbox.",
		}),
	}

	m.registry.MustRegister(
		m.messagesSent,
		m.messagesReceived,
		m.sendFailures,
		m.sessionsOpened,
		m.sendDuration,
		m.storeOps,
		m.inboxItems,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Registry 返回私有 Registry
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// Handler 返回 /metrics 处理器
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObserveSend 记录一次会话发送
func (m *Metrics) ObserveSend(transport string, kind types.MessageKind, d time.Duration, err error) {
	if m == nil {
		return
	}
	m.sendDuration.WithLabelValues(transport).Observe(d.Seconds())
	if err != nil {
		m.sendFailures.WithLabelValues(transport).Inc()
		return
	}
	m.messagesSent.WithLabelValues(transport, kindLabel(kind)).Inc()
}

// ObserveSessionOpen 记录一次会话打开
func (m *Metrics) ObserveSessionOpen(transport string, err error) {
	if m == nil {
		return
	}
	m.sessionsOpened.WithLabelValues(transport, result(err)).Inc()
}

// ObserveDelivered 记录一条投递进收件箱的消息
func (m *Metrics) ObserveDelivered(kind types.MessageKind, inboxLen int) {
	if m == nil {
		return
	}
	m.messagesReceived.WithLabelValues(kindLabel(kind)).Inc()
	m.inboxItems.Set(float64(inboxLen))
}

// ObserveStoreOp 记录一次存储操作
func (m *Metrics) ObserveStoreOp(backend, op string, err error) {
	if m == nil {
		return
	}
	m.storeOps.WithLabelValues(backend, op, result(err)).Inc()
}

func result(err error) string {
	if err != nil {
		return resultError
	}
	return resultOK
}

// kindLabel 把未知类型折叠为一个标签值，避免标签基数失控
func kindLabel(kind types.MessageKind) string {
	if kind.IsUnknown() {
		return "unknown"
	}
	return kind.String()
}
