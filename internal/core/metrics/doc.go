// Package metrics 提供 Prometheus 监控指标
//
// 所有采集器注册在私有 Registry 上，不污染全局 DefaultRegisterer，
// 因此同一进程内可以创建多个节点（测试中常见）。
//
// # 指标
//
//	mee_messages_sent_total{transport,kind}      成功交给传输的消息数
//	mee_messages_received_total{kind}            投递进收件箱的消息数
//	mee_send_failures_total{transport}           发送失败次数
//	mee_sessions_opened_total{transport,result}  会话打开次数
//	mee_send_duration_seconds{transport}         发送耗时
//	mee_store_ops_total{backend,op,result}       存储操作次数
//	mee_inbox_items                              收件箱当前条目数
//
// # 使用示例
//
//	m := metrics.New()
//	m.ObserveSend("http", types.KindPing, time.Since(start), err)
//	http.Handle("/metrics", m.Handler())
//
// 所有 Observe 方法在 nil *Metrics 上是空操作，
// 未启用指标的组件可以直接持有 nil。
package metrics
