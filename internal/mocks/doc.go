// Package mocks 提供测试用的模拟实现
//
// 每个模拟对象以函数字段覆盖行为，未设置时返回合理的默认值，
// 并记录调用参数供断言：
//
//	tr := mocks.NewMockTransport()
//	tr.OpenSessionFunc = func(ctx context.Context, local types.ProfileName, remote types.Ticket) (interfaces.Session, error) {
//	    return nil, interfaces.NewTransportError("open", interfaces.ErrInvalidTicket)
//	}
package mocks
