package inbox

import "errors"

// 错误定义
var (
	// ErrNilStore 存储为 nil
	ErrNilStore = errors.New("inbox: store is nil")

	// ErrRateLimited 发送方超过投递速率
	ErrRateLimited = errors.New("inbox: sender rate limited")

	// ErrCorrupt 收件箱内容无法解析
	ErrCorrupt = errors.New("inbox: stored items are corrupt")
)
