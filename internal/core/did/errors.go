package did

import "errors"

// 注册表错误定义
var (
	// ErrDuplicateMethod 同一方法重复注册
	ErrDuplicateMethod = errors.New("did: method already registered")

	// ErrNilManager 注册了 nil 管理器
	ErrNilManager = errors.New("did: nil manager")
)
