package storage

import (
	"errors"

	"github.com/mee-pdn/go-mee/internal/core/storage/engine"
)

// 存储模块错误定义
var (
	// ErrInvalidConfig 无效配置
	ErrInvalidConfig = errors.New("storage: invalid configuration")

	// ErrUnknownBackend 未知存储后端
	ErrUnknownBackend = errors.New("storage: unknown backend")

	// ErrNotFound 键不存在（重导出自 engine）
	ErrNotFound = engine.ErrNotFound

	// ErrClosed 引擎已关闭（重导出自 engine）
	ErrClosed = engine.ErrClosed
)

// IsNotFound 检查是否为 key not found 错误
var IsNotFound = engine.IsNotFound

// IsClosed 检查是否为 engine closed 错误
var IsClosed = engine.IsClosed
