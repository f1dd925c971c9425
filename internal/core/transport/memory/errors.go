package memory

import "errors"

// 内存传输错误定义
var (
	// ErrMailboxFull 对方信箱已满
	ErrMailboxFull = errors.New("memory: mailbox full")

	// ErrWrongHub 票据属于其它 Hub
	ErrWrongHub = errors.New("memory: ticket belongs to another hub")
)
