// Package badger 实现 BadgerDB 存储引擎
//
// 节点的持久化状态（收件箱、本地 DID 等）写入一个 BadgerDB 目录，
// 后台按 GCInterval 回收值日志空间。
//
// # 使用示例
//
//	eng, err := badger.New(engine.DefaultConfig("./data/mee.db"))
//	if err != nil {
//	    return err
//	}
//	defer eng.Close()
//
//	if err := eng.Start(); err != nil {
//	    return err
//	}
package badger
