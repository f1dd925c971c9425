// Package mee 提供去中心化消息节点
//
// 节点由三个可替换的子系统组成：
//
//   - Transport: 签发票据、打开会话、交换消息（http / ws / memory）
//   - DIDManager: 创建与解析 DID（did:key / did:web）
//   - KVStore: 命名空间隔离的本地存储（memory / badger）
//
// 收件箱、出站连接和控制面 HTTP 服务建立在这三者之上。
//
// # 快速开始
//
//	import "github.com/mee-pdn/go-mee"
//
//	node, err := mee.New(ctx,
//	    mee.WithProfile("alice"),
//	    mee.WithBaseURL("http://127.0.0.1:3000"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := node.Start(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	defer node.Close()
//
//	ticket, _ := node.Ticket(ctx)
//	fmt.Println("把票据交给对方:", ticket)
//
// # 进程内多节点
//
// memory 传输通过共享的 Hub 在同一进程内的节点之间转发消息：
//
//	hub := mee.NewMemoryHub("lab")
//	alice, _ := mee.New(ctx, mee.WithProfile("alice"), mee.WithMemoryHub(hub))
//	bob, _ := mee.New(ctx, mee.WithProfile("bob"), mee.WithMemoryHub(hub))
//
// # 文件组织
//
//   - mee.go: 版本信息
//   - node.go: Node 门面与生命周期
//   - options.go: 用户选项
//   - fx.go: Fx 模块组装
//   - errors.go: 公共错误
package mee
