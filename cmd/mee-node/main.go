// Package main 提供 mee-node 守护进程入口
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"

	mee "github.com/mee-pdn/go-mee"
	"github.com/mee-pdn/go-mee/pkg/lib/log"
)

var logger = log.Logger("cmd/mee-node")

// ═══════════════════════════════════════════════════════════════════════════
// 命令行参数
// ═══════════════════════════════════════════════════════════════════════════
//
//   命令行参数：运行时覆盖（「这次运行」想怎么跑）
//   配置文件：持久化配置（「这个节点」的固定配置）
//
// 每个参数都可以用 MEE_ 前缀的环境变量设置。
//
// ═══════════════════════════════════════════════════════════════════════════
var (
	profileFlag = &cli.StringFlag{
		Name:    "profile",
		Usage:   "节点的传输层名称（必需）",
		EnvVars: []string{"MEE_PROFILE"},
	}
	addrFlag = &cli.StringFlag{
		Name:    "addr",
		Usage:   "控制面监听地址 host:port",
		EnvVars: []string{"MEE_ADDR"},
	}
	baseURLFlag = &cli.StringFlag{
		Name:    "base-url",
		Usage:   "对外可达的基础 URL（默认由 --addr 推导）",
		EnvVars: []string{"MEE_BASE_URL"},
	}
	configFlag = &cli.StringFlag{
		Name:    "config",
		Usage:   "配置文件路径（.json 或 .toml）",
		EnvVars: []string{"MEE_CONFIG"},
	}
	dataDirFlag = &cli.StringFlag{
		Name:    "data-dir",
		Usage:   "数据目录，设置后使用 badger 持久化存储",
		EnvVars: []string{"MEE_DATA_DIR"},
	}
	transportFlag = &cli.StringFlag{
		Name:    "transport",
		Usage:   "传输类型 (http/ws/memory)",
		EnvVars: []string{"MEE_TRANSPORT"},
	}
	logLevelFlag = &cli.StringFlag{
		Name:    "log-level",
		Usage:   "日志级别 (debug/info/warn/error)",
		EnvVars: []string{"MEE_LOG_LEVEL"},
	}
	logFormatFlag = &cli.StringFlag{
		Name:    "log-format",
		Usage:   "日志格式 (text/json)",
		EnvVars: []string{"MEE_LOG_FORMAT"},
	}
)

func newApp() *cli.App {
	return &cli.App{
		Name:    "mee-node",
		Usage:   "运行一个 mee 消息节点",
		Version: mee.VersionInfo(),
		Flags: []cli.Flag{
			profileFlag,
			addrFlag,
			baseURLFlag,
			configFlag,
			dataDirFlag,
			transportFlag,
			logLevelFlag,
			logFormatFlag,
		},
		Action: run,
	}
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "错误: %v\n", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	cfg, err := buildConfig(overridesFromContext(c))
	if err != nil {
		return fmt.Errorf("配置错误: %w", err)
	}

	level, err := log.ParseLevel(cfg.Log.Level)
	if err != nil {
		return err
	}
	log.Configure(os.Stderr, level, cfg.Log.Format)

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("启动 mee 节点", "version", mee.Version, "commit", mee.GitCommit, "buildDate", mee.BuildDate)

	node, err := mee.Start(ctx, mee.WithConfig(cfg))
	if err != nil {
		return fmt.Errorf("启动失败: %w", err)
	}

	printNodeInfo(ctx, node)
	return serve(ctx, node)
}

// runningNode serve 需要的节点能力
type runningNode interface {
	Err() <-chan error
	Close() error
}

// serve 等待退出信号或控制面异常，随后关闭节点
//
// 控制面监听失败时返回该错误，使进程以非零状态退出。
func serve(ctx context.Context, node runningNode) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		select {
		case err := <-node.Err():
			logger.ErrorContext(gctx, "控制面异常退出", "error", err)
			return err
		case <-gctx.Done():
			return nil
		}
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("正在关闭节点")
		return node.Close()
	})

	return g.Wait()
}

// printNodeInfo 打印节点信息
func printNodeInfo(ctx context.Context, node *mee.Node) {
	fmt.Printf("📦 %s\n", mee.VersionInfo())
	fmt.Printf("   profile: %s\n", node.Profile())
	fmt.Printf("   did:     %s\n", node.DID())
	if ticket, err := node.Ticket(ctx); err == nil {
		fmt.Printf("   ticket:  %s\n", ticket)
	} else {
		logger.WarnContext(ctx, "获取票据失败", "err", err)
	}
	if addr := node.Addr(); addr != "" {
		fmt.Printf("   api:     http://%s\n", addr)
	}
	fmt.Println("节点已启动，按 Ctrl+C 退出")
}
