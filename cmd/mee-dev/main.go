// Package main 提供 mee-dev 开发者命令行工具
//
// 通过节点的控制面 HTTP 接口操作一个运行中的节点：
//
//	mee-dev http ticket      --url http://127.0.0.1:3000
//	mee-dev http send-ping   --url ... --to-ticket <ticket> [--body text]
//	mee-dev http inbox       --url ...
//	mee-dev http connect     --url ... --to-ticket <ticket>
//	mee-dev http connections --url ...
//	mee-dev http send        --url ... --conn <id> --kind text [--body text]
//	mee-dev http close       --url ... --conn <id>
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"

	mee "github.com/mee-pdn/go-mee"
)

var (
	urlFlag = &cli.StringFlag{
		Name:     "url",
		Usage:    "节点控制面基础 URL",
		Required: true,
		EnvVars:  []string{"MEE_URL"},
	}
	toTicketFlag = &cli.StringFlag{
		Name:     "to-ticket",
		Usage:    "目标票据",
		Required: true,
	}
	bodyFlag = &cli.StringFlag{
		Name:  "body",
		Usage: "消息正文（文本，发送前 base64 编码）",
	}
	connFlag = &cli.StringFlag{
		Name:     "conn",
		Usage:    "连接 ID",
		Required: true,
	}
	kindFlag = &cli.StringFlag{
		Name:     "kind",
		Usage:    "消息类型 (ping/text/caps/...)",
		Required: true,
	}
)

func newApp(out io.Writer) *cli.App {
	return &cli.App{
		Name:      "mee-dev",
		Usage:     "mee 开发者命令行",
		Version:   mee.VersionInfo(),
		Writer:    out,
		ErrWriter: os.Stderr,
		Commands: []*cli.Command{
			{
				Name:  "http",
				Usage: "HTTP 控制面工具",
				Subcommands: []*cli.Command{
					{
						Name:  "ticket",
						Usage: "获取节点票据",
						Flags: []cli.Flag{urlFlag},
						Action: func(c *cli.Context) error {
							ticket, err := newClient(c.String(urlFlag.Name)).Ticket(c.Context)
							if err != nil {
								return err
							}
							fmt.Fprintln(c.App.Writer, ticket)
							return nil
						},
					},
					{
						Name:  "send-ping",
						Usage: "请求节点发送 ping",
						Flags: []cli.Flag{urlFlag, toTicketFlag, bodyFlag},
						Action: func(c *cli.Context) error {
							cl := newClient(c.String(urlFlag.Name))
							if err := cl.SendPing(c.Context, c.String(toTicketFlag.Name), optionalBody(c)); err != nil {
								return err
							}
							fmt.Fprintln(c.App.Writer, "sent")
							return nil
						},
					},
					{
						Name:  "inbox",
						Usage: "显示收件箱",
						Flags: []cli.Flag{urlFlag},
						Action: func(c *cli.Context) error {
							items, err := newClient(c.String(urlFlag.Name)).Inbox(c.Context)
							if err != nil {
								return err
							}
							fmt.Fprintln(c.App.Writer, items)
							return nil
						},
					},
					{
						Name:  "connect",
						Usage: "打开到票据的连接",
						Flags: []cli.Flag{urlFlag, toTicketFlag},
						Action: func(c *cli.Context) error {
							id, err := newClient(c.String(urlFlag.Name)).Connect(c.Context, c.String(toTicketFlag.Name))
							if err != nil {
								return err
							}
							fmt.Fprintln(c.App.Writer, id)
							return nil
						},
					},
					{
						Name:  "connections",
						Usage: "列出连接",
						Flags: []cli.Flag{urlFlag},
						Action: func(c *cli.Context) error {
							list, err := newClient(c.String(urlFlag.Name)).Connections(c.Context)
							if err != nil {
								return err
							}
							fmt.Fprintln(c.App.Writer, list)
							return nil
						},
					},
					{
						Name:  "send",
						Usage: "通过连接发送消息",
						Flags: []cli.Flag{urlFlag, connFlag, kindFlag, bodyFlag},
						Action: func(c *cli.Context) error {
							cl := newClient(c.String(urlFlag.Name))
							err := cl.Send(c.Context, c.String(connFlag.Name), c.String(kindFlag.Name), optionalBody(c))
							if err != nil {
								return err
							}
							fmt.Fprintln(c.App.Writer, "sent")
							return nil
						},
					},
					{
						Name:  "close",
						Usage: "关闭连接",
						Flags: []cli.Flag{urlFlag, connFlag},
						Action: func(c *cli.Context) error {
							if err := newClient(c.String(urlFlag.Name)).Close(c.Context, c.String(connFlag.Name)); err != nil {
								return err
							}
							fmt.Fprintln(c.App.Writer, "ok")
							return nil
						},
					},
				},
			},
		},
	}
}

// optionalBody 仅在显式给出 --body 时返回正文
func optionalBody(c *cli.Context) *string {
	if !c.IsSet(bodyFlag.Name) {
		return nil
	}
	body := c.String(bodyFlag.Name)
	return &body
}

func main() {
	if err := newApp(os.Stdout).Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "错误: %v\n", err)
		os.Exit(1)
	}
}
