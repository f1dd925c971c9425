package main

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// defaultTimeout 单次请求超时
const defaultTimeout = 10 * time.Second

// client 控制面 HTTP 客户端
type client struct {
	base string
	hc   *http.Client
}

func newClient(baseURL string) *client {
	return &client{
		base: strings.TrimRight(baseURL, "/"),
		hc:   &http.Client{Timeout: defaultTimeout},
	}
}

// ════════════════════════════════════════════════════════════════════════════
//                              控制面操作
// ════════════════════════════════════════════════════════════════════════════

// Ticket 获取节点票据
func (c *client) Ticket(ctx context.Context) (string, error) {
	var resp struct {
		Ticket string `json:"ticket"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/demo/ticket", nil, &resp); err != nil {
		return "", err
	}
	return resp.Ticket, nil
}

// SendPing 请求节点向 toTicket 发送 ping
//
// body 为 nil 时不携带 body_b64。
func (c *client) SendPing(ctx context.Context, toTicket string, body *string) error {
	payload := map[string]string{"to_ticket": toTicket}
	if body != nil {
		payload["body_b64"] = encodeBody(*body)
	}
	return c.doJSON(ctx, http.MethodPost, "/demo/send/ping", payload, nil)
}

// Inbox 返回收件箱原始 JSON
func (c *client) Inbox(ctx context.Context) (string, error) {
	return c.doRaw(ctx, http.MethodGet, "/demo/inbox")
}

// Connect 打开到 toTicket 的连接，返回连接 ID
func (c *client) Connect(ctx context.Context, toTicket string) (string, error) {
	var resp struct {
		ConnectionID string `json:"connection_id"`
	}
	payload := map[string]string{"to_ticket": toTicket}
	if err := c.doJSON(ctx, http.MethodPost, "/demo/connections", payload, &resp); err != nil {
		return "", err
	}
	return resp.ConnectionID, nil
}

// Connections 返回连接列表原始 JSON
func (c *client) Connections(ctx context.Context) (string, error) {
	return c.doRaw(ctx, http.MethodGet, "/demo/connections")
}

// Send 通过连接发送消息
func (c *client) Send(ctx context.Context, conn, kind string, body *string) error {
	payload := map[string]string{"kind": kind}
	if body != nil {
		payload["body_b64"] = encodeBody(*body)
	}
	return c.doJSON(ctx, http.MethodPost, "/demo/connections/"+conn+"/send", payload, nil)
}

// Close 关闭连接
func (c *client) Close(ctx context.Context, conn string) error {
	return c.doJSON(ctx, http.MethodDelete, "/demo/connections/"+conn, nil, nil)
}

// ════════════════════════════════════════════════════════════════════════════
//                              请求辅助
// ════════════════════════════════════════════════════════════════════════════

func encodeBody(s string) string {
	return base64.StdEncoding.EncodeToString([]byte(s))
}

// doJSON 发送可选 JSON 请求体，非 2xx 返回错误，out 非 nil 时解码响应
func (c *client) doJSON(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *client) doRaw(ctx context.Context, method, path string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, nil)
	if err != nil {
		return "", err
	}
	resp, err := c.hc.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return "", err
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	return fmt.Errorf("%s %s: %s: %s", resp.Request.Method, resp.Request.URL.Path,
		resp.Status, strings.TrimSpace(string(msg)))
}
