package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mee "github.com/mee-pdn/go-mee"
)

// startNode 启动一个挂在 httptest 服务器上的节点
func startNode(t *testing.T, profile string) string {
	t.Helper()

	hs := httptest.NewServer(http.NotFoundHandler())
	t.Cleanup(hs.Close)

	node, err := mee.Start(context.Background(),
		mee.WithProfile(profile),
		mee.WithBaseURL(hs.URL),
		mee.WithoutListener(),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = node.Close() })

	hs.Config.Handler = node.Handler()
	return hs.URL
}

// runCLI 执行一条命令并返回标准输出
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	err := newApp(&out).Run(append([]string{"mee-dev"}, args...))
	return strings.TrimSpace(out.String()), err
}

func TestCLI_PingFlow(t *testing.T) {
	alice := startNode(t, "alice")
	bob := startNode(t, "bob")

	ticket, err := runCLI(t, "http", "ticket", "--url", alice)
	require.NoError(t, err)
	assert.Equal(t, alice+"/profiles/alice/inbox", ticket)

	out, err := runCLI(t, "http", "send-ping", "--url", bob, "--to-ticket", ticket, "--body", "hi")
	require.NoError(t, err)
	assert.Equal(t, "sent", out)

	out, err = runCLI(t, "http", "inbox", "--url", alice)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"from":"bob","kind":"ping","body_b64":"aGk="}]`, out)

	t.Log("✅ ticket / send-ping / inbox")
}

func TestCLI_ConnectionFlow(t *testing.T) {
	alice := startNode(t, "alice")
	bob := startNode(t, "bob")

	ticket, err := runCLI(t, "http", "ticket", "--url", alice)
	require.NoError(t, err)

	id, err := runCLI(t, "http", "connect", "--url", bob, "--to-ticket", ticket)
	require.NoError(t, err)
	require.NotEmpty(t, id)

	list, err := runCLI(t, "http", "connections", "--url", bob)
	require.NoError(t, err)
	assert.Contains(t, list, id)

	out, err := runCLI(t, "http", "send", "--url", bob, "--conn", id, "--kind", "text", "--body", "hello")
	require.NoError(t, err)
	assert.Equal(t, "sent", out)

	out, err = runCLI(t, "http", "close", "--url", bob, "--conn", id)
	require.NoError(t, err)
	assert.Equal(t, "ok", out)

	_, err = runCLI(t, "http", "close", "--url", bob, "--conn", id)
	assert.Error(t, err, "重复关闭应返回 404")

	items, err := runCLI(t, "http", "inbox", "--url", alice)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"from":"bob","kind":"text","body_b64":"aGVsbG8="}]`, items)

	t.Log("✅ connect / connections / send / close")
}

func TestClient_ErrorStatus(t *testing.T) {
	hs := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "send error", http.StatusBadGateway)
	}))
	defer hs.Close()

	err := newClient(hs.URL+"/").SendPing(context.Background(), "http://nowhere/profiles/x/inbox", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
	assert.Contains(t, err.Error(), "send error")
}

func TestClient_OmitsBodyWhenUnset(t *testing.T) {
	var got string
	hs := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		buf := new(bytes.Buffer)
		_, _ = buf.ReadFrom(r.Body)
		got = buf.String()
		w.WriteHeader(http.StatusAccepted)
	}))
	defer hs.Close()

	require.NoError(t, newClient(hs.URL).SendPing(context.Background(), "t", nil))
	assert.JSONEq(t, `{"to_ticket":"t"}`, got)

	empty := ""
	require.NoError(t, newClient(hs.URL).SendPing(context.Background(), "t", &empty))
	assert.JSONEq(t, `{"to_ticket":"t","body_b64":""}`, got)
}
