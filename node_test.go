package mee

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mee-pdn/go-mee/config"
	"github.com/mee-pdn/go-mee/pkg/interfaces"
	"github.com/mee-pdn/go-mee/pkg/types"
)

// newHTTPNode 创建一个以 httptest 服务器为基础 URL 的节点
func newHTTPNode(t *testing.T, profile string, opts ...Option) (*Node, *httptest.Server) {
	t.Helper()

	hs := httptest.NewServer(http.NotFoundHandler())
	t.Cleanup(hs.Close)

	all := append([]Option{
		WithProfile(profile),
		WithBaseURL(hs.URL),
		WithoutListener(),
	}, opts...)
	node, err := New(context.Background(), all...)
	require.NoError(t, err)
	require.NoError(t, node.Start(context.Background()))
	t.Cleanup(func() { _ = node.Close() })

	hs.Config.Handler = node.Handler()
	return node, hs
}

func TestNew_Validation(t *testing.T) {
	ctx := context.Background()

	_, err := New(ctx, WithBaseURL("http://127.0.0.1:3000"))
	assert.Error(t, err, "缺少 profile")

	_, err = New(ctx, WithProfile("alice"))
	assert.Error(t, err, "http 传输缺少 base_url")

	_, err = New(ctx, WithConfig(nil))
	assert.ErrorIs(t, err, ErrNilConfig)

	_, err = New(ctx, WithMemoryHub(nil))
	assert.ErrorIs(t, err, ErrNilHub)

	_, err = New(ctx, WithProfile("a/b"), WithMemoryHub(NewMemoryHub("lab")))
	assert.Error(t, err, "profile 不能含 /")

	t.Log("✅ 配置校验")
}

func TestNode_Accessors(t *testing.T) {
	node, err := New(context.Background(),
		WithProfile("alice"),
		WithUserID("user-1"),
		WithMemoryHub(NewMemoryHub("lab")),
		WithoutListener(),
	)
	require.NoError(t, err)
	defer node.Close()

	assert.Equal(t, types.ProfileName("alice"), node.Profile())
	uid, ok := node.UserID()
	assert.True(t, ok)
	assert.Equal(t, types.UserID("user-1"), uid)

	assert.True(t, strings.HasPrefix(node.DID().String(), "did:key:z"))
	assert.Equal(t, types.NodeID(node.DID()), node.NodeID())
	assert.NotNil(t, node.Transport())
	assert.NotNil(t, node.DIDManager())
	assert.NotNil(t, node.Store())
	assert.NotNil(t, node.Connections())
	assert.Equal(t, StateIdle, node.State())

	ticket, err := node.Ticket(context.Background())
	require.NoError(t, err)
	assert.Equal(t, types.Ticket("mem://lab/alice"), ticket)

	doc, err := node.DIDManager().Resolve(context.Background(), node.DID())
	require.NoError(t, err)
	assert.Len(t, doc.VerificationMethodIDs, 1)
}

func TestNode_DIDManagerCreatesOwnMethodOnly(t *testing.T) {
	node, err := New(context.Background(),
		WithProfile("alice"),
		WithMemoryHub(NewMemoryHub("lab")),
		WithoutListener(),
	)
	require.NoError(t, err)
	defer node.Close()

	manager := node.DIDManager()
	require.Equal(t, types.MethodKey, manager.Method())

	did, err := manager.Create(context.Background(), interfaces.WebCreateOptions{Domain: "example.com"})
	assert.True(t, interfaces.IsDIDError(err, interfaces.DIDErrMethod))
	assert.Empty(t, did)

	did, err = manager.Create(context.Background(), interfaces.KeyCreateOptions{})
	require.NoError(t, err)
	assert.Equal(t, manager.Method(), did.Method())

	_, err = manager.Resolve(context.Background(), "did:foo:bar")
	assert.True(t, interfaces.IsDIDError(err, interfaces.DIDErrResolve))

	t.Log("✅ 节点身份管理器只签发自身方法")
}

func TestNode_Lifecycle(t *testing.T) {
	node, err := New(context.Background(),
		WithProfile("alice"),
		WithMemoryHub(NewMemoryHub("lab")),
		WithoutListener(),
	)
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, node.Start(ctx))
	assert.Equal(t, StateRunning, node.State())
	assert.ErrorIs(t, node.Start(ctx), ErrAlreadyStarted)

	require.NoError(t, node.Close())
	assert.Equal(t, StateClosed, node.State())
	require.NoError(t, node.Close(), "重复关闭应幂等")
	assert.ErrorIs(t, node.Start(ctx), ErrNodeClosed)
}

func TestNode_MemoryHubExchange(t *testing.T) {
	ctx := context.Background()
	hub := NewMemoryHub("lab")

	alice, err := Start(ctx, WithProfile("alice"), WithMemoryHub(hub), WithoutListener())
	require.NoError(t, err)
	defer alice.Close()
	bob, err := Start(ctx, WithProfile("bob"), WithMemoryHub(hub), WithoutListener())
	require.NoError(t, err)
	defer bob.Close()

	aliceTicket, err := alice.Ticket(ctx)
	require.NoError(t, err)
	require.NoError(t, bob.Send(ctx, aliceTicket, types.NewMessage("", types.KindText, []byte("hello"))))

	items, err := alice.Inbox(ctx)
	require.NoError(t, err)
	assert.Equal(t, []types.InboxItem{{From: "bob", Kind: "text", BodyB64: "aGVsbG8="}}, items)

	items, err = bob.Inbox(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)

	t.Log("✅ 进程内节点互发消息")
}

func TestNode_HTTPEndToEnd(t *testing.T) {
	alice, aliceHTTP := newHTTPNode(t, "alice")
	_, bobHTTP := newHTTPNode(t, "bob")

	ticket, err := alice.Ticket(context.Background())
	require.NoError(t, err)
	assert.Equal(t, types.Ticket(aliceHTTP.URL+"/profiles/alice/inbox"), ticket)

	body := strings.NewReader(`{"to_ticket":"` + ticket.String() + `"}`)
	resp, err := http.Post(bobHTTP.URL+"/demo/send/ping", "application/json", body)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusAccepted, resp.StatusCode)

	resp, err = http.Get(aliceHTTP.URL + "/demo/inbox")
	require.NoError(t, err)
	data, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	assert.JSONEq(t, `[{"from":"bob","kind":"ping","body_b64":""}]`, string(data))

	raw, ok, err := alice.Store().Get(types.NamespaceInbox, types.KeyInboxItems)
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `[{"from":"bob","kind":"ping","body_b64":""}]`, raw.String())
}

func TestNode_PersistentIdentity(t *testing.T) {
	dir := t.TempDir()
	opts := []Option{
		WithProfile("alice"),
		WithMemoryHub(NewMemoryHub("lab")),
		WithDataDir(dir),
		WithoutListener(),
	}

	first, err := Start(context.Background(), opts...)
	require.NoError(t, err)
	did := first.DID()
	require.NoError(t, first.Send(context.Background(), "mem://lab/alice", types.NewMessage("alice", types.KindPing, nil)))
	require.NoError(t, first.Close())

	second, err := New(context.Background(), opts...)
	require.NoError(t, err)
	defer second.Close()

	assert.Equal(t, did, second.DID(), "随机生成的 did:key 应在重启后复用")
	items, err := second.Inbox(context.Background())
	require.NoError(t, err)
	assert.Len(t, items, 1, "收件箱应持久化")
}

func TestNode_ListenAddr(t *testing.T) {
	node, err := Start(context.Background(),
		WithProfile("alice"),
		WithBaseURL("http://127.0.0.1:1"),
		WithListenAddr("127.0.0.1:0"),
	)
	require.NoError(t, err)
	defer node.Close()

	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Get("http://" + node.Addr() + "/demo/identity")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var ident struct {
		DID    string `json:"did"`
		Method string `json:"method"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&ident))
	assert.Equal(t, node.DID().String(), ident.DID)
	assert.Equal(t, "key", ident.Method)
}

func TestNode_FromConfig(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Node = cfg.Node.WithProfile("carol")
	cfg.Transport = cfg.Transport.WithKind(config.TransportMemory)

	node, err := New(context.Background(), WithConfig(cfg), WithoutListener(), WithMetrics(false))
	require.NoError(t, err)
	defer node.Close()
	assert.Equal(t, types.ProfileName("carol"), node.Profile())

	other, err := New(context.Background(), WithConfig(cfg), WithProfile("dave"), WithoutListener())
	require.NoError(t, err)
	defer other.Close()
	assert.Equal(t, types.ProfileName("dave"), other.Profile())
	assert.Equal(t, "carol", cfg.Node.Profile, "原配置不应被选项修改")
	assert.Equal(t, "127.0.0.1:3000", cfg.API.ListenAddr)
}

func TestVersionInfo(t *testing.T) {
	assert.True(t, strings.HasPrefix(VersionInfo(), "mee "+Version))
}
