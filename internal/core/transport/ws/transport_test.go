package ws

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mee-pdn/go-mee/pkg/interfaces"
	"github.com/mee-pdn/go-mee/pkg/types"
)

// recorder 记录服务端收到的消息
type recorder struct {
	mu   sync.Mutex
	msgs []types.Message
}

func (r *recorder) handle(_ context.Context, msg types.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.msgs = append(r.msgs, msg)
	return nil
}

func (r *recorder) snapshot() []types.Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]types.Message(nil), r.msgs...)
}

// startServer 启动承载 alice 的 WebSocket 服务端，返回 alice 的票据
func startServer(t *testing.T, rec *recorder) (types.Ticket, *Server) {
	t.Helper()

	server := NewServer("alice", rec.handle)
	mux := http.NewServeMux()
	mux.Handle("/profiles/alice/ws", server)
	srv := httptest.NewServer(mux)
	t.Cleanup(func() {
		_ = server.Close()
		srv.Close()
	})

	tr, err := New(WithBaseURL(srv.URL))
	require.NoError(t, err)
	ticket, err := tr.Ticket(context.Background(), "alice")
	require.NoError(t, err)
	return ticket, server
}

func TestTransport_Ticket(t *testing.T) {
	tr, err := New(WithBaseURL("https://example.com/"))
	require.NoError(t, err)

	ticket, err := tr.Ticket(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, types.Ticket("wss://example.com/profiles/alice/ws"), ticket)

	_, err = New(WithBaseURL("ftp://example.com"))
	assert.Error(t, err)

	unbound, err := New()
	require.NoError(t, err)
	_, err = unbound.Ticket(context.Background(), "alice")
	assert.ErrorIs(t, err, interfaces.ErrNotBound)
}

func TestTransport_OpenSessionValidatesOnly(t *testing.T) {
	tr, err := New()
	require.NoError(t, err)

	// 无人监听的地址也能打开会话：OpenSession 不拨号
	s, err := tr.OpenSession(context.Background(), "bob", "ws://127.0.0.1:1/profiles/alice/ws")
	require.NoError(t, err)
	require.NoError(t, s.Close())

	for _, bad := range []types.Ticket{"", "http://host/profiles/alice/ws", "ws://host/profiles/alice/inbox", "ws:///x/ws"} {
		_, err := tr.OpenSession(context.Background(), "bob", bad)
		var te *interfaces.TransportError
		assert.True(t, errors.As(err, &te), "ticket=%q", bad)
	}
}

func TestSession_PingEcho(t *testing.T) {
	rec := &recorder{}
	ticket, _ := startServer(t, rec)

	tr, err := New()
	require.NoError(t, err)
	s, err := tr.OpenSession(context.Background(), "bob", ticket)
	require.NoError(t, err)
	defer s.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	require.NoError(t, s.Send(ctx, types.NewMessage("bob", types.KindPing, []byte("hello"))))

	reply, err := s.Recv(ctx)
	require.NoError(t, err)
	require.NotNil(t, reply)
	assert.Equal(t, types.ProfileName("alice"), reply.From)
	assert.Equal(t, types.KindPing, reply.Kind)
	assert.Equal(t, []byte("hello"), reply.Body)

	msgs := rec.snapshot()
	require.Len(t, msgs, 1)
	assert.Equal(t, types.ProfileName("bob"), msgs[0].From)
}

func TestSession_OrderedSends(t *testing.T) {
	rec := &recorder{}
	ticket, _ := startServer(t, rec)

	tr, err := New()
	require.NoError(t, err)
	s, err := tr.OpenSession(context.Background(), "bob", ticket)
	require.NoError(t, err)

	ctx := context.Background()
	for _, body := range []string{"1", "2", "3"} {
		require.NoError(t, s.Send(ctx, types.NewMessage("", types.KindText, []byte(body))))
	}
	require.NoError(t, s.Close())

	assert.Eventually(t, func() bool { return len(rec.snapshot()) == 3 }, 2*time.Second, 10*time.Millisecond)
	msgs := rec.snapshot()
	for i, want := range []string{"1", "2", "3"} {
		assert.Equal(t, want, string(msgs[i].Body))
		assert.Equal(t, types.ProfileName("bob"), msgs[i].From, "缺省 From 使用本地 Profile")
	}
}

func TestSession_RecvCancelled(t *testing.T) {
	ticket, _ := startServer(t, &recorder{})

	tr, err := New()
	require.NoError(t, err)
	s, err := tr.OpenSession(context.Background(), "bob", ticket)
	require.NoError(t, err)
	defer s.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	msg, err := s.Recv(ctx)
	assert.Nil(t, msg)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestSession_DialFailure(t *testing.T) {
	tr, err := New(WithDialTimeout(time.Second))
	require.NoError(t, err)
	s, err := tr.OpenSession(context.Background(), "bob", "ws://127.0.0.1:1/profiles/alice/ws")
	require.NoError(t, err)

	err = s.Send(context.Background(), types.NewMessage("bob", types.KindPing, nil))
	var te *interfaces.TransportError
	assert.True(t, errors.As(err, &te))
}

func TestSession_Closed(t *testing.T) {
	tr, err := New()
	require.NoError(t, err)
	s, err := tr.OpenSession(context.Background(), "bob", "ws://127.0.0.1:1/profiles/alice/ws")
	require.NoError(t, err)
	require.NoError(t, s.Close())

	assert.ErrorIs(t, s.Send(context.Background(), types.NewMessage("bob", types.KindPing, nil)), interfaces.ErrSessionClosed)

	msg, err := s.Recv(context.Background())
	assert.NoError(t, err)
	assert.Nil(t, msg)
}
