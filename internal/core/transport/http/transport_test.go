package http

import (
	"context"
	"encoding/json"
	"errors"
	nethttp "net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mee-pdn/go-mee/pkg/interfaces"
	"github.com/mee-pdn/go-mee/pkg/types"
)

func TestTransport_Ticket(t *testing.T) {
	tr := New(WithBaseURL("http://host/"))

	ticket, err := tr.Ticket(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, types.Ticket("http://host/profiles/alice/inbox"), ticket)

	again, err := tr.Ticket(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, ticket, again, "票据是确定的")

	_, err = tr.Ticket(context.Background(), "")
	var te *interfaces.TransportError
	assert.True(t, errors.As(err, &te))
}

func TestTransport_TicketNotBound(t *testing.T) {
	_, err := New().Ticket(context.Background(), "alice")
	assert.ErrorIs(t, err, interfaces.ErrNotBound)
}

func TestTransport_OpenSessionValidates(t *testing.T) {
	tr := New()

	bad := []types.Ticket{
		"",
		"not a url",
		"ftp://host/profiles/alice/inbox",
		"http:///profiles/alice/inbox",
		"http://host/profiles/alice/outbox",
		"mem://hub/alice",
	}
	for _, ticket := range bad {
		s, err := tr.OpenSession(context.Background(), "bob", ticket)
		assert.Nil(t, s, "ticket=%q", ticket)
		var te *interfaces.TransportError
		assert.True(t, errors.As(err, &te), "ticket=%q err=%v", ticket, err)
	}

	s, err := tr.OpenSession(context.Background(), "bob", "https://host/profiles/alice/inbox")
	require.NoError(t, err)
	assert.NoError(t, s.Close())
}

func TestSession_Send(t *testing.T) {
	var (
		mu       sync.Mutex
		received []types.InboxItem
	)
	srv := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		assert.Equal(t, nethttp.MethodPost, r.Method)
		assert.Equal(t, "/profiles/alice/inbox", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var item types.InboxItem
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&item))
		mu.Lock()
		received = append(received, item)
		mu.Unlock()
		w.WriteHeader(nethttp.StatusAccepted)
	}))
	defer srv.Close()

	alice := New(WithBaseURL(srv.URL))
	ticket, err := alice.Ticket(context.Background(), "alice")
	require.NoError(t, err)

	s, err := New().OpenSession(context.Background(), "bob", ticket)
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Send(context.Background(), types.NewMessage("bob", types.KindPing, nil)))
	require.NoError(t, s.Send(context.Background(), types.Message{Kind: types.UnknownKind("x-future"), Body: []byte("hi")}))

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, received, 2)
	assert.Equal(t, types.InboxItem{From: "bob", Kind: "ping", BodyB64: ""}, received[0])
	assert.Equal(t, types.InboxItem{From: "bob", Kind: "x-future", BodyB64: "aGk="}, received[1],
		"未知类型原样保留，缺省 From 使用本地 Profile")
}

func TestSession_SendErrorStatus(t *testing.T) {
	srv := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, _ *nethttp.Request) {
		w.WriteHeader(nethttp.StatusNotFound)
	}))
	defer srv.Close()

	s, err := New().OpenSession(context.Background(), "bob", types.Ticket(srv.URL+"/profiles/carol/inbox"))
	require.NoError(t, err)

	err = s.Send(context.Background(), types.NewMessage("bob", types.KindText, []byte("x")))
	var te *interfaces.TransportError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, "send", te.Op)
}

func TestSession_RecvAndClose(t *testing.T) {
	s, err := New().OpenSession(context.Background(), "bob", "http://host/profiles/alice/inbox")
	require.NoError(t, err)

	msg, err := s.Recv(context.Background())
	assert.NoError(t, err)
	assert.Nil(t, msg, "推送传输没有入站路径")

	require.NoError(t, s.Close())
	require.NoError(t, s.Close())
	assert.ErrorIs(t, s.Send(context.Background(), types.NewMessage("bob", types.KindPing, nil)), interfaces.ErrSessionClosed)
}
