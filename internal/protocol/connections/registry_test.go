package connections

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mee-pdn/go-mee/internal/mocks"
	"github.com/mee-pdn/go-mee/pkg/interfaces"
	"github.com/mee-pdn/go-mee/pkg/types"
)

func TestNew_NilTransport(t *testing.T) {
	_, err := New(nil, "alice")
	assert.ErrorIs(t, err, ErrNilTransport)
}

func TestRegistry_Lifecycle(t *testing.T) {
	tr := mocks.NewMockTransport()
	r, err := New(tr, "alice")
	require.NoError(t, err)
	ctx := context.Background()

	id, err := r.Open(ctx, "mock://bob")
	require.NoError(t, err)
	assert.Len(t, id, 36)
	require.Len(t, tr.OpenSessionCalls, 1)
	assert.Equal(t, types.ProfileName("alice"), tr.OpenSessionCalls[0].Local)

	require.NoError(t, r.Send(ctx, id, types.NewMessage("", types.KindText, []byte("one"))))
	require.NoError(t, r.Send(ctx, id, types.NewMessage("", types.KindText, []byte("two"))))

	list := r.List()
	require.Len(t, list, 1)
	assert.Equal(t, id, list[0].ID)
	assert.Equal(t, types.Ticket("mock://bob"), list[0].Ticket)
	assert.Equal(t, 2, list[0].Sent)

	sent := tr.Sessions[0].SentMessages()
	require.Len(t, sent, 2)
	assert.Equal(t, "one", string(sent[0].Body))
	assert.Equal(t, "two", string(sent[1].Body))

	require.NoError(t, r.Close(id))
	assert.True(t, tr.Sessions[0].IsClosed())
	assert.Empty(t, r.List())

	t.Log("✅ 连接打开、发送、关闭")
}

func TestRegistry_UnknownID(t *testing.T) {
	r, err := New(mocks.NewMockTransport(), "alice")
	require.NoError(t, err)

	assert.ErrorIs(t, r.Send(context.Background(), "nope", types.NewMessage("", types.KindPing, nil)), ErrNotFound)
	assert.ErrorIs(t, r.Close("nope"), ErrNotFound)
}

func TestRegistry_OpenError(t *testing.T) {
	tr := mocks.NewMockTransport()
	tr.OpenSessionFunc = func(context.Context, types.ProfileName, types.Ticket) (interfaces.Session, error) {
		return nil, interfaces.NewTransportError("open", interfaces.ErrInvalidTicket)
	}
	r, err := New(tr, "alice")
	require.NoError(t, err)

	_, err = r.Open(context.Background(), "garbage")
	assert.ErrorIs(t, err, interfaces.ErrInvalidTicket)
	assert.Empty(t, r.List())
}

func TestRegistry_SendErrorKeepsCount(t *testing.T) {
	tr := mocks.NewMockTransport()
	r, err := New(tr, "alice")
	require.NoError(t, err)

	id, err := r.Open(context.Background(), "mock://bob")
	require.NoError(t, err)
	tr.Sessions[0].SendFunc = func(context.Context, types.Message) error { return errors.New("refused") }

	assert.Error(t, r.Send(context.Background(), id, types.NewMessage("", types.KindPing, nil)))
	assert.Equal(t, 0, r.List()[0].Sent)
}

func TestRegistry_CloseAll(t *testing.T) {
	tr := mocks.NewMockTransport()
	r, err := New(tr, "alice")
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err := r.Open(context.Background(), "mock://bob")
		require.NoError(t, err)
	}
	require.NoError(t, r.CloseAll())

	assert.Empty(t, r.List())
	for _, s := range tr.Sessions {
		assert.True(t, s.IsClosed())
	}
}
