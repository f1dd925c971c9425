package mem

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mee-pdn/go-mee/internal/core/metrics"
	"github.com/mee-pdn/go-mee/pkg/types"
)

func TestStore_RoundTrip(t *testing.T) {
	s := New(nil)

	_, ok, err := s.Get("inbox", "items")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set("inbox", "items", "[]"))
	v, ok, err := s.Get("inbox", "items")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, types.Value("[]"), v)
	assert.Equal(t, 1, s.Len())
}

func TestStore_NamespaceIsolation(t *testing.T) {
	s := New(metrics.New())

	require.NoError(t, s.Set("a", "k", "v"))
	_, ok, _ := s.Get("b", "k")
	assert.False(t, ok)

	require.NoError(t, s.Set("a/b", "c", "first"))
	require.NoError(t, s.Set("a", "b/c", "second"))
	v, _, _ := s.Get("a/b", "c")
	assert.Equal(t, types.Value("first"), v)
}

func TestStore_Delete(t *testing.T) {
	s := New(nil)

	require.NoError(t, s.Set("ns", "k", "v"))
	require.NoError(t, s.Delete("ns", "k"))
	require.NoError(t, s.Delete("ns", "k"))

	_, ok, _ := s.Get("ns", "k")
	assert.False(t, ok)
}

func TestStore_LastWriterWins(t *testing.T) {
	s := New(nil)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.Set("ns", "k", "x")
			if v, ok, _ := s.Get("ns", "k"); !ok || v != "x" {
				t.Errorf("Get() = %q, %v", v, ok)
			}
		}()
	}
	wg.Wait()

	require.NoError(t, s.Set("ns", "k", "final"))
	v, _, _ := s.Get("ns", "k")
	assert.Equal(t, types.Value("final"), v)
}
