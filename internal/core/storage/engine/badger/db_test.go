package badger

import (
	"bytes"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mee-pdn/go-mee/internal/core/storage/engine"
)

// testEngine 创建测试用引擎
// 使用 t.TempDir() 创建临时目录，确保测试与生产一致
func testEngine(t *testing.T) *Engine {
	t.Helper()

	cfg := engine.DefaultConfig(filepath.Join(t.TempDir(), "test.db"))
	cfg.GCInterval = 0

	eng, err := New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, eng.Close())
	})
	require.NoError(t, eng.Start())
	return eng
}

func TestEngine_PutGet(t *testing.T) {
	eng := testEngine(t)

	require.NoError(t, eng.Put([]byte("k"), []byte("v")))

	got, err := eng.Get([]byte("k"))
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), got)

	// 返回副本，修改不影响存储
	got[0] = 'x'
	again, err := eng.Get([]byte("k"))
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), again)
}

func TestEngine_NotFound(t *testing.T) {
	eng := testEngine(t)

	_, err := eng.Get([]byte("missing"))
	assert.True(t, engine.IsNotFound(err))

	ok, err := eng.Has([]byte("missing"))
	require.NoError(t, err)
	assert.False(t, ok)

	assert.Equal(t, int64(1), eng.Stats().NumMisses)
}

func TestEngine_Delete(t *testing.T) {
	eng := testEngine(t)

	require.NoError(t, eng.Put([]byte("k"), []byte("v")))
	require.NoError(t, eng.Delete([]byte("k")))

	_, err := eng.Get([]byte("k"))
	assert.True(t, engine.IsNotFound(err))

	// 删除不存在的键是幂等的
	assert.NoError(t, eng.Delete([]byte("k")))
}

func TestEngine_EmptyKey(t *testing.T) {
	eng := testEngine(t)

	_, err := eng.Get(nil)
	assert.ErrorIs(t, err, engine.ErrEmptyKey)
	assert.ErrorIs(t, eng.Put(nil, []byte("v")), engine.ErrEmptyKey)
}

func TestEngine_Closed(t *testing.T) {
	cfg := engine.DefaultConfig(filepath.Join(t.TempDir(), "closed.db"))
	eng, err := New(cfg)
	require.NoError(t, err)

	require.NoError(t, eng.Close())
	assert.NoError(t, eng.Close(), "多次 Close 应安全")

	_, err = eng.Get([]byte("k"))
	assert.True(t, engine.IsClosed(err))
	assert.True(t, engine.IsClosed(eng.Put([]byte("k"), nil)))
	assert.True(t, engine.IsClosed(eng.Start()))
}

func TestEngine_Persistence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "persist.db")

	eng, err := New(engine.DefaultConfig(path))
	require.NoError(t, err)
	require.NoError(t, eng.Put([]byte("k"), []byte("durable")))
	require.NoError(t, eng.Close())

	reopened, err := New(engine.DefaultConfig(path))
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.Get([]byte("k"))
	require.NoError(t, err)
	assert.Equal(t, []byte("durable"), got)
}

func TestEngine_InvalidConfig(t *testing.T) {
	_, err := New(nil)
	assert.ErrorIs(t, err, engine.ErrInvalidConfig)

	_, err = New(&engine.Config{})
	assert.ErrorIs(t, err, engine.ErrInvalidConfig)
}

func TestEngine_ConcurrentWrites(t *testing.T) {
	eng := testEngine(t)

	values := [][]byte{
		bytes.Repeat([]byte("a"), 4096),
		bytes.Repeat([]byte("b"), 4096),
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				_ = eng.Put([]byte("shared"), values[(i+j)%2])
				got, err := eng.Get([]byte("shared"))
				if err != nil {
					t.Errorf("Get failed: %v", err)
					return
				}
				if !bytes.Equal(got, values[0]) && !bytes.Equal(got, values[1]) {
					t.Errorf("观察到撕裂的值")
					return
				}
			}
		}(i)
	}
	wg.Wait()
}
