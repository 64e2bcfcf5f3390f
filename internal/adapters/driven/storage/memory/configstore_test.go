package memory

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore(t *testing.T) {
	store := NewConfigStore()
	require.NotNil(t, store)
	assert.NotNil(t, store.values)
	assert.Equal(t, ":memory:", store.Path())
}

func TestNewConfigStore_Seeded(t *testing.T) {
	store := NewConfigStore(
		map[string]any{"search.snippet_context": 10},
		map[string]any{"search.whole_word": true, "search.snippet_context": 20},
	)

	assert.Equal(t, 20, store.GetInt("search.snippet_context"))
	assert.True(t, store.GetBool("search.whole_word"))
}

func TestConfigStore_SetAndGet(t *testing.T) {
	store := NewConfigStore()

	require.NoError(t, store.Set("storage.data_dir", "/tmp/a"))
	require.NoError(t, store.Set("storage.data_dir", "/tmp/b"))

	val, ok := store.Get("storage.data_dir")
	assert.True(t, ok)
	assert.Equal(t, "/tmp/b", val)

	_, ok = store.Get("missing")
	assert.False(t, ok)
}

func TestConfigStore_GetString(t *testing.T) {
	store := NewConfigStore(map[string]any{"str": "hello", "num": 42})

	assert.Equal(t, "hello", store.GetString("str"))
	assert.Empty(t, store.GetString("num"))
	assert.Empty(t, store.GetString("missing"))
}

func TestConfigStore_GetInt(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  int
	}{
		{"int", 42, 42},
		{"int64", int64(7), 7},
		{"float64", float64(3), 3},
		{"string", "12", 0},
		{"bool", true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewConfigStore(map[string]any{"key": tt.value})
			assert.Equal(t, tt.want, store.GetInt("key"))
		})
	}

	assert.Equal(t, 0, NewConfigStore().GetInt("missing"))
}

func TestConfigStore_GetBool(t *testing.T) {
	store := NewConfigStore(map[string]any{"on": true, "off": false, "str": "true"})

	assert.True(t, store.GetBool("on"))
	assert.False(t, store.GetBool("off"))
	assert.False(t, store.GetBool("str"))
	assert.False(t, store.GetBool("missing"))
}

func TestConfigStore_Delete(t *testing.T) {
	store := NewConfigStore(map[string]any{"log.verbose": true})

	require.NoError(t, store.Delete("log.verbose"))
	require.NoError(t, store.Delete("missing"))

	_, ok := store.Get("log.verbose")
	assert.False(t, ok)
}

func TestConfigStore_SaveLoadNoop(t *testing.T) {
	store := NewConfigStore()
	assert.NoError(t, store.Save())
	assert.NoError(t, store.Load())
}

func TestConfigStore_ConcurrentAccess(t *testing.T) {
	store := NewConfigStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			_ = store.Set("search.snippet_context", n)
		}(i)
		go func() {
			defer wg.Done()
			_ = store.GetInt("search.snippet_context")
		}()
	}
	wg.Wait()

	_, ok := store.Get("search.snippet_context")
	assert.True(t, ok)
}
