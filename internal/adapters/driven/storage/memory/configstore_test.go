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

func TestConfigStore_SetAndGet(t *testing.T) {
	store := NewConfigStore()

	require.NoError(t, store.Set("page.size", "a4"))
	require.NoError(t, store.Set("page.size", "letter"))

	val, ok := store.Get("page.size")
	assert.True(t, ok)
	assert.Equal(t, "letter", val)

	_, ok = store.Get("page.margin")
	assert.False(t, ok)
}

func TestConfigStore_TypedGetters(t *testing.T) {
	store := NewConfigStore()
	require.NoError(t, store.Set("page.size", "a5"))
	require.NoError(t, store.Set("grid.columns", 3))
	require.NoError(t, store.Set("image.quality", int64(75)))
	require.NoError(t, store.Set("page.margin", 12.5))
	require.NoError(t, store.Set("image.compress", true))

	assert.Equal(t, "a5", store.GetString("page.size"))
	assert.Equal(t, 3, store.GetInt("grid.columns"))
	assert.Equal(t, 75, store.GetInt("image.quality"))
	assert.Equal(t, 12, store.GetInt("page.margin"))
	assert.InDelta(t, 12.5, store.GetFloat("page.margin"), 1e-9)
	assert.InDelta(t, 3.0, store.GetFloat("grid.columns"), 1e-9)
	assert.InDelta(t, 75.0, store.GetFloat("image.quality"), 1e-9)
	assert.True(t, store.GetBool("image.compress"))
}

func TestConfigStore_TypedGetters_WrongTypeOrMissing(t *testing.T) {
	store := NewConfigStore()
	require.NoError(t, store.Set("page.size", 4))
	require.NoError(t, store.Set("grid.columns", "two"))
	require.NoError(t, store.Set("image.compress", "yes"))

	assert.Empty(t, store.GetString("page.size"))
	assert.Zero(t, store.GetInt("grid.columns"))
	assert.Zero(t, store.GetFloat("grid.columns"))
	assert.False(t, store.GetBool("image.compress"))

	assert.Empty(t, store.GetString("missing"))
	assert.Zero(t, store.GetInt("missing"))
	assert.Zero(t, store.GetFloat("missing"))
	assert.False(t, store.GetBool("missing"))
}

func TestConfigStore_Delete(t *testing.T) {
	store := NewConfigStore()
	require.NoError(t, store.Set("grid.columns", 3))

	require.NoError(t, store.Delete("grid.columns"))
	_, ok := store.Get("grid.columns")
	assert.False(t, ok)

	// Deleting a missing key is not an error.
	require.NoError(t, store.Delete("grid.columns"))
}

func TestConfigStore_SaveAndLoadAreNoOps(t *testing.T) {
	store := NewConfigStore()
	require.NoError(t, store.Set("page.size", "a4"))

	require.NoError(t, store.Save())
	require.NoError(t, store.Load())

	assert.Equal(t, "a4", store.GetString("page.size"))
}

func TestConfigStore_Concurrency(t *testing.T) {
	store := NewConfigStore()
	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			_ = store.Set("grid.columns", n)
		}(i)
		go func() {
			defer wg.Done()
			_ = store.GetInt("grid.columns")
		}()
	}
	wg.Wait()

	_, ok := store.Get("grid.columns")
	assert.True(t, ok)
}
