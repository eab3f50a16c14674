package hub

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScriptCacheStoresEntry(t *testing.T) {
	cache := NewScriptCache(time.Minute)
	calls := 0
	render := func() (string, error) {
		calls++
		return "script", nil
	}

	val1, err := cache.GetOrRender("key", render)
	require.NoError(t, err)
	val2, err := cache.GetOrRender("key", render)
	require.NoError(t, err)

	assert.Equal(t, "script", val1)
	assert.Equal(t, val1, val2)
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, cache.Len())
}

func TestScriptCacheExpires(t *testing.T) {
	cache := NewScriptCache(2 * time.Millisecond)
	calls := 0
	render := func() (string, error) {
		calls++
		return "fresh", nil
	}

	_, err := cache.GetOrRender("key", render)
	require.NoError(t, err)
	time.Sleep(5 * time.Millisecond)
	_, err = cache.GetOrRender("key", render)
	require.NoError(t, err)

	assert.Equal(t, 2, calls)
}

func TestScriptCacheSkipsErrors(t *testing.T) {
	cache := NewScriptCache(time.Minute)
	_, err := cache.GetOrRender("key", func() (string, error) { return "", errors.New("boom") })
	require.Error(t, err)
	assert.Equal(t, 0, cache.Len())
}

func TestConfigHashTracksChanges(t *testing.T) {
	cfg := testWidget()
	hash := configHash(cfg)
	assert.Equal(t, hash, configHash(cfg.Clone()))
	cfg.Title = "changed"
	assert.NotEqual(t, hash, configHash(cfg))
}
