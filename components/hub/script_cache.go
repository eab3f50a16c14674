package hub

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"sync"
	"time"
)

// RenderCache memoizes emitted scripts so repeated fetches are cheap.
type RenderCache interface {
	GetOrRender(key string, render func() (string, error)) (string, error)
}

// ScriptCache is an in-memory TTL cache for emitted scripts.
type ScriptCache struct {
	ttl     time.Duration
	mu      sync.RWMutex
	entries map[string]cachedScript
}

type cachedScript struct {
	body    string
	expires time.Time
}

// NewScriptCache builds a cache with the provided TTL. A non-positive TTL
// disables caching.
func NewScriptCache(ttl time.Duration) *ScriptCache {
	return &ScriptCache{
		ttl:     ttl,
		entries: make(map[string]cachedScript),
	}
}

// GetOrRender returns a cached entry or renders and stores a new one.
func (c *ScriptCache) GetOrRender(key string, render func() (string, error)) (string, error) {
	if body, ok := c.get(key); ok {
		return body, nil
	}
	body, err := render()
	if err != nil {
		return "", err
	}
	c.set(key, body)
	return body, nil
}

// Len reports the number of live entries.
func (c *ScriptCache) Len() int {
	if c == nil {
		return 0
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *ScriptCache) get(key string) (string, bool) {
	if c == nil || c.ttl <= 0 {
		return "", false
	}
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok || time.Now().After(entry.expires) {
		if ok {
			c.mu.Lock()
			delete(c.entries, key)
			c.mu.Unlock()
		}
		return "", false
	}
	return entry.body, true
}

func (c *ScriptCache) set(key, body string) {
	if c == nil || c.ttl <= 0 {
		return
	}
	c.mu.Lock()
	c.entries[key] = cachedScript{
		body:    body,
		expires: time.Now().Add(c.ttl),
	}
	c.mu.Unlock()
}

// configHash returns a deterministic hash for the widget configuration.
func configHash(cfg WidgetConfig) string {
	b, err := json.Marshal(cfg)
	if err != nil {
		return "invalid"
	}
	sum := sha1.Sum(b)
	return hex.EncodeToString(sum[:])
}
