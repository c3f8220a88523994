package weather

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"strings"
	"sync"
	"time"

	"solar-roi/internal/model"
)

// CacheEntry represents a cached observation
type CacheEntry struct {
	Snapshot  *model.WeatherSnapshot
	ExpiresAt time.Time
}

// SnapshotCache provides in-memory caching for OpenWeatherMap observations.
//
// ⚠️ WARNING: This cache is for LOCAL DEVELOPMENT ONLY.
//
// Caching API responses may violate OpenWeatherMap Terms of Use.
// Before enabling this feature:
//  1. Review OpenWeatherMap Terms of Use
//  2. Confirm caching is allowed for your use case
//  3. Only enable in local development environments
//  4. Never enable in production without explicit permission
//
// This cache is automatically disabled when API_ENV=production.
type SnapshotCache struct {
	mu    sync.RWMutex
	store map[string]*CacheEntry
	ttl   time.Duration
}

var globalCache *SnapshotCache
var cacheOnce sync.Once

// GetCache returns the global cache instance if caching is enabled.
// Returns nil if caching is disabled.
//
// ⚠️ DEVELOPMENT ONLY: This cache is automatically disabled in production.
func GetCache() *SnapshotCache {
	// Only enable cache if explicitly enabled via environment variable
	// AND only in development mode
	if os.Getenv("ENABLE_WEATHER_CACHE") != "true" {
		return nil
	}

	env := os.Getenv("API_ENV")
	if env == "production" {
		return nil
	}

	cacheOnce.Do(func() {
		// Current-weather observations refresh upstream roughly every 10
		// minutes, so that is the default TTL.
		ttl := 10 * time.Minute
		if ttlStr := os.Getenv("WEATHER_CACHE_TTL"); ttlStr != "" {
			if parsed, err := time.ParseDuration(ttlStr); err == nil {
				ttl = parsed
			}
		}

		globalCache = &SnapshotCache{
			store: make(map[string]*CacheEntry),
			ttl:   ttl,
		}

		// Start cleanup goroutine
		go globalCache.cleanup()
	})

	return globalCache
}

// Get retrieves a cached observation if available and not expired
func (c *SnapshotCache) Get(key string) (*model.WeatherSnapshot, bool) {
	if c == nil {
		return nil, false
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, exists := c.store[key]
	if !exists {
		return nil, false
	}

	if time.Now().After(entry.ExpiresAt) {
		return nil, false
	}

	return entry.Snapshot, true
}

// Set stores an observation in the cache
func (c *SnapshotCache) Set(key string, snapshot *model.WeatherSnapshot) {
	if c == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.store[key] = &CacheEntry{
		Snapshot:  snapshot,
		ExpiresAt: time.Now().Add(c.ttl),
	}
}

// Clear removes all entries from the cache
func (c *SnapshotCache) Clear() {
	if c == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.store = make(map[string]*CacheEntry)
}

// cleanup periodically removes expired entries
func (c *SnapshotCache) cleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		c.mu.Lock()
		now := time.Now()
		for key, entry := range c.store {
			if now.After(entry.ExpiresAt) {
				delete(c.store, key)
			}
		}
		c.mu.Unlock()
	}
}

// CacheKey creates a cache key from the requested city.
// City names are case-insensitive to the provider, so the key is too.
func CacheKey(city string) string {
	normalized := strings.ToLower(strings.TrimSpace(city))
	hash := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(hash[:])
}
