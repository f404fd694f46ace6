// Package cache holds encoded API payloads in memory, keyed by payload kind,
// player and table version, with an ETag per payload.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// TTLs by payload kind. Processed tables only change when the ingest CLI
// rewrites them, and cache keys carry the file version, so these bound
// memory rather than staleness.
const (
	TTLRegistry = 24 * time.Hour // player list, fixed at build time
	TTLMatches  = 15 * time.Minute
	TTLSummary  = 15 * time.Minute
)

// sweepEvery is how often expired payloads are dropped.
const sweepEvery = 5 * time.Minute

type payload struct {
	body    []byte
	etag    string
	expires time.Time
}

// Cache is a thread-safe TTL store for encoded responses. Keys look like
// "<kind>:<player>:<version>..."; the kind prefix is used in Stats.
type Cache struct {
	mu       sync.RWMutex
	payloads map[string]payload
	enabled  bool
	now      func() time.Time

	hits   atomic.Int64
	misses atomic.Int64
}

// Stats describes the cache contents for the health endpoint.
type Stats struct {
	Enabled bool           `json:"enabled"`
	Live    int            `json:"live"`
	Expired int            `json:"expired"`
	Bytes   int            `json:"bytes"`
	ByKind  map[string]int `json:"by_kind"`
	Hits    int64          `json:"hits"`
	Misses  int64          `json:"misses"`
}

// New creates a cache. A disabled cache stores nothing but still computes
// ETags, so conditional requests keep working.
func New(enabled bool) *Cache {
	c := &Cache{
		payloads: make(map[string]payload),
		enabled:  enabled,
		now:      time.Now,
	}
	if enabled {
		go c.sweepLoop()
	}
	return c
}

// Get returns the payload stored under key if it has not expired.
func (c *Cache) Get(key string) (body []byte, etag string, ok bool) {
	if !c.enabled {
		return nil, "", false
	}
	c.mu.RLock()
	p, found := c.payloads[key]
	c.mu.RUnlock()

	if !found || !c.now().Before(p.expires) {
		c.misses.Add(1)
		return nil, "", false
	}
	c.hits.Add(1)
	return p.body, p.etag, true
}

// Set stores body under key for ttl and returns its ETag.
func (c *Cache) Set(key string, body []byte, ttl time.Duration) string {
	etag := ComputeETag(body)
	if !c.enabled {
		return etag
	}
	c.mu.Lock()
	c.payloads[key] = payload{body: body, etag: etag, expires: c.now().Add(ttl)}
	c.mu.Unlock()
	return etag
}

// Stats reports live and expired payloads, grouped by key kind.
func (c *Cache) Stats() Stats {
	s := Stats{
		Enabled: c.enabled,
		ByKind:  make(map[string]int),
		Hits:    c.hits.Load(),
		Misses:  c.misses.Load(),
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	now := c.now()
	for key, p := range c.payloads {
		if !now.Before(p.expires) {
			s.Expired++
			continue
		}
		s.Live++
		s.Bytes += len(p.body)
		kind, _, _ := strings.Cut(key, ":")
		s.ByKind[kind]++
	}
	return s
}

func (c *Cache) sweepLoop() {
	ticker := time.NewTicker(sweepEvery)
	defer ticker.Stop()
	for range ticker.C {
		c.sweep()
	}
}

// sweep drops expired payloads.
func (c *Cache) sweep() {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	for key, p := range c.payloads {
		if !now.Before(p.expires) {
			delete(c.payloads, key)
		}
	}
}

// ComputeETag returns a strong ETag over the encoded payload.
func ComputeETag(body []byte) string {
	sum := sha256.Sum256(body)
	return `"` + hex.EncodeToString(sum[:12]) + `"`
}

// CheckETagMatch reports whether an If-None-Match header value matches etag.
// The header may list several tags; comparison is weak, so W/ prefixes are
// ignored on both sides.
func CheckETagMatch(ifNoneMatch, etag string) bool {
	ifNoneMatch = strings.TrimSpace(ifNoneMatch)
	if ifNoneMatch == "" || etag == "" {
		return false
	}
	if ifNoneMatch == "*" {
		return true
	}
	want := strings.TrimPrefix(etag, "W/")
	for _, candidate := range strings.Split(ifNoneMatch, ",") {
		if strings.TrimPrefix(strings.TrimSpace(candidate), "W/") == want {
			return true
		}
	}
	return false
}
