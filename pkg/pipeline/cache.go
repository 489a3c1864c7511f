package pipeline

import (
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/ursazoo/compdoc/pkg/extractor"
)

// DefaultCacheSize is the number of extracted components kept in memory.
const DefaultCacheSize = 512

// MetadataCache memoizes extraction results by content hash.
//
// Entries are keyed by the component's base name and normalized source, so
// an edited file misses and an untouched file hits across watch cycles and
// MCP calls. Cached metadata is shared and must not be mutated.
type MetadataCache struct {
	entries *lru.Cache[string, *extractor.Metadata]

	hits      atomic.Int64
	misses    atomic.Int64
	evictions atomic.Int64
}

// CacheStats reports cache effectiveness.
type CacheStats struct {
	Entries   int
	Hits      int64
	Misses    int64
	Evictions int64
	// HitRate is hits / (hits + misses), 0 when nothing was looked up.
	HitRate float64
}

// NewMetadataCache creates a cache holding at most size entries. A size <= 0
// selects DefaultCacheSize.
func NewMetadataCache(size int, logger *slog.Logger) *MetadataCache {
	if size <= 0 {
		size = DefaultCacheSize
	}
	if logger == nil {
		logger = slog.Default()
	}
	c := &MetadataCache{}
	entries, err := lru.NewWithEvict(size, func(key string, meta *extractor.Metadata) {
		c.evictions.Add(1)
		logger.Debug("LRU evicting component", "name", meta.Name, "key", key[:12])
	})
	if err != nil {
		// lru only fails for non-positive sizes.
		panic(err)
	}
	c.entries = entries
	return c
}

// Key returns the cache key for a component source.
func Key(baseName, source string) string {
	h := sha256.New()
	h.Write([]byte(baseName))
	h.Write([]byte{0})
	h.Write([]byte(source))
	return hex.EncodeToString(h.Sum(nil))
}

// Get returns the cached metadata for key.
func (c *MetadataCache) Get(key string) (*extractor.Metadata, bool) {
	meta, ok := c.entries.Get(key)
	if ok {
		c.hits.Add(1)
	} else {
		c.misses.Add(1)
	}
	return meta, ok
}

// Add stores meta under key.
func (c *MetadataCache) Add(key string, meta *extractor.Metadata) {
	c.entries.Add(key, meta)
}

// Purge drops every entry. Statistics are kept.
func (c *MetadataCache) Purge() {
	c.entries.Purge()
}

// Stats returns a snapshot of the cache counters.
func (c *MetadataCache) Stats() CacheStats {
	s := CacheStats{
		Entries:   c.entries.Len(),
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
		Evictions: c.evictions.Load(),
	}
	if total := s.Hits + s.Misses; total > 0 {
		s.HitRate = float64(s.Hits) / float64(total)
	}
	return s
}
