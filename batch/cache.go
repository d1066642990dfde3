package batch

import (
	"crypto/md5"
	"fmt"
	"sync"
	"time"
)

type digestEntry struct {
	Hash      string
	CreatedAt time.Time
}

// digestCache remembers the content hash of every file processed by
// Watch. Editors often write a file several times per save, and touching
// a file without changing it fires a write event as well; both are
// skipped.
type digestCache struct {
	entries map[string]digestEntry
	mutex   sync.Mutex
	maxAge  time.Duration
}

func newDigestCache(maxAge time.Duration) *digestCache {
	return &digestCache{
		entries: make(map[string]digestEntry),
		maxAge:  maxAge,
	}
}

// changed reports whether data differs from what was last recorded for
// path, and records it. Entries older than maxAge count as changed.
func (c *digestCache) changed(path string, data []byte) bool {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	hash := fmt.Sprintf("%x", md5.Sum(data))
	entry, exists := c.entries[path]
	if exists && entry.Hash == hash && time.Since(entry.CreatedAt) <= c.maxAge {
		return false
	}

	c.entries[path] = digestEntry{Hash: hash, CreatedAt: time.Now()}
	return true
}

// forget drops the entry for path so that the next event reprocesses it.
func (c *digestCache) forget(path string) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	delete(c.entries, path)
}
