// Package pagecache implements a simple paged read cache in front of the
// trigram model file, grounded on the same bucketed-cache shape as
// segmentio/datastructures' pagecache package but simplified to a single
// RWMutex and unbounded (no-eviction) retention, matching spec.md §4.1's
// contract: pages are materialized lazily on first access and kept for the
// lifetime of a run.
package pagecache

import (
	"fmt"
	"io"
	"math/bits"
	"os"
	"sync"

	"github.com/vholub/diac/internal/apperr"
	"github.com/vholub/diac/internal/logger"
)

// DefaultPageSize matches the original engine's mem_map<4 MiB> page size.
const DefaultPageSize int64 = 4 << 20

var log = logger.New(logger.Cache)

// Stats carries cache-access counters, in the spirit of
// segmentio/datastructures' pagecache.Stats.
type Stats struct {
	Lookups int64
	Hits    int64
	Inserts int64
}

// Cache is a lazily-materialized, power-of-two-paged view over a backing
// file. If the backing file cannot be opened, pages are served zero-filled
// rather than failing outright — the file may be momentarily unavailable,
// and spec.md §4.1 calls for graceful degradation over a hard failure.
type Cache struct {
	mu       sync.RWMutex
	path     string
	pageSize int64
	size     int64
	pages    map[int64][]byte // keyed by page-aligned offset
	stats    Stats
	readErr  error // never set: load logs an open failure and serves a zero-filled page instead
}

// Open constructs a Cache over path with the given page size, which must be
// a positive power of two.
func Open(path string, pageSize int64) (*Cache, error) {
	if pageSize <= 0 || bits.OnesCount64(uint64(pageSize)) != 1 {
		return nil, apperr.ErrInvalidPageSize
	}

	var size int64
	if info, err := os.Stat(path); err == nil {
		size = info.Size()
	}

	return &Cache{
		path:     path,
		pageSize: pageSize,
		size:     size,
		pages:    make(map[int64][]byte),
	}, nil
}

// Size returns the backing file's size in bytes, as observed at Open time.
func (c *Cache) Size() int64 {
	return c.size
}

// ReadAt fills dst starting at offset, spanning as many pages as needed. It
// satisfies io.ReaderAt so a Cache can back pkg/binreader directly.
func (c *Cache) ReadAt(dst []byte, offset int64) (int, error) {
	if offset < 0 {
		return 0, fmt.Errorf("pagecache: negative offset %d", offset)
	}
	n := 0
	for n < len(dst) {
		cur := offset + int64(n)
		aligned := (cur / c.pageSize) * c.pageSize
		page := c.page(aligned)
		pageOff := cur - aligned
		if pageOff >= int64(len(page)) {
			return n, io.EOF
		}
		copied := copy(dst[n:], page[pageOff:])
		n += copied
		if copied == 0 {
			return n, io.EOF
		}
	}
	return n, nil
}

func (c *Cache) page(aligned int64) []byte {
	c.mu.RLock()
	c.stats.Lookups++
	if p, ok := c.pages[aligned]; ok {
		c.mu.RUnlock()
		c.mu.Lock()
		c.stats.Hits++
		c.mu.Unlock()
		return p
	}
	c.mu.RUnlock()

	data := c.load(aligned)

	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, ok := c.pages[aligned]; ok {
		// another goroutine materialized it first; keep the first copy.
		return existing
	}
	c.pages[aligned] = data
	c.stats.Inserts++
	return data
}

func (c *Cache) load(aligned int64) []byte {
	f, err := os.Open(c.path)
	if err != nil {
		log.Warnf("backing file %s unavailable, serving zero-filled page at %d: %v", c.path, aligned, err)
		return make([]byte, c.pageSize)
	}
	defer f.Close()

	// A page is cut short at the end of the file, so ReadAt reports a short
	// read and io.EOF there instead of handing out padding bytes.
	length := c.pageSize
	if remaining := c.size - aligned; remaining < length {
		if remaining < 0 {
			remaining = 0
		}
		length = remaining
	}
	data := make([]byte, length)
	if length == 0 {
		return data
	}

	if _, err := f.ReadAt(data, aligned); err != nil && err != io.EOF {
		log.Warnf("reading page at %d from %s: %v", aligned, c.path, err)
	}
	return data
}

// StatsSnapshot returns the current counter values.
func (c *Cache) StatsSnapshot() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.stats
}
