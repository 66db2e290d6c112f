package image

import (
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/forma-editor/forma/internal/logger"
)

const (
	fetchTimeout = 10 * time.Second
	maxCached    = 8 << 20 // per-entry byte cap
)

// Cache holds fetched copies of remote image sources. It is a pure
// optimization: entries feed preview widgets, never history. A stale fetch
// that completes after its image stopped mattering simply populates an
// unused entry. There is no cancellation.
type Cache struct {
	mu      sync.Mutex
	entries map[string][]byte
	pending map[string]struct{}
	client  *http.Client
}

// NewCache creates an empty cache owned by one tool instance.
func NewCache() *Cache {
	return &Cache{
		entries: make(map[string][]byte),
		pending: make(map[string]struct{}),
		client:  &http.Client{Timeout: fetchTimeout},
	}
}

// Get returns the cached bytes for src, if any.
func (c *Cache) Get(src string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	data, ok := c.entries[src]
	return data, ok
}

// Len reports the number of cached entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Prefetch starts a background fetch of src when it is a remote URL not
// already cached or in flight. Returns immediately.
func (c *Cache) Prefetch(src string) {
	if !strings.HasPrefix(src, "http://") && !strings.HasPrefix(src, "https://") {
		return
	}

	c.mu.Lock()
	if _, done := c.entries[src]; done {
		c.mu.Unlock()
		return
	}
	if _, inflight := c.pending[src]; inflight {
		c.mu.Unlock()
		return
	}
	c.pending[src] = struct{}{}
	c.mu.Unlock()

	go c.fetch(src)
}

func (c *Cache) fetch(src string) {
	defer func() {
		c.mu.Lock()
		delete(c.pending, src)
		c.mu.Unlock()
	}()

	resp, err := c.client.Get(src)
	if err != nil {
		logger.Debugf("Image cache: fetch of %s failed: %v", src, err)
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		logger.Debugf("Image cache: fetch of %s returned %d", src, resp.StatusCode)
		return
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxCached))
	if err != nil {
		logger.Debugf("Image cache: read of %s failed: %v", src, err)
		return
	}

	c.mu.Lock()
	c.entries[src] = data
	c.mu.Unlock()
	logger.Debugf("Image cache: cached %s (%d bytes)", src, len(data))
}
