package forecast

import (
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

// ReplyCache stores rendered reply text per (spot, window, UTC hour).
type ReplyCache interface {
	Get(spotKey string, w Window) (string, bool)
	Put(spotKey string, w Window, text string)
}

const bucketLayout = "2006-01-02T15"

// HourCache is an in-memory ReplyCache keyed by the current UTC hour
// bucket. Freshness is not a stored expiry: the bucket is re-derived
// from the clock on every access, so an entry written in a past hour
// is simply never looked up again. The mutex guards individual map
// accesses only, not the surrounding fetch-and-populate sequence;
// concurrent misses for the same bucket may each trigger an upstream
// fetch and the last writer wins.
type HourCache struct {
	mu      sync.RWMutex
	entries map[string]string
	logger  *zap.Logger
	now     func() time.Time
}

func NewHourCache(logger *zap.Logger) *HourCache {
	return &HourCache{
		entries: make(map[string]string),
		logger:  logger,
		now:     time.Now,
	}
}

func (c *HourCache) key(spotKey string, w Window) string {
	bucket := c.now().UTC().Format(bucketLayout)
	return spotKey + "|" + w.String() + "|" + bucket
}

// Get returns the reply stored for the current hour bucket, if any.
func (c *HourCache) Get(spotKey string, w Window) (string, bool) {
	k := c.key(spotKey, w)

	c.mu.RLock()
	text, ok := c.entries[k]
	c.mu.RUnlock()

	return text, ok
}

// Put stores a reply under the current hour bucket, overwriting any
// prior entry for that bucket.
func (c *HourCache) Put(spotKey string, w Window, text string) {
	k := c.key(spotKey, w)

	c.mu.Lock()
	c.entries[k] = text
	c.mu.Unlock()

	c.logger.Debug("reply cached", zap.String("key", k))
}

// EvictBefore removes entries whose hour bucket is older than cutoff
// and returns how many were dropped. Lookup correctness never depends
// on eviction; this only bounds memory growth.
func (c *HourCache) EvictBefore(cutoff time.Time) int {
	limit := cutoff.UTC().Truncate(time.Hour)

	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for k := range c.entries {
		bucket := k[strings.LastIndex(k, "|")+1:]
		t, err := time.Parse(bucketLayout, bucket)
		if err != nil || t.Before(limit) {
			delete(c.entries, k)
			removed++
		}
	}
	return removed
}

// Len reports the number of resident entries, stale buckets included.
func (c *HourCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
