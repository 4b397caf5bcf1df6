// Package audiocache memoizes synthesized audio by spoken text and
// speed. The vocabulary of a drill session is small and bounded, so
// entries live for the lifetime of the process with no eviction.
package audiocache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/singleflight"

	"github.com/narongdej/thaidrill/internal/speech"
)

// Stats holds cache performance metrics.
type Stats struct {
	Hits       int64     // lookups answered from memory
	Misses     int64     // lookups that went to the engine
	DiskHits   int64     // misses answered from the disk layer
	Failures   int64     // engine calls that failed
	Entries    int64     // entries currently held
	Size       int64     // total bytes held
	LastAccess time.Time // last Get call
}

// Cache memoizes engine output. Concurrent Gets for the same uncached
// key are collapsed into a single engine request whose result fans out
// to every waiter; a failed request is never cached, so the next Get
// for that key retries the engine.
type Cache struct {
	engine speech.Engine
	disk   *DiskStore // optional persistent layer, may be nil

	mu      sync.RWMutex
	entries map[string][]byte
	stats   Stats

	flight singleflight.Group
}

// New creates a cache in front of the given engine. disk may be nil to
// keep the cache memory-only.
func New(engine speech.Engine, disk *DiskStore) *Cache {
	return &Cache{
		engine:  engine,
		disk:    disk,
		entries: make(map[string][]byte),
	}
}

// Key builds the cache key for a text/speed pair.
func Key(text string, speed float64) string {
	return fmt.Sprintf("%s_%.2f", text, speed)
}

// Get returns the audio for text at the given speed, synthesizing it on
// first use. Errors wrap speech.ErrAudioUnavailable and leave no entry
// behind.
func (c *Cache) Get(ctx context.Context, text string, speed float64) ([]byte, error) {
	key := Key(text, speed)

	c.mu.Lock()
	c.stats.LastAccess = time.Now()
	if audio, ok := c.entries[key]; ok {
		c.stats.Hits++
		c.mu.Unlock()
		return audio, nil
	}
	c.stats.Misses++
	c.mu.Unlock()

	// Collapse concurrent misses for the same key into one fetch. The
	// losing callers block here and share the winner's result.
	v, err, _ := c.flight.Do(key, func() (interface{}, error) {
		// A racing call may have populated the entry while we waited
		// for the flight slot.
		c.mu.RLock()
		audio, ok := c.entries[key]
		c.mu.RUnlock()
		if ok {
			return audio, nil
		}
		return c.fetch(ctx, key, text, speed)
	})
	if err != nil {
		return nil, err
	}
	return v.([]byte), nil
}

// fetch resolves a miss through the disk layer, then the engine.
func (c *Cache) fetch(ctx context.Context, key, text string, speed float64) ([]byte, error) {
	if c.disk != nil {
		if audio, ok := c.disk.Get(key); ok {
			c.store(key, audio)
			c.mu.Lock()
			c.stats.DiskHits++
			c.mu.Unlock()
			return audio, nil
		}
	}

	audio, err := c.engine.Synthesize(ctx, text, speed)
	if err != nil {
		c.mu.Lock()
		c.stats.Failures++
		c.mu.Unlock()
		log.Debug("Synthesis failed, not caching", "key", key, "error", err)
		return nil, fmt.Errorf("%w: %v", speech.ErrAudioUnavailable, err)
	}

	c.store(key, audio)
	if c.disk != nil {
		if err := c.disk.Put(key, audio); err != nil {
			// The disk layer is best-effort.
			log.Warn("Failed to persist audio", "key", key, "error", err)
		}
	}
	return audio, nil
}

func (c *Cache) store(key string, audio []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.entries[key]; ok {
		return
	}
	c.entries[key] = audio
	c.stats.Entries = int64(len(c.entries))
	c.stats.Size += int64(len(audio))
}

// Contains reports whether the key is already memoized.
func (c *Cache) Contains(text string, speed float64) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	_, ok := c.entries[Key(text, speed)]
	return ok
}

// Stats returns a snapshot of cache metrics.
func (c *Cache) Stats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.stats
}
