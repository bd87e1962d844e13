package dataset

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/KaramelBytes/salesdash/internal/log"
)

// LoadFunc produces a table. Cache calls it at most once per population.
type LoadFunc func(ctx context.Context) (*Table, error)

// Cache memoizes one table for the life of the process.
//
// The first Get loads; concurrent first callers share that single load. After
// that the table is read without loading again until Clear is called. A
// failed load is not cached, so the next Get retries.
type Cache struct {
	load   LoadFunc
	logger *log.Logger

	group singleflight.Group
	mu    sync.RWMutex
	table *Table
	loads int
	// gen advances on Clear; a load started under an older gen is not stored.
	gen uint64
}

// NewCache wraps load. A nil logger discards log output.
func NewCache(load LoadFunc, logger *log.Logger) *Cache {
	if logger == nil {
		logger = log.Discard()
	}
	return &Cache{load: load, logger: logger.WithComponent(log.ComponentCache)}
}

// FileLoader returns a LoadFunc reading path with opt.
func FileLoader(path string, opt Options) LoadFunc {
	return func(context.Context) (*Table, error) {
		return Load(path, opt)
	}
}

// Get returns the cached table, loading it on first use.
func (c *Cache) Get(ctx context.Context) (*Table, error) {
	c.mu.RLock()
	t := c.table
	c.mu.RUnlock()
	if t != nil {
		return t, nil
	}

	v, err, shared := c.group.Do("table", func() (any, error) {
		c.mu.RLock()
		cached, gen := c.table, c.gen
		c.mu.RUnlock()
		if cached != nil {
			return cached, nil
		}
		start := time.Now()
		t, err := c.load(ctx)
		if err != nil {
			c.logger.Error("dataset load failed", log.FieldOperation, log.OpLoad, log.FieldError, err)
			return nil, err
		}
		c.mu.Lock()
		stale := gen != c.gen
		if !stale {
			c.table = t
			c.loads++
		}
		c.mu.Unlock()
		if stale {
			c.logger.Debug("discarding load superseded by clear", log.FieldLoadID, t.ID())
			return t, nil
		}
		st := t.Stats()
		c.logger.Info("dataset loaded",
			log.FieldOperation, log.OpLoad,
			log.FieldLoadID, t.ID(),
			log.FieldPath, t.Source(),
			log.FieldSource, st.SourceRows,
			log.FieldRows, st.Rows,
			log.FieldExcluded, st.Excluded,
			log.FieldDuration, time.Since(start).Milliseconds(),
		)
		return t, nil
	})
	if err != nil {
		return nil, err
	}
	if shared {
		c.logger.Debug("shared in-flight load", log.FieldShared, true)
	}
	return v.(*Table), nil
}

// Clear drops the cached table. The next Get loads again, and a load already
// in flight is returned to its callers but not stored.
func (c *Cache) Clear() {
	c.mu.Lock()
	c.table = nil
	c.gen++
	c.mu.Unlock()
	c.group.Forget("table")
	c.logger.Debug("cache cleared", log.FieldOperation, log.OpClear)
}

// Loads reports how many successful loads populated the cache.
func (c *Cache) Loads() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loads
}
