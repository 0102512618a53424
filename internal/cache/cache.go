// Package cache memoizes expensive keyed results with single-flight loading.
package cache

import (
	"time"

	"github.com/puzpuzpuz/xsync/v4"
	"golang.org/x/sync/singleflight"
)

type entry[T any] struct {
	value    T
	storedAt time.Time
}

// Single caches values per key. Concurrent misses on one key share a single
// load. A stale hit returns the old value and refreshes in the background.
type Single[T any] struct {
	entries *xsync.Map[string, entry[T]]
	group   singleflight.Group
	ttl     time.Duration
}

func NewSingle[T any](ttl time.Duration) *Single[T] {
	return &Single[T]{
		entries: xsync.NewMap[string, entry[T]](),
		ttl:     ttl,
	}
}

func (c *Single[T]) Get(key string, load func() (T, error)) (T, error) {
	if e, ok := c.entries.Load(key); ok {
		if time.Since(e.storedAt) > c.ttl {
			go c.group.Do(key, func() (any, error) {
				if v, err := load(); err == nil {
					c.entries.Store(key, entry[T]{value: v, storedAt: time.Now()})
				}
				return nil, nil
			})
		}
		return e.value, nil
	}

	v, err, _ := c.group.Do(key, func() (any, error) {
		if e, ok := c.entries.Load(key); ok {
			return e, nil
		}
		res, err := load()
		if err != nil {
			return nil, err
		}
		e := entry[T]{value: res, storedAt: time.Now()}
		c.entries.Store(key, e)
		return e, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return v.(entry[T]).value, nil
}

// Len reports the number of cached keys.
func (c *Single[T]) Len() int {
	return c.entries.Size()
}
