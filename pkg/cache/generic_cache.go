package cache

import (
	"sync"
	"time"
)

type GenericCache struct {
	defaultTTL time.Duration
	store      sync.Map
	parent     Cache
	janitor    *janitor
}

// New builds a GenericCache. Entries default to defaultTTL (NoExpiration
// keeps them until deleted). A positive cleanupInterval starts a janitor
// goroutine that evicts expired entries; stop it with Close. Lookups that
// miss fall through to parent when one is given.
func New(defaultTTL, cleanupInterval time.Duration, parent Cache) *GenericCache {
	c := &GenericCache{
		defaultTTL: defaultTTL,
		parent:     parent,
	}

	if cleanupInterval > 0 {
		c.janitor = runJanitor(c, cleanupInterval)
	}

	return c
}

func (c *GenericCache) Get(key string) (interface{}, bool) {
	val, ok := c.store.Load(key)
	if ok {
		item := val.(item)
		if !item.Expired() {
			return item.Value, true
		}
		c.store.Delete(key)
	}

	if c.parent != nil {
		return c.parent.Get(key)
	}

	return nil, false
}

func (c *GenericCache) Set(key string, value interface{}) {
	c.SetWithTTL(key, value, DefaultExpiration)
}

func (c *GenericCache) SetWithTTL(key string, value interface{}, ttl time.Duration) {
	var expires int64
	if ttl == DefaultExpiration {
		ttl = c.defaultTTL
	}
	if ttl > 0 {
		expires = time.Now().Add(ttl).UnixNano()
	}
	c.store.Store(key, item{
		Value:      value,
		Expiration: expires,
	})
}

func (c *GenericCache) Delete(k string) {
	c.store.Delete(k)
}

func (c *GenericCache) Has(key string) bool {
	_, ok := c.Get(key)
	return ok
}

func (c *GenericCache) Keys() []string {
	var keys []string
	c.store.Range(func(key, value interface{}) bool {
		item := value.(item)
		if !item.Expired() {
			if kStr, ok := key.(string); ok {
				keys = append(keys, kStr)
			}
		}
		return true
	})
	return keys
}

func (c *GenericCache) Count() int {
	count := 0
	c.store.Range(func(key, value interface{}) bool {
		item := value.(item)
		if !item.Expired() {
			count++
		}
		return true
	})
	return count
}

func (c *GenericCache) Flush() {
	c.store = sync.Map{}
}

func (c *GenericCache) GetOrSet(k string, v interface{}) (interface{}, bool) {
	existing, ok := c.store.Load(k)
	if ok {
		item := existing.(item)
		if !item.Expired() {
			return item.Value, true
		}
	}

	var expires int64
	if c.defaultTTL > 0 {
		expires = time.Now().Add(c.defaultTTL).UnixNano()
	}
	newItem := item{Value: v, Expiration: expires}

	actualItem, loaded := c.store.LoadOrStore(k, newItem)
	if loaded {
		return actualItem.(item).Value, true
	}

	return newItem.Value, false
}

func (c *GenericCache) Range(f func(key string, value interface{}) bool) {
	c.store.Range(func(key, value interface{}) bool {
		kStr, ok := key.(string)
		if !ok {
			return true
		}

		item, ok := value.(item)
		if !ok || item.Expired() {
			return true
		}

		return f(kStr, item.Value)
	})
}

// Close stops the janitor goroutine, if one was started.
func (c *GenericCache) Close() {
	stopJanitor(c)
}

func (c *GenericCache) deleteExpired() {
	c.store.Range(func(key, value interface{}) bool {
		item := value.(item)
		if item.Expired() {
			c.store.Delete(key)
		}
		return true
	})
}
