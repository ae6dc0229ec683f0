package cache

import "time"

const (
	NoExpiration      time.Duration = -1
	DefaultExpiration time.Duration = 0
)

type item struct {
	Value      interface{}
	Expiration int64
}

func (i item) Expired() bool {
	if i.Expiration == 0 {
		return false
	}
	return time.Now().UnixNano() > i.Expiration
}

// Cache is the in-memory store used to memoize list responses until a write
// operation invalidates them. Implementations must be safe for concurrent use.
type Cache interface {
	Get(key string) (interface{}, bool)
	Set(key string, value interface{})
	SetWithTTL(key string, value interface{}, ttl time.Duration)
	Delete(key string)
	Has(key string) bool
	Keys() []string
	Count() int
	Flush()
	GetOrSet(k string, v interface{}) (interface{}, bool)
	Range(f func(key string, value interface{}) bool)
}
