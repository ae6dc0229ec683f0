package cache

import "time"

// noopCache stores nothing. Facades built from profiles with caching
// disabled use it so every list goes upstream through the same code path.
type noopCache struct{}

// NewNoop returns a Cache that never retains values.
func NewNoop() Cache { return noopCache{} }

func (noopCache) Get(string) (interface{}, bool)                 { return nil, false }
func (noopCache) Set(string, interface{})                        {}
func (noopCache) SetWithTTL(string, interface{}, time.Duration)  {}
func (noopCache) Delete(string)                                  {}
func (noopCache) Has(string) bool                                { return false }
func (noopCache) Keys() []string                                 { return nil }
func (noopCache) Count() int                                     { return 0 }
func (noopCache) Flush()                                         {}
func (noopCache) GetOrSet(_ string, v interface{}) (interface{}, bool) { return v, false }
func (noopCache) Range(func(key string, value interface{}) bool) {}
