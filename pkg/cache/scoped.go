package cache

import "time"

// NewListCache builds the cache backing list-response memoization on a cloud
// facade. A non-positive ttl keeps entries until a write operation deletes
// them, which matches the facade's invalidate-on-write discipline; a positive
// ttl additionally ages entries out and runs a janitor.
func NewListCache(ttl, cleanupInterval time.Duration) Cache {
	if ttl <= 0 {
		return New(NoExpiration, 0, nil)
	}
	return New(ttl, cleanupInterval, nil)
}
