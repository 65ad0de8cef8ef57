package templates

// CachedValue is a single-slot memoization cell: the compute function
// runs once on first access and its result is returned forever after.
// There is no invalidation; the source JSON a cached value derives from
// is immutable for the life of the document model, which is replaced
// wholesale on every edit. Not safe for concurrent first access.
type CachedValue[T any] struct {
	value    T
	computed bool
}

// GetOrCacheValue returns the cached value, computing it on first call.
// If compute panics, nothing is cached and the next call retries.
func (c *CachedValue[T]) GetOrCacheValue(compute func() T) T {
	if !c.computed {
		c.value = compute()
		c.computed = true
	}
	return c.value
}

// GetOrCacheValueErr is GetOrCacheValue for fallible computations: a
// returned error is propagated without caching, so a later call can
// succeed once external state is fixed.
func (c *CachedValue[T]) GetOrCacheValueErr(compute func() (T, error)) (T, error) {
	if c.computed {
		return c.value, nil
	}
	value, err := compute()
	if err != nil {
		var zero T
		return zero, err
	}
	c.value = value
	c.computed = true
	return c.value, nil
}
