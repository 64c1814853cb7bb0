package resolver

import "github.com/fluentgen/fluentgen/internal/typeinfo"

// cacheKey identifies one resolution: the handle's identity plus a
// fingerprint of the generic bindings in effect. The same type resolved under
// different bindings is a different entry.
type cacheKey struct {
	typeID  uint64
	context string
}

// resolutionCache memoizes resolved types and tracks types currently being
// descended into. Reservations are made before recursing into children, so a
// self-referential structure resolving itself finds the marker and
// substitutes a by-name reference instead of looping. Scoped to a single
// top-level resolution call.
type resolutionCache struct {
	entries map[cacheKey]typeinfo.TypeInfo
	// visiting maps a reserved key to the name to reference on re-entry.
	visiting map[cacheKey]string
}

func newResolutionCache() *resolutionCache {
	return &resolutionCache{
		entries:  make(map[cacheKey]typeinfo.TypeInfo),
		visiting: make(map[cacheKey]string),
	}
}

func (c *resolutionCache) lookup(key cacheKey) (typeinfo.TypeInfo, bool) {
	t, ok := c.entries[key]
	return t, ok
}

// reserve marks key as in-flight before child recursion begins.
func (c *resolutionCache) reserve(key cacheKey, name string) {
	c.visiting[key] = name
}

// reserved reports whether key is currently being resolved, returning the
// name to substitute.
func (c *resolutionCache) reserved(key cacheKey) (string, bool) {
	name, ok := c.visiting[key]
	return name, ok
}

// store records the final result and clears the reservation.
func (c *resolutionCache) store(key cacheKey, t typeinfo.TypeInfo) {
	delete(c.visiting, key)
	c.entries[key] = t
}

// release drops a reservation without storing (error paths).
func (c *resolutionCache) release(key cacheKey) {
	delete(c.visiting, key)
}

// reset clears all entries and reservations.
func (c *resolutionCache) reset() {
	c.entries = make(map[cacheKey]typeinfo.TypeInfo)
	c.visiting = make(map[cacheKey]string)
}
