// Package cache provides the sharded LRU cache used to keep built color
// cube buffers across repeated lookups of the same LUT.
//
//	c := cache.New[string, *colorcube.Buffer](64, cache.StringHasher)
//	c.Set("warm", buf)
//	buf, ok := c.Get("warm")
//
// Keys are spread over 16 shards by hash, each with its own mutex and LRU
// list, so concurrent builds of different LUTs rarely contend.
//
// Cache is safe for concurrent use and must not be copied after creation.
package cache
