package colorcube

// Option configures a Builder during creation.
//
// Example:
//
//	b := colorcube.New(resolver, host,
//	    colorcube.WithBufferCache(64),
//	    colorcube.WithMaxDimension(65),
//	)
type Option func(*options)

// options holds optional Builder configuration.
type options struct {
	cacheCapacity int
	maxDimension  int
	workers       int
}

// defaultOptions returns the default Builder options: no cache and no
// dimension cap beyond the host's.
func defaultOptions() options {
	return options{}
}

// WithBufferCache keeps up to roughly capacity built buffers, keyed by LUT
// name and dimension, so repeated builds skip resolving and parsing.
// Cached buffers are shared between handles and are never modified.
//
// A capacity <= 0 disables the cache.
func WithBufferCache(capacity int) Option {
	return func(o *options) {
		o.cacheCapacity = capacity
	}
}

// WithMaxDimension caps the accepted dimension below the host's limit.
// A value <= 0 removes the cap.
func WithMaxDimension(n int) Option {
	return func(o *options) {
		o.maxDimension = n
	}
}

// WithWorkers sets the number of goroutines Preload uses.
// A value <= 0 uses GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}
