package colorcube

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/gogpu/colorcube/internal/cache"
	"github.com/gogpu/colorcube/internal/parallel"
)

// Builder turns named LUT resources into color cube handles:
// Resolve → Parse → Build → Create.
//
// A Builder holds no per-request state and is safe for concurrent use as
// long as its Resolver and Host are.
type Builder struct {
	resolver     Resolver
	factory      *Factory
	maxDimension int
	workers      int
	buffers      *cache.Cache[cubeKey, *Buffer]
}

// cubeKey identifies a built buffer in the buffer cache.
type cubeKey struct {
	name      string
	dimension int
}

func hashCubeKey(k cubeKey) uint64 {
	return cache.StringHasher(k.name) ^ uint64(k.dimension)*0x9e3779b97f4a7c15 //nolint:gosec // dimension is positive
}

// New creates a Builder reading LUTs from resolver and creating filters on host.
func New(resolver Resolver, host Host, opts ...Option) *Builder {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	b := &Builder{
		resolver:     resolver,
		factory:      NewFactory(host),
		maxDimension: o.maxDimension,
		workers:      o.workers,
	}
	if o.cacheCapacity > 0 {
		b.buffers = cache.New[cubeKey, *Buffer](o.cacheCapacity, hashCubeKey)
	}
	return b
}

// BuildColorCube resolves the LUT called name, parses it as a cube of the
// given dimension, builds its buffer and creates the host filter.
//
// Failures are *Error values naming the stage; errors.Is classifies them
// against the Err* sentinels. Nothing is retried.
func (b *Builder) BuildColorCube(name string, dimension int) (*Handle, error) {
	buf, err := b.Buffer(name, dimension)
	if err != nil {
		return nil, err
	}

	h, err := b.factory.Create(name, buf)
	if err != nil {
		return nil, &Error{Stage: StageCreate, Name: name, Err: err}
	}
	Logger().Debug("colorcube: created", "name", name, "dimension", dimension)
	return h, nil
}

// Buffer runs Resolve → Parse → Build for name without creating a host
// filter. The returned buffer must not be modified; with a buffer cache it
// may be shared with other callers.
func (b *Builder) Buffer(name string, dimension int) (*Buffer, error) {
	if err := b.CheckDimension(dimension); err != nil {
		return nil, &Error{Stage: StageCreate, Name: name, Err: err}
	}

	key := cubeKey{name: name, dimension: dimension}
	if b.buffers != nil {
		if buf, ok := b.buffers.Get(key); ok {
			Logger().Debug("colorcube: buffer cache hit", "name", name, "dimension", dimension)
			return buf, nil
		}
	}

	data, err := b.resolve(name)
	if err != nil {
		return nil, &Error{Stage: StageResolve, Name: name, Err: err}
	}
	Logger().Debug("colorcube: resolved", "name", name, "bytes", len(data))

	def, err := Parse(data, dimension)
	if err != nil {
		return nil, &Error{Stage: StageParse, Name: name, Err: err}
	}
	Logger().Debug("colorcube: parsed", "name", name, "dimension", def.Dimension,
		"samples", def.Len(), "alpha", def.HasAlpha())

	buf, err := NewBuffer(def)
	if err != nil {
		return nil, &Error{Stage: StageBuild, Name: name, Err: err}
	}

	if b.buffers != nil {
		b.buffers.Set(key, buf)
	}
	return buf, nil
}

// Preload runs Resolve → Parse → Build for every name concurrently, filling
// the buffer cache. It returns the failures joined with errors.Join, one
// *Error per failed name. Without a buffer cache the buffers are discarded,
// which still validates the LUTs.
func (b *Builder) Preload(dimension int, names ...string) error {
	if len(names) == 0 {
		return nil
	}
	errs := make([]error, len(names))
	work := make([]func(), len(names))
	for i, name := range names {
		work[i] = func() {
			_, errs[i] = b.Buffer(name, dimension)
		}
	}

	workers := b.workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	pool := parallel.NewWorkerPool(min(workers, len(names)))
	defer pool.Close()
	pool.ExecuteAll(work)

	err := errors.Join(errs...)
	if err != nil {
		Logger().Warn("colorcube: preload failed", "dimension", dimension, "names", len(names), "err", err)
	}
	return err
}

// CheckDimension returns ErrUnsupportedDimension if n cannot be built by
// this Builder.
func (b *Builder) CheckDimension(n int) error {
	if err := b.factory.CheckDimension(n); err != nil {
		return err
	}
	if b.maxDimension > 0 && n > b.maxDimension {
		return fmt.Errorf("%w: %d exceeds configured maximum %d", ErrUnsupportedDimension, n, b.maxDimension)
	}
	return nil
}

// Forget drops any cached buffer for name at every dimension.
// It is a no-op without a buffer cache.
func (b *Builder) Forget(name string) {
	if b.buffers == nil {
		return
	}
	for n := MinDimension; n <= MaxDimension; n++ {
		b.buffers.Delete(cubeKey{name: name, dimension: n})
	}
}

// CacheStats is a snapshot of buffer cache counters.
type CacheStats struct {
	Len      int
	Capacity int
	Hits     uint64
	Misses   uint64
}

// CacheStats returns buffer cache counters. ok is false without a cache.
func (b *Builder) CacheStats() (stats CacheStats, ok bool) {
	if b.buffers == nil {
		return CacheStats{}, false
	}
	s := b.buffers.Stats()
	return CacheStats{Len: s.Len, Capacity: s.Capacity, Hits: s.Hits, Misses: s.Misses}, true
}

// resolve fetches the LUT bytes, classifying every resolver failure as
// ErrResourceNotFound.
func (b *Builder) resolve(name string) ([]byte, error) {
	if b.resolver == nil {
		return nil, fmt.Errorf("%w: no resolver", ErrResourceNotFound)
	}
	data, err := b.resolver.Resolve(name)
	if err != nil {
		if !errors.Is(err, ErrResourceNotFound) {
			err = fmt.Errorf("%w: %w", ErrResourceNotFound, err)
		}
		return nil, err
	}
	return data, nil
}

// BuildColorCube is a one-shot helper building a single handle with a
// default Builder.
func BuildColorCube(resolver Resolver, host Host, name string, dimension int) (*Handle, error) {
	return New(resolver, host).BuildColorCube(name, dimension)
}
