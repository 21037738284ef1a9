package colorcube

// Host is the image-processing engine that turns a color cube buffer into a
// filter object. Trilinear interpolation at draw time is the host's concern.
//
// Implementations must not modify the Buffer and must be safe for
// concurrent use if the Builder using them is.
type Host interface {
	// MaxDimension returns the largest cube dimension the host can create.
	MaxDimension() int

	// CreateColorCube creates a filter for buf. The name identifies the
	// source LUT for host diagnostics and caching only.
	CreateColorCube(name string, buf *Buffer) (Filter, error)
}

// Filter is a host filter object created from a color cube.
type Filter interface {
	// Release frees host resources held by the filter.
	Release()
}
