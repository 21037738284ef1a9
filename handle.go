package colorcube

import "sync"

// Handle associates a color cube with the host filter created from it.
// The filter's lifetime is governed by the host; Release hands it back.
type Handle struct {
	name    string
	buffer  *Buffer
	filter  Filter
	release sync.Once
}

// Name returns the LUT name the handle was built from.
func (h *Handle) Name() string { return h.name }

// Dimension returns the per-axis sample count of the cube.
func (h *Handle) Dimension() int { return h.buffer.Dimension }

// Buffer returns the buffer given to the host. It must not be modified.
func (h *Handle) Buffer() *Buffer { return h.buffer }

// Filter returns the host filter object.
func (h *Handle) Filter() Filter { return h.filter }

// Release releases the host filter. Subsequent calls are no-ops.
func (h *Handle) Release() {
	h.release.Do(func() {
		if h.filter != nil {
			h.filter.Release()
		}
	})
}
