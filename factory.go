package colorcube

import "fmt"

// Factory binds color cube buffers to host filters.
type Factory struct {
	host Host
}

// NewFactory returns a Factory creating filters on host.
func NewFactory(host Host) *Factory {
	return &Factory{host: host}
}

// MaxDimension returns the largest dimension Create accepts: the smaller of
// MaxDimension and the host's limit. It is 0 without a host.
func (f *Factory) MaxDimension() int {
	if f.host == nil {
		return 0
	}
	return min(MaxDimension, f.host.MaxDimension())
}

// CheckDimension returns ErrUnsupportedDimension if n is below MinDimension
// or above MaxDimension, and ErrHostCreationFailed if there is no host.
func (f *Factory) CheckDimension(n int) error {
	if f.host == nil {
		return fmt.Errorf("%w: no host", ErrHostCreationFailed)
	}
	if n < MinDimension {
		return fmt.Errorf("%w: %d has no interpolation volume (minimum %d)", ErrUnsupportedDimension, n, MinDimension)
	}
	if limit := f.MaxDimension(); n > limit {
		return fmt.Errorf("%w: %d exceeds host maximum %d", ErrUnsupportedDimension, n, limit)
	}
	return nil
}

// Create hands buf to the host and returns the resulting Handle.
//
// The dimension is checked before the host is called. Host failures are
// returned wrapped in ErrHostCreationFailed. Nothing is retried. The caller
// must not modify buf afterwards.
func (f *Factory) Create(name string, buf *Buffer) (*Handle, error) {
	if buf == nil {
		return nil, fmt.Errorf("%w: nil buffer", ErrDimensionMismatch)
	}
	if err := f.CheckDimension(buf.Dimension); err != nil {
		return nil, err
	}
	if want := cube(buf.Dimension) * Channels; len(buf.Data) != want {
		return nil, fmt.Errorf("%w: buffer holds %d elements, want %d", ErrDimensionMismatch, len(buf.Data), want)
	}

	filter, err := f.host.CreateColorCube(name, buf)
	if err != nil {
		Logger().Warn("colorcube: host creation failed", "name", name, "dimension", buf.Dimension, "err", err)
		return nil, fmt.Errorf("%w: %w", ErrHostCreationFailed, err)
	}

	return &Handle{name: name, buffer: buf, filter: filter}, nil
}
