//go:build !nogpu

package gpu

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/gogpu/colorcube"
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// ErrNoHALAccess is returned by NewHostFromProvider when the provider does
// not expose its HAL device and queue.
var ErrNoHALAccess = errors.New("gpu: provider does not expose HAL types")

// ErrHostClosed is returned by a Host after Close.
var ErrHostClosed = errors.New("gpu: host closed")

// Host creates color cube textures on a HAL device. It implements
// colorcube.Host and is safe for concurrent use.
type Host struct {
	device hal.Device
	queue  hal.Queue
	limits gputypes.Limits

	live atomic.Int64

	mu     sync.Mutex
	shader hal.ShaderModule
	closed bool
}

// HostOption configures a Host.
type HostOption func(*Host)

// WithLimits sets the device limits the host respects. By default the host
// assumes gputypes.DefaultLimits.
func WithLimits(limits gputypes.Limits) HostOption {
	return func(h *Host) {
		h.limits = limits
	}
}

// NewHost returns a Host using device and queue. The host does not own them.
func NewHost(device hal.Device, queue hal.Queue, opts ...HostOption) (*Host, error) {
	if device == nil || queue == nil {
		return nil, errors.New("gpu: nil device or queue")
	}
	h := &Host{
		device: device,
		queue:  queue,
		limits: gputypes.DefaultLimits(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h, nil
}

// NewHostFromProvider returns a Host sharing the device of an external
// provider such as a gogpu window. The provider must also implement
// HalDevice() any and HalQueue() any returning hal.Device and hal.Queue.
func NewHostFromProvider(provider gpucontext.DeviceProvider, opts ...HostOption) (*Host, error) {
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return nil, ErrNoHALAccess
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, fmt.Errorf("%w: HalDevice is not hal.Device", ErrNoHALAccess)
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, fmt.Errorf("%w: HalQueue is not hal.Queue", ErrNoHALAccess)
	}
	return NewHost(device, queue, opts...)
}

// MaxDimension returns the largest 3D texture extent of the device.
func (h *Host) MaxDimension() int {
	return int(h.limits.MaxTextureDimension3D)
}

// Live returns the number of color cubes created and not yet released.
func (h *Host) Live() int {
	return int(h.live.Load())
}

// CreateColorCube uploads buf into a new 3D texture and returns the
// resulting *ColorCube.
func (h *Host) CreateColorCube(name string, buf *colorcube.Buffer) (colorcube.Filter, error) {
	if h.isClosed() {
		return nil, ErrHostClosed
	}
	n := uint32(buf.Dimension) //nolint:gosec // validated by colorcube.Factory
	if int(n) > h.MaxDimension() {
		return nil, fmt.Errorf("gpu: dimension %d exceeds device limit %d", n, h.MaxDimension())
	}
	label := "colorcube_" + name

	tex, err := h.device.CreateTexture(&hal.TextureDescriptor{
		Label:         label,
		Size:          hal.Extent3D{Width: n, Height: n, DepthOrArrayLayers: n},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension3D,
		Format:        TextureFormat,
		Usage:         gputypes.TextureUsageTextureBinding | gputypes.TextureUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("create texture: %w", err)
	}

	view, err := h.device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label:         label + "_view",
		Format:        TextureFormat,
		Dimension:     gputypes.TextureViewDimension3D,
		Aspect:        gputypes.TextureAspectAll,
		MipLevelCount: 1,
	})
	if err != nil {
		h.device.DestroyTexture(tex)
		return nil, fmt.Errorf("create texture view: %w", err)
	}

	sampler, err := h.device.CreateSampler(&hal.SamplerDescriptor{
		Label:        label + "_sampler",
		AddressModeU: gputypes.AddressModeClampToEdge,
		AddressModeV: gputypes.AddressModeClampToEdge,
		AddressModeW: gputypes.AddressModeClampToEdge,
		MagFilter:    gputypes.FilterModeLinear,
		MinFilter:    gputypes.FilterModeLinear,
		MipmapFilter: gputypes.FilterModeNearest,
	})
	if err != nil {
		h.device.DestroyTextureView(view)
		h.device.DestroyTexture(tex)
		return nil, fmt.Errorf("create sampler: %w", err)
	}

	err = h.queue.WriteTexture(
		&hal.ImageCopyTexture{
			Texture:  tex,
			MipLevel: 0,
		},
		buf.Bytes(),
		&hal.ImageDataLayout{
			Offset:       0,
			BytesPerRow:  uint32(buf.BytesPerRow()), //nolint:gosec // at most 256*16
			RowsPerImage: n,
		},
		&hal.Extent3D{Width: n, Height: n, DepthOrArrayLayers: n},
	)
	if err != nil {
		h.device.DestroySampler(sampler)
		h.device.DestroyTextureView(view)
		h.device.DestroyTexture(tex)
		return nil, fmt.Errorf("write texture: %w", err)
	}

	h.live.Add(1)
	colorcube.Logger().Debug("gpu: color cube uploaded", "name", name, "dimension", n,
		"bytes", len(buf.Data)*4)

	return &ColorCube{
		host:      h,
		label:     label,
		dimension: buf.Dimension,
		texture:   tex,
		view:      view,
		sampler:   sampler,
	}, nil
}

func (h *Host) isClosed() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.closed
}

// Close destroys host-owned resources. Color cubes must be released first;
// the device and queue are left alone. Later ShaderModule and
// CreateColorCube calls return ErrHostClosed.
func (h *Host) Close() {
	h.mu.Lock()
	h.closed = true
	if h.shader != nil {
		h.device.DestroyShaderModule(h.shader)
		h.shader = nil
	}
	h.mu.Unlock()

	if n := h.live.Load(); n > 0 {
		colorcube.Logger().Warn("gpu: host closed with live color cubes", "live", n)
	}
}
