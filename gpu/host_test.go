//go:build !nogpu

package gpu

import (
	"errors"
	"sync"
	"testing"

	"github.com/gogpu/colorcube"
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/hal/noop"
)

// createNoopDevice creates a noop device and queue for testing.
func createNoopDevice(t *testing.T) (hal.Device, hal.Queue) {
	t.Helper()
	api := noop.API{}
	instance, err := api.CreateInstance(nil)
	if err != nil {
		t.Fatalf("CreateInstance failed: %v", err)
	}
	adapters := instance.EnumerateAdapters(nil)
	openDev, err := adapters[0].Adapter.Open(0, gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() {
		openDev.Device.Destroy()
		instance.Destroy()
	})
	return openDev.Device, openDev.Queue
}

// recordingDevice wraps a device, counting destroys and optionally failing
// one creation step.
type recordingDevice struct {
	hal.Device

	failTexture bool
	failView    bool
	failSampler bool

	mu        sync.Mutex
	destroyed map[string]int
}

var errInjected = errors.New("injected failure")

func (d *recordingDevice) count(kind string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.destroyed == nil {
		d.destroyed = map[string]int{}
	}
	d.destroyed[kind]++
}

func (d *recordingDevice) destroys(kind string) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.destroyed[kind]
}

func (d *recordingDevice) CreateTexture(desc *hal.TextureDescriptor) (hal.Texture, error) {
	if d.failTexture {
		return nil, errInjected
	}
	return d.Device.CreateTexture(desc)
}

func (d *recordingDevice) CreateTextureView(tex hal.Texture, desc *hal.TextureViewDescriptor) (hal.TextureView, error) {
	if d.failView {
		return nil, errInjected
	}
	return d.Device.CreateTextureView(tex, desc)
}

func (d *recordingDevice) CreateSampler(desc *hal.SamplerDescriptor) (hal.Sampler, error) {
	if d.failSampler {
		return nil, errInjected
	}
	return d.Device.CreateSampler(desc)
}

func (d *recordingDevice) DestroyTexture(tex hal.Texture) {
	d.count("texture")
	d.Device.DestroyTexture(tex)
}

func (d *recordingDevice) DestroyTextureView(view hal.TextureView) {
	d.count("view")
	d.Device.DestroyTextureView(view)
}

func (d *recordingDevice) DestroySampler(s hal.Sampler) {
	d.count("sampler")
	d.Device.DestroySampler(s)
}

// failingQueue rejects every texture upload.
type failingQueue struct {
	hal.Queue
}

func (failingQueue) WriteTexture(*hal.ImageCopyTexture, []byte, *hal.ImageDataLayout, *hal.Extent3D) error {
	return errInjected
}

func identityBuffer(t *testing.T, n int) *colorcube.Buffer {
	t.Helper()
	buf, err := colorcube.NewBuffer(colorcube.Identity(n))
	if err != nil {
		t.Fatalf("NewBuffer: %v", err)
	}
	return buf
}

func TestNewHostRejectsNil(t *testing.T) {
	if _, err := NewHost(nil, nil); err == nil {
		t.Error("NewHost(nil, nil) succeeded")
	}
}

func TestHostMaxDimension(t *testing.T) {
	device, queue := createNoopDevice(t)

	h, err := NewHost(device, queue)
	if err != nil {
		t.Fatalf("NewHost: %v", err)
	}
	if want := int(gputypes.DefaultLimits().MaxTextureDimension3D); h.MaxDimension() != want {
		t.Errorf("MaxDimension() = %d, want %d", h.MaxDimension(), want)
	}

	limits := gputypes.DefaultLimits()
	limits.MaxTextureDimension3D = 16
	h, err = NewHost(device, queue, WithLimits(limits))
	if err != nil {
		t.Fatalf("NewHost: %v", err)
	}
	if h.MaxDimension() != 16 {
		t.Errorf("MaxDimension() = %d, want 16", h.MaxDimension())
	}
}

func TestCreateColorCube(t *testing.T) {
	device, queue := createNoopDevice(t)
	rec := &recordingDevice{Device: device}
	h, err := NewHost(rec, queue)
	if err != nil {
		t.Fatalf("NewHost: %v", err)
	}

	f, err := h.CreateColorCube("warm", identityBuffer(t, 17))
	if err != nil {
		t.Fatalf("CreateColorCube: %v", err)
	}
	cube, ok := f.(*ColorCube)
	if !ok {
		t.Fatalf("filter is %T, want *ColorCube", f)
	}
	if cube.Texture() == nil || cube.View() == nil || cube.Sampler() == nil {
		t.Error("color cube is missing GPU resources")
	}
	if cube.Dimension() != 17 || cube.Label() != "colorcube_warm" {
		t.Errorf("cube = (%d, %q), want (17, \"colorcube_warm\")", cube.Dimension(), cube.Label())
	}
	if h.Live() != 1 {
		t.Errorf("Live() = %d, want 1", h.Live())
	}

	cube.Release()
	cube.Release()

	for _, kind := range []string{"texture", "view", "sampler"} {
		if got := rec.destroys(kind); got != 1 {
			t.Errorf("%s destroyed %d times, want 1", kind, got)
		}
	}
	if h.Live() != 0 {
		t.Errorf("Live() = %d after release, want 0", h.Live())
	}
}

func TestCreateColorCubeCleansUp(t *testing.T) {
	tests := []struct {
		name      string
		dev       func(hal.Device) *recordingDevice
		failWrite bool
		destroyed map[string]int
	}{
		{
			name:      "texture",
			dev:       func(d hal.Device) *recordingDevice { return &recordingDevice{Device: d, failTexture: true} },
			destroyed: map[string]int{"texture": 0, "view": 0, "sampler": 0},
		},
		{
			name:      "view",
			dev:       func(d hal.Device) *recordingDevice { return &recordingDevice{Device: d, failView: true} },
			destroyed: map[string]int{"texture": 1, "view": 0, "sampler": 0},
		},
		{
			name:      "sampler",
			dev:       func(d hal.Device) *recordingDevice { return &recordingDevice{Device: d, failSampler: true} },
			destroyed: map[string]int{"texture": 1, "view": 1, "sampler": 0},
		},
		{
			name:      "upload",
			dev:       func(d hal.Device) *recordingDevice { return &recordingDevice{Device: d} },
			failWrite: true,
			destroyed: map[string]int{"texture": 1, "view": 1, "sampler": 1},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			device, queue := createNoopDevice(t)
			rec := tt.dev(device)
			if tt.failWrite {
				queue = failingQueue{Queue: queue}
			}
			h, err := NewHost(rec, queue)
			if err != nil {
				t.Fatalf("NewHost: %v", err)
			}

			f, err := h.CreateColorCube("x", identityBuffer(t, 2))
			if f != nil {
				t.Error("CreateColorCube returned a filter alongside an error")
			}
			if !errors.Is(err, errInjected) {
				t.Fatalf("CreateColorCube error = %v, want errInjected", err)
			}
			for kind, want := range tt.destroyed {
				if got := rec.destroys(kind); got != want {
					t.Errorf("%s destroyed %d times, want %d", kind, got, want)
				}
			}
			if h.Live() != 0 {
				t.Errorf("Live() = %d after failure, want 0", h.Live())
			}
		})
	}
}

func TestHostUploadFailureIsHostCreationFailed(t *testing.T) {
	device, queue := createNoopDevice(t)
	h, err := NewHost(device, failingQueue{Queue: queue})
	if err != nil {
		t.Fatalf("NewHost: %v", err)
	}

	text, err := colorcube.Identity(2).MarshalText()
	if err != nil {
		t.Fatalf("MarshalText: %v", err)
	}
	_, err = colorcube.New(colorcube.MapResolver{"id": text}, h).BuildColorCube("id", 2)
	if !errors.Is(err, colorcube.ErrHostCreationFailed) || !errors.Is(err, errInjected) {
		t.Errorf("BuildColorCube = %v, want ErrHostCreationFailed wrapping the upload error", err)
	}
	if h.Live() != 0 {
		t.Errorf("Live() = %d, want 0", h.Live())
	}
}

func TestHostWithPipeline(t *testing.T) {
	device, queue := createNoopDevice(t)
	limits := gputypes.DefaultLimits()
	limits.MaxTextureDimension3D = 8
	h, err := NewHost(device, queue, WithLimits(limits))
	if err != nil {
		t.Fatalf("NewHost: %v", err)
	}
	defer h.Close()

	text, err := colorcube.Identity(8).MarshalText()
	if err != nil {
		t.Fatalf("MarshalText: %v", err)
	}
	luts := colorcube.MapResolver{"id8": text, "id9": []byte("LUT_3D_SIZE 9\n")}
	b := colorcube.New(luts, h)

	handle, err := b.BuildColorCube("id8", 8)
	if err != nil {
		t.Fatalf("BuildColorCube: %v", err)
	}
	if _, ok := handle.Filter().(*ColorCube); !ok {
		t.Errorf("filter is %T, want *ColorCube", handle.Filter())
	}
	handle.Release()

	_, err = b.BuildColorCube("id9", 9)
	if !errors.Is(err, colorcube.ErrUnsupportedDimension) {
		t.Errorf("BuildColorCube above the device limit = %v, want ErrUnsupportedDimension", err)
	}
	if h.Live() != 0 {
		t.Errorf("Live() = %d, want 0", h.Live())
	}
}

func TestUniforms(t *testing.T) {
	device, queue := createNoopDevice(t)
	h, err := NewHost(device, queue)
	if err != nil {
		t.Fatalf("NewHost: %v", err)
	}
	f, err := h.CreateColorCube("u", identityBuffer(t, 33))
	if err != nil {
		t.Fatalf("CreateColorCube: %v", err)
	}
	defer f.Release()

	u := f.(*ColorCube).Uniforms(0.5)
	want := []byte{0, 0, 0x04, 0x42, 0, 0, 0, 0x3f, 0, 0, 0, 0, 0, 0, 0, 0}
	if string(u) != string(want) {
		t.Errorf("Uniforms(0.5) = % x, want % x", u, want)
	}
}

type stubDevice struct{}

func (stubDevice) Poll(bool) {}
func (stubDevice) Destroy()  {}

// plainProvider is a gpucontext.DeviceProvider without HAL access.
type plainProvider struct{}

func (plainProvider) Device() gpucontext.Device             { return stubDevice{} }
func (plainProvider) Queue() gpucontext.Queue               { return nil }
func (plainProvider) Adapter() gpucontext.Adapter           { return nil }
func (plainProvider) SurfaceFormat() gputypes.TextureFormat { return gputypes.TextureFormatBGRA8Unorm }
func (plainProvider) AdapterInfo() gpucontext.AdapterInfo   { return gpucontext.AdapterInfo{} }

// mockProvider also exposes HAL types, like a gogpu window does.
type mockProvider struct {
	plainProvider
	device any
	queue  any
}

func (p *mockProvider) HalDevice() any { return p.device }
func (p *mockProvider) HalQueue() any  { return p.queue }

func TestNewHostFromProvider(t *testing.T) {
	device, queue := createNoopDevice(t)

	h, err := NewHostFromProvider(&mockProvider{device: device, queue: queue})
	if err != nil {
		t.Fatalf("NewHostFromProvider: %v", err)
	}
	if h.device != device {
		t.Error("host does not use the provider's device")
	}

	tests := []struct {
		name     string
		provider gpucontext.DeviceProvider
	}{
		{"wrong device type", &mockProvider{device: "device", queue: queue}},
		{"nil queue", &mockProvider{device: device}},
		{"no hal accessors", plainProvider{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewHostFromProvider(tt.provider); !errors.Is(err, ErrNoHALAccess) {
				t.Errorf("NewHostFromProvider error = %v, want ErrNoHALAccess", err)
			}
		})
	}
}
