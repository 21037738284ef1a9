//go:build !nogpu

// Package gpu implements colorcube.Host on a gogpu/wgpu HAL device.
//
// Each color cube becomes an RGBA32Float 3D texture with a trilinear,
// clamp-to-edge sampler. The grading shader (ShaderSource) samples it with
// texel-center remapping, so grid point i of an N-point axis is hit exactly
// at input value i/(N-1).
//
// Usage:
//
//	host, err := gpu.NewHostFromProvider(provider)
//	if err != nil {
//	    return err
//	}
//	defer host.Close()
//
//	b := colorcube.New(resolver, host)
//	h, err := b.BuildColorCube("warm", 33)
//	...
//	cube := h.Filter().(*gpu.ColorCube)
//
// Sampling an RGBA32Float texture with a filtering sampler requires the
// float32-filterable feature on most adapters.
package gpu
