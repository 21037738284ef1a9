//go:build !nogpu

package gpu

import (
	_ "embed"
	"encoding/binary"
	"fmt"

	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/hal"
)

//go:embed shaders/color_cube.wgsl
var colorCubeShader string

// Shader entry points.
const (
	VertexEntryPoint   = "vs_main"
	FragmentEntryPoint = "fs_main"
)

// Bindings of the grading shader, all in group 0.
const (
	BindingSource        = 0
	BindingSourceSampler = 1
	BindingCube          = 2
	BindingCubeSampler   = 3
	BindingParams        = 4
)

// ShaderSource returns the WGSL source of the grading shader.
func ShaderSource() string {
	return colorCubeShader
}

// CompileShader compiles the grading shader to SPIR-V words.
func CompileShader() ([]uint32, error) {
	spirv, err := naga.Compile(colorCubeShader)
	if err != nil {
		return nil, fmt.Errorf("gpu: compile color cube shader: %w", err)
	}
	if len(spirv)%4 != 0 {
		return nil, fmt.Errorf("gpu: SPIR-V length %d is not a multiple of 4", len(spirv))
	}
	words := make([]uint32, len(spirv)/4)
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(spirv[i*4:])
	}
	return words, nil
}

// ShaderModule returns the grading shader module, creating it on first use.
// It is destroyed by Close. A failed creation is retried on the next call.
func (h *Host) ShaderModule() (hal.ShaderModule, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return nil, ErrHostClosed
	}
	if h.shader != nil {
		return h.shader, nil
	}
	module, err := h.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  "colorcube_shader",
		Source: hal.ShaderSource{WGSL: colorCubeShader},
	})
	if err != nil {
		return nil, fmt.Errorf("gpu: create color cube shader: %w", err)
	}
	h.shader = module
	return module, nil
}
