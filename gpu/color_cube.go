//go:build !nogpu

package gpu

import (
	"encoding/binary"
	"math"
	"sync"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// TextureFormat is the texel format of color cube textures.
const TextureFormat = gputypes.TextureFormatRGBA32Float

// UniformSize is the size in bytes of the grading shader's Params block.
const UniformSize = 16

// ColorCube is a color cube resident on the GPU: a 3D texture, its view and
// the sampler the grading shader binds it with.
type ColorCube struct {
	host      *Host
	label     string
	dimension int

	texture hal.Texture
	view    hal.TextureView
	sampler hal.Sampler

	release sync.Once
}

// Label returns the debug label of the texture.
func (c *ColorCube) Label() string { return c.label }

// Dimension returns the per-axis texel count.
func (c *ColorCube) Dimension() int { return c.dimension }

// Texture returns the 3D texture.
func (c *ColorCube) Texture() hal.Texture { return c.texture }

// View returns the 3D texture view bound at binding 2 of the grading shader.
func (c *ColorCube) View() hal.TextureView { return c.view }

// Sampler returns the trilinear sampler bound at binding 3.
func (c *ColorCube) Sampler() hal.Sampler { return c.sampler }

// Uniforms returns the Params block for the grading shader. intensity 0
// leaves the source unchanged, 1 applies the cube fully.
func (c *ColorCube) Uniforms(intensity float32) []byte {
	out := make([]byte, UniformSize)
	binary.LittleEndian.PutUint32(out[0:], math.Float32bits(float32(c.dimension)))
	binary.LittleEndian.PutUint32(out[4:], math.Float32bits(intensity))
	return out
}

// Release destroys the sampler, view and texture. Subsequent calls are no-ops.
func (c *ColorCube) Release() {
	c.release.Do(func() {
		d := c.host.device
		d.DestroySampler(c.sampler)
		d.DestroyTextureView(c.view)
		d.DestroyTexture(c.texture)
		c.sampler, c.view, c.texture = nil, nil, nil
		c.host.live.Add(-1)
	})
}
