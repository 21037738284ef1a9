package colorcube

import (
	"github.com/chewxy/math32"
	"golang.org/x/image/math/f32"
)

// ColorMatrix is a 4x5 color transformation matrix in row-major order:
//
//	[R']   [a00 a01 a02 a03 a04]   [R]
//	[G'] = [a10 a11 a12 a13 a14] * [G]
//	[B']   [a20 a21 a22 a23 a24]   [B]
//	[A']   [a30 a31 a32 a33 a34]   [A]
//	                               [1]
//
// Colors are straight (not premultiplied) values in [0, 1]; the fifth
// column is an offset in the same units.
//
// A ColorMatrix is baked into a LUT with Bake, so matrix grades can be
// shipped through the same color cube path as authored LUTs.
type ColorMatrix [20]float32

// Rec. 709 luminance weights.
const (
	lumR = 0.2126
	lumG = 0.7152
	lumB = 0.0722
)

// IdentityMatrix returns the matrix that leaves colors unchanged.
func IdentityMatrix() ColorMatrix {
	return ColorMatrix{
		1, 0, 0, 0, 0,
		0, 1, 0, 0, 0,
		0, 0, 1, 0, 0,
		0, 0, 0, 1, 0,
	}
}

// BrightnessMatrix scales RGB by factor.
// 0 is black, 1 unchanged, 2 twice as bright.
func BrightnessMatrix(factor float32) ColorMatrix {
	return ColorMatrix{
		factor, 0, 0, 0, 0,
		0, factor, 0, 0, 0,
		0, 0, factor, 0, 0,
		0, 0, 0, 1, 0,
	}
}

// ContrastMatrix scales RGB around mid-gray.
// 0 is flat gray, 1 unchanged, 2 high contrast.
func ContrastMatrix(factor float32) ColorMatrix {
	offset := 0.5 * (1 - factor)
	return ColorMatrix{
		factor, 0, 0, 0, offset,
		0, factor, 0, 0, offset,
		0, 0, factor, 0, offset,
		0, 0, 0, 1, 0,
	}
}

// SaturationMatrix blends between luminance (0) and the original color (1).
func SaturationMatrix(factor float32) ColorMatrix {
	inv := 1 - factor
	return ColorMatrix{
		lumR*inv + factor, lumG * inv, lumB * inv, 0, 0,
		lumR * inv, lumG*inv + factor, lumB * inv, 0, 0,
		lumR * inv, lumG * inv, lumB*inv + factor, 0, 0,
		0, 0, 0, 1, 0,
	}
}

// GrayscaleMatrix converts to Rec. 709 luminance.
func GrayscaleMatrix() ColorMatrix {
	return SaturationMatrix(0)
}

// SepiaMatrix applies a sepia tone.
func SepiaMatrix() ColorMatrix {
	return ColorMatrix{
		0.393, 0.769, 0.189, 0, 0,
		0.349, 0.686, 0.168, 0, 0,
		0.272, 0.534, 0.131, 0, 0,
		0, 0, 0, 1, 0,
	}
}

// InvertMatrix inverts RGB.
func InvertMatrix() ColorMatrix {
	return ColorMatrix{
		-1, 0, 0, 0, 1,
		0, -1, 0, 0, 1,
		0, 0, -1, 0, 1,
		0, 0, 0, 1, 0,
	}
}

// HueRotateMatrix rotates hue by degrees around the luminance axis.
func HueRotateMatrix(degrees float32) ColorMatrix {
	rad := degrees * math32.Pi / 180
	c := math32.Cos(rad)
	s := math32.Sin(rad)

	const (
		r = 0.213
		g = 0.715
		b = 0.072
	)
	return ColorMatrix{
		r + c*(1-r) - s*r, g - c*g - s*g, b - c*b + s*(1-b), 0, 0,
		r - c*r + s*0.143, g + c*(1-g) + s*0.140, b - c*b - s*0.283, 0, 0,
		r - c*r - s*(1-r), g - c*g + s*g, b + c*(1-b) + s*b, 0, 0,
		0, 0, 0, 1, 0,
	}
}

// Multiply returns the matrix applying m first, then other.
func (m ColorMatrix) Multiply(other ColorMatrix) ColorMatrix {
	var out ColorMatrix
	for row := range 4 {
		for col := range 4 {
			var sum float32
			for k := range 4 {
				sum += other[row*5+k] * m[k*5+col]
			}
			out[row*5+col] = sum
		}
		out[row*5+4] = other[row*5+0]*m[4] + other[row*5+1]*m[9] +
			other[row*5+2]*m[14] + other[row*5+3]*m[19] + other[row*5+4]
	}
	return out
}

// Transform applies the matrix to an opaque RGB color and clamps the result
// to [0, 1].
func (m ColorMatrix) Transform(c f32.Vec3) f32.Vec3 {
	var out f32.Vec3
	for row := range 3 {
		v := m[row*5+0]*c[0] + m[row*5+1]*c[1] + m[row*5+2]*c[2] + m[row*5+3] + m[row*5+4]
		out[row] = clamp01(v)
	}
	return out
}

// Bake samples the matrix on an n×n×n grid and returns the resulting LUT.
func (m ColorMatrix) Bake(n int) *Definition {
	def := Identity(n)
	def.Title = ""
	for i, s := range def.Samples {
		def.Samples[i] = m.Transform(s)
	}
	return def
}

func clamp01(v float32) float32 {
	return math32.Max(0, math32.Min(1, v))
}
