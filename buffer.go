package colorcube

import (
	"encoding/binary"
	"fmt"
	"math"

	"golang.org/x/image/math/f32"
)

// Channels is the number of float32 elements per sample in a Buffer.
const Channels = 4

// BytesPerSample is the size of one RGBA float32 sample in Buffer.Bytes.
const BytesPerSample = Channels * 4

// Buffer is the flat color cube consumed by the render-time filter.
//
// Data holds Dimension^3 samples of four float32 elements each, in R, G, B,
// A order, with samples in definition order (red fastest, then green, then
// blue). Viewed as a 3D texture, x is red, y is green and z is blue.
//
// Once a Buffer is handed to a Host the caller must not modify it.
type Buffer struct {
	Dimension int
	Data      []float32
}

// NewBuffer expands a Definition into a Buffer.
//
// Each RGB sample is copied bit for bit and followed by its alpha: the
// definition's alpha when present, 1.0 otherwise. Nothing is reordered or
// interpolated. It returns ErrDimensionMismatch if the definition does not
// hold Dimension^3 samples.
func NewBuffer(def *Definition) (*Buffer, error) {
	if def == nil {
		return nil, fmt.Errorf("%w: nil definition", ErrDimensionMismatch)
	}
	if def.Dimension < 1 || def.Dimension > MaxDimension {
		return nil, fmt.Errorf("%w: dimension %d", ErrDimensionMismatch, def.Dimension)
	}
	want := cube(def.Dimension)
	if len(def.Samples) != want {
		return nil, fmt.Errorf("%w: %d samples for dimension %d, want %d",
			ErrDimensionMismatch, len(def.Samples), def.Dimension, want)
	}
	if def.Alpha != nil && len(def.Alpha) != want {
		return nil, fmt.Errorf("%w: %d alpha values for %d samples",
			ErrDimensionMismatch, len(def.Alpha), want)
	}

	data := make([]float32, want*Channels)
	for i, s := range def.Samples {
		o := i * Channels
		data[o+0] = s[0]
		data[o+1] = s[1]
		data[o+2] = s[2]
		if def.Alpha != nil {
			data[o+3] = def.Alpha[i]
		} else {
			data[o+3] = 1
		}
	}

	return &Buffer{Dimension: def.Dimension, Data: data}, nil
}

// Len returns the number of float32 elements, 4*Dimension^3.
func (buf *Buffer) Len() int {
	return len(buf.Data)
}

// At returns the RGBA sample stored for grid point (r, g, b).
// It panics if a coordinate is outside [0, Dimension).
func (buf *Buffer) At(r, g, b int) f32.Vec4 {
	o := sampleIndex(buf.Dimension, r, g, b) * Channels
	return f32.Vec4{buf.Data[o], buf.Data[o+1], buf.Data[o+2], buf.Data[o+3]}
}

// BytesPerRow returns the byte stride of one row of red samples.
func (buf *Buffer) BytesPerRow() int {
	return buf.Dimension * BytesPerSample
}

// Bytes returns the buffer as little-endian IEEE-754 float32 values, the
// layout uploaded to an RGBA32Float 3D texture with BytesPerRow bytes per
// row and Dimension rows per image.
func (buf *Buffer) Bytes() []byte {
	out := make([]byte, 0, len(buf.Data)*4)
	for _, v := range buf.Data {
		out = binary.LittleEndian.AppendUint32(out, math.Float32bits(v))
	}
	return out
}

// Equal reports whether two buffers have the same dimension and bit-identical data.
func (buf *Buffer) Equal(other *Buffer) bool {
	if buf == nil || other == nil {
		return buf == other
	}
	if buf.Dimension != other.Dimension || len(buf.Data) != len(other.Data) {
		return false
	}
	for i, v := range buf.Data {
		if math.Float32bits(v) != math.Float32bits(other.Data[i]) {
			return false
		}
	}
	return true
}
