package colorcube

import "golang.org/x/image/math/f32"

// Definition is a parsed, validated LUT.
//
// Samples holds Dimension^3 RGB triples in file order: red varies fastest,
// then green, then blue. Alpha is nil unless the source rows carried a
// fourth column, in which case it holds one value per sample.
//
// A Definition is treated as immutable once returned by Parse.
type Definition struct {
	// Title is the TITLE directive, if any.
	Title string

	// Dimension is the per-axis sample count N.
	Dimension int

	// Samples are the RGB values, each component in [0, 1].
	Samples []f32.Vec3

	// Alpha holds per-sample alpha when the source supplied it.
	Alpha []float32
}

// Len returns the number of samples.
func (d *Definition) Len() int {
	return len(d.Samples)
}

// HasAlpha reports whether the definition carries an alpha column.
func (d *Definition) HasAlpha() bool {
	return d.Alpha != nil
}

// At returns the sample for grid point (r, g, b).
// It panics if a coordinate is outside [0, Dimension).
func (d *Definition) At(r, g, b int) f32.Vec3 {
	return d.Samples[sampleIndex(d.Dimension, r, g, b)]
}

// Identity returns the identity LUT of dimension n: every grid point maps to
// its own normalized coordinate.
func Identity(n int) *Definition {
	d := &Definition{
		Title:     "Identity",
		Dimension: n,
		Samples:   make([]f32.Vec3, 0, cube(n)),
	}
	if n < 1 {
		return d
	}
	step := float32(1)
	if n > 1 {
		step = 1 / float32(n-1)
	}
	for b := range n {
		for g := range n {
			for r := range n {
				d.Samples = append(d.Samples, f32.Vec3{
					gridValue(r, n, step),
					gridValue(g, n, step),
					gridValue(b, n, step),
				})
			}
		}
	}
	return d
}

// gridValue maps grid index i to [0, 1], pinning the last index to exactly 1.
func gridValue(i, n int, step float32) float32 {
	if i == n-1 && n > 1 {
		return 1
	}
	return float32(i) * step
}
