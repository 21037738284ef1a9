package colorcube

// Dimension bounds.
//
// MaxDimension is the largest LUT_3D_SIZE the text format allows. Hosts may
// report a lower limit through Host.MaxDimension.
const (
	MinDimension = 2
	MaxDimension = 256
)

// Text format keywords.
//
// The LUT text is a strict subset of the .cube layout:
//
//	# comment
//	TITLE "Warm"
//	LUT_3D_SIZE 2
//	DOMAIN_MIN 0 0 0
//	DOMAIN_MAX 1 1 1
//	0 0 0
//	1 0 0
//	...
//
// Directives come before the first sample row. Each sample row holds three
// (RGB) or four (RGBA) components in [0, 1], red varying fastest, then
// green, then blue. Unknown keywords are metadata and are skipped.
const (
	keywordTitle     = "TITLE"
	keywordSize3D    = "LUT_3D_SIZE"
	keywordSize1D    = "LUT_1D_SIZE"
	keywordDomainMin = "DOMAIN_MIN"
	keywordDomainMax = "DOMAIN_MAX"

	commentMarker = '#'
)

// Sample row widths.
const (
	rgbColumns  = 3
	rgbaColumns = 4
)

// sampleIndex returns the position of grid point (r, g, b) in file order.
func sampleIndex(n, r, g, b int) int {
	return r + g*n + b*n*n
}

// cube returns n^3.
func cube(n int) int {
	return n * n * n
}
