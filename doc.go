// Package colorcube builds GPU-consumable 3D color cubes from named LUT
// resources.
//
// # Overview
//
// A color cube is an N×N×N grid of RGBA samples used by a color-transform
// filter to grade each pixel: the filter looks up the pixel's RGB value in
// the cube and interpolates between the eight surrounding samples. colorcube
// prepares the cube; interpolation is left to the host image engine.
//
// # Quick Start
//
//	import "github.com/gogpu/colorcube"
//
//	//go:embed luts/*.cube
//	var luts embed.FS
//
//	b := colorcube.New(colorcube.FSResolver{FS: luts, Dir: "luts", Ext: ".cube"}, host)
//	h, err := b.BuildColorCube("warm", 33)
//	if err != nil {
//	    return err
//	}
//	defer h.Release()
//
// For a GPU host backed by gogpu/wgpu, see the gpu sub-package.
//
// # Pipeline
//
// BuildColorCube runs four stages:
//   - Resolve: the injected Resolver returns the LUT bytes for a name
//   - Parse: the text is validated into a Definition (Parse)
//   - Build: samples are expanded to a flat RGBA float32 Buffer (NewBuffer)
//   - Create: the Factory hands the Buffer to the Host and returns a Handle
//
// Each stage fails fast. Errors are *Error values recording the stage and
// wrap one of the Err* sentinels, so callers classify them with errors.Is:
//
//	if errors.Is(err, colorcube.ErrResourceNotFound) {
//	    // unknown LUT name
//	}
//
// # Text Format
//
// LUT text is a strict subset of the .cube layout. '#' starts a comment.
// Optional directives come first:
//
//	TITLE "Warm"
//	LUT_3D_SIZE 33
//	DOMAIN_MIN 0 0 0
//	DOMAIN_MAX 1 1 1
//
// followed by N^3 rows of three (RGB) or four (RGBA) values in [0, 1], red
// varying fastest, then green, then blue. Values outside [0, 1] are errors,
// never clamped. UTF-8 and BOM-marked UTF-16 input are accepted.
//
// # Buffer Layout
//
// A Buffer holds 4*N^3 float32 values, R, G, B, A per sample, in the same
// order as the text rows. Alpha is 1 unless the text supplied it. As a 3D
// texture, x is red, y is green and z is blue; Buffer.Bytes gives the
// little-endian RGBA32Float upload.
//
// # Concurrency
//
// The pipeline is synchronous and keeps no per-request state. A Builder may
// be shared between goroutines; the optional buffer cache (WithBufferCache)
// is internally synchronized.
package colorcube
