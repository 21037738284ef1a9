// Command cubetool checks LUT files and bakes color matrix presets into LUTs.
//
//	cubetool -check warm.cube            # validate, dimension from LUT_3D_SIZE
//	cubetool -check warm.cube -n 33      # validate against a fixed dimension
//	cubetool -bake sepia -n 33 -output sepia.cube
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gogpu/colorcube"
)

func main() {
	var (
		check   = flag.String("check", "", "LUT file to validate")
		bake    = flag.String("bake", "", "preset to bake: "+strings.Join(presetNames(), ", "))
		amount  = flag.Float64("amount", 1, "preset amount (factor, or degrees for hue)")
		n       = flag.Int("n", 0, "cube dimension (0: take it from the LUT when checking, 33 when baking)")
		output  = flag.String("output", "", "output file for -bake (default stdout)")
		verbose = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()
	log.SetFlags(0)

	if *verbose {
		colorcube.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	switch {
	case *check != "" && *bake == "":
		if err := runCheck(os.Stdout, *check, *n); err != nil {
			log.Fatal(err)
		}
	case *bake != "" && *check == "":
		if err := runBake(*bake, float32(*amount), *n, *output); err != nil {
			log.Fatal(err)
		}
	default:
		flag.Usage()
		os.Exit(2)
	}
}

// runCheck validates a LUT file through the resolve, parse and build stages.
func runCheck(w io.Writer, path string, n int) error {
	dir, file := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	name := strings.TrimSuffix(file, filepath.Ext(file))
	resolver := colorcube.FSResolver{FS: os.DirFS(dir), Ext: filepath.Ext(file)}

	if n == 0 {
		data, err := resolver.Resolve(name)
		if err != nil {
			return err
		}
		def, err := colorcube.ParseDeclared(data)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		n = def.Dimension
	}

	b := colorcube.New(resolver, cpuHost{})
	buf, err := b.Buffer(name, n)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "%s: ok, dimension %d, %d samples, %d bytes as RGBA32Float\n",
		path, buf.Dimension, buf.Len()/colorcube.Channels, len(buf.Data)*4)
	return nil
}

// runBake writes a preset matrix baked into an n-point LUT.
func runBake(preset string, amount float32, n int, output string) error {
	newMatrix, ok := presets[preset]
	if !ok {
		return fmt.Errorf("unknown preset %q (have %s)", preset, strings.Join(presetNames(), ", "))
	}
	if n == 0 {
		n = 33
	}

	def := newMatrix(amount).Bake(n)
	def.Title = preset

	if output == "" {
		_, err := def.WriteTo(os.Stdout)
		return err
	}
	if err := writeFile(output, def); err != nil {
		return err
	}
	log.Printf("%s baked to %s (%d^3 samples)", preset, output, n)
	return nil
}

// writeFile writes src to path. A failed write or close removes the file.
func writeFile(path string, src io.WriterTo) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	_, err = src.WriteTo(f)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(path)
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

var presets = map[string]func(amount float32) colorcube.ColorMatrix{
	"identity":   func(float32) colorcube.ColorMatrix { return colorcube.IdentityMatrix() },
	"brightness": colorcube.BrightnessMatrix,
	"contrast":   colorcube.ContrastMatrix,
	"saturation": colorcube.SaturationMatrix,
	"grayscale":  func(float32) colorcube.ColorMatrix { return colorcube.GrayscaleMatrix() },
	"sepia":      func(float32) colorcube.ColorMatrix { return colorcube.SepiaMatrix() },
	"invert":     func(float32) colorcube.ColorMatrix { return colorcube.InvertMatrix() },
	"hue":        colorcube.HueRotateMatrix,
}

func presetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// cpuHost accepts every dimension and creates nothing; checks stop at the
// build stage.
type cpuHost struct{}

func (cpuHost) MaxDimension() int { return colorcube.MaxDimension }

func (cpuHost) CreateColorCube(string, *colorcube.Buffer) (colorcube.Filter, error) {
	return nopFilter{}, nil
}

type nopFilter struct{}

func (nopFilter) Release() {}
