package colorcube

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// WriteTo writes the definition in the LUT text format. Values use the
// shortest representation that reads back as the same float32, so Parse
// reproduces the definition bit for bit.
func (d *Definition) WriteTo(w io.Writer) (int64, error) {
	if err := d.validate(); err != nil {
		return 0, err
	}

	cw := &countingWriter{w: w}
	bw := bufio.NewWriter(cw)

	if d.Title != "" {
		fmt.Fprintf(bw, "%s \"%s\"\n", keywordTitle, titleReplacer.Replace(d.Title))
	}
	fmt.Fprintf(bw, "%s %d\n", keywordSize3D, d.Dimension)

	var line []byte
	for i, s := range d.Samples {
		line = line[:0]
		line = appendComponent(line, s[0])
		line = append(line, ' ')
		line = appendComponent(line, s[1])
		line = append(line, ' ')
		line = appendComponent(line, s[2])
		if d.Alpha != nil {
			line = append(line, ' ')
			line = appendComponent(line, d.Alpha[i])
		}
		line = append(line, '\n')
		if _, err := bw.Write(line); err != nil {
			return cw.n, err
		}
	}

	err := bw.Flush()
	return cw.n, err
}

// MarshalText encodes the definition in the LUT text format.
func (d *Definition) MarshalText() ([]byte, error) {
	var buf bytes.Buffer
	if _, err := d.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// validate checks the structural invariants WriteTo relies on.
func (d *Definition) validate() error {
	if d.Dimension < MinDimension || d.Dimension > MaxDimension {
		return fmt.Errorf("%w: %d", ErrUnsupportedDimension, d.Dimension)
	}
	if want := cube(d.Dimension); len(d.Samples) != want {
		return fmt.Errorf("%w: %d samples for dimension %d, want %d",
			ErrDimensionMismatch, len(d.Samples), d.Dimension, want)
	}
	if d.Alpha != nil && len(d.Alpha) != len(d.Samples) {
		return fmt.Errorf("%w: %d alpha values for %d samples",
			ErrDimensionMismatch, len(d.Alpha), len(d.Samples))
	}
	return nil
}

// titleReplacer keeps a title on one line and inside its quotes.
var titleReplacer = strings.NewReplacer(`"`, `'`, "\n", " ", "\r", " ")

func appendComponent(dst []byte, v float32) []byte {
	return strconv.AppendFloat(dst, float64(v), 'g', -1, 32)
}

// countingWriter counts bytes written to w.
type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
