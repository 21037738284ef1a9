package colorcube

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/image/math/f32"
)

// Parse parses LUT text for a cube of dimension n.
//
// The text must hold exactly n^3 sample rows. A LUT_3D_SIZE directive, if
// present, must agree with n. Errors wrap one of ErrEmptyInput,
// ErrMalformedFormat, ErrSampleCountMismatch, ErrOutOfRangeValue or
// ErrUnsupportedDimension, and are *ParseError values carrying the line.
func Parse(data []byte, n int) (*Definition, error) {
	if n < 1 || n > MaxDimension {
		return nil, &ParseError{Err: fmt.Errorf("%w: %d", ErrUnsupportedDimension, n)}
	}
	s, err := scan(data)
	if err != nil {
		return nil, err
	}
	if s.size != 0 && s.size != n {
		return nil, parseErrorf(s.sizeLine, ErrSampleCountMismatch,
			"%s %d declares %d samples, want %d", keywordSize3D, s.size, cube(s.size), cube(n))
	}
	return s.definition(n)
}

// ParseDeclared parses LUT text whose dimension is taken from its
// LUT_3D_SIZE directive or, without one, inferred from the sample count,
// which must then be a perfect cube.
func ParseDeclared(data []byte) (*Definition, error) {
	s, err := scan(data)
	if err != nil {
		return nil, err
	}
	n := s.size
	if n == 0 {
		n = cubeRoot(len(s.samples))
		if n == 0 || cube(n) != len(s.samples) {
			return nil, parseErrorf(0, ErrSampleCountMismatch,
				"%d samples do not form a cube", len(s.samples))
		}
	}
	return s.definition(n)
}

// cubeRoot returns the integer k with k^3 <= v < (k+1)^3.
func cubeRoot(v int) int {
	if v <= 0 {
		return 0
	}
	k := int(math.Round(math.Cbrt(float64(v))))
	for cube(k) > v {
		k--
	}
	for cube(k+1) <= v {
		k++
	}
	return k
}

// lutScanner accumulates the directives and samples of one LUT text.
type lutScanner struct {
	title    string
	size     int
	sizeLine int
	columns  int
	samples  []f32.Vec3
	alpha    []float32
	content  bool
}

func scan(data []byte) (*lutScanner, error) {
	text, err := decodeText(data)
	if err != nil {
		return nil, err
	}

	s := &lutScanner{}
	for i, raw := range bytes.Split(text, []byte{'\n'}) {
		line := i + 1
		fields, rest := splitLine(string(bytes.TrimRight(raw, "\r")))
		if len(fields) == 0 {
			continue
		}
		s.content = true

		if isKeyword(fields[0]) {
			if err := s.directive(line, fields, rest); err != nil {
				return nil, err
			}
			continue
		}
		if err := s.sample(line, fields); err != nil {
			return nil, err
		}
	}

	if !s.content {
		return nil, &ParseError{Err: ErrEmptyInput}
	}
	return s, nil
}

func (s *lutScanner) directive(line int, fields []string, rest string) error {
	keyword := fields[0]
	if len(s.samples) > 0 {
		return parseErrorf(line, ErrMalformedFormat, "directive %s after sample data", keyword)
	}

	switch keyword {
	case keywordTitle:
		title, err := unquote(rest)
		if err != nil {
			return parseErrorf(line, ErrMalformedFormat, "%s: %v", keywordTitle, err)
		}
		s.title = title

	case keywordSize3D:
		if s.size != 0 {
			return parseErrorf(line, ErrMalformedFormat, "duplicate %s", keywordSize3D)
		}
		if len(fields) != 2 {
			return parseErrorf(line, ErrMalformedFormat, "%s takes one value, got %d", keywordSize3D, len(fields)-1)
		}
		size, err := strconv.Atoi(fields[1])
		if err != nil {
			return parseErrorf(line, ErrMalformedFormat, "%s: invalid size %q", keywordSize3D, fields[1])
		}
		if size < MinDimension || size > MaxDimension {
			return parseErrorf(line, ErrUnsupportedDimension, "%s %d outside [%d, %d]",
				keywordSize3D, size, MinDimension, MaxDimension)
		}
		// Samples grow with the input; the declared size is not trusted
		// for allocation.
		s.size = size
		s.sizeLine = line

	case keywordSize1D:
		return parseErrorf(line, ErrMalformedFormat, "1D tables are not supported")

	case keywordDomainMin:
		return checkDomain(line, fields, 0)

	case keywordDomainMax:
		return checkDomain(line, fields, 1)
	}

	// Any other keyword is metadata.
	return nil
}

// checkDomain accepts DOMAIN_MIN/DOMAIN_MAX only at the unit cube bounds;
// samples are never rescaled.
func checkDomain(line int, fields []string, want float64) error {
	if len(fields) != 4 {
		return parseErrorf(line, ErrMalformedFormat, "%s takes three values, got %d", fields[0], len(fields)-1)
	}
	for _, tok := range fields[1:] {
		v, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return parseErrorf(line, ErrMalformedFormat, "%s: invalid number %q", fields[0], tok)
		}
		if v != want {
			return parseErrorf(line, ErrMalformedFormat, "%s %s unsupported, want %g %g %g",
				fields[0], strings.Join(fields[1:], " "), want, want, want)
		}
	}
	return nil
}

func (s *lutScanner) sample(line int, fields []string) error {
	if len(fields) != rgbColumns && len(fields) != rgbaColumns {
		return parseErrorf(line, ErrMalformedFormat, "sample has %d components, want %d or %d",
			len(fields), rgbColumns, rgbaColumns)
	}
	if s.columns == 0 {
		s.columns = len(fields)
	} else if len(fields) != s.columns {
		return parseErrorf(line, ErrMalformedFormat, "sample has %d components, previous rows have %d",
			len(fields), s.columns)
	}

	var c [rgbaColumns]float32
	for i, tok := range fields {
		v, err := strconv.ParseFloat(tok, 32)
		if err != nil {
			return parseErrorf(line, ErrMalformedFormat, "invalid number %q", tok)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return parseErrorf(line, ErrMalformedFormat, "non-finite value %q", tok)
		}
		if v < 0 || v > 1 {
			return parseErrorf(line, ErrOutOfRangeValue, "component %d = %s outside [0, 1]", i+1, tok)
		}
		c[i] = float32(v)
	}

	s.samples = append(s.samples, f32.Vec3{c[0], c[1], c[2]})
	if s.columns == rgbaColumns {
		s.alpha = append(s.alpha, c[3])
	}
	return nil
}

func (s *lutScanner) definition(n int) (*Definition, error) {
	if want := cube(n); len(s.samples) != want {
		return nil, parseErrorf(0, ErrSampleCountMismatch, "found %d samples, want %d (dimension %d)",
			len(s.samples), want, n)
	}
	return &Definition{
		Title:     s.title,
		Dimension: n,
		Samples:   s.samples,
		Alpha:     s.alpha,
	}, nil
}

// splitLine strips a trailing comment and splits the line into fields.
// rest is the text following the first field, used by TITLE.
// A '#' inside double quotes does not start a comment.
func splitLine(line string) (fields []string, rest string) {
	inQuote := false
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case '"':
			inQuote = !inQuote
		case commentMarker:
			if !inQuote {
				line = line[:i]
				i = len(line)
			}
		}
	}
	line = strings.TrimSpace(line)
	fields = strings.Fields(line)
	if len(fields) > 0 {
		rest = strings.TrimSpace(line[len(fields[0]):])
	}
	return fields, rest
}

// isKeyword reports whether tok names a directive rather than a number.
// Directives are upper case, so a mistyped sample value is not mistaken
// for metadata.
func isKeyword(tok string) bool {
	if _, err := strconv.ParseFloat(tok, 64); err == nil {
		return false
	}
	for i := 0; i < len(tok); i++ {
		c := tok[i]
		switch {
		case c == '_', 'A' <= c && c <= 'Z':
		case '0' <= c && c <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}

// unquote returns the TITLE text. Quotes are optional.
func unquote(s string) (string, error) {
	if !strings.HasPrefix(s, `"`) {
		return s, nil
	}
	end := strings.LastIndexByte(s, '"')
	if end == 0 {
		return "", fmt.Errorf("unterminated string %s", s)
	}
	if strings.TrimSpace(s[end+1:]) != "" {
		return "", fmt.Errorf("unexpected text after title %q", s[end+1:])
	}
	return s[1:end], nil
}
