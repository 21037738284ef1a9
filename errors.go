package colorcube

import (
	"errors"
	"fmt"
)

// Sentinel errors classifying why a color cube could not be built.
// Every error returned by this package wraps exactly one of them, so callers
// classify failures with errors.Is.
var (
	// ErrResourceNotFound is returned when the resolver has no LUT for a name.
	ErrResourceNotFound = errors.New("colorcube: resource not found")

	// ErrEmptyInput is returned when the LUT text holds no directives and no samples.
	ErrEmptyInput = errors.New("colorcube: empty input")

	// ErrMalformedFormat is returned for unparsable tokens, wrong column
	// counts, misplaced or unsupported directives and undecodable text.
	ErrMalformedFormat = errors.New("colorcube: malformed format")

	// ErrSampleCountMismatch is returned when the number of sample rows is
	// not dimension^3, or the declared LUT_3D_SIZE disagrees with the
	// requested dimension.
	ErrSampleCountMismatch = errors.New("colorcube: sample count mismatch")

	// ErrOutOfRangeValue is returned when a sample component lies outside [0, 1].
	ErrOutOfRangeValue = errors.New("colorcube: value out of range")

	// ErrDimensionMismatch is returned by the buffer builder when a
	// definition's sample slice does not hold dimension^3 entries.
	ErrDimensionMismatch = errors.New("colorcube: dimension mismatch")

	// ErrUnsupportedDimension is returned when the dimension is below 2 or
	// above what the host can create.
	ErrUnsupportedDimension = errors.New("colorcube: unsupported dimension")

	// ErrHostCreationFailed wraps any failure reported by the Host.
	ErrHostCreationFailed = errors.New("colorcube: host creation failed")
)

// Stage identifies the pipeline step that produced an error.
type Stage uint8

const (
	// StageResolve is resource resolution by name.
	StageResolve Stage = iota

	// StageParse is LUT text parsing.
	StageParse

	// StageBuild is color cube buffer construction.
	StageBuild

	// StageCreate is host filter creation.
	StageCreate
)

// String returns the stage name.
func (s Stage) String() string {
	switch s {
	case StageResolve:
		return "resolve"
	case StageParse:
		return "parse"
	case StageBuild:
		return "build"
	case StageCreate:
		return "create"
	default:
		return fmt.Sprintf("Stage(%d)", s)
	}
}

// Error attributes a pipeline failure to a stage and a LUT name.
type Error struct {
	Stage Stage
	Name  string
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("colorcube: %s %q: %v", e.Stage, e.Name, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// ParseError reports the 1-based line of the LUT text where parsing failed.
// Line is 0 when the failure is not tied to a line (e.g. a count mismatch
// detected at end of input).
type ParseError struct {
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	if e.Line == 0 {
		return e.Err.Error()
	}
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// parseErrorf builds a ParseError whose chain contains kind.
func parseErrorf(line int, kind error, format string, args ...any) error {
	return &ParseError{
		Line: line,
		Err:  fmt.Errorf("%w: %s", kind, fmt.Sprintf(format, args...)),
	}
}
