package colorcube

import (
	"errors"
	"fmt"
	"io/fs"
)

// Resolver looks up the raw bytes of a named LUT resource.
//
// Implementations return an error wrapping ErrResourceNotFound (or
// fs.ErrNotExist) when the name is unknown.
type Resolver interface {
	Resolve(name string) ([]byte, error)
}

// ResolverFunc adapts a function to the Resolver interface.
type ResolverFunc func(name string) ([]byte, error)

// Resolve calls f(name).
func (f ResolverFunc) Resolve(name string) ([]byte, error) {
	return f(name)
}

// MapResolver resolves names from an in-memory map.
type MapResolver map[string][]byte

// Resolve returns the bytes stored under name.
func (m MapResolver) Resolve(name string) ([]byte, error) {
	data, ok := m[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrResourceNotFound, name)
	}
	return data, nil
}

// FSResolver resolves names to files in a file system, typically an
// embed.FS bundled with the application.
type FSResolver struct {
	// FS holds the LUT files.
	FS fs.FS

	// Dir is an optional directory prefix inside FS.
	Dir string

	// Ext is appended to the name, e.g. ".cube".
	Ext string
}

// Resolve reads Dir/name+Ext from the file system.
func (r FSResolver) Resolve(name string) ([]byte, error) {
	p := name + r.Ext
	if r.Dir != "" {
		p = r.Dir + "/" + p
	}
	if name == "" || !fs.ValidPath(p) {
		return nil, fmt.Errorf("%w: invalid name %q", ErrResourceNotFound, name)
	}
	data, err := fs.ReadFile(r.FS, p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %q", ErrResourceNotFound, name)
		}
		return nil, err
	}
	return data, nil
}
