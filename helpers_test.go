package colorcube

import (
	"strings"
	"sync"
	"testing"
)

// Test helpers shared across colorcube tests.

// fakeFilter records releases.
type fakeFilter struct {
	mu       sync.Mutex
	released int
}

func (f *fakeFilter) Release() {
	f.mu.Lock()
	f.released++
	f.mu.Unlock()
}

// fakeHost is an in-memory Host recording every creation request.
type fakeHost struct {
	max int
	err error

	mu      sync.Mutex
	names   []string
	buffers []*Buffer
}

func (h *fakeHost) MaxDimension() int { return h.max }

func (h *fakeHost) CreateColorCube(name string, buf *Buffer) (Filter, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.names = append(h.names, name)
	h.buffers = append(h.buffers, buf)
	if h.err != nil {
		return nil, h.err
	}
	return &fakeFilter{}, nil
}

func (h *fakeHost) calls() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.names)
}

// countingResolver wraps a resolver and counts lookups.
type countingResolver struct {
	Resolver
	mu    sync.Mutex
	count int
}

func (r *countingResolver) Resolve(name string) ([]byte, error) {
	r.mu.Lock()
	r.count++
	r.mu.Unlock()
	return r.Resolver.Resolve(name)
}

func (r *countingResolver) lookups() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}

// cornerLUT is the dimension-2 LUT whose samples are the unit cube corners
// in red-fastest order.
const cornerLUT = `# corners of the unit cube
TITLE "Corners"
LUT_3D_SIZE 2
0 0 0
1 0 0
0 1 0
1 1 0
0 0 1
1 0 1
0 1 1
1 1 1
`

// cornerBuffer is the buffer built from cornerLUT.
var cornerBuffer = []float32{
	0, 0, 0, 1,
	1, 0, 0, 1,
	0, 1, 0, 1,
	1, 1, 0, 1,
	0, 0, 1, 1,
	1, 0, 1, 1,
	0, 1, 1, 1,
	1, 1, 1, 1,
}

// identityRows returns n^3 identity sample rows without a header.
func identityRows(n int) string {
	var sb strings.Builder
	for _, s := range Identity(n).Samples {
		sb.WriteString(formatRow(s[0], s[1], s[2]))
	}
	return sb.String()
}

func formatRow(vals ...float32) string {
	var line []byte
	for i, v := range vals {
		if i > 0 {
			line = append(line, ' ')
		}
		line = appendComponent(line, v)
	}
	return string(line) + "\n"
}

func mustMarshal(t *testing.T, d *Definition) []byte {
	t.Helper()
	data, err := d.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText: %v", err)
	}
	return data
}
