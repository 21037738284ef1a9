package colorcube

import "testing"

func TestDefaultOptions(t *testing.T) {
	o := defaultOptions()
	if o.cacheCapacity != 0 || o.maxDimension != 0 || o.workers != 0 {
		t.Errorf("defaultOptions() = %+v, want zero", o)
	}
}

func TestOptions(t *testing.T) {
	tests := []struct {
		name        string
		opts        []Option
		wantCache   bool
		wantMax     int
		wantWorkers int
	}{
		{"none", nil, false, 0, 0},
		{"cache", []Option{WithBufferCache(16)}, true, 0, 0},
		{"cache disabled", []Option{WithBufferCache(0)}, false, 0, 0},
		{"max", []Option{WithMaxDimension(33)}, false, 33, 0},
		{"last wins", []Option{WithMaxDimension(33), WithMaxDimension(17)}, false, 17, 0},
		{"workers", []Option{WithWorkers(3)}, false, 0, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := New(MapResolver{}, &fakeHost{max: 64}, tt.opts...)
			if got := b.buffers != nil; got != tt.wantCache {
				t.Errorf("cache enabled = %v, want %v", got, tt.wantCache)
			}
			if b.maxDimension != tt.wantMax {
				t.Errorf("maxDimension = %d, want %d", b.maxDimension, tt.wantMax)
			}
			if b.workers != tt.wantWorkers {
				t.Errorf("workers = %d, want %d", b.workers, tt.wantWorkers)
			}
		})
	}
}
