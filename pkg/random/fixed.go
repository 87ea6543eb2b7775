package random

import "sync"

// Fixed is a scripted Source for tests. Floats and Ints are replayed in order;
// once a script is exhausted its last value repeats. An empty script yields 0.
type Fixed struct {
	mu     sync.Mutex
	Floats []float64
	Ints   []int

	floatPos int
	intPos   int
}

// Ensure Fixed implements Source
var _ Source = (*Fixed)(nil)

// NewFixed creates a Fixed source replaying the given floats.
func NewFixed(floats ...float64) *Fixed {
	return &Fixed{Floats: floats}
}

// WithInts sets the integer script and returns the source.
func (f *Fixed) WithInts(ints ...int) *Fixed {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Ints = ints
	f.intPos = 0
	return f
}

func (f *Fixed) Float64() float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.Floats) == 0 {
		return 0
	}
	v := f.Floats[min(f.floatPos, len(f.Floats)-1)]
	f.floatPos++
	return v
}

// IntN returns the next scripted integer. Scripted values are returned as is
// so tests can exercise exact bucket boundaries; callers must script values in
// [0, n).
func (f *Fixed) IntN(n int) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.Ints) == 0 {
		return 0
	}
	v := f.Ints[min(f.intPos, len(f.Ints)-1)]
	f.intPos++
	return v
}
