// Package random provides the randomness sources used by loot sampling,
// spawn generation and battle setup.
package random

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand/v2"
	"sync"
)

// Source is the subset of *rand.Rand the game needs.
// Float64 returns a value in [0, 1); IntN returns a value in [0, n).
type Source interface {
	Float64() float64
	IntN(n int) int
}

// NewSeed generates a random seed using crypto/rand.
func NewSeed() (uint64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return binary.LittleEndian.Uint64(b[:]), nil
}

// New returns a PCG-backed source for the given seed.
// A zero seed asks for a fresh seed from crypto/rand.
func New(seed uint64) (*rand.Rand, error) {
	if seed == 0 {
		s, err := NewSeed()
		if err != nil {
			return nil, err
		}
		seed = s
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)), nil
}

// Locked is a Source that is safe for concurrent use.
type Locked struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// Ensure Locked implements Source
var _ Source = (*Locked)(nil)

// NewLocked is New wrapped for concurrent callers.
func NewLocked(seed uint64) (*Locked, error) {
	rng, err := New(seed)
	if err != nil {
		return nil, err
	}
	return &Locked{rng: rng}, nil
}

func (l *Locked) Float64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.rng.Float64()
}

func (l *Locked) IntN(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.rng.IntN(n)
}

// Bool draws a fair coin flip from src.
func Bool(src Source) bool {
	return src.IntN(2) == 1
}
