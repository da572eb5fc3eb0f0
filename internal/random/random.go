// internal/random/random.go
//
// Random integer sources for drawing hidden values.
//
// Every round owns a Source and calls Draw(low, high) on creation and reset,
// so tests can pin the hidden value and servers can choose between crypto
// entropy and a reproducible seed.
//
// Implementations:
//   - Crypto: crypto/rand backed, safe for concurrent use (default).
//   - Seeded: math/rand with an explicit seed, mutex guarded.
//   - Fixed:  always the same value (tests, daily challenge).
//   - Func:   adapter for plain functions.
package random

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math"
	"math/big"
	"math/rand"
	"sync"
	"time"
)

// Source draws a uniformly distributed integer in [low, high).
// Callers guarantee low < high.
type Source interface {
	Draw(low, high int) int
}

// Func adapts an ordinary function to a Source.
type Func func(low, high int) int

// Draw calls f(low, high).
func (f Func) Draw(low, high int) int { return f(low, high) }

// Crypto returns a Source backed by crypto/rand.
func Crypto() Source { return cryptoSource{} }

type cryptoSource struct{}

func (cryptoSource) Draw(low, high int) int {
	span := new(big.Int).Sub(big.NewInt(int64(high)), big.NewInt(int64(low)))
	n, err := crand.Int(crand.Reader, span)
	if err != nil {
		// crypto/rand only fails when the OS entropy source is broken.
		return drawUint64(rand.New(rand.NewSource(time.Now().UnixNano())), low, high)
	}
	return int(n.Add(n, big.NewInt(int64(low))).Int64())
}

// Seeded returns a deterministic Source. Two sources with the same seed
// produce the same sequence of draws for the same bounds.
func Seeded(seed int64) Source {
	return &seededSource{rng: rand.New(rand.NewSource(seed))}
}

type seededSource struct {
	mu  sync.Mutex // *rand.Rand is not safe for concurrent use
	rng *rand.Rand
}

func (s *seededSource) Draw(low, high int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return drawUint64(s.rng, low, high)
}

// drawUint64 draws from [low, high) with the span held as uint64, so bounds
// as wide as [math.MinInt, math.MaxInt) do not overflow.
func drawUint64(rng *rand.Rand, low, high int) int {
	span := uint64(high) - uint64(low)
	if span <= math.MaxInt64 {
		return int(uint64(low) + uint64(rng.Int63n(int64(span))))
	}
	// More than half of all uint64 values fall inside span, so this loop is short.
	for {
		if v := rng.Uint64(); v < span {
			return int(uint64(low) + v)
		}
	}
}

// Fixed returns a Source that always yields v, whatever the bounds.
func Fixed(v int) Source {
	return Func(func(int, int) int { return v })
}

// NewSeed generates a seed for Seeded using crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return int64(binary.LittleEndian.Uint64(b[:])), nil
}
