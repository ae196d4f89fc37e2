package dice

import (
	"crypto/rand"
	"math/big"
	mrand "math/rand"
	"sync"
)

// cryptoSource implements Source using crypto/rand.
type cryptoSource struct{}

// NewCryptoSource returns a Source backed by crypto/rand.
//
// Postcondition: Every value returned by Intn is in [0, n).
func NewCryptoSource() Source {
	return &cryptoSource{}
}

// Intn returns a uniformly distributed int in [0, n).
//
// Precondition: n > 0. Panics otherwise.
func (c *cryptoSource) Intn(n int) int {
	if n <= 0 {
		panic("dice: Intn called with n <= 0")
	}
	val, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		panic("dice: crypto/rand failure: " + err.Error())
	}
	return int(val.Int64())
}

// SeededSource is a deterministic Source. Two sources built from the same
// seed yield the same sequence, which makes sessions replayable.
type SeededSource struct {
	mu   sync.Mutex
	seed int64
	rng  *mrand.Rand
	pos  int64
}

// NewSeededSource returns a deterministic Source for seed.
func NewSeededSource(seed int64) *SeededSource {
	return &SeededSource{seed: seed, rng: mrand.New(mrand.NewSource(seed))}
}

// Intn returns a deterministic int in [0, n).
//
// Precondition: n > 0. Panics otherwise.
func (s *SeededSource) Intn(n int) int {
	if n <= 0 {
		panic("dice: Intn called with n <= 0")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pos++
	return s.rng.Intn(n)
}

// Seed returns the seed the source was built from.
func (s *SeededSource) Seed() int64 {
	return s.seed
}

// Position returns how many values have been drawn.
func (s *SeededSource) Position() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pos
}
