package random

import (
	crand "crypto/rand"
	"encoding/binary"
	"math/rand"
	"time"
)

// Source is a seeded random source used to shuffle receivers during a draw.
// A Source is not safe for concurrent use; each draw builds its own.
type Source struct {
	random *rand.Rand
	seed   int64
}

// Config for a random source
type Config struct {
	// Optional seed; nil draws one from crypto/rand
	Seed *int64
}

// New creates a new random source
func New(cfg *Config) *Source {
	var seed int64
	if cfg != nil && cfg.Seed != nil {
		seed = *cfg.Seed
	} else {
		seed = freshSeed()
	}

	return &Source{
		random: rand.New(rand.NewSource(seed)),
		seed:   seed,
	}
}

// freshSeed is unguessable from the draw time. The wall clock is only used if
// the system source fails.
func freshSeed() int64 {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return time.Now().UnixNano()
	}
	return int64(binary.LittleEndian.Uint64(b[:]))
}

// Seed returns the seed the source was built from, so a draw can be replayed
func (s *Source) Seed() int64 {
	return s.seed
}

// ShuffleStrings permutes ids in place. Every permutation is equally likely.
func (s *Source) ShuffleStrings(ids []string) {
	s.random.Shuffle(len(ids), func(i, j int) {
		ids[i], ids[j] = ids[j], ids[i]
	})
}

// ShuffleInts permutes values in place.
func (s *Source) ShuffleInts(values []int) {
	s.random.Shuffle(len(values), func(i, j int) {
		values[i], values[j] = values[j], values[i]
	})
}

// Intn returns a value in [0, n). n must be positive.
func (s *Source) Intn(n int) int {
	return s.random.Intn(n)
}
