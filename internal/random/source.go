// Package random provides the randomness used to synthesize datasets. Generation code
// depends only on the Source interface, so tests can substitute a scripted source.
package random

import (
	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
)

// Source is the randomness contract the generator draws from.
type Source interface {
	// IntRange returns a uniform integer in [min, max], both inclusive.
	IntRange(min, max int) int
	// Sample returns k distinct integers drawn uniformly without replacement from [0, n).
	Sample(n, k int) []int
	// FullName returns a realistic fake "First Last" name.
	FullName() string
	// UUID returns a random version 4 identifier in its canonical string form.
	UUID() string
}

// FakerSource implements Source on top of a gofakeit Faker. A Faker is not safe for
// concurrent use, and neither is FakerSource.
type FakerSource struct {
	faker *gofakeit.Faker
	seed  int64
}

var _ Source = (*FakerSource)(nil)

// New creates a source. A zero seed draws a fresh non-zero seed, so every run differs
// but can still be replayed with the seed reported by Seed.
func New(seed int64) *FakerSource {
	for seed == 0 {
		seed = gofakeit.NewCrypto().Int64()
	}
	return &FakerSource{faker: gofakeit.New(seed), seed: seed}
}

// Seed returns the seed that replays this source's draws. It is never zero.
func (s *FakerSource) Seed() int64 {
	return s.seed
}

func (s *FakerSource) IntRange(min, max int) int {
	if max <= min {
		return min
	}
	return min + s.faker.Rand.Intn(max-min+1)
}

func (s *FakerSource) Sample(n, k int) []int {
	if k > n {
		k = n
	}
	if k <= 0 {
		return []int{}
	}
	return s.faker.Rand.Perm(n)[:k]
}

func (s *FakerSource) FullName() string {
	return s.faker.Name()
}

// UUID draws the 16 random bytes from the faker's generator so seeded runs also
// reproduce workspace identifiers.
func (s *FakerSource) UUID() string {
	id, err := uuid.NewRandomFromReader(s.faker.Rand)
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
