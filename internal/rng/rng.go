package rng

import "math/rand/v2"

// Source is the immutable state of a splittable deterministic random stream.
// Splitting is a pure function of the state: splitting the same Source twice
// yields the same pair, and the two children produce statistically
// independent streams. A Source never advances in place; every interpreter
// that needs fresh randomness derives it through Split.
type Source struct {
	state uint64
	gamma uint64
}

// goldenGamma is the SplitMix64 increment (2^64 / phi, rounded to odd).
const goldenGamma = 0x9e3779b97f4a7c15

// New creates a Source from a seed. Equal seeds yield equal sources.
func New(seed uint64) Source {
	return Source{state: mix64(seed), gamma: mixGamma(seed + goldenGamma)}
}

// Split derives two independent child sources. The left child keeps the
// parent's gamma sequence, the right child switches to a fresh one so that
// sibling subtrees never share a stream.
func (s Source) Split() (Source, Source) {
	s1 := s.state + s.gamma
	s2 := s1 + s.gamma
	left := Source{state: mix64(s1), gamma: s.gamma}
	right := Source{state: mix64(s2), gamma: mixGamma(s2)}
	return left, right
}

// Rand returns a deterministic PCG generator seeded from the source state.
// Each call returns a fresh generator positioned at the stream's start; the
// Source itself is never mutated.
func (s Source) Rand() *rand.Rand {
	return rand.New(rand.NewPCG(s.state, s.gamma))
}

// mix64 is the SplitMix64 finalizer.
func mix64(z uint64) uint64 {
	z = (z ^ (z >> 33)) * 0xff51afd7ed558ccd
	z = (z ^ (z >> 33)) * 0xc4ceb9fe1a85ec53
	return z ^ (z >> 33)
}

// mixGamma derives a new odd gamma for a child stream.
func mixGamma(z uint64) uint64 {
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	z ^= z >> 31
	return z | 1
}
