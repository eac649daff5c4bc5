package prim

import (
	"github.com/funvibe/funprob/internal/rng"
	"github.com/funvibe/funprob/internal/weighted"
)

// Dist is a primitive distribution family with fixed parameters: it can draw
// a value from a random source and evaluate its density at a value. Both
// operations are pure; sampling consumes only the supplied source.
type Dist[A any] interface {
	Name() string
	Sample(src rng.Source) A
	Density(x A) weighted.Weight
}

// Choice pairs a support value with its probability mass.
type Choice[A any] struct {
	Value A
	Prob  float64
}

// Discrete is a primitive whose finite support can be enumerated as an
// ordered list of (value, probability) pairs. The masses are exposed as
// constructed and need not sum to one.
type Discrete[A any] interface {
	Dist[A]
	Support() []Choice[A]
}
