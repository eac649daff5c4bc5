// Package dist holds the free representation of probabilistic programs: an
// immutable tree of values, sequencing, primitive draws and conditioning.
// Construction performs no I/O and no randomness; every operational meaning
// lives in an interpreter that traverses the tree read-only, so the same
// program can be handed to several interpreters without re-executing
// anything.
package dist

import (
	"github.com/funvibe/funprob/internal/prim"
	"github.com/funvibe/funprob/internal/rng"
	"github.com/funvibe/funprob/internal/weighted"
)

// Score maps a program outcome to a nonnegative likelihood used for
// conditioning.
type Score[A any] func(A) (weighted.Weight, error)

// Outcome pairs a possible program value with its unnormalized weight.
type Outcome[A any] struct {
	Value  A
	Weight weighted.Weight
}

// Dist is a probabilistic program producing a value of type A. The variant
// set is closed: Pure, Bind, FromPrim and Condition are the only public
// constructors. Interpreters are exposed as package functions (Sample,
// Prior, PriorValue, Explicit); dispatch happens through unexported methods
// because a Bind hides the type parameter of its parent.
type Dist[A any] interface {
	sample(src rng.Source) (A, error)
	prior(src rng.Source) (A, weighted.Weight, error)
	priorValue(src rng.Source) (A, error)
	explicit() ([]Outcome[A], error)
}

// Pure is the one-point distribution on x.
func Pure[A any](x A) Dist[A] { return ret[A]{value: x} }

// Bind sequences two programs: draw from parent, feed the result to next.
func Bind[A, B any](parent Dist[A], next func(A) Dist[B]) Dist[B] {
	return bind[A, B]{parent: parent, next: next}
}

// Map applies a pure function to a program's outcome.
func Map[A, B any](parent Dist[A], f func(A) B) Dist[B] {
	return Bind(parent, func(x A) Dist[B] { return Pure(f(x)) })
}

// FromPrim draws once from a primitive distribution.
func FromPrim[A any](d prim.Dist[A]) Dist[A] { return primNode[A]{d: d} }

// Condition reweights parent by a nonnegative likelihood of its outcome.
// The resulting program cannot be forward-sampled; it is consumed by the
// prior-extraction and enumeration interpreters.
func Condition[A any](score Score[A], parent Dist[A]) Dist[A] {
	return conditional[A]{score: score, parent: parent}
}

// Fail is a program that surfaces err under every interpreter. It carries
// construction-time errors through continuations, which cannot return an
// error themselves.
func Fail[A any](err error) Dist[A] { return failNode[A]{err: err} }

// Sample forward-samples the program. Each Bind splits the source so that
// resampling with the same source is reproducible and sibling subtrees draw
// from independent streams. Reaching a Condition node is a usage-contract
// violation and fails with UnconditionedSamplingError on every invocation.
func Sample[A any](d Dist[A], src rng.Source) (A, error) {
	return d.sample(src)
}

// Prior samples the unconditioned structure of the program while
// accumulating the product of every conditioning score met along the way:
// a prior sample annotated with its posterior likelihood.
func Prior[A any](d Dist[A], src rng.Source) (A, weighted.Weight, error) {
	return d.prior(src)
}

// PriorValue is Prior without the weight: conditioning nodes are unwrapped,
// their scores discarded, the random draws kept.
func PriorValue[A any](d Dist[A], src rng.Source) (A, error) {
	return d.priorValue(src)
}

// Explicit interprets the program as an exact finite population. Discrete
// primitives become their support; conditioning multiplies outcome weights
// exactly; a primitive without finite support fails with ContinuousError.
func Explicit[A any](d Dist[A]) ([]Outcome[A], error) {
	return d.explicit()
}
