// Package enum turns finite-support discrete programs into explicit
// weighted populations and post-processes them: aggregation, normalization,
// evidence and expectations. Everything here is exact, no randomness involved.
package enum

import (
	"cmp"
	"slices"

	"github.com/funvibe/funprob/internal/dist"
	"github.com/funvibe/funprob/internal/weighted"
)

// Pop is a finite ordered population of (outcome, weight) pairs. Outcomes
// need not be unique: distinct execution paths may reach the same value
// until Compact merges them.
type Pop[A any] struct {
	outs []dist.Outcome[A]
}

// FromDist enumerates a program exactly. It fails with ContinuousError when
// the program draws from a primitive without finite support.
func FromDist[A any](d dist.Dist[A]) (Pop[A], error) {
	outs, err := dist.Explicit(d)
	if err != nil {
		return Pop[A]{}, err
	}
	return Pop[A]{outs: outs}, nil
}

// FromOutcomes wraps an explicit list of weighted outcomes.
func FromOutcomes[A any](outs []dist.Outcome[A]) Pop[A] {
	return Pop[A]{outs: slices.Clone(outs)}
}

// Explicit exposes the raw (outcome, weight) pairs.
func (p Pop[A]) Explicit() []dist.Outcome[A] { return slices.Clone(p.outs) }

// Len is the number of entries, counting duplicates.
func (p Pop[A]) Len() int { return len(p.outs) }

// Evidence is the total unnormalized mass of the population.
func (p Pop[A]) Evidence() weighted.Weight {
	total := weighted.Zero()
	for _, o := range p.outs {
		total = total.Add(o.Weight)
	}
	return total
}

// Expectation computes the weight-averaged value of f using unnormalized
// weights divided by evidence. It fails when the population has no mass.
func (p Pop[A]) Expectation(f func(A) float64) (float64, error) {
	ws := make([]weighted.Weight, len(p.outs))
	for i, o := range p.outs {
		ws[i] = o.Weight
	}
	norm, err := weighted.Normalized(ws)
	if err != nil {
		return 0, err
	}
	total := 0.0
	for i, o := range p.outs {
		total += norm[i] * f(o.Value)
	}
	return total, nil
}

// Compact merges equal outcomes by summing their weights and orders the
// result ascending by outcome, so enumeration output is deterministic.
func Compact[A cmp.Ordered](p Pop[A]) Pop[A] {
	return CompactFunc(p, func(x A) A { return x })
}

// CompactFunc is Compact for outcome types without a native order: entries
// are merged on equal outcomes and sorted ascending by key(outcome).
func CompactFunc[A comparable, K cmp.Ordered](p Pop[A], key func(A) K) Pop[A] {
	sums := make(map[A]weighted.Weight, len(p.outs))
	order := make([]A, 0, len(p.outs))
	for _, o := range p.outs {
		if w, seen := sums[o.Value]; seen {
			sums[o.Value] = w.Add(o.Weight)
			continue
		}
		sums[o.Value] = o.Weight
		order = append(order, o.Value)
	}
	slices.SortFunc(order, func(a, b A) int { return cmp.Compare(key(a), key(b)) })
	outs := make([]dist.Outcome[A], len(order))
	for i, v := range order {
		outs[i] = dist.Outcome[A]{Value: v, Weight: sums[v]}
	}
	return Pop[A]{outs: outs}
}

// Normalize rescales the weights to sum to one. It fails when the
// population has no mass.
func Normalize[A any](p Pop[A]) (Pop[A], error) {
	ev := p.Evidence()
	if ev.IsZero() {
		return Pop[A]{}, &weighted.ZeroMassError{Count: len(p.outs)}
	}
	outs := make([]dist.Outcome[A], len(p.outs))
	for i, o := range p.outs {
		outs[i] = dist.Outcome[A]{Value: o.Value, Weight: o.Weight.Div(ev)}
	}
	return Pop[A]{outs: outs}, nil
}

// Enumerate is Normalize after Compact: the exact normalized distribution
// over distinct outcomes, ascending.
func Enumerate[A cmp.Ordered](d dist.Dist[A]) (Pop[A], error) {
	p, err := FromDist(d)
	if err != nil {
		return Pop[A]{}, err
	}
	return Normalize(Compact(p))
}

// Mass is the normalized probability of outcome x.
func Mass[A comparable](p Pop[A], x A) float64 {
	ev := p.Evidence()
	if ev.IsZero() {
		return 0
	}
	mass := weighted.Zero()
	for _, o := range p.outs {
		if o.Value == x {
			mass = mass.Add(o.Weight)
		}
	}
	return mass.Div(ev).Float()
}
