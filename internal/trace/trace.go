// Package trace holds the shape-tracked variant of probabilistic programs.
// Every joint-trace program carries the exact ordered list of slots its
// primitive draws occupy, so a flat vector of sampled values (a Trace)
// can be split unambiguously between a subprogram and its continuation at
// evaluation, density or reconstruction time. The shape discipline is
// runtime-checked: every interpreter asserts a bind's declared continuation
// shape against the continuation actually produced and fails with a
// ShapeError on mismatch.
package trace

import (
	"reflect"
	"strings"

	"github.com/funvibe/funprob/internal/dist"
	"github.com/funvibe/funprob/internal/prim"
	"github.com/funvibe/funprob/internal/weighted"
)

// Shape is the ordered list of slot type tags a joint-trace program draws.
type Shape []string

// Tag is the slot tag for values of type A.
func Tag[A any]() string {
	return reflect.TypeOf((*A)(nil)).Elem().String()
}

// Equal reports whether two shapes list the same tags in the same order.
func (s Shape) Equal(o Shape) bool {
	if len(s) != len(o) {
		return false
	}
	for i := range s {
		if s[i] != o[i] {
			return false
		}
	}
	return true
}

func (s Shape) String() string {
	return "[" + strings.Join(s, " ") + "]"
}

// Trace is an ordered, fixed-length sequence of already-sampled primitive
// values, one per slot in program order. A trace is meaningful only relative
// to the program whose shape produced the slot layout.
type Trace []any

func (t Trace) concat(o Trace) Trace {
	out := make(Trace, 0, len(t)+len(o))
	out = append(out, t...)
	return append(out, o...)
}

// JDist is a joint-trace probabilistic program producing a value of type A.
// The variant set is closed; Pure, Bind, Map, FromPrim and Condition are the
// only public constructors, and interpreters are exposed as the package
// functions Eval, Density, Marginal, Joint and Propose.
type JDist[A any] interface {
	// Shape is the ordered slot list of every primitive draw the program
	// performs.
	Shape() Shape

	eval(t Trace) (A, error)
	density(t Trace) (weighted.Weight, error)
	marginal() dist.Dist[A]
	joint() dist.Dist[Trace]
	jointTrace() JDist[Trace]
}

// Pure is the one-point joint-trace program on x. It owns no slots.
func Pure[A any](x A) JDist[A] { return jret[A]{value: x} }

// FromPrim draws once from a primitive distribution, owning exactly one slot.
func FromPrim[A any](d prim.Dist[A]) JDist[A] {
	return jprim[A]{d: d, tag: Tag[A]()}
}

// Bind sequences parent with next. nextShape declares the slot list of every
// program next can return; the combined shape is the concatenation of the
// parent's slots and nextShape, and every interpreter asserts the
// declaration against the continuation it actually obtains.
func Bind[A, B any](parent JDist[A], next func(A) JDist[B], nextShape Shape) JDist[B] {
	combined := make(Shape, 0, len(parent.Shape())+len(nextShape))
	combined = append(combined, parent.Shape()...)
	combined = append(combined, nextShape...)
	return jbind[A, B]{parent: parent, next: next, nextShape: nextShape, shape: combined}
}

// Map applies a pure function to a program's outcome, preserving its slots.
func Map[A, B any](parent JDist[A], f func(A) B) JDist[B] {
	return Bind(parent, func(x A) JDist[B] { return Pure(f(x)) }, Shape{})
}

// Condition reweights parent by a nonnegative likelihood of its outcome.
func Condition[A any](score dist.Score[A], parent JDist[A]) JDist[A] {
	return jcond[A]{score: score, parent: parent}
}

// Eval deterministically recovers the value the program would produce if
// the trace's values were substituted for its primitive draws in order.
func Eval[A any](p JDist[A], t Trace) (A, error) {
	return p.eval(t)
}

// Density is the joint density of the trace under the program. Conditioning
// multiplies the density by the score at the program's value; it never
// renormalizes.
func Density[A any](p JDist[A], t Trace) (weighted.Weight, error) {
	return p.density(t)
}

// Marginal projects the program down to a plain forward-sampleable program,
// discarding trace structure.
func Marginal[A any](p JDist[A]) dist.Dist[A] {
	return p.marginal()
}

// Joint is the dual projection: a plain program whose sampled outcome is the
// full trace of underlying draws rather than the semantic value.
func Joint[A any](p JDist[A]) dist.Dist[Trace] {
	return p.joint()
}

// Propose lets proposal stand in for target: the returned program draws
// proposal's trace, maps it through target's evaluation function, and
// corrects the weight by the density ratio target/proposal. Both programs
// must share an identical slot-list shape.
func Propose[A any](proposal, target JDist[A]) (JDist[A], error) {
	if !proposal.Shape().Equal(target.Shape()) {
		return nil, &ShapeError{Op: "propose", Want: target.Shape().String(), Got: proposal.Shape().String()}
	}
	ratio := func(t Trace) (weighted.Weight, error) {
		num, err := target.density(t)
		if err != nil {
			return weighted.Zero(), err
		}
		den, err := proposal.density(t)
		if err != nil {
			return weighted.Zero(), err
		}
		return num.Div(den), nil
	}
	scored := Condition(ratio, proposal.jointTrace())
	return Bind(scored, func(t Trace) JDist[A] {
		x, err := target.eval(t)
		if err != nil {
			return jfail[A]{err: err, shape: Shape{}}
		}
		return Pure(x)
	}, Shape{}), nil
}
