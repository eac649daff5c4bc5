package dist

import (
	"github.com/funvibe/funprob/internal/prim"
	"github.com/funvibe/funprob/internal/rng"
	"github.com/funvibe/funprob/internal/weighted"
)

type ret[A any] struct {
	value A
}

func (r ret[A]) sample(rng.Source) (A, error) { return r.value, nil }

func (r ret[A]) prior(rng.Source) (A, weighted.Weight, error) {
	return r.value, weighted.One(), nil
}

func (r ret[A]) priorValue(rng.Source) (A, error) { return r.value, nil }

func (r ret[A]) explicit() ([]Outcome[A], error) {
	return []Outcome[A]{{Value: r.value, Weight: weighted.One()}}, nil
}

type bind[A, B any] struct {
	parent Dist[A]
	next   func(A) Dist[B]
}

func (b bind[A, B]) sample(src rng.Source) (B, error) {
	left, right := src.Split()
	x, err := b.parent.sample(left)
	if err != nil {
		var zero B
		return zero, err
	}
	return b.next(x).sample(right)
}

func (b bind[A, B]) prior(src rng.Source) (B, weighted.Weight, error) {
	left, right := src.Split()
	x, wp, err := b.parent.prior(left)
	if err != nil {
		var zero B
		return zero, weighted.Zero(), err
	}
	y, wq, err := b.next(x).prior(right)
	if err != nil {
		var zero B
		return zero, weighted.Zero(), err
	}
	return y, wp.Mul(wq), nil
}

func (b bind[A, B]) priorValue(src rng.Source) (B, error) {
	left, right := src.Split()
	x, err := b.parent.priorValue(left)
	if err != nil {
		var zero B
		return zero, err
	}
	return b.next(x).priorValue(right)
}

func (b bind[A, B]) explicit() ([]Outcome[B], error) {
	parents, err := b.parent.explicit()
	if err != nil {
		return nil, err
	}
	var out []Outcome[B]
	for _, p := range parents {
		children, err := b.next(p.Value).explicit()
		if err != nil {
			return nil, err
		}
		for _, c := range children {
			out = append(out, Outcome[B]{Value: c.Value, Weight: p.Weight.Mul(c.Weight)})
		}
	}
	return out, nil
}

type primNode[A any] struct {
	d prim.Dist[A]
}

func (p primNode[A]) sample(src rng.Source) (A, error) {
	return p.d.Sample(src), nil
}

func (p primNode[A]) prior(src rng.Source) (A, weighted.Weight, error) {
	return p.d.Sample(src), weighted.One(), nil
}

func (p primNode[A]) priorValue(src rng.Source) (A, error) {
	return p.d.Sample(src), nil
}

func (p primNode[A]) explicit() ([]Outcome[A], error) {
	disc, ok := p.d.(prim.Discrete[A])
	if !ok {
		return nil, &ContinuousError{Prim: p.d.Name()}
	}
	support := disc.Support()
	out := make([]Outcome[A], len(support))
	for i, ch := range support {
		out[i] = Outcome[A]{Value: ch.Value, Weight: weighted.FromFloat(ch.Prob)}
	}
	return out, nil
}

type conditional[A any] struct {
	score  Score[A]
	parent Dist[A]
}

func (c conditional[A]) sample(rng.Source) (A, error) {
	var zero A
	return zero, &UnconditionedSamplingError{Interpreter: "forward sampling"}
}

func (c conditional[A]) prior(src rng.Source) (A, weighted.Weight, error) {
	x, w, err := c.parent.prior(src)
	if err != nil {
		return x, weighted.Zero(), err
	}
	s, err := c.score(x)
	if err != nil {
		return x, weighted.Zero(), err
	}
	return x, w.Mul(s), nil
}

func (c conditional[A]) priorValue(src rng.Source) (A, error) {
	return c.parent.priorValue(src)
}

func (c conditional[A]) explicit() ([]Outcome[A], error) {
	parents, err := c.parent.explicit()
	if err != nil {
		return nil, err
	}
	out := make([]Outcome[A], len(parents))
	for i, p := range parents {
		s, err := c.score(p.Value)
		if err != nil {
			return nil, err
		}
		out[i] = Outcome[A]{Value: p.Value, Weight: p.Weight.Mul(s)}
	}
	return out, nil
}

type failNode[A any] struct {
	err error
}

func (f failNode[A]) sample(rng.Source) (A, error) {
	var zero A
	return zero, f.err
}

func (f failNode[A]) prior(rng.Source) (A, weighted.Weight, error) {
	var zero A
	return zero, weighted.Zero(), f.err
}

func (f failNode[A]) priorValue(rng.Source) (A, error) {
	var zero A
	return zero, f.err
}

func (f failNode[A]) explicit() ([]Outcome[A], error) {
	return nil, f.err
}
