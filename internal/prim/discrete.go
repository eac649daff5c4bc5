package prim

import (
	"github.com/funvibe/funprob/internal/rng"
	"github.com/funvibe/funprob/internal/weighted"
)

// Bernoulli is a coin flip producing true with probability P.
type Bernoulli struct {
	P float64
}

func (b Bernoulli) Name() string { return "bernoulli" }

func (b Bernoulli) Sample(src rng.Source) bool {
	return src.Rand().Float64() < b.P
}

func (b Bernoulli) Density(x bool) weighted.Weight {
	if x {
		return weighted.FromFloat(b.P)
	}
	return weighted.FromFloat(1 - b.P)
}

func (b Bernoulli) Support() []Choice[bool] {
	return []Choice[bool]{{Value: false, Prob: 1 - b.P}, {Value: true, Prob: b.P}}
}

// UniformD is the discrete uniform distribution over the integers Lo..Hi
// inclusive.
type UniformD struct {
	Lo int
	Hi int
}

func (u UniformD) Name() string { return "uniformd" }

func (u UniformD) width() int { return u.Hi - u.Lo + 1 }

func (u UniformD) Sample(src rng.Source) int {
	return u.Lo + int(src.Rand().Int64N(int64(u.width())))
}

func (u UniformD) Density(x int) weighted.Weight {
	if x < u.Lo || x > u.Hi {
		return weighted.Zero()
	}
	return weighted.FromFloat(1 / float64(u.width()))
}

func (u UniformD) Support() []Choice[int] {
	p := 1 / float64(u.width())
	out := make([]Choice[int], 0, u.width())
	for v := u.Lo; v <= u.Hi; v++ {
		out = append(out, Choice[int]{Value: v, Prob: p})
	}
	return out
}

// Categorical draws from an explicit list of weighted alternatives. The
// masses are used as given; sampling and density normalize by their total.
type Categorical[A comparable] struct {
	Choices []Choice[A]
}

func (c Categorical[A]) Name() string { return "categorical" }

func (c Categorical[A]) total() float64 {
	t := 0.0
	for _, ch := range c.Choices {
		t += ch.Prob
	}
	return t
}

func (c Categorical[A]) Sample(src rng.Source) A {
	target := src.Rand().Float64() * c.total()
	acc := 0.0
	for _, ch := range c.Choices {
		acc += ch.Prob
		if target < acc {
			return ch.Value
		}
	}
	// Float round-off can leave target at the very top of the range.
	return c.Choices[len(c.Choices)-1].Value
}

func (c Categorical[A]) Density(x A) weighted.Weight {
	mass := 0.0
	for _, ch := range c.Choices {
		if ch.Value == x {
			mass += ch.Prob
		}
	}
	return weighted.FromFloat(mass / c.total())
}

func (c Categorical[A]) Support() []Choice[A] {
	out := make([]Choice[A], len(c.Choices))
	copy(out, c.Choices)
	return out
}
