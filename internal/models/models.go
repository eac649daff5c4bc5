// Package models holds the example models shared by the CLI and the tests.
package models

import (
	"github.com/funvibe/funprob/internal/dist"
	"github.com/funvibe/funprob/internal/prim"
	"github.com/funvibe/funprob/internal/trace"
	"github.com/funvibe/funprob/internal/weighted"
)

// TwoNormals is the sum of two independent Normal(0, sd) draws, with both
// draws visible as trace slots.
func TwoNormals(sd float64) trace.JDist[float64] {
	n := prim.Normal{Mean: 0, SD: sd}
	return trace.Bind(trace.FromPrim[float64](n), func(x float64) trace.JDist[float64] {
		return trace.Map(trace.FromPrim[float64](n), func(y float64) float64 { return x + y })
	}, trace.Shape{trace.Tag[float64]()})
}

// UnequalCoins flips two fair coins conditioned on the flips disagreeing;
// the outcome reports whether they disagreed.
func UnequalCoins() dist.Dist[bool] {
	coin := dist.FromPrim[bool](prim.Bernoulli{P: 0.5})
	flips := dist.Bind(coin, func(a bool) dist.Dist[bool] {
		return dist.Map(coin, func(b bool) bool { return a != b })
	})
	return dist.Condition(func(differ bool) (weighted.Weight, error) {
		if differ {
			return weighted.One(), nil
		}
		return weighted.Zero(), nil
	}, flips)
}

// BetaBernoulli is a Beta(a, b) prior over a coin weight conditioned on a
// sequence of observed flips. Its exact posterior is
// Beta(a+#true, b+#false).
func BetaBernoulli(a, b float64, obs []bool) dist.Dist[float64] {
	d := dist.FromPrim[float64](prim.Beta{A: a, B: b})
	for _, o := range obs {
		d = dist.Condition(likelihood(o), d)
	}
	return d
}

func likelihood(o bool) dist.Score[float64] {
	return func(w float64) (weighted.Weight, error) {
		if o {
			return weighted.FromFloat(w), nil
		}
		return weighted.FromFloat(1 - w), nil
	}
}

// Dice is the sum of n fair six-sided dice.
func Dice(n int) dist.Dist[int] {
	die := dist.FromPrim[int](prim.UniformD{Lo: 1, Hi: 6})
	d := dist.Pure(0)
	for i := 0; i < n; i++ {
		d = dist.Bind(d, func(acc int) dist.Dist[int] {
			return dist.Map(die, func(v int) int { return acc + v })
		})
	}
	return d
}
