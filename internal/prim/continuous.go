package prim

import (
	"math"
	"math/rand/v2"

	"github.com/funvibe/funprob/internal/rng"
	"github.com/funvibe/funprob/internal/weighted"
)

const logTwoPi = 1.8378770664093453 // ln(2*pi)

// Normal is the normal distribution with mean Mean and standard deviation SD.
type Normal struct {
	Mean float64
	SD   float64
}

func (n Normal) Name() string { return "normal" }

func (n Normal) Sample(src rng.Source) float64 {
	return src.Rand().NormFloat64()*n.SD + n.Mean
}

func (n Normal) Density(x float64) weighted.Weight {
	z := (x - n.Mean) / n.SD
	return weighted.FromLog(-0.5*z*z - math.Log(n.SD) - 0.5*logTwoPi)
}

// Uniform is the continuous uniform distribution on [Lo, Hi).
type Uniform struct {
	Lo float64
	Hi float64
}

func (u Uniform) Name() string { return "uniform" }

func (u Uniform) Sample(src rng.Source) float64 {
	return u.Lo + src.Rand().Float64()*(u.Hi-u.Lo)
}

func (u Uniform) Density(x float64) weighted.Weight {
	if x < u.Lo || x >= u.Hi {
		return weighted.Zero()
	}
	return weighted.FromLog(-math.Log(u.Hi - u.Lo))
}

// Beta is the beta distribution with shape parameters A and B.
type Beta struct {
	A float64
	B float64
}

func (b Beta) Name() string { return "beta" }

func (b Beta) Sample(src rng.Source) float64 {
	r := src.Rand()
	x := gammaSample(r, b.A)
	y := gammaSample(r, b.B)
	return x / (x + y)
}

func (b Beta) Density(x float64) weighted.Weight {
	if x <= 0 || x >= 1 {
		return weighted.Zero()
	}
	la, _ := math.Lgamma(b.A)
	lb, _ := math.Lgamma(b.B)
	lab, _ := math.Lgamma(b.A + b.B)
	l := (b.A-1)*math.Log(x) + (b.B-1)*math.Log1p(-x) + lab - la - lb
	return weighted.FromLog(l)
}

// gammaSample draws from Gamma(shape, 1) by Marsaglia-Tsang squeeze, with
// the usual power-of-uniform boost for shape below one.
func gammaSample(r *rand.Rand, shape float64) float64 {
	if shape < 1 {
		u := r.Float64()
		return gammaSample(r, shape+1) * math.Pow(u, 1/shape)
	}
	d := shape - 1.0/3.0
	c := 1.0 / math.Sqrt(9*d)
	for {
		x := r.NormFloat64()
		v := 1 + c*x
		if v <= 0 {
			continue
		}
		v = v * v * v
		u := r.Float64()
		if u < 1-0.0331*x*x*x*x {
			return d * v
		}
		if math.Log(u) < 0.5*x*x+d*(1-v+math.Log(v)) {
			return d * v
		}
	}
}
