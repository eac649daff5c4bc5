// Package infer provides self-normalized importance sampling on top of the
// prior-extraction interpreter: draw weighted prior samples, normalize the
// weights, summarize. Heavier schemes (SMC particle scheduling, MCMC
// kernels) live outside this module and consume the same contracts.
package infer

import (
	"github.com/funvibe/funprob/internal/dist"
	"github.com/funvibe/funprob/internal/rng"
	"github.com/funvibe/funprob/internal/weighted"
)

// Sample is one prior draw annotated with its posterior likelihood.
type Sample struct {
	Value  float64
	Weight weighted.Weight
}

// Result is a batch of weighted samples from one importance-sampling run.
type Result struct {
	Samples []Sample
}

// ImportanceSample draws n weighted samples from the program's prior. The
// source is split once per draw, so runs with the same source and n are
// reproducible and each draw sees an independent stream.
func ImportanceSample(d dist.Dist[float64], src rng.Source, n int) (Result, error) {
	samples := make([]Sample, 0, n)
	rest := src
	for i := 0; i < n; i++ {
		var cur rng.Source
		cur, rest = rest.Split()
		x, w, err := dist.Prior(d, cur)
		if err != nil {
			return Result{}, err
		}
		samples = append(samples, Sample{Value: x, Weight: w})
	}
	return Result{Samples: samples}, nil
}

// normalized returns the linear-domain normalized weights of the batch.
func (r Result) normalized() ([]float64, error) {
	ws := make([]weighted.Weight, len(r.Samples))
	for i, s := range r.Samples {
		ws[i] = s.Weight
	}
	return weighted.Normalized(ws)
}

// Mean is the self-normalized posterior mean estimate.
func (r Result) Mean() (float64, error) {
	norm, err := r.normalized()
	if err != nil {
		return 0, err
	}
	mean := 0.0
	for i, s := range r.Samples {
		mean += norm[i] * s.Value
	}
	return mean, nil
}

// Variance is the self-normalized posterior variance estimate.
func (r Result) Variance() (float64, error) {
	norm, err := r.normalized()
	if err != nil {
		return 0, err
	}
	mean := 0.0
	for i, s := range r.Samples {
		mean += norm[i] * s.Value
	}
	variance := 0.0
	for i, s := range r.Samples {
		d := s.Value - mean
		variance += norm[i] * d * d
	}
	return variance, nil
}

// LogEvidence estimates the model evidence as the average unnormalized
// weight of the batch, in log domain.
func (r Result) LogEvidence() float64 {
	if len(r.Samples) == 0 {
		return weighted.Zero().Log()
	}
	total := weighted.Zero()
	for _, s := range r.Samples {
		total = total.Add(s.Weight)
	}
	return total.Log() - logFloat(len(r.Samples))
}

func logFloat(n int) float64 {
	return weighted.FromFloat(float64(n)).Log()
}
