package cli

import (
	"fmt"

	"github.com/funvibe/funprob/internal/dist"
	"github.com/funvibe/funprob/internal/enum"
	"github.com/funvibe/funprob/internal/models"
	"github.com/funvibe/funprob/internal/trace"
)

// buildSampled resolves a model name to a scalar-valued program suitable for
// importance sampling.
func buildSampled(cfg RunConfig) (dist.Dist[float64], error) {
	switch cfg.Model {
	case "beta-bernoulli":
		a := cfg.param("alpha", 1)
		b := cfg.param("beta", 1)
		return models.BetaBernoulli(a, b, cfg.Observations), nil
	case "two-normals":
		sd := cfg.param("sd", 1)
		return trace.Marginal(models.TwoNormals(sd)), nil
	default:
		return nil, fmt.Errorf("unknown sampled model %q (have: beta-bernoulli, two-normals)", cfg.Model)
	}
}

// enumerated is one printable row of an exact enumeration.
type enumerated struct {
	Outcome string
	Prob    float64
}

// buildEnumerated resolves a model name to its exact normalized population
// together with the model evidence.
func buildEnumerated(cfg RunConfig) ([]enumerated, float64, error) {
	switch cfg.Model {
	case "unequal-coins":
		pop, err := enum.FromDist(models.UnequalCoins())
		if err != nil {
			return nil, 0, err
		}
		evidence := pop.Evidence().Float()
		compacted := enum.CompactFunc(pop, func(b bool) int {
			if b {
				return 1
			}
			return 0
		})
		normalized, err := enum.Normalize(compacted)
		if err != nil {
			return nil, 0, err
		}
		return rows(normalized.Explicit(), func(b bool) string { return fmt.Sprintf("%t", b) }), evidence, nil
	case "dice":
		n := int(cfg.param("n", 2))
		pop, err := enum.FromDist(models.Dice(n))
		if err != nil {
			return nil, 0, err
		}
		evidence := pop.Evidence().Float()
		normalized, err := enum.Normalize(enum.Compact(pop))
		if err != nil {
			return nil, 0, err
		}
		return rows(normalized.Explicit(), func(v int) string { return fmt.Sprintf("%d", v) }), evidence, nil
	default:
		return nil, 0, fmt.Errorf("unknown discrete model %q (have: unequal-coins, dice)", cfg.Model)
	}
}

// rows renders compacted outcomes in their population order.
func rows[A any](outs []dist.Outcome[A], show func(A) string) []enumerated {
	out := make([]enumerated, len(outs))
	for i, o := range outs {
		out[i] = enumerated{Outcome: show(o.Value), Prob: o.Weight.Float()}
	}
	return out
}
