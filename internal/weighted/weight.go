package weighted

import "math"

// Weight is a nonnegative real multiplicative factor held in log domain for
// numerical stability. Multiplication is addition of logs; the identity is
// log 1 = 0. The zero weight (log = -Inf) absorbs every further factor.
type Weight float64

// One is the multiplicative identity.
func One() Weight { return 0 }

// Zero is the absorbing zero weight.
func Zero() Weight { return Weight(math.Inf(-1)) }

// FromFloat converts a linear-domain probability-like value. Nonpositive
// inputs map to the zero weight.
func FromFloat(p float64) Weight {
	if p <= 0 || math.IsNaN(p) {
		return Zero()
	}
	return Weight(math.Log(p))
}

// FromLog wraps an already log-domain value.
func FromLog(l float64) Weight { return Weight(l) }

// Mul multiplies two weights. Zero absorbs, even against an infinite
// partner, so -Inf + Inf never surfaces as NaN.
func (w Weight) Mul(o Weight) Weight {
	if w.IsZero() || o.IsZero() {
		return Zero()
	}
	return w + o
}

// Div divides w by o. Dividing the zero weight stays zero; dividing by the
// zero weight yields an infinite weight, matching the linear-domain limit.
func (w Weight) Div(o Weight) Weight {
	if w.IsZero() {
		return Zero()
	}
	return w - o
}

// Add sums two weights in linear domain (log-sum-exp).
func (w Weight) Add(o Weight) Weight {
	if w.IsZero() {
		return o
	}
	if o.IsZero() {
		return w
	}
	hi, lo := w, o
	if lo > hi {
		hi, lo = lo, hi
	}
	return hi + Weight(math.Log1p(math.Exp(float64(lo-hi))))
}

// Float returns the linear-domain value. Large log weights overflow to +Inf.
func (w Weight) Float() float64 { return math.Exp(float64(w)) }

// Log returns the log-domain value.
func (w Weight) Log() float64 { return float64(w) }

// IsZero reports whether the weight carries no mass.
func (w Weight) IsZero() bool { return math.IsInf(float64(w), -1) }

// Sum folds a slice of weights with Add.
func Sum(ws []Weight) Weight {
	total := Zero()
	for _, w := range ws {
		total = total.Add(w)
	}
	return total
}

// Normalized converts weights to linear-domain values summing to one, using
// the max-log trick so extreme log weights do not underflow as a group.
// It fails when the total mass is zero.
func Normalized(ws []Weight) ([]float64, error) {
	hi := Zero()
	for _, w := range ws {
		if w > hi || hi.IsZero() {
			hi = w
		}
	}
	if hi.IsZero() {
		return nil, &ZeroMassError{Count: len(ws)}
	}
	out := make([]float64, len(ws))
	total := 0.0
	for i, w := range ws {
		if w.IsZero() {
			continue
		}
		out[i] = math.Exp(float64(w - hi))
		total += out[i]
	}
	for i := range out {
		out[i] /= total
	}
	return out, nil
}
