package weighted

// Acc tracks the running multiplicative weight of a computation. Only
// explicit factors move it; it never influences the computation's control
// flow.
//
// A recording Acc (NewRecording) forwards every factor to an inner Acc as
// well as accumulating it itself. Forwarding is one level per accumulator
// and therefore transitive along a chain: in a chain built by repeated
// NewRecording, every accumulator observes every factor. Reset is local and
// is never forwarded.
type Acc struct {
	total  Weight
	record *Acc
}

// NewAcc returns an accumulator at the identity weight.
func NewAcc() *Acc { return &Acc{total: One()} }

// NewRecording returns an accumulator that also forwards factors to inner.
func NewRecording(inner *Acc) *Acc { return &Acc{total: One(), record: inner} }

// Factor multiplies the running weight by a nonnegative likelihood.
// Negative or NaN likelihoods are a caller error.
func (a *Acc) Factor(p float64) error {
	if p < 0 || p != p {
		return &BadLikelihoodError{Value: p}
	}
	a.FactorWeight(FromFloat(p))
	return nil
}

// FactorWeight multiplies the running weight by an already log-domain weight.
func (a *Acc) FactorWeight(w Weight) {
	a.total = a.total.Mul(w)
	if a.record != nil {
		a.record.FactorWeight(w)
	}
}

// Reset restores the identity weight without touching any inner accumulator.
func (a *Acc) Reset() { a.total = One() }

// Total returns the accumulated weight.
func (a *Acc) Total() Weight { return a.total }

// Comp is a computation that may emit factors while producing a value.
type Comp[A any] func(*Acc) (A, error)

// Run executes m against a fresh accumulator, starting from the identity
// weight, and returns the value together with the final weight.
func Run[A any](m Comp[A]) (A, Weight, error) {
	acc := NewAcc()
	x, err := m(acc)
	return x, acc.Total(), err
}

// WithWeight lifts a computation that already carries its own weight, so
// that Run(WithWeight(m)) returns exactly m's value and weight.
func WithWeight[A any](m func() (A, Weight, error)) Comp[A] {
	return func(acc *Acc) (A, error) {
		x, w, err := m()
		if err != nil {
			return x, err
		}
		acc.FactorWeight(w)
		return x, nil
	}
}
