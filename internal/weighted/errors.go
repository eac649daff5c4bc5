package weighted

import "fmt"

// BadLikelihoodError indicates a factor was called with a negative or NaN
// likelihood.
type BadLikelihoodError struct {
	Value float64
}

func (e *BadLikelihoodError) Error() string {
	return fmt.Sprintf("likelihood must be a nonnegative real, got %v", e.Value)
}

// ZeroMassError indicates a set of weights with no mass was normalized.
type ZeroMassError struct {
	Count int
}

func (e *ZeroMassError) Error() string {
	return fmt.Sprintf("cannot normalize %d weights with zero total mass", e.Count)
}
