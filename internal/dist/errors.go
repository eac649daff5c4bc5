package dist

import "fmt"

// UnconditionedSamplingError indicates that an interpreter without
// conditioning semantics reached a Condition node. The model needs the
// prior-extraction or enumeration interpreter instead.
type UnconditionedSamplingError struct {
	Interpreter string
}

func (e *UnconditionedSamplingError) Error() string {
	return fmt.Sprintf("unconditioned sampling: %s interpreter reached a conditional node", e.Interpreter)
}

// ContinuousError indicates that exact enumeration reached a primitive with
// no finite support; the model is not fully discrete.
type ContinuousError struct {
	Prim string
}

func (e *ContinuousError) Error() string {
	return fmt.Sprintf("unhandled continuous variable: primitive %q has no finite support", e.Prim)
}
