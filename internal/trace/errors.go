package trace

import "fmt"

// ShapeError reports a violated slot-list invariant: a trace that does not
// match a program's shape, a bind continuation that deviates from its
// declared shape, or a propose over differently-shaped programs.
type ShapeError struct {
	Op   string
	Want string
	Got  string
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("shape invariant violated in %s: want %s, got %s", e.Op, e.Want, e.Got)
}
