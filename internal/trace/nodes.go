package trace

import (
	"fmt"

	"github.com/funvibe/funprob/internal/dist"
	"github.com/funvibe/funprob/internal/prim"
	"github.com/funvibe/funprob/internal/weighted"
)

type jret[A any] struct {
	value A
}

func (j jret[A]) Shape() Shape { return Shape{} }

func (j jret[A]) eval(t Trace) (A, error) {
	if len(t) != 0 {
		var zero A
		return zero, &ShapeError{Op: "eval", Want: "[]", Got: fmt.Sprintf("%d slots", len(t))}
	}
	return j.value, nil
}

func (j jret[A]) density(t Trace) (weighted.Weight, error) {
	if len(t) != 0 {
		return weighted.Zero(), &ShapeError{Op: "density", Want: "[]", Got: fmt.Sprintf("%d slots", len(t))}
	}
	return weighted.One(), nil
}

func (j jret[A]) marginal() dist.Dist[A] { return dist.Pure(j.value) }

func (j jret[A]) joint() dist.Dist[Trace] { return dist.Pure(Trace{}) }

func (j jret[A]) jointTrace() JDist[Trace] { return Pure(Trace{}) }

type jprim[A any] struct {
	d   prim.Dist[A]
	tag string
}

func (j jprim[A]) Shape() Shape { return Shape{j.tag} }

func (j jprim[A]) eval(t Trace) (A, error) {
	var zero A
	if len(t) != 1 {
		return zero, &ShapeError{Op: "eval", Want: Shape{j.tag}.String(), Got: fmt.Sprintf("%d slots", len(t))}
	}
	x, ok := t[0].(A)
	if !ok {
		return zero, &ShapeError{Op: "eval", Want: j.tag, Got: fmt.Sprintf("%T", t[0])}
	}
	return x, nil
}

func (j jprim[A]) density(t Trace) (weighted.Weight, error) {
	x, err := j.eval(t)
	if err != nil {
		return weighted.Zero(), err
	}
	return j.d.Density(x), nil
}

func (j jprim[A]) marginal() dist.Dist[A] { return dist.FromPrim(j.d) }

func (j jprim[A]) joint() dist.Dist[Trace] {
	return dist.Map(dist.FromPrim(j.d), func(x A) Trace { return Trace{x} })
}

func (j jprim[A]) jointTrace() JDist[Trace] {
	return Map(JDist[A](j), func(x A) Trace { return Trace{x} })
}

type jbind[A, B any] struct {
	parent    JDist[A]
	next      func(A) JDist[B]
	nextShape Shape
	shape     Shape
}

func (j jbind[A, B]) Shape() Shape { return j.shape }

// continuation resolves next at x and asserts the declared suffix shape.
func (j jbind[A, B]) continuation(x A) (JDist[B], error) {
	k := j.next(x)
	if !k.Shape().Equal(j.nextShape) {
		return nil, &ShapeError{Op: "bind continuation", Want: j.nextShape.String(), Got: k.Shape().String()}
	}
	return k, nil
}

func (j jbind[A, B]) split(t Trace) (Trace, Trace, error) {
	if len(t) != len(j.shape) {
		return nil, nil, &ShapeError{Op: "trace split", Want: j.shape.String(), Got: fmt.Sprintf("%d slots", len(t))}
	}
	n := len(j.parent.Shape())
	return t[:n], t[n:], nil
}

func (j jbind[A, B]) eval(t Trace) (B, error) {
	var zero B
	prefix, suffix, err := j.split(t)
	if err != nil {
		return zero, err
	}
	x, err := j.parent.eval(prefix)
	if err != nil {
		return zero, err
	}
	k, err := j.continuation(x)
	if err != nil {
		return zero, err
	}
	return k.eval(suffix)
}

func (j jbind[A, B]) density(t Trace) (weighted.Weight, error) {
	prefix, suffix, err := j.split(t)
	if err != nil {
		return weighted.Zero(), err
	}
	wp, err := j.parent.density(prefix)
	if err != nil {
		return weighted.Zero(), err
	}
	x, err := j.parent.eval(prefix)
	if err != nil {
		return weighted.Zero(), err
	}
	k, err := j.continuation(x)
	if err != nil {
		return weighted.Zero(), err
	}
	wq, err := k.density(suffix)
	if err != nil {
		return weighted.Zero(), err
	}
	return wp.Mul(wq), nil
}

func (j jbind[A, B]) marginal() dist.Dist[B] {
	return dist.Bind(j.parent.marginal(), func(x A) dist.Dist[B] {
		k, err := j.continuation(x)
		if err != nil {
			return dist.Fail[B](err)
		}
		return k.marginal()
	})
}

func (j jbind[A, B]) joint() dist.Dist[Trace] {
	return dist.Bind(j.parent.joint(), func(prefix Trace) dist.Dist[Trace] {
		x, err := j.parent.eval(prefix)
		if err != nil {
			return dist.Fail[Trace](err)
		}
		k, err := j.continuation(x)
		if err != nil {
			return dist.Fail[Trace](err)
		}
		return dist.Map(k.joint(), func(suffix Trace) Trace { return prefix.concat(suffix) })
	})
}

func (j jbind[A, B]) jointTrace() JDist[Trace] {
	return Bind(j.parent.jointTrace(), func(prefix Trace) JDist[Trace] {
		x, err := j.parent.eval(prefix)
		if err != nil {
			return jfail[Trace]{err: err, shape: j.nextShape}
		}
		k, err := j.continuation(x)
		if err != nil {
			return jfail[Trace]{err: err, shape: j.nextShape}
		}
		return Map(k.jointTrace(), func(suffix Trace) Trace { return prefix.concat(suffix) })
	}, j.nextShape)
}

type jcond[A any] struct {
	score  dist.Score[A]
	parent JDist[A]
}

func (j jcond[A]) Shape() Shape { return j.parent.Shape() }

func (j jcond[A]) eval(t Trace) (A, error) { return j.parent.eval(t) }

func (j jcond[A]) density(t Trace) (weighted.Weight, error) {
	w, err := j.parent.density(t)
	if err != nil {
		return weighted.Zero(), err
	}
	x, err := j.parent.eval(t)
	if err != nil {
		return weighted.Zero(), err
	}
	s, err := j.score(x)
	if err != nil {
		return weighted.Zero(), err
	}
	return w.Mul(s), nil
}

func (j jcond[A]) marginal() dist.Dist[A] {
	return dist.Condition(j.score, j.parent.marginal())
}

func (j jcond[A]) joint() dist.Dist[Trace] {
	return dist.Condition(j.traceScore(), j.parent.joint())
}

func (j jcond[A]) jointTrace() JDist[Trace] {
	return Condition(j.traceScore(), j.parent.jointTrace())
}

// traceScore lifts the outcome score to a score on full traces: the
// program's value is recovered from the trace first.
func (j jcond[A]) traceScore() dist.Score[Trace] {
	return func(t Trace) (weighted.Weight, error) {
		x, err := j.parent.eval(t)
		if err != nil {
			return weighted.Zero(), err
		}
		return j.score(x)
	}
}

// jfail carries a construction-time error discovered inside a continuation,
// where no error can be returned directly; every interpreter surfaces it.
type jfail[A any] struct {
	err   error
	shape Shape
}

func (j jfail[A]) Shape() Shape { return j.shape }

func (j jfail[A]) eval(Trace) (A, error) {
	var zero A
	return zero, j.err
}

func (j jfail[A]) density(Trace) (weighted.Weight, error) {
	return weighted.Zero(), j.err
}

func (j jfail[A]) marginal() dist.Dist[A] { return dist.Fail[A](j.err) }

func (j jfail[A]) joint() dist.Dist[Trace] { return dist.Fail[Trace](j.err) }

func (j jfail[A]) jointTrace() JDist[Trace] {
	return jfail[Trace]{err: j.err, shape: j.shape}
}
