package trace

import (
	"math"
	"testing"

	"github.com/funvibe/funprob/internal/dist"
	"github.com/funvibe/funprob/internal/prim"
	"github.com/funvibe/funprob/internal/rng"
	"github.com/funvibe/funprob/internal/weighted"
)

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func pdfNormal(mean, sd, x float64) float64 {
	z := (x - mean) / sd
	return math.Exp(-0.5*z*z) / (sd * math.Sqrt(2*math.Pi))
}

// twoNormals is the sum of two independent Normal(0, sd) draws.
func twoNormals(sd float64) JDist[float64] {
	n := prim.Normal{Mean: 0, SD: sd}
	return Bind(FromPrim[float64](n), func(x float64) JDist[float64] {
		return Map(FromPrim[float64](n), func(y float64) float64 { return x + y })
	}, Shape{Tag[float64]()})
}

func TestShapes(t *testing.T) {
	tests := []struct {
		name string
		got  Shape
		want Shape
	}{
		{"return", Pure(1).Shape(), Shape{}},
		{"primitive", FromPrim[float64](prim.Normal{SD: 1}).Shape(), Shape{"float64"}},
		{"two normals", twoNormals(1).Shape(), Shape{"float64", "float64"}},
		{"conditional", Condition(nil, twoNormals(1)).Shape(), Shape{"float64", "float64"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !tt.got.Equal(tt.want) {
				t.Errorf("Shape = %s, want %s", tt.got, tt.want)
			}
		})
	}
}

func TestEvalSubstitutesTrace(t *testing.T) {
	got, err := Eval(twoNormals(1), Trace{1.0, 2.0})
	if err != nil {
		t.Fatalf("Eval failed: %v", err)
	}
	if got != 3.0 {
		t.Errorf("Eval = %v, want 3", got)
	}
}

func TestDensityReturnIsOne(t *testing.T) {
	w, err := Density(Pure("x"), Trace{})
	if err != nil {
		t.Fatalf("Density failed: %v", err)
	}
	if got := w.Float(); got != 1 {
		t.Errorf("Density(Pure, []) = %v, want 1", got)
	}
}

func TestDensityFactorizesAcrossBind(t *testing.T) {
	w, err := Density(twoNormals(1), Trace{1.0, 2.0})
	if err != nil {
		t.Fatalf("Density failed: %v", err)
	}
	want := pdfNormal(0, 1, 1.0) * pdfNormal(0, 1, 2.0)
	if got := w.Float(); !almostEqual(got, want, 1e-12) {
		t.Errorf("Density = %v, want %v", got, want)
	}
}

func TestDensityConditionalMultipliesScore(t *testing.T) {
	d := Condition(func(sum float64) (weighted.Weight, error) {
		return weighted.FromFloat(sum / 10), nil
	}, twoNormals(1))
	w, err := Density(d, Trace{1.0, 2.0})
	if err != nil {
		t.Fatalf("Density failed: %v", err)
	}
	want := pdfNormal(0, 1, 1.0) * pdfNormal(0, 1, 2.0) * 0.3
	if got := w.Float(); !almostEqual(got, want, 1e-12) {
		t.Errorf("Density = %v, want %v", got, want)
	}
}

func TestTraceShapeErrors(t *testing.T) {
	tests := []struct {
		name string
		run  func() error
	}{
		{"eval short trace", func() error {
			_, err := Eval(twoNormals(1), Trace{1.0})
			return err
		}},
		{"eval long trace", func() error {
			_, err := Eval(Pure(1), Trace{1.0})
			return err
		}},
		{"eval wrong slot type", func() error {
			_, err := Eval(twoNormals(1), Trace{1.0, "two"})
			return err
		}},
		{"density short trace", func() error {
			_, err := Density(twoNormals(1), Trace{1.0})
			return err
		}},
		{"undeclared continuation shape", func() error {
			// The continuation draws a slot the bind never declared.
			bad := Bind(Pure(0.0), func(float64) JDist[float64] {
				return FromPrim[float64](prim.Normal{SD: 1})
			}, Shape{})
			_, err := Eval(bad, Trace{})
			return err
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.run()
			if _, ok := err.(*ShapeError); !ok {
				t.Errorf("error = %v, want *ShapeError", err)
			}
		})
	}
}

func TestMarginalForwardSamples(t *testing.T) {
	m := Marginal(twoNormals(1))
	src := rng.New(31)
	a, err := dist.Sample(m, src)
	if err != nil {
		t.Fatalf("Sample failed: %v", err)
	}
	b, err := dist.Sample(m, src)
	if err != nil {
		t.Fatalf("Sample failed: %v", err)
	}
	if a != b {
		t.Errorf("same source gave different samples: %v vs %v", a, b)
	}
}

func TestMarginalPreservesConditioning(t *testing.T) {
	d := Condition(func(float64) (weighted.Weight, error) {
		return weighted.One(), nil
	}, twoNormals(1))
	_, err := dist.Sample(Marginal(d), rng.New(0))
	if _, ok := err.(*dist.UnconditionedSamplingError); !ok {
		t.Errorf("error = %v, want *dist.UnconditionedSamplingError", err)
	}
}

func TestJointProducesConsistentTrace(t *testing.T) {
	p := twoNormals(1)
	tr, err := dist.Sample(Joint(p), rng.New(13))
	if err != nil {
		t.Fatalf("Sample(Joint) failed: %v", err)
	}
	if len(tr) != 2 {
		t.Fatalf("trace length = %d, want 2", len(tr))
	}
	x, xok := tr[0].(float64)
	y, yok := tr[1].(float64)
	if !xok || !yok {
		t.Fatalf("trace slots = (%T, %T), want (float64, float64)", tr[0], tr[1])
	}
	sum, err := Eval(p, tr)
	if err != nil {
		t.Fatalf("Eval on sampled trace failed: %v", err)
	}
	if !almostEqual(sum, x+y, 1e-12) {
		t.Errorf("Eval = %v, want %v", sum, x+y)
	}
	w, err := Density(p, tr)
	if err != nil {
		t.Fatalf("Density on sampled trace failed: %v", err)
	}
	if w.IsZero() {
		t.Error("sampled trace has zero density under its own program")
	}
}

func TestProposeImportanceWeight(t *testing.T) {
	target := twoNormals(1)
	proposal := twoNormals(2)
	pp, err := Propose(proposal, target)
	if err != nil {
		t.Fatalf("Propose failed: %v", err)
	}
	tr := Trace{1.0, 2.0}

	// The propose program keeps the proposal's slots but evaluates through
	// the target.
	if !pp.Shape().Equal(proposal.Shape()) {
		t.Errorf("Shape = %s, want %s", pp.Shape(), proposal.Shape())
	}
	got, err := Eval(pp, tr)
	if err != nil {
		t.Fatalf("Eval failed: %v", err)
	}
	if got != 3.0 {
		t.Errorf("Eval = %v, want 3", got)
	}

	// Its density at a trace is ratio * proposalDensity = targetDensity.
	dp, err := Density(pp, tr)
	if err != nil {
		t.Fatalf("Density(propose) failed: %v", err)
	}
	dTarget, err := Density(target, tr)
	if err != nil {
		t.Fatalf("Density(target) failed: %v", err)
	}
	if !almostEqual(dp.Float(), dTarget.Float(), 1e-12) {
		t.Errorf("Density(propose) = %v, want target density %v", dp.Float(), dTarget.Float())
	}

	// The importance correction at the trace is the pdf ratio.
	dProposal, err := Density(proposal, tr)
	if err != nil {
		t.Fatalf("Density(proposal) failed: %v", err)
	}
	wantRatio := (pdfNormal(0, 1, 1.0) * pdfNormal(0, 1, 2.0)) /
		(pdfNormal(0, 2, 1.0) * pdfNormal(0, 2, 2.0))
	if got := dp.Div(dProposal).Float(); !almostEqual(got, wantRatio, 1e-9) {
		t.Errorf("importance weight = %v, want %v", got, wantRatio)
	}
}

func TestProposePriorWeightIsDensityRatio(t *testing.T) {
	target := twoNormals(1)
	proposal := twoNormals(2)
	pp, err := Propose(proposal, target)
	if err != nil {
		t.Fatalf("Propose failed: %v", err)
	}
	src := rng.New(77)
	v1, w1, err := dist.Prior(Marginal(pp), src)
	if err != nil {
		t.Fatalf("Prior failed: %v", err)
	}
	if w1.IsZero() || math.IsNaN(w1.Log()) {
		t.Errorf("importance weight = %v, want finite positive", w1.Log())
	}
	v2, w2, err := dist.Prior(Marginal(pp), src)
	if err != nil {
		t.Fatalf("Prior failed: %v", err)
	}
	if v1 != v2 || w1 != w2 {
		t.Errorf("same source gave different draws: (%v,%v) vs (%v,%v)", v1, w1.Log(), v2, w2.Log())
	}
}

func TestProposeShapeMismatch(t *testing.T) {
	single := FromPrim[float64](prim.Normal{Mean: 0, SD: 1})
	_, err := Propose(single, twoNormals(1))
	if _, ok := err.(*ShapeError); !ok {
		t.Errorf("error = %v, want *ShapeError", err)
	}
}

func TestJointOfConditionalScoresTrace(t *testing.T) {
	d := Condition(func(sum float64) (weighted.Weight, error) {
		return weighted.FromFloat(sum), nil
	}, twoNormals(1))
	j := Joint(d)
	_, err := dist.Sample(j, rng.New(0))
	if _, ok := err.(*dist.UnconditionedSamplingError); !ok {
		t.Fatalf("error = %v, want *dist.UnconditionedSamplingError", err)
	}
	tr, w, err := dist.Prior(j, rng.New(3))
	if err != nil {
		t.Fatalf("Prior failed: %v", err)
	}
	sum, err := Eval(twoNormals(1), tr)
	if err != nil {
		t.Fatalf("Eval failed: %v", err)
	}
	if sum <= 0 {
		// A negative sum is a zero score under this model.
		if !w.IsZero() {
			t.Errorf("weight = %v, want zero for nonpositive sum %v", w.Float(), sum)
		}
		return
	}
	if got := w.Float(); !almostEqual(got, sum, 1e-9) {
		t.Errorf("prior weight = %v, want score %v", got, sum)
	}
}
