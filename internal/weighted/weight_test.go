package weighted

import (
	"math"
	"testing"
)

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestWeightAlgebra(t *testing.T) {
	tests := []struct {
		name string
		got  Weight
		want float64
	}{
		{"identity", One(), 1},
		{"from float", FromFloat(0.25), 0.25},
		{"mul", FromFloat(0.5).Mul(FromFloat(0.25)), 0.125},
		{"mul identity", FromFloat(0.7).Mul(One()), 0.7},
		{"div", FromFloat(0.5).Div(FromFloat(0.25)), 2},
		{"add", FromFloat(0.25).Add(FromFloat(0.5)), 0.75},
		{"add zero", FromFloat(0.25).Add(Zero()), 0.25},
		{"from log", FromLog(math.Log(0.3)), 0.3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !almostEqual(tt.got.Float(), tt.want, 1e-12) {
				t.Errorf("got %v, want %v", tt.got.Float(), tt.want)
			}
		})
	}
}

func TestZeroWeightAbsorbs(t *testing.T) {
	tests := []struct {
		name string
		got  Weight
	}{
		{"zero times finite", Zero().Mul(FromFloat(0.5))},
		{"finite times zero", FromFloat(0.5).Mul(Zero())},
		{"zero times infinite", Zero().Mul(FromLog(math.Inf(1)))},
		{"from negative float", FromFloat(-1)},
		{"from nan", FromFloat(math.NaN())},
		{"zero divided", Zero().Div(FromFloat(0.5))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !tt.got.IsZero() {
				t.Errorf("got %v, want the zero weight", tt.got.Log())
			}
			if math.IsNaN(tt.got.Log()) {
				t.Error("zero boundary produced NaN")
			}
		})
	}
}

func TestSum(t *testing.T) {
	got := Sum([]Weight{FromFloat(0.1), FromFloat(0.2), FromFloat(0.3)})
	if !almostEqual(got.Float(), 0.6, 1e-12) {
		t.Errorf("Sum = %v, want 0.6", got.Float())
	}
	if !Sum(nil).IsZero() {
		t.Error("Sum of nothing should be the zero weight")
	}
}

func TestNormalized(t *testing.T) {
	got, err := Normalized([]Weight{FromFloat(1), FromFloat(3), Zero()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []float64{0.25, 0.75, 0}
	for i := range want {
		if !almostEqual(got[i], want[i], 1e-12) {
			t.Errorf("Normalized[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestNormalizedExtremeLogs(t *testing.T) {
	// Both weights underflow to zero in linear domain; the max-log trick
	// must still recover the 1:e ratio.
	got, err := Normalized([]Weight{FromLog(-1000), FromLog(-1001)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ratio := got[0] / got[1]
	if !almostEqual(ratio, math.E, 1e-9) {
		t.Errorf("ratio = %v, want e", ratio)
	}
}

func TestNormalizedZeroMass(t *testing.T) {
	_, err := Normalized([]Weight{Zero(), Zero()})
	if _, ok := err.(*ZeroMassError); !ok {
		t.Errorf("got %v, want *ZeroMassError", err)
	}
}
