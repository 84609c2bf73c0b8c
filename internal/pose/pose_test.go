package pose

import (
	"math"
	"testing"
)

const tolerance = 1e-9

func TestRotationFallsBackToRest(t *testing.T) {
	p := Pose{Head: {X: 0.5}}

	if got := p.Rotation(Head).X; math.Abs(got-0.5) > tolerance {
		t.Errorf("expected stored rotation 0.5, got %f", got)
	}

	// LeftElbow is absent; lookup must yield the rest rotation, not fail.
	if got := p.Rotation(LeftElbow); got != (Rotation{}) {
		t.Errorf("expected rest rotation for missing joint, got %+v", got)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	src := Rest()
	src[Head] = Rotation{X: 1.0}

	cp := src.Clone()
	cp[Head] = Rotation{X: -2.0}
	cp[Neck] = Rotation{Z: 3.0}

	if src[Head].X != 1.0 {
		t.Errorf("mutating clone changed source: %+v", src[Head])
	}
	if src[Neck] != (Rotation{}) {
		t.Errorf("mutating clone changed source neck: %+v", src[Neck])
	}
}

func TestWithAxisDoesNotMutate(t *testing.T) {
	src := Pose{LeftElbow: {Z: 0.2}}
	out := src.WithAxis(LeftElbow, AxisX, 0.7)

	if src[LeftElbow].X != 0 {
		t.Errorf("WithAxis mutated its input: %+v", src[LeftElbow])
	}
	if got := out[LeftElbow]; got.X != 0.7 || got.Z != 0.2 {
		t.Errorf("expected {X:0.7 Z:0.2}, got %+v", got)
	}
}

func TestLerpEndpointsAndIdentity(t *testing.T) {
	a := Rest()
	a[RightShoulder] = Rotation{Z: 1.0}
	b := Rest()
	b[RightShoulder] = Rotation{Z: 3.0}

	tests := []struct {
		alpha    float64
		expected float64
	}{
		{0.0, 1.0},
		{0.25, 1.5},
		{0.5, 2.0},
		{0.999, 2.998},
	}
	for _, tt := range tests {
		got := Lerp(a, b, tt.alpha)[RightShoulder].Z
		if math.Abs(got-tt.expected) > 1e-6 {
			t.Errorf("alpha %.3f: expected %.3f, got %.3f", tt.alpha, tt.expected, got)
		}
	}

	// Equal endpoints: result equals the endpoint for any alpha.
	for _, alpha := range []float64{0, 0.3, 0.99} {
		got := Lerp(a, a, alpha)[RightShoulder].Z
		if math.Abs(got-1.0) > tolerance {
			t.Errorf("Lerp(A, A, %.2f) drifted: got %f", alpha, got)
		}
	}
}

func TestLerpResolvesMissingJointsViaRest(t *testing.T) {
	a := Pose{} // everything missing
	b := Pose{Head: {X: 2.0}}

	got := Lerp(a, b, 0.5)
	if math.Abs(got[Head].X-1.0) > tolerance {
		t.Errorf("expected 1.0 (rest..2.0 midpoint), got %f", got[Head].X)
	}
	if got.Rotation(LeftFoot) != (Rotation{}) {
		t.Errorf("joint missing from both inputs should stay at rest")
	}
}

func TestParseAxis(t *testing.T) {
	for _, tt := range []struct {
		in   string
		want Axis
		ok   bool
	}{
		{"x", AxisX, true},
		{"y", AxisY, true},
		{"z", AxisZ, true},
		{"w", AxisX, false},
		{"", AxisX, false},
	} {
		got, ok := ParseAxis(tt.in)
		if ok != tt.ok || (ok && got != tt.want) {
			t.Errorf("ParseAxis(%q) = %v, %v", tt.in, got, ok)
		}
	}
}

func TestPositionsCoverSkeleton(t *testing.T) {
	pts := Positions(Rest())
	for _, j := range Joints() {
		if _, ok := pts[j]; !ok {
			t.Errorf("no position for joint %s", j)
		}
	}

	// Head sits above the torso root in the rest pose (y grows downward).
	if pts[Head].Y >= pts[Torso].Y {
		t.Errorf("head should be above torso: head=%+v torso=%+v", pts[Head], pts[Torso])
	}
	// Feet below the torso.
	if pts[LeftFoot].Y <= pts[Torso].Y || pts[RightFoot].Y <= pts[Torso].Y {
		t.Errorf("feet should be below torso")
	}
}
