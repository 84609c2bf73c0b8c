package timeline

import (
	"errors"
	"math"
	"testing"

	"github.com/PDC-hub/Stickman/internal/pose"
)

const tolerance = 1e-9

// two keyframes with distinct head rotations and durations [1000, 500].
func twoFrames() []Keyframe {
	a := pose.Rest()
	a[pose.Head] = pose.Rotation{X: 0}
	b := pose.Rest()
	b[pose.Head] = pose.Rotation{X: 1.0}
	return []Keyframe{
		{ID: "a", Pose: a, DurationMS: 1000},
		{ID: "b", Pose: b, DurationMS: 500},
	}
}

func headX(p pose.Pose) float64 {
	return p.Rotation(pose.Head).X
}

func TestEvaluateSegments(t *testing.T) {
	frames := twoFrames()

	tests := []struct {
		name      string
		elapsedMS int64
		expected  float64
		pastEnd   bool
	}{
		{"start of loop", 0, 0.0, false},
		{"mid first segment", 400, 0.4, false},
		{"exact boundary hits start keyframe", 1000, 1.0, false},
		{"mid wrap segment", 1250, 0.5, false},
		{"just below loop end", 1499, 1.0 - 499.0/500.0, false},
		{"loop end wraps to first keyframe", 1500, 0.0, true},
		{"second pass", 1900, 0.4, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, pastEnd, err := Evaluate(frames, tt.elapsedMS)
			if err != nil {
				t.Fatalf("Evaluate failed: %v", err)
			}
			if pastEnd != tt.pastEnd {
				t.Errorf("pastEnd = %v, want %v", pastEnd, tt.pastEnd)
			}
			if math.Abs(headX(p)-tt.expected) > 1e-6 {
				t.Errorf("at %dms: head.X = %f, want %f", tt.elapsedMS, headX(p), tt.expected)
			}
		})
	}
}

func TestEvaluateIsPeriodic(t *testing.T) {
	frames := twoFrames()
	total := TotalDuration(frames)

	for _, elapsed := range []int64{0, 250, 999, 1001, 1499} {
		base, _, err := Evaluate(frames, elapsed)
		if err != nil {
			t.Fatalf("Evaluate failed: %v", err)
		}
		for k := int64(1); k <= 3; k++ {
			shifted, _, err := Evaluate(frames, elapsed+k*total)
			if err != nil {
				t.Fatalf("Evaluate failed: %v", err)
			}
			if math.Abs(headX(base)-headX(shifted)) > tolerance {
				t.Errorf("t=%d k=%d: %f != %f", elapsed, k, headX(base), headX(shifted))
			}
		}
	}
}

func TestEvaluateRejectsShortTimelines(t *testing.T) {
	cases := [][]Keyframe{
		nil,
		{{ID: "a", Pose: pose.Rest(), DurationMS: 1000}},
	}
	for _, frames := range cases {
		if _, _, err := Evaluate(frames, 0); !errors.Is(err, ErrNotEnoughKeyframes) {
			t.Errorf("expected ErrNotEnoughKeyframes for %d frames, got %v", len(frames), err)
		}
	}
}

type stubGuard struct{ busy bool }

func (g *stubGuard) Busy() bool { return g.busy }

func TestStoreAddAndSnapshotOwnership(t *testing.T) {
	s := NewStore(nil)

	authored := pose.Rest()
	authored[pose.Neck] = pose.Rotation{Z: 0.4}
	if _, err := s.Add(authored, 800); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	// Mutating the authored pose after commit must not touch the store.
	authored[pose.Neck] = pose.Rotation{Z: -9}
	snap := s.Snapshot()
	if got := snap[0].Pose.Rotation(pose.Neck).Z; math.Abs(got-0.4) > tolerance {
		t.Errorf("store aliased the authored pose: %f", got)
	}

	// Mutating a snapshot must not touch the store either.
	snap[0].Pose[pose.Neck] = pose.Rotation{Z: 7}
	if got := s.Snapshot()[0].Pose.Rotation(pose.Neck).Z; math.Abs(got-0.4) > tolerance {
		t.Errorf("snapshot aliased the store: %f", got)
	}
}

func TestStoreRejectsMutationDuringPlayback(t *testing.T) {
	guard := &stubGuard{}
	s := NewStore(guard)

	snap, err := s.Add(pose.Rest(), 500)
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	id := snap[0].ID

	guard.busy = true
	before := s.Snapshot()

	if _, err := s.Add(pose.Rest(), 500); !errors.Is(err, ErrPlaybackActive) {
		t.Errorf("Add during playback: got %v", err)
	}
	if _, err := s.UpdateDuration(id, 900); !errors.Is(err, ErrPlaybackActive) {
		t.Errorf("UpdateDuration during playback: got %v", err)
	}
	if _, err := s.Remove(id); !errors.Is(err, ErrPlaybackActive) {
		t.Errorf("Remove during playback: got %v", err)
	}

	after := s.Snapshot()
	if len(after) != len(before) || after[0].ID != before[0].ID || after[0].DurationMS != before[0].DurationMS {
		t.Errorf("rejected mutation changed the timeline: %+v -> %+v", before, after)
	}
}

func TestStoreRemovePreservesOrder(t *testing.T) {
	s := NewStore(nil)
	var ids []string
	for i := 0; i < 4; i++ {
		snap, err := s.Add(pose.Rest(), 100)
		if err != nil {
			t.Fatalf("Add failed: %v", err)
		}
		ids = append(ids, snap[len(snap)-1].ID)
	}

	snap, err := s.Remove(ids[1])
	if err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	want := []string{ids[0], ids[2], ids[3]}
	if len(snap) != 3 {
		t.Fatalf("expected 3 frames, got %d", len(snap))
	}
	for i, kf := range snap {
		if kf.ID != want[i] {
			t.Errorf("position %d: got %s, want %s", i, kf.ID, want[i])
		}
	}

	// Unknown id is a no-op.
	snap, err = s.Remove("nope")
	if err != nil || len(snap) != 3 {
		t.Errorf("Remove of unknown id: snap=%d err=%v", len(snap), err)
	}
}

func TestStoreUpdateDuration(t *testing.T) {
	s := NewStore(nil)
	snap, _ := s.Add(pose.Rest(), 100)
	id := snap[0].ID

	snap, err := s.UpdateDuration(id, 2500)
	if err != nil {
		t.Fatalf("UpdateDuration failed: %v", err)
	}
	if snap[0].DurationMS != 2500 {
		t.Errorf("duration = %d, want 2500", snap[0].DurationMS)
	}

	if _, err := s.UpdateDuration(id, 0); !errors.Is(err, ErrInvalidDuration) {
		t.Errorf("zero duration: got %v", err)
	}
	if _, err := s.Add(pose.Rest(), -5); !errors.Is(err, ErrInvalidDuration) {
		t.Errorf("negative duration: got %v", err)
	}
}

func TestStoreClear(t *testing.T) {
	guard := &stubGuard{}
	s := NewStore(guard)
	if _, err := s.Add(pose.Rest(), 100); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	// Clear is permitted even while the guard is busy.
	guard.busy = true
	if snap := s.Clear(); len(snap) != 0 || s.Len() != 0 {
		t.Errorf("Clear left %d frames", s.Len())
	}
}
