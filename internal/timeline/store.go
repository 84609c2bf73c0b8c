// Package timeline holds the keyframe data model: the ordered keyframe
// store and the pure time-to-pose evaluator that turns an elapsed clock
// reading into an interpolated pose.
package timeline

import (
	"errors"

	"github.com/google/uuid"

	"github.com/PDC-hub/Stickman/internal/pose"
)

var (
	// ErrPlaybackActive is returned when a store mutation is attempted
	// while playback or recording is running. The timeline is unchanged.
	ErrPlaybackActive = errors.New("timeline is locked during playback")

	// ErrInvalidDuration is returned for non-positive keyframe durations.
	ErrInvalidDuration = errors.New("keyframe duration must be positive")

	// ErrNotEnoughKeyframes is returned when playback or evaluation is
	// requested on a timeline with fewer than two keyframes.
	ErrNotEnoughKeyframes = errors.New("timeline needs at least two keyframes")
)

// Keyframe is a stored pose plus the transition time to reach it from the
// previous keyframe in sequence order. The last keyframe's duration also
// times the wrap segment back to the first keyframe.
type Keyframe struct {
	ID         string
	Pose       pose.Pose
	DurationMS int64
}

// Guard reports whether the playback controller is running. The store
// refuses mutations while the guard is busy; store and controller stay
// otherwise decoupled.
type Guard interface {
	Busy() bool
}

// Store is the ordered keyframe collection. Order is insertion order; the
// sequence is cyclic (the keyframe after the last is the first). The store
// exclusively owns every pose it holds: poses are deep-copied on the way
// in and on the way out.
//
// Store is not safe for concurrent use; the tick-driven execution model
// serializes all access.
type Store struct {
	guard  Guard
	frames []Keyframe
}

// NewStore returns an empty store. guard may be nil, in which case
// mutations are never refused.
func NewStore(guard Guard) *Store {
	return &Store{guard: guard}
}

// Add appends a keyframe holding a deep copy of p with the given
// transition duration and returns the new timeline snapshot.
func (s *Store) Add(p pose.Pose, durationMS int64) ([]Keyframe, error) {
	if s.busy() {
		return nil, ErrPlaybackActive
	}
	if durationMS <= 0 {
		return nil, ErrInvalidDuration
	}
	s.frames = append(s.frames, Keyframe{
		ID:         uuid.NewString(),
		Pose:       p.Clone(),
		DurationMS: durationMS,
	})
	return s.Snapshot(), nil
}

// UpdateDuration replaces the duration of the keyframe with the given id.
// An unknown id is a no-op, not an error.
func (s *Store) UpdateDuration(id string, durationMS int64) ([]Keyframe, error) {
	if s.busy() {
		return nil, ErrPlaybackActive
	}
	if durationMS <= 0 {
		return nil, ErrInvalidDuration
	}
	for i := range s.frames {
		if s.frames[i].ID == id {
			s.frames[i].DurationMS = durationMS
			break
		}
	}
	return s.Snapshot(), nil
}

// Remove deletes the keyframe with the given id, preserving the relative
// order of the rest. An unknown id is a no-op.
func (s *Store) Remove(id string) ([]Keyframe, error) {
	if s.busy() {
		return nil, ErrPlaybackActive
	}
	for i := range s.frames {
		if s.frames[i].ID == id {
			s.frames = append(s.frames[:i], s.frames[i+1:]...)
			break
		}
	}
	return s.Snapshot(), nil
}

// Clear empties the store. Clear is permitted even during playback, but
// the caller must also stop the controller; the store does not do that
// coordination itself.
func (s *Store) Clear() []Keyframe {
	s.frames = nil
	return nil
}

// Len returns the number of keyframes.
func (s *Store) Len() int {
	return len(s.frames)
}

// Snapshot returns a copy of the timeline with independently owned poses.
// Mutating the snapshot never affects the store.
func (s *Store) Snapshot() []Keyframe {
	out := make([]Keyframe, len(s.frames))
	for i, kf := range s.frames {
		out[i] = Keyframe{ID: kf.ID, Pose: kf.Pose.Clone(), DurationMS: kf.DurationMS}
	}
	return out
}

func (s *Store) busy() bool {
	return s.guard != nil && s.guard.Busy()
}
