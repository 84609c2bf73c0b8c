// Package player drives the timeline evaluator from a real-time clock:
// the play/pause/record state machine, the per-tick anchor, and the
// loop-end boundary that closes a recorded clip.
package player

import (
	"errors"

	"github.com/PDC-hub/Stickman/internal/pose"
	"github.com/PDC-hub/Stickman/internal/timeline"
)

// ErrAlreadyRecording is returned when a recording is started while one
// is already running. State is unchanged.
var ErrAlreadyRecording = errors.New("recording already in progress")

// State is the controller's playback state. Recording implies playing
// semantics: the clock runs and poses are evaluated exactly as in
// StatePlaying, plus loop-end detection.
type State int

const (
	StateIdle State = iota
	StatePlaying
	StateRecording
)

// String returns the lowercase state name.
func (s State) String() string {
	switch s {
	case StatePlaying:
		return "playing"
	case StateRecording:
		return "recording"
	}
	return "idle"
}

// Controller owns the playback state machine: one state field and one
// clock anchor, mutated only through its methods. Ticks and user actions
// are serialized by the rendering loop, so it carries no locks; a
// concurrent caller must add its own synchronization around the whole
// controller.
type Controller struct {
	frames func() []timeline.Keyframe

	state    State
	anchorMS int64
	anchored bool

	lastPose  pose.Pose
	onLoopEnd []func()
}

// NewController returns an idle controller reading the timeline through
// frames, typically a store's Snapshot method.
func NewController(frames func() []timeline.Keyframe) *Controller {
	return &Controller{
		frames:   frames,
		lastPose: pose.Rest(),
	}
}

// OnLoopEnd registers fn to run when a recording completes one full loop
// (or is stopped early, so capture sessions are never orphaned).
func (c *Controller) OnLoopEnd(fn func()) {
	c.onLoopEnd = append(c.onLoopEnd, fn)
}

// State returns the current playback state.
func (c *Controller) State() State {
	return c.state
}

// Busy reports whether playback or recording is running. It implements
// the store's mutation guard.
func (c *Controller) Busy() bool {
	return c.state != StateIdle
}

// TogglePlay switches between Idle and Playing. Starting with fewer than
// two keyframes (or a zero-length loop) is a silent no-op: the UI is
// expected to disable the control, the controller just stays idempotent.
// Stopping clears the anchor, so the next start begins at phase zero.
func (c *Controller) TogglePlay() {
	if c.state != StateIdle {
		c.Stop()
		return
	}
	frames := c.frames()
	if len(frames) < 2 || timeline.TotalDuration(frames) <= 0 {
		return
	}
	c.state = StatePlaying
	c.anchored = false
}

// StartRecording enters Recording, which runs the playing clock and stops
// itself exactly one loop later. It fails without a state change when a
// recording is already running or the timeline cannot play.
func (c *Controller) StartRecording() error {
	if c.state == StateRecording {
		return ErrAlreadyRecording
	}
	frames := c.frames()
	if len(frames) < 2 || timeline.TotalDuration(frames) <= 0 {
		return timeline.ErrNotEnoughKeyframes
	}
	c.state = StateRecording
	c.anchored = false
	return nil
}

// Stop drops to Idle from any state and clears the anchor. If it cuts a
// recording short, the loop-end callbacks still fire so the capture sink
// gets finalized.
func (c *Controller) Stop() {
	wasRecording := c.state == StateRecording
	c.state = StateIdle
	c.anchored = false
	if wasRecording {
		c.fireLoopEnd()
	}
}

// Tick advances playback to the given clock reading and returns the pose
// to render. The first tick after (re)starting anchors the clock; elapsed
// time is measured from that anchor. ok is false while idle, meaning the
// last authored pose stays on screen.
//
// While recording, the first tick at or past one full loop forces the
// final keyframe's pose exactly (not the wrapped interpolation), drops
// to Idle, and fires the loop-end callbacks once. Plain playback ignores
// the loop boundary and wraps forever.
func (c *Controller) Tick(nowMS int64) (p pose.Pose, ok bool) {
	if c.state == StateIdle {
		return c.lastPose, false
	}
	if !c.anchored {
		c.anchorMS = nowMS
		c.anchored = true
	}
	elapsed := nowMS - c.anchorMS

	frames := c.frames()
	result, pastEnd, err := timeline.Evaluate(frames, elapsed)
	if err != nil {
		// The timeline shrank under us (cleared mid-playback). Stop.
		c.state = StateIdle
		c.anchored = false
		return c.lastPose, false
	}

	if c.state == StateRecording && pastEnd {
		final := frames[len(frames)-1].Pose.Clone()
		c.state = StateIdle
		c.anchored = false
		c.lastPose = final
		c.fireLoopEnd()
		return final, true
	}

	c.lastPose = result
	return result, true
}

// SetPose records the last authored pose, shown while idle.
func (c *Controller) SetPose(p pose.Pose) {
	c.lastPose = p.Clone()
}

func (c *Controller) fireLoopEnd() {
	for _, fn := range c.onLoopEnd {
		fn()
	}
}
