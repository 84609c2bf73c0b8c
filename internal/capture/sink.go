// Package capture turns the stream of rendered playback frames into an
// encoded video artifact. The Sink interface abstracts the encoder; the
// Coordinator ties a sink's lifecycle to the player's loop-end boundary.
package capture

import (
	"errors"
	"image"
)

var (
	// ErrCaptureActive is returned when a capture session is begun while
	// one is already open.
	ErrCaptureActive = errors.New("capture session already active")

	// ErrNoCapture is returned when frames or a finalize arrive with no
	// open session.
	ErrNoCapture = errors.New("no active capture session")
)

// Artifact describes one finished capture: the encoded file and what went
// into it.
type Artifact struct {
	Path       string
	Frames     int
	DurationMS int64
}

// Sink accepts a stream of rendered frames and produces one encoded
// artifact per Start/Finalize cycle. Frames arrive at the tick cadence;
// there is no backpressure beyond PushFrame blocking.
type Sink interface {
	Start(width, height, fps int) error
	PushFrame(img *image.RGBA) error
	Finalize() (Artifact, error)
}

// MemorySink keeps pushed frames in memory. It backs tests and previews.
type MemorySink struct {
	Width, Height, FPS int

	frames  []*image.RGBA
	started bool
}

// Start implements Sink.
func (s *MemorySink) Start(width, height, fps int) error {
	if s.started {
		return ErrCaptureActive
	}
	s.Width, s.Height, s.FPS = width, height, fps
	s.started = true
	s.frames = nil
	return nil
}

// PushFrame implements Sink. The frame is referenced, not copied; callers
// recycling frame buffers must push copies.
func (s *MemorySink) PushFrame(img *image.RGBA) error {
	if !s.started {
		return ErrNoCapture
	}
	s.frames = append(s.frames, img)
	return nil
}

// Finalize implements Sink.
func (s *MemorySink) Finalize() (Artifact, error) {
	if !s.started {
		return Artifact{}, ErrNoCapture
	}
	s.started = false
	var durationMS int64
	if s.FPS > 0 {
		durationMS = int64(len(s.frames)) * 1000 / int64(s.FPS)
	}
	return Artifact{Path: "", Frames: len(s.frames), DurationMS: durationMS}, nil
}

// FrameCount returns the number of frames captured so far.
func (s *MemorySink) FrameCount() int {
	return len(s.frames)
}

// Frame returns the i-th captured frame.
func (s *MemorySink) Frame(i int) *image.RGBA {
	return s.frames[i]
}
