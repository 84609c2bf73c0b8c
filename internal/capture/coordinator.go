package capture

import (
	"image"
	"log/slog"
)

// Coordinator owns the sink's session lifecycle: one session per
// recording, begun when recording starts and finished at the player's
// loop-end boundary. A recording torn down any other way still finishes
// the session, so no capture is ever orphaned.
type Coordinator struct {
	sink Sink
	log  *slog.Logger

	active   bool
	artifact Artifact
	err      error
}

// NewCoordinator wraps sink. log may be nil for silent operation.
func NewCoordinator(sink Sink, log *slog.Logger) *Coordinator {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Coordinator{sink: sink, log: log}
}

// Active reports whether a capture session is open.
func (c *Coordinator) Active() bool {
	return c.active
}

// Begin opens a capture session. Exactly one session can be open at a
// time; a second Begin is refused.
func (c *Coordinator) Begin(width, height, fps int) error {
	if c.active {
		return ErrCaptureActive
	}
	if err := c.sink.Start(width, height, fps); err != nil {
		return err
	}
	c.active = true
	c.artifact = Artifact{}
	c.err = nil
	c.log.Info("capture session started", "width", width, "height", height, "fps", fps)
	return nil
}

// Frame forwards one rendered frame into the open session. Frames
// arriving outside a session are dropped: the tick loop may outlive the
// recording by one callback.
func (c *Coordinator) Frame(img *image.RGBA) error {
	if !c.active {
		return nil
	}
	return c.sink.PushFrame(img)
}

// Finish closes the session and finalizes the sink. It is the loop-end
// handler; calling it with no open session is a no-op so a defensive
// extra call cannot double-finalize.
func (c *Coordinator) Finish() {
	if !c.active {
		return
	}
	c.active = false
	c.artifact, c.err = c.sink.Finalize()
	if c.err != nil {
		c.log.Error("capture finalize failed", "error", c.err)
		return
	}
	c.log.Info("capture session finished",
		"path", c.artifact.Path, "frames", c.artifact.Frames, "duration_ms", c.artifact.DurationMS)
}

// Result returns the outcome of the last finished session.
func (c *Coordinator) Result() (Artifact, error) {
	return c.artifact, c.err
}
