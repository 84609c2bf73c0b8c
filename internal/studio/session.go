// Package studio wires the posing session together: the keyframe store,
// the playback controller, the figure renderer, and the capture
// coordinator, plus the offline recorder that drives one full loop at a
// fixed frame rate and turns it into a video artifact.
package studio

import (
	"context"
	"fmt"
	"image"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/PDC-hub/Stickman/internal/capture"
	"github.com/PDC-hub/Stickman/internal/config"
	"github.com/PDC-hub/Stickman/internal/player"
	"github.com/PDC-hub/Stickman/internal/pose"
	"github.com/PDC-hub/Stickman/internal/render"
	"github.com/PDC-hub/Stickman/internal/system"
	"github.com/PDC-hub/Stickman/internal/timeline"
)

// Session is one authoring session: a live pose being edited, the
// keyframe timeline, and the playback/capture machinery around them.
type Session struct {
	Store      *timeline.Store
	Controller *player.Controller
	Renderer   render.Renderer
	Coord      *capture.Coordinator

	cfg *config.Config
	log *slog.Logger
}

// NewSession builds a session. The controller reads the store through
// snapshots and the store refuses mutations while the controller is busy.
func NewSession(cfg *config.Config, renderer render.Renderer, sink capture.Sink, log *slog.Logger) *Session {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	var store *timeline.Store
	ctrl := player.NewController(func() []timeline.Keyframe { return store.Snapshot() })
	store = timeline.NewStore(ctrl)

	return &Session{
		Store:      store,
		Controller: ctrl,
		Renderer:   renderer,
		Coord:      capture.NewCoordinator(sink, log),
		cfg:        cfg,
		log:        log,
	}
}

// Reset empties the timeline. Clearing is allowed mid-playback, but the
// store does not stop the controller itself; that coordination happens
// here.
func (s *Session) Reset() {
	s.Controller.Stop()
	s.Store.Clear()
}

// RecordLoop plays the timeline exactly once from phase zero at the
// configured frame rate, rendering every tick and encoding the frames
// through the capture sink. The clip ends precisely at the loop boundary
// with the final keyframe's pose; no partial wrap-around frame is
// captured.
//
// Ticks are synthetic (frame index over fps), so recording runs as fast
// as rendering and encoding allow rather than in real time.
func (s *Session) RecordLoop(ctx context.Context) (capture.Artifact, error) {
	frames := s.Store.Snapshot()
	total := timeline.TotalDuration(frames)
	if len(frames) < 2 || total <= 0 {
		return capture.Artifact{}, timeline.ErrNotEnoughKeyframes
	}

	// The capture session and the renderer must agree on the frame size;
	// odd configured dimensions are rounded up the same way the figure
	// renderer rounds them.
	width, height := render.EvenDimensions(s.cfg.Width, s.cfg.Height)
	fps := s.cfg.FPS
	if err := s.Coord.Begin(width, height, fps); err != nil {
		return capture.Artifact{}, err
	}
	if err := s.Controller.StartRecording(); err != nil {
		s.Coord.Finish()
		return capture.Artifact{}, err
	}

	s.log.Info("recording one loop",
		"keyframes", len(frames), "loop_ms", total, "fps", fps)

	// Drive the controller through one loop. The tick returning with an
	// idle controller is the forced loop-boundary frame.
	var poses []pose.Pose
	for i := int64(0); ; i++ {
		if err := ctx.Err(); err != nil {
			s.Controller.Stop()
			s.Coord.Finish()
			return capture.Artifact{}, err
		}
		p, ok := s.Controller.Tick(i * 1000 / int64(fps))
		if !ok {
			break
		}
		poses = append(poses, p)
		if s.Controller.State() == player.StateIdle {
			break
		}
	}

	if err := s.encode(ctx, poses, width, height); err != nil {
		s.Coord.Finish()
		return capture.Artifact{}, err
	}

	s.Coord.Finish()
	return s.Coord.Result()
}

// encode renders poses in parallel batches and pushes the frames to the
// sink in order, fitted to the capture dimensions. Batch size is bounded
// by available memory so long loops do not hold every frame at once.
func (s *Session) encode(ctx context.Context, poses []pose.Pose, width, height int) error {
	workers := system.WorkerCount(s.cfg.Workers)
	batchSize := system.FrameBudget(s.cfg.Width * s.cfg.Height * 4)

	for start := 0; start < len(poses); start += batchSize {
		end := min(start+batchSize, len(poses))
		batch := poses[start:end]
		rendered := make([]*image.RGBA, len(batch))

		g, _ := errgroup.WithContext(ctx)
		g.SetLimit(workers)
		for i := range batch {
			g.Go(func() error {
				rendered[i] = s.Renderer.Render(batch[i])
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}

		for _, img := range rendered {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := s.Coord.Frame(render.Fit(img, width, height)); err != nil {
				return fmt.Errorf("push frame: %w", err)
			}
		}
	}
	return nil
}
