// Package ui is the interactive posing studio: a bubbletea program for
// rotating joints, committing keyframes, and driving playback and
// recording against the live timeline.
package ui

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/PDC-hub/Stickman/internal/config"
	"github.com/PDC-hub/Stickman/internal/player"
	"github.com/PDC-hub/Stickman/internal/pose"
	"github.com/PDC-hub/Stickman/internal/render"
	"github.com/PDC-hub/Stickman/internal/studio"
)

const (
	figureCols = 56
	figureRows = 22

	rotateStep     = 0.1
	durationStepMS = 100
)

// tickMsg carries one frame-loop tick.
type tickMsg time.Time

// Model is the bubbletea model for the posing studio.
type Model struct {
	sess *studio.Session
	cfg  *config.Config

	live     pose.Pose // the pose being authored
	shown    pose.Pose // what the figure view displays this frame
	jointIdx int
	axis     pose.Axis

	recording bool
	status    string
}

// NewModel returns a studio UI over sess.
func NewModel(sess *studio.Session, cfg *config.Config) Model {
	live := pose.Rest()
	sess.Controller.SetPose(live)
	return Model{
		sess:   sess,
		cfg:    cfg,
		live:   live,
		shown:  live,
		status: "pose the figure, then press enter to add a keyframe",
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return frameTick()
}

func frameTick() tea.Cmd {
	return tea.Tick(time.Second/30, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		return m.onTick(time.Time(msg)), frameTick()
	case tea.KeyMsg:
		return m.onKey(msg)
	}
	return m, nil
}

// onTick advances playback one frame and, while recording, feeds the
// rendered frame to the capture sink.
func (m Model) onTick(now time.Time) Model {
	p, ok := m.sess.Controller.Tick(now.UnixMilli())
	if ok {
		m.shown = p
		if m.recording {
			w, h := render.EvenDimensions(m.cfg.Width, m.cfg.Height)
			frame := render.Fit(m.sess.Renderer.Render(p), w, h)
			if err := m.sess.Coord.Frame(frame); err != nil {
				m.status = fmt.Sprintf("capture error: %v", err)
			}
		}
	} else {
		m.shown = m.live
	}
	return m.finishIfDone()
}

// finishIfDone finalizes the capture session once the controller has
// dropped out of Recording, whether the loop completed or the user cut
// it short. The boundary frame has already been pushed by onTick.
func (m Model) finishIfDone() Model {
	if !m.recording || m.sess.Controller.State() != player.StateIdle {
		return m
	}
	m.recording = false
	m.sess.Coord.Finish()
	art, err := m.sess.Coord.Result()
	if err != nil {
		m.status = fmt.Sprintf("recording failed: %v", err)
	} else {
		m.status = fmt.Sprintf("saved %s (%d frames, %.1fs)",
			art.Path, art.Frames, float64(art.DurationMS)/1000)
	}
	return m
}

func (m Model) onKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m = m.stopEverything()
		return m, tea.Quit

	case "tab":
		m.jointIdx = (m.jointIdx + 1) % len(pose.Joints())
	case "shift+tab":
		m.jointIdx = (m.jointIdx + len(pose.Joints()) - 1) % len(pose.Joints())
	case "x":
		m.axis = pose.AxisX
	case "y":
		m.axis = pose.AxisY
	case "z":
		m.axis = pose.AxisZ

	case "left":
		m = m.rotate(-rotateStep)
	case "right":
		m = m.rotate(rotateStep)
	case "0":
		m = m.rotateTo(0)

	case "enter":
		m = m.commitKeyframe()
	case "d", "backspace":
		m = m.removeLastKeyframe()
	case "+", "=":
		m = m.nudgeDuration(durationStepMS)
	case "-", "_":
		m = m.nudgeDuration(-durationStepMS)

	case " ":
		m = m.togglePlay()
	case "r":
		m = m.startRecording()
	case "c":
		m = m.clearTimeline()
	}
	return m, nil
}

func (m Model) selectedJoint() pose.Joint {
	return pose.Joints()[m.jointIdx]
}

func (m Model) rotate(delta float64) Model {
	j := m.selectedJoint()
	r := m.live.Rotation(j)
	var current float64
	switch m.axis {
	case pose.AxisX:
		current = r.X
	case pose.AxisY:
		current = r.Y
	case pose.AxisZ:
		current = r.Z
	}
	return m.rotateTo(clampAngle(current + delta))
}

func (m Model) rotateTo(v float64) Model {
	m.live = m.live.WithAxis(m.selectedJoint(), m.axis, v)
	m.sess.Controller.SetPose(m.live)
	if !m.sess.Controller.Busy() {
		m.shown = m.live
	}
	return m
}

func (m Model) commitKeyframe() Model {
	snap, err := m.sess.Store.Add(m.live, m.cfg.DefaultKeyframeMS)
	if err != nil {
		m.status = err.Error()
		return m
	}
	m.status = fmt.Sprintf("keyframe %d added (%dms)", len(snap), m.cfg.DefaultKeyframeMS)
	return m
}

func (m Model) removeLastKeyframe() Model {
	frames := m.sess.Store.Snapshot()
	if len(frames) == 0 {
		m.status = "no keyframes to remove"
		return m
	}
	if _, err := m.sess.Store.Remove(frames[len(frames)-1].ID); err != nil {
		m.status = err.Error()
		return m
	}
	m.status = fmt.Sprintf("keyframe %d removed", len(frames))
	return m
}

func (m Model) nudgeDuration(deltaMS int64) Model {
	frames := m.sess.Store.Snapshot()
	if len(frames) == 0 {
		m.status = "no keyframes yet"
		return m
	}
	last := frames[len(frames)-1]
	next := last.DurationMS + deltaMS
	if next < durationStepMS {
		next = durationStepMS
	}
	if _, err := m.sess.Store.UpdateDuration(last.ID, next); err != nil {
		m.status = err.Error()
		return m
	}
	m.status = fmt.Sprintf("keyframe %d duration: %dms", len(frames), next)
	return m
}

func (m Model) togglePlay() Model {
	wasBusy := m.sess.Controller.Busy()
	m.sess.Controller.TogglePlay()
	switch {
	case m.sess.Controller.State() == player.StatePlaying:
		m.status = "playing (space to stop)"
	case wasBusy:
		m.status = "stopped"
		m.shown = m.live
	default:
		m.status = "need at least 2 keyframes to play"
	}
	return m.finishIfDone()
}

func (m Model) startRecording() Model {
	if m.recording {
		m.status = "already recording"
		return m
	}
	w, h := render.EvenDimensions(m.cfg.Width, m.cfg.Height)
	if err := m.sess.Coord.Begin(w, h, m.cfg.FPS); err != nil {
		m.status = err.Error()
		return m
	}
	if err := m.sess.Controller.StartRecording(); err != nil {
		m.sess.Coord.Finish()
		m.status = err.Error()
		return m
	}
	m.recording = true
	m.status = "recording one loop..."
	return m
}

func (m Model) clearTimeline() Model {
	m.sess.Reset()
	m = m.finishIfDone()
	m.shown = m.live
	m.status = "timeline cleared"
	return m
}

func (m Model) stopEverything() Model {
	m.sess.Controller.Stop()
	return m.finishIfDone()
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString("Stickman Studio\n")
	b.WriteString(strings.Repeat("=", figureCols) + "\n")

	b.WriteString(render.ASCII(m.shown, figureCols, figureRows, m.selectedJoint()))
	b.WriteString("\n" + strings.Repeat("-", figureCols) + "\n")

	j := m.selectedJoint()
	r := m.live.Rotation(j)
	b.WriteString(fmt.Sprintf("joint: %-14s axis: %s   x=%+.2f y=%+.2f z=%+.2f\n",
		j, m.axis, r.X, r.Y, r.Z))

	frames := m.sess.Store.Snapshot()
	b.WriteString(fmt.Sprintf("keyframes: %d", len(frames)))
	for i, kf := range frames {
		b.WriteString(fmt.Sprintf("  [%d]%dms", i+1, kf.DurationMS))
	}
	b.WriteString(fmt.Sprintf("\nstate: %s\n", m.sess.Controller.State()))

	b.WriteString("\n" + m.status + "\n")
	b.WriteString("\ntab joint | x/y/z axis | ←/→ rotate | 0 reset | enter keyframe\n")
	b.WriteString("+/- duration | d delete | space play | r record | c clear | q quit")

	return b.String()
}

// clampAngle keeps authored angles within the ±π slider range.
func clampAngle(v float64) float64 {
	if v > math.Pi {
		return math.Pi
	}
	if v < -math.Pi {
		return -math.Pi
	}
	return v
}
