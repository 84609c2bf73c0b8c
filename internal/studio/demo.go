package studio

import (
	"github.com/PDC-hub/Stickman/internal/pose"
)

// LoadDemo fills the timeline with a short waving animation so the CLI
// can record a clip without any authored keyframes.
func (s *Session) LoadDemo() error {
	rest := pose.Rest()

	up := rest.
		WithAxis(pose.RightShoulder, pose.AxisZ, -2.2).
		WithAxis(pose.RightElbow, pose.AxisZ, -0.5)

	wave := up.
		WithAxis(pose.RightElbow, pose.AxisZ, 0.6).
		WithAxis(pose.Head, pose.AxisZ, 0.15)

	lean := rest.
		WithAxis(pose.Torso, pose.AxisZ, 0.12).
		WithAxis(pose.LeftShoulder, pose.AxisZ, 0.3)

	for _, step := range []struct {
		p          pose.Pose
		durationMS int64
	}{
		{rest, 600},
		{up, 500},
		{wave, 350},
		{up, 350},
		{lean, 700},
	} {
		if _, err := s.Store.Add(step.p, step.durationMS); err != nil {
			return err
		}
	}
	return nil
}
