package timeline

import "github.com/PDC-hub/Stickman/internal/pose"

// TotalDuration returns the loop duration in milliseconds: the sum of all
// keyframe durations, the wrap-defining last one included.
func TotalDuration(frames []Keyframe) int64 {
	var total int64
	for _, kf := range frames {
		total += kf.DurationMS
	}
	return total
}

// Evaluate resolves the pose of a cyclic timeline at the given elapsed
// time. pastEnd reports whether elapsed has reached one full loop; the
// returned pose always wraps, so continuous playback can ignore pastEnd
// while the record path uses it to detect the loop boundary.
//
// Evaluate is pure: it reads the keyframe slice and touches no shared
// state. Callers guarantee at least two keyframes with a positive total
// duration; anything less yields ErrNotEnoughKeyframes.
func Evaluate(frames []Keyframe, elapsedMS int64) (p pose.Pose, pastEnd bool, err error) {
	total := TotalDuration(frames)
	if len(frames) < 2 || total <= 0 {
		return nil, false, ErrNotEnoughKeyframes
	}

	pastEnd = elapsedMS >= total
	wrapped := elapsedMS % total

	// Walk the sequence accumulating durations. The active segment is the
	// first keyframe whose cumulative end exceeds the wrapped time; its
	// end keyframe is the next one, cyclically.
	var cumulative int64
	for i, kf := range frames {
		cumulative += kf.DurationMS
		if wrapped < cumulative {
			segmentStart := cumulative - kf.DurationMS
			alpha := float64(wrapped-segmentStart) / float64(kf.DurationMS)
			end := frames[(i+1)%len(frames)]
			return pose.Lerp(kf.Pose, end.Pose, alpha), pastEnd, nil
		}
	}

	// Unreachable: wrapped < total by construction.
	return frames[0].Pose.Clone(), pastEnd, nil
}
