// Package pose defines the joint-rotation data model for the figure:
// the closed skeleton joint set, per-joint rotations, and the value
// operations (clone, axis update, interpolation) the timeline is built on.
package pose

// Joint names a rotation point in the figure's skeleton.
type Joint string

// The closed set of skeleton joints. Poses may omit entries for any of
// these; lookups fall back to the rest pose.
const (
	Torso         Joint = "torso"
	Neck          Joint = "neck"
	Head          Joint = "head"
	LeftShoulder  Joint = "leftShoulder"
	RightShoulder Joint = "rightShoulder"
	LeftElbow     Joint = "leftElbow"
	RightElbow    Joint = "rightElbow"
	LeftHand      Joint = "leftHand"
	RightHand     Joint = "rightHand"
	LeftHip       Joint = "leftHip"
	RightHip      Joint = "rightHip"
	LeftKnee      Joint = "leftKnee"
	RightKnee     Joint = "rightKnee"
	LeftFoot      Joint = "leftFoot"
	RightFoot     Joint = "rightFoot"
)

var joints = []Joint{
	Torso, Neck, Head,
	LeftShoulder, RightShoulder, LeftElbow, RightElbow, LeftHand, RightHand,
	LeftHip, RightHip, LeftKnee, RightKnee, LeftFoot, RightFoot,
}

// Joints returns the canonical joint set in skeleton order.
// The returned slice is shared; callers must not modify it.
func Joints() []Joint {
	return joints
}

// Rotation holds the three rotation angles of a joint, in radians.
// The data model enforces no range; the UI keeps values within ±π.
type Rotation struct {
	X float64
	Y float64
	Z float64
}

// Axis selects one of a rotation's three angles.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

// String returns the lowercase axis name.
func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	}
	return "?"
}

// ParseAxis converts an axis name ("x", "y" or "z") to an Axis.
// It is the boundary between UI-level strings and the enum used everywhere else.
func ParseAxis(s string) (Axis, bool) {
	switch s {
	case "x":
		return AxisX, true
	case "y":
		return AxisY, true
	case "z":
		return AxisZ, true
	}
	return AxisX, false
}

// Pose maps joints to rotations. A pose need not define every joint;
// missing joints resolve through the rest pose. Poses are value objects:
// two poses never share mutable state.
type Pose map[Joint]Rotation

// Rest returns the figure's rest pose. Every joint is present, so the
// rest pose is also the fallback source for partial poses.
func Rest() Pose {
	p := make(Pose, len(joints))
	for _, j := range joints {
		p[j] = Rotation{}
	}
	return p
}

// Rotation returns the pose's entry for j, or the rest rotation when the
// pose has no entry. It never fails.
func (p Pose) Rotation(j Joint) Rotation {
	if r, ok := p[j]; ok {
		return r
	}
	return Rotation{}
}

// Clone returns a structural deep copy. Mutating the copy never affects p.
func (p Pose) Clone() Pose {
	out := make(Pose, len(p))
	for j, r := range p {
		out[j] = r
	}
	return out
}

// WithAxis returns a copy of p with one axis of one joint replaced.
// The receiver is not mutated.
func (p Pose) WithAxis(j Joint, axis Axis, v float64) Pose {
	out := p.Clone()
	r := out.Rotation(j)
	switch axis {
	case AxisX:
		r.X = v
	case AxisY:
		r.Y = v
	case AxisZ:
		r.Z = v
	}
	out[j] = r
	return out
}

// Lerp interpolates between a and b over the canonical joint set, each
// axis independently. Joints missing from either pose resolve through the
// rest pose first. alpha is not clamped: callers supply alpha in [0,1).
func Lerp(a, b Pose, alpha float64) Pose {
	out := make(Pose, len(joints))
	for _, j := range joints {
		ra, rb := a.Rotation(j), b.Rotation(j)
		out[j] = Rotation{
			X: lerp(ra.X, rb.X, alpha),
			Y: lerp(ra.Y, rb.Y, alpha),
			Z: lerp(ra.Z, rb.Z, alpha),
		}
	}
	return out
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
