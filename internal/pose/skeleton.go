package pose

import "math"

// Bone describes how a joint hangs off its parent: the rest direction in
// screen radians (0 points down, -π/2 points up, y grows downward) and the
// length as a fraction of figure height. Torso is the root and has no bone.
type Bone struct {
	Parent Joint
	Angle  float64
	Length float64
}

const (
	up   = -math.Pi / 2
	down = math.Pi / 2
)

// Skeleton is the figure's bone table. The renderer and the terminal view
// both walk it from the torso root, adding each joint's Z rotation to the
// bone's rest angle and foreshortening length by the X/Y rotations.
var Skeleton = map[Joint]Bone{
	Neck: {Parent: Torso, Angle: up, Length: 0.28},
	Head: {Parent: Neck, Angle: 0, Length: 0.10},

	LeftShoulder:  {Parent: Neck, Angle: down - 0.55, Length: 0.13},
	RightShoulder: {Parent: Neck, Angle: down + 0.55, Length: 0.13},
	LeftElbow:     {Parent: LeftShoulder, Angle: 0, Length: 0.13},
	RightElbow:    {Parent: RightShoulder, Angle: 0, Length: 0.13},
	LeftHand:      {Parent: LeftElbow, Angle: 0, Length: 0.05},
	RightHand:     {Parent: RightElbow, Angle: 0, Length: 0.05},

	LeftHip:   {Parent: Torso, Angle: down - 0.25, Length: 0.16},
	RightHip:  {Parent: Torso, Angle: down + 0.25, Length: 0.16},
	LeftKnee:  {Parent: LeftHip, Angle: 0.25, Length: 0.16},
	RightKnee: {Parent: RightHip, Angle: -0.25, Length: 0.16},
	LeftFoot:  {Parent: LeftKnee, Angle: 0, Length: 0.05},
	RightFoot: {Parent: RightKnee, Angle: 0, Length: 0.05},
}

// Point is a 2D position in the unit figure space: x in [-0.5, 0.5],
// y in [-0.5, 0.5], origin at the torso root, y growing downward.
type Point struct {
	X float64
	Y float64
}

// Positions projects a pose onto the unit figure plane and returns the
// position of every joint. Each bone's direction is its rest angle plus
// the accumulated Z rotations along the chain; X and Y rotations shorten
// the bone as simple out-of-plane foreshortening.
func Positions(p Pose) map[Joint]Point {
	pts := make(map[Joint]Point, len(joints))
	angles := make(map[Joint]float64, len(joints))

	pts[Torso] = Point{X: 0, Y: 0.06}
	angles[Torso] = p.Rotation(Torso).Z

	// Skeleton order guarantees parents precede children.
	for _, j := range joints {
		bone, ok := Skeleton[j]
		if !ok {
			continue
		}
		r := p.Rotation(j)
		angle := angles[bone.Parent] + bone.Angle + r.Z
		length := bone.Length * foreshorten(r)
		parent := pts[bone.Parent]
		pts[j] = Point{
			X: parent.X + math.Cos(angle)*length,
			Y: parent.Y + math.Sin(angle)*length,
		}
		angles[j] = angle
	}
	return pts
}

// foreshorten maps out-of-plane rotation to a length factor. A fully
// rotated bone still keeps a sliver of length so the figure stays readable.
func foreshorten(r Rotation) float64 {
	f := math.Abs(math.Cos(r.X)) * math.Abs(math.Cos(r.Y))
	if f < 0.15 {
		f = 0.15
	}
	return f
}
