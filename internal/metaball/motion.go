package metaball

import "math"

// Motion moves the blobs of a scene by one tick. Scene.Advance reflects
// every blob off the walls after the motion step.
type Motion interface {
	Name() string
	Step(blobs []Blob, bounds Bounds, t, dt float64)
}

// Bounce integrates each blob along its own velocity.
type Bounce struct{}

func (Bounce) Name() string { return "bounce" }

func (Bounce) Step(blobs []Blob, _ Bounds, _, dt float64) {
	for i := range blobs {
		blobs[i].Advance(dt)
	}
}

// OrbitPath is an ellipse around the plane centre:
//
//	x = cx + cos(FreqX·t + PhaseX)·RX
//	y = cy + sin(FreqY·t + PhaseY)·RY
//
// RX and RY are fractions of the plane width and height.
type OrbitPath struct {
	FreqX, FreqY   float64
	PhaseX, PhaseY float64
	RX, RY         float64
}

// ClassicPaths is the five-blob choreography: a wobbling core with four
// satellites on ellipses of different speed.
var ClassicPaths = []OrbitPath{
	{FreqX: 0.5, FreqY: 0.7, PhaseX: -math.Pi / 2, PhaseY: math.Pi / 2, RX: 0.1, RY: 4.0 / 35},
	{FreqX: 1.2, FreqY: 1.2, RX: 0.25, RY: 10.0 / 35},
	{FreqX: 0.8, FreqY: 0.8, PhaseX: math.Pi / 2, PhaseY: math.Pi / 2, RX: 25.0 / 80, RY: 11.0 / 35},
	{FreqX: 1.5, FreqY: 1.5, PhaseX: math.Pi, PhaseY: math.Pi, RX: 18.0 / 80, RY: 8.0 / 35},
	{FreqX: 0.6, FreqY: 0.6, PhaseX: 1.5 * math.Pi, PhaseY: 1.5 * math.Pi, RX: 28.0 / 80, RY: 12.0 / 35},
}

// ClassicRadii pairs with ClassicPaths.
var ClassicRadii = []float64{4.0, 3.0, 3.5, 2.5, 3.2}

// Orbit places blob i on Paths[i % len(Paths)]. Blobs sharing a path are
// spread out by a phase offset. Velocity is set to the path derivative.
type Orbit struct {
	Paths []OrbitPath
}

func (o Orbit) Name() string { return "orbit" }

func (o Orbit) Step(blobs []Blob, bounds Bounds, t, dt float64) {
	paths := o.Paths
	if len(paths) == 0 {
		paths = ClassicPaths
	}
	cx, cy := bounds.Center()
	now := t + dt
	for i := range blobs {
		p := paths[i%len(paths)]
		lap := float64(i / len(paths))
		ax := p.FreqX*now + p.PhaseX + lap*math.Pi/3
		ay := p.FreqY*now + p.PhaseY + lap*math.Pi/3
		rx, ry := p.RX*bounds.Width, p.RY*bounds.Height

		blobs[i].X = cx + math.Cos(ax)*rx
		blobs[i].Y = cy + math.Sin(ay)*ry
		blobs[i].VX = -math.Sin(ax) * rx * p.FreqX
		blobs[i].VY = math.Cos(ay) * ry * p.FreqY
	}
}

// MotionByName resolves a configured motion name. Unknown names fall back to
// Bounce.
func MotionByName(name string) Motion {
	switch name {
	case "orbit":
		return Orbit{Paths: ClassicPaths}
	default:
		return Bounce{}
	}
}
