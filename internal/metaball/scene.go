package metaball

import (
	"fmt"
	"math"
	"math/rand"
)

// Options controls random scene construction.
type Options struct {
	Bounds    Bounds
	Threshold float64
	Count     int
	MinRadius float64
	MaxRadius float64
	MinSpeed  float64
	MaxSpeed  float64
}

func DefaultOptions() Options {
	return Options{
		Bounds:    Bounds{Width: 80, Height: 35},
		Threshold: 1.0,
		Count:     5,
		MinRadius: 2.5,
		MaxRadius: 4.0,
		MinSpeed:  4.0,
		MaxSpeed:  12.0,
	}
}

// Scene owns the blob set for the lifetime of an animation.
type Scene struct {
	blobs     []Blob
	initial   []Blob
	bounds    Bounds
	threshold float64
	motion    Motion
	t         float64
}

// New builds a scene from explicit blobs. A nil motion means Bounce.
func New(bounds Bounds, threshold float64, blobs []Blob, motion Motion) (*Scene, error) {
	if err := validate(bounds, threshold); err != nil {
		return nil, err
	}
	if len(blobs) == 0 {
		return nil, ErrNoBlobs
	}
	for i, b := range blobs {
		if !(b.Radius > 0) || math.IsInf(b.Radius, 0) {
			return nil, fmt.Errorf("blob %d: %w", i, ErrInvalidRadius)
		}
	}
	if motion == nil {
		motion = Bounce{}
	}

	s := &Scene{
		blobs:     cloneBlobs(blobs),
		initial:   cloneBlobs(blobs),
		bounds:    bounds,
		threshold: threshold,
		motion:    motion,
	}
	s.reflectAll()
	copy(s.initial, s.blobs)
	return s, nil
}

// Random builds a scene of opts.Count blobs with seeded positions,
// velocities and radii. The same seed always yields the same scene.
func Random(opts Options, seed int64) (*Scene, error) {
	if opts.Count <= 0 {
		return nil, ErrNoBlobs
	}
	if !(opts.MinRadius > 0) || opts.MaxRadius < opts.MinRadius {
		return nil, fmt.Errorf("radius range [%g, %g]: %w", opts.MinRadius, opts.MaxRadius, ErrInvalidRadius)
	}

	rng := rand.New(rand.NewSource(seed))
	blobs := make([]Blob, opts.Count)
	for i := range blobs {
		angle := rng.Float64() * 2 * math.Pi
		speed := opts.MinSpeed + rng.Float64()*(opts.MaxSpeed-opts.MinSpeed)
		blobs[i] = Blob{
			X:      rng.Float64() * opts.Bounds.Width,
			Y:      rng.Float64() * opts.Bounds.Height,
			VX:     math.Cos(angle) * speed,
			VY:     math.Sin(angle) * speed,
			Radius: opts.MinRadius + rng.Float64()*(opts.MaxRadius-opts.MinRadius),
		}
	}
	return New(opts.Bounds, opts.Threshold, blobs, Bounce{})
}

// Classic builds the orbiting five-blob scene.
func Classic(bounds Bounds, threshold float64) (*Scene, error) {
	blobs := make([]Blob, len(ClassicRadii))
	for i, r := range ClassicRadii {
		blobs[i] = Blob{Radius: r}
	}
	motion := Orbit{Paths: ClassicPaths}
	motion.Step(blobs, bounds, 0, 0)
	return New(bounds, threshold, blobs, motion)
}

func validate(bounds Bounds, threshold float64) error {
	if !(bounds.Width > 0) || !(bounds.Height > 0) || math.IsInf(bounds.Width, 0) || math.IsInf(bounds.Height, 0) {
		return ErrInvalidBounds
	}
	if !(threshold > 0) || math.IsInf(threshold, 0) {
		return ErrInvalidThreshold
	}
	return nil
}

// Advance moves every blob by dt seconds and reflects it back into bounds.
// A negative or non-finite dt is treated as zero.
func (s *Scene) Advance(dt float64) {
	if !(dt > 0) || math.IsInf(dt, 0) {
		dt = 0
	}
	s.motion.Step(s.blobs, s.bounds, s.t, dt)
	s.reflectAll()
	s.t += dt
}

func (s *Scene) reflectAll() {
	for i := range s.blobs {
		s.blobs[i].Reflect(s.bounds)
	}
}

// FieldAt evaluates the summed field at (x, y).
func (s *Scene) FieldAt(x, y float64) float64 {
	return FieldAt(s.blobs, x, y)
}

// Reset restores the blobs to their state at construction.
func (s *Scene) Reset() {
	copy(s.blobs, s.initial)
	s.t = 0
}

// SetThreshold changes τ. Non-positive or non-finite values are ignored.
func (s *Scene) SetThreshold(threshold float64) {
	if threshold > 0 && !math.IsInf(threshold, 0) {
		s.threshold = threshold
	}
}

// SetMotion swaps the motion model. nil is ignored.
func (s *Scene) SetMotion(m Motion) {
	if m != nil {
		s.motion = m
	}
}

func (s *Scene) Threshold() float64 { return s.threshold }
func (s *Scene) Bounds() Bounds       { return s.bounds }
func (s *Scene) Motion() Motion       { return s.motion }
func (s *Scene) Time() float64        { return s.t }
func (s *Scene) Len() int             { return len(s.blobs) }

// Blobs returns a copy of the current blob states.
func (s *Scene) Blobs() []Blob {
	return cloneBlobs(s.blobs)
}

func cloneBlobs(b []Blob) []Blob {
	c := make([]Blob, len(b))
	copy(c, b)
	return c
}
