package metaball

import "math"

const (
	// AspectRatio scales horizontal distance. Terminal cells are about twice
	// as tall as wide, so a blob spans twice as many columns as rows.
	AspectRatio = 0.5

	// MinDistSq is the floor applied to squared distance before dividing.
	// A query at the exact centre yields r²/MinDistSq instead of +Inf.
	MinDistSq = 1e-4
)

// Blob is a circular field source.
type Blob struct {
	X, Y   float64
	VX, VY float64
	Radius float64
}

// Bounds is the logical plane, [0,Width]×[0,Height].
type Bounds struct {
	Width, Height float64
}

// Contains reports whether (x, y) lies inside the closed rectangle.
func (b Bounds) Contains(x, y float64) bool {
	return x >= 0 && x <= b.Width && y >= 0 && y <= b.Height
}

// Center returns the midpoint of the plane.
func (b Bounds) Center() (float64, float64) {
	return b.Width / 2, b.Height / 2
}

// Advance moves the blob along its velocity.
func (b *Blob) Advance(dt float64) {
	b.X += b.VX * dt
	b.Y += b.VY * dt
}

// Reflect bounces the blob off any wall it has crossed. The position is
// clamped onto the wall and the velocity component points back inward.
func (b *Blob) Reflect(bounds Bounds) {
	b.X, b.VX = reflectAxis(b.X, b.VX, bounds.Width)
	b.Y, b.VY = reflectAxis(b.Y, b.VY, bounds.Height)
}

func reflectAxis(p, v, extent float64) (float64, float64) {
	switch {
	case p < 0:
		return 0, math.Abs(v)
	case p > extent:
		return extent, -math.Abs(v)
	}
	return p, v
}

// FieldAt returns r²/d² at (x, y) with d² aspect corrected and floored at
// MinDistSq.
func (b *Blob) FieldAt(x, y float64) float64 {
	dx := (x - b.X) * AspectRatio
	dy := y - b.Y
	d2 := dx*dx + dy*dy
	if d2 < MinDistSq {
		d2 = MinDistSq
	}
	return b.Radius * b.Radius / d2
}

// FieldAt sums the contribution of every blob at (x, y).
func FieldAt(blobs []Blob, x, y float64) float64 {
	sum := 0.0
	for i := range blobs {
		sum += blobs[i].FieldAt(x, y)
	}
	return sum
}

// Source is anything that can be sampled as a scalar field.
type Source interface {
	FieldAt(x, y float64) float64
}
