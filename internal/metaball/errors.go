package metaball

import "errors"

// Construction errors. Advance and FieldAt never fail.
var (
	// ErrInvalidBounds indicates a non-positive or non-finite plane size.
	ErrInvalidBounds = errors.New("metaball: bounds must be positive and finite")

	// ErrInvalidThreshold indicates a non-positive isosurface threshold.
	ErrInvalidThreshold = errors.New("metaball: threshold must be positive")

	// ErrInvalidRadius indicates a blob radius that is not strictly positive.
	ErrInvalidRadius = errors.New("metaball: radius must be positive")

	// ErrNoBlobs indicates a scene with an empty blob set.
	ErrNoBlobs = errors.New("metaball: scene needs at least one blob")
)
