package radiosity

import "errors"

var (
	// ErrDegeneratePatch is returned when a patch cannot be built from the given corners, normal or reflectance.
	ErrDegeneratePatch = errors.New("degenerate patch")
	// ErrNotCoplanar is returned by ClassifyBounds when the point is not on the rectangle's plane.
	ErrNotCoplanar = errors.New("point and center not on the same plane")
	// ErrNumericalDegeneracy is returned when a pixel weight would divide by (nearly) zero.
	ErrNumericalDegeneracy = errors.New("numerical degeneracy")
	// ErrUnresolvedAdjacency is returned when a face edge pixel has no partner on the neighboring face.
	ErrUnresolvedAdjacency = errors.New("unresolved pixel adjacency")
	// ErrOffFace is returned when a clipped vertex projects outside the face it was clipped to.
	ErrOffFace = errors.New("projected vertex outside its face")
	// ErrInvalidConfig is returned for hemicube parameters that cannot produce a regular grid.
	ErrInvalidConfig = errors.New("invalid hemicube config")
)
