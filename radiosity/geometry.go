package radiosity

import (
	"fmt"

	"github.com/fogleman/pt/pt"
)

// Bounds classifies a point against a rectangle in 3D space.
type Bounds int

const (
	Inside Bounds = iota
	Axis1Pos
	Axis1Neg
	Axis2Pos
	Axis2Neg
	// Corner cases, the point exceeds both axes
	Axis1PosAxis2Pos
	Axis1PosAxis2Neg
	Axis1NegAxis2Pos
	Axis1NegAxis2Neg
)

var boundsNames = map[Bounds]string{
	Inside:           "inside",
	Axis1Pos:         "+axis1",
	Axis1Neg:         "-axis1",
	Axis2Pos:         "+axis2",
	Axis2Neg:         "-axis2",
	Axis1PosAxis2Pos: "+axis1+axis2",
	Axis1PosAxis2Neg: "+axis1-axis2",
	Axis1NegAxis2Pos: "-axis1+axis2",
	Axis1NegAxis2Neg: "-axis1-axis2",
}

func (b Bounds) String() string {
	if s, ok := boundsNames[b]; ok {
		return s
	}
	return fmt.Sprintf("Bounds(%d)", int(b))
}

// CornersFromCenter returns the four corners of the rectangle spanning len1 along axis1 and len2 along axis2.
//
// Corners are ordered with the axis1 sign in the outer loop and the axis2 sign in the inner loop:
// (-,-), (-,+), (+,-), (+,+). Callers index into the result, so the order is fixed.
func CornersFromCenter(center, axis1, axis2 pt.Vector, len1, len2 float64) [4]pt.Vector {
	var corners [4]pt.Vector
	k := 0
	for i := -1; i <= 1; i += 2 {
		for j := -1; j <= 1; j += 2 {
			corners[k] = center.
				Add(axis1.MulScalar(float64(i) * len1 / 2)).
				Add(axis2.MulScalar(float64(j) * len2 / 2))
			k++
		}
	}
	return corners
}

// ApproxEqual reports whether a and b differ by no more than tolerance.
func ApproxEqual(a, b, tolerance float64) bool {
	c := a - b
	return c <= tolerance && c >= -tolerance
}

// EqualAlongAxis reports whether two points have the same component along axis.
func EqualAlongAxis(p, q, axis pt.Vector, tolerance float64) bool {
	return ApproxEqual(p.Dot(axis), q.Dot(axis), tolerance)
}

// ClassifyBounds reports where point lies relative to the rectangle centered at center.
//
// The point must lie on the rectangle's plane; otherwise ErrNotCoplanar is returned.
// Values within tolerance of an edge count as inside.
func ClassifyBounds(point, center, axis1, axis2 pt.Vector, len1, len2, tolerance float64) (Bounds, error) {
	axis3 := axis1.Cross(axis2)
	if !EqualAlongAxis(point, center, axis3, tolerance) {
		return Inside, fmt.Errorf("%w: offset %g along normal", ErrNotCoplanar, point.Sub(center).Dot(axis3))
	}

	d := point.Sub(center)
	d1 := d.Dot(axis1)
	d2 := d.Dot(axis2)

	above1 := d1 > len1/2 && !ApproxEqual(d1, len1/2, tolerance)
	below1 := d1 < -len1/2 && !ApproxEqual(d1, -len1/2, tolerance)
	above2 := d2 > len2/2 && !ApproxEqual(d2, len2/2, tolerance)
	below2 := d2 < -len2/2 && !ApproxEqual(d2, -len2/2, tolerance)

	switch {
	case above1 && above2:
		return Axis1PosAxis2Pos, nil
	case below1 && below2:
		return Axis1NegAxis2Neg, nil
	case above1 && below2:
		return Axis1PosAxis2Neg, nil
	case below1 && above2:
		return Axis1NegAxis2Pos, nil
	case above1:
		return Axis1Pos, nil
	case below1:
		return Axis1Neg, nil
	case above2:
		return Axis2Pos, nil
	case below2:
		return Axis2Neg, nil
	}
	return Inside, nil
}
