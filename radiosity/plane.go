package radiosity

import (
	"github.com/fogleman/pt/pt"
)

// Plane clipping and projection helpers. The clipping follows fogleman/choppy with some modifications.

type Point2D struct {
	X, Y float64
}

// Polygon2D is a closed polygon in face-local coordinates.
type Polygon2D []Point2D

// BoundingBox returns the extents of the polygon. An empty polygon has zero extents.
func (p Polygon2D) BoundingBox() (XMin, XMax, YMin, YMax float64) {
	if len(p) == 0 {
		return
	}
	XMin, XMax = p[0].X, p[0].X
	YMin, YMax = p[0].Y, p[0].Y
	for _, v := range p[1:] {
		if v.X < XMin {
			XMin = v.X
		}
		if v.X > XMax {
			XMax = v.X
		}
		if v.Y < YMin {
			YMin = v.Y
		}
		if v.Y > YMax {
			YMax = v.Y
		}
	}
	return
}

// Contains reports whether q lies inside the polygon using the crossing number rule.
func (p Polygon2D) Contains(q Point2D) bool {
	if len(p) < 3 {
		return false
	}
	inside := false
	j := len(p) - 1
	for i := range p {
		a, b := p[i], p[j]
		if (a.Y > q.Y) != (b.Y > q.Y) {
			x := a.X + (q.Y-a.Y)*(b.X-a.X)/(b.Y-a.Y)
			if q.X < x {
				inside = !inside
			}
		}
		j = i
	}
	return inside
}

type Plane struct {
	Point  pt.Vector
	Normal pt.Vector
	U, V   pt.Vector
}

func MakePlane(point, normal pt.Vector) Plane {
	normal = normal.Normalize()
	u := perpendicular(normal).Normalize()
	v := normal.Cross(u).Normalize()
	return Plane{point, normal, u, v}
}

// Project returns the in-plane coordinates of point along U and V.
func (p Plane) Project(point pt.Vector) Point2D {
	d := point.Sub(p.Point)
	return Point2D{d.Dot(p.U), d.Dot(p.V)}
}

// perpendicular returns a deterministic unit vector orthogonal to a.
func perpendicular(a pt.Vector) pt.Vector {
	if a.X == 0 && a.Y == 0 {
		if a.Z == 0 {
			return pt.Vector{}
		}
		return V(0, 1, 0)
	}
	return V(-a.Y, a.X, 0).Normalize()
}

func (p Plane) signedDistance(v pt.Vector) float64 {
	return v.Sub(p.Point).Dot(p.Normal)
}

func (p Plane) pointInFront(v pt.Vector) bool {
	return p.signedDistance(v) > 0
}

func (p Plane) intersectSegment(v0, v1 pt.Vector) (pt.Vector, bool) {
	u := v1.Sub(v0)
	w := v0.Sub(p.Point)
	d := p.Normal.Dot(u)
	if d > -1e-12 && d < 1e-12 {
		return pt.Vector{}, false
	}
	n := -p.Normal.Dot(w)
	t := n / d
	if t < 0 || t > 1 {
		return pt.Vector{}, false
	}
	return v0.Add(u.MulScalar(t)), true
}

// sutherlandHodgman clips a polygon to the half-spaces in front of every plane.
func sutherlandHodgman(points []pt.Vector, planes []Plane) []pt.Vector {
	output := points
	for _, plane := range planes {
		input := output
		output = nil
		if len(input) == 0 {
			return nil
		}
		s := input[len(input)-1]
		for _, e := range input {
			if plane.pointInFront(e) {
				if !plane.pointInFront(s) {
					if x, ok := plane.intersectSegment(s, e); ok {
						output = append(output, x)
					}
				}
				output = append(output, e)
			} else if plane.pointInFront(s) {
				if x, ok := plane.intersectSegment(s, e); ok {
					output = append(output, x)
				}
			}
			s = e
		}
	}
	return output
}
