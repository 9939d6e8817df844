package radiosity

import (
	"math"

	"github.com/fogleman/pt/pt"
)

// HemiFace identifies one of the five faces of a hemicube.
type HemiFace int

const (
	Front HemiFace = iota
	Left
	Right
	Up
	Down
)

// NumFaces is the number of faces on a hemicube.
const NumFaces = 5

func (f HemiFace) String() string {
	switch f {
	case Front:
		return "front"
	case Left:
		return "left"
	case Right:
		return "right"
	case Up:
		return "up"
	case Down:
		return "down"
	}
	return "unknown"
}

// noFace marks a face edge on the hemicube's base rim.
const noFace HemiFace = -1

// Face is one rectangular face of a hemicube with its own pixel grid.
//
// Axis1 x Axis2 is the outward Normal. Pixel (i, j) covers the cell i along Axis1 and j along Axis2,
// counted from the (-,-) corner.
type Face struct {
	Kind   HemiFace
	Center pt.Vector
	Axis1  pt.Vector
	Axis2  pt.Vector
	Normal pt.Vector
	Len1   float64
	Len2   float64
	N1, N2 int

	pitch   float64
	firstID int
	// Face across each edge, indexed by Axis1Pos, Axis1Neg, Axis2Pos, Axis2Neg.
	neighbors [4]HemiFace
	// Planes through the hemicube origin and each edge, facing into the face's pyramid.
	frustum [4]Plane
}

// edgeIndex maps single-axis Bounds to the neighbors index.
func edgeIndex(b Bounds) int {
	switch b {
	case Axis1Pos:
		return 0
	case Axis1Neg:
		return 1
	case Axis2Pos:
		return 2
	case Axis2Neg:
		return 3
	}
	return -1
}

// edgeDirection is the outward in-plane direction of an edge.
func (f *Face) edgeDirection(b Bounds) pt.Vector {
	switch b {
	case Axis1Pos:
		return f.Axis1
	case Axis1Neg:
		return f.Axis1.MulScalar(-1)
	case Axis2Pos:
		return f.Axis2
	case Axis2Neg:
		return f.Axis2.MulScalar(-1)
	}
	return pt.Vector{}
}

// edgeAxis is the direction along an edge.
func (f *Face) edgeAxis(b Bounds) pt.Vector {
	if b == Axis1Pos || b == Axis1Neg {
		return f.Axis2
	}
	return f.Axis1
}

// Neighbor returns the face across the given edge, and false on the base rim.
func (f *Face) Neighbor(edge Bounds) (HemiFace, bool) {
	i := edgeIndex(edge)
	if i < 0 || f.neighbors[i] == noFace {
		return noFace, false
	}
	return f.neighbors[i], true
}

// local returns the face-local coordinates of a point on the face plane.
func (f *Face) local(p pt.Vector) (float64, float64) {
	d := p.Sub(f.Center)
	return d.Dot(f.Axis1), d.Dot(f.Axis2)
}

// cellCenter returns the face-local coordinates of the center of pixel (i, j).
func (f *Face) cellCenter(i, j int) (float64, float64) {
	return (float64(i)+0.5)*f.pitch - f.Len1/2, (float64(j)+0.5)*f.pitch - f.Len2/2
}

func (f *Face) pixelCenter(i, j int) pt.Vector {
	a, b := f.cellCenter(i, j)
	return f.Center.Add(f.Axis1.MulScalar(a)).Add(f.Axis2.MulScalar(b))
}

func (f *Face) inGrid(i, j int) bool {
	return i >= 0 && i < f.N1 && j >= 0 && j < f.N2
}

func (f *Face) id(i, j int) int {
	return f.firstID + i*f.N2 + j
}

// cell buckets face-local coordinates into the integer grid. Coordinates further than a
// quarter pixel from a cell center do not resolve.
func (f *Face) cell(a, b float64) (int, int, bool) {
	fi := (a+f.Len1/2)/f.pitch - 0.5
	fj := (b+f.Len2/2)/f.pitch - 0.5
	i, j := int(math.Round(fi)), int(math.Round(fj))
	if math.Abs(fi-float64(i)) > 0.25 || math.Abs(fj-float64(j)) > 0.25 {
		return 0, 0, false
	}
	return i, j, f.inGrid(i, j)
}

// Locate returns the id of the pixel centered at p.
func (f *Face) Locate(p pt.Vector, tolerance float64) (int, bool) {
	if !ApproxEqual(p.Sub(f.Center).Dot(f.Normal), 0, tolerance) {
		return 0, false
	}
	i, j, ok := f.cell(f.local(p))
	if !ok {
		return 0, false
	}
	return f.id(i, j), true
}

// cellRange returns the pixel index range whose centers fall in [lo, hi] along an axis of
// length n cells spanning length.
func cellRange(lo, hi, length, pitch float64, n int) (int, int) {
	first := int(math.Ceil((lo+length/2)/pitch - 0.5))
	last := int(math.Floor((hi+length/2)/pitch - 0.5))
	if first < 0 {
		first = 0
	}
	if last > n-1 {
		last = n - 1
	}
	return first, last
}
