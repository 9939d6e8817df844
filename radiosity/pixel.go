package radiosity

import (
	"fmt"

	"github.com/fogleman/pt/pt"
)

// Pixel is one grid cell on a hemicube face.
//
// Pixels are created with their hemicube and never change afterwards. Which patch covers a
// pixel is tracked per query in a Coverage, not on the pixel.
type Pixel struct {
	ID   int
	Face HemiFace
	// Integer grid coordinates on the face
	I, J   int
	Center pt.Vector
	Size   float64
	// Which face boundary the pixel sits on. Inside for interior pixels.
	Location Bounds
	// Differential form factor of the pixel as seen from the hemicube origin
	Weight float64

	adjacent []int
}

// Adjacent returns the ids of the neighboring pixels, including those across face seams.
func (p Pixel) Adjacent() []int {
	return append([]int(nil), p.adjacent...)
}

func (p Pixel) String() string {
	return fmt.Sprintf("pixel %d (%v %d,%d)", p.ID, p.Face, p.I, p.J)
}

// classifyPixel finds which edges of the face lie within one pixel of the given pixel.
func classifyPixel(f *Face, center pt.Vector, tolerance float64) (Bounds, error) {
	out := [4]bool{}
	steps := [4]pt.Vector{
		f.Axis1.MulScalar(f.pitch),
		f.Axis1.MulScalar(-f.pitch),
		f.Axis2.MulScalar(f.pitch),
		f.Axis2.MulScalar(-f.pitch),
	}
	for k, step := range steps {
		b, err := ClassifyBounds(center.Add(step), f.Center, f.Axis1, f.Axis2, f.Len1, f.Len2, tolerance)
		if err != nil {
			return Inside, err
		}
		out[k] = b != Inside
	}
	more1, less1, more2, less2 := out[0], out[1], out[2], out[3]

	switch {
	case more1 && more2:
		return Axis1PosAxis2Pos, nil
	case less1 && less2:
		return Axis1NegAxis2Neg, nil
	case more1 && less2:
		return Axis1PosAxis2Neg, nil
	case less1 && more2:
		return Axis1NegAxis2Pos, nil
	case more1:
		return Axis1Pos, nil
	case less1:
		return Axis1Neg, nil
	case more2:
		return Axis2Pos, nil
	case less2:
		return Axis2Neg, nil
	}
	return Inside, nil
}

// edges splits a location into the single face edges it touches.
func (b Bounds) edges() []Bounds {
	switch b {
	case Axis1Pos, Axis1Neg, Axis2Pos, Axis2Neg:
		return []Bounds{b}
	case Axis1PosAxis2Pos:
		return []Bounds{Axis1Pos, Axis2Pos}
	case Axis1PosAxis2Neg:
		return []Bounds{Axis1Pos, Axis2Neg}
	case Axis1NegAxis2Pos:
		return []Bounds{Axis1Neg, Axis2Pos}
	case Axis1NegAxis2Neg:
		return []Bounds{Axis1Neg, Axis2Neg}
	}
	return nil
}
