package radiosity

import (
	"math"

	"github.com/fogleman/pt/pt"
)

// ParallelPlatesFormFactor is the form factor between two directly opposed a x b rectangles a distance c apart.
func ParallelPlatesFormFactor(a, b, c float64) float64 {
	x := a / c
	y := b / c
	x2, y2 := x*x, y*y
	sqx := math.Sqrt(1 + x2)
	sqy := math.Sqrt(1 + y2)
	f := 0.5*math.Log((1+x2)*(1+y2)/(1+x2+y2)) +
		x*sqy*math.Atan(x/sqy) +
		y*sqx*math.Atan(y/sqx) -
		x*math.Atan(x) -
		y*math.Atan(y)
	return 2 / (math.Pi * x * y) * f
}

// DifferentialToParallelRect is the form factor from a differential area to a parallel a x b
// rectangle centered a distance c above it.
//
// This is what a hemicube at the shooter's center estimates.
func DifferentialToParallelRect(a, b, c float64) float64 {
	return 4 * cornerRect(a/2/c, b/2/c)
}

// cornerRect is the form factor to a rectangle with one corner above the differential area,
// sides given relative to the separation.
func cornerRect(x, y float64) float64 {
	sx := math.Sqrt(1 + x*x)
	sy := math.Sqrt(1 + y*y)
	return (x/sx*math.Atan(y/sx) + y/sy*math.Atan(x/sy)) / (2 * math.Pi)
}

// DifferentialToPolygon is the form factor from a differential area at point with the given unit
// normal to a planar polygon lying entirely on the normal's side, by Lambert's contour integral.
func DifferentialToPolygon(point, normal pt.Vector, corners ...pt.Vector) float64 {
	var sum float64
	for i := range corners {
		a := corners[i].Sub(point)
		b := corners[(i+1)%len(corners)].Sub(point)
		c := a.Cross(b)
		l := c.Length()
		if l == 0 {
			continue
		}
		sum += math.Atan2(l, a.Dot(b)) * normal.Dot(c) / l
	}
	return math.Abs(sum) / (2 * math.Pi)
}
