package radiosity

import (
	"github.com/fogleman/pt/pt"
)

// V is a shorthand constructor for pt.Vector
func V(X, Y, Z float64) pt.Vector {
	return pt.Vector{X: X, Y: Y, Z: Z}
}

func Midpoint(a, b pt.Vector) pt.Vector {
	return a.Add(b).MulScalar(0.5)
}
