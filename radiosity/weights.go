package radiosity

import (
	"fmt"
	"math"
)

// calcPixelFormFactors precomputes the form factor from the origin to every pixel.
//
// The weight is the integral of cos(theta_shooter) cos(theta_pixel) / (pi r^2) over the pixel. On
// the front face that kernel is H^2 / (pi (x^2+y^2+H^2)^2) and on a side face v H / (pi
// (u^2+v^2+H^2)^2), v the height above the base. The integral is evaluated exactly with
// DifferentialToPolygon, so the pixels of a hemicube tile the hemisphere and the weights sum to 1
// at any resolution.
func (h *Hemicube) calcPixelFormFactors() error {
	minR2 := h.cfg.Tolerance * h.cfg.Tolerance
	for id := range h.pixels {
		p := &h.pixels[id]

		r := p.Center.Sub(h.origin)
		if r.Dot(r) < minR2 {
			return fmt.Errorf("%w: %v coincides with the hemicube origin", ErrNumericalDegeneracy, p)
		}
		c := h.PixelCorners(id)
		w := DifferentialToPolygon(h.origin, h.Z, c[0], c[1], c[3], c[2])
		if math.IsNaN(w) || math.IsInf(w, 0) {
			return fmt.Errorf("%w: %v has weight %g", ErrNumericalDegeneracy, p, w)
		}
		p.Weight = w
	}
	return nil
}
