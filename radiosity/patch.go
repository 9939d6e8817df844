package radiosity

import (
	"fmt"
	"math"

	"github.com/fogleman/pt/pt"
)

// Relative tolerance for corner coplanarity, scaled by the patch's largest extent.
const patchCoplanarityEpsilon = 1e-6

// Patch is a planar quadrilateral surface element.
//
// Corners are stored counter-clockwise. A patch need not be a perfect rectangle.
type Patch struct {
	ID int

	corners     [4]pt.Vector
	normal      pt.Vector
	reflectance float64
	center      pt.Vector

	// Amount of light hitting the patch
	incident float64
	// Amount of light leaving the patch
	excident float64
}

// NewPatch validates the corners, normal and reflectance and derives the patch center.
func NewPatch(id int, corners []pt.Vector, normal pt.Vector, reflectance float64) (*Patch, error) {
	if len(corners) != 4 {
		return nil, fmt.Errorf("%w: patch %d has %d corners, want 4", ErrDegeneratePatch, id, len(corners))
	}
	if normal.Length() < 1e-12 || math.IsNaN(normal.Length()) {
		return nil, fmt.Errorf("%w: patch %d has a zero-length normal", ErrDegeneratePatch, id)
	}
	if reflectance < 0 || reflectance > 1 || math.IsNaN(reflectance) {
		return nil, fmt.Errorf("%w: patch %d reflectance %g outside [0, 1]", ErrDegeneratePatch, id, reflectance)
	}
	normal = normal.Normalize()

	p := &Patch{ID: id, normal: normal, reflectance: reflectance}
	copy(p.corners[:], corners)

	extent := 0.0
	for i := range p.corners {
		extent = math.Max(extent, p.corners[i].Sub(p.corners[(i+1)%4]).Length())
	}
	if extent == 0 {
		return nil, fmt.Errorf("%w: patch %d has coincident corners", ErrDegeneratePatch, id)
	}
	for _, c := range p.corners[1:] {
		if off := math.Abs(c.Sub(p.corners[0]).Dot(normal)); off > patchCoplanarityEpsilon*extent {
			return nil, fmt.Errorf("%w: patch %d corners not coplanar (offset %g)", ErrDegeneratePatch, id, off)
		}
	}

	p.center = Midpoint(Midpoint(p.corners[0], p.corners[2]), Midpoint(p.corners[1], p.corners[3]))
	return p, nil
}

func (p *Patch) Corners() [4]pt.Vector {
	return p.corners
}

func (p *Patch) Normal() pt.Vector {
	return p.normal
}

func (p *Patch) Reflectance() float64 {
	return p.reflectance
}

func (p *Patch) Center() pt.Vector {
	return p.center
}

func (p *Patch) Incident() float64 {
	return p.incident
}

func (p *Patch) Excident() float64 {
	return p.excident
}

// AddIncident accumulates light arriving at the patch and updates the light leaving it.
//
// Only the outer radiosity loop calls this, between form factor queries.
func (p *Patch) AddIncident(energy float64) {
	p.incident += energy
	p.excident = p.reflectance * p.incident
}

// Area of the quadrilateral, half the magnitude of the cross product of its diagonals.
func (p *Patch) Area() float64 {
	d1 := p.corners[2].Sub(p.corners[0])
	d2 := p.corners[3].Sub(p.corners[1])
	return d1.Cross(d2).Length() / 2
}

// valid reports whether the patch was built by NewPatch.
func (p *Patch) valid() bool {
	return p != nil && ApproxEqual(p.normal.Length(), 1, 1e-9)
}

func (p *Patch) String() string {
	return fmt.Sprintf("patch %d at {%.3f, %.3f, %.3f}", p.ID, p.center.X, p.center.Y, p.center.Z)
}
