// Package scene turns 3MF room models into radiosity patches.
package scene

import (
	"fmt"

	"github.com/fogleman/pt/pt"
	"github.com/hpinc/go3mf"

	"github.com/jdginn/go-radiosity/radiosity"
)

// SCALE converts 3MF millimetres to metres.
const SCALE = 1000

const (
	defaultSurface = "default"
	coplanarCos    = 1 - 1e-9
	vertexEpsilon  = 1e-9
)

// Surface is the triangle soup of one named 3MF object.
type Surface struct {
	Name      string
	Triangles []*pt.Triangle
}

// Load3MF reads every build item of a 3MF file and returns one patch per quad. Each surface takes
// its reflectance from the entry named after its object, falling back to "default".
func Load3MF(path string, reflectance map[string]float64) ([]*radiosity.Patch, error) {
	surfaces, err := ReadSurfaces(path)
	if err != nil {
		return nil, err
	}
	return Patches(surfaces, reflectance)
}

// ReadSurfaces decodes the meshes of every build item in a 3MF file.
func ReadSurfaces(path string) ([]Surface, error) {
	var model go3mf.Model
	r, err := go3mf.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer r.Close()
	if err := r.Decode(&model); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}

	var surfaces []Surface
	for _, item := range model.Build.Items {
		obj, ok := model.FindObject(item.ObjectPath(), item.ObjectID)
		if !ok || obj.Mesh == nil {
			continue
		}
		vertex := func(i uint32) pt.Vector {
			v := obj.Mesh.Vertices.Vertex[i]
			return pt.Vector{
				X: float64(v.X() / SCALE),
				Y: float64(v.Y() / SCALE),
				Z: float64(v.Z() / SCALE),
			}
		}

		s := Surface{Name: obj.Name}
		for _, t := range obj.Mesh.Triangles.Triangle {
			tri := pt.NewTriangle(vertex(t.V1), vertex(t.V2), vertex(t.V3), pt.Vector{}, pt.Vector{}, pt.Vector{}, pt.Material{})
			tri.FixNormals()
			s.Triangles = append(s.Triangles, tri)
		}
		surfaces = append(surfaces, s)
	}
	return surfaces, nil
}

// Patches builds patches from surfaces, numbering them in order from 0.
func Patches(surfaces []Surface, reflectance map[string]float64) ([]*radiosity.Patch, error) {
	var patches []*radiosity.Patch
	for _, s := range surfaces {
		rho, ok := reflectance[s.Name]
		if !ok {
			rho, ok = reflectance[defaultSurface]
		}
		if !ok {
			return nil, fmt.Errorf("surface %q: no reflectance and no %q entry", s.Name, defaultSurface)
		}

		for _, q := range PairTriangles(s.Triangles) {
			p, err := radiosity.NewPatch(len(patches), q.Corners[:], q.Normal, rho)
			if err != nil {
				return nil, fmt.Errorf("surface %q: %w", s.Name, err)
			}
			patches = append(patches, p)
		}
	}
	return patches, nil
}

// Quad is four corners in boundary order with the normal of the triangles they came from.
type Quad struct {
	Corners [4]pt.Vector
	Normal  pt.Vector
}

// PairTriangles merges each triangle with the one after it when the two share an edge, lie in the
// same plane and form a convex quad. A triangle left over becomes the quad (a, b, c, mid(c, a)).
// Degenerate triangles are dropped.
func PairTriangles(tris []*pt.Triangle) []Quad {
	var quads []Quad
	for i := 0; i < len(tris); i++ {
		t := tris[i]
		n := triangleNormal(t)
		if n == (pt.Vector{}) {
			continue
		}
		if i+1 < len(tris) {
			if q, ok := merge(t, tris[i+1], n); ok {
				quads = append(quads, q)
				i++
				continue
			}
		}
		quads = append(quads, Quad{
			Corners: [4]pt.Vector{t.V1, t.V2, t.V3, radiosity.Midpoint(t.V3, t.V1)},
			Normal:  n,
		})
	}
	return quads
}

func merge(t, u *pt.Triangle, n pt.Vector) (Quad, bool) {
	m := triangleNormal(u)
	if m.Dot(n) < coplanarCos {
		return Quad{}, false
	}
	tv := [3]pt.Vector{t.V1, t.V2, t.V3}
	uv := [3]pt.Vector{u.V1, u.V2, u.V3}
	for k := range 3 {
		a, b, c := tv[k], tv[(k+1)%3], tv[(k+2)%3]
		d, ok := opposite(uv, a, b)
		if !ok {
			continue
		}
		q := Quad{Corners: [4]pt.Vector{a, d, b, c}, Normal: n}
		if !convex(q) {
			return Quad{}, false
		}
		return q, true
	}
	return Quad{}, false
}

// opposite returns the vertex of tri that is neither a nor b, if tri has the edge ab.
func opposite(tri [3]pt.Vector, a, b pt.Vector) (pt.Vector, bool) {
	var rest []pt.Vector
	foundA, foundB := false, false
	for _, v := range tri {
		switch {
		case !foundA && samePoint(v, a):
			foundA = true
		case !foundB && samePoint(v, b):
			foundB = true
		default:
			rest = append(rest, v)
		}
	}
	if !foundA || !foundB || len(rest) != 1 {
		return pt.Vector{}, false
	}
	return rest[0], true
}

func convex(q Quad) bool {
	for i := range 4 {
		a, b, c := q.Corners[i], q.Corners[(i+1)%4], q.Corners[(i+2)%4]
		if b.Sub(a).Cross(c.Sub(b)).Dot(q.Normal) <= 0 {
			return false
		}
	}
	return true
}

func samePoint(a, b pt.Vector) bool {
	return a.Sub(b).Length() < vertexEpsilon
}

// triangleNormal is the unit normal by the right hand rule, or zero for a degenerate triangle.
func triangleNormal(t *pt.Triangle) pt.Vector {
	c := t.V2.Sub(t.V1).Cross(t.V3.Sub(t.V1))
	if c.Length() < vertexEpsilon*vertexEpsilon {
		return pt.Vector{}
	}
	return c.Normalize()
}
