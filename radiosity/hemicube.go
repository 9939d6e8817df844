package radiosity

import (
	"fmt"

	"github.com/fogleman/pt/pt"
	"gonum.org/v1/gonum/floats"
)

// Hemicube is a five-faced half cube around a shooting patch, discretized into pixels.
//
// A Hemicube is read-only once NewHemicube returns and may be shared between goroutines.
type Hemicube struct {
	cfg    Config
	origin pt.Vector
	// Right handed frame, Z is the shooter's normal
	X, Y, Z pt.Vector
	// Distance from the origin to every face plane
	height float64

	faces  [NumFaces]Face
	pixels []Pixel
	// Receivers are clipped to the half-space in front of this plane
	base Plane
}

// NewHemicube builds the faces, pixel grid, adjacency and pixel weights of a hemicube at origin.
//
// Any failure in these steps fails the whole construction.
func NewHemicube(origin, normal pt.Vector, cfg Config) (*Hemicube, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if normal.Length() < 1e-12 {
		return nil, fmt.Errorf("%w: zero-length hemicube normal", ErrInvalidConfig)
	}

	frame := MakePlane(origin, normal)
	h := &Hemicube{
		cfg:    cfg,
		origin: origin,
		X:      frame.U,
		Y:      frame.V,
		Z:      frame.Normal,
		height: cfg.SideLength / 2,
	}
	h.base = Plane{Point: origin.Add(h.Z.MulScalar(cfg.Tolerance)), Normal: h.Z}

	h.createFaces()
	if err := h.createPixels(); err != nil {
		return nil, fmt.Errorf("creating pixels: %w", err)
	}
	if err := h.createAdjacency(); err != nil {
		return nil, fmt.Errorf("creating pixel adjacency: %w", err)
	}
	if err := h.calcPixelFormFactors(); err != nil {
		return nil, fmt.Errorf("computing pixel form factors: %w", err)
	}
	verifyHemicube(h)
	return h, nil
}

func (h *Hemicube) createFaces() {
	side := h.cfg.SideLength
	half := h.height
	n := h.cfg.pixelsPerSide()
	mid := h.origin.Add(h.Z.MulScalar(half / 2))

	h.faces = [NumFaces]Face{
		Front: {
			Kind: Front, Center: h.origin.Add(h.Z.MulScalar(half)),
			Axis1: h.X, Axis2: h.Y, Normal: h.Z,
			Len1: side, Len2: side, N1: n, N2: n,
		},
		Left: {
			Kind: Left, Center: mid.Add(h.X.MulScalar(half)),
			Axis1: h.Y, Axis2: h.Z, Normal: h.X,
			Len1: side, Len2: half, N1: n, N2: n / 2,
		},
		Right: {
			Kind: Right, Center: mid.Sub(h.X.MulScalar(half)),
			Axis1: h.Z, Axis2: h.Y, Normal: h.X.MulScalar(-1),
			Len1: half, Len2: side, N1: n / 2, N2: n,
		},
		Up: {
			Kind: Up, Center: mid.Add(h.Y.MulScalar(half)),
			Axis1: h.Z, Axis2: h.X, Normal: h.Y,
			Len1: half, Len2: side, N1: n / 2, N2: n,
		},
		Down: {
			Kind: Down, Center: mid.Sub(h.Y.MulScalar(half)),
			Axis1: h.X, Axis2: h.Z, Normal: h.Y.MulScalar(-1),
			Len1: side, Len2: half, N1: n, N2: n / 2,
		},
	}

	first := 0
	for k := range h.faces {
		f := &h.faces[k]
		f.pitch = h.cfg.PixelPitch
		f.firstID = first
		first += f.N1 * f.N2

		for _, edge := range []Bounds{Axis1Pos, Axis1Neg, Axis2Pos, Axis2Neg} {
			dir := f.edgeDirection(edge)
			f.neighbors[edgeIndex(edge)] = h.faceFacing(dir)

			across := f.Len1 / 2
			if edge == Axis2Pos || edge == Axis2Neg {
				across = f.Len2 / 2
			}
			edgeMid := f.Center.Add(dir.MulScalar(across))
			normal := edgeMid.Sub(h.origin).Cross(f.edgeAxis(edge)).Normalize()
			if f.Center.Sub(h.origin).Dot(normal) < 0 {
				normal = normal.MulScalar(-1)
			}
			f.frustum[edgeIndex(edge)] = Plane{Point: h.origin, Normal: normal}
		}
	}
}

// faceFacing returns the face whose outward normal points along dir. Directions into the
// base plane have no face.
func (h *Hemicube) faceFacing(dir pt.Vector) HemiFace {
	if dir.Dot(h.Z) < -0.5 {
		return noFace
	}
	for k := range h.faces {
		if h.faces[k].Normal.Dot(dir) > 0.5 {
			return h.faces[k].Kind
		}
	}
	return noFace
}

// createPixels tiles one quadrant of each face and mirrors it across both face axes.
func (h *Hemicube) createPixels() error {
	total := 0
	for k := range h.faces {
		total += h.faces[k].N1 * h.faces[k].N2
	}
	h.pixels = make([]Pixel, total)
	filled := make([]bool, total)

	for k := range h.faces {
		f := &h.faces[k]
		for i := 0; i < (f.N1+1)/2; i++ {
			for j := 0; j < (f.N2+1)/2; j++ {
				mirrors := [4][2]int{
					{i, j},
					{f.N1 - 1 - i, j},
					{i, f.N2 - 1 - j},
					{f.N1 - 1 - i, f.N2 - 1 - j},
				}
				for _, m := range mirrors {
					id := f.id(m[0], m[1])
					if filled[id] {
						continue
					}
					filled[id] = true
					center := f.pixelCenter(m[0], m[1])
					loc, err := classifyPixel(f, center, h.cfg.Tolerance)
					if err != nil {
						return fmt.Errorf("classifying pixel %d on %v face: %w", id, f.Kind, err)
					}
					h.pixels[id] = Pixel{
						ID:       id,
						Face:     f.Kind,
						I:        m[0],
						J:        m[1],
						Center:   center,
						Size:     h.cfg.PixelPitch,
						Location: loc,
					}
				}
			}
		}
	}

	for id, ok := range filled {
		if !ok {
			return fmt.Errorf("pixel %d was never created", id)
		}
	}
	return nil
}

func (h *Hemicube) Origin() pt.Vector {
	return h.origin
}

func (h *Hemicube) Config() Config {
	return h.cfg
}

// Face returns a copy of one face's geometry.
func (h *Hemicube) Face(kind HemiFace) Face {
	return h.faces[kind]
}

func (h *Hemicube) NumPixels() int {
	return len(h.pixels)
}

// Pixel returns the pixel with the given id.
func (h *Hemicube) Pixel(id int) (Pixel, bool) {
	if id < 0 || id >= len(h.pixels) {
		return Pixel{}, false
	}
	return h.pixels[id], true
}

// Pixels returns every pixel ordered by id. The slice must not be modified.
func (h *Hemicube) Pixels() []Pixel {
	return h.pixels
}

// PixelCorners returns the four corners of a pixel in the order of CornersFromCenter.
func (h *Hemicube) PixelCorners(id int) [4]pt.Vector {
	p := h.pixels[id]
	f := &h.faces[p.Face]
	return CornersFromCenter(p.Center, f.Axis1, f.Axis2, p.Size, p.Size)
}

// Locate returns the id of the pixel centered at point.
func (h *Hemicube) Locate(point pt.Vector) (int, bool) {
	for k := range h.faces {
		if id, ok := h.faces[k].Locate(point, h.cfg.Tolerance); ok {
			return id, true
		}
	}
	return 0, false
}

// TotalWeight sums every pixel weight. For a complete hemicube this is 1 up to discretization error.
func (h *Hemicube) TotalWeight() float64 {
	weights := make([]float64, len(h.pixels))
	for i, p := range h.pixels {
		weights[i] = p.Weight
	}
	return floats.Sum(weights)
}
