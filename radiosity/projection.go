package radiosity

import (
	"fmt"
	"slices"

	"github.com/fogleman/pt/pt"
	"gonum.org/v1/gonum/floats"
)

// Coverage records which patch projects onto each pixel during a query (pixel id -> patch id).
//
// A Coverage belongs to a single query. Reset it before reusing it.
type Coverage map[int]int

func (c Coverage) Reset() {
	clear(c)
}

// Pixels returns the sorted ids of the pixels covered by patchID.
func (c Coverage) Pixels(patchID int) []int {
	var ids []int
	for id, p := range c {
		if p == patchID {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	return ids
}

// Project marks every pixel whose center lies inside the receiver's silhouette.
//
// The receiver is clipped to the space above the base plane, then per face to the pyramid
// through the origin and the face's edges, and the clipped outline is projected through the
// origin onto the face.
func (h *Hemicube) Project(receiver *Patch, cov Coverage) error {
	corners := receiver.Corners()
	above := sutherlandHodgman(corners[:], []Plane{h.base})
	if len(above) < 3 {
		return nil
	}

	for k := range h.faces {
		f := &h.faces[k]
		clipped := sutherlandHodgman(above, f.frustum[:])
		if len(clipped) < 3 {
			continue
		}
		silhouette, err := h.silhouette(f, clipped)
		if err != nil {
			return fmt.Errorf("projecting %v onto the %v face: %w", receiver, f.Kind, err)
		}
		h.cover(f, silhouette, receiver.ID, cov)
	}
	return nil
}

// silhouette projects points through the origin onto the face plane, in face-local coordinates.
func (h *Hemicube) silhouette(f *Face, points []pt.Vector) (Polygon2D, error) {
	poly := make(Polygon2D, 0, len(points))
	for _, v := range points {
		r := v.Sub(h.origin)
		depth := r.Dot(f.Normal)
		if depth <= 0 {
			continue
		}
		onFace := h.origin.Add(r.MulScalar(h.height / depth))
		where, err := ClassifyBounds(onFace, f.Center, f.Axis1, f.Axis2, f.Len1, f.Len2, h.cfg.Tolerance)
		if err != nil {
			return nil, err
		}
		if where != Inside {
			return nil, fmt.Errorf("%w: %v lands %v of the %v face", ErrOffFace, v, where, f.Kind)
		}
		a, b := f.local(onFace)
		poly = append(poly, Point2D{a, b})
	}
	return poly, nil
}

func (h *Hemicube) cover(f *Face, silhouette Polygon2D, patchID int, cov Coverage) {
	if len(silhouette) < 3 {
		return
	}
	xMin, xMax, yMin, yMax := silhouette.BoundingBox()
	iFirst, iLast := cellRange(xMin, xMax, f.Len1, f.pitch, f.N1)
	jFirst, jLast := cellRange(yMin, yMax, f.Len2, f.pitch, f.N2)
	for i := iFirst; i <= iLast; i++ {
		for j := jFirst; j <= jLast; j++ {
			a, b := f.cellCenter(i, j)
			if silhouette.Contains(Point2D{a, b}) {
				cov[f.id(i, j)] = patchID
			}
		}
	}
}

// CoveredWeight sums the weights of the pixels covered by patchID, clamped to [0, 1].
func (h *Hemicube) CoveredWeight(cov Coverage, patchID int) float64 {
	ids := cov.Pixels(patchID)
	if len(ids) == 0 {
		return 0
	}
	weights := make([]float64, len(ids))
	for i, id := range ids {
		weights[i] = h.pixels[id].Weight
	}
	return clamp01(floats.Sum(weights))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
