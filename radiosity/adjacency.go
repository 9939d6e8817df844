package radiosity

import (
	"fmt"
	"slices"
)

// createAdjacency links every pixel to the pixels around it, stitching across face seams.
func (h *Hemicube) createAdjacency() error {
	for id := range h.pixels {
		p := &h.pixels[id]
		f := &h.faces[p.Face]
		for di := -1; di <= 1; di++ {
			for dj := -1; dj <= 1; dj++ {
				if di == 0 && dj == 0 {
					continue
				}
				if f.inGrid(p.I+di, p.J+dj) {
					h.link(id, f.id(p.I+di, p.J+dj))
					continue
				}
				if p.Location == Inside {
					return fmt.Errorf("interior %v has an offset outside its face", p)
				}
				other, ok, err := h.stitch(f, p, di, dj)
				if err != nil {
					return err
				}
				if ok {
					h.link(id, other)
				}
			}
		}
	}
	return h.validateAdjacency()
}

// link adds a symmetric adjacency between two pixels.
func (h *Hemicube) link(a, b int) {
	if !slices.Contains(h.pixels[a].adjacent, b) {
		h.pixels[a].adjacent = append(h.pixels[a].adjacent, b)
	}
	if !slices.Contains(h.pixels[b].adjacent, a) {
		h.pixels[b].adjacent = append(h.pixels[b].adjacent, a)
	}
}

// stitch finds the pixel on a neighboring face that sits at grid offset (di, dj) from p.
//
// The offset point lies in f's plane beyond one of its edges. It is folded around that edge
// onto the face sharing it: a point d beyond the neighbor's plane maps to q - d*n_g - d*n_f.
// Offsets past two edges at once point at the cube vertex and have no pixel. Offsets past the
// base rim have no pixel either.
func (h *Hemicube) stitch(f *Face, p *Pixel, di, dj int) (int, bool, error) {
	tol := h.cfg.Tolerance
	q := p.Center.Add(f.Axis1.MulScalar(float64(di) * f.pitch)).Add(f.Axis2.MulScalar(float64(dj) * f.pitch))

	edge, err := ClassifyBounds(q, f.Center, f.Axis1, f.Axis2, f.Len1, f.Len2, tol)
	if err != nil {
		return 0, false, fmt.Errorf("stitching %v: %w", p, err)
	}
	if edgeIndex(edge) < 0 {
		return 0, false, nil
	}
	kind, ok := f.Neighbor(edge)
	if !ok {
		return 0, false, nil
	}
	g := &h.faces[kind]

	d := q.Sub(g.Center).Dot(g.Normal)
	folded := q.Sub(g.Normal.MulScalar(d)).Sub(f.Normal.MulScalar(d))
	id, ok := g.Locate(folded, tol)
	if !ok {
		return 0, false, nil
	}
	if !EqualAlongAxis(folded, h.pixels[id].Center, f.edgeAxis(edge), tol) {
		return 0, false, nil
	}
	return id, true, nil
}

// validateAdjacency checks that the adjacency graph is symmetric, references only real pixels,
// and that every pixel on a seam found a partner on the face across it.
func (h *Hemicube) validateAdjacency() error {
	for id := range h.pixels {
		p := &h.pixels[id]
		for _, other := range p.adjacent {
			if other < 0 || other >= len(h.pixels) || other == id {
				return fmt.Errorf("%w: %v lists invalid neighbor %d", ErrUnresolvedAdjacency, p, other)
			}
			if !slices.Contains(h.pixels[other].adjacent, id) {
				return fmt.Errorf("%w: %v -> %v is not symmetric", ErrUnresolvedAdjacency, p, h.pixels[other])
			}
		}

		f := &h.faces[p.Face]
		for _, edge := range p.Location.edges() {
			kind, ok := f.Neighbor(edge)
			if !ok {
				continue
			}
			found := false
			for _, other := range p.adjacent {
				if h.pixels[other].Face == kind {
					found = true
					break
				}
			}
			if !found {
				return fmt.Errorf("%w: %v has no partner on the %v face", ErrUnresolvedAdjacency, p, kind)
			}
		}
	}
	return nil
}
