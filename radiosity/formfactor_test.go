package radiosity

import (
	"bytes"
	"log"
	"math"
	"testing"

	"github.com/fogleman/pt/pt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustPatch(t *testing.T, id int, corners []pt.Vector, normal pt.Vector) *Patch {
	t.Helper()
	p, err := NewPatch(id, corners, normal, 0.5)
	require.NoError(t, err)
	return p
}

// floorPatch is a side x side patch at height z facing up (or down when facingDown).
func floorPatch(t *testing.T, id int, z, side float64, facingDown bool) *Patch {
	normal := V(0, 0, 1)
	if facingDown {
		normal = V(0, 0, -1)
	}
	return mustPatch(t, id, square(V(0, 0, z), V(1, 0, 0), V(0, 1, 0), side), normal)
}

func TestSelfFormFactorIsZero(t *testing.T) {
	p := floorPatch(t, 1, 0, 1, false)
	ff, err := FormFactor(p, p, coarseConfig())
	require.NoError(t, err)
	assert.Zero(t, ff)

	e, err := NewEngine(coarseConfig())
	require.NoError(t, err)
	ff, err = e.FormFactor(p, p)
	require.NoError(t, err)
	assert.Zero(t, ff)
}

func TestReceiverBehindShooterIsZero(t *testing.T) {
	shooter := floorPatch(t, 1, 0, 1, false)

	tests := []struct {
		name     string
		receiver *Patch
	}{
		{"below", floorPatch(t, 2, -1, 1, false)},
		{"below_facing_down", floorPatch(t, 3, -1, 1, true)},
		{"coplanar", mustPatch(t, 4, square(V(3, 0, 0), V(1, 0, 0), V(0, 1, 0), 1), V(0, 0, 1))},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			ff, err := FormFactor(shooter, test.receiver, coarseConfig())
			require.NoError(t, err)
			assert.Zero(t, ff)
		})
	}
}

func TestReceiverFacingAwayIsZero(t *testing.T) {
	shooter := floorPatch(t, 1, 0, 1, false)
	receiver := floorPatch(t, 2, 1, 1, false)
	ff, err := FormFactor(shooter, receiver, coarseConfig())
	require.NoError(t, err)
	assert.Zero(t, ff)
}

func TestDegenerateReceiverLogs(t *testing.T) {
	var buf bytes.Buffer
	cfg := coarseConfig()
	cfg.Logger = log.New(&buf, "", 0)

	shooter := floorPatch(t, 1, 0, 1, false)
	ff, err := FormFactor(shooter, &Patch{ID: 9}, cfg)
	require.NoError(t, err)
	assert.Zero(t, ff)
	assert.Contains(t, buf.String(), "degenerate receiver")

	buf.Reset()
	ff, err = FormFactor(shooter, nil, cfg)
	require.NoError(t, err)
	assert.Zero(t, ff)
	assert.Contains(t, buf.String(), "degenerate receiver")
}

func TestParallelPlates(t *testing.T) {
	// Projections of these plates land on pixel edges at the default pitch, so the covered pixels
	// tile the projection exactly.
	for _, d := range []float64{1, 2, 5} {
		shooter := floorPatch(t, 1, 0, 1, false)
		receiver := floorPatch(t, 2, d, 1, true)

		ff, err := FormFactor(shooter, receiver, DefaultConfig())
		require.NoError(t, err)

		// A hemicube samples the form factor at the shooter's center
		assert.InDelta(t, DifferentialToParallelRect(1, 1, d), ff, 1e-10, "distance %v", d)

		if d >= 5 {
			// The center estimate approaches the plate-to-plate value once the plates are small
			// relative to their separation: within 2% at d = 5 side lengths.
			assert.InEpsilon(t, ParallelPlatesFormFactor(1, 1, d), ff, 0.02, "distance %v", d)
		}
	}
}

func TestParallelPlatesConverge(t *testing.T) {
	const d = 1.3
	shooter := floorPatch(t, 1, 0, 1, false)
	receiver := floorPatch(t, 2, d, 1, true)
	want := DifferentialToParallelRect(1, 1, d)

	prevBound := 1.0
	for _, pitch := range []float64{0.025, 0.0125, 0.0025} {
		cfg := Config{SideLength: 0.5, PixelPitch: pitch, Tolerance: 2.5e-7}
		ff, err := FormFactor(shooter, receiver, cfg)
		require.NoError(t, err)

		// Covered pixels lie between the projection shrunk and grown by half a pixel per edge
		h := cfg.SideLength / 2
		side := h / d
		bound := DifferentialToParallelRect(side+pitch, side+pitch, h) - DifferentialToParallelRect(side-pitch, side-pitch, h)
		assert.LessOrEqual(t, math.Abs(ff-want), bound+1e-12, "pitch %v", pitch)
		assert.Less(t, bound, prevBound, "pitch %v", pitch)
		prevBound = bound
	}
	assert.Less(t, prevBound, 0.01)
}

func TestSymmetricCubeWalls(t *testing.T) {
	shooter := floorPatch(t, 0, 0, 0.1, false)
	walls := []*Patch{
		mustPatch(t, 1, []pt.Vector{V(1, -1, 0), V(1, 1, 0), V(1, 1, 1), V(1, -1, 1)}, V(-1, 0, 0)),
		mustPatch(t, 2, []pt.Vector{V(-1, 1, 0), V(-1, -1, 0), V(-1, -1, 1), V(-1, 1, 1)}, V(1, 0, 0)),
		mustPatch(t, 3, []pt.Vector{V(1, 1, 0), V(-1, 1, 0), V(-1, 1, 1), V(1, 1, 1)}, V(0, -1, 0)),
		mustPatch(t, 4, []pt.Vector{V(-1, -1, 0), V(1, -1, 0), V(1, -1, 1), V(-1, -1, 1)}, V(0, 1, 0)),
	}

	e, err := NewEngine(coarseConfig())
	require.NoError(t, err)

	var got []float64
	for _, wall := range walls {
		ff, err := e.FormFactor(shooter, wall)
		require.NoError(t, err)
		got = append(got, ff)
	}

	// Each wall covers exactly one side face; the four side faces share what the front face leaves
	want := (1 - DifferentialToParallelRect(2, 2, 1)) / 4
	for i, ff := range got {
		assert.Greater(t, ff, 0.0)
		assert.InDelta(t, got[0], ff, 1e-9, "wall %d", i+1)
		assert.InDelta(t, want, ff, 1e-9, "wall %d", i+1)
	}
}

func TestProjectSinglePixel(t *testing.T) {
	h, err := NewHemicube(V(0, 0, 0), V(0, 0, 1), coarseConfig())
	require.NoError(t, err)

	front := h.Face(Front)
	id := front.id(10, 33)
	c := h.PixelCorners(id)

	// The pixel's footprint pushed out to twice the distance projects back onto exactly that pixel
	var corners []pt.Vector
	for _, k := range []int{0, 2, 3, 1} {
		corners = append(corners, c[k].MulScalar(2))
	}
	receiver := mustPatch(t, 42, corners, V(0, 0, -1))

	cov := make(Coverage)
	require.NoError(t, h.Project(receiver, cov))
	assert.Equal(t, []int{id}, cov.Pixels(42))
	assert.Len(t, cov, 1)

	p, _ := h.Pixel(id)
	ff, err := h.FormFactor(receiver)
	require.NoError(t, err)
	assert.InDelta(t, p.Weight, ff, 1e-15)

	cov.Reset()
	assert.Empty(t, cov)
}

func TestProjectAcrossSeam(t *testing.T) {
	h, err := NewHemicube(V(0, 0, 0), V(0, 0, 1), coarseConfig())
	require.NoError(t, err)

	// A tilted wall straddling the front face and two side faces
	receiver := mustPatch(t, 5, []pt.Vector{V(0.2, 0.2, 0.3), V(2, 0.2, 0.3), V(2, 2, 0.3), V(0.2, 2, 0.3)}, V(0, 0, -1))
	cov := make(Coverage)
	require.NoError(t, h.Project(receiver, cov))

	faces := map[HemiFace]bool{}
	for _, id := range cov.Pixels(5) {
		p, _ := h.Pixel(id)
		faces[p.Face] = true
	}
	assert.True(t, faces[Front])
	assert.Len(t, faces, 3, "front plus the two side faces toward +x and +y")
}

func TestSilhouetteRejectsVertexOffFace(t *testing.T) {
	h, err := NewHemicube(V(0, 0, 0), V(0, 0, 1), coarseConfig())
	require.NoError(t, err)
	front := &h.faces[Front]

	// On the front face's pyramid
	poly, err := h.silhouette(front, []pt.Vector{V(0.1, -0.2, 0.5), V(0.5, 0.5, 0.5)})
	require.NoError(t, err)
	assert.Len(t, poly, 2)

	// Outside the pyramid: only a clipping bug could hand this to silhouette
	_, err = h.silhouette(front, []pt.Vector{V(0.1, 0, 0.5), V(1, 0, 0.5)})
	require.ErrorIs(t, err, ErrOffFace)
	assert.Contains(t, err.Error(), Front.String())
}

func TestReciprocity(t *testing.T) {
	big := floorPatch(t, 1, 0, 1, false)
	small := floorPatch(t, 2, 5, 0.5, true)

	f12, err := FormFactor(big, small, DefaultConfig())
	require.NoError(t, err)
	f21, err := FormFactor(small, big, DefaultConfig())
	require.NoError(t, err)

	assert.InEpsilon(t, big.Area()*f12, small.Area()*f21, 0.03)
}

func TestPartiallyBehindReceiver(t *testing.T) {
	shooter := floorPatch(t, 1, 0, 0.1, false)
	// Wall crossing the shooter's plane, center above it
	full := mustPatch(t, 2, []pt.Vector{V(1, -1, 0), V(1, 1, 0), V(1, 1, 1), V(1, -1, 1)}, V(-1, 0, 0))
	crossing := mustPatch(t, 3, []pt.Vector{V(1, -1, -0.5), V(1, 1, -0.5), V(1, 1, 1), V(1, -1, 1)}, V(-1, 0, 0))

	e, err := NewEngine(coarseConfig())
	require.NoError(t, err)
	a, err := e.FormFactor(shooter, full)
	require.NoError(t, err)
	b, err := e.FormFactor(shooter, crossing)
	require.NoError(t, err)
	assert.InDelta(t, a, b, 1e-12, "the part below the shooter's plane contributes nothing")
}

func TestEngineCachesHemicube(t *testing.T) {
	e, err := NewEngine(coarseConfig())
	require.NoError(t, err)
	a := floorPatch(t, 1, 0, 1, false)
	b := floorPatch(t, 2, 3, 1, true)

	h1, err := e.Hemicube(a)
	require.NoError(t, err)
	h2, err := e.Hemicube(a)
	require.NoError(t, err)
	assert.Same(t, h1, h2)

	h3, err := e.Hemicube(b)
	require.NoError(t, err)
	assert.NotSame(t, h1, h3)
}
