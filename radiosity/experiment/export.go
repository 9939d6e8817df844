package experiment

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fogleman/pt/pt"

	"github.com/jdginn/go-radiosity/radiosity"
)

type PointJSON struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

type PatchJSON struct {
	ID          int       `json:"id"`
	Center      PointJSON `json:"center"`
	Normal      PointJSON `json:"normal"`
	Area        float64   `json:"area"`
	Reflectance float64   `json:"reflectance"`
}

type FormFactorJSON struct {
	Shooter  int     `json:"shooter"`
	Receiver int     `json:"receiver"`
	Value    float64 `json:"value"`
}

// FormFactorsJSON is the document written by SaveFormFactors
type FormFactorsJSON struct {
	Patches     []PatchJSON      `json:"patches"`
	FormFactors []FormFactorJSON `json:"formFactors"`
}

func VectorToJSON(v pt.Vector) PointJSON {
	return PointJSON{X: v.X, Y: v.Y, Z: v.Z}
}

func PatchToJSON(p *radiosity.Patch) PatchJSON {
	return PatchJSON{
		ID:          p.ID,
		Center:      VectorToJSON(p.Center()),
		Normal:      VectorToJSON(p.Normal()),
		Area:        p.Area(),
		Reflectance: p.Reflectance(),
	}
}

// SaveFormFactors writes the patches and every form factor of at least minFF to filename.
// Form factors are keyed by patch ID, matrix rows and columns follow the order of patches.
func SaveFormFactors(filename string, patches []*radiosity.Patch, m radiosity.Matrix, minFF float64) error {
	if len(m) != len(patches) {
		return fmt.Errorf("matrix has %d rows for %d patches", len(m), len(patches))
	}

	doc := FormFactorsJSON{
		Patches:     make([]PatchJSON, 0, len(patches)),
		FormFactors: []FormFactorJSON{},
	}
	for i, p := range patches {
		doc.Patches = append(doc.Patches, PatchToJSON(p))
		if len(m[i]) != len(patches) {
			return fmt.Errorf("matrix row %d has %d entries for %d patches", i, len(m[i]), len(patches))
		}
		for j, v := range m[i] {
			if v <= 0 || v < minFF {
				continue
			}
			doc.FormFactors = append(doc.FormFactors, FormFactorJSON{
				Shooter:  p.ID,
				Receiver: patches[j].ID,
				Value:    v,
			})
		}
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("error marshaling form factors: %w", err)
	}
	return os.WriteFile(filename, data, 0644)
}
