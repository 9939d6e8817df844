//go:build verify_hemicube
// +build verify_hemicube

package radiosity

import (
	"fmt"
	"math"
)

// Allowed deviation of the weight sum from 1
const closureEpsilon = 1e-4

func init() {
	fmt.Println("Hemicube verification enabled.")
}

func verifyHemicube(h *Hemicube) {
	if total := h.TotalWeight(); math.Abs(total-1) > closureEpsilon {
		panic(fmt.Sprintf("hemicube weights sum to %g, want 1", total))
	}
	for _, p := range h.pixels {
		if p.Location == Inside && len(p.adjacent) != 8 {
			panic(fmt.Sprintf("interior %v has %d neighbors", p, len(p.adjacent)))
		}
	}
}
