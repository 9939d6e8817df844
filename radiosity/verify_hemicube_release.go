//go:build !verify_hemicube
// +build !verify_hemicube

package radiosity

// verifyHemicube compiles to nothing unless built with -tags verify_hemicube
func verifyHemicube(h *Hemicube) {}
