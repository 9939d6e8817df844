package config

import (
	"os"
	"path/filepath"
)

type fileRef struct {
	field string
	path  *string
}

// fileRefs lists the file references the config holds, skipping unset ones.
func (c *ExperimentConfig) fileRefs() []fileRef {
	all := []fileRef{
		{"input.mesh.path", &c.Input.Mesh.Path},
		{"materials.from_file", &c.Materials.FromFile},
		{"surface_assignments.from_file", &c.SurfaceAssignments.FromFile},
	}
	refs := all[:0]
	for _, ref := range all {
		if *ref.path != "" {
			refs = append(refs, ref)
		}
	}
	return refs
}

// ResolvePaths anchors every relative file reference at dir, normally the directory holding the
// config file.
func (c *ExperimentConfig) ResolvePaths(dir string) {
	for _, ref := range c.fileRefs() {
		if !filepath.IsAbs(*ref.path) {
			*ref.path = filepath.Join(dir, *ref.path)
		}
	}
}

// MissingFiles reports each file reference that does not name a regular file.
func (c *ExperimentConfig) MissingFiles() []ValidationError {
	var errs []ValidationError
	for _, ref := range c.fileRefs() {
		info, err := os.Stat(*ref.path)
		switch {
		case err != nil:
			errs = append(errs, ValidationError{Field: ref.field, Message: err.Error()})
		case !info.Mode().IsRegular():
			errs = append(errs, ValidationError{Field: ref.field, Message: *ref.path + " is not a regular file"})
		}
	}
	return errs
}
