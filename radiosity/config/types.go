package config

import "github.com/jdginn/go-radiosity/radiosity"

// ExperimentConfig represents the complete configuration for a form factor experiment
type ExperimentConfig struct {
	Metadata           Metadata           `yaml:"metadata"`
	Input              Input              `yaml:"input"`
	Materials          Materials          `yaml:"materials"`
	SurfaceAssignments SurfaceAssignments `yaml:"surface_assignments"`
	Hemicube           Hemicube           `yaml:"hemicube"`
	Simulation         Simulation         `yaml:"simulation"`
}

type Metadata struct {
	Timestamp string `yaml:"timestamp"` // YYYY-MM-DD HH:MM:SS in UTC
	GitCommit string `yaml:"git_commit"`
}

type Input struct {
	Mesh struct {
		Path string `yaml:"path"`
	} `yaml:"mesh"`
}

type Materials struct {
	Inline   map[string]Material `yaml:"inline,omitempty"`
	FromFile string              `yaml:"from_file,omitempty"`
}

type Material struct {
	Reflectance float64 `yaml:"reflectance" json:"reflectance"`
}

type SurfaceAssignments struct {
	Inline   map[string]string `yaml:"inline,omitempty"` // surface name -> material name
	FromFile string            `yaml:"from_file,omitempty"`
}

// Hemicube holds the resolution parameters. Zero fields take the engine defaults.
type Hemicube struct {
	SideLength float64 `yaml:"side_length,omitempty"`
	PixelPitch float64 `yaml:"pixel_pitch,omitempty"`
	Tolerance  float64 `yaml:"tolerance,omitempty"`
}

type Simulation struct {
	Workers       int     `yaml:"workers"`        // 0 uses every CPU
	MinFormFactor float64 `yaml:"min_form_factor"` // smaller values are left out of the export
}

// Create returns the engine configuration described by h.
func (h Hemicube) Create() radiosity.Config {
	cfg := radiosity.DefaultConfig()
	if h.SideLength != 0 {
		cfg.SideLength = h.SideLength
	}
	if h.PixelPitch != 0 {
		cfg.PixelPitch = h.PixelPitch
	}
	if h.Tolerance != 0 {
		cfg.Tolerance = h.Tolerance
	}
	return cfg
}

// ReflectanceMap resolves every surface assignment to the reflectance of its material.
// Assignments naming an unknown material are skipped; Validate reports them.
func (c *ExperimentConfig) ReflectanceMap() map[string]float64 {
	out := make(map[string]float64, len(c.SurfaceAssignments.Inline))
	for surface, material := range c.SurfaceAssignments.Inline {
		if m, ok := c.Materials.Inline[material]; ok {
			out[surface] = m.Reflectance
		}
	}
	return out
}
