package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// mergeJSONFile reads a JSON object from path into dst. Keys already in dst win.
func mergeJSONFile[V any](path string, dst *map[string]V) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	var fromFile map[string]V
	if err := json.Unmarshal(data, &fromFile); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}

	if *dst == nil {
		*dst = make(map[string]V, len(fromFile))
	}
	for k, v := range fromFile {
		if _, exists := (*dst)[k]; !exists {
			(*dst)[k] = v
		}
	}
	return nil
}

// MergeMaterials merges materials from a file with inline materials
func (m *Materials) MergeMaterials() error {
	if m.FromFile == "" {
		return nil
	}
	return mergeJSONFile(m.FromFile, &m.Inline)
}

// MergeSurfaceAssignments merges surface assignments from a file with inline assignments
func (sa *SurfaceAssignments) MergeSurfaceAssignments() error {
	if sa.FromFile == "" {
		return nil
	}
	return mergeJSONFile(sa.FromFile, &sa.Inline)
}

func (m *Materials) HasMaterial(name string) bool {
	_, exists := m.Inline[name]
	return exists
}

// LoadAndMerge loads all external files and merges their contents
func (c *ExperimentConfig) LoadAndMerge() error {
	// Surface assignments refer to materials, so materials go first
	if err := c.Materials.MergeMaterials(); err != nil {
		return fmt.Errorf("merging materials: %w", err)
	}
	if err := c.SurfaceAssignments.MergeSurfaceAssignments(); err != nil {
		return fmt.Errorf("merging surface assignments: %w", err)
	}
	return nil
}
