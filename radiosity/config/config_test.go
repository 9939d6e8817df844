package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jdginn/go-radiosity/radiosity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
input:
  mesh:
    path: room.3mf
materials:
  inline:
    plaster:
      reflectance: 0.6
  from_file: materials.json
surface_assignments:
  inline:
    default: plaster
    floor: carpet
hemicube:
  pixel_pitch: 0.01
simulation:
  workers: 4
  min_form_factor: 0.0001
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "experiment.yaml", sampleConfig)
	writeFile(t, dir, "materials.json", `{"carpet": {"reflectance": 0.1}, "plaster": {"reflectance": 0.9}}`)

	cfg, err := LoadFromFile(path, LoadOptions{ValidateImmediately: true, ResolvePaths: true, MergeFiles: true})
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "room.3mf"), cfg.Input.Mesh.Path)
	assert.Equal(t, filepath.Join(dir, "materials.json"), cfg.Materials.FromFile)

	// Inline materials take precedence over the file
	assert.Equal(t, 0.6, cfg.Materials.Inline["plaster"].Reflectance)
	assert.Equal(t, 0.1, cfg.Materials.Inline["carpet"].Reflectance)

	assert.Equal(t, map[string]float64{"default": 0.6, "floor": 0.1}, cfg.ReflectanceMap())
	assert.Equal(t, 4, cfg.Simulation.Workers)

	hc := cfg.Hemicube.Create()
	def := radiosity.DefaultConfig()
	assert.Equal(t, 0.01, hc.PixelPitch)
	assert.Equal(t, def.SideLength, hc.SideLength)
	assert.Equal(t, def.Tolerance, hc.Tolerance)
}

func TestLoadFromFileWithoutMergeFailsValidation(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "experiment.yaml", sampleConfig)

	_, err := LoadFromFile(path, LoadOptions{ValidateImmediately: true})
	var failure ValidationFailure
	require.ErrorAs(t, err, &failure)
	require.Len(t, failure, 1)
	assert.Equal(t, "surface_assignments.inline.floor", failure[0].Field)
}

func TestLoadFromFileRejectsUnknownKeys(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "experiment.yaml", "speaker:\n  model: x\n")
	_, err := LoadFromFile(path, LoadOptions{})
	assert.Error(t, err)
}

func TestLoadFromFileMissingMaterialsFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "experiment.yaml", sampleConfig)
	_, err := LoadFromFile(path, LoadOptions{ResolvePaths: true, MergeFiles: true})
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestSaveToFile(t *testing.T) {
	dir := t.TempDir()
	cfg := &ExperimentConfig{}
	cfg.Input.Mesh.Path = "room.3mf"
	cfg.Materials.Inline = map[string]Material{"paint": {Reflectance: 0.5}}
	cfg.SurfaceAssignments.Inline = map[string]string{"default": "paint"}

	path := filepath.Join(dir, "out.yaml")
	require.NoError(t, SaveToFile(cfg, path))
	assert.NotEmpty(t, cfg.Metadata.Timestamp)
	assert.NotEmpty(t, cfg.Metadata.GitCommit)

	loaded, err := LoadFromFile(path, LoadOptions{ValidateImmediately: true})
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoadFromFileRequireFiles(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "experiment.yaml", sampleConfig)
	writeFile(t, dir, "materials.json", `{"carpet": {"reflectance": 0.1}}`)
	opts := LoadOptions{ValidateImmediately: true, ResolvePaths: true, MergeFiles: true, RequireFiles: true}

	_, err := LoadFromFile(path, opts)
	var failure ValidationFailure
	require.ErrorAs(t, err, &failure)
	require.Len(t, failure, 1)
	assert.Equal(t, "input.mesh.path", failure[0].Field)

	// A directory with the mesh's name is no better
	require.NoError(t, os.Mkdir(filepath.Join(dir, "room.3mf"), 0755))
	_, err = LoadFromFile(path, opts)
	require.ErrorAs(t, err, &failure)
	assert.Contains(t, failure[0].Message, "not a regular file")

	require.NoError(t, os.Remove(filepath.Join(dir, "room.3mf")))
	writeFile(t, dir, "room.3mf", "")
	_, err = LoadFromFile(path, opts)
	require.NoError(t, err)
}

func TestResolvePathsKeepsAbsolute(t *testing.T) {
	abs := filepath.Join(t.TempDir(), "mesh.3mf")
	cfg := &ExperimentConfig{}
	cfg.Input.Mesh.Path = abs
	cfg.Materials.FromFile = "materials.json"

	cfg.ResolvePaths("/rooms")
	assert.Equal(t, abs, cfg.Input.Mesh.Path)
	assert.Equal(t, filepath.Join("/rooms", "materials.json"), cfg.Materials.FromFile)
	assert.Empty(t, cfg.SurfaceAssignments.FromFile)
}

func TestMetadataStamp(t *testing.T) {
	orig := gitHead
	t.Cleanup(func() { gitHead = orig })
	now := time.Date(2024, 3, 9, 17, 4, 5, 0, time.FixedZone("EST", -5*3600))

	gitHead = func() (string, error) { return "0123abcd", nil }
	var m Metadata
	m.Stamp(now)
	assert.Equal(t, Metadata{Timestamp: "2024-03-09 22:04:05", GitCommit: "0123abcd"}, m)

	gitHead = func() (string, error) { return "", errors.New("not a git repository") }
	m.Stamp(now)
	assert.Equal(t, "unknown", m.GitCommit)
}

func TestValidate(t *testing.T) {
	valid := func() *ExperimentConfig {
		cfg := &ExperimentConfig{}
		cfg.Input.Mesh.Path = "room.3mf"
		cfg.Materials.Inline = map[string]Material{"paint": {Reflectance: 0.5}}
		cfg.SurfaceAssignments.Inline = map[string]string{"default": "paint"}
		return cfg
	}

	tests := []struct {
		name   string
		modify func(*ExperimentConfig)
		field  string
	}{
		{"missing mesh", func(c *ExperimentConfig) { c.Input.Mesh.Path = "" }, "input.mesh.path"},
		{"no materials", func(c *ExperimentConfig) { c.Materials.Inline = nil }, "materials"},
		{"reflectance above one", func(c *ExperimentConfig) { c.Materials.Inline["paint"] = Material{Reflectance: 1.5} }, "materials.inline.paint.reflectance"},
		{"no default surface", func(c *ExperimentConfig) { c.SurfaceAssignments.Inline = map[string]string{"floor": "paint"} }, "surface_assignments.inline"},
		{"odd pixel count", func(c *ExperimentConfig) { c.Hemicube.PixelPitch = 0.1 }, "hemicube"},
		{"negative pitch", func(c *ExperimentConfig) { c.Hemicube.PixelPitch = -1 }, "hemicube.pixel_pitch"},
		{"negative workers", func(c *ExperimentConfig) { c.Simulation.Workers = -2 }, "simulation.workers"},
		{"threshold above one", func(c *ExperimentConfig) { c.Simulation.MinFormFactor = 2 }, "simulation.min_form_factor"},
	}

	assert.Empty(t, valid().Validate())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.modify(cfg)
			errs := cfg.Validate()
			require.Len(t, errs, 1, FormatValidationErrors(errs))
			assert.Equal(t, tt.field, errs[0].Field)
		})
	}
}

func TestFormatValidationErrors(t *testing.T) {
	assert.Empty(t, FormatValidationErrors(nil))

	out := FormatValidationErrors([]ValidationError{
		{Field: "simulation.workers", Message: "must be non-negative"},
		{Field: "hemicube", Message: "bad resolution"},
	})
	assert.True(t, strings.HasPrefix(out, "Validation Errors:\n"))
	assert.Contains(t, out, "  - general: bad resolution\n")
	assert.Contains(t, out, "  - workers: must be non-negative\n")
	assert.Less(t, strings.Index(out, "HEMICUBE"), strings.Index(out, "SIMULATION"))
}
