package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// LoadOptions configures the behavior of config loading
type LoadOptions struct {
	ValidateImmediately bool
	ResolvePaths        bool
	MergeFiles          bool
	// Also fail validation when a referenced file is missing
	RequireFiles bool
}

// ValidationFailure is returned by LoadFromFile when ValidateImmediately is set and the config is
// not usable.
type ValidationFailure []ValidationError

func (v ValidationFailure) Error() string {
	return FormatValidationErrors(v)
}

// LoadFromFile loads an ExperimentConfig from a YAML file. Unknown keys are rejected.
func LoadFromFile(path string, opts LoadOptions) (*ExperimentConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	config, err := parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if opts.ResolvePaths {
		config.ResolvePaths(filepath.Dir(path))
	}

	if opts.MergeFiles {
		if err := config.LoadAndMerge(); err != nil {
			return nil, fmt.Errorf("merging external files: %w", err)
		}
	}

	if opts.ValidateImmediately {
		errs := config.Validate()
		if opts.RequireFiles {
			errs = append(errs, config.MissingFiles()...)
		}
		if len(errs) > 0 {
			return nil, ValidationFailure(errs)
		}
	}

	return config, nil
}

func parse(data []byte) (*ExperimentConfig, error) {
	config := &ExperimentConfig{}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(config); err != nil {
		return nil, err
	}
	return config, nil
}

// SaveToFile stamps the metadata and writes the config as YAML
func SaveToFile(config *ExperimentConfig, path string) error {
	config.Metadata.Stamp(time.Now())

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
