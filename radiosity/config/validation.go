package config

import (
	"fmt"
	"slices"
	"strings"
)

func validateNonNegative(field string, value float64) []ValidationError {
	if value < 0 {
		return []ValidationError{{
			Field:   field,
			Message: "must be non-negative",
		}}
	}
	return nil
}

func validateInRange(field string, value, min, max float64) []ValidationError {
	if value < min || value > max {
		return []ValidationError{{
			Field:   field,
			Message: fmt.Sprintf("must be between %v and %v", min, max),
		}}
	}
	return nil
}

// ValidationError represents a structured validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// FormatValidationErrors groups errors by their top level section
func FormatValidationErrors(errs []ValidationError) string {
	if len(errs) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("Validation Errors:\n")

	categories := map[string][]ValidationError{}
	for _, err := range errs {
		category := strings.Split(err.Field, ".")[0]
		categories[category] = append(categories[category], err)
	}

	names := make([]string, 0, len(categories))
	for category := range categories {
		names = append(names, category)
	}
	slices.Sort(names)

	for _, category := range names {
		fmt.Fprintf(&b, "\n%s:\n", strings.ToUpper(category))
		for _, err := range categories[category] {
			field := strings.TrimPrefix(err.Field, category+".")
			if field == category {
				field = "general"
			}
			fmt.Fprintf(&b, "  - %s: %s\n", field, err.Message)
		}
	}

	return b.String()
}

// Validate performs validation on the entire configuration
func (c *ExperimentConfig) Validate() []ValidationError {
	var errors []ValidationError
	errors = append(errors, c.Materials.Validate()...)
	errors = append(errors, c.SurfaceAssignments.Validate(&c.Materials)...)
	errors = append(errors, c.Hemicube.Validate()...)
	errors = append(errors, c.Simulation.Validate()...)
	errors = append(errors, c.Input.Validate()...)
	return errors
}

func (m *Materials) Validate() []ValidationError {
	var errors []ValidationError

	if m.Inline == nil && m.FromFile == "" {
		errors = append(errors, ValidationError{
			Field:   "materials",
			Message: "either inline or from_file must be specified",
		})
		return errors
	}

	for name, material := range m.Inline {
		errors = append(errors, validateInRange(fmt.Sprintf("materials.inline.%s.reflectance", name), material.Reflectance, 0, 1)...)
	}

	return errors
}

func (sa *SurfaceAssignments) Validate(materials *Materials) []ValidationError {
	var errors []ValidationError

	if sa.Inline == nil && sa.FromFile == "" {
		errors = append(errors, ValidationError{
			Field:   "surface_assignments",
			Message: "either inline or from_file must be specified",
		})
		return errors
	}

	if sa.Inline != nil {
		if _, hasDefault := sa.Inline["default"]; !hasDefault {
			errors = append(errors, ValidationError{
				Field:   "surface_assignments.inline",
				Message: "must include a default material",
			})
		}

		for surface, material := range sa.Inline {
			if !materials.HasMaterial(material) {
				errors = append(errors, ValidationError{
					Field:   fmt.Sprintf("surface_assignments.inline.%s", surface),
					Message: fmt.Sprintf("references undefined material '%s'", material),
				})
			}
		}
	}

	return errors
}

func (h *Hemicube) Validate() []ValidationError {
	var errors []ValidationError
	errors = append(errors, validateNonNegative("hemicube.side_length", h.SideLength)...)
	errors = append(errors, validateNonNegative("hemicube.pixel_pitch", h.PixelPitch)...)
	errors = append(errors, validateNonNegative("hemicube.tolerance", h.Tolerance)...)
	if len(errors) > 0 {
		return errors
	}

	// The resolution rules live with the engine
	if err := h.Create().Validate(); err != nil {
		errors = append(errors, ValidationError{
			Field:   "hemicube",
			Message: err.Error(),
		})
	}
	return errors
}

func (s *Simulation) Validate() []ValidationError {
	var errors []ValidationError
	errors = append(errors, validateNonNegative("simulation.workers", float64(s.Workers))...)
	errors = append(errors, validateInRange("simulation.min_form_factor", s.MinFormFactor, 0, 1)...)
	return errors
}

func (i *Input) Validate() []ValidationError {
	var errors []ValidationError

	if i.Mesh.Path == "" {
		errors = append(errors, ValidationError{
			Field:   "input.mesh.path",
			Message: "mesh path is required",
		})
	}

	return errors
}
