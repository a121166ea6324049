package models

import (
	"errors"
	"strings"
	"time"
)

type Exercise struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	HasReps     bool      `json:"has_reps"`
	HasWeightKG bool      `json:"has_weight_kg"`
	HasDuration bool      `json:"has_duration_s"`
	HasDistance bool      `json:"has_distance_m"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (e *Exercise) Validate() error {
	if strings.TrimSpace(e.Name) == "" {
		return errors.New("Exercise name cannot be empty")
	}
	if !e.HasReps && !e.HasWeightKG && !e.HasDuration && !e.HasDistance {
		return errors.New("Exercise must have at least one parameter type")
	}
	return nil
}

// ParametersMap is the form stored in the exercises.parameters JSONB
// column.
func (e *Exercise) ParametersMap() map[string]bool {
	return map[string]bool{
		"has_reps":       e.HasReps,
		"has_weight_kg":  e.HasWeightKG,
		"has_duration_s": e.HasDuration,
		"has_distance_m": e.HasDistance,
	}
}

// SetParameters applies a stored parameters map back onto the flags.
// Missing keys default to false.
func (e *Exercise) SetParameters(params map[string]bool) {
	e.HasReps = params["has_reps"]
	e.HasWeightKG = params["has_weight_kg"]
	e.HasDuration = params["has_duration_s"]
	e.HasDistance = params["has_distance_m"]
}

// ParameterTypes lists the active parameter types. It describes which
// measurements a set of this exercise should collect.
func (e *Exercise) ParameterTypes() []string {
	types := []string{}
	if e.HasReps {
		types = append(types, "reps")
	}
	if e.HasWeightKG {
		types = append(types, "weight_kg")
	}
	if e.HasDuration {
		types = append(types, "duration_s")
	}
	if e.HasDistance {
		types = append(types, "distance_m")
	}
	return types
}

func (e *Exercise) ParameterSummary() string {
	types := e.ParameterTypes()
	if len(types) == 0 {
		return "No parameters"
	}
	return strings.Join(types, ", ")
}
