package models

import (
	"errors"
	"time"
)

type ExerciseSet struct {
	ID          int64     `json:"id"`
	WorkoutID   int64     `json:"workout_id"`
	ExerciseID  int64     `json:"exercise_id"`
	SetOrder    int       `json:"set_order"`
	Reps        *int      `json:"reps"`
	WeightKG    *float64  `json:"weight_kg"`
	DurationS   *int      `json:"duration_s"`
	DistanceM   *float64  `json:"distance_m"`
	RestSeconds *int      `json:"rest_seconds"`
	Completed   bool      `json:"completed"`
	Comments    []Comment `json:"comments"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ExerciseSetDetail is a set joined with its catalog exercise, the
// shape the workout detail endpoints return.
type ExerciseSetDetail struct {
	ExerciseSet
	ExerciseName       string   `json:"exercise_name"`
	ExerciseParameters []string `json:"exercise_parameters"`
}

func (s *ExerciseSet) Validate() error {
	if s.WorkoutID <= 0 {
		return errors.New("Exercise set must belong to a workout")
	}
	if s.ExerciseID <= 0 {
		return errors.New("Exercise set must reference an exercise")
	}
	if s.SetOrder <= 0 {
		return errors.New("Set order must be greater than 0")
	}
	if s.Reps != nil && *s.Reps <= 0 {
		return errors.New("Reps must be greater than 0")
	}
	if s.WeightKG != nil && *s.WeightKG <= 0 {
		return errors.New("Weight must be greater than 0")
	}
	if s.DurationS != nil && *s.DurationS <= 0 {
		return errors.New("Duration must be greater than 0")
	}
	if s.DistanceM != nil && *s.DistanceM <= 0 {
		return errors.New("Distance must be greater than 0")
	}
	if s.RestSeconds != nil && *s.RestSeconds <= 0 {
		return errors.New("Rest must be greater than 0")
	}
	for i := range s.Comments {
		if err := s.Comments[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}
