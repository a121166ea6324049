package models

import (
	"errors"
	"strings"
	"time"
)

type Workout struct {
	ID              int64      `json:"id"`
	UserID          int64      `json:"user_id"`
	Name            string     `json:"name"`
	Description     *string    `json:"description"`
	WorkoutDate     *time.Time `json:"workout_date"`
	DurationMinutes *int       `json:"duration_minutes"`
	Completed       bool       `json:"completed"`
	Comments        []Comment  `json:"comments"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

func (w *Workout) Validate() error {
	if strings.TrimSpace(w.Name) == "" {
		return errors.New("Workout name cannot be empty")
	}
	if w.UserID <= 0 {
		return errors.New("Workout must belong to a user")
	}
	if w.DurationMinutes != nil && *w.DurationMinutes <= 0 {
		return errors.New("Duration must be greater than 0")
	}
	for i := range w.Comments {
		if err := w.Comments[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}
