package models

import (
	"errors"
	"time"
)

// Comment is an entry in the append-only comment list carried by
// workouts and exercise sets, stored as a JSONB array element.
type Comment struct {
	Author    string    `json:"author"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

func (c *Comment) Validate() error {
	if c.Author == "" {
		return errors.New("Comment author cannot be empty")
	}
	if c.Message == "" {
		return errors.New("Comment message cannot be empty")
	}
	if c.Timestamp.IsZero() {
		return errors.New("Comment timestamp is required")
	}
	return nil
}
