package models

import (
	"errors"
	"strings"
	"time"
)

type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Surname      string    `json:"surname"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Age          *int      `json:"age"`
	WeightKG     *float64  `json:"weight_kg"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Validate checks the user invariants. Construction itself never
// fails; callers validate before handing the record to a repository.
func (u *User) Validate() error {
	if strings.TrimSpace(u.Name) == "" {
		return errors.New("Name cannot be empty")
	}
	if strings.TrimSpace(u.Surname) == "" {
		return errors.New("Surname cannot be empty")
	}
	if u.Age != nil && (*u.Age <= 0 || *u.Age >= 150) {
		return errors.New("Age must be between 1 and 149")
	}
	if u.WeightKG != nil && *u.WeightKG <= 0 {
		return errors.New("Weight must be greater than 0")
	}
	if u.Email != "" && !strings.Contains(u.Email, "@") {
		return errors.New("Invalid email format")
	}
	return nil
}

func (u *User) FullName() string {
	return strings.TrimSpace(u.Name + " " + u.Surname)
}
