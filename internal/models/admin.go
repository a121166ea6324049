package models

import (
	"errors"
	"strings"
	"time"
)

type Admin struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Surname      string    `json:"surname"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (a *Admin) Validate() error {
	if strings.TrimSpace(a.Name) == "" {
		return errors.New("Name cannot be empty")
	}
	if strings.TrimSpace(a.Surname) == "" {
		return errors.New("Surname cannot be empty")
	}
	if a.Email != "" && !strings.Contains(a.Email, "@") {
		return errors.New("Invalid email format")
	}
	return nil
}

func (a *Admin) FullName() string {
	return strings.TrimSpace(a.Name + " " + a.Surname)
}
