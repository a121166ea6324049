package main

import (
	"context"
	"errors"
	"log"

	"github.com/jackc/pgx/v5"

	"github.com/ABeGood/klim-fit/internal/config"
	"github.com/ABeGood/klim-fit/internal/database"
	"github.com/ABeGood/klim-fit/internal/models"
	"github.com/ABeGood/klim-fit/internal/repository"
	"github.com/ABeGood/klim-fit/pkg/utils"
)

func strPtr(s string) *string {
	return &s
}

// The starter catalog every fresh install gets.
var catalog = []models.Exercise{
	{Name: "Push-ups", Description: strPtr("Upper body strength exercise targeting chest, shoulders, and triceps"), HasReps: true},
	{Name: "Squats", Description: strPtr("Lower body exercise targeting quadriceps, hamstrings, and glutes"), HasReps: true, HasWeightKG: true},
	{Name: "Plank", Description: strPtr("Core stability exercise that strengthens abs and back"), HasDuration: true},
	{Name: "Running", Description: strPtr("Cardiovascular exercise for endurance and fitness"), HasDuration: true, HasDistance: true},
	{Name: "Deadlifts", Description: strPtr("Full-body compound exercise focusing on posterior chain"), HasReps: true, HasWeightKG: true},
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if cfg.DBUrl == "" {
		log.Fatal("DATABASE_URL is required")
	}

	ctx := context.Background()
	db, err := database.Connect(ctx, cfg.DBUrl)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	exerciseRepo := repository.NewExerciseRepository(db)
	adminRepo := repository.NewAdminRepository(db)

	seeded := 0
	for i := range catalog {
		exercise := catalog[i]
		if err := exercise.Validate(); err != nil {
			log.Fatalf("Invalid catalog entry %q: %v", exercise.Name, err)
		}
		existing, err := exerciseRepo.Search(ctx, exercise.Name)
		if err != nil {
			log.Fatalf("Failed to check exercise %q: %v", exercise.Name, err)
		}
		if containsExercise(existing, exercise.Name) {
			continue
		}
		if err := exerciseRepo.Create(ctx, &exercise); err != nil {
			log.Fatalf("Failed to seed exercise %q: %v", exercise.Name, err)
		}
		seeded++
	}
	log.Printf("Seeded %d exercises", seeded)

	if cfg.DefaultAdminEmail == "" || cfg.DefaultAdminPassword == "" {
		log.Println("DEFAULT_ADMIN_EMAIL/DEFAULT_ADMIN_PASSWORD not set, skipping admin seed")
		return
	}

	_, err = adminRepo.GetByEmail(ctx, cfg.DefaultAdminEmail)
	if err == nil {
		log.Println("Default admin already exists")
		return
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		log.Fatalf("Failed to check default admin: %v", err)
	}

	hash, err := utils.HashPassword(cfg.DefaultAdminPassword)
	if err != nil {
		log.Fatalf("Failed to hash admin password: %v", err)
	}
	admin := &models.Admin{
		Name:         cfg.DefaultAdminName,
		Surname:      cfg.DefaultAdminSurname,
		Email:        cfg.DefaultAdminEmail,
		PasswordHash: hash,
	}
	if err := admin.Validate(); err != nil {
		log.Fatalf("Invalid default admin: %v", err)
	}
	if err := adminRepo.Create(ctx, admin); err != nil {
		log.Fatalf("Failed to seed default admin: %v", err)
	}
	log.Printf("Seeded default admin %s", admin.Email)
}

func containsExercise(exercises []models.Exercise, name string) bool {
	for i := range exercises {
		if exercises[i].Name == name {
			return true
		}
	}
	return false
}
