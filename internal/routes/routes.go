package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ABeGood/klim-fit/internal/config"
	"github.com/ABeGood/klim-fit/internal/handlers"
	"github.com/ABeGood/klim-fit/internal/middleware"
	"github.com/ABeGood/klim-fit/internal/repository"
	"github.com/ABeGood/klim-fit/internal/services"
)

func RegisterRoutes(app *fiber.App, cfg *config.Config, db *pgxpool.Pool) {
	userRepo := repository.NewUserRepository(db)
	adminRepo := repository.NewAdminRepository(db)
	exerciseRepo := repository.NewExerciseRepository(db)
	workoutRepo := repository.NewWorkoutRepository(db)
	setRepo := repository.NewExerciseSetRepository(db)

	authService := services.NewAuthService(userRepo, adminRepo)
	workoutService := services.NewWorkoutService(workoutRepo, setRepo)

	authHandler := handlers.NewAuthHandler(authService, cfg.JWTSecret)
	exerciseHandler := handlers.NewExerciseHandler(exerciseRepo)
	workoutHandler := handlers.NewWorkoutHandler(workoutService)
	adminHandler := handlers.NewAdminHandler(userRepo, exerciseRepo, adminRepo, workoutRepo)

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Get("/me", middleware.AuthRequired(cfg.JWTSecret), authHandler.Me)
	auth.Put("/password", middleware.AuthRequired(cfg.JWTSecret), authHandler.ChangePassword)

	v1 := api.Group("/v1", middleware.AuthRequired(cfg.JWTSecret))

	exercises := v1.Group("/exercises")
	exercises.Get("", exerciseHandler.List)
	exercises.Get("/:id", exerciseHandler.Get)

	workouts := v1.Group("/workouts")
	workouts.Get("", workoutHandler.List)
	workouts.Post("", workoutHandler.Create)
	workouts.Get("/stats", workoutHandler.Stats)
	workouts.Get("/:id", workoutHandler.Get)
	workouts.Put("/:id", workoutHandler.Update)
	workouts.Put("/:id/complete", workoutHandler.Complete)
	workouts.Delete("/:id", workoutHandler.Delete)
	workouts.Get("/:id/progress", workoutHandler.Progress)
	workouts.Post("/:id/comments", workoutHandler.AddComment)
	workouts.Post("/:id/sets", workoutHandler.AddSet)

	sets := v1.Group("/sets")
	sets.Put("/:id", workoutHandler.UpdateSet)
	sets.Put("/:id/complete", workoutHandler.CompleteSet)
	sets.Delete("/:id", workoutHandler.DeleteSet)
	sets.Post("/:id/comments", workoutHandler.AddSetComment)

	admin := v1.Group("/admin", middleware.AdminRequired())
	admin.Get("/users", adminHandler.ListUsers)
	admin.Get("/users/:id", adminHandler.GetUser)
	admin.Put("/users/:id", adminHandler.UpdateUser)
	admin.Delete("/users/:id", adminHandler.DeleteUser)
	admin.Get("/users/:id/stats", adminHandler.GetUserStats)
	admin.Get("/admins", adminHandler.ListAdmins)
	admin.Put("/admins/:id", adminHandler.UpdateAdmin)
	admin.Delete("/admins/:id", adminHandler.DeleteAdmin)
	admin.Get("/counts", adminHandler.Counts)
	admin.Post("/exercises", exerciseHandler.Create)
	admin.Put("/exercises/:id", exerciseHandler.Update)
	admin.Delete("/exercises/:id", exerciseHandler.Delete)
}
