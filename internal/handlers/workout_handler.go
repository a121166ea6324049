package handlers

import (
	"context"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/ABeGood/klim-fit/internal/models"
	"github.com/ABeGood/klim-fit/internal/services"
)

type workoutApplicationService interface {
	CreateWorkout(ctx context.Context, actor services.Actor, userID int64, input services.WorkoutInput) (*models.Workout, error)
	ListWorkouts(ctx context.Context, actor services.Actor, userID int64) ([]models.Workout, error)
	GetWorkout(ctx context.Context, actor services.Actor, workoutID int64) (*models.Workout, []models.ExerciseSetDetail, error)
	UpdateWorkout(ctx context.Context, actor services.Actor, workoutID int64, input services.WorkoutInput) (*models.Workout, error)
	CompleteWorkout(ctx context.Context, actor services.Actor, workoutID int64, completed bool) error
	DeleteWorkout(ctx context.Context, actor services.Actor, workoutID int64) error
	AddWorkoutComment(ctx context.Context, actor services.Actor, workoutID int64, author, message string) (*models.Comment, error)
	Progress(ctx context.Context, actor services.Actor, workoutID int64) (*models.WorkoutProgress, error)
	UserStats(ctx context.Context, actor services.Actor, userID int64) (*models.UserStats, error)
	AddSet(ctx context.Context, actor services.Actor, workoutID int64, input services.SetInput) (*models.ExerciseSet, error)
	UpdateSet(ctx context.Context, actor services.Actor, setID int64, input services.SetInput) (*models.ExerciseSet, error)
	CompleteSet(ctx context.Context, actor services.Actor, setID int64, completed bool) error
	DeleteSet(ctx context.Context, actor services.Actor, setID int64) error
	AddSetComment(ctx context.Context, actor services.Actor, setID int64, author, message string) (*models.Comment, error)
}

type WorkoutHandler struct {
	service workoutApplicationService
}

func NewWorkoutHandler(service *services.WorkoutService) *WorkoutHandler {
	return &WorkoutHandler{service: service}
}

type workoutRequest struct {
	Name            string  `json:"name"`
	Description     *string `json:"description"`
	WorkoutDate     *string `json:"workout_date"`
	DurationMinutes *int    `json:"duration_minutes"`
	Completed       bool    `json:"completed"`
}

type setRequest struct {
	ExerciseID  int64    `json:"exercise_id"`
	SetOrder    int      `json:"set_order"`
	Reps        *int     `json:"reps"`
	WeightKG    *float64 `json:"weight_kg"`
	DurationS   *int     `json:"duration_s"`
	DistanceM   *float64 `json:"distance_m"`
	RestSeconds *int     `json:"rest_seconds"`
	Completed   bool     `json:"completed"`
}

type commentRequest struct {
	Author  string `json:"author"`
	Message string `json:"message"`
}

func (r workoutRequest) toInput() (services.WorkoutInput, error) {
	input := services.WorkoutInput{
		Name:            r.Name,
		Description:     r.Description,
		DurationMinutes: r.DurationMinutes,
		Completed:       r.Completed,
	}
	if r.WorkoutDate != nil && strings.TrimSpace(*r.WorkoutDate) != "" {
		date, err := time.Parse("2006-01-02", strings.TrimSpace(*r.WorkoutDate))
		if err != nil {
			return services.WorkoutInput{}, err
		}
		input.WorkoutDate = &date
	}
	return input, nil
}

func (h *WorkoutHandler) Create(c *fiber.Ctx) error {
	actor, err := currentActor(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req workoutRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	input, err := req.toInput()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"error": "workout_date must be YYYY-MM-DD"})
	}

	workout, err := h.service.CreateWorkout(c.Context(), actor, actor.ID, input)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"workout": workout})
}

func (h *WorkoutHandler) List(c *fiber.Ctx) error {
	actor, err := currentActor(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	workouts, err := h.service.ListWorkouts(c.Context(), actor, actor.ID)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(fiber.Map{"workouts": workouts})
}

func (h *WorkoutHandler) Get(c *fiber.Ctx) error {
	actor, err := currentActor(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid workout id"})
	}

	workout, sets, err := h.service.GetWorkout(c.Context(), actor, int64(id))
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(fiber.Map{"workout": workout, "sets": sets})
}

func (h *WorkoutHandler) Update(c *fiber.Ctx) error {
	actor, err := currentActor(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid workout id"})
	}

	var req workoutRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	input, err := req.toInput()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"error": "workout_date must be YYYY-MM-DD"})
	}

	workout, err := h.service.UpdateWorkout(c.Context(), actor, int64(id), input)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(fiber.Map{"workout": workout})
}

// Complete toggles a workout's completed flag. An omitted body flag
// marks the workout done, matching the set counterpart.
func (h *WorkoutHandler) Complete(c *fiber.Ctx) error {
	actor, err := currentActor(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid workout id"})
	}

	var req struct {
		Completed *bool `json:"completed"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	completed := true
	if req.Completed != nil {
		completed = *req.Completed
	}

	if err := h.service.CompleteWorkout(c.Context(), actor, int64(id), completed); err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Workout updated"})
}

func (h *WorkoutHandler) Delete(c *fiber.Ctx) error {
	actor, err := currentActor(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid workout id"})
	}

	if err := h.service.DeleteWorkout(c.Context(), actor, int64(id)); err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Workout deleted"})
}

func (h *WorkoutHandler) AddComment(c *fiber.Ctx) error {
	actor, err := currentActor(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid workout id"})
	}

	var req commentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	comment, err := h.service.AddWorkoutComment(c.Context(), actor, int64(id), req.Author, req.Message)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"comment": comment})
}

func (h *WorkoutHandler) Progress(c *fiber.Ctx) error {
	actor, err := currentActor(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid workout id"})
	}

	progress, err := h.service.Progress(c.Context(), actor, int64(id))
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(fiber.Map{"progress": progress})
}

func (h *WorkoutHandler) Stats(c *fiber.Ctx) error {
	actor, err := currentActor(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	stats, err := h.service.UserStats(c.Context(), actor, actor.ID)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(fiber.Map{"stats": stats})
}

func (h *WorkoutHandler) AddSet(c *fiber.Ctx) error {
	actor, err := currentActor(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid workout id"})
	}

	var req setRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	set, err := h.service.AddSet(c.Context(), actor, int64(id), services.SetInput{
		ExerciseID:  req.ExerciseID,
		SetOrder:    req.SetOrder,
		Reps:        req.Reps,
		WeightKG:    req.WeightKG,
		DurationS:   req.DurationS,
		DistanceM:   req.DistanceM,
		RestSeconds: req.RestSeconds,
		Completed:   req.Completed,
	})
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"set": set})
}

func (h *WorkoutHandler) UpdateSet(c *fiber.Ctx) error {
	actor, err := currentActor(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid set id"})
	}

	var req setRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	set, err := h.service.UpdateSet(c.Context(), actor, int64(id), services.SetInput{
		ExerciseID:  req.ExerciseID,
		SetOrder:    req.SetOrder,
		Reps:        req.Reps,
		WeightKG:    req.WeightKG,
		DurationS:   req.DurationS,
		DistanceM:   req.DistanceM,
		RestSeconds: req.RestSeconds,
		Completed:   req.Completed,
	})
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(fiber.Map{"set": set})
}

func (h *WorkoutHandler) CompleteSet(c *fiber.Ctx) error {
	actor, err := currentActor(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid set id"})
	}

	var req struct {
		Completed *bool `json:"completed"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	completed := true
	if req.Completed != nil {
		completed = *req.Completed
	}

	if err := h.service.CompleteSet(c.Context(), actor, int64(id), completed); err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Set updated"})
}

func (h *WorkoutHandler) DeleteSet(c *fiber.Ctx) error {
	actor, err := currentActor(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid set id"})
	}

	if err := h.service.DeleteSet(c.Context(), actor, int64(id)); err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Set deleted"})
}

func (h *WorkoutHandler) AddSetComment(c *fiber.Ctx) error {
	actor, err := currentActor(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid set id"})
	}

	var req commentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	comment, err := h.service.AddSetComment(c.Context(), actor, int64(id), req.Author, req.Message)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"comment": comment})
}
