package handlers

import (
	"context"
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ABeGood/klim-fit/internal/models"
	"github.com/ABeGood/klim-fit/internal/repository"
)

type exerciseCatalog interface {
	Create(ctx context.Context, exercise *models.Exercise) error
	GetByID(ctx context.Context, id int64) (*models.Exercise, error)
	GetAll(ctx context.Context) ([]models.Exercise, error)
	Update(ctx context.Context, exercise *models.Exercise) error
	Delete(ctx context.Context, id int64) (bool, error)
	Search(ctx context.Context, term string) ([]models.Exercise, error)
	FilterByParameters(ctx context.Context, filters map[string]bool) ([]models.Exercise, error)
	WithParameter(ctx context.Context, parameterName string) ([]models.Exercise, error)
}

type ExerciseHandler struct {
	catalog exerciseCatalog
}

func NewExerciseHandler(catalog *repository.ExerciseRepository) *ExerciseHandler {
	return &ExerciseHandler{catalog: catalog}
}

type exerciseRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	HasReps     bool    `json:"has_reps"`
	HasWeightKG bool    `json:"has_weight_kg"`
	HasDuration bool    `json:"has_duration_s"`
	HasDistance bool    `json:"has_distance_m"`
}

var parameterFlagNames = []string{"has_reps", "has_weight_kg", "has_duration_s", "has_distance_m"}

// List serves the catalog. `search` wins over `parameter`, which wins
// over the boolean flag filters; with no query at all every exercise
// comes back.
func (h *ExerciseHandler) List(c *fiber.Ctx) error {
	if term := c.Query("search"); term != "" {
		exercises, err := h.catalog.Search(c.Context(), term)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to search exercises"})
		}
		return c.JSON(fiber.Map{"exercises": exercises})
	}

	if name := c.Query("parameter"); name != "" {
		exercises, err := h.catalog.WithParameter(c.Context(), name)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to filter exercises"})
		}
		return c.JSON(fiber.Map{"exercises": exercises})
	}

	filters := make(map[string]bool)
	for _, flag := range parameterFlagNames {
		if value := c.Query(flag); value != "" {
			parsed, err := strconv.ParseBool(value)
			if err != nil {
				return c.Status(fiber.StatusBadRequest).
					JSON(fiber.Map{"error": flag + " must be a boolean"})
			}
			filters[flag] = parsed
		}
	}

	exercises, err := h.catalog.FilterByParameters(c.Context(), filters)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to list exercises"})
	}
	return c.JSON(fiber.Map{"exercises": exercises})
}

func (h *ExerciseHandler) Get(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid exercise id"})
	}

	exercise, err := h.catalog.GetByID(c.Context(), int64(id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Exercise not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch exercise"})
	}
	return c.JSON(fiber.Map{
		"exercise":        exercise,
		"parameter_types": exercise.ParameterTypes(),
	})
}

func (h *ExerciseHandler) Create(c *fiber.Ctx) error {
	var req exerciseRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	exercise := &models.Exercise{
		Name:        req.Name,
		Description: req.Description,
		HasReps:     req.HasReps,
		HasWeightKG: req.HasWeightKG,
		HasDuration: req.HasDuration,
		HasDistance: req.HasDistance,
	}
	if err := exercise.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if err := h.catalog.Create(c.Context(), exercise); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Exercise name already exists"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create exercise"})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"exercise": exercise})
}

func (h *ExerciseHandler) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid exercise id"})
	}

	var req exerciseRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	exercise := &models.Exercise{
		ID:          int64(id),
		Name:        req.Name,
		Description: req.Description,
		HasReps:     req.HasReps,
		HasWeightKG: req.HasWeightKG,
		HasDuration: req.HasDuration,
		HasDistance: req.HasDistance,
	}
	if err := exercise.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if err := h.catalog.Update(c.Context(), exercise); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Exercise not found"})
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Exercise name already exists"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update exercise"})
	}
	return c.JSON(fiber.Map{"exercise": exercise})
}

// Delete removes a catalog exercise. An exercise referenced by any
// workout history is protected by the foreign key and answers 409.
func (h *ExerciseHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid exercise id"})
	}

	deleted, err := h.catalog.Delete(c.Context(), int64(id))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return c.Status(fiber.StatusConflict).
				JSON(fiber.Map{"error": "Exercise is referenced by workout history"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete exercise"})
	}
	if !deleted {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Exercise not found"})
	}
	return c.JSON(fiber.Map{"message": "Exercise deleted"})
}
