package handlers

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ABeGood/klim-fit/internal/models"
)

type fakeCatalog struct {
	exercises  []models.Exercise
	lastCall   string
	lastTerm   string
	lastFilter map[string]bool
	createErr  error
	updateErr  error
	deleteErr  error
}

func (f *fakeCatalog) Create(_ context.Context, exercise *models.Exercise) error {
	f.lastCall = "Create"
	if f.createErr != nil {
		return f.createErr
	}
	exercise.ID = 1
	return nil
}

func (f *fakeCatalog) GetByID(_ context.Context, id int64) (*models.Exercise, error) {
	f.lastCall = "GetByID"
	for i := range f.exercises {
		if f.exercises[i].ID == id {
			return &f.exercises[i], nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeCatalog) GetAll(_ context.Context) ([]models.Exercise, error) {
	f.lastCall = "GetAll"
	return f.exercises, nil
}

func (f *fakeCatalog) Update(_ context.Context, exercise *models.Exercise) error {
	f.lastCall = "Update"
	if f.updateErr != nil {
		return f.updateErr
	}
	for i := range f.exercises {
		if f.exercises[i].ID == exercise.ID {
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (f *fakeCatalog) Delete(_ context.Context, id int64) (bool, error) {
	f.lastCall = "Delete"
	if f.deleteErr != nil {
		return false, f.deleteErr
	}
	for i := range f.exercises {
		if f.exercises[i].ID == id {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeCatalog) Search(_ context.Context, term string) ([]models.Exercise, error) {
	f.lastCall = "Search"
	f.lastTerm = term
	return f.exercises, nil
}

func (f *fakeCatalog) FilterByParameters(_ context.Context, filters map[string]bool) ([]models.Exercise, error) {
	f.lastCall = "FilterByParameters"
	f.lastFilter = filters
	return f.exercises, nil
}

func (f *fakeCatalog) WithParameter(_ context.Context, parameterName string) ([]models.Exercise, error) {
	f.lastCall = "WithParameter"
	f.lastTerm = parameterName
	return f.exercises, nil
}

func exerciseTestApp(catalog *fakeCatalog) *fiber.App {
	handler := &ExerciseHandler{catalog: catalog}
	app := fiber.New()
	app.Get("/api/v1/exercises", handler.List)
	app.Get("/api/v1/exercises/:id", handler.Get)
	app.Post("/api/v1/admin/exercises", handler.Create)
	app.Put("/api/v1/admin/exercises/:id", handler.Update)
	app.Delete("/api/v1/admin/exercises/:id", handler.Delete)
	return app
}

func seededCatalog() *fakeCatalog {
	return &fakeCatalog{exercises: []models.Exercise{
		{ID: 1, Name: "Push-ups", HasReps: true},
		{ID: 2, Name: "Running", HasDuration: true, HasDistance: true},
	}}
}

func getStatus(t *testing.T, app *fiber.App, target string) int {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest("GET", target, nil))
	if err != nil {
		t.Fatalf("GET %s: %v", target, err)
	}
	resp.Body.Close()
	return resp.StatusCode
}

func TestListSearchWinsOverOtherFilters(t *testing.T) {
	catalog := seededCatalog()
	app := exerciseTestApp(catalog)

	if status := getStatus(t, app, "/api/v1/exercises?search=push&parameter=reps&has_reps=true"); status != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if catalog.lastCall != "Search" || catalog.lastTerm != "push" {
		t.Fatalf("expected Search(push), got %s(%s)", catalog.lastCall, catalog.lastTerm)
	}
}

func TestListParameterWinsOverFlags(t *testing.T) {
	catalog := seededCatalog()
	app := exerciseTestApp(catalog)

	if status := getStatus(t, app, "/api/v1/exercises?parameter=reps&has_reps=true"); status != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if catalog.lastCall != "WithParameter" || catalog.lastTerm != "reps" {
		t.Fatalf("expected WithParameter(reps), got %s(%s)", catalog.lastCall, catalog.lastTerm)
	}
}

func TestListParsesFlagFilters(t *testing.T) {
	catalog := seededCatalog()
	app := exerciseTestApp(catalog)

	if status := getStatus(t, app, "/api/v1/exercises?has_reps=true&has_weight_kg=false"); status != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	want := map[string]bool{"has_reps": true, "has_weight_kg": false}
	if !reflect.DeepEqual(catalog.lastFilter, want) {
		t.Fatalf("expected %v, got %v", want, catalog.lastFilter)
	}
}

func TestListWithoutQueryReturnsEverything(t *testing.T) {
	catalog := seededCatalog()
	app := exerciseTestApp(catalog)

	if status := getStatus(t, app, "/api/v1/exercises"); status != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if catalog.lastCall != "FilterByParameters" || len(catalog.lastFilter) != 0 {
		t.Fatalf("expected empty filter, got %s %v", catalog.lastCall, catalog.lastFilter)
	}
}

func TestListRejectsNonBooleanFlag(t *testing.T) {
	app := exerciseTestApp(seededCatalog())

	if status := getStatus(t, app, "/api/v1/exercises?has_reps=banana"); status != fiber.StatusBadRequest {
		t.Fatalf("expected 400, got %d", status)
	}
}

func TestGetExerciseIncludesParameterTypes(t *testing.T) {
	app := exerciseTestApp(seededCatalog())

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/exercises/2", nil))
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var body struct {
		ParameterTypes []string `json:"parameter_types"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := []string{"duration_s", "distance_m"}
	if !reflect.DeepEqual(body.ParameterTypes, want) {
		t.Fatalf("expected %v, got %v", want, body.ParameterTypes)
	}
}

func TestGetExerciseNotFound(t *testing.T) {
	app := exerciseTestApp(seededCatalog())

	if status := getStatus(t, app, "/api/v1/exercises/404"); status != fiber.StatusNotFound {
		t.Fatalf("expected 404, got %d", status)
	}
}

func TestCreateExerciseRequiresParameter(t *testing.T) {
	app := exerciseTestApp(seededCatalog())

	status, body := jsonRequest(t, app, "POST", "/api/v1/admin/exercises", fiber.Map{
		"name": "Stretching",
	})
	if status != fiber.StatusBadRequest {
		t.Fatalf("expected 400, got %d", status)
	}
	if body["error"] != "Exercise must have at least one parameter type" {
		t.Fatalf("unexpected error: %v", body["error"])
	}
}

func TestCreateExerciseDuplicateNameConflicts(t *testing.T) {
	catalog := seededCatalog()
	catalog.createErr = &pgconn.PgError{Code: "23505"}
	app := exerciseTestApp(catalog)

	status, _ := jsonRequest(t, app, "POST", "/api/v1/admin/exercises", fiber.Map{
		"name":     "Push-ups",
		"has_reps": true,
	})
	if status != fiber.StatusConflict {
		t.Fatalf("expected 409, got %d", status)
	}
}

func TestUpdateExercise(t *testing.T) {
	app := exerciseTestApp(seededCatalog())

	status, body := jsonRequest(t, app, "PUT", "/api/v1/admin/exercises/1", fiber.Map{
		"name":          "Push-ups",
		"has_reps":      true,
		"has_weight_kg": true,
	})
	if status != fiber.StatusOK {
		t.Fatalf("expected 200, got %d: %v", status, body)
	}
}

func TestUpdateExerciseMissingRowReturnsNotFound(t *testing.T) {
	app := exerciseTestApp(seededCatalog())

	status, _ := jsonRequest(t, app, "PUT", "/api/v1/admin/exercises/404", fiber.Map{
		"name":     "Ghost",
		"has_reps": true,
	})
	if status != fiber.StatusNotFound {
		t.Fatalf("expected 404, got %d", status)
	}
}

func TestUpdateExerciseDuplicateNameConflicts(t *testing.T) {
	catalog := seededCatalog()
	catalog.updateErr = &pgconn.PgError{Code: "23505"}
	app := exerciseTestApp(catalog)

	status, _ := jsonRequest(t, app, "PUT", "/api/v1/admin/exercises/2", fiber.Map{
		"name":     "Push-ups",
		"has_reps": true,
	})
	if status != fiber.StatusConflict {
		t.Fatalf("expected 409, got %d", status)
	}
}

func TestDeleteExerciseInUseConflicts(t *testing.T) {
	catalog := seededCatalog()
	catalog.deleteErr = &pgconn.PgError{Code: "23503"}
	app := exerciseTestApp(catalog)

	resp, err := app.Test(httptest.NewRequest("DELETE", "/api/v1/admin/exercises/1", nil))
	if err != nil {
		t.Fatalf("DELETE: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != fiber.StatusConflict {
		t.Fatalf("expected 409, got %d", resp.StatusCode)
	}
}

func TestDeleteExerciseNotFound(t *testing.T) {
	app := exerciseTestApp(seededCatalog())

	resp, err := app.Test(httptest.NewRequest("DELETE", "/api/v1/admin/exercises/404", nil))
	if err != nil {
		t.Fatalf("DELETE: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != fiber.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}
