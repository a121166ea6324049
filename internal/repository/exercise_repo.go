package repository

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/ABeGood/klim-fit/internal/models"
)

type ExerciseRepository struct {
	db DBTX
}

func NewExerciseRepository(db DBTX) *ExerciseRepository {
	return &ExerciseRepository{db: db}
}

const exerciseColumns = "id, name, description, parameters, created_at, updated_at"

func scanExercise(row interface{ Scan(dest ...any) error }) (*models.Exercise, error) {
	var exercise models.Exercise
	var params map[string]bool
	err := row.Scan(
		&exercise.ID,
		&exercise.Name,
		&exercise.Description,
		&params,
		&exercise.CreatedAt,
		&exercise.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	exercise.SetParameters(params)
	return &exercise, nil
}

func (r *ExerciseRepository) Create(ctx context.Context, exercise *models.Exercise) error {
	query := `
		INSERT INTO exercises (name, description, parameters)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`
	return r.db.QueryRow(ctx, query,
		exercise.Name, exercise.Description, exercise.ParametersMap()).
		Scan(&exercise.ID, &exercise.CreatedAt, &exercise.UpdatedAt)
}

func (r *ExerciseRepository) GetByID(ctx context.Context, id int64) (*models.Exercise, error) {
	query := fmt.Sprintf(`SELECT %s FROM exercises WHERE id = $1`, exerciseColumns)
	return scanExercise(r.db.QueryRow(ctx, query, id))
}

func (r *ExerciseRepository) GetAll(ctx context.Context) ([]models.Exercise, error) {
	query := fmt.Sprintf(`SELECT %s FROM exercises ORDER BY name`, exerciseColumns)
	return r.queryExercises(ctx, query)
}

func (r *ExerciseRepository) Update(ctx context.Context, exercise *models.Exercise) error {
	query := `
		UPDATE exercises
		SET name = $1, description = $2, parameters = $3, updated_at = NOW()
		WHERE id = $4
		RETURNING updated_at
	`
	return r.db.QueryRow(ctx, query,
		exercise.Name, exercise.Description, exercise.ParametersMap(), exercise.ID).
		Scan(&exercise.UpdatedAt)
}

func (r *ExerciseRepository) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM exercises WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// Search matches a substring against name or description,
// case-insensitively.
func (r *ExerciseRepository) Search(ctx context.Context, term string) ([]models.Exercise, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM exercises
		WHERE name ILIKE $1 OR description ILIKE $1
		ORDER BY name
	`, exerciseColumns)
	return r.queryExercises(ctx, query, "%"+term+"%")
}

// buildParameterFilter turns a flag-name to required-value mapping
// into a conjunctive WHERE clause over the parameters column. Boolean
// equality, not containment-or-better: a false filter matches only a
// stored false. Keys are sorted so the generated SQL is deterministic.
func buildParameterFilter(filters map[string]bool) (string, []any) {
	keys := make([]string, 0, len(filters))
	for key := range filters {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	conditions := make([]string, 0, len(keys))
	args := make([]any, 0, len(keys)*2)
	for _, key := range keys {
		args = append(args, key, filters[key])
		conditions = append(conditions,
			fmt.Sprintf("parameters->$%d = to_jsonb($%d::boolean)", len(args)-1, len(args)))
	}
	return strings.Join(conditions, " AND "), args
}

// FilterByParameters returns exercises whose stored parameter flags
// satisfy every requested filter exactly. An empty filter mapping
// returns all exercises.
func (r *ExerciseRepository) FilterByParameters(ctx context.Context, filters map[string]bool) ([]models.Exercise, error) {
	if len(filters) == 0 {
		return r.GetAll(ctx)
	}

	where, args := buildParameterFilter(filters)
	query := fmt.Sprintf(`
		SELECT %s FROM exercises
		WHERE %s
		ORDER BY name
	`, exerciseColumns, where)
	return r.queryExercises(ctx, query, args...)
}

// WithParameter returns exercises whose parameters document defines
// the given key, regardless of its value.
func (r *ExerciseRepository) WithParameter(ctx context.Context, parameterName string) ([]models.Exercise, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM exercises
		WHERE parameters ? $1
		ORDER BY name
	`, exerciseColumns)
	return r.queryExercises(ctx, query, parameterName)
}

func (r *ExerciseRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM exercises`).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *ExerciseRepository) queryExercises(ctx context.Context, query string, args ...any) ([]models.Exercise, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	exercises := make([]models.Exercise, 0)
	for rows.Next() {
		exercise, err := scanExercise(rows)
		if err != nil {
			return nil, err
		}
		exercises = append(exercises, *exercise)
	}
	return exercises, rows.Err()
}
