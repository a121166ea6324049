package repository

import (
	"context"

	"github.com/ABeGood/klim-fit/internal/models"
)

type ExerciseSetRepository struct {
	db DBTX
}

func NewExerciseSetRepository(db DBTX) *ExerciseSetRepository {
	return &ExerciseSetRepository{db: db}
}

func (r *ExerciseSetRepository) Create(ctx context.Context, set *models.ExerciseSet) error {
	if set.Comments == nil {
		set.Comments = []models.Comment{}
	}
	query := `
		INSERT INTO exercise_sets (workout_id, exercise_id, set_order, reps, weight_kg, duration_s, distance_m, rest_seconds, completed, comments)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at
	`
	return r.db.QueryRow(ctx, query,
		set.WorkoutID,
		set.ExerciseID,
		set.SetOrder,
		set.Reps,
		set.WeightKG,
		set.DurationS,
		set.DistanceM,
		set.RestSeconds,
		set.Completed,
		set.Comments,
	).Scan(&set.ID, &set.CreatedAt, &set.UpdatedAt)
}

func (r *ExerciseSetRepository) GetByID(ctx context.Context, id int64) (*models.ExerciseSet, error) {
	query := `
		SELECT id, workout_id, exercise_id, set_order, reps, weight_kg, duration_s, distance_m, rest_seconds, completed, comments, created_at, updated_at
		FROM exercise_sets
		WHERE id = $1
	`
	var set models.ExerciseSet
	err := r.db.QueryRow(ctx, query, id).Scan(
		&set.ID,
		&set.WorkoutID,
		&set.ExerciseID,
		&set.SetOrder,
		&set.Reps,
		&set.WeightKG,
		&set.DurationS,
		&set.DistanceM,
		&set.RestSeconds,
		&set.Completed,
		&set.Comments,
		&set.CreatedAt,
		&set.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &set, nil
}

// ListByWorkoutID returns the workout's sets in set order, each joined
// with its catalog exercise so callers know which measurements the
// exercise expects.
func (r *ExerciseSetRepository) ListByWorkoutID(ctx context.Context, workoutID int64) ([]models.ExerciseSetDetail, error) {
	query := `
		SELECT s.id, s.workout_id, s.exercise_id, s.set_order, s.reps, s.weight_kg, s.duration_s, s.distance_m, s.rest_seconds, s.completed, s.comments, s.created_at, s.updated_at,
			   e.name, e.parameters
		FROM exercise_sets s
		JOIN exercises e ON e.id = s.exercise_id
		WHERE s.workout_id = $1
		ORDER BY s.set_order, s.id
	`
	rows, err := r.db.Query(ctx, query, workoutID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sets := make([]models.ExerciseSetDetail, 0)
	for rows.Next() {
		var detail models.ExerciseSetDetail
		var params map[string]bool
		if err := rows.Scan(
			&detail.ID,
			&detail.WorkoutID,
			&detail.ExerciseID,
			&detail.SetOrder,
			&detail.Reps,
			&detail.WeightKG,
			&detail.DurationS,
			&detail.DistanceM,
			&detail.RestSeconds,
			&detail.Completed,
			&detail.Comments,
			&detail.CreatedAt,
			&detail.UpdatedAt,
			&detail.ExerciseName,
			&params,
		); err != nil {
			return nil, err
		}
		var exercise models.Exercise
		exercise.SetParameters(params)
		detail.ExerciseParameters = exercise.ParameterTypes()
		sets = append(sets, detail)
	}
	return sets, rows.Err()
}

func (r *ExerciseSetRepository) Update(ctx context.Context, set *models.ExerciseSet) error {
	query := `
		UPDATE exercise_sets
		SET set_order = $1, reps = $2, weight_kg = $3, duration_s = $4, distance_m = $5, rest_seconds = $6, completed = $7, updated_at = NOW()
		WHERE id = $8
		RETURNING updated_at
	`
	return r.db.QueryRow(ctx, query,
		set.SetOrder,
		set.Reps,
		set.WeightKG,
		set.DurationS,
		set.DistanceM,
		set.RestSeconds,
		set.Completed,
		set.ID,
	).Scan(&set.UpdatedAt)
}

func (r *ExerciseSetRepository) SetCompleted(ctx context.Context, id int64, completed bool) (bool, error) {
	query := `
		UPDATE exercise_sets
		SET completed = $1, updated_at = NOW()
		WHERE id = $2
	`
	tag, err := r.db.Exec(ctx, query, completed, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *ExerciseSetRepository) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM exercise_sets WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *ExerciseSetRepository) AddComment(ctx context.Context, id int64, comment models.Comment) (bool, error) {
	query := `
		UPDATE exercise_sets
		SET comments = comments || $1, updated_at = NOW()
		WHERE id = $2
	`
	tag, err := r.db.Exec(ctx, query, comment, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
