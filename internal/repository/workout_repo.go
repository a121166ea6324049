package repository

import (
	"context"

	"github.com/ABeGood/klim-fit/internal/models"
)

type WorkoutRepository struct {
	db DBTX
}

func NewWorkoutRepository(db DBTX) *WorkoutRepository {
	return &WorkoutRepository{db: db}
}

func (r *WorkoutRepository) Create(ctx context.Context, workout *models.Workout) error {
	if workout.Comments == nil {
		workout.Comments = []models.Comment{}
	}
	query := `
		INSERT INTO workouts (user_id, name, description, workout_date, duration_minutes, completed, comments)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`
	return r.db.QueryRow(ctx, query,
		workout.UserID,
		workout.Name,
		workout.Description,
		workout.WorkoutDate,
		workout.DurationMinutes,
		workout.Completed,
		workout.Comments,
	).Scan(&workout.ID, &workout.CreatedAt, &workout.UpdatedAt)
}

func (r *WorkoutRepository) GetByID(ctx context.Context, id int64) (*models.Workout, error) {
	query := `
		SELECT id, user_id, name, description, workout_date, duration_minutes, completed, comments, created_at, updated_at
		FROM workouts
		WHERE id = $1
	`
	var workout models.Workout
	err := r.db.QueryRow(ctx, query, id).Scan(
		&workout.ID,
		&workout.UserID,
		&workout.Name,
		&workout.Description,
		&workout.WorkoutDate,
		&workout.DurationMinutes,
		&workout.Completed,
		&workout.Comments,
		&workout.CreatedAt,
		&workout.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &workout, nil
}

func (r *WorkoutRepository) ListByUserID(ctx context.Context, userID int64) ([]models.Workout, error) {
	query := `
		SELECT id, user_id, name, description, workout_date, duration_minutes, completed, comments, created_at, updated_at
		FROM workouts
		WHERE user_id = $1
		ORDER BY workout_date DESC NULLS LAST, id DESC
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	workouts := make([]models.Workout, 0)
	for rows.Next() {
		var workout models.Workout
		if err := rows.Scan(
			&workout.ID,
			&workout.UserID,
			&workout.Name,
			&workout.Description,
			&workout.WorkoutDate,
			&workout.DurationMinutes,
			&workout.Completed,
			&workout.Comments,
			&workout.CreatedAt,
			&workout.UpdatedAt,
		); err != nil {
			return nil, err
		}
		workouts = append(workouts, workout)
	}
	return workouts, rows.Err()
}

func (r *WorkoutRepository) Update(ctx context.Context, workout *models.Workout) error {
	query := `
		UPDATE workouts
		SET name = $1, description = $2, workout_date = $3, duration_minutes = $4, completed = $5, updated_at = NOW()
		WHERE id = $6
		RETURNING updated_at
	`
	return r.db.QueryRow(ctx, query,
		workout.Name,
		workout.Description,
		workout.WorkoutDate,
		workout.DurationMinutes,
		workout.Completed,
		workout.ID,
	).Scan(&workout.UpdatedAt)
}

func (r *WorkoutRepository) SetCompleted(ctx context.Context, id int64, completed bool) (bool, error) {
	query := `
		UPDATE workouts
		SET completed = $1, updated_at = NOW()
		WHERE id = $2
	`
	tag, err := r.db.Exec(ctx, query, completed, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// Delete removes the workout; its exercise sets go with it via the
// cascade on exercise_sets.workout_id.
func (r *WorkoutRepository) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM workouts WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// AddComment appends to the workout's comment list. The list is
// append-only; there is no operation that edits or removes entries.
func (r *WorkoutRepository) AddComment(ctx context.Context, id int64, comment models.Comment) (bool, error) {
	query := `
		UPDATE workouts
		SET comments = comments || $1, updated_at = NOW()
		WHERE id = $2
	`
	tag, err := r.db.Exec(ctx, query, comment, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// Progress counts sets for one workout. A workout with zero sets
// reports zero percent and is never considered complete.
func (r *WorkoutRepository) Progress(ctx context.Context, id int64) (*models.WorkoutProgress, error) {
	query := `
		SELECT COUNT(*), COUNT(*) FILTER (WHERE completed)
		FROM exercise_sets
		WHERE workout_id = $1
	`
	progress := models.WorkoutProgress{WorkoutID: id}
	if err := r.db.QueryRow(ctx, query, id).Scan(&progress.TotalSets, &progress.CompletedSets); err != nil {
		return nil, err
	}
	if progress.TotalSets > 0 {
		progress.Percentage = float64(progress.CompletedSets) / float64(progress.TotalSets) * 100
		progress.Complete = progress.CompletedSets == progress.TotalSets
	}
	return &progress, nil
}

// UserStats counts workouts for one user. Zero workouts yields a zero
// completion rate rather than a division fault.
func (r *WorkoutRepository) UserStats(ctx context.Context, userID int64) (*models.UserStats, error) {
	query := `
		SELECT COUNT(*), COUNT(*) FILTER (WHERE completed)
		FROM workouts
		WHERE user_id = $1
	`
	stats := models.UserStats{UserID: userID}
	if err := r.db.QueryRow(ctx, query, userID).Scan(&stats.TotalWorkouts, &stats.CompletedWorkouts); err != nil {
		return nil, err
	}
	stats.PendingWorkouts = stats.TotalWorkouts - stats.CompletedWorkouts
	if stats.TotalWorkouts > 0 {
		stats.CompletionRate = float64(stats.CompletedWorkouts) / float64(stats.TotalWorkouts) * 100
	}
	return &stats, nil
}
