package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/ABeGood/klim-fit/internal/models"
)

type WorkoutStore interface {
	Create(ctx context.Context, workout *models.Workout) error
	GetByID(ctx context.Context, id int64) (*models.Workout, error)
	ListByUserID(ctx context.Context, userID int64) ([]models.Workout, error)
	Update(ctx context.Context, workout *models.Workout) error
	SetCompleted(ctx context.Context, id int64, completed bool) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
	AddComment(ctx context.Context, id int64, comment models.Comment) (bool, error)
	Progress(ctx context.Context, id int64) (*models.WorkoutProgress, error)
	UserStats(ctx context.Context, userID int64) (*models.UserStats, error)
}

type ExerciseSetStore interface {
	Create(ctx context.Context, set *models.ExerciseSet) error
	GetByID(ctx context.Context, id int64) (*models.ExerciseSet, error)
	ListByWorkoutID(ctx context.Context, workoutID int64) ([]models.ExerciseSetDetail, error)
	Update(ctx context.Context, set *models.ExerciseSet) error
	SetCompleted(ctx context.Context, id int64, completed bool) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
	AddComment(ctx context.Context, id int64, comment models.Comment) (bool, error)
}

// Actor identifies the authenticated caller. Admins may act on any
// workout; users only on their own.
type Actor struct {
	ID   int64
	Role string
}

func (a Actor) isAdmin() bool {
	return a.Role == "admin"
}

type WorkoutService struct {
	workoutRepo WorkoutStore
	setRepo     ExerciseSetStore
}

func NewWorkoutService(workoutRepo WorkoutStore, setRepo ExerciseSetStore) *WorkoutService {
	return &WorkoutService{workoutRepo: workoutRepo, setRepo: setRepo}
}

type WorkoutInput struct {
	Name            string
	Description     *string
	WorkoutDate     *time.Time
	DurationMinutes *int
	Completed       bool
}

type SetInput struct {
	ExerciseID  int64
	SetOrder    int
	Reps        *int
	WeightKG    *float64
	DurationS   *int
	DistanceM   *float64
	RestSeconds *int
	Completed   bool
}

func (s *WorkoutService) CreateWorkout(ctx context.Context, actor Actor, userID int64, input WorkoutInput) (*models.Workout, error) {
	if userID != actor.ID && !actor.isAdmin() {
		return nil, ErrForbidden
	}
	workout := &models.Workout{
		UserID:          userID,
		Name:            strings.TrimSpace(input.Name),
		Description:     input.Description,
		WorkoutDate:     input.WorkoutDate,
		DurationMinutes: input.DurationMinutes,
		Completed:       input.Completed,
	}
	if err := workout.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidation, err)
	}
	if err := s.workoutRepo.Create(ctx, workout); err != nil {
		return nil, err
	}
	return workout, nil
}

func (s *WorkoutService) ListWorkouts(ctx context.Context, actor Actor, userID int64) ([]models.Workout, error) {
	if userID != actor.ID && !actor.isAdmin() {
		return nil, ErrForbidden
	}
	return s.workoutRepo.ListByUserID(ctx, userID)
}

// GetWorkout returns the workout with its sets joined to the catalog.
func (s *WorkoutService) GetWorkout(ctx context.Context, actor Actor, workoutID int64) (*models.Workout, []models.ExerciseSetDetail, error) {
	workout, err := s.ownedWorkout(ctx, actor, workoutID)
	if err != nil {
		return nil, nil, err
	}
	sets, err := s.setRepo.ListByWorkoutID(ctx, workoutID)
	if err != nil {
		return nil, nil, err
	}
	return workout, sets, nil
}

func (s *WorkoutService) UpdateWorkout(ctx context.Context, actor Actor, workoutID int64, input WorkoutInput) (*models.Workout, error) {
	workout, err := s.ownedWorkout(ctx, actor, workoutID)
	if err != nil {
		return nil, err
	}
	workout.Name = strings.TrimSpace(input.Name)
	workout.Description = input.Description
	workout.WorkoutDate = input.WorkoutDate
	workout.DurationMinutes = input.DurationMinutes
	workout.Completed = input.Completed
	if err := workout.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidation, err)
	}
	if err := s.workoutRepo.Update(ctx, workout); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return workout, nil
}

func (s *WorkoutService) CompleteWorkout(ctx context.Context, actor Actor, workoutID int64, completed bool) error {
	if _, err := s.ownedWorkout(ctx, actor, workoutID); err != nil {
		return err
	}
	updated, err := s.workoutRepo.SetCompleted(ctx, workoutID, completed)
	if err != nil {
		return err
	}
	if !updated {
		return ErrNotFound
	}
	return nil
}

func (s *WorkoutService) DeleteWorkout(ctx context.Context, actor Actor, workoutID int64) error {
	if _, err := s.ownedWorkout(ctx, actor, workoutID); err != nil {
		return err
	}
	deleted, err := s.workoutRepo.Delete(ctx, workoutID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}

func (s *WorkoutService) AddWorkoutComment(ctx context.Context, actor Actor, workoutID int64, author, message string) (*models.Comment, error) {
	if _, err := s.ownedWorkout(ctx, actor, workoutID); err != nil {
		return nil, err
	}
	comment := models.Comment{Author: author, Message: message, Timestamp: time.Now().UTC()}
	if err := comment.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidation, err)
	}
	added, err := s.workoutRepo.AddComment(ctx, workoutID, comment)
	if err != nil {
		return nil, err
	}
	if !added {
		return nil, ErrNotFound
	}
	return &comment, nil
}

func (s *WorkoutService) Progress(ctx context.Context, actor Actor, workoutID int64) (*models.WorkoutProgress, error) {
	if _, err := s.ownedWorkout(ctx, actor, workoutID); err != nil {
		return nil, err
	}
	return s.workoutRepo.Progress(ctx, workoutID)
}

func (s *WorkoutService) UserStats(ctx context.Context, actor Actor, userID int64) (*models.UserStats, error) {
	if userID != actor.ID && !actor.isAdmin() {
		return nil, ErrForbidden
	}
	return s.workoutRepo.UserStats(ctx, userID)
}

// AddSet attaches a set to an existing workout. Workout creation and
// set creation are independent commits; there is no spanning
// transaction (see DESIGN.md).
func (s *WorkoutService) AddSet(ctx context.Context, actor Actor, workoutID int64, input SetInput) (*models.ExerciseSet, error) {
	if _, err := s.ownedWorkout(ctx, actor, workoutID); err != nil {
		return nil, err
	}
	set := &models.ExerciseSet{
		WorkoutID:   workoutID,
		ExerciseID:  input.ExerciseID,
		SetOrder:    input.SetOrder,
		Reps:        input.Reps,
		WeightKG:    input.WeightKG,
		DurationS:   input.DurationS,
		DistanceM:   input.DistanceM,
		RestSeconds: input.RestSeconds,
		Completed:   input.Completed,
	}
	if err := set.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidation, err)
	}
	if err := s.setRepo.Create(ctx, set); err != nil {
		return nil, err
	}
	return set, nil
}

func (s *WorkoutService) UpdateSet(ctx context.Context, actor Actor, setID int64, input SetInput) (*models.ExerciseSet, error) {
	set, err := s.ownedSet(ctx, actor, setID)
	if err != nil {
		return nil, err
	}
	set.SetOrder = input.SetOrder
	set.Reps = input.Reps
	set.WeightKG = input.WeightKG
	set.DurationS = input.DurationS
	set.DistanceM = input.DistanceM
	set.RestSeconds = input.RestSeconds
	set.Completed = input.Completed
	if err := set.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidation, err)
	}
	if err := s.setRepo.Update(ctx, set); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return set, nil
}

func (s *WorkoutService) CompleteSet(ctx context.Context, actor Actor, setID int64, completed bool) error {
	if _, err := s.ownedSet(ctx, actor, setID); err != nil {
		return err
	}
	updated, err := s.setRepo.SetCompleted(ctx, setID, completed)
	if err != nil {
		return err
	}
	if !updated {
		return ErrNotFound
	}
	return nil
}

func (s *WorkoutService) DeleteSet(ctx context.Context, actor Actor, setID int64) error {
	if _, err := s.ownedSet(ctx, actor, setID); err != nil {
		return err
	}
	deleted, err := s.setRepo.Delete(ctx, setID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}

func (s *WorkoutService) AddSetComment(ctx context.Context, actor Actor, setID int64, author, message string) (*models.Comment, error) {
	if _, err := s.ownedSet(ctx, actor, setID); err != nil {
		return nil, err
	}
	comment := models.Comment{Author: author, Message: message, Timestamp: time.Now().UTC()}
	if err := comment.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidation, err)
	}
	added, err := s.setRepo.AddComment(ctx, setID, comment)
	if err != nil {
		return nil, err
	}
	if !added {
		return nil, ErrNotFound
	}
	return &comment, nil
}

func (s *WorkoutService) ownedWorkout(ctx context.Context, actor Actor, workoutID int64) (*models.Workout, error) {
	workout, err := s.workoutRepo.GetByID(ctx, workoutID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if workout.UserID != actor.ID && !actor.isAdmin() {
		return nil, ErrForbidden
	}
	return workout, nil
}

func (s *WorkoutService) ownedSet(ctx context.Context, actor Actor, setID int64) (*models.ExerciseSet, error) {
	set, err := s.setRepo.GetByID(ctx, setID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if _, err := s.ownedWorkout(ctx, actor, set.WorkoutID); err != nil {
		return nil, err
	}
	return set, nil
}
