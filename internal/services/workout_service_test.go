package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/ABeGood/klim-fit/internal/models"
)

type fakeWorkoutStore struct {
	workouts map[int64]*models.Workout
	progress *models.WorkoutProgress
	stats    *models.UserStats
	nextID   int64
}

func newFakeWorkoutStore() *fakeWorkoutStore {
	return &fakeWorkoutStore{workouts: map[int64]*models.Workout{}, nextID: 1}
}

func (f *fakeWorkoutStore) Create(_ context.Context, workout *models.Workout) error {
	workout.ID = f.nextID
	f.nextID++
	f.workouts[workout.ID] = workout
	return nil
}

func (f *fakeWorkoutStore) GetByID(_ context.Context, id int64) (*models.Workout, error) {
	workout, ok := f.workouts[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return workout, nil
}

func (f *fakeWorkoutStore) ListByUserID(_ context.Context, userID int64) ([]models.Workout, error) {
	out := make([]models.Workout, 0)
	for _, workout := range f.workouts {
		if workout.UserID == userID {
			out = append(out, *workout)
		}
	}
	return out, nil
}

func (f *fakeWorkoutStore) Update(_ context.Context, workout *models.Workout) error {
	if _, ok := f.workouts[workout.ID]; !ok {
		return pgx.ErrNoRows
	}
	f.workouts[workout.ID] = workout
	return nil
}

func (f *fakeWorkoutStore) SetCompleted(_ context.Context, id int64, completed bool) (bool, error) {
	workout, ok := f.workouts[id]
	if !ok {
		return false, nil
	}
	workout.Completed = completed
	return true, nil
}

func (f *fakeWorkoutStore) Delete(_ context.Context, id int64) (bool, error) {
	if _, ok := f.workouts[id]; !ok {
		return false, nil
	}
	delete(f.workouts, id)
	return true, nil
}

func (f *fakeWorkoutStore) AddComment(_ context.Context, id int64, comment models.Comment) (bool, error) {
	workout, ok := f.workouts[id]
	if !ok {
		return false, nil
	}
	workout.Comments = append(workout.Comments, comment)
	return true, nil
}

func (f *fakeWorkoutStore) Progress(_ context.Context, id int64) (*models.WorkoutProgress, error) {
	return f.progress, nil
}

func (f *fakeWorkoutStore) UserStats(_ context.Context, userID int64) (*models.UserStats, error) {
	return f.stats, nil
}

type fakeSetStore struct {
	sets   map[int64]*models.ExerciseSet
	nextID int64
}

func newFakeSetStore() *fakeSetStore {
	return &fakeSetStore{sets: map[int64]*models.ExerciseSet{}, nextID: 1}
}

func (f *fakeSetStore) Create(_ context.Context, set *models.ExerciseSet) error {
	set.ID = f.nextID
	f.nextID++
	f.sets[set.ID] = set
	return nil
}

func (f *fakeSetStore) GetByID(_ context.Context, id int64) (*models.ExerciseSet, error) {
	set, ok := f.sets[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return set, nil
}

func (f *fakeSetStore) ListByWorkoutID(_ context.Context, workoutID int64) ([]models.ExerciseSetDetail, error) {
	out := make([]models.ExerciseSetDetail, 0)
	for _, set := range f.sets {
		if set.WorkoutID == workoutID {
			out = append(out, models.ExerciseSetDetail{ExerciseSet: *set})
		}
	}
	return out, nil
}

func (f *fakeSetStore) Update(_ context.Context, set *models.ExerciseSet) error {
	if _, ok := f.sets[set.ID]; !ok {
		return pgx.ErrNoRows
	}
	f.sets[set.ID] = set
	return nil
}

func (f *fakeSetStore) SetCompleted(_ context.Context, id int64, completed bool) (bool, error) {
	set, ok := f.sets[id]
	if !ok {
		return false, nil
	}
	set.Completed = completed
	return true, nil
}

func (f *fakeSetStore) Delete(_ context.Context, id int64) (bool, error) {
	if _, ok := f.sets[id]; !ok {
		return false, nil
	}
	delete(f.sets, id)
	return true, nil
}

func (f *fakeSetStore) AddComment(_ context.Context, id int64, comment models.Comment) (bool, error) {
	set, ok := f.sets[id]
	if !ok {
		return false, nil
	}
	set.Comments = append(set.Comments, comment)
	return true, nil
}

var (
	owner    = Actor{ID: 1, Role: "user"}
	stranger = Actor{ID: 2, Role: "user"}
	admin    = Actor{ID: 1, Role: "admin"}
)

func seededWorkoutService() (*WorkoutService, *fakeWorkoutStore, *fakeSetStore) {
	workouts := newFakeWorkoutStore()
	sets := newFakeSetStore()
	workouts.workouts[10] = &models.Workout{ID: 10, UserID: 1, Name: "Leg day"}
	workouts.nextID = 11
	reps := 12
	sets.sets[20] = &models.ExerciseSet{ID: 20, WorkoutID: 10, ExerciseID: 3, SetOrder: 1, Reps: &reps}
	sets.nextID = 21
	return NewWorkoutService(workouts, sets), workouts, sets
}

func TestCreateWorkoutForSelf(t *testing.T) {
	svc, workouts, _ := seededWorkoutService()

	workout, err := svc.CreateWorkout(context.Background(), owner, 1, WorkoutInput{Name: "  Push day  "})
	if err != nil {
		t.Fatalf("CreateWorkout: %v", err)
	}
	if workout.Name != "Push day" {
		t.Fatalf("expected trimmed name, got %q", workout.Name)
	}
	if _, ok := workouts.workouts[workout.ID]; !ok {
		t.Fatal("workout was not persisted")
	}
}

func TestCreateWorkoutForOtherUserForbidden(t *testing.T) {
	svc, _, _ := seededWorkoutService()

	_, err := svc.CreateWorkout(context.Background(), stranger, 1, WorkoutInput{Name: "Push day"})
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestAdminCreatesWorkoutForAnyUser(t *testing.T) {
	svc, _, _ := seededWorkoutService()

	if _, err := svc.CreateWorkout(context.Background(), admin, 7, WorkoutInput{Name: "Push day"}); err != nil {
		t.Fatalf("admin CreateWorkout: %v", err)
	}
}

func TestCreateWorkoutValidates(t *testing.T) {
	svc, _, _ := seededWorkoutService()

	_, err := svc.CreateWorkout(context.Background(), owner, 1, WorkoutInput{Name: "   "})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestGetWorkoutOwnership(t *testing.T) {
	svc, _, _ := seededWorkoutService()

	if _, _, err := svc.GetWorkout(context.Background(), owner, 10); err != nil {
		t.Fatalf("owner GetWorkout: %v", err)
	}
	if _, _, err := svc.GetWorkout(context.Background(), stranger, 10); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if _, _, err := svc.GetWorkout(context.Background(), admin, 10); err != nil {
		t.Fatalf("admin GetWorkout: %v", err)
	}
	if _, _, err := svc.GetWorkout(context.Background(), owner, 404); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGetWorkoutReturnsSets(t *testing.T) {
	svc, _, _ := seededWorkoutService()

	_, sets, err := svc.GetWorkout(context.Background(), owner, 10)
	if err != nil {
		t.Fatalf("GetWorkout: %v", err)
	}
	if len(sets) != 1 || sets[0].ID != 20 {
		t.Fatalf("unexpected sets: %+v", sets)
	}
}

func TestUpdateWorkoutMapsMissingRow(t *testing.T) {
	svc, _, _ := seededWorkoutService()

	_, err := svc.UpdateWorkout(context.Background(), owner, 404, WorkoutInput{Name: "Push day"})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCompleteWorkout(t *testing.T) {
	svc, workouts, _ := seededWorkoutService()

	if err := svc.CompleteWorkout(context.Background(), owner, 10, true); err != nil {
		t.Fatalf("CompleteWorkout: %v", err)
	}
	if !workouts.workouts[10].Completed {
		t.Fatal("workout was not marked completed")
	}
	if err := svc.CompleteWorkout(context.Background(), owner, 10, false); err != nil {
		t.Fatalf("un-complete: %v", err)
	}
	if workouts.workouts[10].Completed {
		t.Fatal("workout was not reverted")
	}
}

func TestCompleteWorkoutForbiddenForStranger(t *testing.T) {
	svc, _, _ := seededWorkoutService()

	if err := svc.CompleteWorkout(context.Background(), stranger, 10, true); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if err := svc.CompleteWorkout(context.Background(), owner, 404, true); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteWorkoutForbiddenForStranger(t *testing.T) {
	svc, workouts, _ := seededWorkoutService()

	if err := svc.DeleteWorkout(context.Background(), stranger, 10); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if _, ok := workouts.workouts[10]; !ok {
		t.Fatal("workout must survive a forbidden delete")
	}
}

func TestAddWorkoutCommentStampsTimestamp(t *testing.T) {
	svc, workouts, _ := seededWorkoutService()

	before := time.Now().UTC()
	comment, err := svc.AddWorkoutComment(context.Background(), owner, 10, "Anna", "Felt strong")
	if err != nil {
		t.Fatalf("AddWorkoutComment: %v", err)
	}
	if comment.Timestamp.Before(before) {
		t.Fatalf("timestamp not stamped: %v", comment.Timestamp)
	}
	if len(workouts.workouts[10].Comments) != 1 {
		t.Fatal("comment was not appended")
	}
}

func TestAddWorkoutCommentValidates(t *testing.T) {
	svc, _, _ := seededWorkoutService()

	_, err := svc.AddWorkoutComment(context.Background(), owner, 10, "Anna", "")
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestUserStatsForbiddenForOtherUser(t *testing.T) {
	svc, workouts, _ := seededWorkoutService()
	workouts.stats = &models.UserStats{UserID: 1, TotalWorkouts: 4}

	if _, err := svc.UserStats(context.Background(), stranger, 1); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	stats, err := svc.UserStats(context.Background(), admin, 1)
	if err != nil {
		t.Fatalf("admin UserStats: %v", err)
	}
	if stats.TotalWorkouts != 4 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}

func TestAddSetValidates(t *testing.T) {
	svc, _, _ := seededWorkoutService()

	_, err := svc.AddSet(context.Background(), owner, 10, SetInput{ExerciseID: 3, SetOrder: 0})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestAddSetToOwnWorkout(t *testing.T) {
	svc, _, sets := seededWorkoutService()

	reps := 8
	set, err := svc.AddSet(context.Background(), owner, 10, SetInput{ExerciseID: 3, SetOrder: 2, Reps: &reps})
	if err != nil {
		t.Fatalf("AddSet: %v", err)
	}
	if set.WorkoutID != 10 {
		t.Fatalf("expected workout id 10, got %d", set.WorkoutID)
	}
	if _, ok := sets.sets[set.ID]; !ok {
		t.Fatal("set was not persisted")
	}
}

func TestSetOpsCheckOwnershipThroughWorkout(t *testing.T) {
	svc, _, _ := seededWorkoutService()

	if err := svc.CompleteSet(context.Background(), stranger, 20, true); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if err := svc.DeleteSet(context.Background(), stranger, 20); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if err := svc.CompleteSet(context.Background(), owner, 404, true); err == nil {
		t.Fatal("expected error for missing set")
	}
}

func TestCompleteSet(t *testing.T) {
	svc, _, sets := seededWorkoutService()

	if err := svc.CompleteSet(context.Background(), owner, 20, true); err != nil {
		t.Fatalf("CompleteSet: %v", err)
	}
	if !sets.sets[20].Completed {
		t.Fatal("set was not marked completed")
	}
	if err := svc.CompleteSet(context.Background(), owner, 20, false); err != nil {
		t.Fatalf("un-complete: %v", err)
	}
	if sets.sets[20].Completed {
		t.Fatal("set was not reverted")
	}
}

func TestAddSetComment(t *testing.T) {
	svc, _, sets := seededWorkoutService()

	if _, err := svc.AddSetComment(context.Background(), owner, 20, "Anna", "Too heavy"); err != nil {
		t.Fatalf("AddSetComment: %v", err)
	}
	if len(sets.sets[20].Comments) != 1 {
		t.Fatal("comment was not appended")
	}
}
