package models

// WorkoutProgress summarizes set completion within one workout. A
// workout with no sets reports zeroes, never a division fault.
type WorkoutProgress struct {
	WorkoutID     int64   `json:"workout_id"`
	TotalSets     int     `json:"total_sets"`
	CompletedSets int     `json:"completed_sets"`
	Percentage    float64 `json:"percentage"`
	Complete      bool    `json:"complete"`
}

// UserStats summarizes workout completion for one user.
type UserStats struct {
	UserID            int64   `json:"user_id"`
	TotalWorkouts     int     `json:"total_workouts"`
	CompletedWorkouts int     `json:"completed_workouts"`
	PendingWorkouts   int     `json:"pending_workouts"`
	CompletionRate    float64 `json:"completion_rate"`
}
