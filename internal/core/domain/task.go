package domain

import "time"

// Task is a unit of work assigned to a user. AssignedTo and CreatedBy are
// soft references (username and user id); referential validity is enforced by
// the invariant checker at mutation time, not by the store.
type Task struct {
	ID          string    `json:"id"`
	TaskName    string    `json:"task_name"`
	Description string    `json:"description"`
	LimitDate   time.Time `json:"limit_date"`
	IsCompleted bool      `json:"is_completed"`
	AssignedTo  string    `json:"assigned_to"`
	CreatedBy   string    `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
}
