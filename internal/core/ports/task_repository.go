package ports

import (
	"context"
	"time"

	"github.com/FelisbertoSilva/RHProjeto/internal/core/domain"
)

// TaskRepository defines persistence operations on tasks.
type TaskRepository interface {
	Insert(ctx context.Context, task *domain.Task) (*domain.Task, error)
	FindByID(ctx context.Context, id string) (*domain.Task, error)
	FindAll(ctx context.Context) ([]*domain.Task, error)
	FindByAssignee(ctx context.Context, username string) ([]*domain.Task, error)
	// FindByAssignees returns the tasks assigned to any of the usernames.
	FindByAssignees(ctx context.Context, usernames []string) ([]*domain.Task, error)
	// FindDueBetween returns tasks whose limit date falls in [from, to).
	FindDueBetween(ctx context.Context, from, to time.Time) ([]*domain.Task, error)
	Update(ctx context.Context, task *domain.Task) error
}
