package ports

import (
	"context"
	"time"

	"github.com/FelisbertoSilva/RHProjeto/internal/core/authz"
	"github.com/FelisbertoSilva/RHProjeto/internal/core/domain"
)

// CreateTaskInput carries a task creation request.
type CreateTaskInput struct {
	TaskName    string
	Description string
	LimitDate   time.Time
	IsCompleted bool
	AssignedTo  string
}

// UpdateTaskInput carries a partial task update. Which submitted fields take
// effect depends on the actor's capabilities (see authz.FilterTaskUpdate).
type UpdateTaskInput struct {
	TaskName    *string
	Description *string
	LimitDate   *time.Time
	IsCompleted *bool
}

// TaskService covers task operations, all authorized against the acting
// identity. Listing is scoped: Admins see everything, Managers see their
// department's tasks, Employees only fetch their own.
type TaskService interface {
	Create(ctx context.Context, actor authz.Actor, in CreateTaskInput) (*domain.Task, error)
	GetByID(ctx context.Context, actor authz.Actor, id string) (*domain.Task, error)
	List(ctx context.Context, actor authz.Actor) ([]*domain.Task, error)
	ListByAssignee(ctx context.Context, actor authz.Actor, username string) ([]*domain.Task, error)
	// ListDueNextWeek returns tasks due within the next seven days, scoped
	// like List but additionally allowing Employees to see their own.
	ListDueNextWeek(ctx context.Context, actor authz.Actor) ([]*domain.Task, error)
	Update(ctx context.Context, actor authz.Actor, id string, in UpdateTaskInput) (*domain.Task, error)
}
