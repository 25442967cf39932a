package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/FelisbertoSilva/RHProjeto/internal/core/authz"
	"github.com/FelisbertoSilva/RHProjeto/internal/core/domain"
	"github.com/FelisbertoSilva/RHProjeto/internal/core/invariant"
	"github.com/FelisbertoSilva/RHProjeto/internal/core/ports"
)

const dueSoonWindow = 7 * 24 * time.Hour

// TaskService implements task operations. Manager visibility is computed by
// resolving their department's membership first, then filtering by
// assignee-in-set.
type TaskService struct {
	tasks   ports.TaskRepository
	users   ports.UserRepository
	checker *invariant.Checker
	now     func() time.Time
	logger  zerolog.Logger
}

// NewTaskService returns a TaskService. A nil clock defaults to time.Now.
func NewTaskService(tasks ports.TaskRepository, users ports.UserRepository, checker *invariant.Checker, now func() time.Time, logger zerolog.Logger) *TaskService {
	if now == nil {
		now = time.Now
	}
	return &TaskService{tasks: tasks, users: users, checker: checker, now: now, logger: logger}
}

func (s *TaskService) Create(ctx context.Context, actor authz.Actor, in ports.CreateTaskInput) (*domain.Task, error) {
	if d := authz.Can(actor, authz.ActionTaskCreate, authz.Target{}); !d.Allowed {
		return nil, denied(d)
	}
	if err := s.checker.CheckLimitDate(in.LimitDate); err != nil {
		return nil, err
	}
	assignee, err := s.checker.CheckAssignee(ctx, in.AssignedTo)
	if err != nil {
		return nil, err
	}

	task, err := s.tasks.Insert(ctx, &domain.Task{
		TaskName:    in.TaskName,
		Description: in.Description,
		LimitDate:   in.LimitDate.UTC(),
		IsCompleted: in.IsCompleted,
		AssignedTo:  assignee.Username,
		CreatedBy:   actor.ID,
		CreatedAt:   s.now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("task", task.ID).Str("assigned_to", task.AssignedTo).Str("actor", actor.Username).Msg("task created")
	return task, nil
}

// taskTarget resolves the assignee's department so Manager scope checks can
// apply. A dangling assignee reference leaves the department empty, which
// denies Manager access and still admits Admins.
func (s *TaskService) taskTarget(ctx context.Context, task *domain.Task) authz.Target {
	target := authz.Target{Username: task.AssignedTo}
	if assignee, err := s.users.FindByUsername(ctx, task.AssignedTo); err == nil {
		target.Department = assignee.Department
	}
	return target
}

func (s *TaskService) GetByID(ctx context.Context, actor authz.Actor, id string) (*domain.Task, error) {
	task, err := s.tasks.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if d := authz.Can(actor, authz.ActionTaskView, s.taskTarget(ctx, task)); !d.Allowed {
		return nil, denied(d)
	}
	return task, nil
}

func (s *TaskService) List(ctx context.Context, actor authz.Actor) ([]*domain.Task, error) {
	if d := authz.Can(actor, authz.ActionTaskList, authz.Target{}); !d.Allowed {
		return nil, denied(d)
	}
	if actor.Role == domain.RoleManager {
		usernames, err := s.departmentMembers(ctx, actor.Department)
		if err != nil {
			return nil, err
		}
		return s.tasks.FindByAssignees(ctx, usernames)
	}
	return s.tasks.FindAll(ctx)
}

func (s *TaskService) ListByAssignee(ctx context.Context, actor authz.Actor, username string) ([]*domain.Task, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	target := authz.Target{Username: user.Username, Department: user.Department}
	if d := authz.Can(actor, authz.ActionTaskListByUser, target); !d.Allowed {
		return nil, denied(d)
	}
	return s.tasks.FindByAssignee(ctx, user.Username)
}

// ListDueNextWeek returns tasks due within the next seven days: all of them
// for Admins, the department's for Managers, the actor's own for Employees.
func (s *TaskService) ListDueNextWeek(ctx context.Context, actor authz.Actor) ([]*domain.Task, error) {
	from := s.now().UTC()
	tasks, err := s.tasks.FindDueBetween(ctx, from, from.Add(dueSoonWindow))
	if err != nil {
		return nil, err
	}

	switch actor.Role {
	case domain.RoleAdmin:
		return tasks, nil
	case domain.RoleManager:
		usernames, err := s.departmentMembers(ctx, actor.Department)
		if err != nil {
			return nil, err
		}
		return filterByAssignee(tasks, usernames), nil
	case domain.RoleEmployee:
		return filterByAssignee(tasks, []string{actor.Username}), nil
	}
	return nil, denied(authz.Decision{Reason: "role has no permissions"})
}

func (s *TaskService) Update(ctx context.Context, actor authz.Actor, id string, in ports.UpdateTaskInput) (*domain.Task, error) {
	task, err := s.tasks.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	var submitted []authz.Field
	if in.TaskName != nil {
		submitted = append(submitted, authz.FieldTaskName)
	}
	if in.Description != nil {
		submitted = append(submitted, authz.FieldDescription)
	}
	if in.LimitDate != nil {
		submitted = append(submitted, authz.FieldLimitDate)
	}
	if in.IsCompleted != nil {
		submitted = append(submitted, authz.FieldIsCompleted)
	}

	res, d := authz.FilterTaskUpdate(actor, s.taskTarget(ctx, task), submitted)
	if !d.Allowed {
		return nil, denied(d)
	}

	if res.Has(authz.FieldLimitDate) {
		if err := s.checker.CheckLimitDate(*in.LimitDate); err != nil {
			return nil, err
		}
		task.LimitDate = in.LimitDate.UTC()
	}
	if res.Has(authz.FieldTaskName) {
		task.TaskName = *in.TaskName
	}
	if res.Has(authz.FieldDescription) {
		task.Description = *in.Description
	}
	if res.Has(authz.FieldIsCompleted) {
		task.IsCompleted = *in.IsCompleted
	}

	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, err
	}

	s.logger.Info().Str("task", task.ID).Str("actor", actor.Username).Msg("task updated")
	return task, nil
}

func (s *TaskService) departmentMembers(ctx context.Context, department string) ([]string, error) {
	members, err := s.users.FindByDepartment(ctx, department)
	if err != nil {
		return nil, err
	}
	usernames := make([]string, 0, len(members))
	for _, m := range members {
		usernames = append(usernames, m.Username)
	}
	return usernames, nil
}

func filterByAssignee(tasks []*domain.Task, usernames []string) []*domain.Task {
	allowed := make(map[string]struct{}, len(usernames))
	for _, u := range usernames {
		allowed[u] = struct{}{}
	}
	out := make([]*domain.Task, 0, len(tasks))
	for _, t := range tasks {
		if _, ok := allowed[t.AssignedTo]; ok {
			out = append(out, t)
		}
	}
	return out
}
