package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/FelisbertoSilva/RHProjeto/internal/core/domain"
)

// In-memory repository stubs shared by the service tests.

type stubUserRepo struct {
	users  map[string]*domain.User
	nextID int
}

func newStubUserRepo(users ...*domain.User) *stubUserRepo {
	r := &stubUserRepo{users: make(map[string]*domain.User)}
	for _, u := range users {
		if u.ID == "" {
			u.ID = u.Username
		}
		r.users[u.Username] = cloneUser(u)
	}
	return r
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Insert(_ context.Context, u *domain.User) (*domain.User, error) {
	if _, exists := r.users[u.Username]; exists {
		return nil, domain.ErrUserExists
	}
	for _, existing := range r.users {
		if existing.NIF == u.NIF {
			return nil, domain.ErrNIFExists
		}
	}
	copy := cloneUser(u)
	r.nextID++
	copy.ID = fmt.Sprintf("u%d", r.nextID)
	r.users[copy.Username] = copy
	return cloneUser(copy), nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	if u, ok := r.users[username]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByNIF(_ context.Context, nif string) (*domain.User, error) {
	for _, u := range r.users {
		if u.NIF == nif {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindAll(_ context.Context) ([]*domain.User, error) {
	out := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, cloneUser(u))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *stubUserRepo) FindByDepartment(_ context.Context, department string) ([]*domain.User, error) {
	var out []*domain.User
	for _, u := range r.users {
		if domain.SameDepartment(u.Department, department) {
			out = append(out, cloneUser(u))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *stubUserRepo) CountByDepartment(_ context.Context, department string) (int64, error) {
	var n int64
	for _, u := range r.users {
		if domain.SameDepartment(u.Department, department) {
			n++
		}
	}
	return n, nil
}

func (r *stubUserRepo) Update(_ context.Context, u *domain.User) error {
	if _, ok := r.users[u.Username]; !ok {
		return domain.ErrUserNotFound
	}
	r.users[u.Username] = cloneUser(u)
	return nil
}

func (r *stubUserRepo) Delete(_ context.Context, username string) error {
	delete(r.users, username)
	return nil
}

func (r *stubUserRepo) RenameDepartment(_ context.Context, oldName, newName string) (int64, error) {
	var n int64
	for _, u := range r.users {
		if domain.SameDepartment(u.Department, oldName) {
			u.Department = newName
			n++
		}
	}
	return n, nil
}

type stubCredRepo struct {
	hashes   map[string]string
	failNext bool
}

func newStubCredRepo() *stubCredRepo {
	return &stubCredRepo{hashes: make(map[string]string)}
}

func (r *stubCredRepo) Store(_ context.Context, username, hash string) error {
	if r.failNext {
		r.failNext = false
		return fmt.Errorf("credential store unavailable")
	}
	if _, exists := r.hashes[username]; exists {
		return domain.ErrUserExists
	}
	r.hashes[username] = hash
	return nil
}

func (r *stubCredRepo) FindHash(_ context.Context, username string) (string, error) {
	if h, ok := r.hashes[username]; ok {
		return h, nil
	}
	return "", domain.ErrUserNotFound
}

func (r *stubCredRepo) UpdateHash(_ context.Context, username, hash string) error {
	if _, ok := r.hashes[username]; !ok {
		return domain.ErrUserNotFound
	}
	r.hashes[username] = hash
	return nil
}

type stubDeptRepo struct {
	depts map[string]*domain.Department
}

func newStubDeptRepo(depts ...*domain.Department) *stubDeptRepo {
	r := &stubDeptRepo{depts: make(map[string]*domain.Department)}
	for _, d := range depts {
		r.depts[domain.NormalizeDepartmentName(d.Name)] = cloneDept(d)
	}
	return r
}

func cloneDept(d *domain.Department) *domain.Department {
	if d == nil {
		return nil
	}
	clone := *d
	clone.Employees = append([]string(nil), d.Employees...)
	return &clone
}

func (r *stubDeptRepo) Insert(_ context.Context, d *domain.Department) (*domain.Department, error) {
	key := domain.NormalizeDepartmentName(d.Name)
	if _, exists := r.depts[key]; exists {
		return nil, domain.ErrDepartmentExists
	}
	copy := cloneDept(d)
	copy.ID = key
	r.depts[key] = copy
	return cloneDept(copy), nil
}

func (r *stubDeptRepo) FindByName(_ context.Context, name string) (*domain.Department, error) {
	if d, ok := r.depts[domain.NormalizeDepartmentName(name)]; ok {
		return cloneDept(d), nil
	}
	return nil, domain.ErrDepartmentNotFound
}

func (r *stubDeptRepo) FindAll(_ context.Context) ([]*domain.Department, error) {
	out := make([]*domain.Department, 0, len(r.depts))
	for _, d := range r.depts {
		out = append(out, cloneDept(d))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *stubDeptRepo) FindByManager(_ context.Context, manager string) ([]*domain.Department, error) {
	var out []*domain.Department
	for _, d := range r.depts {
		if d.ManagerUsername == manager {
			out = append(out, cloneDept(d))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *stubDeptRepo) Update(_ context.Context, name string, d *domain.Department) (*domain.Department, error) {
	key := domain.NormalizeDepartmentName(name)
	if _, ok := r.depts[key]; !ok {
		return nil, domain.ErrDepartmentNotFound
	}
	delete(r.depts, key)
	copy := cloneDept(d)
	r.depts[domain.NormalizeDepartmentName(d.Name)] = copy
	return cloneDept(copy), nil
}

func (r *stubDeptRepo) Delete(_ context.Context, name string) error {
	key := domain.NormalizeDepartmentName(name)
	if _, ok := r.depts[key]; !ok {
		return domain.ErrDepartmentNotFound
	}
	delete(r.depts, key)
	return nil
}

type stubTaskRepo struct {
	tasks  map[string]*domain.Task
	nextID int
}

func newStubTaskRepo(tasks ...*domain.Task) *stubTaskRepo {
	r := &stubTaskRepo{tasks: make(map[string]*domain.Task)}
	for _, task := range tasks {
		if task.ID == "" {
			r.nextID++
			task.ID = fmt.Sprintf("t%d", r.nextID)
		}
		r.tasks[task.ID] = cloneTask(task)
	}
	return r
}

func cloneTask(task *domain.Task) *domain.Task {
	if task == nil {
		return nil
	}
	clone := *task
	return &clone
}

func (r *stubTaskRepo) Insert(_ context.Context, task *domain.Task) (*domain.Task, error) {
	copy := cloneTask(task)
	r.nextID++
	copy.ID = fmt.Sprintf("t%d", r.nextID)
	r.tasks[copy.ID] = copy
	return cloneTask(copy), nil
}

func (r *stubTaskRepo) FindByID(_ context.Context, id string) (*domain.Task, error) {
	if task, ok := r.tasks[id]; ok {
		return cloneTask(task), nil
	}
	return nil, domain.ErrTaskNotFound
}

func (r *stubTaskRepo) FindAll(_ context.Context) ([]*domain.Task, error) {
	out := make([]*domain.Task, 0, len(r.tasks))
	for _, task := range r.tasks {
		out = append(out, cloneTask(task))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubTaskRepo) FindByAssignee(_ context.Context, username string) ([]*domain.Task, error) {
	return r.FindByAssignees(context.Background(), []string{username})
}

func (r *stubTaskRepo) FindByAssignees(_ context.Context, usernames []string) ([]*domain.Task, error) {
	allowed := make(map[string]struct{}, len(usernames))
	for _, u := range usernames {
		allowed[u] = struct{}{}
	}
	var out []*domain.Task
	for _, task := range r.tasks {
		if _, ok := allowed[task.AssignedTo]; ok {
			out = append(out, cloneTask(task))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubTaskRepo) FindDueBetween(_ context.Context, from, to time.Time) ([]*domain.Task, error) {
	var out []*domain.Task
	for _, task := range r.tasks {
		if !task.LimitDate.Before(from) && task.LimitDate.Before(to) {
			out = append(out, cloneTask(task))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubTaskRepo) Update(_ context.Context, task *domain.Task) error {
	if _, ok := r.tasks[task.ID]; !ok {
		return domain.ErrTaskNotFound
	}
	r.tasks[task.ID] = cloneTask(task)
	return nil
}

type stubRevoker struct {
	revoked []string
	err     error
}

func (r *stubRevoker) Revoke(_ context.Context, username string) error {
	if r.err != nil {
		return r.err
	}
	r.revoked = append(r.revoked, username)
	return nil
}
