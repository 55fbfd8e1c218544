package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"taskflow/internal/domain"
	"taskflow/internal/pkg/logger"
)

// in-memory repositories mirroring the guarded-update semantics of the
// postgres implementations

type fakeUserRepo struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[int64]*domain.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrEmailExists
		}
	}

	r.nextID++
	now := time.Now()
	stored := *user
	stored.ID = r.nextID
	stored.CreatedAt = &now
	r.users[stored.ID] = &stored

	copied := stored
	return &copied, nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *fakeUserRepo) ListAll(_ context.Context) ([]*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	users := []*domain.User{}
	for _, u := range r.users {
		copied := *u
		users = append(users, &copied)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (r *fakeUserRepo) ListByManager(_ context.Context, managerID int64) ([]*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	users := []*domain.User{}
	for _, u := range r.users {
		if u.ManagerID != nil && *u.ManagerID == managerID {
			copied := *u
			users = append(users, &copied)
		}
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (r *fakeUserRepo) ExistsByRole(_ context.Context, role domain.Role) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Role == role {
			return true, nil
		}
	}
	return false, nil
}

type fakeTaskRepo struct {
	mu     sync.Mutex
	nextID int64
	tasks  map[int64]*domain.Task
	clock  time.Time
}

func newFakeTaskRepo() *fakeTaskRepo {
	return &fakeTaskRepo{
		tasks: make(map[int64]*domain.Task),
		clock: time.Now(),
	}
}

func (r *fakeTaskRepo) tick() time.Time {
	r.clock = r.clock.Add(time.Second)
	return r.clock
}

func (r *fakeTaskRepo) Create(_ context.Context, task *domain.Task) (*domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	now := r.tick()
	stored := *task
	stored.ID = r.nextID
	stored.Status = domain.TaskStatusOpen
	stored.CreatedAt = &now
	r.tasks[stored.ID] = &stored

	copied := stored
	return &copied, nil
}

func (r *fakeTaskRepo) GetByID(_ context.Context, id int64) (*domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	task, ok := r.tasks[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	copied := *task
	return &copied, nil
}

func (r *fakeTaskRepo) ListByCreator(_ context.Context, managerID int64) ([]*domain.Task, error) {
	return r.listWhere(func(t *domain.Task) bool { return t.CreatedBy == managerID })
}

func (r *fakeTaskRepo) ListByAssignee(_ context.Context, executantID int64) ([]*domain.Task, error) {
	return r.listWhere(func(t *domain.Task) bool {
		return t.AssignedTo != nil && *t.AssignedTo == executantID
	})
}

func (r *fakeTaskRepo) listWhere(match func(*domain.Task) bool) ([]*domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	tasks := []*domain.Task{}
	for _, t := range r.tasks {
		if match(t) {
			copied := *t
			tasks = append(tasks, &copied)
		}
	}
	// most recently created first, id as tie-break
	sort.Slice(tasks, func(i, j int) bool {
		if !tasks[i].CreatedAt.Equal(*tasks[j].CreatedAt) {
			return tasks[i].CreatedAt.After(*tasks[j].CreatedAt)
		}
		return tasks[i].ID > tasks[j].ID
	})
	return tasks, nil
}

func (r *fakeTaskRepo) Assign(_ context.Context, taskID, executantID int64) (*domain.Task, error) {
	return r.transition(taskID, domain.TaskStatusOpen, func(t *domain.Task, now time.Time) {
		t.AssignedTo = &executantID
		t.Status = domain.TaskStatusPending
		t.AssignedAt = &now
	})
}

func (r *fakeTaskRepo) Complete(_ context.Context, taskID int64) (*domain.Task, error) {
	return r.transition(taskID, domain.TaskStatusPending, func(t *domain.Task, now time.Time) {
		t.Status = domain.TaskStatusCompleted
		t.CompletedAt = &now
	})
}

func (r *fakeTaskRepo) Close(_ context.Context, taskID int64) (*domain.Task, error) {
	return r.transition(taskID, domain.TaskStatusCompleted, func(t *domain.Task, now time.Time) {
		t.Status = domain.TaskStatusClosed
		t.ClosedAt = &now
	})
}

func (r *fakeTaskRepo) transition(taskID int64, expected domain.TaskStatus, apply func(*domain.Task, time.Time)) (*domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	task, ok := r.tasks[taskID]
	if !ok || task.Status != expected {
		return nil, domain.ErrInvalidTransition
	}

	apply(task, r.tick())

	copied := *task
	return &copied, nil
}

func testLogger() *logger.Logger {
	log, err := logger.New(&logger.Config{Level: "error", Format: "json"})
	if err != nil {
		panic(err)
	}
	return log
}
