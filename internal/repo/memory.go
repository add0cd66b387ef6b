package repo

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"

	"github.com/BuzzLyutic/todo-list/internal/model"
)

// MemoryRepo keeps todos in a map guarded by a mutex. Records are lost on restart.
type MemoryRepo struct {
	mu     sync.Mutex
	todos  map[int64]model.Todo
	nextID int64
	now    func() time.Time
}

// NewMemoryRepo returns an empty store. A nil clock means time.Now.
func NewMemoryRepo(clock func() time.Time) *MemoryRepo {
	if clock == nil {
		clock = time.Now
	}
	return &MemoryRepo{
		todos: make(map[int64]model.Todo),
		now:   clock,
	}
}

func (r *MemoryRepo) Create(_ context.Context, in model.TodoInput) (model.Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	now := r.now().UTC()
	t := model.Todo{
		ID:          r.nextID,
		Title:       in.Title,
		Description: in.Description,
		DueDate:     copyDate(in.DueDate),
		IsResolved:  in.IsResolved,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	r.todos[t.ID] = t
	return clone(t), nil
}

func (r *MemoryRepo) Get(_ context.Context, id int64) (model.Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.todos[id]
	if !ok {
		return model.Todo{}, ErrorNotFound
	}
	return clone(t), nil
}

func (r *MemoryRepo) List(_ context.Context) ([]model.Todo, error) {
	r.mu.Lock()
	todos := make([]model.Todo, 0, len(r.todos))
	for _, t := range r.todos {
		todos = append(todos, clone(t))
	}
	r.mu.Unlock()

	slices.SortFunc(todos, compareTodos)
	return todos, nil
}

func (r *MemoryRepo) Update(_ context.Context, id int64, in model.TodoInput) (model.Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.todos[id]
	if !ok {
		return model.Todo{}, ErrorNotFound
	}
	t.Title = in.Title
	t.Description = in.Description
	t.DueDate = copyDate(in.DueDate)
	t.IsResolved = in.IsResolved
	t.UpdatedAt = r.touch(t.UpdatedAt)
	r.todos[id] = t
	return clone(t), nil
}

func (r *MemoryRepo) Toggle(_ context.Context, id int64) (model.Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.todos[id]
	if !ok {
		return model.Todo{}, ErrorNotFound
	}
	t.IsResolved = !t.IsResolved
	t.UpdatedAt = r.touch(t.UpdatedAt)
	r.todos[id] = t
	return clone(t), nil
}

func (r *MemoryRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.todos[id]; !ok {
		return ErrorNotFound
	}
	delete(r.todos, id)
	return nil
}

func (r *MemoryRepo) Ping(context.Context) error {
	return nil
}

// touch must be called with mu held.
func (r *MemoryRepo) touch(prev time.Time) time.Time {
	now := r.now().UTC()
	if !now.After(prev) {
		now = prev.Add(time.Microsecond)
	}
	return now
}

// compareTodos mirrors ORDER BY is_resolved, due_date NULLS LAST, created_at DESC, id DESC.
func compareTodos(a, b model.Todo) int {
	if a.IsResolved != b.IsResolved {
		if a.IsResolved {
			return 1
		}
		return -1
	}
	switch {
	case a.DueDate == nil && b.DueDate != nil:
		return 1
	case a.DueDate != nil && b.DueDate == nil:
		return -1
	case a.DueDate != nil && b.DueDate != nil:
		if c := a.DueDate.Compare(*b.DueDate); c != 0 {
			return c
		}
	}
	if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
		return c
	}
	return cmp.Compare(b.ID, a.ID)
}

func clone(t model.Todo) model.Todo {
	t.DueDate = copyDate(t.DueDate)
	return t
}

func copyDate(d *time.Time) *time.Time {
	if d == nil {
		return nil
	}
	v := *d
	return &v
}
