package service

import (
	"context"

	"github.com/BuzzLyutic/todo-list/internal/model"
	"github.com/BuzzLyutic/todo-list/internal/repo"
)

type TodoService struct {
	repo repo.TodoRepository
}

func NewTodoService(repo repo.TodoRepository) *TodoService {
	return &TodoService{repo: repo}
}

func (s *TodoService) List(ctx context.Context) ([]model.Todo, error) {
	return s.repo.List(ctx)
}

func (s *TodoService) Get(ctx context.Context, id int64) (model.Todo, error) {
	return s.repo.Get(ctx, id)
}

// Create validates the form and inserts a new todo. Nothing is written when
// validation fails.
func (s *TodoService) Create(ctx context.Context, f model.TodoForm) (model.Todo, error) {
	in, errs := Validate(f)
	if errs != nil {
		return model.Todo{}, &ValidationError{Fields: errs}
	}
	return s.repo.Create(ctx, in)
}

// Update replaces every editable field of an existing todo. A missing id wins
// over invalid input.
func (s *TodoService) Update(ctx context.Context, id int64, f model.TodoForm) (model.Todo, error) {
	current, err := s.repo.Get(ctx, id)
	if err != nil {
		return current, err
	}

	in, errs := Validate(f)
	if errs != nil {
		return current, &ValidationError{Fields: errs}
	}
	return s.repo.Update(ctx, id, in)
}

func (s *TodoService) Toggle(ctx context.Context, id int64) (model.Todo, error) {
	return s.repo.Toggle(ctx, id)
}

func (s *TodoService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func (s *TodoService) Ping(ctx context.Context) error {
	return s.repo.Ping(ctx)
}
