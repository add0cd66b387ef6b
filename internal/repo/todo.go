package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/BuzzLyutic/todo-list/internal/model"
)

var ErrorNotFound = errors.New("not found")

const todoColumns = `id, title, description, due_date, is_resolved, created_at, updated_at`

// updated_at never goes backwards and always moves past its previous value,
// even when two writes share a clock tick.
const touchUpdatedAt = `updated_at = GREATEST(now(), updated_at + interval '1 microsecond')`

type TodoRepo struct { // Репозиторий для работы непосредственно с БД
	pool *pgxpool.Pool
}

func NewTodoRepo(pool *pgxpool.Pool) *TodoRepo {
	return &TodoRepo{
		pool: pool,
	}
}

func (r *TodoRepo) Create(ctx context.Context, in model.TodoInput) (model.Todo, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO todos (title, description, due_date, is_resolved)
		VALUES ($1, $2, $3, $4)
		RETURNING `+todoColumns,
		in.Title, in.Description, in.DueDate, in.IsResolved,
	)
	t, err := scanTodo(row)
	if err != nil {
		return t, fmt.Errorf("insert todo: %w", err)
	}
	return t, nil
}

func (r *TodoRepo) Get(ctx context.Context, id int64) (model.Todo, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+todoColumns+`
		FROM todos
		WHERE id = $1
	`, id)
	return r.one(scanTodo(row))
}

func (r *TodoRepo) List(ctx context.Context) ([]model.Todo, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+todoColumns+`
		FROM todos
		ORDER BY is_resolved ASC, due_date ASC NULLS LAST, created_at DESC, id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}
	defer rows.Close()

	todos := make([]model.Todo, 0)
	for rows.Next() {
		t, err := scanTodo(rows)
		if err != nil {
			return nil, fmt.Errorf("scan todo: %w", err)
		}
		todos = append(todos, t)
	}
	return todos, rows.Err()
}

func (r *TodoRepo) Update(ctx context.Context, id int64, in model.TodoInput) (model.Todo, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE todos
		SET title = $2, description = $3, due_date = $4, is_resolved = $5, `+touchUpdatedAt+`
		WHERE id = $1
		RETURNING `+todoColumns,
		id, in.Title, in.Description, in.DueDate, in.IsResolved,
	)
	return r.one(scanTodo(row))
}

// Toggle flips is_resolved in a single statement so concurrent toggles of the
// same row serialize on the row lock.
func (r *TodoRepo) Toggle(ctx context.Context, id int64) (model.Todo, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE todos
		SET is_resolved = NOT is_resolved, `+touchUpdatedAt+`
		WHERE id = $1
		RETURNING `+todoColumns,
		id,
	)
	return r.one(scanTodo(row))
}

func (r *TodoRepo) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, "DELETE FROM todos WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete todo: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrorNotFound
	}
	return nil
}

func (r *TodoRepo) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

func (r *TodoRepo) one(t model.Todo, err error) (model.Todo, error) {
	if errors.Is(err, pgx.ErrNoRows) {
		return t, ErrorNotFound
	}
	return t, err
}

func scanTodo(row pgx.Row) (model.Todo, error) {
	var t model.Todo
	err := row.Scan(&t.ID, &t.Title, &t.Description, &t.DueDate, &t.IsResolved, &t.CreatedAt, &t.UpdatedAt)
	return t, err
}
