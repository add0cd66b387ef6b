package view

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BuzzLyutic/todo-list/internal/model"
)

func TestRenderer_Home(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	t.Run("empty list", func(t *testing.T) {
		body, err := r.Home(HomePage{})
		require.NoError(t, err)
		assert.Contains(t, string(body), "No todos yet.")
		assert.Contains(t, string(body), `action="/create/"`)
	})

	t.Run("lists todos escaped", func(t *testing.T) {
		due := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
		body, err := r.Home(HomePage{Todos: []model.Todo{
			{ID: 7, Title: "<b>First</b>", DueDate: &due},
			{ID: 8, Title: "Done", IsResolved: true},
		}})
		require.NoError(t, err)

		html := string(body)
		assert.NotContains(t, html, "No todos yet.")
		assert.Contains(t, html, "&lt;b&gt;First&lt;/b&gt;")
		assert.Contains(t, html, "due 2025-01-01")
		assert.Contains(t, html, `action="/7/toggle/"`)
		assert.Contains(t, html, `action="/8/delete/"`)
		assert.Contains(t, html, `href="/7/edit/"`)
		assert.Contains(t, html, "Reopen")
	})
}

func TestRenderer_Edit(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	t.Run("prefilled", func(t *testing.T) {
		todo := model.Todo{ID: 3, Title: "Task", Description: "Details"}
		body, err := r.Edit(EditPage{Todo: todo, Form: model.FormFromTodo(todo)})
		require.NoError(t, err)

		html := string(body)
		assert.Contains(t, html, `value="Task"`)
		assert.Contains(t, html, "Details")
		assert.Contains(t, html, `action="/3/edit/"`)
		assert.NotContains(t, html, `class="errors"`)
	})

	t.Run("with errors", func(t *testing.T) {
		errs := model.FieldErrors{}
		errs.Add("due_date", "Enter a valid date.")
		body, err := r.Edit(EditPage{
			Todo:   model.Todo{ID: 3, Title: "Task"},
			Form:   model.TodoForm{Title: "Kept", DueDate: "someday"},
			Errors: errs,
		})
		require.NoError(t, err)

		html := string(body)
		assert.Contains(t, html, `value="Kept"`)
		assert.Contains(t, html, `value="someday"`)
		assert.Contains(t, html, "Enter a valid date.")
	})
}

func TestFormatDate(t *testing.T) {
	assert.Empty(t, formatDate(nil))
	d := time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "2025-12-31", formatDate(&d))
}
