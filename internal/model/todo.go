package model

import (
	"net/url"
	"strings"
	"time"
)

// DateLayout is the wire format of due dates in forms and templates.
const DateLayout = "2006-01-02"

type Todo struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"due_date"`
	IsResolved  bool       `json:"is_resolved"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// TodoInput is a validated field set ready to be persisted.
type TodoInput struct {
	Title       string
	Description string
	DueDate     *time.Time
	IsResolved  bool
}

// TodoForm holds the raw submitted values of the create and edit forms.
type TodoForm struct {
	Title       string
	Description string
	DueDate     string
	IsResolved  bool
}

// FormFromValues binds a submitted form. A checkbox counts as checked unless it
// is absent, empty or "false".
func FormFromValues(v url.Values) TodoForm {
	resolved := strings.TrimSpace(v.Get("is_resolved"))
	return TodoForm{
		Title:       v.Get("title"),
		Description: v.Get("description"),
		DueDate:     v.Get("due_date"),
		IsResolved:  resolved != "" && !strings.EqualFold(resolved, "false"),
	}
}

// FormFromTodo prefills the edit form with the stored values.
func FormFromTodo(t Todo) TodoForm {
	f := TodoForm{
		Title:       t.Title,
		Description: t.Description,
		IsResolved:  t.IsResolved,
	}
	if t.DueDate != nil {
		f.DueDate = t.DueDate.Format(DateLayout)
	}
	return f
}

// FieldErrors maps a form field name to its error messages.
type FieldErrors map[string][]string

func (e FieldErrors) Add(field, msg string) {
	e[field] = append(e[field], msg)
}

func (e FieldErrors) Get(field string) []string {
	return e[field]
}
