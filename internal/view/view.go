// Package view renders the HTML pages of the todo list.
package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"time"

	"github.com/BuzzLyutic/todo-list/internal/model"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	pageHome = "home.html"
	pageEdit = "edit.html"
)

type HomePage struct {
	Todos []model.Todo
	Form  model.TodoForm
}

type EditPage struct {
	Todo   model.Todo
	Form   model.TodoForm
	Errors model.FieldErrors
}

type Renderer struct {
	pages map[string]*template.Template
}

func New() (*Renderer, error) {
	funcs := template.FuncMap{
		"date": formatDate,
	}

	r := &Renderer{pages: make(map[string]*template.Template)}
	for _, page := range []string{pageHome, pageEdit} {
		t, err := template.New("base.html").Funcs(funcs).ParseFS(templateFS, "templates/base.html", "templates/"+page)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", page, err)
		}
		r.pages[page] = t
	}
	return r, nil
}

func (r *Renderer) Home(data HomePage) ([]byte, error) {
	return r.render(pageHome, data)
}

func (r *Renderer) Edit(data EditPage) ([]byte, error) {
	return r.render(pageEdit, data)
}

// render buffers the output so a template error never leaves a half-written page.
func (r *Renderer) render(page string, data any) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.pages[page].Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("render %s: %w", page, err)
	}
	return buf.Bytes(), nil
}

func formatDate(d *time.Time) string {
	if d == nil {
		return ""
	}
	return d.Format(model.DateLayout)
}
