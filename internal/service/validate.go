package service

import (
	"errors"
	"strings"
	"time"

	"github.com/BuzzLyutic/todo-list/internal/model"
)

var ErrValidation = errors.New("validation error")

const (
	msgRequired    = "This field is required."
	msgInvalidDate = "Enter a valid date."
	msgNullChar    = "Null characters are not allowed."
)

// ValidationError carries the per-field messages of a rejected form.
type ValidationError struct {
	Fields model.FieldErrors
}

func (e *ValidationError) Error() string {
	return ErrValidation.Error()
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// Validate turns raw form values into a field set that can be persisted.
// On failure the input is zero and the returned errors are non-nil.
func Validate(f model.TodoForm) (model.TodoInput, model.FieldErrors) {
	errs := model.FieldErrors{}
	in := model.TodoInput{
		Title:       strings.TrimSpace(f.Title),
		Description: strings.TrimSpace(f.Description),
		IsResolved:  f.IsResolved,
	}

	switch {
	case strings.ContainsRune(in.Title, 0):
		errs.Add("title", msgNullChar)
	case in.Title == "":
		errs.Add("title", msgRequired)
	}
	if strings.ContainsRune(in.Description, 0) {
		errs.Add("description", msgNullChar)
	}

	if raw := strings.TrimSpace(f.DueDate); raw != "" {
		due, err := time.Parse(model.DateLayout, raw)
		if err != nil {
			errs.Add("due_date", msgInvalidDate)
		} else {
			in.DueDate = &due
		}
	}

	if len(errs) > 0 {
		return model.TodoInput{}, errs
	}
	return in, nil
}
