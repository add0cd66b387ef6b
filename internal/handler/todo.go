package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/BuzzLyutic/todo-list/internal/model"
	"github.com/BuzzLyutic/todo-list/internal/repo"
	"github.com/BuzzLyutic/todo-list/internal/service"
	"github.com/BuzzLyutic/todo-list/internal/view"
	"github.com/BuzzLyutic/todo-list/pkg/respond"
)

const listPath = "/"

type TodoHandler struct {
	service *service.TodoService
	views   *view.Renderer
	logger  *zap.Logger
}

func NewTodoHandler(srv *service.TodoService, views *view.Renderer, logger *zap.Logger) *TodoHandler {
	return &TodoHandler{
		service: srv,
		views:   views,
		logger:  logger,
	}
}

func (h *TodoHandler) List(w http.ResponseWriter, r *http.Request) {
	todos, err := h.service.List(r.Context())
	if err != nil {
		h.handleErrors(w, r, err)
		return
	}

	page, err := h.views.Home(view.HomePage{Todos: todos})
	if err != nil {
		h.handleErrors(w, r, err)
		return
	}
	respond.HTML(w, r, http.StatusOK, page)
}

// Create always lands back on the list. Invalid submissions are dropped
// without feedback.
func (h *TodoHandler) Create(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respond.Redirect(w, r, listPath)
		return
	}
	if err := r.ParseForm(); err != nil {
		h.logger.Debug("failed to parse create form", zap.Error(err))
		respond.Redirect(w, r, listPath)
		return
	}

	todo, err := h.service.Create(r.Context(), model.FormFromValues(r.PostForm))
	switch {
	case errors.Is(err, service.ErrValidation):
		h.logger.Debug("create rejected", zap.Error(err))
	case err != nil:
		h.handleErrors(w, r, err)
		return
	default:
		h.logger.Info("todo created", zap.Int64("id", todo.ID))
	}
	respond.Redirect(w, r, listPath)
}

func (h *TodoHandler) Edit(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	todo, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.handleErrors(w, r, err)
		return
	}

	if r.Method != http.MethodPost {
		h.renderEdit(w, r, view.EditPage{Todo: todo, Form: model.FormFromTodo(todo)})
		return
	}

	if err := r.ParseForm(); err != nil {
		respond.Status(w, r, http.StatusBadRequest)
		return
	}
	form := model.FormFromValues(r.PostForm)

	_, err = h.service.Update(r.Context(), id, form)
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		h.renderEdit(w, r, view.EditPage{Todo: todo, Form: form, Errors: verr.Fields})
	case err != nil:
		h.handleErrors(w, r, err)
	default:
		h.logger.Info("todo updated", zap.Int64("id", id))
		respond.Redirect(w, r, listPath)
	}
}

func (h *TodoHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	todo, err := h.service.Toggle(r.Context(), id)
	if err != nil {
		h.handleErrors(w, r, err)
		return
	}
	h.logger.Info("todo toggled", zap.Int64("id", id), zap.Bool("is_resolved", todo.IsResolved))
	respond.Redirect(w, r, listPath)
}

func (h *TodoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		h.handleErrors(w, r, err)
		return
	}
	h.logger.Info("todo deleted", zap.Int64("id", id))
	respond.Redirect(w, r, listPath)
}

func (h *TodoHandler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Ping(r.Context()); err != nil {
		h.logger.Error("health check failed", zap.Error(err))
		respond.Error(w, r, http.StatusServiceUnavailable, "store unavailable")
		return
	}
	respond.JSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *TodoHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	respond.Status(w, r, http.StatusNotFound)
}

func (h *TodoHandler) renderEdit(w http.ResponseWriter, r *http.Request, data view.EditPage) {
	page, err := h.views.Edit(data)
	if err != nil {
		h.handleErrors(w, r, err)
		return
	}
	respond.HTML(w, r, http.StatusOK, page)
}

// parseID reads the {id} URL param. The route pattern only admits digits, so a
// failure here means the value overflows int64.
func (h *TodoHandler) parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respond.Status(w, r, http.StatusNotFound)
		return 0, false
	}
	return id, true
}

func (h *TodoHandler) handleErrors(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, repo.ErrorNotFound):
		respond.Status(w, r, http.StatusNotFound)
	default:
		h.logger.Error("internal error", zap.Error(err))
		respond.Status(w, r, http.StatusInternalServerError)
	}
}
