package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter wires the todo pages. Toggle and delete accept POST only; any other
// method gets 405 with an Allow header from the router before the handler runs.
// HEAD is served by the GET routes.
func NewRouter(h *TodoHandler, mw ...func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(mw...)
	r.Use(middleware.Recoverer)
	r.Use(middleware.GetHead)

	r.NotFound(h.NotFound)

	r.Get("/health", h.Health)

	r.Get("/", h.List)
	// Any method other than POST is redirected back to the list.
	r.HandleFunc("/create/", h.Create)
	r.Route("/{id:[0-9]+}", func(r chi.Router) {
		r.Get("/edit/", h.Edit)
		r.Post("/edit/", h.Edit)
		r.Post("/toggle/", h.Toggle)
		r.Post("/delete/", h.Delete)
	})

	return r
}
