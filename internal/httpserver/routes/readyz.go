package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/adbrdt/folio/internal/httpserver/deps"
	"github.com/adbrdt/folio/internal/httpserver/handlers"
)

func init() { Register(registerReadyz) }

func registerReadyz(r chi.Router, d deps.Deps) {
	r.Get("/api/readyz", handlers.Readyz(d))
}
