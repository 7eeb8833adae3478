package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/adbrdt/folio/internal/httpserver/deps"
	"github.com/adbrdt/folio/internal/httpserver/handlers"
	"github.com/adbrdt/folio/internal/httpserver/mw"
	"github.com/adbrdt/folio/internal/resource"
)

func init() { Register(registerRecords) }

// registerRecords mounts the identical CRUD shape for each resource: public
// reads, bearer-secret writes.
func registerRecords(r chi.Router, d deps.Deps) {
	mountResource(r, d, "/api/timeline", d.Timeline)
	mountResource(r, d, "/api/career", d.Career)
	mountResource(r, d, "/api/shitposts", d.Posts)
}

func mountResource(r chi.Router, d deps.Deps, pattern string, c *resource.Client) {
	auth := mw.RequireSecret(d.AdminSecret, d.Logger)

	r.Route(pattern, func(r chi.Router) {
		r.Get("/", handlers.ListRecords(d, c))
		r.With(auth).Post("/", handlers.CreateRecord(d, c))
		r.With(auth).Put("/{id}", handlers.UpdateRecord(d, c))
		r.With(auth).Delete("/{id}", handlers.DeleteRecord(d, c))
	})
}
