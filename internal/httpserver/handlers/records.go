package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/adbrdt/folio/internal/domain"
	"github.com/adbrdt/folio/internal/httpserver/deps"
	"github.com/adbrdt/folio/internal/logger"
	"github.com/adbrdt/folio/internal/resource"
)

const maxBodyBytes = 1 << 20

// ListRecords serves the full resource list, display field names, ordered
// per the resource's sort invariant.
func ListRecords(d deps.Deps, c *resource.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		records, err := c.List(r.Context())
		if err != nil {
			d.Logger.Error("list failed",
				logger.String("resource", c.Definition().Name),
				logger.Error(err))
			writeError(w, http.StatusInternalServerError, "failed to fetch "+c.Definition().Name)
			return
		}
		writeJSON(w, http.StatusOK, records)
	}
}

// CreateRecord validates, applies defaults and inserts, echoing the created
// record with its store-assigned id.
func CreateRecord(d deps.Deps, c *resource.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		fields, ok := decodeBody(w, r)
		if !ok {
			return
		}

		created, err := c.Create(r.Context(), fields)
		if err != nil {
			writeResourceError(w, d, c, "create", err)
			return
		}
		writeJSON(w, http.StatusOK, created)
	}
}

// UpdateRecord applies a partial patch: only fields present in the body are
// touched, a null value clears the field.
func UpdateRecord(d deps.Deps, c *resource.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if id == "" {
			writeError(w, http.StatusBadRequest, "id is required")
			return
		}

		patch, ok := decodeBody(w, r)
		if !ok {
			return
		}

		if err := c.Update(r.Context(), id, patch); err != nil {
			writeResourceError(w, d, c, "update", err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]bool{"success": true})
	}
}

// DeleteRecord removes the record; deleting an absent id still succeeds.
func DeleteRecord(d deps.Deps, c *resource.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if id == "" {
			writeError(w, http.StatusBadRequest, "id is required")
			return
		}

		if err := c.Delete(r.Context(), id); err != nil {
			writeResourceError(w, d, c, "delete", err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]bool{"success": true})
	}
}

// MethodNotAllowed is the router-wide 405 handler.
func MethodNotAllowed() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// NotFound is the router-wide 404 handler.
func NotFound() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not found")
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request) (domain.Record, bool) {
	var fields domain.Record
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&fields); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return nil, false
	}
	return fields, true
}

func writeResourceError(w http.ResponseWriter, d deps.Deps, c *resource.Client, op string, err error) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		writeError(w, http.StatusBadRequest, verr.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, c.Definition().Name+" record not found")
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "unauthorized")
	default:
		d.Logger.Error(op+" failed",
			logger.String("resource", c.Definition().Name),
			logger.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to "+op+" "+c.Definition().Name+" record")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
