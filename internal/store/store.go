// Package store defines the record store abstraction the resource clients
// are written against. A concrete adapter (redis or memory) is selected at
// configuration time; there is deliberately a single code path above it.
package store

import (
	"context"
	"errors"

	"github.com/adbrdt/folio/internal/domain"
)

var (
	// ErrOrderingUnsupported is returned by ListOrdered when the adapter
	// cannot serve an ordered scan for the requested field. Callers fall back
	// to List plus a client-side sort; this error never reaches the caller of
	// the resource client.
	ErrOrderingUnsupported = errors.New("ordered scan unsupported for field")

	// ErrSubscribeUnsupported is returned by Subscribe when the adapter has
	// no change-notification capability. Live consumers degrade to a single
	// one-shot fetch.
	ErrSubscribeUnsupported = errors.New("change notifications unsupported")
)

// EventKind labels a change notification.
type EventKind string

const (
	EventInsert EventKind = "insert"
	EventUpdate EventKind = "update"
	EventDelete EventKind = "delete"
)

// Event is a change notification for one record. Consumers treat any event
// as "the collection changed" and re-fetch wholesale; the id is carried for
// logging only.
type Event struct {
	Collection string    `json:"collection"`
	Kind       EventKind `json:"kind"`
	ID         string    `json:"id"`
}

// Subscription delivers change events for one collection. Events() is closed
// by Close(); no events are delivered after Close returns.
type Subscription interface {
	Events() <-chan Event
	Close() error
}

// Store is the record store: ordered/unordered scans, insert with
// store-assigned id, field-level patch, delete by id, and optional change
// notifications. Records are storage-keyed maps carrying their id under
// domain.IDField once persisted.
type Store interface {
	// List returns every record of the collection in store-native order.
	// An empty collection yields an empty slice, not an error.
	List(ctx context.Context, collection string) ([]domain.Record, error)

	// ListOrdered returns every record sorted descending by the given
	// storage field, or ErrOrderingUnsupported.
	ListOrdered(ctx context.Context, collection, field string) ([]domain.Record, error)

	// Insert persists a record without an id and returns the assigned id.
	Insert(ctx context.Context, collection string, rec domain.Record) (string, error)

	// Update applies the patch fields to an existing record, leaving all
	// other fields untouched. Returns domain.ErrNotFound for unknown ids.
	Update(ctx context.Context, collection, id string, patch domain.Record) error

	// Delete removes a record. Deleting an absent id is not an error.
	Delete(ctx context.Context, collection, id string) error

	// Subscribe opens a change-notification stream for the collection, or
	// returns ErrSubscribeUnsupported.
	Subscribe(ctx context.Context, collection string) (Subscription, error)

	// Ping reports whether the backend is reachable.
	Ping(ctx context.Context) error

	Close() error
}
