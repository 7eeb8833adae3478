// Package resource binds a domain definition to a record store: field-name
// translation, create-time validation and defaults, ordered listing with a
// client-side sorting fallback, partial updates, and idempotent deletes.
package resource

import (
	"context"
	"errors"
	"fmt"

	"github.com/adbrdt/folio/internal/domain"
	"github.com/adbrdt/folio/internal/logger"
	"github.com/adbrdt/folio/internal/store"
)

// Client is the per-resource CRUD surface. All records crossing its API are
// display-keyed; the storage names never leak past it.
type Client struct {
	def   *domain.Definition
	store store.Store
	log   logger.Logger
}

func NewClient(def *domain.Definition, st store.Store, log logger.Logger) *Client {
	return &Client{def: def, store: st, log: log}
}

// Definition exposes the bound resource definition, read-only by convention.
func (c *Client) Definition() *domain.Definition { return c.def }

// List returns every record, display-keyed, sorted per the resource's
// ordering invariant. When the store cannot serve an ordered scan, the same
// ordering is applied client-side; that fallback never surfaces as a
// failure. An empty collection yields an empty slice, distinct from
// ErrStoreUnavailable.
func (c *Client) List(ctx context.Context) ([]domain.Record, error) {
	sortField, _ := c.def.StorageField(c.def.Sort.Field)

	raw, err := c.store.ListOrdered(ctx, c.def.Collection, sortField)
	if errors.Is(err, store.ErrOrderingUnsupported) {
		c.log.Debug("ordered scan unsupported, sorting client-side",
			logger.String("resource", c.def.Name),
			logger.String("field", c.def.Sort.Field))

		raw, err = c.store.List(ctx, c.def.Collection)
		if err != nil {
			return nil, c.unavailable("list", err)
		}

		records := c.translate(raw)
		c.def.SortRecords(records)
		return records, nil
	}
	if err != nil {
		return nil, c.unavailable("list", err)
	}

	return c.translate(raw), nil
}

// Create validates required fields, applies the resource defaults, and
// inserts the record. Validation failures are returned before any store
// call. The created record, including its store-assigned id, is returned
// display-keyed.
func (c *Client) Create(ctx context.Context, fields domain.Record) (domain.Record, error) {
	if err := c.def.Validate(fields); err != nil {
		return nil, err
	}

	full := c.def.ApplyDefaults(fields)
	delete(full, domain.IDField) // ids are store-assigned, never client-supplied

	id, err := c.store.Insert(ctx, c.def.Collection, c.def.ToStorage(full))
	if err != nil {
		return nil, c.unavailable("create", err)
	}

	created := make(domain.Record, len(full)+1)
	for k, v := range full {
		created[k] = v
	}
	created[domain.IDField] = id

	c.log.Info("record created",
		logger.String("resource", c.def.Name),
		logger.String("id", id))
	return created, nil
}

// Update patches the named fields of one record. Only fields present in the
// patch are sent to the store; absent fields are left untouched. A field
// present with a nil value is cleared rather than skipped. Unknown ids
// return domain.ErrNotFound.
func (c *Client) Update(ctx context.Context, id string, patch domain.Record) error {
	if id == "" {
		return &domain.ValidationError{Field: domain.IDField, Reason: "required"}
	}

	translated := c.def.ToStorage(patch)
	delete(translated, domain.IDField)
	if len(translated) == 0 {
		// Nothing recognized to apply; succeed without a store round-trip.
		return nil
	}

	if err := c.store.Update(ctx, c.def.Collection, id, translated); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return c.unavailable("update", err)
	}

	c.log.Info("record updated",
		logger.String("resource", c.def.Name),
		logger.String("id", id))
	return nil
}

// Delete removes the record. Deleting an id that is already gone succeeds.
func (c *Client) Delete(ctx context.Context, id string) error {
	if id == "" {
		return &domain.ValidationError{Field: domain.IDField, Reason: "required"}
	}

	if err := c.store.Delete(ctx, c.def.Collection, id); err != nil {
		return c.unavailable("delete", err)
	}

	c.log.Info("record deleted",
		logger.String("resource", c.def.Name),
		logger.String("id", id))
	return nil
}

// Subscribe opens the store's change-notification stream for this resource.
func (c *Client) Subscribe(ctx context.Context) (store.Subscription, error) {
	return c.store.Subscribe(ctx, c.def.Collection)
}

func (c *Client) translate(raw []domain.Record) []domain.Record {
	records := make([]domain.Record, 0, len(raw))
	for _, rec := range raw {
		records = append(records, c.def.FromStorage(rec))
	}
	return records
}

// unavailable wraps any store failure into the one error kind callers are
// promised: raw driver errors never leak to the presentation layer.
func (c *Client) unavailable(op string, err error) error {
	if errors.Is(err, domain.ErrStoreUnavailable) {
		return err
	}
	return fmt.Errorf("%s %s: %w", op, c.def.Name, errors.Join(domain.ErrStoreUnavailable, err))
}
