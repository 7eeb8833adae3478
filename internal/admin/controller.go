// Package admin drives authenticated create/update/delete against the three
// resources from a single operator session, reloading the affected cached
// list in full after every successful mutation so the displayed state
// matches the store exactly. Failed mutations are discarded, never retried,
// and leave the cached list untouched.
package admin

import (
	"context"
	"fmt"

	"github.com/adbrdt/folio/internal/domain"
	"github.com/adbrdt/folio/internal/feed"
	"github.com/adbrdt/folio/internal/logger"
	"github.com/adbrdt/folio/internal/resource"
)

type managed struct {
	client  *resource.Client
	watcher *feed.Watcher
}

// Controller owns the mutation path for every registered resource.
type Controller struct {
	session   *Session
	log       logger.Logger
	resources map[string]managed
}

func NewController(session *Session, log logger.Logger) *Controller {
	return &Controller{
		session:   session,
		log:       log,
		resources: make(map[string]managed),
	}
}

// Register binds a resource client and its watcher under the client's
// resource name.
func (c *Controller) Register(client *resource.Client, watcher *feed.Watcher) {
	c.resources[client.Definition().Name] = managed{client: client, watcher: watcher}
}

// Create inserts a record and reloads the resource's list on success.
func (c *Controller) Create(ctx context.Context, res string, fields domain.Record) (domain.Record, error) {
	m, err := c.resolve(res)
	if err != nil {
		return nil, err
	}

	created, err := m.client.Create(ctx, fields)
	if err != nil {
		c.log.Warn("create rejected",
			logger.String("resource", res),
			logger.Error(err))
		return nil, err
	}

	m.watcher.Refetch(ctx)
	return created, nil
}

// Update patches one record and reloads the resource's list on success.
// Edits are purely local buffers until the caller fires this explicit save.
func (c *Controller) Update(ctx context.Context, res, id string, patch domain.Record) error {
	m, err := c.resolve(res)
	if err != nil {
		return err
	}

	if err := m.client.Update(ctx, id, patch); err != nil {
		c.log.Warn("update rejected",
			logger.String("resource", res),
			logger.String("id", id),
			logger.Error(err))
		return err
	}

	m.watcher.Refetch(ctx)
	return nil
}

// Delete removes one record and reloads the resource's list on success.
func (c *Controller) Delete(ctx context.Context, res, id string) error {
	m, err := c.resolve(res)
	if err != nil {
		return err
	}

	if err := m.client.Delete(ctx, id); err != nil {
		c.log.Warn("delete rejected",
			logger.String("resource", res),
			logger.String("id", id),
			logger.Error(err))
		return err
	}

	m.watcher.Refetch(ctx)
	return nil
}

func (c *Controller) resolve(res string) (managed, error) {
	if !c.session.Unlocked() {
		return managed{}, domain.ErrUnauthorized
	}
	m, ok := c.resources[res]
	if !ok {
		return managed{}, fmt.Errorf("unknown resource %q", res)
	}
	return m, nil
}
