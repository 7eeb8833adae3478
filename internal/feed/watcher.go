// Package feed bridges the resource clients to consumers that want a
// current list plus loading/error state. Two refresh strategies: one-shot
// Refetch, or live mode where every store change notification triggers a
// full re-fetch. In both, only the most recently initiated fetch may land.
package feed

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/adbrdt/folio/internal/domain"
	"github.com/adbrdt/folio/internal/logger"
	"github.com/adbrdt/folio/internal/resource"
	"github.com/adbrdt/folio/internal/store"
	"github.com/adbrdt/folio/internal/utils"
)

// State is the snapshot exposed to the presentation layer. Loading is true
// from construction until the first fetch lands; Err and Data are mutually
// informative (a failed refresh keeps the previous Data and sets Err).
type State struct {
	Data    []domain.Record
	Loading bool
	Err     error
}

// Watcher owns the cached list for one resource. Each instance's cache is
// exclusively its own; nothing mutates it from outside.
type Watcher struct {
	client *resource.Client
	log    logger.Logger

	mu    sync.RWMutex
	state State

	// latest is the token of the most recently initiated fetch. A completed
	// fetch applies its result only while it still holds the latest token,
	// so a stale response can never clobber a newer one.
	latest atomic.Uint64

	closeOnce sync.Once
	closed    chan struct{}
	sub       store.Subscription
	subMu     sync.Mutex
}

func NewWatcher(client *resource.Client, log logger.Logger) *Watcher {
	return &Watcher{
		client: client,
		log:    log,
		state:  State{Loading: true},
		closed: make(chan struct{}),
	}
}

// Snapshot returns the current state. The slice is shared; consumers treat
// it as read-only.
func (w *Watcher) Snapshot() State {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.state
}

// Refetch runs one full list fetch and applies the result, unless a newer
// fetch was initiated while this one was in flight. It never returns an
// error; failures land in the snapshot's Err.
func (w *Watcher) Refetch(ctx context.Context) {
	token := w.latest.Add(1)

	w.mu.Lock()
	w.state.Loading = true
	w.mu.Unlock()

	data, err := w.client.List(ctx)

	w.mu.Lock()
	defer w.mu.Unlock()
	if token != w.latest.Load() {
		// Superseded: a later-initiated fetch owns the state now.
		w.log.Debug("discarding stale fetch result",
			logger.String("resource", w.client.Definition().Name))
		return
	}
	select {
	case <-w.closed:
		return
	default:
	}

	w.state.Loading = false
	w.state.Err = err
	if err == nil {
		w.state.Data = data
	}
}

// Start enters live mode: an immediate fetch, then a full re-fetch on every
// change notification until ctx ends or Close is called. When the store has
// no notification support, it degrades to the single immediate fetch and
// returns nil.
func (w *Watcher) Start(ctx context.Context) error {
	sub, err := w.client.Subscribe(ctx)
	if err != nil {
		if errors.Is(err, store.ErrSubscribeUnsupported) {
			w.log.Info("change notifications unsupported, falling back to one-shot fetch",
				logger.String("resource", w.client.Definition().Name))
			w.Refetch(ctx)
			return nil
		}
		return err
	}

	w.subMu.Lock()
	w.sub = sub
	w.subMu.Unlock()

	w.Refetch(ctx)

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-w.closed:
				return
			case ev, ok := <-sub.Events():
				if !ok {
					return
				}
				w.log.Debug("change notification, reloading",
					logger.String("resource", w.client.Definition().Name),
					logger.String("kind", string(ev.Kind)),
					logger.String("id", ev.ID))
				w.Refetch(ctx)
			}
		}
	}()
	return nil
}

// Close releases the subscription and freezes the snapshot; no state change
// is applied after Close returns.
func (w *Watcher) Close() {
	w.closeOnce.Do(func() {
		close(w.closed)
		w.subMu.Lock()
		if w.sub != nil {
			utils.Close(w.sub)
		}
		w.subMu.Unlock()
	})
}
