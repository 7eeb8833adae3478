// Package memory is the in-process store adapter: mutex-guarded maps with
// insertion order preserved. It backs local runs without a Redis instance
// and doubles as the test fixture for everything written against the store
// interface.
package memory

import (
	"context"
	"strconv"
	"sync"

	"github.com/adbrdt/folio/internal/domain"
	"github.com/adbrdt/folio/internal/store"
)

// Options toggles optional store capabilities off, so callers can exercise
// the fallback paths of the layers above.
type Options struct {
	DisableOrderedScans  bool
	DisableNotifications bool
}

type Store struct {
	opts Options

	mu      sync.RWMutex
	next    int
	records map[string][]domain.Record // collection -> records in insertion order
	subs    map[string][]*subscription
	closed  bool
}

// New returns a fully capable in-memory store.
func New() *Store {
	return NewWithOptions(Options{})
}

func NewWithOptions(opts Options) *Store {
	return &Store{
		opts:    opts,
		records: make(map[string][]domain.Record),
		subs:    make(map[string][]*subscription),
	}
}

func (s *Store) List(ctx context.Context, collection string) ([]domain.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Record, 0, len(s.records[collection]))
	for _, rec := range s.records[collection] {
		out = append(out, cloneRecord(rec))
	}
	return out, nil
}

func (s *Store) ListOrdered(ctx context.Context, collection, field string) ([]domain.Record, error) {
	if s.opts.DisableOrderedScans {
		return nil, store.ErrOrderingUnsupported
	}

	recs, err := s.List(ctx, collection)
	if err != nil {
		return nil, err
	}

	// Storage-keyed records sort with the same stable descending rules the
	// display layer uses.
	spec := domain.Definition{Sort: domain.SortSpec{Field: field, Numeric: numericField(recs, field)}}
	spec.SortRecords(recs)
	return recs, nil
}

func (s *Store) Insert(ctx context.Context, collection string, rec domain.Record) (string, error) {
	s.mu.Lock()
	s.next++
	id := "mem-" + strconv.Itoa(s.next)
	stored := cloneRecord(rec)
	stored[domain.IDField] = id
	s.records[collection] = append(s.records[collection], stored)
	s.mu.Unlock()

	s.notify(store.Event{Collection: collection, Kind: store.EventInsert, ID: id})
	return id, nil
}

func (s *Store) Update(ctx context.Context, collection, id string, patch domain.Record) error {
	s.mu.Lock()
	var found bool
	for _, rec := range s.records[collection] {
		if rec[domain.IDField] == id {
			for k, v := range patch {
				if k == domain.IDField {
					continue
				}
				rec[k] = v
			}
			found = true
			break
		}
	}
	s.mu.Unlock()

	if !found {
		return domain.ErrNotFound
	}
	s.notify(store.Event{Collection: collection, Kind: store.EventUpdate, ID: id})
	return nil
}

func (s *Store) Delete(ctx context.Context, collection, id string) error {
	s.mu.Lock()
	recs := s.records[collection]
	var removed bool
	for i, rec := range recs {
		if rec[domain.IDField] == id {
			s.records[collection] = append(recs[:i], recs[i+1:]...)
			removed = true
			break
		}
	}
	s.mu.Unlock()

	// Absent id is a no-op: delete is idempotent.
	if removed {
		s.notify(store.Event{Collection: collection, Kind: store.EventDelete, ID: id})
	}
	return nil
}

func (s *Store) Subscribe(ctx context.Context, collection string) (store.Subscription, error) {
	if s.opts.DisableNotifications {
		return nil, store.ErrSubscribeUnsupported
	}

	sub := &subscription{
		parent:     s,
		collection: collection,
		events:     make(chan store.Event, 16),
	}

	s.mu.Lock()
	s.subs[collection] = append(s.subs[collection], sub)
	s.mu.Unlock()

	return sub, nil
}

func (s *Store) Ping(ctx context.Context) error { return nil }

func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	for _, subs := range s.subs {
		for _, sub := range subs {
			sub.terminate()
		}
	}
	s.subs = make(map[string][]*subscription)
	return nil
}

func (s *Store) notify(ev store.Event) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, sub := range s.subs[ev.Collection] {
		sub.send(ev)
	}
}

func (s *Store) removeSub(target *subscription) {
	s.mu.Lock()
	defer s.mu.Unlock()
	subs := s.subs[target.collection]
	for i, sub := range subs {
		if sub == target {
			s.subs[target.collection] = append(subs[:i], subs[i+1:]...)
			break
		}
	}
}

type subscription struct {
	parent     *Store
	collection string

	mu     sync.Mutex
	events chan store.Event
	closed bool
}

func (sub *subscription) Events() <-chan store.Event { return sub.events }

func (sub *subscription) send(ev store.Event) {
	sub.mu.Lock()
	defer sub.mu.Unlock()
	if sub.closed {
		return
	}
	// Drop rather than block: the consumer re-fetches wholesale on any
	// event, so a coalesced burst loses nothing.
	select {
	case sub.events <- ev:
	default:
	}
}

func (sub *subscription) Close() error {
	sub.parent.removeSub(sub)
	sub.terminate()
	return nil
}

func (sub *subscription) terminate() {
	sub.mu.Lock()
	defer sub.mu.Unlock()
	if sub.closed {
		return
	}
	sub.closed = true
	close(sub.events)
}

func cloneRecord(rec domain.Record) domain.Record {
	out := make(domain.Record, len(rec))
	for k, v := range rec {
		out[k] = v
	}
	return out
}

// numericField reports whether the first record carrying the field holds a
// numeric value, so mixed collections still sort without crashing.
func numericField(recs []domain.Record, field string) bool {
	for _, rec := range recs {
		switch rec[field].(type) {
		case int, int64, float32, float64:
			return true
		case string:
			return false
		}
	}
	return false
}
