// Package redis is the hosted store adapter: one JSON document per record,
// a per-collection id list preserving insertion order, a sorted-set index
// per collection for the one numeric field worth an ordered scan, and
// pub/sub change notifications.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/adbrdt/folio/internal/domain"
	"github.com/adbrdt/folio/internal/store"
)

// Store implements store.Store on top of a Redis client.
type Store struct {
	client *redis.Client
	// indexed maps a collection to the single storage field it keeps a
	// sorted-set index for. Ordered scans on any other field signal
	// ErrOrderingUnsupported and the caller sorts client-side.
	indexed map[string]string
}

// New creates a Redis-backed record store. indexed lists, per collection,
// the numeric storage field to maintain an ordering index for (may be nil).
func New(client *redis.Client, indexed map[string]string) *Store {
	if indexed == nil {
		indexed = map[string]string{}
	}
	return &Store{client: client, indexed: indexed}
}

func (s *Store) List(ctx context.Context, collection string) ([]domain.Record, error) {
	ids, err := s.client.LRange(ctx, IDsKey(collection), 0, -1).Result()
	if err != nil {
		return nil, unavailable("list "+collection, err)
	}
	return s.fetchAll(ctx, collection, ids)
}

func (s *Store) ListOrdered(ctx context.Context, collection, field string) ([]domain.Record, error) {
	if s.indexed[collection] != field || field == "" {
		return nil, store.ErrOrderingUnsupported
	}

	ids, err := s.client.ZRevRange(ctx, IndexKey(collection, field), 0, -1).Result()
	if err != nil {
		return nil, unavailable("ordered list "+collection, err)
	}
	return s.fetchAll(ctx, collection, ids)
}

func (s *Store) Insert(ctx context.Context, collection string, rec domain.Record) (string, error) {
	id := uuid.NewString()

	stored := make(domain.Record, len(rec)+1)
	for k, v := range rec {
		stored[k] = v
	}
	stored[domain.IDField] = id

	data, err := json.Marshal(stored)
	if err != nil {
		return "", fmt.Errorf("marshal record: %w", err)
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, RecordKey(collection, id), data, 0)
	pipe.RPush(ctx, IDsKey(collection), id)
	if field, ok := s.indexed[collection]; ok {
		pipe.ZAdd(ctx, IndexKey(collection, field), redis.Z{Score: score(stored[field]), Member: id})
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return "", unavailable("insert into "+collection, err)
	}

	s.publish(ctx, store.Event{Collection: collection, Kind: store.EventInsert, ID: id})
	return id, nil
}

func (s *Store) Update(ctx context.Context, collection, id string, patch domain.Record) error {
	key := RecordKey(collection, id)

	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.ErrNotFound
		}
		return unavailable("read "+collection, err)
	}

	var rec domain.Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return fmt.Errorf("unmarshal record %s: %w", id, err)
	}

	for k, v := range patch {
		if k == domain.IDField {
			continue
		}
		rec[k] = v
	}

	merged, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal record %s: %w", id, err)
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, key, merged, 0)
	if field, ok := s.indexed[collection]; ok {
		if _, touched := patch[field]; touched {
			pipe.ZAdd(ctx, IndexKey(collection, field), redis.Z{Score: score(rec[field]), Member: id})
		}
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return unavailable("update "+collection, err)
	}

	s.publish(ctx, store.Event{Collection: collection, Kind: store.EventUpdate, ID: id})
	return nil
}

func (s *Store) Delete(ctx context.Context, collection, id string) error {
	removed, err := s.client.Del(ctx, RecordKey(collection, id)).Result()
	if err != nil {
		return unavailable("delete from "+collection, err)
	}
	if removed == 0 {
		// Already gone: idempotent, no event.
		return nil
	}

	pipe := s.client.Pipeline()
	pipe.LRem(ctx, IDsKey(collection), 0, id)
	if field, ok := s.indexed[collection]; ok {
		pipe.ZRem(ctx, IndexKey(collection, field), id)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return unavailable("delete from "+collection, err)
	}

	s.publish(ctx, store.Event{Collection: collection, Kind: store.EventDelete, ID: id})
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return unavailable("ping", err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.client.Close()
}

// fetchAll resolves a list of ids into records, skipping ids whose document
// has disappeared between the id scan and the value fetch.
func (s *Store) fetchAll(ctx context.Context, collection string, ids []string) ([]domain.Record, error) {
	if len(ids) == 0 {
		return []domain.Record{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = RecordKey(collection, id)
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, unavailable("fetch "+collection, err)
	}

	records := make([]domain.Record, 0, len(values))
	for _, v := range values {
		raw, ok := v.(string)
		if !ok {
			continue
		}
		var rec domain.Record
		if err := json.Unmarshal([]byte(raw), &rec); err != nil {
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

// publish sends a change event, best effort. A missed notification only
// delays a consumer refresh until its next fetch.
func (s *Store) publish(ctx context.Context, ev store.Event) {
	payload, err := json.Marshal(ev)
	if err != nil {
		return
	}
	_ = s.client.Publish(ctx, ChangeChannel(ev.Collection), payload).Err()
}

func unavailable(op string, err error) error {
	return fmt.Errorf("redis %s: %w", op, errors.Join(domain.ErrStoreUnavailable, err))
}

// score coerces a record field into a sorted-set score. Records without the
// field (or with a non-numeric value) index at 0, matching the create-time
// default.
func score(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case json.Number:
		if f, err := n.Float64(); err == nil {
			return f
		}
	case string:
		if f, err := strconv.ParseFloat(n, 64); err == nil {
			return f
		}
	}
	return 0
}
