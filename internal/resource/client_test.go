package resource

import (
	"context"
	"errors"
	"testing"

	"github.com/adbrdt/folio/internal/domain"
	"github.com/adbrdt/folio/internal/logger"
	"github.com/adbrdt/folio/internal/store"
	"github.com/adbrdt/folio/internal/store/memory"
)

// countingStore wraps a real store and counts calls, so tests can assert
// that validation failures never reach the store.
type countingStore struct {
	store.Store
	inserts int
	lists   int
}

func (c *countingStore) Insert(ctx context.Context, collection string, rec domain.Record) (string, error) {
	c.inserts++
	return c.Store.Insert(ctx, collection, rec)
}

func (c *countingStore) List(ctx context.Context, collection string) ([]domain.Record, error) {
	c.lists++
	return c.Store.List(ctx, collection)
}

// downStore fails every operation, standing in for an unreachable backend.
type downStore struct{}

var errConnRefused = errors.New("dial tcp: connection refused")

func (downStore) List(context.Context, string) ([]domain.Record, error) {
	return nil, errConnRefused
}

func (downStore) ListOrdered(context.Context, string, string) ([]domain.Record, error) {
	return nil, errConnRefused
}

func (downStore) Insert(context.Context, string, domain.Record) (string, error) {
	return "", errConnRefused
}

func (downStore) Update(context.Context, string, string, domain.Record) error {
	return errConnRefused
}

func (downStore) Delete(context.Context, string, string) error { return errConnRefused }

func (downStore) Subscribe(context.Context, string) (store.Subscription, error) {
	return nil, errConnRefused
}

func (downStore) Ping(context.Context) error { return errConnRefused }
func (downStore) Close() error               { return nil }

func newTimelineClient(st store.Store) *Client {
	return NewClient(domain.Timeline(), st, logger.Nop())
}

func TestCreateMissingDateValueMakesNoStoreCall(t *testing.T) {
	counting := &countingStore{Store: memory.New()}
	c := newTimelineClient(counting)

	tests := []struct {
		name   string
		fields domain.Record
	}{
		{name: "absent", fields: domain.Record{"title": "no date"}},
		{name: "empty string", fields: domain.Record{"dateValue": "", "title": "no date"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.Create(context.Background(), tt.fields)
			var verr *domain.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Create() error = %v, want *ValidationError", err)
			}
			if verr.Field != "dateValue" {
				t.Errorf("ValidationError field = %v, want dateValue", verr.Field)
			}
		})
	}

	if counting.inserts != 0 {
		t.Errorf("store Insert called %d times, want 0", counting.inserts)
	}
}

func TestCreateAppliesDefaultsAndReturnsID(t *testing.T) {
	c := NewClient(domain.Posts(), memory.New(), logger.Nop())

	created, err := c.Create(context.Background(), domain.Record{
		"content": "hello",
		"date":    "1d ago",
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if created[domain.IDField] == "" || created[domain.IDField] == nil {
		t.Error("Create() returned record without id")
	}
	if created["likes"] != "0" {
		t.Errorf("likes = %v, want \"0\"", created["likes"])
	}
	if created["order"] != 0 {
		t.Errorf("order = %v, want 0", created["order"])
	}
}

func TestFieldMappingRoundTrip(t *testing.T) {
	c := newTimelineClient(memory.New())
	ctx := context.Background()

	if _, err := c.Create(ctx, domain.Record{"dateValue": "2024-01-01", "title": "t"}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	records, err := c.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("List() returned %d records, want 1", len(records))
	}
	if records[0]["dateValue"] != "2024-01-01" {
		t.Errorf("dateValue = %v, want 2024-01-01 (lost through storage translation)", records[0]["dateValue"])
	}
	if _, leaked := records[0]["date_value"]; leaked {
		t.Error("storage field name date_value leaked into display record")
	}
}

func TestListEmptyIsNotAnError(t *testing.T) {
	c := newTimelineClient(memory.New())

	records, err := c.List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if records == nil || len(records) != 0 {
		t.Errorf("List() = %v, want empty slice", records)
	}
}

func TestListSortedDescendingViaFallback(t *testing.T) {
	// Ordered scans disabled: the client must sort client-side and the
	// fallback must not surface as an error.
	st := memory.NewWithOptions(memory.Options{DisableOrderedScans: true})
	c := newTimelineClient(st)
	ctx := context.Background()

	for _, date := range []string{"2021-06-01", "2024-01-01", "2022-03-15"} {
		if _, err := c.Create(ctx, domain.Record{"dateValue": date}); err != nil {
			t.Fatalf("Create(%s) error = %v", date, err)
		}
	}

	records, err := c.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	want := []string{"2024-01-01", "2022-03-15", "2021-06-01"}
	for i, date := range want {
		if records[i]["dateValue"] != date {
			t.Errorf("record %d dateValue = %v, want %v", i, records[i]["dateValue"], date)
		}
	}
}

func TestListTiesKeepStoreOrder(t *testing.T) {
	st := memory.NewWithOptions(memory.Options{DisableOrderedScans: true})
	c := newTimelineClient(st)
	ctx := context.Background()

	for _, title := range []string{"first", "second", "third"} {
		if _, err := c.Create(ctx, domain.Record{"dateValue": "2024-01-01", "title": title}); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	records, _ := c.List(ctx)
	for i, want := range []string{"first", "second", "third"} {
		if records[i]["title"] != want {
			t.Errorf("record %d title = %v, want %v", i, records[i]["title"], want)
		}
	}
}

func TestUpdateLeavesOtherFieldsUntouched(t *testing.T) {
	c := newTimelineClient(memory.New())
	ctx := context.Background()

	created, err := c.Create(ctx, domain.Record{
		"dateValue": "2024-01-01",
		"title":     "before",
		"tag":       "life",
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	id := created[domain.IDField].(string)

	if err := c.Update(ctx, id, domain.Record{"title": "X"}); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	records, _ := c.List(ctx)
	got := records[0]
	if got["title"] != "X" {
		t.Errorf("title = %v, want X", got["title"])
	}
	if got["dateValue"] != "2024-01-01" {
		t.Errorf("dateValue = %v, want unchanged", got["dateValue"])
	}
	if got["tag"] != "life" {
		t.Errorf("tag = %v, want unchanged", got["tag"])
	}
	if got["color"] != domain.DefaultTimelineColor {
		t.Errorf("color = %v, want unchanged default", got["color"])
	}
}

func TestUpdateUnknownID(t *testing.T) {
	c := newTimelineClient(memory.New())

	err := c.Update(context.Background(), "missing", domain.Record{"title": "X"})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Update() error = %v, want ErrNotFound", err)
	}
}

func TestDeleteTwiceIsNotAnError(t *testing.T) {
	c := newTimelineClient(memory.New())
	ctx := context.Background()

	created, _ := c.Create(ctx, domain.Record{"dateValue": "2024-01-01"})
	id := created[domain.IDField].(string)

	if err := c.Delete(ctx, id); err != nil {
		t.Fatalf("first Delete() error = %v", err)
	}
	if err := c.Delete(ctx, id); err != nil {
		t.Fatalf("second Delete() error = %v", err)
	}
}

func TestStoreFailuresSignalUnavailable(t *testing.T) {
	c := newTimelineClient(downStore{})
	ctx := context.Background()

	if _, err := c.List(ctx); !errors.Is(err, domain.ErrStoreUnavailable) {
		t.Errorf("List() error = %v, want ErrStoreUnavailable", err)
	}
	if _, err := c.Create(ctx, domain.Record{"dateValue": "2024-01-01"}); !errors.Is(err, domain.ErrStoreUnavailable) {
		t.Errorf("Create() error = %v, want ErrStoreUnavailable", err)
	}
	if err := c.Update(ctx, "id", domain.Record{"title": "X"}); !errors.Is(err, domain.ErrStoreUnavailable) {
		t.Errorf("Update() error = %v, want ErrStoreUnavailable", err)
	}
	if err := c.Delete(ctx, "id"); !errors.Is(err, domain.ErrStoreUnavailable) {
		t.Errorf("Delete() error = %v, want ErrStoreUnavailable", err)
	}
}

func TestCareerOrderRanking(t *testing.T) {
	c := NewClient(domain.Career(), memory.New(), logger.Nop())
	ctx := context.Background()

	if _, err := c.Create(ctx, domain.Record{
		"role": "Intern", "company": "Acme", "period": "2019",
	}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if _, err := c.Create(ctx, domain.Record{
		"role": "Engineer", "company": "Acme", "period": "2020-2022",
		"description": "Built things", "stack": []any{"Go"}, "order": 1,
	}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	records, err := c.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if records[0]["role"] != "Engineer" {
		t.Errorf("top record role = %v, want Engineer (order 1 above default 0)", records[0]["role"])
	}
}
