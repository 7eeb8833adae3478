package admin

import (
	"context"
	"errors"
	"testing"

	"github.com/adbrdt/folio/internal/domain"
	"github.com/adbrdt/folio/internal/feed"
	"github.com/adbrdt/folio/internal/logger"
	"github.com/adbrdt/folio/internal/resource"
	"github.com/adbrdt/folio/internal/store/memory"
)

func TestSessionUnlock(t *testing.T) {
	tests := []struct {
		name     string
		password string
		want     bool
	}{
		{name: "correct password", password: "hunter2", want: true},
		{name: "wrong password", password: "hunter3", want: false},
		{name: "empty password", password: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSession("hunter2")
			if got := s.Unlock(tt.password); got != tt.want {
				t.Errorf("Unlock(%q) = %v, want %v", tt.password, got, tt.want)
			}
			if s.Unlocked() != tt.want {
				t.Errorf("Unlocked() = %v, want %v", s.Unlocked(), tt.want)
			}
		})
	}
}

func TestSessionLock(t *testing.T) {
	s := NewSession("hunter2")
	s.Unlock("hunter2")
	s.Lock()
	if s.Unlocked() {
		t.Error("session still unlocked after Lock()")
	}
}

func newController(t *testing.T, unlocked bool) (*Controller, *feed.Watcher) {
	t.Helper()
	st := memory.New()
	client := resource.NewClient(domain.Career(), st, logger.Nop())
	watcher := feed.NewWatcher(client, logger.Nop())

	session := NewSession("hunter2")
	if unlocked {
		session.Unlock("hunter2")
	}

	ctrl := NewController(session, logger.Nop())
	ctrl.Register(client, watcher)
	return ctrl, watcher
}

func TestLockedSessionRejectsMutations(t *testing.T) {
	ctrl, _ := newController(t, false)
	ctx := context.Background()

	_, err := ctrl.Create(ctx, "career", domain.Record{
		"role": "Engineer", "company": "Acme", "period": "2020",
	})
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("Create() error = %v, want ErrUnauthorized", err)
	}
	if err := ctrl.Update(ctx, "career", "id", domain.Record{"role": "X"}); !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("Update() error = %v, want ErrUnauthorized", err)
	}
	if err := ctrl.Delete(ctx, "career", "id"); !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("Delete() error = %v, want ErrUnauthorized", err)
	}
}

func TestCreateReloadsWatcher(t *testing.T) {
	ctrl, watcher := newController(t, true)
	ctx := context.Background()

	created, err := ctrl.Create(ctx, "career", domain.Record{
		"role": "Engineer", "company": "Acme", "period": "2020-2022",
		"description": "Built things", "stack": []any{"Go"}, "order": 1,
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if created[domain.IDField] == nil {
		t.Error("Create() returned record without id")
	}

	got := watcher.Snapshot()
	if len(got.Data) != 1 || got.Data[0]["role"] != "Engineer" {
		t.Errorf("watcher not reloaded after create, data = %v", got.Data)
	}
}

func TestFailedMutationLeavesListUnchanged(t *testing.T) {
	ctrl, watcher := newController(t, true)
	ctx := context.Background()

	if _, err := ctrl.Create(ctx, "career", domain.Record{
		"role": "Engineer", "company": "Acme", "period": "2020",
	}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	before := watcher.Snapshot()

	// Missing required fields: rejected before any store call.
	if _, err := ctrl.Create(ctx, "career", domain.Record{"role": "Ghost"}); err == nil {
		t.Fatal("Create() with missing fields should fail")
	}

	after := watcher.Snapshot()
	if len(after.Data) != len(before.Data) {
		t.Errorf("cached list changed after failed mutation: %d -> %d", len(before.Data), len(after.Data))
	}
}

func TestUpdateAndDeleteReloadWatcher(t *testing.T) {
	ctrl, watcher := newController(t, true)
	ctx := context.Background()

	created, err := ctrl.Create(ctx, "career", domain.Record{
		"role": "Engineer", "company": "Acme", "period": "2020",
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	id := created[domain.IDField].(string)

	if err := ctrl.Update(ctx, "career", id, domain.Record{"role": "Staff Engineer"}); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if got := watcher.Snapshot().Data[0]["role"]; got != "Staff Engineer" {
		t.Errorf("watcher role = %v, want Staff Engineer", got)
	}

	if err := ctrl.Delete(ctx, "career", id); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if got := watcher.Snapshot().Data; len(got) != 0 {
		t.Errorf("watcher data = %v after delete, want empty", got)
	}
}

func TestUnknownResource(t *testing.T) {
	ctrl, _ := newController(t, true)

	_, err := ctrl.Create(context.Background(), "guestbook", domain.Record{})
	if err == nil {
		t.Error("Create() on unknown resource should fail")
	}
}
