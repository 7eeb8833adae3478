package seed

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/adbrdt/folio/internal/domain"
	"github.com/adbrdt/folio/internal/logger"
	"github.com/adbrdt/folio/internal/resource"
	"github.com/adbrdt/folio/internal/store/memory"
)

const seedYAML = `---
timeline:
  - dateValue: "2024-01-01"
    title: Launch
career:
  - role: Engineer
    company: Acme
    period: 2020-2022
posts:
  - content: hello
    date: 1d ago
`

func writeSeed(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "seed.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write seed file: %v", err)
	}
	return path
}

func TestImporterSeedsEmptyCollections(t *testing.T) {
	ctx := context.Background()
	st := memory.New()
	log := logger.Nop()

	timeline := resource.NewClient(domain.Timeline(), st, log)
	career := resource.NewClient(domain.Career(), st, log)
	posts := resource.NewClient(domain.Posts(), st, log)

	imp := NewImporter(writeSeed(t, seedYAML), log)
	if err := imp.Run(ctx, timeline, career, posts); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	recs, err := timeline.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("timeline has %d records, want 1", len(recs))
	}
	// Seeded records go through the client, so defaults apply.
	if recs[0]["color"] != domain.DefaultTimelineColor {
		t.Errorf("seeded color = %v, want default", recs[0]["color"])
	}

	if recs, _ := career.List(ctx); len(recs) != 1 {
		t.Errorf("career has %d records, want 1", len(recs))
	}
	if recs, _ := posts.List(ctx); len(recs) != 1 {
		t.Errorf("posts has %d records, want 1", len(recs))
	}
}

func TestImporterSkipsNonEmptyCollections(t *testing.T) {
	ctx := context.Background()
	st := memory.New()
	log := logger.Nop()

	timeline := resource.NewClient(domain.Timeline(), st, log)
	career := resource.NewClient(domain.Career(), st, log)
	posts := resource.NewClient(domain.Posts(), st, log)

	if _, err := timeline.Create(ctx, domain.Record{"dateValue": "2020-01-01"}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	imp := NewImporter(writeSeed(t, seedYAML), log)
	if err := imp.Run(ctx, timeline, career, posts); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	recs, err := timeline.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(recs) != 1 || recs[0]["dateValue"] != "2020-01-01" {
		t.Errorf("timeline = %v, want only the pre-existing record", recs)
	}
	// The other, empty collections still get seeded.
	if recs, _ := posts.List(ctx); len(recs) != 1 {
		t.Errorf("posts has %d records, want 1", len(recs))
	}
}

func TestImporterRejectsInvalidEntries(t *testing.T) {
	ctx := context.Background()
	st := memory.New()
	log := logger.Nop()

	timeline := resource.NewClient(domain.Timeline(), st, log)
	career := resource.NewClient(domain.Career(), st, log)
	posts := resource.NewClient(domain.Posts(), st, log)

	imp := NewImporter(writeSeed(t, "timeline:\n  - title: undated\n"), log)
	if err := imp.Run(ctx, timeline, career, posts); err == nil {
		t.Error("Run() with invalid entry should return error")
	}
}
