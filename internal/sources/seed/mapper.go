package seed

import (
	"github.com/adbrdt/folio/internal/domain"
)

// Mapper converts seed file entries to display-keyed records, ready to go
// through a resource client (which applies defaults and validation).
type Mapper struct{}

// NewMapper creates a new mapper instance
func NewMapper() *Mapper {
	return &Mapper{}
}

// MapTimeline converts seed timeline entries to records.
func (m *Mapper) MapTimeline(entries []TimelineEntry) []domain.Record {
	recs := make([]domain.Record, 0, len(entries))
	for _, e := range entries {
		rec := domain.Record{"dateValue": e.DateValue}
		putIfSet(rec, "title", e.Title)
		putIfSet(rec, "content", e.Content)
		putIfSet(rec, "tag", e.Tag)
		putIfSet(rec, "color", e.Color)
		putIfSet(rec, "markdownContent", e.MarkdownContent)
		recs = append(recs, rec)
	}
	return recs
}

// MapCareer converts seed career entries to records.
func (m *Mapper) MapCareer(entries []CareerEntry) []domain.Record {
	recs := make([]domain.Record, 0, len(entries))
	for _, e := range entries {
		rec := domain.Record{
			"role":    e.Role,
			"company": e.Company,
			"period":  e.Period,
		}
		putIfSet(rec, "description", e.Description)
		if e.Stack != nil {
			stack := make([]any, len(e.Stack))
			for i, s := range e.Stack {
				stack[i] = s
			}
			rec["stack"] = stack
		}
		if e.Order != nil {
			rec["order"] = *e.Order
		}
		recs = append(recs, rec)
	}
	return recs
}

// MapPosts converts seed post entries to records.
func (m *Mapper) MapPosts(entries []PostEntry) []domain.Record {
	recs := make([]domain.Record, 0, len(entries))
	for _, e := range entries {
		rec := domain.Record{
			"content": e.Content,
			"date":    e.Date,
		}
		putIfSet(rec, "subtext", e.Subtext)
		putIfSet(rec, "likes", e.Likes)
		if e.Order != nil {
			rec["order"] = *e.Order
		}
		recs = append(recs, rec)
	}
	return recs
}

func putIfSet(rec domain.Record, key, value string) {
	if value != "" {
		rec[key] = value
	}
}
