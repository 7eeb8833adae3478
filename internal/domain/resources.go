package domain

// DefaultTimelineColor is the display accent applied when a timeline entry
// is created without one.
const DefaultTimelineColor = "bg-emerald-500"

// Timeline is the life-event feed: one entry per dated event, newest first.
// dateValue drives the sort order and is the only required field; it is
// stored snake-styled.
func Timeline() *Definition {
	return &Definition{
		Name:       "timeline",
		Collection: "timeline",
		Fields: []Field{
			{Display: "dateValue", Storage: "date_value"},
			{Display: "title", Storage: "title"},
			{Display: "content", Storage: "content"},
			{Display: "tag", Storage: "tag"},
			{Display: "color", Storage: "color"},
			{Display: "markdownContent", Storage: "markdown_content"},
		},
		Required: []string{"dateValue"},
		Defaults: Record{"color": DefaultTimelineColor},
		Sort:     SortSpec{Field: "dateValue"},
	}
}

// Career is the work-history list, manually ranked by the order field,
// highest first.
func Career() *Definition {
	return &Definition{
		Name:       "career",
		Collection: "career",
		Fields: []Field{
			{Display: "role", Storage: "role"},
			{Display: "company", Storage: "company"},
			{Display: "period", Storage: "period"},
			{Display: "description", Storage: "description"},
			{Display: "stack", Storage: "stack"},
			{Display: "order", Storage: "order"},
		},
		Required: []string{"role", "company", "period"},
		Defaults: Record{"stack": []any{}, "order": 0},
		Sort:     SortSpec{Field: "order", Numeric: true},
	}
}

// Posts is the short-form feed. likes is intentionally a display string
// ("1.2k"), date is free text, and order ranks the feed like Career.
// The collection keeps its historical name.
func Posts() *Definition {
	return &Definition{
		Name:       "posts",
		Collection: "shitposts",
		Fields: []Field{
			{Display: "content", Storage: "content"},
			{Display: "likes", Storage: "likes"},
			{Display: "date", Storage: "date"},
			{Display: "subtext", Storage: "subtext"},
			{Display: "order", Storage: "order"},
		},
		Required: []string{"content", "date"},
		Defaults: Record{"likes": "0", "order": 0},
		Sort:     SortSpec{Field: "order", Numeric: true},
	}
}

// All returns the three resource definitions in display order.
func All() []*Definition {
	return []*Definition{Timeline(), Career(), Posts()}
}
