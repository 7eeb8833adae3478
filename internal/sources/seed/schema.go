package seed

// File is the top-level structure of a seed YAML file. Every section is
// optional; a missing section simply seeds nothing for that resource.
type File struct {
	Timeline []TimelineEntry `yaml:"timeline,omitempty"`
	Career   []CareerEntry   `yaml:"career,omitempty"`
	Posts    []PostEntry     `yaml:"posts,omitempty"`
}

// TimelineEntry is one dated event on the public timeline.
type TimelineEntry struct {
	DateValue       string `yaml:"dateValue"`
	Title           string `yaml:"title,omitempty"`
	Content         string `yaml:"content,omitempty"`
	Tag             string `yaml:"tag,omitempty"`
	Color           string `yaml:"color,omitempty"`
	MarkdownContent string `yaml:"markdownContent,omitempty"`
}

// CareerEntry is one position on the career page.
type CareerEntry struct {
	Role        string   `yaml:"role"`
	Company     string   `yaml:"company"`
	Period      string   `yaml:"period"`
	Description string   `yaml:"description,omitempty"`
	Stack       []string `yaml:"stack,omitempty"`
	Order       *int     `yaml:"order,omitempty"`
}

// PostEntry is one short post.
type PostEntry struct {
	Content string `yaml:"content"`
	Date    string `yaml:"date"`
	Subtext string `yaml:"subtext,omitempty"`
	Likes   string `yaml:"likes,omitempty"`
	Order   *int   `yaml:"order,omitempty"`
}
