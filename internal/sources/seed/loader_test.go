package seed

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoaderLoad(t *testing.T) {
	tmpDir := t.TempDir()
	yamlPath := filepath.Join(tmpDir, "seed.yaml")

	yamlContent := `---
timeline:
  - dateValue: "2024-01-01"
    title: Launched the site
    tag: project
career:
  - role: Engineer
    company: Acme
    period: 2020-2022
    stack: [Go, Redis]
    order: 1
posts:
  - content: hello world
    date: 1d ago
`

	err := os.WriteFile(yamlPath, []byte(yamlContent), 0o644)
	if err != nil {
		t.Fatalf("Failed to create test YAML file: %v", err)
	}

	loader := NewLoader(yamlPath)
	f, err := loader.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if len(f.Timeline) != 1 || f.Timeline[0].DateValue != "2024-01-01" {
		t.Errorf("Timeline = %+v, want one 2024-01-01 entry", f.Timeline)
	}
	if len(f.Career) != 1 || f.Career[0].Order == nil || *f.Career[0].Order != 1 {
		t.Errorf("Career = %+v, want one entry with order 1", f.Career)
	}
	if len(f.Posts) != 1 || f.Posts[0].Content != "hello world" {
		t.Errorf("Posts = %+v, want one hello world entry", f.Posts)
	}
}

func TestLoaderLoadMissingSections(t *testing.T) {
	tmpDir := t.TempDir()
	yamlPath := filepath.Join(tmpDir, "seed.yaml")

	err := os.WriteFile(yamlPath, []byte("timeline: []\n"), 0o644)
	if err != nil {
		t.Fatalf("Failed to create test YAML file: %v", err)
	}

	loader := NewLoader(yamlPath)
	f, err := loader.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(f.Timeline) != 0 || len(f.Career) != 0 || len(f.Posts) != 0 {
		t.Errorf("Load() = %+v, want all sections empty", f)
	}
}

func TestLoaderLoadFileNotFound(t *testing.T) {
	loader := NewLoader("/nonexistent/path/seed.yaml")
	_, err := loader.Load()
	if err == nil {
		t.Error("Load() with non-existent file should return error")
	}
}

func TestLoaderLoadInvalidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	yamlPath := filepath.Join(tmpDir, "seed.yaml")

	err := os.WriteFile(yamlPath, []byte("timeline: [unclosed"), 0o644)
	if err != nil {
		t.Fatalf("Failed to create test YAML file: %v", err)
	}

	loader := NewLoader(yamlPath)
	if _, err := loader.Load(); err == nil {
		t.Error("Load() with malformed YAML should return error")
	}
}
