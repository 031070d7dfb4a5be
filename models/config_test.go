package models

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Profile.LibraryCatalog != "Meta Store" {
		t.Errorf("LibraryCatalog = %q, want %q", cfg.Profile.LibraryCatalog, "Meta Store")
	}
	if cfg.Output.Format != "json" {
		t.Errorf("Format = %q, want json", cfg.Output.Format)
	}
}

func TestLoadConfig_OverridesOnlyGivenFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "smp.yaml")
	data := []byte(`
profile:
  library_catalog: meta.com
  heading_phrase: More details
http:
  timeout: 5s
output:
  format: yaml
`)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Profile.LibraryCatalog != "meta.com" {
		t.Errorf("LibraryCatalog = %q, want meta.com", cfg.Profile.LibraryCatalog)
	}
	if cfg.Profile.HeadingPhrase != "More details" {
		t.Errorf("HeadingPhrase = %q, want %q", cfg.Profile.HeadingPhrase, "More details")
	}
	// untouched profile fields keep their defaults
	if cfg.Profile.GroupSelector != DefaultProfile().GroupSelector {
		t.Errorf("GroupSelector = %q, want default", cfg.Profile.GroupSelector)
	}
	if cfg.HTTP.Timeout != 5*time.Second {
		t.Errorf("Timeout = %v, want 5s", cfg.HTTP.Timeout)
	}
	if cfg.Output.Format != "yaml" {
		t.Errorf("Format = %q, want yaml", cfg.Output.Format)
	}
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "bad format", body: "output:\n  format: xml\n"},
		{name: "empty catalog", body: "profile:\n  library_catalog: \"\"\n"},
		{name: "not yaml", body: "profile: [unterminated"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "smp.yaml")
			if err := os.WriteFile(path, []byte(tt.body), 0644); err != nil {
				t.Fatal(err)
			}
			if _, err := LoadConfig(path); err == nil {
				t.Error("LoadConfig() expected error, got nil")
			}
		})
	}
}

func TestRecordSummary(t *testing.T) {
	r := Record{
		Title:    "Gorilla Tag",
		Version:  "v1.2.3",
		Creators: []Creator{{LastName: "Another Axiom Inc", CreatorType: CreatorTypeProgrammer, FieldMode: 1}},
	}
	want := "Gorilla Tag by Another Axiom Inc (v1.2.3)"
	if got := r.Summary(); got != want {
		t.Errorf("Summary() = %q, want %q", got, want)
	}
}
