package detector

import (
	"testing"

	"github.com/dtnitsch/software-meta-parser/models"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want bool
	}{
		{name: "experience page", url: "https://www.meta.com/experiences/gorilla-tag/4979055762136823/", want: true},
		{name: "second experience page", url: "https://www.meta.com/experiences/wall-town-wonders/6103056399797843/", want: true},
		{name: "locale prefix", url: "https://www.meta.com/en-gb/experiences/gorilla-tag/4979055762136823/", want: true},
		{name: "uppercase host", url: "https://WWW.META.COM/experiences/x/1/", want: true},
		{name: "query string", url: "https://www.meta.com/experiences/x/1/?utm_source=feed", want: true},
		{name: "plain http", url: "http://www.meta.com/experiences/x/1/", want: false},
		{name: "other host", url: "https://example.com/experiences/x/1/", want: false},
		{name: "lookalike host", url: "https://www.meta.com.evil.test/experiences/x/1/", want: false},
		{name: "store home", url: "https://www.meta.com/", want: false},
		{name: "experiences deeper in path", url: "https://www.meta.com/blog/experiences/x/", want: false},
		{name: "empty", url: "", want: false},
		{name: "garbage", url: "::not a url::", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			itemType, ok := Detect(tt.url)
			if ok != tt.want {
				t.Fatalf("Detect(%q) eligible = %v, want %v", tt.url, ok, tt.want)
			}
			if ok && itemType != models.ItemTypeComputerProgram {
				t.Errorf("Detect(%q) = %q, want %q", tt.url, itemType, models.ItemTypeComputerProgram)
			}
			if !ok && itemType != "" {
				t.Errorf("Detect(%q) returned item type %q for ineligible URL", tt.url, itemType)
			}
		})
	}
}

func TestNew_CustomProfile(t *testing.T) {
	profile := models.DefaultProfile()
	profile.Host = "store.example.org"
	profile.PathPattern = `^/apps/`

	d, err := New(profile)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if _, ok := d.Detect("https://store.example.org/apps/42"); !ok {
		t.Error("custom profile should accept its own URLs")
	}
	if _, ok := d.Detect("https://www.meta.com/experiences/x/1/"); ok {
		t.Error("custom profile should reject default site URLs")
	}
}

func TestNew_BadPattern(t *testing.T) {
	profile := models.DefaultProfile()
	profile.PathPattern = `([`
	if _, err := New(profile); err == nil {
		t.Error("New() expected error for invalid pattern")
	}
}
