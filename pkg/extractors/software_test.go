package extractors

import (
	"encoding/json"
	"testing"

	"github.com/dtnitsch/software-meta-parser/models"
	"github.com/dtnitsch/software-meta-parser/pkg/dom"
	"github.com/dtnitsch/software-meta-parser/pkg/extractor"
	"github.com/google/go-cmp/cmp"
)

const gorillaURL = "https://www.meta.com/experiences/gorilla-tag/4979055762136823/"

const gorillaPage = `<!DOCTYPE html>
<html><head>
<title>Gorilla Tag on Meta Quest | Quest VR Games | Meta Store</title>
<meta property="og:title" content="Gorilla Tag on Meta Quest | Quest VR Games | Meta Store">
<meta property="og:description" content="Meet up with friends and swing like an ape.">
<meta name="description" content="Shorter description.">
<meta property="og:url" content="https://www.meta.com/experiences/gorilla-tag/4979055762136823/">
<script type="application/ld+json">
{"@type":"SoftwareApplication","name":"Gorilla Tag","publisher":{"name":"Another Axiom Inc"},"datePublished":"2021-02-12","version":"1.1.96"}
</script>
</head><body>
<div class="x1">Additional details</div>
<div>
  <div class="x78zum5"><div class="x193iq5w"><span>Developer</span></div><div class="x193iq5w"><span>Another Axiom Inc</span></div></div>
  <div class="x78zum5"><div class="x193iq5w"><span>Release Date</span></div><div class="x193iq5w"><span>Feb 12, 2021</span></div></div>
</div>
</body></html>`

func newExtractor(t *testing.T) *SoftwareExtractor {
	t.Helper()
	e, err := NewSoftwareExtractor(models.DefaultProfile())
	if err != nil {
		t.Fatalf("NewSoftwareExtractor() error = %v", err)
	}
	return e
}

func extract(t *testing.T, html, rawURL string) Result {
	t.Helper()
	doc, err := dom.FromString(html, rawURL)
	if err != nil {
		t.Fatalf("FromString() error = %v", err)
	}
	res, ok := newExtractor(t).Extract(doc, extractor.StrategyAuto)
	if !ok {
		t.Fatalf("Extract(%s) reported not eligible", rawURL)
	}
	return res
}

func programmer(name string) models.Creator {
	return models.Creator{LastName: name, CreatorType: models.CreatorTypeProgrammer, FieldMode: 1}
}

func TestNormalizeTitle(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "Gorilla Tag on Meta Quest | Quest VR Games | Meta Store", want: "Gorilla Tag"},
		{in: "Wall Town Wonders | Meta Store", want: "Wall Town Wonders"},
		{in: "Example Title on Site", want: "Example Title"},
		{in: "Example Title on", want: "Example Title"},
		{in: "Dragon Online | Meta Store", want: "Dragon Online"},
		{in: "  Plain Title  ", want: "Plain Title"},
		{in: "", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := NormalizeTitle(tt.in); got != tt.want {
				t.Errorf("NormalizeTitle(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestExtract_FullPage(t *testing.T) {
	res := extract(t, gorillaPage, gorillaURL+"?utm_source=share")

	want := models.Record{
		ItemType:       models.ItemTypeComputerProgram,
		Title:          "Gorilla Tag",
		AbstractNote:   "Meet up with friends and swing like an ape.",
		URL:            gorillaURL,
		LibraryCatalog: "Meta Store",
		Creators:       []models.Creator{programmer("Another Axiom Inc")},
		Company:        "Another Axiom",
		Date:           "Feb 12, 2021",
		Version:        "1.1.96",
	}
	if diff := cmp.Diff(want, res.Record); diff != "" {
		t.Errorf("Record mismatch (-want +got):\n%s", diff)
	}

	if res.Trace.Strategy != extractor.StrategyHeading {
		t.Errorf("Strategy = %q, want heading", res.Trace.Strategy)
	}
	if res.Trace.Title != SourceOGTitle {
		t.Errorf("Title source = %q, want %q", res.Trace.Title, SourceOGTitle)
	}
	if res.Trace.URL != SourceOGURL {
		t.Errorf("URL source = %q, want %q", res.Trace.URL, SourceOGURL)
	}
	if got := res.Trace.Sources[extractor.FieldCompany]; got != extractor.SourceStructuredData {
		t.Errorf("company source = %q, want json-ld", got)
	}
}

func TestExtract_TitleChain(t *testing.T) {
	tests := []struct {
		name       string
		html       string
		want       string
		wantSource extractor.Source
	}{
		{
			name:       "og title by property",
			html:       `<html><head><meta property="og:title" content="Gorilla Tag on Meta Quest | Quest VR Games | Meta Store"></head></html>`,
			want:       "Gorilla Tag",
			wantSource: SourceOGTitle,
		},
		{
			name:       "og title by name",
			html:       `<html><head><meta name="og:title" content="Wall Town Wonders | Meta Store"></head></html>`,
			want:       "Wall Town Wonders",
			wantSource: SourceOGTitle,
		},
		{
			name:       "document title",
			html:       `<html><head><title>Example Title on Site</title></head></html>`,
			want:       "Example Title",
			wantSource: SourceDocumentTitle,
		},
		{
			name:       "structured data name",
			html:       `<html><head><script type="application/ld+json">{"name": "Fallback Name"}</script></head></html>`,
			want:       "Fallback Name",
			wantSource: extractor.SourceStructuredData,
		},
		{
			name: "nothing",
			html: `<html><head></head><body></body></html>`,
			want: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := extract(t, tt.html, gorillaURL)
			if res.Record.Title != tt.want {
				t.Errorf("Title = %q, want %q", res.Record.Title, tt.want)
			}
			if res.Trace.Title != tt.wantSource {
				t.Errorf("Title source = %q, want %q", res.Trace.Title, tt.wantSource)
			}
		})
	}
}

func TestExtract_DescriptionAndURL(t *testing.T) {
	res := extract(t, `<html><head><meta name="description" content="  Build a town.  "></head></html>`, gorillaURL)
	if res.Record.AbstractNote != "Build a town." {
		t.Errorf("AbstractNote = %q", res.Record.AbstractNote)
	}
	if res.Trace.Description != SourceDescription {
		t.Errorf("Description source = %q", res.Trace.Description)
	}
	if res.Record.URL != gorillaURL || res.Trace.URL != SourceRequestURL {
		t.Errorf("URL = %q from %q, want request URL", res.Record.URL, res.Trace.URL)
	}
}

func TestExtract_DetailsGroupings(t *testing.T) {
	page := `<html><head><title>Test App | Meta Store</title></head><body>
<div>Additional details</div>
<div>
  <div class="x78zum5"><div class="x193iq5w"><span>Developer</span></div><div class="x193iq5w"><span>Jane Doe</span></div></div>
  <div class="x78zum5"><div class="x193iq5w"><span>Publisher</span></div><div class="x193iq5w"><span>Acme Inc</span></div></div>
  <div class="x78zum5"><div class="x193iq5w"><span>Release Date</span></div><div class="x193iq5w"><span>Jan 1, 2025</span></div></div>
  <div class="x78zum5"><div class="x193iq5w"><span>Version</span></div><div class="x193iq5w"><span>v1.0</span></div></div>
</div>
</body></html>`

	res := extract(t, page, gorillaURL)
	want := models.Record{
		ItemType:       models.ItemTypeComputerProgram,
		Title:          "Test App",
		URL:            gorillaURL,
		LibraryCatalog: "Meta Store",
		Creators:       []models.Creator{programmer("Jane Doe")},
		Company:        "Acme Inc",
		Date:           "Jan 1, 2025",
		Version:        "v1.0",
	}
	if diff := cmp.Diff(want, res.Record); diff != "" {
		t.Errorf("Record mismatch (-want +got):\n%s", diff)
	}
}

func TestExtract_KeywordSiblings(t *testing.T) {
	page := `<html><head><title>Wall Town Wonders | Meta Store</title></head><body>
<ul>
  <li><span>Developer</span><span>Soul Assembly</span></li>
  <li><span>Release date</span><span>Jun 6, 2024</span></li>
  <li><span>Version</span><span>2.3</span></li>
</ul>
</body></html>`

	res := extract(t, page, gorillaURL)
	if res.Trace.Strategy != extractor.StrategyKeyword {
		t.Errorf("Strategy = %q, want keyword", res.Trace.Strategy)
	}
	if diff := cmp.Diff([]models.Creator{programmer("Soul Assembly")}, res.Record.Creators); diff != "" {
		t.Errorf("Creators mismatch (-want +got):\n%s", diff)
	}
	if res.Record.Date != "Jun 6, 2024" || res.Record.Version != "2.3" {
		t.Errorf("Date, Version = %q, %q", res.Record.Date, res.Record.Version)
	}
}

func TestExtract_KeywordSiblingsWrappedLabels(t *testing.T) {
	page := `<html><head><title>Wall Town Wonders | Meta Store</title></head><body>
<div class="info">
  <div class="label"><span>Developer</span></div><div class="value">Soul Assembly</div>
</div>
<div class="info">
  <div class="label"><span>Release date</span></div><div class="value"><span>Jun 6, 2024</span></div>
</div>
</body></html>`

	res := extract(t, page, gorillaURL)
	if res.Trace.Strategy != extractor.StrategyKeyword {
		t.Errorf("Strategy = %q, want keyword", res.Trace.Strategy)
	}
	if diff := cmp.Diff([]models.Creator{programmer("Soul Assembly")}, res.Record.Creators); diff != "" {
		t.Errorf("Creators mismatch (-want +got):\n%s", diff)
	}
	if res.Record.Date != "Jun 6, 2024" {
		t.Errorf("Date = %q, want %q", res.Record.Date, "Jun 6, 2024")
	}
	if res.Record.Version != "" {
		t.Errorf("Version = %q, want empty", res.Record.Version)
	}
}

func TestExtract_PublisherFromStructuredData(t *testing.T) {
	page := `<html><head><title>Gorilla Tag</title>
<script type="application/ld+json">[{"publisher": {"name": "Another Axiom Inc"}}]</script>
</head></html>`

	res := extract(t, page, gorillaURL)
	if res.Record.Company != "Another Axiom" {
		t.Errorf("Company = %q, want %q", res.Record.Company, "Another Axiom")
	}
}

func TestExtract_MalformedStructuredData(t *testing.T) {
	page := `<html><head>
<meta property="og:title" content="Broken JSON on Meta Quest">
<script type="application/ld+json">{"name": "Broken", </script>
</head><body>
<div><span>Version</span><span>0.9</span></div>
</body></html>`

	res := extract(t, page, gorillaURL)
	if res.Record.Title != "Broken JSON" {
		t.Errorf("Title = %q", res.Record.Title)
	}
	if res.Record.Version != "0.9" {
		t.Errorf("Version = %q", res.Record.Version)
	}
	if res.Trace.StructuredDataError == "" {
		t.Error("StructuredDataError should be set")
	}
}

func TestExtract_NotEligible(t *testing.T) {
	doc, err := dom.FromString(gorillaPage, "https://www.meta.com/quest/")
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := newExtractor(t).Extract(doc, extractor.StrategyAuto); ok {
		t.Error("Extract() should reject a non-experience URL")
	}
}

func TestExtract_Idempotent(t *testing.T) {
	doc, err := dom.FromString(gorillaPage, gorillaURL)
	if err != nil {
		t.Fatal(err)
	}
	e := newExtractor(t)

	first, _ := e.Extract(doc, extractor.StrategyAuto)
	second, _ := e.Extract(doc, extractor.StrategyAuto)

	a, err := json.Marshal(first)
	if err != nil {
		t.Fatal(err)
	}
	b, err := json.Marshal(second)
	if err != nil {
		t.Fatal(err)
	}
	if string(a) != string(b) {
		t.Errorf("extraction is not idempotent:\n%s\n%s", a, b)
	}
}
