// Package extractors turns a parsed store page into a software record.
package extractors

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/dtnitsch/software-meta-parser/models"
	"github.com/dtnitsch/software-meta-parser/pkg/detector"
	"github.com/dtnitsch/software-meta-parser/pkg/extractor"
	"github.com/dtnitsch/software-meta-parser/pkg/jsonld"
)

// Sources for the title, description and URL chains.
const (
	SourceOGTitle       extractor.Source = "og:title"
	SourceDocumentTitle extractor.Source = "title"
	SourceOGDescription extractor.Source = "og:description"
	SourceDescription   extractor.Source = "description"
	SourceOGURL         extractor.Source = "og:url"
	SourceRequestURL    extractor.Source = "request"
)

// " on" followed by whitespace or the end of the title, so "Gorilla Tag on
// Meta Quest" and "Example on" both cut while "Dragon Online" does not.
// Matching a bare " on" would cut "Dragon Online" to "Dragon"; keep the
// word boundary.
var platformSuffix = regexp.MustCompile(` on(\s|$)`)

// Document is everything the software extractor reads from a page.
type Document interface {
	extractor.Page
	URL() string
	Meta(key string) string
	MetaName(key string) string
	Title() string
	StructuredData() (string, bool)
}

// Trace explains where the record's values came from.
type Trace struct {
	extractor.Trace `yaml:",inline"`
	Title           extractor.Source `json:"title_source,omitempty" yaml:"title_source,omitempty"`
	Description     extractor.Source `json:"description_source,omitempty" yaml:"description_source,omitempty"`
	URL             extractor.Source `json:"url_source" yaml:"url_source"`
	// StructuredDataError is set when a JSON-LD block exists but could not be used.
	StructuredDataError string `json:"structured_data_error,omitempty" yaml:"structured_data_error,omitempty"`
}

// Result is one extracted record with its trace.
type Result struct {
	Record models.Record `json:"record" yaml:"record"`
	Trace  Trace         `json:"trace" yaml:"trace"`
}

// SoftwareExtractor extracts records for one site profile.
type SoftwareExtractor struct {
	profile  models.SiteProfile
	detector *detector.Detector
	miner    *extractor.Miner
}

// NewSoftwareExtractor builds an extractor for profile.
func NewSoftwareExtractor(profile models.SiteProfile) (*SoftwareExtractor, error) {
	d, err := detector.New(profile)
	if err != nil {
		return nil, fmt.Errorf("failed to build detector for %s: %w", profile.Name, err)
	}
	return &SoftwareExtractor{
		profile:  profile,
		detector: d,
		miner:    extractor.NewMiner(extractor.OptionsFromProfile(profile)),
	}, nil
}

// Detect reports whether rawURL is an experience page of this profile.
func (e *SoftwareExtractor) Detect(rawURL string) (models.ItemType, bool) {
	return e.detector.Detect(rawURL)
}

// Extract builds the record for doc. It returns false when the document's
// URL is not an eligible page; nothing else makes it fail.
func (e *SoftwareExtractor) Extract(doc Document, strategy extractor.Strategy) (Result, bool) {
	itemType, ok := e.Detect(doc.URL())
	if !ok {
		return Result{}, false
	}

	var trace Trace
	ld := e.structuredData(doc, &trace)

	title, titleSrc := extractor.First(
		extractor.Link{Source: SourceOGTitle, Value: func() string { return doc.Meta("og:title") }},
		extractor.Link{Source: SourceDocumentTitle, Value: doc.Title},
		extractor.Link{Source: extractor.SourceStructuredData, Value: func() string {
			if ld == nil {
				return ""
			}
			return strings.TrimSpace(ld.Name.String())
		}},
	)
	trace.Title = titleSrc

	description, descSrc := extractor.First(
		extractor.Link{Source: SourceOGDescription, Value: func() string { return doc.Meta("og:description") }},
		extractor.Link{Source: SourceDescription, Value: func() string { return doc.MetaName("description") }},
	)
	trace.Description = descSrc

	pageURL, urlSrc := extractor.First(
		extractor.Link{Source: SourceOGURL, Value: func() string { return doc.Meta("og:url") }},
		extractor.Const(SourceRequestURL, doc.URL()),
	)
	trace.URL = urlSrc

	attrs, minerTrace := e.miner.Mine(doc, ld, strategy)
	trace.Trace = minerTrace

	return Result{
		Record: models.Record{
			ItemType:       itemType,
			Title:          NormalizeTitle(title),
			AbstractNote:   description,
			URL:            pageURL,
			LibraryCatalog: e.profile.LibraryCatalog,
			Creators:       attrs.Creators,
			Company:        attrs.Company,
			Date:           attrs.Date,
			Version:        attrs.Version,
		},
		Trace: trace,
	}, true
}

// structuredData parses the page's JSON-LD block once. Failures are noted in
// the trace and otherwise ignored.
func (e *SoftwareExtractor) structuredData(doc Document, trace *Trace) *jsonld.Software {
	raw, ok := doc.StructuredData()
	if !ok {
		return nil
	}
	ld, err := jsonld.Parse(raw)
	if err != nil {
		trace.StructuredDataError = err.Error()
		return nil
	}
	return ld
}

// NormalizeTitle drops a platform or site suffix: everything from the first
// " on" token, or failing that from the first " | ".
func NormalizeTitle(raw string) string {
	if loc := platformSuffix.FindStringIndex(raw); loc != nil {
		return strings.TrimSpace(raw[:loc[0]])
	}
	if i := strings.Index(raw, " | "); i >= 0 {
		return strings.TrimSpace(raw[:i])
	}
	return strings.TrimSpace(raw)
}
