package extractor

import (
	"fmt"
	"strings"

	"github.com/dtnitsch/software-meta-parser/models"
	"github.com/dtnitsch/software-meta-parser/pkg/dom"
)

// Strategy names the structural scan used to find developer, publisher,
// release date and version.
type Strategy string

const (
	// StrategyAuto picks heading when the details heading exists, else keyword.
	StrategyAuto Strategy = "auto"
	// StrategyHeading reads label/value groupings under a details heading.
	StrategyHeading Strategy = "heading"
	// StrategyKeyword reads the sibling after an element mentioning a keyword.
	StrategyKeyword Strategy = "keyword"
)

// ParseStrategy parses a --strategy flag value. Empty means auto.
func ParseStrategy(strategyStr string) (Strategy, error) {
	switch s := Strategy(strings.ToLower(strings.TrimSpace(strategyStr))); s {
	case "":
		return StrategyAuto, nil
	case StrategyAuto, StrategyHeading, StrategyKeyword:
		return s, nil
	default:
		return "", fmt.Errorf("unknown strategy: %s (want auto, heading or keyword)", strategyStr)
	}
}

// Page is the part of a parsed document the miner navigates.
type Page interface {
	FindByOwnText(tag, phrase string) (dom.Element, bool)
	FollowingSiblingText(keyword string) (string, bool)
}

// Options locate the details section and its label/value groupings.
type Options struct {
	HeadingTag    string
	HeadingPhrase string
	GroupSelector string
	LabelSelector string
	ValueSelector string
}

// OptionsFromProfile copies the layout fields of a site profile.
func OptionsFromProfile(p models.SiteProfile) Options {
	return Options{
		HeadingTag:    p.HeadingTag,
		HeadingPhrase: p.HeadingPhrase,
		GroupSelector: p.GroupSelector,
		LabelSelector: p.LabelSelector,
		ValueSelector: p.ValueSelector,
	}
}

// Field is a record attribute filled by the miner.
type Field string

const (
	FieldNone    Field = ""
	FieldCreator Field = "creator"
	FieldCompany Field = "company"
	FieldDate    Field = "date"
	FieldVersion Field = "version"
)

// Source names where a field's value came from.
type Source string

const (
	SourceDetails        Source = "details"
	SourceKeyword        Source = "keyword"
	SourceStructuredData Source = "json-ld"
)

// Candidate is a label/value pair read from one details grouping.
type Candidate struct {
	Label string
	Value string
}

// Attributes are the mined values. Empty strings mean "not found".
type Attributes struct {
	Creators []models.Creator
	Company  string
	Date     string
	Version  string
}

// Trace records which scan ran and where each field came from.
type Trace struct {
	Strategy Strategy         `json:"strategy" yaml:"strategy"`
	Sources  map[Field]Source `json:"sources,omitempty" yaml:"sources,omitempty"`
	// Skipped counts details groupings without a label or value.
	Skipped int `json:"skipped,omitempty" yaml:"skipped,omitempty"`
}

// NormalizeLabel trims and lower-cases a details label.
func NormalizeLabel(label string) string {
	return strings.ToLower(strings.TrimSpace(label))
}

// Classify maps a details label to the field it fills.
// Only "developer" must match exactly; the others match by substring.
func Classify(label string) Field {
	label = NormalizeLabel(label)
	switch {
	case label == "developer":
		return FieldCreator
	case strings.Contains(label, "publisher"):
		return FieldCompany
	case strings.Contains(label, "release date"):
		return FieldDate
	case strings.Contains(label, "version"):
		return FieldVersion
	default:
		return FieldNone
	}
}

// keywords scanned by StrategyKeyword, in order.
var keywords = []struct {
	keyword string
	field   Field
}{
	{"developer", FieldCreator},
	{"release date", FieldDate},
	{"version", FieldVersion},
}
