package extractor

import (
	"github.com/dtnitsch/software-meta-parser/models"
	"github.com/dtnitsch/software-meta-parser/pkg/creators"
	"github.com/dtnitsch/software-meta-parser/pkg/dom"
	"github.com/dtnitsch/software-meta-parser/pkg/jsonld"
)

// Miner finds developer, publisher, release date and version on a page.
type Miner struct {
	opts Options
}

func NewMiner(opts Options) *Miner {
	return &Miner{opts: opts}
}

// Mine runs one structural scan, chosen by strategy, then fills whatever is
// still empty from structured data. ld may be nil. Mine never fails: a
// field no source provides stays empty.
func (m *Miner) Mine(p Page, ld *jsonld.Software, strategy Strategy) (Attributes, Trace) {
	trace := Trace{Sources: make(map[Field]Source)}

	heading, hasHeading := m.findHeading(p)
	if strategy == "" || strategy == StrategyAuto {
		strategy = StrategyKeyword
		if hasHeading {
			strategy = StrategyHeading
		}
	}
	trace.Strategy = strategy

	var scanned Attributes
	var scannedFrom Source
	switch strategy {
	case StrategyHeading:
		var candidates []Candidate
		if hasHeading {
			candidates, trace.Skipped = m.scanDetails(heading)
		}
		scanned = fromCandidates(candidates)
		scannedFrom = SourceDetails
	case StrategyKeyword:
		scanned = scanKeywords(p)
		scannedFrom = SourceKeyword
	}

	return merge(scanned, scannedFrom, ld, &trace), trace
}

func (m *Miner) findHeading(p Page) (dom.Element, bool) {
	if m.opts.HeadingPhrase == "" {
		return dom.Element{}, false
	}
	tag := m.opts.HeadingTag
	if tag == "" {
		tag = "*"
	}
	return p.FindByOwnText(tag, m.opts.HeadingPhrase)
}

// scanDetails reads label/value groupings from the element following the
// heading. Groupings missing either part are counted and skipped.
func (m *Miner) scanDetails(heading dom.Element) ([]Candidate, int) {
	container, ok := heading.NextSibling()
	if !ok {
		return nil, 0
	}

	var candidates []Candidate
	skipped := 0
	for _, group := range container.All(m.opts.GroupSelector) {
		label, hasLabel := group.First(m.opts.LabelSelector)
		value, hasValue := group.First(m.opts.ValueSelector)
		if !hasLabel || !hasValue {
			skipped++
			continue
		}

		c := Candidate{Label: label.Text(), Value: value.Text()}
		if c.Label == "" || c.Value == "" {
			skipped++
			continue
		}
		candidates = append(candidates, c)
	}
	return candidates, skipped
}

// fromCandidates dispatches candidates on their labels. The first value
// seen for a field wins; repeated developers are kept once each.
func fromCandidates(candidates []Candidate) Attributes {
	var attrs Attributes
	seen := make(map[string]bool)

	for _, c := range candidates {
		switch Classify(c.Label) {
		case FieldCreator:
			creator := creators.Clean(c.Value, models.CreatorTypeProgrammer, true)
			if creator.LastName == "" || seen[creator.Name()] {
				continue
			}
			seen[creator.Name()] = true
			attrs.Creators = append(attrs.Creators, creator)
		case FieldCompany:
			setOnce(&attrs.Company, c.Value)
		case FieldDate:
			setOnce(&attrs.Date, c.Value)
		case FieldVersion:
			setOnce(&attrs.Version, c.Value)
		}
	}
	return attrs
}

func scanKeywords(p Page) Attributes {
	var attrs Attributes
	for _, kw := range keywords {
		value, ok := p.FollowingSiblingText(kw.keyword)
		if !ok {
			continue
		}
		switch kw.field {
		case FieldCreator:
			if creator := creators.Clean(value, models.CreatorTypeProgrammer, true); creator.LastName != "" {
				attrs.Creators = append(attrs.Creators, creator)
			}
		case FieldDate:
			attrs.Date = value
		case FieldVersion:
			attrs.Version = value
		}
	}
	return attrs
}

func setOnce(dst *string, value string) {
	if *dst == "" {
		*dst = value
	}
}
