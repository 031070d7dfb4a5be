package extractor

import (
	"github.com/dtnitsch/software-meta-parser/models"
	"github.com/dtnitsch/software-meta-parser/pkg/creators"
	"github.com/dtnitsch/software-meta-parser/pkg/jsonld"
)

// Link is one candidate source for a field value.
type Link struct {
	Source Source
	Value  func() string
}

// Const wraps an already known value as a Link.
func Const(source Source, value string) Link {
	return Link{Source: source, Value: func() string { return value }}
}

// First tries each link in order and returns the first non-empty value
// together with its source. It returns ("", "") when every link is empty.
func First(chain ...Link) (string, Source) {
	for _, link := range chain {
		if link.Value == nil {
			continue
		}
		if v := link.Value(); v != "" {
			return v, link.Source
		}
	}
	return "", ""
}

func fromStructuredData(ld *jsonld.Software, get func(*jsonld.Software) string) Link {
	return Link{Source: SourceStructuredData, Value: func() string {
		if ld == nil {
			return ""
		}
		return get(ld)
	}}
}

// merge lays structured data under the scanned values: JSON-LD only fills
// fields the scan left empty.
func merge(scanned Attributes, from Source, ld *jsonld.Software, trace *Trace) Attributes {
	var out Attributes

	if len(scanned.Creators) > 0 {
		out.Creators = scanned.Creators
		trace.Sources[FieldCreator] = from
	} else if ld != nil {
		if c := creators.Clean(ld.Creator.Name.String(), models.CreatorTypeProgrammer, true); c.LastName != "" {
			out.Creators = []models.Creator{c}
			trace.Sources[FieldCreator] = SourceStructuredData
		}
	}

	fill := func(field Field, dst *string, chain ...Link) {
		if v, src := First(chain...); v != "" {
			*dst = v
			trace.Sources[field] = src
		}
	}

	fill(FieldCompany, &out.Company,
		Const(from, scanned.Company),
		fromStructuredData(ld, (*jsonld.Software).PublisherName),
	)
	fill(FieldDate, &out.Date,
		Const(from, scanned.Date),
		fromStructuredData(ld, (*jsonld.Software).Date),
	)
	fill(FieldVersion, &out.Version,
		Const(from, scanned.Version),
		fromStructuredData(ld, func(s *jsonld.Software) string { return s.Version.String() }),
	)

	return out
}
