// Package jsonld decodes the schema.org software description embedded in a
// page's application/ld+json block.
package jsonld

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var incSuffix = regexp.MustCompile(`\s+Inc$`)

var (
	ErrEmpty     = errors.New("jsonld: empty structured data")
	ErrNotObject = errors.New("jsonld: structured data is not an object")
)

// Software is the subset of a schema.org SoftwareApplication we read.
type Software struct {
	Type          Text  `json:"@type"`
	Name          Text  `json:"name"`
	Creator       Party `json:"creator"`
	Publisher     Party `json:"publisher"`
	DatePublished Text  `json:"datePublished"`
	ReleaseDate   Text  `json:"releaseDate"`
	Version       Text  `json:"version"`
}

// Parse decodes raw JSON-LD. A top-level array yields its first element.
func Parse(raw string) (*Software, error) {
	data := bytes.TrimSpace([]byte(raw))
	if len(data) == 0 {
		return nil, ErrEmpty
	}

	if data[0] == '[' {
		var items []json.RawMessage
		if err := json.Unmarshal(data, &items); err != nil {
			return nil, fmt.Errorf("jsonld: %w", err)
		}
		if len(items) == 0 {
			return nil, ErrEmpty
		}
		data = bytes.TrimSpace(items[0])
	}

	if len(data) == 0 || data[0] != '{' {
		// still has to be valid JSON to be reported as "not an object"
		if !json.Valid(data) {
			return nil, fmt.Errorf("jsonld: invalid JSON")
		}
		return nil, ErrNotObject
	}

	var sw Software
	if err := json.Unmarshal(data, &sw); err != nil {
		return nil, fmt.Errorf("jsonld: %w", err)
	}
	return &sw, nil
}

// Text is a scalar that may arrive as a JSON string or number.
// Any other JSON value decodes to "".
type Text string

func (t *Text) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return nil
	}
	switch {
	case b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*t = Text(strings.TrimSpace(s))
	case b[0] == '-' || (b[0] >= '0' && b[0] <= '9'):
		var n json.Number
		if err := json.Unmarshal(b, &n); err != nil {
			return err
		}
		*t = Text(n.String())
	default:
		*t = ""
	}
	return nil
}

func (t Text) String() string {
	return string(t)
}

// Party is a schema.org Person or Organization reference. An array yields
// the first entry's name; anything that is not an object yields "".
type Party struct {
	Name Text `json:"name"`
}

func (p *Party) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return nil
	}
	switch b[0] {
	case '{':
		var obj struct {
			Name Text `json:"name"`
		}
		if err := json.Unmarshal(b, &obj); err != nil {
			return err
		}
		p.Name = obj.Name
	case '[':
		var items []Party
		if err := json.Unmarshal(b, &items); err != nil {
			return err
		}
		if len(items) > 0 {
			*p = items[0]
		}
	default:
		*p = Party{}
	}
	return nil
}

// PublisherName returns publisher.name with a trailing " Inc" removed.
func (s *Software) PublisherName() string {
	if s == nil {
		return ""
	}
	return StripIncSuffix(s.Publisher.Name.String())
}

// StripIncSuffix removes a trailing whitespace-separated "Inc" and trims the
// result. "Inc." and names merely ending in "inc" are left alone.
func StripIncSuffix(name string) string {
	return strings.TrimSpace(incSuffix.ReplaceAllString(name, ""))
}

// Date returns datePublished, or releaseDate when that is empty.
func (s *Software) Date() string {
	if s == nil {
		return ""
	}
	if s.DatePublished != "" {
		return s.DatePublished.String()
	}
	return s.ReleaseDate.String()
}
