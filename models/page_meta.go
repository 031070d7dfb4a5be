package models

import "strconv"

// PageMetadata describes the page a record came from. It is stored next to
// the record but is never part of it.
type PageMetadata struct {
	// Where the HTML came from: "http" or "file"
	Source      string `json:"source" yaml:"source"`
	StatusCode  int    `json:"status_code,omitempty" yaml:"status_code,omitempty"`
	SizeBytes   int    `json:"size_bytes" yaml:"size_bytes"`
	ContentHash string `json:"content_hash" yaml:"content_hash"` // sha256 of the raw HTML

	Language           string  `json:"language,omitempty" yaml:"language,omitempty"` // ISO-639-1 of abstractNote
	LanguageConfidence float64 `json:"language_confidence,omitempty" yaml:"language_confidence,omitempty"`

	SiteName string `json:"site_name,omitempty" yaml:"site_name,omitempty"`
}

// Pairs flattens the metadata into key/value strings for storage.
// Empty values are left out.
func (m PageMetadata) Pairs() map[string]string {
	out := map[string]string{
		"source":       m.Source,
		"size_bytes":   strconv.Itoa(m.SizeBytes),
		"content_hash": m.ContentHash,
	}
	if m.StatusCode != 0 {
		out["status_code"] = strconv.Itoa(m.StatusCode)
	}
	if m.Language != "" {
		out["language"] = m.Language
		out["language_confidence"] = strconv.FormatFloat(m.LanguageConfidence, 'f', 3, 64)
	}
	if m.SiteName != "" {
		out["site_name"] = m.SiteName
	}
	for k, v := range out {
		if v == "" {
			delete(out, k)
		}
	}
	return out
}
