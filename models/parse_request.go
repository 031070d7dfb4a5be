package models

// ParseRequest carries raw page HTML and the URL it was requested from.
type ParseRequest struct {
	URL  string
	HTML string
}

// Snapshot is a readable plain-text copy of a page, stored alongside a record.
type Snapshot struct {
	Title    string `json:"title,omitempty" yaml:"title,omitempty"`
	Excerpt  string `json:"excerpt,omitempty" yaml:"excerpt,omitempty"`
	SiteName string `json:"site_name,omitempty" yaml:"site_name,omitempty"`
	Text     string `json:"text" yaml:"text"`
}
