package models

import "strings"

// ItemType is the bibliographic item type a detected page maps to.
type ItemType string

const (
	ItemTypeComputerProgram ItemType = "computerProgram"
)

// CreatorType is the role a creator plays for an item.
type CreatorType string

const (
	CreatorTypeProgrammer CreatorType = "programmer"
)

// Creator is a structured creator name.
// FieldMode 1 means LastName holds the whole name (organizations, single-field names).
type Creator struct {
	FirstName   string      `json:"firstName,omitempty" yaml:"firstName,omitempty"`
	LastName    string      `json:"lastName" yaml:"lastName"`
	CreatorType CreatorType `json:"creatorType" yaml:"creatorType"`
	FieldMode   int         `json:"fieldMode,omitempty" yaml:"fieldMode,omitempty"`
}

// Name returns the creator's display name.
func (c Creator) Name() string {
	if c.FirstName == "" {
		return c.LastName
	}
	return c.FirstName + " " + c.LastName
}

// Record is the normalized software record extracted from one page.
// Optional fields are empty strings when no source yielded a value.
type Record struct {
	ItemType       ItemType  `json:"itemType" yaml:"itemType"`
	Title          string    `json:"title" yaml:"title"`
	AbstractNote   string    `json:"abstractNote,omitempty" yaml:"abstractNote,omitempty"`
	URL            string    `json:"url" yaml:"url"`
	LibraryCatalog string    `json:"libraryCatalog" yaml:"libraryCatalog"`
	Creators       []Creator `json:"creators,omitempty" yaml:"creators,omitempty"`
	Company        string    `json:"company,omitempty" yaml:"company,omitempty"`
	Date           string    `json:"date,omitempty" yaml:"date,omitempty"`
	Version        string    `json:"version,omitempty" yaml:"version,omitempty"`
}

// Developer returns the first programmer's display name, or "".
func (r Record) Developer() string {
	for _, c := range r.Creators {
		if c.CreatorType == CreatorTypeProgrammer {
			return c.Name()
		}
	}
	return ""
}

// Summary renders a one-line description of the record for terminal output.
func (r Record) Summary() string {
	var sb strings.Builder
	sb.WriteString(r.Title)
	if dev := r.Developer(); dev != "" {
		sb.WriteString(" by ")
		sb.WriteString(dev)
	}
	if r.Version != "" {
		sb.WriteString(" (")
		sb.WriteString(r.Version)
		sb.WriteString(")")
	}
	return sb.String()
}
