// Package creators turns free-form author strings into structured creator
// names.
package creators

import (
	"regexp"
	"strings"

	"github.com/dtnitsch/software-meta-parser/models"
	"golang.org/x/text/unicode/norm"
)

var (
	leadingJunk  = regexp.MustCompile(`^[\s\x{00A0}.,/\[\]:]+`)
	trailingJunk = regexp.MustCompile(`[\s\x{00A0},/\[\]:]+$`)
	spaceRun     = regexp.MustCompile(`[\s\x{00A0}]+`)
	initialsOnly = regexp.MustCompile(`^(\p{Lu}\.?\s*)+$`)
)

// Clean normalizes a name for the given creator type.
//
// With singleField set the whole string becomes LastName with FieldMode 1,
// which is what organizations ("Another Axiom Inc") need. Otherwise
// "Last, First" is split at the comma and "First Middle Last" at the final
// space.
func Clean(name string, creatorType models.CreatorType, singleField bool) models.Creator {
	name = norm.NFC.String(name)
	name = leadingJunk.ReplaceAllString(name, "")
	name = trailingJunk.ReplaceAllString(name, "")
	name = spaceRun.ReplaceAllString(name, " ")

	c := models.Creator{CreatorType: creatorType}

	if singleField {
		c.LastName = name
		c.FieldMode = 1
		return c
	}

	var first, last string
	if i := strings.Index(name, ","); i >= 0 {
		last = strings.TrimSpace(name[:i])
		first = strings.TrimSpace(name[i+1:])
	} else if i := strings.LastIndex(name, " "); i >= 0 {
		first = name[:i]
		last = name[i+1:]
	} else {
		last = name
	}

	if first == "" {
		c.LastName = last
		c.FieldMode = 1
		return c
	}

	c.FirstName = punctuateInitials(first)
	c.LastName = last
	return c
}

// punctuateInitials turns "J R" or "JR" style first names into "J. R.".
func punctuateInitials(first string) string {
	if !initialsOnly.MatchString(first) {
		return first
	}
	var parts []string
	for _, r := range strings.ReplaceAll(strings.ReplaceAll(first, ".", ""), " ", "") {
		parts = append(parts, string(r)+".")
	}
	return strings.Join(parts, " ")
}
