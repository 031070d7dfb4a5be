package detector

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/dtnitsch/software-meta-parser/models"
)

// Detector decides whether a URL is an experience page of one site profile.
type Detector struct {
	host string
	path *regexp.Regexp
}

// New compiles a detector for profile.
func New(profile models.SiteProfile) (*Detector, error) {
	re, err := regexp.Compile(profile.PathPattern)
	if err != nil {
		return nil, fmt.Errorf("invalid path pattern %q: %w", profile.PathPattern, err)
	}
	return &Detector{
		host: strings.ToLower(profile.Host),
		path: re,
	}, nil
}

var defaultDetector = func() *Detector {
	d, err := New(models.DefaultProfile())
	if err != nil {
		panic(err)
	}
	return d
}()

// Detect classifies rawURL with the default Meta Store profile.
func Detect(rawURL string) (models.ItemType, bool) {
	return defaultDetector.Detect(rawURL)
}

// Detect returns the item type for an eligible URL, or ("", false).
// Unparseable input is simply not eligible.
func (d *Detector) Detect(rawURL string) (models.ItemType, bool) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return "", false
	}

	if !strings.EqualFold(u.Scheme, "https") {
		return "", false
	}
	if strings.ToLower(u.Hostname()) != d.host {
		return "", false
	}
	if !d.path.MatchString(u.EscapedPath()) {
		return "", false
	}

	return models.ItemTypeComputerProgram, true
}
