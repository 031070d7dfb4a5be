package parser

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/dtnitsch/software-meta-parser/models"
	"github.com/dtnitsch/software-meta-parser/pkg/dom"
	"github.com/go-shiori/go-readability"
)

type Parser struct{}

// Parse builds a navigable document from the raw HTML of a request.
func (p *Parser) Parse(req models.ParseRequest) (*dom.Document, error) {
	if strings.TrimSpace(req.HTML) == "" {
		return nil, fmt.Errorf("empty HTML for %s", req.URL)
	}
	return dom.FromString(req.HTML, req.URL)
}

// Snapshot uses the go-readability library to pull the main content out of
// the page and flattens it into plain text, one block per paragraph.
func (p *Parser) Snapshot(req models.ParseRequest) (models.Snapshot, error) {
	parsedURL, err := url.Parse(req.URL)
	if err != nil {
		return models.Snapshot{}, fmt.Errorf("invalid URL %q: %w", req.URL, err)
	}

	readabilityParser := readability.NewParser()
	article, err := readabilityParser.Parse(strings.NewReader(req.HTML), parsedURL)
	if err != nil {
		return models.Snapshot{}, fmt.Errorf("readability failed: %w", err)
	}

	// goquery on the cleaned content readability returns
	content, err := goquery.NewDocumentFromReader(strings.NewReader(article.Content))
	if err != nil {
		return models.Snapshot{}, fmt.Errorf("failed to parse readable content: %w", err)
	}

	var blocks []string
	content.Find("h1,h2,h3,h4,p,li,pre").Each(func(_ int, s *goquery.Selection) {
		// li > p would otherwise be written twice
		if s.ParentsFiltered("li").Length() > 0 {
			return
		}
		if text := dom.CleanText(s.Text()); text != "" {
			blocks = append(blocks, text)
		}
	})

	snap := models.Snapshot{
		Title: dom.CleanText(article.Title),
		Text:  strings.Join(blocks, "\n\n"),
	}
	for _, b := range blocks {
		if len(b) > 40 {
			snap.Excerpt = b
			break
		}
	}

	// site name straight from the page, readability does not always find it
	if doc, err := p.Parse(req); err == nil {
		snap.SiteName = doc.Meta("og:site_name")
	}
	return snap, nil
}
