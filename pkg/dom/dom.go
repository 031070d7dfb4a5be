// Package dom wraps a parsed HTML page with the small set of lookups the
// extractors need: meta tags, the document title, embedded JSON-LD, text
// search and sibling/descendant navigation.
package dom

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/antchfx/htmlquery"
	"github.com/antchfx/xpath"
	"golang.org/x/net/html"
	"golang.org/x/text/unicode/norm"
)

const (
	UpperASCII = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	LowerASCII = "abcdefghijklmnopqrstuvwxyz"
)

// Document is a parsed page plus the URL it was requested from.
// It is never mutated after construction.
type Document struct {
	doc *goquery.Document
	url string
}

// New wraps an already parsed goquery document.
func New(doc *goquery.Document, rawURL string) *Document {
	return &Document{doc: doc, url: rawURL}
}

// FromReader parses HTML from r.
func FromReader(r io.Reader, rawURL string) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	return New(doc, rawURL), nil
}

// FromString parses an HTML string.
func FromString(s, rawURL string) (*Document, error) {
	return FromReader(strings.NewReader(s), rawURL)
}

// URL returns the URL the page was requested from.
func (d *Document) URL() string {
	return d.url
}

// Meta returns the content of <meta property=key> or, failing that,
// <meta name=key>. Open Graph tags show up under either attribute.
func (d *Document) Meta(key string) string {
	sel := d.doc.Find(fmt.Sprintf(`meta[property=%q]`, key)).First()
	if sel.Length() == 0 {
		sel = d.doc.Find(fmt.Sprintf(`meta[name=%q]`, key)).First()
	}
	content, _ := sel.Attr("content")
	return strings.TrimSpace(content)
}

// MetaName returns the content of <meta name=key> only.
func (d *Document) MetaName(key string) string {
	content, _ := d.doc.Find(fmt.Sprintf(`meta[name=%q]`, key)).First().Attr("content")
	return strings.TrimSpace(content)
}

// Title returns the text of the first <title> element.
func (d *Document) Title() string {
	return CleanText(d.doc.Find("title").First().Text())
}

// StructuredData returns the body of the first JSON-LD script block.
func (d *Document) StructuredData() (string, bool) {
	sel := d.doc.Find(`script[type="application/ld+json"]`).First()
	if sel.Length() == 0 {
		return "", false
	}
	return sel.Text(), true
}

// FindByOwnText returns the first tag element with a direct text child
// containing phrase. Text inside descendants does not count.
func (d *Document) FindByOwnText(tag, phrase string) (Element, bool) {
	match := d.doc.Find(tag).FilterFunction(func(_ int, s *goquery.Selection) bool {
		return strings.Contains(ownText(s.Nodes[0]), phrase)
	}).First()
	if match.Length() == 0 {
		return Element{}, false
	}
	return Element{sel: match}, true
}

// FollowingSiblingText finds the innermost body elements whose text
// contains keyword (ASCII case-insensitive) and returns the text of the
// next element sibling. When the match itself has no sibling, as with a
// label span wrapped in its own div, the nearest ancestor below <body> that
// has one is used. The first match in document order with non-empty
// sibling text wins.
func (d *Document) FollowingSiblingText(keyword string) (string, bool) {
	expr, err := xpath.Compile(keywordMatchExpr(keyword))
	if err != nil {
		return "", false
	}

	for _, n := range htmlquery.QuerySelectorAll(d.doc.Nodes[0], expr) {
		sibling := siblingOfSelfOrAncestor(n)
		if sibling == nil {
			continue
		}
		if text := CleanText(htmlquery.InnerText(sibling)); text != "" {
			return text, true
		}
	}
	return "", false
}

// keywordMatchExpr builds the XPath used by FollowingSiblingText. It selects
// elements containing the keyword with no child that also contains it.
// translate() lower-cases ASCII so "Release Date" matches "release date".
func keywordMatchExpr(keyword string) string {
	kw := xpathLiteral(Fold(keyword))
	has := fmt.Sprintf(`contains(translate(., '%s', '%s'), %s)`, UpperASCII, LowerASCII, kw)
	return fmt.Sprintf(
		`//body//*[not(self::script or self::style or self::noscript or self::template)][%s][not(*[%s])]`,
		has, has,
	)
}

// siblingOfSelfOrAncestor returns the next element sibling of n or of its
// closest ancestor that has one. It stops at <body>.
func siblingOfSelfOrAncestor(n *html.Node) *html.Node {
	for ; n != nil; n = n.Parent {
		if n.Type == html.ElementNode && n.Data == "body" {
			return nil
		}
		if next := nextElementSibling(n); next != nil {
			return next
		}
	}
	return nil
}

func nextElementSibling(n *html.Node) *html.Node {
	for s := n.NextSibling; s != nil; s = s.NextSibling {
		if s.Type == html.ElementNode {
			return s
		}
	}
	return nil
}

// xpathLiteral quotes s for XPath 1.0, which has no escape sequences.
func xpathLiteral(s string) string {
	if !strings.Contains(s, "'") {
		return "'" + s + "'"
	}
	if !strings.Contains(s, `"`) {
		return `"` + s + `"`
	}
	parts := strings.Split(s, "'")
	return "concat('" + strings.Join(parts, `', "'", '`) + "')"
}

// Fold lower-cases ASCII letters only, the same translation the XPath uses.
func Fold(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= 'A' && r <= 'Z' {
			return r + ('a' - 'A')
		}
		return r
	}, s)
}

// ContainsFold reports whether keyword occurs in text after Fold on both.
func ContainsFold(text, keyword string) bool {
	return strings.Contains(Fold(text), Fold(keyword))
}

func ownText(n *html.Node) string {
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			sb.WriteString(c.Data)
		}
	}
	return sb.String()
}

// CleanText NFC-normalizes input and collapses runs of whitespace and
// newlines into single spaces.
func CleanText(input string) string {
	return strings.Join(strings.Fields(norm.NFC.String(input)), " ")
}
