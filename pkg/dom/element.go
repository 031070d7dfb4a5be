package dom

import "github.com/PuerkitoBio/goquery"

// Element is a single node of a Document.
type Element struct {
	sel *goquery.Selection
}

// Text returns the element's text content with whitespace collapsed.
func (e Element) Text() string {
	if e.sel == nil {
		return ""
	}
	return CleanText(e.sel.Text())
}

// NextSibling returns the next element sibling, skipping text nodes.
func (e Element) NextSibling() (Element, bool) {
	if e.sel == nil {
		return Element{}, false
	}
	next := e.sel.Next()
	if next.Length() == 0 {
		return Element{}, false
	}
	return Element{sel: next}, true
}

// All returns every descendant matching a CSS selector, in document order.
func (e Element) All(selector string) []Element {
	if e.sel == nil {
		return nil
	}
	var out []Element
	e.sel.Find(selector).Each(func(_ int, s *goquery.Selection) {
		out = append(out, Element{sel: s})
	})
	return out
}

// First returns the first descendant matching a CSS selector.
func (e Element) First(selector string) (Element, bool) {
	if e.sel == nil {
		return Element{}, false
	}
	match := e.sel.Find(selector).First()
	if match.Length() == 0 {
		return Element{}, false
	}
	return Element{sel: match}, true
}
