// Package pagemeta extracts display metadata from fetched HTML documents.
// Anything it returns ends up in viewer chrome (page headings, history
// rows), so extracted text is pushed through a strict bluemonday policy
// that strips every tag before use.
package pagemeta

import (
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var (
	// policy is the shared strict policy: no tags, no attributes, text only.
	policy     *bluemonday.Policy
	policyOnce sync.Once
)

func getPolicy() *bluemonday.Policy {
	policyOnce.Do(func() {
		policy = bluemonday.StrictPolicy()
	})
	return policy
}

// maxTitleLen caps titles for display; some pages carry absurdly long ones.
const maxTitleLen = 200

// Title returns the document's title as plain text, or "" if the document
// has none. The result is safe to interpolate into templates as text.
func Title(htmlText string) string {
	doc, err := html.Parse(strings.NewReader(htmlText))
	if err != nil {
		return ""
	}

	var title string
	var find func(*html.Node)
	find = func(n *html.Node) {
		if title != "" {
			return
		}
		if n.Type == html.ElementNode && n.DataAtom == atom.Title {
			title = textContent(n)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			find(c)
		}
	}
	find(doc)

	return CleanText(title)
}

// CleanText strips any markup from s, collapses whitespace, and truncates
// to a display-friendly length.
func CleanText(s string) string {
	s = getPolicy().Sanitize(s)
	s = html.UnescapeString(s)
	s = strings.Join(strings.Fields(s), " ")
	if len(s) > maxTitleLen {
		// Back up to a rune boundary so the cut never leaves invalid UTF-8.
		cut := maxTitleLen
		for cut > 0 && !utf8.RuneStart(s[cut]) {
			cut--
		}
		s = s[:cut]
	}
	return s
}

func textContent(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}
