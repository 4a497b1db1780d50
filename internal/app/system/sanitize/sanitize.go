// internal/app/system/sanitize/sanitize.go

// Package sanitize neutralizes fetched HTML so it can be rendered without
// triggering any network activity. It parses the document into a tree
// (golang.org/x/net/html), applies the policy tables in a fixed stage order,
// and serializes the mutated tree back to text. Elements that execute or
// auto-fetch are removed, hyperlinks and resource attributes are rewritten
// so they no longer resolve, inline event handlers are stripped, and forms
// are disarmed. A notice banner is injected so the reader knows the page
// was altered.
//
// Sanitize never fails: malformed markup degrades gracefully through the
// parser's error recovery, and an unexpected failure inside the pipeline is
// converted into a minimal fallback document.
package sanitize

import (
	"bytes"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Mode selects how hyperlinks and resource URLs are neutralized.
// The two modes are mutually exclusive; an Engine applies exactly one.
type Mode string

const (
	// ModeCollapse replaces href values with "#" and deletes src
	// attributes. Original URLs are discarded.
	ModeCollapse Mode = "collapse"

	// ModeInert prefixes href and src values with InertPrefix so the
	// original URL is preserved as inert text.
	ModeInert Mode = "inert"
)

// ParseMode validates a configured mode string.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeCollapse:
		return ModeCollapse, nil
	case ModeInert:
		return ModeInert, nil
	}
	return "", fmt.Errorf("unknown sanitize mode %q (want %q or %q)", s, ModeCollapse, ModeInert)
}

// Engine applies the sanitization policy to HTML documents. It holds no
// per-document state, so a single Engine is safe for concurrent use.
type Engine struct {
	mode   Mode
	logger *zap.Logger
}

// New creates an Engine using the given neutralization mode.
func New(mode Mode, logger *zap.Logger) *Engine {
	return &Engine{mode: mode, logger: logger}
}

// Mode returns the engine's neutralization mode.
func (e *Engine) Mode() Mode {
	return e.mode
}

// Sanitize transforms htmlText into a network-inert document. The stages
// run in a fixed order over the whole tree: tag elimination, srcset
// stripping, hyperlink neutralization, src neutralization, event-handler
// stripping, form neutralization, comment stripping, notice injection.
// Ordering matters: controls are disabled while their forms still exist,
// and no later stage reintroduces an attribute an earlier stage cleared.
//
// The output is always well-formed HTML, even for empty or unrecognizable
// input.
func (e *Engine) Sanitize(htmlText string) (out string) {
	defer func() {
		if r := recover(); r != nil {
			if e.logger != nil {
				e.logger.Error("sanitize pipeline panicked", zap.Any("panic", r))
			}
			out = fallbackDoc
		}
	}()

	doc, err := html.Parse(strings.NewReader(htmlText))
	if err != nil {
		// html.Parse does not fail on malformed markup, only on reader
		// errors, which a strings.Reader cannot produce.
		if e.logger != nil {
			e.logger.Error("sanitize parse failed", zap.Error(err))
		}
		return fallbackDoc
	}

	removeTags(doc)
	stripSrcset(doc)
	e.neutralizeHrefs(doc)
	e.neutralizeSrcs(doc)
	stripEventHandlers(doc)
	neutralizeForms(doc)
	stripComments(doc)
	injectNotice(doc)

	var buf bytes.Buffer
	if err := html.Render(&buf, doc); err != nil {
		if e.logger != nil {
			e.logger.Error("sanitize render failed", zap.Error(err))
		}
		return fallbackDoc
	}
	return buf.String()
}

// walk visits n and every descendant in document order.
func walk(n *html.Node, fn func(*html.Node)) {
	fn(n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, fn)
	}
}

// collectElements returns every element node under root matching pred.
// Collecting before mutating keeps the traversal safe while nodes are
// detached or attributes rewritten.
func collectElements(root *html.Node, pred func(*html.Node) bool) []*html.Node {
	var nodes []*html.Node
	walk(root, func(n *html.Node) {
		if n.Type == html.ElementNode && pred(n) {
			nodes = append(nodes, n)
		}
	})
	return nodes
}

// removeTags eliminates every element whose tag is in RemovedTags, with all
// of its descendants. The parser lowercases tag names, so n.Data can be
// matched directly.
func removeTags(doc *html.Node) {
	for _, n := range collectElements(doc, func(n *html.Node) bool {
		return RemovedTags[n.Data]
	}) {
		if n.Parent != nil {
			n.Parent.RemoveChild(n)
		}
	}
}

// stripSrcset deletes the srcset attribute wherever it appears. srcset is a
// second, list-valued fetch vector separate from src.
func stripSrcset(doc *html.Node) {
	for _, n := range collectElements(doc, func(n *html.Node) bool {
		return hasAttr(n, "srcset")
	}) {
		delAttr(n, "srcset")
	}
}

// hrefExempt reports whether an href value is left untouched: internal
// anchors and mailto links are not network fetches. javascript: links are
// also exempt; the event-handler stage has already run by the time a click
// could execute one, and the iframe sandbox blocks script anyway.
func hrefExempt(val string) bool {
	return strings.HasPrefix(val, "#") ||
		strings.HasPrefix(val, "mailto:") ||
		strings.HasPrefix(val, "javascript:")
}

// neutralizeHrefs rewrites the href attribute on every element that carries
// one, keeping the element (and its text) visually present.
func (e *Engine) neutralizeHrefs(doc *html.Node) {
	for _, n := range collectElements(doc, func(n *html.Node) bool {
		return hasAttr(n, "href")
	}) {
		val := getAttr(n, "href")
		if hrefExempt(val) || strings.HasPrefix(val, InertPrefix) {
			continue
		}
		switch e.mode {
		case ModeInert:
			setAttr(n, "href", InertPrefix+val)
		default:
			setAttr(n, "href", "#")
		}
	}
}

// neutralizeSrcs handles src attributes remaining after tag elimination
// (images, mostly). Collapse mode deletes src; inert mode prefixes it. An
// img left without alt text gets a placeholder so the reader sees that an
// image was disabled.
func (e *Engine) neutralizeSrcs(doc *html.Node) {
	for _, n := range collectElements(doc, func(n *html.Node) bool {
		return hasAttr(n, "src") || n.Data == "img"
	}) {
		if hasAttr(n, "src") {
			switch e.mode {
			case ModeInert:
				if val := getAttr(n, "src"); !strings.HasPrefix(val, InertPrefix) {
					setAttr(n, "src", InertPrefix+val)
				}
			default:
				delAttr(n, "src")
			}
		}
		if n.Data == "img" && getAttr(n, "alt") == "" {
			setAttr(n, "alt", altPlaceholder)
		}
	}
}

// stripEventHandlers deletes every attribute whose name starts with a
// prefix in StrippedAttrPrefixes, on every element. Inline handlers can
// appear on any tag, so this runs over the whole tree rather than only the
// tags earlier stages touched.
func stripEventHandlers(doc *html.Node) {
	walk(doc, func(n *html.Node) {
		if n.Type != html.ElementNode || len(n.Attr) == 0 {
			return
		}
		kept := n.Attr[:0]
		for _, a := range n.Attr {
			if strippedAttr(a.Key) {
				continue
			}
			kept = append(kept, a)
		}
		n.Attr = kept
	})
}

func strippedAttr(name string) bool {
	name = strings.ToLower(name)
	for _, prefix := range StrippedAttrPrefixes {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}
	return false
}

// neutralizeForms forces every form to a harmless GET to "#" and sets a
// disabled marker on its submit-capable controls. This runs while forms are
// still in the tree; tag elimination does not remove form elements.
func neutralizeForms(doc *html.Node) {
	for _, form := range collectElements(doc, func(n *html.Node) bool {
		return n.Data == "form"
	}) {
		setAttr(form, "action", "#")
		setAttr(form, "method", "get")
		for _, ctl := range collectElements(form, func(n *html.Node) bool {
			return n.Data == "input" || n.Data == "button"
		}) {
			if DisabledControlTypes[effectiveType(ctl)] {
				setAttr(ctl, "disabled", "disabled")
			}
		}
	}
}

// effectiveType returns the lowercase control type, applying the HTML
// defaults: an input with no type is a text control, a button with no type
// submits.
func effectiveType(n *html.Node) string {
	t := strings.ToLower(getAttr(n, "type"))
	if t != "" {
		return t
	}
	if n.Data == "button" {
		return "submit"
	}
	return "text"
}

// stripComments removes all comment nodes. Conditional comments are a
// browser-specific injection vector.
func stripComments(doc *html.Node) {
	var comments []*html.Node
	walk(doc, func(n *html.Node) {
		if n.Type == html.CommentNode {
			comments = append(comments, n)
		}
	})
	for _, n := range comments {
		if n.Parent != nil {
			n.Parent.RemoveChild(n)
		}
	}
}

// injectNotice prepends the sanitization notice banner: first child of body
// if the document has one, otherwise first child of the root. The marker
// attribute keeps a second pass from stacking a second notice.
func injectNotice(doc *html.Node) {
	if len(collectElements(doc, func(n *html.Node) bool {
		return hasAttr(n, noticeMarkerAttr)
	})) > 0 {
		return
	}

	notice := &html.Node{
		Type:     html.ElementNode,
		Data:     "div",
		DataAtom: atom.Div,
		Attr: []html.Attribute{
			{Key: noticeMarkerAttr, Val: "true"},
			{Key: "style", Val: noticeStyle},
		},
	}
	notice.AppendChild(&html.Node{Type: html.TextNode, Data: noticeText})

	parent := findBody(doc)
	if parent == nil {
		parent = doc
	}
	parent.InsertBefore(notice, parent.FirstChild)
}

func findBody(doc *html.Node) *html.Node {
	var body *html.Node
	walk(doc, func(n *html.Node) {
		if body == nil && n.Type == html.ElementNode && n.DataAtom == atom.Body {
			body = n
		}
	})
	return body
}

// --- attribute helpers ---

func hasAttr(n *html.Node, key string) bool {
	for _, a := range n.Attr {
		if a.Key == key {
			return true
		}
	}
	return false
}

func getAttr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func setAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

func delAttr(n *html.Node, key string) {
	kept := n.Attr[:0]
	for _, a := range n.Attr {
		if a.Key != key {
			kept = append(kept, a)
		}
	}
	n.Attr = kept
}
