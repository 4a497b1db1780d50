// internal/app/system/sanitize/policy.go
package sanitize

// The policy tables below are static, process-wide data. They are never
// mutated at runtime; extending the policy means adding an entry here.

// RemovedTags lists elements that are eliminated outright, descendants
// included. These are the tags that execute code or fetch a resource on
// their own (script, iframe, media) plus the ones that redirect or alter
// document resolution (base, meta). Meta is removed unconditionally: charset,
// verification, and refresh tags are all treated as a risk surface rather
// than inspected individually.
var RemovedTags = map[string]bool{
	"script":   true,
	"iframe":   true,
	"object":   true,
	"embed":    true,
	"noscript": true,
	"base":     true,
	"link":     true,
	"meta":     true,
	"video":    true,
	"audio":    true,
	"source":   true,
	"track":    true,
}

// StrippedAttrPrefixes lists attribute-name prefixes removed from every
// element. "on" covers the inline event handlers (onclick, onload, onerror,
// onmouseover, ...).
var StrippedAttrPrefixes = []string{"on"}

// DisabledControlTypes lists the effective input/button types that get a
// disabled marker during form neutralization. An input with no type is a
// text control and is left alone; a button with no type defaults to submit.
var DisabledControlTypes = map[string]bool{
	"submit": true,
	"image":  true,
	"button": true,
}

// InertPrefix is prepended to href/src values in ModeInert so the original
// URL survives as inert text but never resolves to a live fetch.
const InertPrefix = "https://noice://"

// altPlaceholder is set on img elements left without alt text after their
// src has been neutralized.
const altPlaceholder = "[image disabled]"

// noticeMarkerAttr tags the injected notice element so a second sanitize
// pass does not stack a second notice.
const noticeMarkerAttr = "data-sanitized"

const noticeText = "This page was sanitized: scripts, iframes, external links and auto-fetching resources were removed or disabled."

const noticeStyle = "font-family:monospace;font-size:12px;opacity:0.85;padding:6px;border-bottom:1px solid #ddd;"

// fallbackDoc is returned when the transformation pipeline fails in an
// unexpected way. Rendering must never crash on sanitizer output.
const fallbackDoc = "<html><head></head><body><p>Unable to sanitize content.</p></body></html>"
