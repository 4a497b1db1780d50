// internal/domain/models/defaults.go
package models

// Site display defaults used when nothing else is configured.
const (
	DefaultSiteName = "PageVeil"

	// DefaultFormPlaceholder is the example shown in the fetch form.
	DefaultFormPlaceholder = "e.g. https://abc://example.com/page"
)
