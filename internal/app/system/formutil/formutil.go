// Package formutil provides helpers for form re-rendering with validation errors.
//
// When a form submission fails validation, the form should be re-rendered with
// the user's previously entered values echoed back and an error message
// explaining what went wrong. This package provides a Base struct that can be
// embedded in form data structs to handle the common fields.
//
// Example usage:
//
//	type submitData struct {
//		formutil.Base
//		URL string
//	}
//
//	// In your handler:
//	data := submitData{
//		Base: formutil.NewBase(r, "Home"),
//		URL:  submitted,
//	}
//	data.SetError("Enter a URL to view.")
//	templates.Render(w, r, "home/index", data)
package formutil

import (
	"html/template"
	"net/http"

	"github.com/dalemusser/pageveil/internal/app/system/viewdata"
)

// Base contains common fields for form pages that can be embedded in form
// data structs. It embeds viewdata.BaseVM for site and page context, and
// adds Error for form validation.
type Base struct {
	viewdata.BaseVM
	Error template.HTML
}

// NewBase creates a fully populated Base for a form page.
func NewBase(r *http.Request, title string) Base {
	return Base{
		BaseVM: viewdata.New(r, title),
	}
}

// SetError sets the error message on a Base struct.
func (b *Base) SetError(msg string) {
	b.Error = template.HTML(msg)
}
