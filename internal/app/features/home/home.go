// internal/app/features/home/home.go
package home

import (
	"html/template"
	"net/http"

	"github.com/dalemusser/pageveil/internal/app/system/formutil"
	"github.com/dalemusser/pageveil/internal/app/system/sanitize"
	"github.com/dalemusser/pageveil/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Handler provides home page handlers.
type Handler struct {
	defaultMode sanitize.Mode
	logger      *zap.Logger
}

// NewHandler creates a new home Handler. defaultMode preselects the
// link-handling option in the form.
func NewHandler(defaultMode sanitize.Mode, logger *zap.Logger) *Handler {
	return &Handler{
		defaultMode: defaultMode,
		logger:      logger,
	}
}

// HomeVM is the view model for the home page.
type HomeVM struct {
	formutil.Base
	DefaultMode string // preselected sanitize mode for the form
	Placeholder string // example input shown in the URL field
}

// Routes returns a chi.Router with home routes mounted.
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Get("/", h.Index)
	return r
}

// Index renders the home page with the URL submission form. A failed
// submission redirects back here with its message in the error query
// parameter.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	vm := HomeVM{
		Base:        formutil.NewBase(r, "Home"),
		DefaultMode: string(h.defaultMode),
		Placeholder: models.DefaultFormPlaceholder,
	}

	// Escape before trusting: the message rides in on the query string.
	if msg := r.URL.Query().Get("error"); msg != "" {
		vm.SetError(template.HTMLEscapeString(msg))
	}

	templates.Render(w, r, "home/index", vm)
}
