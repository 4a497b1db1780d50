// internal/app/features/viewer/viewer.go
package viewer

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"time"

	errorsfeature "github.com/dalemusser/pageveil/internal/app/features/errors"
	snapshotstore "github.com/dalemusser/pageveil/internal/app/store/snapshots"
	"github.com/dalemusser/pageveil/internal/app/system/fetch"
	"github.com/dalemusser/pageveil/internal/app/system/inputval"
	"github.com/dalemusser/pageveil/internal/app/system/network"
	"github.com/dalemusser/pageveil/internal/app/system/normalize"
	"github.com/dalemusser/pageveil/internal/app/system/pagemeta"
	"github.com/dalemusser/pageveil/internal/app/system/sanitize"
	"github.com/dalemusser/pageveil/internal/app/system/timeouts"
	"github.com/dalemusser/pageveil/internal/app/system/viewdata"
	"github.com/dalemusser/pageveil/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler fetches pages, sanitizes them, and serves the stored results.
type Handler struct {
	store       *snapshotstore.Store
	fetcher     *fetch.Client
	defaultMode sanitize.Mode
	errLog      *errorsfeature.ErrorLogger
	logger      *zap.Logger
}

// NewHandler creates a new viewer Handler.
func NewHandler(db *mongo.Database, fetcher *fetch.Client, defaultMode sanitize.Mode, errLog *errorsfeature.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		store:       snapshotstore.New(db),
		fetcher:     fetcher,
		defaultMode: defaultMode,
		errLog:      errLog,
		logger:      logger,
	}
}

// submitInput is the URL submission form after unwrapping, validated with
// inputval's httpurl rule.
type submitInput struct {
	URL string `validate:"required,httpurl" label:"URL"`
}

// ShowVM is the view model for the snapshot page.
type ShowVM struct {
	viewdata.BaseVM
	Snapshot   models.Snapshot
	ContentURL string
	Age        string
}

// Routes returns a chi.Router with viewer routes mounted.
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Post("/", h.Create)
	r.Get("/{id}", h.Show)
	r.Get("/{id}/content", h.Content)
	return r
}

// Create handles the URL submission: normalize, fetch, sanitize, store,
// then redirect to the snapshot page.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		redirectWithError(w, r, "could not read the submitted form")
		return
	}

	raw := normalize.Input(r.PostFormValue("url"))
	target := normalize.WrappedURL(raw)

	input := submitInput{URL: target}
	if res := inputval.Validate(input); res.HasErrors() {
		h.logger.Info("rejected submitted URL", zap.String("url", raw), zap.String("reason", res.First()))
		redirectWithError(w, r, res.First())
		return
	}

	u, err := normalize.Validate(target)
	if err != nil {
		h.logger.Info("rejected submitted URL", zap.String("url", raw), zap.Error(err))
		redirectWithError(w, r, "that does not look like a valid http(s) URL")
		return
	}

	mode := h.defaultMode
	if m, err := sanitize.ParseMode(r.PostFormValue("mode")); err == nil {
		mode = m
	}

	start := time.Now()
	usedFallback := false

	result, err := h.fetcher.Fetch(r.Context(), u.String())
	if err != nil && fetch.IsGoogleHost(u.Host) {
		// Direct google fetches are often blocked. Retry through a
		// single-result search for the same terms.
		if searchURL, ferr := fetch.FallbackSearchURL(u.String()); ferr == nil {
			h.logger.Info("retrying via search fallback",
				zap.String("url", u.String()),
				zap.String("fallback", searchURL))
			if fres, fferr := h.fetcher.Fetch(r.Context(), searchURL); fferr == nil {
				result, err = fres, nil
				usedFallback = true
			}
		}
	}
	if err != nil {
		var statusErr *fetch.StatusError
		if errors.As(err, &statusErr) {
			h.logger.Info("upstream returned error status",
				zap.String("url", u.String()),
				zap.Int("status", statusErr.Code))
			redirectWithError(w, r, "the site answered with an error ("+http.StatusText(statusErr.Code)+")")
			return
		}
		h.logger.Warn("fetch failed", zap.String("url", u.String()), zap.Error(err))
		redirectWithError(w, r, "could not fetch that page")
		return
	}

	engine := sanitize.New(mode, h.logger)
	cleaned := engine.Sanitize(result.Body)
	title := pagemeta.Title(result.Body)

	snap := models.Snapshot{
		SourceURL:     u.String(),
		FinalURL:      result.FinalURL,
		StatusCode:    result.StatusCode,
		Mode:          string(mode),
		Title:         title,
		HTML:          cleaned,
		ClientIP:      network.ClientIP(r),
		UsedFallback:  usedFallback,
		FetchDuration: time.Since(start).Milliseconds(),
	}

	id, err := h.store.Create(r.Context(), snap)
	if err != nil {
		h.errLog.Log(r, "failed to store snapshot", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/view/"+id, http.StatusSeeOther)
}

// Show renders the snapshot page with the sanitized document in a
// sandboxed iframe.
func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short)
	defer cancel()

	snap, err := h.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			http.NotFound(w, r)
			return
		}
		h.errLog.LogWithFields(r, "failed to load snapshot", err, zap.String("id", id))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	title := snap.Title
	if title == "" {
		title = snap.SourceURL
	}

	vm := ShowVM{
		BaseVM:     viewdata.New(r, title),
		Snapshot:   *snap,
		ContentURL: "/view/" + snap.ID + "/content",
		Age:        formatAge(snap.Age(time.Now().UTC())),
	}

	templates.Render(w, r, "viewer/show", vm)
}

// Content serves the stored sanitized HTML. The restrictive CSP plus the
// iframe sandbox on the snapshot page keep the document inert even if a
// hostile fragment survived sanitization.
func (h *Handler) Content(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short)
	defer cancel()

	snap, err := h.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			http.NotFound(w, r)
			return
		}
		h.errLog.LogWithFields(r, "failed to load snapshot", err, zap.String("id", id))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Content-Security-Policy",
		"default-src 'none'; style-src 'unsafe-inline'; img-src data:; form-action 'none'; base-uri 'none'")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("Referrer-Policy", "no-referrer")
	w.Write([]byte(snap.HTML))
}

func redirectWithError(w http.ResponseWriter, r *http.Request, msg string) {
	http.Redirect(w, r, "/?error="+url.QueryEscape(msg), http.StatusSeeOther)
}

// formatAge renders a snapshot age for display, e.g. "5 minutes ago".
func formatAge(d time.Duration) string {
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		m := int(d.Minutes())
		if m == 1 {
			return "1 minute ago"
		}
		return strconv.Itoa(m) + " minutes ago"
	default:
		hours := int(d.Hours())
		if hours == 1 {
			return "1 hour ago"
		}
		return strconv.Itoa(hours) + " hours ago"
	}
}
