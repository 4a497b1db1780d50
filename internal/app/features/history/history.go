// internal/app/features/history/history.go
package history

import (
	"net/http"
	"strconv"
	"time"

	snapshotstore "github.com/dalemusser/pageveil/internal/app/store/snapshots"
	"github.com/dalemusser/pageveil/internal/app/system/viewdata"
	"github.com/dalemusser/pageveil/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler lists recent snapshots.
type Handler struct {
	store  *snapshotstore.Store
	limit  int64
	logger *zap.Logger
}

// NewHandler creates a new history Handler. limit caps how many recent
// snapshots the page shows.
func NewHandler(db *mongo.Database, limit int64, logger *zap.Logger) *Handler {
	return &Handler{
		store:  snapshotstore.New(db),
		limit:  limit,
		logger: logger,
	}
}

// RowVM is a single history table row.
type RowVM struct {
	ID        string
	SourceURL string
	Title     string
	Status    int
	Mode      string
	Fetched   string
}

// IndexVM is the view model for the history page.
type IndexVM struct {
	viewdata.BaseVM
	Rows     []RowVM
	Page     int64
	PrevPage int64 // 0 when on the first page
	NextPage int64 // 0 when there may be no further rows
}

// Routes returns a chi.Router with history routes mounted.
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Get("/", h.Index)
	return r
}

// Index renders the recent-snapshots table, latest first. The optional
// page query parameter (1-based) walks further back.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.ParseInt(r.URL.Query().Get("page"), 10, 64)
	if page < 1 {
		page = 1
	}

	snaps, err := h.store.Recent(r.Context(), h.limit, page)
	if err != nil {
		h.logger.Error("failed to load recent snapshots", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	vm := IndexVM{
		BaseVM: viewdata.New(r, "History"),
		Rows:   make([]RowVM, 0, len(snaps)),
		Page:   page,
	}
	for _, s := range snaps {
		vm.Rows = append(vm.Rows, toRow(s))
	}
	if page > 1 {
		vm.PrevPage = page - 1
	}
	if int64(len(snaps)) == h.limit {
		vm.NextPage = page + 1
	}

	templates.Render(w, r, "history/index", vm)
}

func toRow(s models.Snapshot) RowVM {
	return RowVM{
		ID:        s.ID,
		SourceURL: s.SourceURL,
		Title:     s.Title,
		Status:    s.StatusCode,
		Mode:      s.Mode,
		Fetched:   s.CreatedAt.Local().Format(time.DateTime),
	}
}
