package history

import (
	"net/http"
	"strings"
	"testing"

	snapshotstore "github.com/dalemusser/pageveil/internal/app/store/snapshots"
	"github.com/dalemusser/pageveil/internal/domain/models"
	"github.com/dalemusser/pageveil/internal/testutil"
	"go.uber.org/zap"
)

func TestIndex_Empty(t *testing.T) {
	testutil.MustBootTemplates(t)
	db := testutil.SetupTestDB(t)

	h := NewHandler(db, 20, zap.NewNop())
	router := Routes(h)

	req := testutil.WithCSRFToken(testutil.NewRequest(http.MethodGet, "/"))
	rec := testutil.NewRecorder()
	router.ServeHTTP(rec, req)

	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, "No pages viewed yet")
}

func TestIndex_ListsSnapshots(t *testing.T) {
	testutil.MustBootTemplates(t)
	db := testutil.SetupTestDB(t)

	store := snapshotstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	id, err := store.Create(ctx, models.Snapshot{
		SourceURL:  "https://example.com/article",
		StatusCode: 200,
		Mode:       "collapse",
		Title:      "An Example Article",
		HTML:       "<html><body>x</body></html>",
	})
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	h := NewHandler(db, 20, zap.NewNop())
	router := Routes(h)

	req := testutil.WithCSRFToken(testutil.NewRequest(http.MethodGet, "/"))
	rec := testutil.NewRecorder()
	router.ServeHTTP(rec, req)

	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, "An Example Article")
	rec.AssertContains(t, "/view/"+id)
	rec.AssertContains(t, "collapse")
}

func TestIndex_HonorsLimit(t *testing.T) {
	testutil.MustBootTemplates(t)
	db := testutil.SetupTestDB(t)

	store := snapshotstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	for i := 0; i < 5; i++ {
		if _, err := store.Create(ctx, models.Snapshot{
			SourceURL:  "https://example.com/",
			StatusCode: 200,
			Mode:       "collapse",
			Title:      "Page",
			HTML:       "<html><body>x</body></html>",
		}); err != nil {
			t.Fatalf("Create() error: %v", err)
		}
	}

	h := NewHandler(db, 2, zap.NewNop())
	router := Routes(h)

	req := testutil.WithCSRFToken(testutil.NewRequest(http.MethodGet, "/"))
	rec := testutil.NewRecorder()
	router.ServeHTTP(rec, req)

	rec.AssertStatus(t, http.StatusOK)
	if got := strings.Count(rec.Body.String(), "/view/"); got != 2 {
		t.Errorf("rendered %d rows, want 2", got)
	}
}
