package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/dalemusser/pageveil/internal/testutil"
	"go.uber.org/zap"
)

func TestErrorLogger_Log(t *testing.T) {
	// Just verify it doesn't panic with a nop logger.
	el := NewErrorLogger(zap.NewNop())
	req := testutil.NewRequest(http.MethodGet, "/somewhere")
	el.Log(req, "something failed", fmt.Errorf("boom"))
	el.LogWithFields(req, "something failed", fmt.Errorf("boom"), zap.String("id", "x"))
}

func TestNotFound(t *testing.T) {
	testutil.MustBootTemplates(t)

	h := NewHandler()
	req := testutil.WithCSRFToken(testutil.NewRequest(http.MethodGet, "/nope"))
	rec := testutil.NewRecorder()

	h.NotFound(rec, req)

	rec.AssertStatus(t, http.StatusNotFound)
	rec.AssertContains(t, "Page not found")
}

func TestInternalError(t *testing.T) {
	testutil.MustBootTemplates(t)

	h := NewHandler()
	req := testutil.WithCSRFToken(testutil.NewRequest(http.MethodGet, "/boom"))
	rec := testutil.NewRecorder()

	h.InternalError(rec, req)

	rec.AssertStatus(t, http.StatusInternalServerError)
	rec.AssertContains(t, "Something went wrong")
}
