// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"
	"time"

	errorsfeature "github.com/dalemusser/pageveil/internal/app/features/errors"
	healthfeature "github.com/dalemusser/pageveil/internal/app/features/health"
	historyfeature "github.com/dalemusser/pageveil/internal/app/features/history"
	homefeature "github.com/dalemusser/pageveil/internal/app/features/home"
	viewerfeature "github.com/dalemusser/pageveil/internal/app/features/viewer"
	appresources "github.com/dalemusser/pageveil/internal/app/resources"
	"github.com/dalemusser/pageveil/internal/app/system/fetch"
	"github.com/dalemusser/pageveil/internal/app/system/sanitize"
	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/middleware"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/csrf"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. It creates the chi router, installs the
// global middleware stack, and mounts the feature routers.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	secure := coreCfg.Env == "prod"

	// Initialize and boot the template engine once at startup.
	// Dev mode enables template reloading for faster iteration.
	eng := templates.New(coreCfg.Env == "dev")
	if err := eng.Boot(logger); err != nil {
		logger.Error("template engine boot failed", zap.Error(err))
		return nil, err
	}
	templates.UseEngine(eng, logger)

	// Default sanitize mode was validated in ValidateConfig.
	defaultMode, err := sanitize.ParseMode(appCfg.SanitizeMode)
	if err != nil {
		return nil, err
	}

	// Create error logger and error page handler.
	errLog := errorsfeature.NewErrorLogger(logger)
	errHandler := errorsfeature.NewHandler()

	fetcher := fetch.NewClient(fetch.Config{
		Timeout:      appCfg.FetchTimeout,
		Attempts:     appCfg.FetchAttempts,
		UserAgent:    appCfg.FetchUserAgent,
		MaxBodyBytes: appCfg.FetchMaxBody,
	}, logger)

	r := chi.NewRouter()

	// ─────────────────────────────────────────────────────────────────────────────
	// Global Middleware (applies to ALL routes)
	// ─────────────────────────────────────────────────────────────────────────────

	// Request timeout middleware: prevents requests from hanging indefinitely.
	// The budget covers upstream fetch time plus retries.
	r.Use(chimw.Timeout(60 * time.Second))

	// CORS middleware: must be early in the chain to handle preflight requests.
	r.Use(middleware.CORSFromConfig(coreCfg))

	// Security headers middleware: adds X-Frame-Options, X-Content-Type-Options, etc.
	r.Use(middleware.SecurityHeadersFromConfig(coreCfg))

	// CSRF protection for the URL submission form. Snapshot content is
	// GET-only so it never needs a token.
	csrfOpts := []csrf.Option{
		csrf.Secure(secure),
		csrf.Path("/"),
		csrf.CookieName("pageveil_csrf"),
		csrf.FieldName("csrf_token"),
		csrf.SameSite(csrf.SameSiteLaxMode),
		csrf.ErrorHandler(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			logger.Warn("CSRF validation failed",
				zap.String("path", req.URL.Path),
				zap.String("method", req.Method),
				zap.String("reason", csrf.FailureReason(req).Error()),
			)
			http.Error(w, "CSRF token invalid or missing", http.StatusForbidden)
		})),
	}
	// In dev mode, trust localhost origins for CSRF validation.
	if !secure {
		csrfOpts = append(csrfOpts, csrf.TrustedOrigins([]string{
			"localhost:8080",
			"localhost:3000",
			"127.0.0.1:8080",
			"127.0.0.1:3000",
		}))
	}
	r.Use(csrf.Protect([]byte(appCfg.CSRFKey), csrfOpts...))

	// ─────────────────────────────────────────────────────────────────────────────
	// Routes
	// ─────────────────────────────────────────────────────────────────────────────

	// Health check endpoints for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, deps.MongoDatabase, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))
	healthfeature.MountRootEndpoints(r, healthHandler)

	// /assets/* serves embedded assets (bundled into the binary)
	r.Handle("/assets/*", appresources.AssetsHandler("/assets"))

	// Landing page with the URL submission form
	homeHandler := homefeature.NewHandler(defaultMode, logger)
	r.Mount("/", homefeature.Routes(homeHandler))

	// Fetch, sanitize, and serve snapshots
	viewerHandler := viewerfeature.NewHandler(deps.MongoDatabase, fetcher, defaultMode, errLog, logger)
	r.Mount("/view", viewerfeature.Routes(viewerHandler))

	// Recent snapshots
	historyHandler := historyfeature.NewHandler(deps.MongoDatabase, appCfg.HistoryLimit, logger)
	r.Mount("/history", historyfeature.Routes(historyHandler))

	// Friendly 404 page for everything unmatched
	r.NotFound(errHandler.NotFound)

	return r, nil
}
