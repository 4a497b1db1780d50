// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"time"

	"github.com/dalemusser/pageveil/internal/app/system/sanitize"
	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// EnvVarPrefix is the prefix for environment variables.
const EnvVarPrefix = "PAGEVEIL"

// appConfigKeys defines the configuration keys for this application.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, fetch_timeout, etc.
//   - Environment variables: PAGEVEIL_MONGO_URI, PAGEVEIL_FETCH_TIMEOUT, etc.
//   - Command-line flags: --mongo_uri, --fetch_timeout, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "pageveil", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size (default: 100)"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size (default: 10)"},

	{Name: "csrf_key", Default: "dev-only-csrf-key-please-change-0123456789", Desc: "CSRF token signing key (32+ chars in production)"},

	// Upstream fetch configuration
	{Name: "fetch_timeout", Default: "10s", Desc: "Per-request timeout for upstream fetches"},
	{Name: "fetch_attempts", Default: 3, Desc: "Fetch attempts including retries"},
	{Name: "fetch_user_agent", Default: "", Desc: "User-Agent sent to upstream sites (blank uses built-in default)"},
	{Name: "fetch_max_body", Default: 5 * 1024 * 1024, Desc: "Maximum upstream response body size in bytes"},

	// Sanitization configuration
	{Name: "sanitize_mode", Default: "collapse", Desc: "Default link handling: 'collapse' or 'inert'"},

	// Snapshot retention and history
	{Name: "snapshot_ttl", Default: "24h", Desc: "How long stored snapshots are kept"},
	{Name: "history_limit", Default: 50, Desc: "Max rows on the history page"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// It is called early in startup so that both WAFFLE and the app have
// access to configuration before any backends or handlers are built.
//
// WAFFLE's config.LoadWithAppConfig handles:
//   - Loading from .env files
//   - Loading from config.yaml/json/toml files
//   - Reading environment variables (WAFFLE_* for core, PAGEVEIL_* for app)
//   - Parsing command-line flags
//   - Merging with precedence: flags > env > files > defaults
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, EnvVarPrefix, appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),

		CSRFKey: appValues.String("csrf_key"),

		FetchTimeout:   appValues.Duration("fetch_timeout", 10*time.Second),
		FetchAttempts:  uint(appValues.Int("fetch_attempts")),
		FetchUserAgent: appValues.String("fetch_user_agent"),
		FetchMaxBody:   int64(appValues.Int("fetch_max_body")),

		SanitizeMode: appValues.String("sanitize_mode"),

		SnapshotTTL:  appValues.Duration("snapshot_ttl", 24*time.Hour),
		HistoryLimit: int64(appValues.Int("history_limit")),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// Return nil to accept the loaded config, or an error to abort startup.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}

	if _, err := sanitize.ParseMode(appCfg.SanitizeMode); err != nil {
		logger.Error("invalid sanitize_mode", zap.String("sanitize_mode", appCfg.SanitizeMode))
		return fmt.Errorf("invalid sanitize_mode %q: %w", appCfg.SanitizeMode, err)
	}

	if appCfg.SnapshotTTL < time.Minute {
		return fmt.Errorf("snapshot_ttl %s is too short; minimum is 1m", appCfg.SnapshotTTL)
	}

	return nil
}
