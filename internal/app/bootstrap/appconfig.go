// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). They represent *app-level*
// configuration, not WAFFLE core configuration.
//
// WAFFLE's CoreConfig handles framework-level settings like:
//   - HTTP/HTTPS ports and TLS configuration
//   - Logging level and format
//   - CORS settings
//   - Request body size limits
//   - Database connection timeouts
//
// AppConfig is where everything specific to this application lives.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64 // Maximum connections in pool (default: 100)
	MongoMinPoolSize uint64 // Minimum connections to keep warm (default: 10)

	// CSRF protection configuration
	CSRFKey string // Secret key for CSRF token signing (32 bytes, must be strong in production)

	// Upstream fetch configuration
	FetchTimeout   time.Duration // Per-request timeout for upstream fetches (default: 10s)
	FetchAttempts  uint          // Attempts per fetch including retries (default: 3)
	FetchUserAgent string        // User-Agent sent to upstream sites (blank uses built-in default)
	FetchMaxBody   int64         // Maximum upstream response body size in bytes

	// Sanitization configuration
	SanitizeMode string // Default link handling: "collapse" or "inert"

	// Snapshot retention and history
	SnapshotTTL  time.Duration // How long stored snapshots are kept (default: 24h)
	HistoryLimit int64         // Max rows on the history page (default: 50)
}
