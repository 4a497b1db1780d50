// internal/domain/models/snapshot.go
package models

import "time"

// Snapshot is one sanitized fetch: the neutralized document plus enough
// metadata for the history view. Snapshots are short-lived; a TTL index on
// created_at expires them.
type Snapshot struct {
	ID            string    `bson:"_id"`                 // UUID string
	SourceURL     string    `bson:"source_url"`          // URL after input normalization
	FinalURL      string    `bson:"final_url,omitempty"` // URL after redirects
	StatusCode    int       `bson:"status_code"`
	Mode          string    `bson:"mode"` // sanitize mode used (collapse/inert)
	Title         string    `bson:"title,omitempty"`
	HTML          string    `bson:"html"` // the sanitized document text
	ClientIP      string    `bson:"client_ip,omitempty"`
	UsedFallback  bool      `bson:"used_fallback"` // Google fallback search was used
	FetchDuration int64     `bson:"fetch_ms"`      // fetch time in milliseconds
	CreatedAt     time.Time `bson:"created_at"`
}

// Age returns how long ago the snapshot was taken.
func (s *Snapshot) Age(now time.Time) time.Duration {
	return now.Sub(s.CreatedAt)
}
