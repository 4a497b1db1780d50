// Package network provides network-related utilities.
package network

import (
	"net/http"
	"strings"
)

// ClientIP extracts the requesting client's IP address. It checks
// X-Forwarded-For and X-Real-IP for reverse proxy setups and falls back
// to RemoteAddr with the port stripped. The result is recorded on
// snapshots for audit purposes.
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		// First IP in the chain is the originating client.
		if idx := strings.Index(xff, ","); idx != -1 {
			return strings.TrimSpace(xff[:idx])
		}
		return strings.TrimSpace(xff)
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}

	if idx := strings.LastIndex(r.RemoteAddr, ":"); idx != -1 {
		return r.RemoteAddr[:idx]
	}
	return r.RemoteAddr
}
