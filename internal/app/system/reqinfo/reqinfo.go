// Package reqinfo extracts client metadata recorded on audit rows.
package reqinfo

import (
	"net"
	"net/http"
	"strings"
)

// ClientIP returns the originating client IP, preferring proxy headers
// (X-Forwarded-For, then X-Real-IP) over the socket address.
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		// XFF may contain a list; first entry is the original client.
		parts := strings.Split(xff, ",")
		if len(parts) > 0 {
			return strings.TrimSpace(parts[0])
		}
	}
	if xr := r.Header.Get("X-Real-IP"); xr != "" {
		return strings.TrimSpace(xr)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil && host != "" {
		return host
	}
	return r.RemoteAddr
}

// UserAgent returns the request's User-Agent header.
func UserAgent(r *http.Request) string {
	return r.Header.Get("User-Agent")
}
