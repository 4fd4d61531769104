// internal/app/system/paging/paging.go
package paging

import (
	"net/http"
	"strconv"
)

// DefaultLimit is the page size used when a list request does not ask for
// one. MaxLimit caps what a client may request.
const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// Page is a bounded limit/offset window parsed from a list request.
type Page struct {
	Limit  int64
	Offset int64
}

// Parse reads the limit and offset query parameters. limit clamps to
// [1, maxLimit] and falls back to defaultLimit when absent or non-numeric;
// offset clamps to >= 0. Malformed input never fails a request.
func Parse(r *http.Request, defaultLimit, maxLimit int) Page {
	q := r.URL.Query()

	limit := defaultLimit
	if s := q.Get("limit"); s != "" {
		if n, err := strconv.Atoi(s); err == nil {
			limit = n
		}
	}
	if limit < 1 {
		limit = 1
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	offset := 0
	if s := q.Get("offset"); s != "" {
		if n, err := strconv.Atoi(s); err == nil {
			offset = n
		}
	}
	if offset < 0 {
		offset = 0
	}

	return Page{Limit: int64(limit), Offset: int64(offset)}
}

// ParseDefault is Parse with the standard bounds.
func ParseDefault(r *http.Request) Page {
	return Parse(r, DefaultLimit, MaxLimit)
}
