// internal/app/features/ping/handler.go
package ping

import (
	"net/http"
	"time"

	"github.com/productdesignexperts/api.connexus.team/internal/app/features/apiinfo"
	"github.com/productdesignexperts/api.connexus.team/internal/app/system/httpjson"
)

// Handler answers liveness probes. No store access.
type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

func (h *Handler) ServePing(w http.ResponseWriter, r *http.Request) {
	httpjson.OK(w, map[string]any{
		"ok":      true,
		"time":    time.Now().UTC().Format(time.RFC3339),
		"version": apiinfo.Version,
	})
}
