// internal/app/features/announcements/handler.go
package announcements

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	announcementstore "github.com/productdesignexperts/api.connexus.team/internal/app/store/announcements"
	"github.com/productdesignexperts/api.connexus.team/internal/app/system/docfmt"
	"github.com/productdesignexperts/api.connexus.team/internal/app/system/httpjson"
	"github.com/productdesignexperts/api.connexus.team/internal/app/system/paging"
	"github.com/productdesignexperts/api.connexus.team/internal/app/system/timeouts"
)

// defaultLimit is higher than the shared default because the portal shows
// the announcement feed unpaginated.
const defaultLimit = 50

// Handler serves public announcements.
type Handler struct {
	Store *announcementstore.Store
	Log   *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{Store: announcementstore.New(db), Log: logger}
}

// List serves GET /v1/announcements.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page := paging.Parse(r, defaultLimit, paging.MaxLimit)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	docs, err := h.Store.ListRaw(ctx, page.Offset, page.Limit)
	if err != nil {
		h.Log.Error("list announcements", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	total, err := h.Store.Count(ctx)
	if err != nil {
		h.Log.Error("count announcements", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	httpjson.OK(w, map[string]any{
		"data": docfmt.Documents(docs),
		"meta": map[string]any{
			"total":  total,
			"limit":  page.Limit,
			"offset": page.Offset,
		},
	})
}

// Get serves GET /v1/announcements/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Invalid announcement ID")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	doc, err := h.Store.GetRaw(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.Error(w, http.StatusNotFound, "Announcement not found")
			return
		}
		h.Log.Error("get announcement", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	httpjson.OK(w, map[string]any{"data": docfmt.Document(doc)})
}
