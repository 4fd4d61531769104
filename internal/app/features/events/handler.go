// internal/app/features/events/handler.go
package events

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	eventstore "github.com/productdesignexperts/api.connexus.team/internal/app/store/events"
	"github.com/productdesignexperts/api.connexus.team/internal/app/system/docfmt"
	"github.com/productdesignexperts/api.connexus.team/internal/app/system/httpjson"
	"github.com/productdesignexperts/api.connexus.team/internal/app/system/images"
	"github.com/productdesignexperts/api.connexus.team/internal/app/system/paging"
	"github.com/productdesignexperts/api.connexus.team/internal/app/system/timeouts"
)

// Handler owns the public events endpoints.
type Handler struct {
	Store  *eventstore.Store
	Images images.Resolver
	Log    *zap.Logger
}

func NewHandler(db *mongo.Database, imgs images.Resolver, logger *zap.Logger) *Handler {
	return &Handler{
		Store:  eventstore.New(db),
		Images: imgs,
		Log:    logger,
	}
}

// List serves GET /v1/events.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page := paging.ParseDefault(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	docs, err := h.Store.ListRaw(ctx, page.Offset, page.Limit)
	if err != nil {
		h.Log.Error("list events", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	total, err := h.Store.Count(ctx)
	if err != nil {
		h.Log.Error("count events", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	shaped := make([]map[string]any, 0, len(docs))
	for _, doc := range docs {
		shaped = append(shaped, Shape(docfmt.Document(doc), h.Images))
	}

	httpjson.OK(w, map[string]any{
		"data": shaped,
		"meta": map[string]any{
			"total":  total,
			"limit":  page.Limit,
			"offset": page.Offset,
		},
	})
}

// Get serves GET /v1/events/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Invalid event ID")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	doc, err := h.Store.GetRaw(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.Error(w, http.StatusNotFound, "Event not found")
			return
		}
		h.Log.Error("get event", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	httpjson.OK(w, map[string]any{
		"data": Shape(docfmt.Document(doc), h.Images),
	})
}
