// internal/app/features/discounts/handler.go
package discounts

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	discountstore "github.com/productdesignexperts/api.connexus.team/internal/app/store/discounts"
	"github.com/productdesignexperts/api.connexus.team/internal/app/system/docfmt"
	"github.com/productdesignexperts/api.connexus.team/internal/app/system/httpjson"
	"github.com/productdesignexperts/api.connexus.team/internal/app/system/paging"
	"github.com/productdesignexperts/api.connexus.team/internal/app/system/timeouts"
)

// Handler serves member discounts.
type Handler struct {
	Store *discountstore.Store
	Log   *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{Store: discountstore.New(db), Log: logger}
}

// List serves GET /v1/discounts.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page := paging.ParseDefault(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	docs, err := h.Store.ListRaw(ctx, page.Offset, page.Limit)
	if err != nil {
		h.Log.Error("list discounts", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	total, err := h.Store.Count(ctx)
	if err != nil {
		h.Log.Error("count discounts", zap.Error(err))
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

// Get serves GET /v1/discounts/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Invalid discount ID")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	doc, err := h.Store.GetRaw(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.Error(w, http.StatusNotFound, "Discount not found")
			return
		}
		h.Log.Error("get discount", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	httpjson.OK(w, map[string]any{"data": docfmt.Document(doc)})
}
