// internal/app/features/members/handler.go
package members

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	userstore "github.com/productdesignexperts/api.connexus.team/internal/app/store/users"
	"github.com/productdesignexperts/api.connexus.team/internal/app/system/docfmt"
	"github.com/productdesignexperts/api.connexus.team/internal/app/system/fieldpick"
	"github.com/productdesignexperts/api.connexus.team/internal/app/system/httpjson"
	"github.com/productdesignexperts/api.connexus.team/internal/app/system/images"
	"github.com/productdesignexperts/api.connexus.team/internal/app/system/paging"
	"github.com/productdesignexperts/api.connexus.team/internal/app/system/timeouts"
	"github.com/productdesignexperts/api.connexus.team/internal/app/system/search"
)

// Handler serves the public member directory.
type Handler struct {
	Store  *userstore.Store
	Images images.Resolver
	Log    *zap.Logger
}

func NewHandler(db *mongo.Database, imgs images.Resolver, logger *zap.Logger) *Handler {
	return &Handler{
		Store:  userstore.New(db),
		Images: imgs,
		Log:    logger,
	}
}

// projection drops sensitive fields from public profiles. Email is hidden
// for privacy.
func projection() bson.M {
	return bson.M{
		"password_hash": 0,
		"api_token":     0,
		"email":         0,
	}
}

// searchFields are the text fields the q parameter matches against.
var searchFields = []string{"first_name", "last_name", "company", "business_description"}

// List serves GET /v1/members?q=.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page := paging.ParseDefault(r)

	filter := userstore.NotDeleted()
	if or := search.AnyField(r.URL.Query().Get("q"), searchFields...); or != nil {
		filter["$or"] = or
	}

	opts := options.Find().
		SetProjection(projection()).
		SetSort(bson.D{{Key: "last_name", Value: 1}, {Key: "first_name", Value: 1}}).
		SetSkip(page.Offset).
		SetLimit(page.Limit)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	docs, err := h.Store.FindRaw(ctx, filter, opts)
	if err != nil {
		h.Log.Error("list members", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	total, err := h.Store.Count(ctx, filter)
	if err != nil {
		h.Log.Error("count members", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	shaped := make([]map[string]any, 0, len(docs))
	for _, doc := range docs {
		shaped = append(shaped, h.shape(docfmt.Document(doc)))
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

// Get serves GET /v1/members/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Invalid member ID")
		return
	}

	filter := userstore.NotDeleted()
	filter["_id"] = id
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	doc, err := h.Store.FindOneRaw(ctx, filter, options.FindOne().SetProjection(projection()))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.Error(w, http.StatusNotFound, "Member not found")
			return
		}
		h.Log.Error("get member", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	httpjson.OK(w, map[string]any{"data": h.shape(docfmt.Document(doc))})
}

// shape resolves the photo fields to full URLs.
func (h *Handler) shape(doc map[string]any) map[string]any {
	if photo := fieldpick.First(doc, "photo"); photo != "" {
		doc["photo"] = h.Images.Resolve(photo)
	}
	if photo := fieldpick.First(doc, "company_photo"); photo != "" {
		doc["company_photo"] = h.Images.Resolve(photo)
	}
	return doc
}
