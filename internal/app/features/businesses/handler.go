// internal/app/features/businesses/handler.go
package businesses

import (
	"context"
	"errors"
	"net/http"
	"strings"

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

// Handler serves the business directory, a derived view over member
// profiles that opted in with show_in_business_directory.
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

func directoryFilter() bson.M {
	filter := userstore.NotDeleted()
	filter["show_in_business_directory"] = true
	return filter
}

var searchFields = []string{
	"company", "company_name", "company_description",
	"business_description", "business_category",
}

// List serves GET /v1/businesses?category=&city=&q=.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page := paging.ParseDefault(r)
	query := r.URL.Query()

	filter := directoryFilter()
	if category := strings.TrimSpace(query.Get("category")); category != "" {
		filter["business_category"] = search.Substring(category)
	}
	if city := strings.TrimSpace(query.Get("city")); city != "" {
		filter["company_city"] = search.Substring(city)
	}
	if or := search.AnyField(query.Get("q"), searchFields...); or != nil {
		filter["$or"] = or
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "company_name", Value: 1}, {Key: "company", Value: 1}}).
		SetSkip(page.Offset).
		SetLimit(page.Limit)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	docs, err := h.Store.FindRaw(ctx, filter, opts)
	if err != nil {
		h.Log.Error("list businesses", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	total, err := h.Store.Count(ctx, filter)
	if err != nil {
		h.Log.Error("count businesses", zap.Error(err))
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

// Get serves GET /v1/businesses/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Invalid business ID")
		return
	}

	filter := directoryFilter()
	filter["_id"] = id
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	doc, err := h.Store.FindOneRaw(ctx, filter, options.FindOne())
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.Error(w, http.StatusNotFound, "Business not found")
			return
		}
		h.Log.Error("get business", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	httpjson.OK(w, map[string]any{"data": h.shape(docfmt.Document(doc))})
}

// shape maps a member profile to the public business directory format,
// falling back through the legacy/new field pairs.
func (h *Handler) shape(doc map[string]any) map[string]any {
	if doc == nil {
		return nil
	}

	contactName := strings.TrimSpace(
		fieldpick.First(doc, "first_name") + " " + fieldpick.First(doc, "last_name"))

	logo := fieldpick.First(doc, "company_photo")
	if logo != "" {
		logo = h.Images.Resolve(logo)
	}

	return map[string]any{
		"id":           doc["id"],
		"businessName": fieldpick.First(doc, "company_name", "company"),
		"logoUrl":      logo,
		"category":     fieldpick.First(doc, "business_category"),
		"addressLine1": fieldpick.First(doc, "company_address"),
		"city":         fieldpick.First(doc, "company_city"),
		"state":        fieldpick.First(doc, "company_state"),
		"zip":          fieldpick.First(doc, "company_zip"),
		"phone":        fieldpick.First(doc, "company_phone", "phone"),
		"websiteUrl":   fieldpick.First(doc, "company_website"),
		"description":  fieldpick.First(doc, "company_description", "business_description"),
		"contactName":  contactName,
	}
}
