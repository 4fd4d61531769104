// internal/app/features/featuredevents/handler.go
package featuredevents

import (
	"context"
	"math/rand"
	"net/http"
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/productdesignexperts/api.connexus.team/internal/app/features/events"
	eventstore "github.com/productdesignexperts/api.connexus.team/internal/app/store/events"
	"github.com/productdesignexperts/api.connexus.team/internal/app/system/docfmt"
	"github.com/productdesignexperts/api.connexus.team/internal/app/system/fieldpick"
	"github.com/productdesignexperts/api.connexus.team/internal/app/system/httpjson"
	"github.com/productdesignexperts/api.connexus.team/internal/app/system/images"
	"github.com/productdesignexperts/api.connexus.team/internal/app/system/timeouts"
)

// Handler picks random events for the homepage featured slot.
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

// List serves GET /v1/featured-events?count=N. count is clamped to [1,10]
// and defaults to 1; a count of 1 returns a single object rather than a
// list.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	count := 1
	if raw := r.URL.Query().Get("count"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			count = n
		}
	}
	if count < 1 {
		count = 1
	}
	if count > 10 {
		count = 10
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	docs, err := h.Store.AllRaw(ctx)
	if err != nil {
		h.Log.Error("load events for featured selection", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	if len(docs) == 0 {
		httpjson.OK(w, map[string]any{"data": []map[string]any{placeholder(h.Images)}})
		return
	}

	sampled := sample(docs, count)
	featured := make([]map[string]any, 0, len(sampled))
	for _, doc := range sampled {
		featured = append(featured, h.format(doc))
	}

	if count == 1 {
		httpjson.OK(w, map[string]any{"data": featured[0]})
		return
	}
	httpjson.OK(w, map[string]any{"data": featured})
}

// sample picks up to n distinct documents uniformly at random.
func sample(docs []bson.M, n int) []bson.M {
	if n > len(docs) {
		n = len(docs)
	}
	picked := make([]bson.M, len(docs))
	copy(picked, docs)
	rand.Shuffle(len(picked), func(i, j int) {
		picked[i], picked[j] = picked[j], picked[i]
	})
	return picked[:n]
}

// format builds the featured card shape from a raw event document.
func (h *Handler) format(raw bson.M) map[string]any {
	event := docfmt.Document(raw)

	dateStr := fieldpick.First(event, "date")
	if len(dateStr) >= 10 {
		dateStr = dateStr[:10]
	}
	if dateStr == "" {
		dateStr = time.Now().UTC().Format("2006-01-02")
	}

	timeStr := fieldpick.First(event, "time")
	if timeStr == "" {
		timeStr = "UNKNOWN"
	} else {
		timeStr = events.DisplayTime(timeStr)
	}

	price := fieldpick.First(event, "price")
	if price == "" {
		price = "UNKNOWN"
	}

	imageRef := fieldpick.First(event, "image")
	if imageRef == "" {
		imageRef = events.DefaultImage
	}

	title := fieldpick.First(event, "title")
	// Alt text falls back to "Event", not the UNKNOWN shown for the title.
	imageAlt := title
	if imageAlt == "" {
		imageAlt = "Event"
	}
	imageAlt += " image"
	if title == "" {
		title = "UNKNOWN"
	}
	location := fieldpick.First(event, "location")
	if location == "" {
		location = "UNKNOWN"
	}
	description := fieldpick.First(event, "description")
	if description == "" {
		description = "UNKNOWN"
	}

	id, _ := event["id"].(string)
	detailHref := "/event-detail-page.php?id=" + id

	return map[string]any{
		"id":          event["id"],
		"title":       title,
		"date":        dateStr,
		"time":        timeStr,
		"location":    location,
		"description": description,
		"image": map[string]any{
			"src": h.Images.Resolve(imageRef),
			"alt": imageAlt,
		},
		"primary_cta": map[string]any{
			"label": events.CTALabel(price),
			"href":  detailHref,
		},
		"secondary_cta": map[string]any{
			"label": "Details",
			"href":  detailHref,
		},
	}
}

// placeholder is the synthetic card returned when no events exist.
func placeholder(imgs images.Resolver) map[string]any {
	return map[string]any{
		"id":          nil,
		"title":       "UNKNOWN",
		"date":        time.Now().UTC().Format("2006-01-02"),
		"time":        "UNKNOWN",
		"location":    "UNKNOWN",
		"description": "No events available.",
		"image": map[string]any{
			"src": imgs.Resolve(events.DefaultImage),
			"alt": "Event placeholder",
		},
		"primary_cta": map[string]any{
			"label": "View Events",
			"href":  "/events.php",
		},
		"secondary_cta": nil,
	}
}
