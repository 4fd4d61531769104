// internal/app/features/team/handler.go
package team

import (
	"context"
	"net/http"
	"sort"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	userstore "github.com/productdesignexperts/api.connexus.team/internal/app/store/users"
	"github.com/productdesignexperts/api.connexus.team/internal/app/system/docfmt"
	"github.com/productdesignexperts/api.connexus.team/internal/app/system/fieldpick"
	"github.com/productdesignexperts/api.connexus.team/internal/app/system/httpjson"
	"github.com/productdesignexperts/api.connexus.team/internal/app/system/images"
	"github.com/productdesignexperts/api.connexus.team/internal/app/system/timeouts"
)

// leadershipStatuses are the member_status tags that place a member on the
// public team page. Standard members are excluded.
var leadershipStatuses = []string{
	"board", "advisor", "chairman", "president", "vice_president", "executive",
}

// rolePriority ranks leadership tags for display order. Lower sorts first;
// unrecognized tags rank last.
var rolePriority = map[string]int{
	"chairman":       1,
	"president":      1,
	"executive":      2,
	"vice_president": 2,
	"board":          3,
	"director":       3,
	"advisor":        4,
}

const unrankedPriority = 99

// Handler serves the public team roster.
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

// List serves GET /v1/team. The roster is small, so it is returned
// unpaginated.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	filter := userstore.NotDeleted()
	filter["member_status"] = bson.M{"$in": leadershipStatuses}
	filter["show_in_public_team"] = true

	opts := options.Find().SetProjection(bson.M{
		"first_name":    1,
		"last_name":     1,
		"board_title":   1,
		"photo":         1,
		"member_status": 1,
	})

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	docs, err := h.Store.FindRaw(ctx, filter, opts)
	if err != nil {
		h.Log.Error("list team", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	members := make([]member, 0, len(docs))
	for _, doc := range docs {
		members = append(members, h.toMember(docfmt.Document(doc)))
	}
	SortRoster(members)

	shaped := make([]map[string]any, 0, len(members))
	for _, m := range members {
		shaped = append(shaped, map[string]any{
			"name":  m.Name,
			"title": m.Title,
			"image": m.Image,
		})
	}

	httpjson.OK(w, map[string]any{
		"data": shaped,
		"meta": map[string]any{"total": len(shaped)},
	})
}

// member carries the sort keys alongside the public fields. Only the
// public fields reach the response.
type member struct {
	Name     string
	Title    string
	Image    string
	LastName string
	Priority int
}

func (h *Handler) toMember(doc map[string]any) member {
	first := fieldpick.First(doc, "first_name")
	last := fieldpick.First(doc, "last_name")
	name := strings.TrimSpace(first + " " + last)
	if name == "" {
		name = "Board Member"
	}
	title := fieldpick.First(doc, "board_title")
	if title == "" {
		title = "Director"
	}
	image := ""
	if photo := fieldpick.First(doc, "photo"); photo != "" {
		image = h.Images.Resolve(photo)
	}
	return member{
		Name:     name,
		Title:    title,
		Image:    image,
		LastName: last,
		Priority: Priority(fieldpick.Strings(doc, "member_status")),
	}
}

// Priority returns the best (lowest) rank across a member's leadership
// tags.
func Priority(tags []string) int {
	best := unrankedPriority
	for _, tag := range tags {
		if p, ok := rolePriority[strings.ToLower(strings.TrimSpace(tag))]; ok && p < best {
			best = p
		}
	}
	return best
}

// SortRoster orders the roster by role priority, then last name
// case-insensitively.
func SortRoster(members []member) {
	sort.SliceStable(members, func(i, j int) bool {
		if members[i].Priority != members[j].Priority {
			return members[i].Priority < members[j].Priority
		}
		return strings.ToLower(members[i].LastName) < strings.ToLower(members[j].LastName)
	})
}
