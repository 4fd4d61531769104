// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"
	"regexp"
	"strings"

	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	announcementsfeature "github.com/productdesignexperts/api.connexus.team/internal/app/features/announcements"
	apiinfofeature "github.com/productdesignexperts/api.connexus.team/internal/app/features/apiinfo"
	applicationfeature "github.com/productdesignexperts/api.connexus.team/internal/app/features/application"
	authapifeature "github.com/productdesignexperts/api.connexus.team/internal/app/features/authapi"
	businessesfeature "github.com/productdesignexperts/api.connexus.team/internal/app/features/businesses"
	checkemailfeature "github.com/productdesignexperts/api.connexus.team/internal/app/features/checkemail"
	contactfeature "github.com/productdesignexperts/api.connexus.team/internal/app/features/contact"
	discountsfeature "github.com/productdesignexperts/api.connexus.team/internal/app/features/discounts"
	eventregisterfeature "github.com/productdesignexperts/api.connexus.team/internal/app/features/eventregister"
	eventsfeature "github.com/productdesignexperts/api.connexus.team/internal/app/features/events"
	featuredeventsfeature "github.com/productdesignexperts/api.connexus.team/internal/app/features/featuredevents"
	healthfeature "github.com/productdesignexperts/api.connexus.team/internal/app/features/health"
	joineventsfeature "github.com/productdesignexperts/api.connexus.team/internal/app/features/joinevents"
	membersfeature "github.com/productdesignexperts/api.connexus.team/internal/app/features/members"
	pingfeature "github.com/productdesignexperts/api.connexus.team/internal/app/features/ping"
	teamfeature "github.com/productdesignexperts/api.connexus.team/internal/app/features/team"
	smslogstore "github.com/productdesignexperts/api.connexus.team/internal/app/store/smslog"
	userstore "github.com/productdesignexperts/api.connexus.team/internal/app/store/users"
	"github.com/productdesignexperts/api.connexus.team/internal/app/system/apikey"
	"github.com/productdesignexperts/api.connexus.team/internal/app/system/httpjson"
	"github.com/productdesignexperts/api.connexus.team/internal/app/system/images"
	"github.com/productdesignexperts/api.connexus.team/internal/app/system/notify"
	"github.com/productdesignexperts/api.connexus.team/internal/app/system/sms"
)

// versionSegment matches a version path prefix like v1 or v2.
var versionSegment = regexp.MustCompile(`^v\d+$`)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. The route table is static: every
// endpoint is mounted here, under /v1 for the versioned API surface.
//
// Three access tiers:
//   - public reads: events, featured-events, ping
//   - key-gated reads: members, businesses, discounts, announcements,
//     team, check-email
//   - public writes: contact, join-events, event-register,
//     membership-application, and the auth flows
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	db := deps.MongoDatabase

	// Shared infrastructure for the handlers.
	imgs := images.New(appCfg.ImageBaseURL)
	smsAudit := smslogstore.New(db, logger)
	smsClient := sms.New(appCfg.SMSEndpoint, appCfg.SMSFrom, appCfg.SMSLicenseKey, smsAudit, logger)
	notifier := notify.New(userstore.New(db), smsClient, smsAudit, logger)
	uploads := applicationfeature.NewUploadSaver(appCfg.UploadDir, appCfg.UploadURLPrefix, logger)

	r := chi.NewRouter()

	// The API is consumed cross-origin by the public site and the portal.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	r.NotFound(notFound)
	r.MethodNotAllowed(httpjson.MethodNotAllowed)

	// Root API description and health check.
	r.Get("/", apiinfofeature.NewHandler().ServeInfo)
	r.Mount("/health", healthfeature.Routes(healthfeature.NewHandler(deps.MongoClient, logger)))

	// Uploaded application photos, served from local disk.
	if appCfg.UploadDir != "" {
		r.Handle(appCfg.UploadURLPrefix+"/*", fileserver.Handler(appCfg.UploadURLPrefix, appCfg.UploadDir))
	}

	r.Route("/v1", func(v1 chi.Router) {
		v1.Get("/ping", pingfeature.NewHandler().ServePing)

		// Public reads.
		v1.Route("/events", eventsfeature.NewHandler(db, imgs, logger).MountRoutes)
		v1.Route("/featured-events", featuredeventsfeature.NewHandler(db, imgs, logger).MountRoutes)

		// Key-gated reads.
		v1.Group(func(keyed chi.Router) {
			keyed.Use(apikey.Require)
			keyed.Route("/members", membersfeature.NewHandler(db, imgs, logger).MountRoutes)
			keyed.Route("/businesses", businessesfeature.NewHandler(db, imgs, logger).MountRoutes)
			keyed.Route("/discounts", discountsfeature.NewHandler(db, logger).MountRoutes)
			keyed.Route("/announcements", announcementsfeature.NewHandler(db, logger).MountRoutes)
			keyed.Route("/team", teamfeature.NewHandler(db, imgs, logger).MountRoutes)
			keyed.Route("/check-email", checkemailfeature.NewHandler(db, imgs, logger).MountRoutes)
		})

		// Public writes.
		v1.Route("/contact", contactfeature.NewHandler(db, notifier, logger).MountRoutes)
		v1.Route("/join-events", joineventsfeature.NewHandler(db, logger).MountRoutes)
		v1.Route("/event-register", eventregisterfeature.NewHandler(db, notifier, appCfg.PortalBaseURL, appCfg.SiteBaseURL, logger).MountRoutes)
		v1.Route("/membership-application", applicationfeature.NewHandler(db, uploads, logger).MountRoutes)

		// Auth token flows.
		authapifeature.NewHandler(db, smsClient, appCfg.PortalBaseURL, appCfg.AdminUser, appCfg.AdminPass, logger).MountRoutes(v1)
	})

	return r, nil
}

// notFound distinguishes a wrong API version from an unknown resource.
// "/v2/events" gets a 400 pointing at /v1/; everything else is a 404.
func notFound(w http.ResponseWriter, r *http.Request) {
	seg := strings.TrimPrefix(r.URL.Path, "/")
	if i := strings.IndexByte(seg, '/'); i >= 0 {
		seg = seg[:i]
	}
	if versionSegment.MatchString(seg) && seg != "v1" {
		httpjson.Error(w, http.StatusBadRequest, "Invalid API version. Use /v1/")
		return
	}
	httpjson.Error(w, http.StatusNotFound, "Endpoint not found")
}
