// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"

	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for the Connexus API.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, portal_base_url, etc.
//   - Environment variables: CONNEXUS_MONGO_URI, CONNEXUS_PORTAL_BASE_URL, etc.
//   - Command-line flags: --mongo_uri, --portal_base_url, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "connexus", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size (default: 100)"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size (default: 10)"},

	// Origins
	{Name: "portal_base_url", Default: "https://myococ.connexus.team", Desc: "Member portal origin for auth redirects and image URLs"},
	{Name: "site_base_url", Default: "https://orlandochamberofcommerce.com", Desc: "Public site origin for login redirect links"},
	{Name: "image_base_url", Default: "", Desc: "Origin for resolving stored image paths (blank means portal_base_url)"},

	// Upload storage for application photos
	{Name: "upload_dir", Default: "./uploads/applications", Desc: "Local directory for uploaded application photos"},
	{Name: "upload_url_prefix", Default: "/uploads/applications", Desc: "URL prefix uploaded photos are served under"},

	// Legacy admin login pair
	{Name: "admin_user", Default: "", Desc: "Legacy admin login name accepted by auth-login"},
	{Name: "admin_pass", Default: "", Desc: "Legacy admin password accepted by auth-login"},

	// Esendex SMS
	{Name: "sms_endpoint", Default: "", Desc: "Esendex send endpoint (blank means the service default)"},
	{Name: "sms_from", Default: "", Desc: "SMS sender phone number"},
	{Name: "sms_license_key", Default: "", Desc: "Esendex license key"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// It is called early in startup so that both WAFFLE and the app have
// access to configuration before any backends or handlers are built.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "CONNEXUS", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),

		PortalBaseURL: appValues.String("portal_base_url"),
		SiteBaseURL:   appValues.String("site_base_url"),
		ImageBaseURL:  appValues.String("image_base_url"),

		UploadDir:       appValues.String("upload_dir"),
		UploadURLPrefix: appValues.String("upload_url_prefix"),

		AdminUser: appValues.String("admin_user"),
		AdminPass: appValues.String("admin_pass"),

		SMSEndpoint:   appValues.String("sms_endpoint"),
		SMSFrom:       appValues.String("sms_from"),
		SMSLicenseKey: appValues.String("sms_license_key"),
	}

	if appCfg.ImageBaseURL == "" {
		appCfg.ImageBaseURL = appCfg.PortalBaseURL
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// Return nil to accept the loaded config, or an error to abort startup.
// The MongoDB URI format is checked here to catch configuration errors
// early, before attempting to connect.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}

	if appCfg.PortalBaseURL == "" {
		return fmt.Errorf("portal_base_url must be set")
	}
	if appCfg.SMSLicenseKey == "" {
		logger.Warn("sms_license_key not set; SMS delivery will fail until configured")
	}

	return nil
}
