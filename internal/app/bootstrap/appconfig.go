// internal/app/bootstrap/appconfig.go
package bootstrap

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). They represent *app-level*
// configuration, not WAFFLE core configuration.
//
// WAFFLE's CoreConfig handles framework-level settings like HTTP/HTTPS
// ports, TLS, logging level, and request body limits. AppConfig is where
// everything specific to the Connexus API lives: the MongoDB connection,
// the portal and public-site origins, upload storage, the legacy admin
// credential pair, and the Esendex SMS credentials.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64 // Max connection pool size
	MongoMinPoolSize uint64 // Min connection pool size

	// PortalBaseURL is the member portal origin. Auth redirects point
	// here, and stored root-relative image paths are resolved against it.
	PortalBaseURL string

	// SiteBaseURL is the public marketing site origin, used when building
	// login redirect links for event registration.
	SiteBaseURL string

	// ImageBaseURL overrides the origin used to resolve stored image
	// paths. Blank means PortalBaseURL.
	ImageBaseURL string

	// Upload storage for membership application photos.
	UploadDir       string // Local directory for uploaded files
	UploadURLPrefix string // URL prefix the files are served under

	// Legacy admin credential pair accepted by auth-login.
	AdminUser string
	AdminPass string

	// Esendex SMS configuration
	SMSEndpoint   string // Send endpoint (blank means the Esendex default)
	SMSFrom       string // Sender phone number
	SMSLicenseKey string // Esendex license key
}
