// internal/app/bootstrap/appconfig.go
package bootstrap

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). WAFFLE's CoreConfig handles
// framework-level settings (ports, TLS, log level); AppConfig is
// everything specific to BrewLab.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string
	MongoDatabase    string
	MongoMaxPoolSize uint64
	MongoMinPoolSize uint64

	// Session management configuration
	SessionKey    string // secret key for signing session cookies
	SessionName   string // cookie name
	SessionDomain string // cookie domain (blank means current host)

	// Base URL for OAuth callbacks
	BaseURL string // e.g. "https://brewlab.example.com" or "http://localhost:3000"

	// Google OAuth sign-in (optional; disabled when client ID is blank)
	GoogleClientID     string
	GoogleClientSecret string

	// SuperAdmin bootstrap: this account is auto-approved and granted
	// admin on startup so there is always someone who can approve others.
	SuperAdminEmail string
}
