package http

import "github.com/mrlokans/locallibrary/internal/sessions"

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router.
type RouterConfig struct {
	// Catalog stores
	Stores Stores

	// Health check target
	Database Pinger

	// UI paths; empty serves the embedded files
	TemplatesPath string
	StaticPath    string

	// Application info
	Version string

	// CSRF protection is enabled when CSRFSecret is set
	CSRFSecret    []byte
	SecureCookies bool

	// Flash messages (optional)
	Sessions *sessions.Manager
}
