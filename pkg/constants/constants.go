// Package constants provides shared constants used throughout the aadsync codebase.
// This includes timeouts, directory service endpoints, file permissions and
// other values that should be consistent across the application.
package constants

import "time"

// Timeout constants define various timeout durations used in the application
const (
	// DefaultHTTPTimeout is the standard timeout for a single directory API request
	DefaultHTTPTimeout = 30 * time.Second

	// ShutdownTimeout bounds graceful shutdown after a failed run
	ShutdownTimeout = 5 * time.Second

	// TokenRefreshMargin is how long before expiry a cached access token is refreshed
	TokenRefreshMargin = 5 * time.Minute
)

// Directory service constants
const (
	// GraphBaseURL is the Microsoft Graph v1.0 endpoint
	GraphBaseURL = "https://graph.microsoft.com/v1.0"

	// GraphScope is the token scope requested for Microsoft Graph
	GraphScope = "https://graph.microsoft.com/.default"

	// GraphServiceName identifies the directory service in API errors
	GraphServiceName = "graph"

	// ManagedIdentityType is the servicePrincipalType excluded from enterprise app lookups
	ManagedIdentityType = "ManagedIdentity"
)

// CLI constants
const (
	// SourceSeparator separates identifiers in a source specification
	SourceSeparator = ";"

	// RemoveNoEmailFlag enables the no-email purge pass
	RemoveNoEmailFlag = "remove-no-email"

	// EnvPrefix prefixes environment variables read through viper
	EnvPrefix = "AADSYNC"

	// ConfigName is the config file base name searched in $HOME and the working directory
	ConfigName = ".aadsync"
)

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)
