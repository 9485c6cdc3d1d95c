package config

import (
	"time"
)

// Supported values for [Auth.Mode]. Exactly one authenticator variant is
// active per deployment; the mode is fixed at startup.
const (
	// AuthModeSession keeps identity in server-side session state keyed by
	// an opaque cookie.
	AuthModeSession = "session"

	// AuthModeToken issues a signed, self-contained JWT stored in an
	// HTTP-only cookie.
	AuthModeToken = "token"
)

// StructuredConfig is the top-level configuration container for the
// rolling-paper application. It aggregates all sub-configurations and is
// populated by merging values from environment variables, command-line flags,
// and an optional JSON file.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type StructuredConfig struct {
	// Auth holds authenticator selection and token parameters.
	Auth Auth `envPrefix:"AUTH_"`

	// Storage holds configuration for all persistence backends, including
	// the relational database and the uploaded media directory.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds network address and timeout settings for the HTTP
	// server.
	Server Server `envPrefix:"SERVER_"`

	// App holds application-level settings such as the version string.
	App App `envPrefix:"APP_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// Auth holds the authenticator configuration. The secrets must be kept
// confidential.
type Auth struct {
	// Mode selects the active authenticator variant:
	// [AuthModeSession] or [AuthModeToken].
	// Env: AUTH_MODE
	Mode string `env:"MODE"`

	// TokenSignKey is the secret key used to sign and verify JWT tokens
	// in token mode.
	// Env: AUTH_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenIssuer is the "iss" claim embedded in every issued JWT token.
	// It identifies the service that issued the token and is validated on
	// every authenticated request.
	// Env: AUTH_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`

	// TokenDuration specifies how long a JWT token remains valid after
	// issuance (e.g. "1h", "30m").
	// Env: AUTH_TOKEN_DURATION
	TokenDuration time.Duration `env:"TOKEN_DURATION"`

	// SessionDuration specifies how long an idle server-side session is
	// kept before the background janitor removes it. Zero disables pruning
	// entirely, so sessions live until logout or process restart.
	// Only meaningful in session mode.
	// Env: AUTH_SESSION_DURATION
	SessionDuration time.Duration `env:"SESSION_DURATION"`
}

// Storage groups the configuration for all storage backends used by the
// application.
type Storage struct {
	// DB holds the relational database connection settings.
	DB DB `envPrefix:"DB_"`

	// Files holds the file-system settings for uploaded media.
	Files Files `envPrefix:"FILES_"`
}

// DB holds connection settings for the relational database backend.
type DB struct {
	// DSN is the Data Source Name used to open the database connection.
	// A "postgres://..." DSN selects the pgx driver; any other value is
	// treated as a SQLite file path for local runs.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Files holds file-system settings for uploaded media (note attachments and
// profile pictures).
type Files struct {
	// UploadDir is the directory where uploaded files are stored, named
	// by a server-generated random identifier.
	// Env: STORAGE_FILES_UPLOAD_DIR
	UploadDir string `env:"UPLOAD_DIR"`

	// DefaultProfilePicture is the media reference substituted for users
	// who never uploaded an avatar.
	// Env: STORAGE_FILES_DEFAULT_PROFILE_PICTURE
	DefaultProfilePicture string `env:"DEFAULT_PROFILE_PICTURE"`
}

// Server holds network and timeout settings for the inbound transport layer.
type Server struct {
	// HTTPAddress is the TCP address on which the HTTP server listens,
	// in "host:port" format (e.g. "0.0.0.0:8080").
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout is the maximum duration allowed for a single inbound
	// request before the server cancels it (e.g. "30s", "1m").
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// App holds application-level configuration values.
type App struct {
	// Version is the semantic version string of the running application
	// (e.g. "1.2.3"). Exposed via the /api/version endpoint.
	// Env: APP_VERSION
	Version string `env:"VERSION"`
}

// GetStructuredConfig loads, merges, and validates the application
// configuration from all available sources in the following priority order
// (last source wins for non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//
// Fields still unset after the merge receive the defaults documented on
// [StructuredConfig]. Returns a fully populated *StructuredConfig or an
// error if any source fails to load or the final config fails validation.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		build()
}
