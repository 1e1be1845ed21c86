package constants

import "time"

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration files.
	ConfigFilePerm = 0600
)

// CLI configuration.
const (
	// EnvPrefix prefixes every environment variable the CLI reads.
	EnvPrefix = "APICLI"

	// ConfigDirName is created under the user's home directory.
	ConfigDirName = ".apicli"

	// ConfigFileName is the default config file inside ConfigDirName.
	ConfigFileName = "config.yml"

	// MinimumCallArgs is METHOD and URL.
	MinimumCallArgs = 2
)

// HTTP and network timeouts.
const (
	// DefaultHTTPTimeout is the default timeout for HTTP requests.
	DefaultHTTPTimeout = 30 * time.Second
)

// API layout.
const (
	// APIRootSegment prefixes every resolved request path.
	APIRootSegment = "/api"

	// OAuthPath is the token endpoint, relative to the API root.
	OAuthPath = "/oauth"

	// URLScheme is the only scheme requests are sent with.
	URLScheme = "https"
)

// OAuth2 values.
const (
	// DefaultTokenType is used when neither the caller nor the server names one.
	DefaultTokenType = "Bearer"

	// GrantTypePassword is the resource-owner-password grant.
	GrantTypePassword = "password"

	// GrantTypeClientCredentials is the client-credentials grant.
	GrantTypeClientCredentials = "client_credentials"
)

// HTTP headers and media types.
const (
	HeaderAuthorization = "Authorization"
	HeaderAccept        = "Accept"
	HeaderContentType   = "Content-Type"
	HeaderRequestID     = "X-Request-ID"
	HeaderUserAgent     = "User-Agent"

	// MediaTypeJSON is sent as Accept and as Content-Type for JSON bodies.
	MediaTypeJSON = "application/json"
)

// HTTP status codes commonly used.
const (
	// HTTPStatusBadRequest is the first status code classified as failure.
	HTTPStatusBadRequest = 400
)

// Process exit codes.
const (
	ExitOK            = 0
	ExitAPIError      = 1
	ExitConnectionErr = 2
	ExitConfigError   = 3
)

// Format constants.
const (
	// FormatJSON for JSON output format.
	FormatJSON = "json"

	// FormatYAML for YAML output format.
	FormatYAML = "yaml"

	// FormatTable for table output format.
	FormatTable = "table"
)

// UI and display constants.
const (
	// MaskedSecret is used to hide sensitive information.
	MaskedSecret = "***"

	// JSONIndent is the indentation used for pretty-printed JSON.
	JSONIndent = "  "
)
