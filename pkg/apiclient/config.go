package apiclient

import (
	"io"
	"net/http"
	"time"

	"golang.org/x/oauth2"
)

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// TokenPersister receives every token the client acquires.
type TokenPersister interface {
	PersistToken(token *oauth2.Token) error
}

// Config represents client configuration for building a Client.
//
// # Authentication precedence
//
//  1. AccessToken (+ TokenType, default "Bearer"): used as is, never exchanged.
//  2. ClientID + Username + Password: OAuth2 password grant. ClientSecret is
//     sent only when set, so public clients work without one.
//  3. ClientID + ClientSecret: OAuth2 client_credentials grant.
//
// Tokens are requested from /oauth on the same host, lazily on the first
// authorized call, and reused for the lifetime of the Client.
//
// Host is read on every call; the remaining fields are read once by New.
type Config struct {
	// Host is the API host (and optional port). Required before any call.
	Host string

	// Timeout bounds every exchange. Zero selects the default.
	Timeout time.Duration
	// InsecureTLS disables certificate verification.
	InsecureTLS bool
	// Verbose traces each request and response to TraceWriter.
	Verbose bool
	// Debug logs request and response summaries through Logger.
	Debug bool

	AccessToken  string
	TokenType    string
	ClientID     string
	ClientSecret string
	Username     string
	Password     string

	// Logger: optional structured logger.
	Logger Logger
	// TraceWriter receives the verbose trace. Defaults to os.Stderr.
	TraceWriter io.Writer
	// UserAgent overrides the default User-Agent header.
	UserAgent string
	// HTTPClient replaces the transport's *http.Client; InsecureTLS is then ignored.
	HTTPClient *http.Client
	// TokenPersister is notified after each token acquisition.
	TokenPersister TokenPersister
}
