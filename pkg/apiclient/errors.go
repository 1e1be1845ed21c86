package apiclient

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
)

// ConfigurationError reports a precondition violated before any network I/O:
// missing host, unusable credentials, invalid method or parameters.
type ConfigurationError struct {
	Err error
}

// Error implements the error interface.
func (e *ConfigurationError) Error() string {
	return "configuration error: " + e.Err.Error()
}

// Unwrap returns the underlying cause.
func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// ConnectionError reports a transport failure: no response was obtained.
type ConnectionError struct {
	Method string
	URL    string
	Err    error
}

// Error implements the error interface.
func (e *ConnectionError) Error() string {
	return fmt.Sprintf("%s %s: connection error: %v", e.Method, e.URL, e.Err)
}

// Unwrap returns the underlying cause.
func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// APIError reports a response with status 400 or above.
type APIError struct {
	StatusCode int
	Message    string
	Detail     *ErrorDetail
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return e.Message
}

// ErrorDetail is a snapshot of the failed exchange.
type ErrorDetail struct {
	Host     string         `json:"host"     yaml:"host"`
	Path     string         `json:"path"     yaml:"path"`
	Request  RequestDetail  `json:"request"  yaml:"request"`
	Response ResponseDetail `json:"response" yaml:"response"`
}

// RequestDetail echoes the request that failed.
type RequestDetail struct {
	ID     string     `json:"id,omitempty"    yaml:"id,omitempty"`
	Method string     `json:"method"          yaml:"method"`
	URL    string     `json:"url"             yaml:"url"`
	Query  url.Values `json:"query,omitempty" yaml:"query,omitempty"`
	Body   any        `json:"body,omitempty"  yaml:"body,omitempty"`
}

// ResponseDetail captures the failing response. Body is set only when the
// raw body could be decoded.
type ResponseDetail struct {
	StatusCode int         `json:"status_code"    yaml:"status_code"`
	RawHeaders string      `json:"raw_headers"    yaml:"raw_headers"`
	RawBody    string      `json:"raw_body"       yaml:"raw_body"`
	Headers    http.Header `json:"headers"        yaml:"headers"`
	Body       any         `json:"body,omitempty" yaml:"body,omitempty"`
}

// IsConfigurationError reports whether err is a ConfigurationError.
func IsConfigurationError(err error) bool {
	configErr := &ConfigurationError{}

	return errors.As(err, &configErr)
}

// IsConnectionError reports whether err is a ConnectionError.
func IsConnectionError(err error) bool {
	connErr := &ConnectionError{}

	return errors.As(err, &connErr)
}

// AsAPIError returns the APIError in err's chain, if any.
func AsAPIError(err error) (*APIError, bool) {
	apiErr := &APIError{}
	if errors.As(err, &apiErr) {
		return apiErr, true
	}

	return nil, false
}

// IsNotFound checks if the error is a 404 response.
func IsNotFound(err error) bool {
	return hasStatus(err, http.StatusNotFound)
}

// IsUnauthorized checks if the error is a 401 response.
func IsUnauthorized(err error) bool {
	return hasStatus(err, http.StatusUnauthorized)
}

// IsForbidden checks if the error is a 403 response.
func IsForbidden(err error) bool {
	return hasStatus(err, http.StatusForbidden)
}

func hasStatus(err error, status int) bool {
	apiErr, ok := AsAPIError(err)

	return ok && apiErr.StatusCode == status
}
