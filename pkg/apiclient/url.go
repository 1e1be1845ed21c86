package apiclient

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/fivetwenty-io/apicli/internal/constants"
)

// ResolveURL turns uri into an absolute https URL on host. Only the path,
// query and fragment of uri are used; the path always ends up with a single
// leading slash and the /api root segment.
func ResolveURL(host, uri string) (*url.URL, error) {
	if host == "" {
		return nil, &ConfigurationError{Err: constants.ErrHostRequired}
	}

	parsed, err := url.Parse(uri)
	if err != nil {
		return nil, &ConfigurationError{Err: fmt.Errorf("invalid URL %q: %w", uri, err)}
	}

	resolved := &url.URL{
		Scheme:   constants.URLScheme,
		Host:     host,
		Path:     normalizePath(parsed.Path),
		RawQuery: parsed.RawQuery,
		Fragment: parsed.Fragment,
	}

	if parsed.RawPath != "" {
		resolved.RawPath = normalizePath(parsed.RawPath)
	}

	return resolved, nil
}

func normalizePath(path string) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	if !hasAPIRoot(path) {
		path = constants.APIRootSegment + path
	}

	return path
}

func hasAPIRoot(path string) bool {
	return path == constants.APIRootSegment || strings.HasPrefix(path, constants.APIRootSegment+"/")
}
