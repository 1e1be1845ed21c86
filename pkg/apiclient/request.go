package apiclient

import (
	"fmt"
	"net/http"
	"net/url"
	"reflect"
	"strings"

	"github.com/fivetwenty-io/apicli/internal/constants"
)

// Request describes a single call.
type Request struct {
	Method string
	URI    string
	// Query is URL-encoded and appended to URI before resolution.
	Query url.Values
	// Body is sent as JSON when non-nil.
	Body any
	// Unauthorized skips the Authorization header entirely.
	Unauthorized bool
}

var supportedMethods = []string{
	http.MethodGet,
	http.MethodPost,
	http.MethodPatch,
	http.MethodPut,
	http.MethodDelete,
}

// ParseMethod normalizes method and rejects anything but GET, POST, PATCH, PUT and DELETE.
func ParseMethod(method string) (string, error) {
	upper := strings.ToUpper(strings.TrimSpace(method))
	for _, supported := range supportedMethods {
		if upper == supported {
			return upper, nil
		}
	}

	return "", &ConfigurationError{
		Err: fmt.Errorf("%w %q (expected one of %s)", constants.ErrInvalidMethod, method, strings.Join(supportedMethods, ", ")),
	}
}

func targetWithQuery(uri string, query url.Values) string {
	if len(query) == 0 {
		return uri
	}

	base, fragment, hasFragment := strings.Cut(uri, "#")

	separator := "?"
	if strings.Contains(base, "?") {
		separator = "&"
	}

	target := base + separator + query.Encode()
	if hasFragment {
		target += "#" + fragment
	}

	return target
}

// hasBody treats typed nils (nil maps, slices and pointers) as no body.
func hasBody(body any) bool {
	if body == nil {
		return false
	}

	value := reflect.ValueOf(body)
	switch value.Kind() {
	case reflect.Map, reflect.Slice, reflect.Pointer, reflect.Interface:
		return !value.IsNil()
	default:
		return true
	}
}
