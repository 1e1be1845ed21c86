package apiclient

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTargetWithQuery(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		uri      string
		query    url.Values
		expected string
	}{
		{name: "no query", uri: "/guest", expected: "/guest"},
		{name: "empty query", uri: "/guest", query: url.Values{}, expected: "/guest"},
		{name: "appended", uri: "/guest", query: url.Values{"page": {"2"}}, expected: "/guest?page=2"},
		{name: "existing query", uri: "/guest?a=1", query: url.Values{"b": {"2"}}, expected: "/guest?a=1&b=2"},
		{name: "encoded", uri: "guest", query: url.Values{"q": {"a b&c"}}, expected: "guest?q=a+b%26c"},
		{name: "fragment kept last", uri: "/guest#top", query: url.Values{"page": {"2"}}, expected: "/guest?page=2#top"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, targetWithQuery(tt.uri, tt.query))
		})
	}
}

func TestHasBody(t *testing.T) {
	t.Parallel()

	var (
		nilMap   map[string]any
		nilSlice []any
		nilPtr   *struct{}
	)

	assert.False(t, hasBody(nil))
	assert.False(t, hasBody(nilMap))
	assert.False(t, hasBody(nilSlice))
	assert.False(t, hasBody(nilPtr))

	assert.True(t, hasBody(map[string]any{}))
	assert.True(t, hasBody([]any{}))
	assert.True(t, hasBody("text"))
	assert.True(t, hasBody(0))
	assert.True(t, hasBody(false))
}
