// Package apiclient is a generic client for OAuth2-protected REST APIs.
//
// Every call goes through one pipeline: the request URI is resolved against
// the configured host under the /api root, an Authorization header is attached
// (acquiring a token from /oauth on first use), the request is sent, and the
// outcome is classified.
//
// Quick start
//
//	import (
//	  "context"
//	  "log"
//	  "net/url"
//
//	  "github.com/fivetwenty-io/apicli/pkg/apiclient"
//	)
//
//	func example() {
//	  ctx := context.Background()
//
//	  client, err := apiclient.New(&apiclient.Config{
//	    Host:         "api.example.com",
//	    ClientID:     "client-id",
//	    ClientSecret: "client-secret",
//	  })
//	  if err != nil { log.Fatal(err) }
//
//	  // GET https://api.example.com/api/guest?page=2
//	  guests, err := client.Get(ctx, "guest", url.Values{"page": {"2"}})
//	  if err != nil { log.Fatal(err) }
//	  _ = guests
//	}
//
// # Results
//
// Successful JSON bodies are decoded into map[string]any, []any and scalar
// values, with numbers kept as json.Number. Bodies of other content types are
// returned as a string, and an empty body as nil.
//
// # Errors
//
// Failures are one of three kinds:
//
//   - *ConfigurationError: a local precondition failed (empty host, unusable
//     credentials, unsupported method). Nothing was sent.
//   - *ConnectionError: no response was obtained (DNS, refused, TLS, timeout).
//   - *APIError: the server answered with status 400 or above. Detail holds
//     the request and response as seen on the wire.
//
// Errors from the token request are returned unchanged, so a rejected grant
// is an *APIError for POST /api/oauth.
package apiclient
