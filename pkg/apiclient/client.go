package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/oauth2"

	"github.com/fivetwenty-io/apicli/internal/auth"
	"github.com/fivetwenty-io/apicli/internal/constants"
	capihttp "github.com/fivetwenty-io/apicli/internal/http"
)

// Static errors for err113 compliance.
var (
	ErrConfigRequired = errors.New("config is required")
)

// Client is an authenticated REST API client. It is safe for concurrent use.
type Client struct {
	config     *Config
	httpClient *capihttp.Client
	tokens     *auth.TokenManager
	logger     Logger
}

// New creates a client. The host is not checked here; every call fails with
// a ConfigurationError while it is empty.
func New(config *Config) (*Client, error) {
	if config == nil {
		return nil, ErrConfigRequired
	}

	client := &Client{
		config:     config,
		httpClient: capihttp.NewClient(createHTTPClientOptions(config)...),
		logger:     config.Logger,
	}

	var tokenOpts []auth.Option
	if config.TokenPersister != nil {
		tokenOpts = append(tokenOpts, auth.WithPersister(config.TokenPersister))
	}

	client.tokens = auth.NewTokenManager(auth.Credentials{
		AccessToken:  config.AccessToken,
		TokenType:    config.TokenType,
		ClientID:     config.ClientID,
		ClientSecret: config.ClientSecret,
		Username:     config.Username,
		Password:     config.Password,
	}, client.exchange, tokenOpts...)

	return client, nil
}

// createHTTPClientOptions builds HTTP client options from config.
func createHTTPClientOptions(config *Config) []capihttp.Option {
	httpOpts := []capihttp.Option{
		capihttp.WithInsecureSkipVerify(config.InsecureTLS),
	}

	if config.Timeout > 0 {
		httpOpts = append(httpOpts, capihttp.WithTimeout(config.Timeout))
	}

	if config.Logger != nil {
		httpOpts = append(httpOpts, capihttp.WithLogger(config.Logger))
	}

	if config.Debug {
		httpOpts = append(httpOpts, capihttp.WithDebug(true))
	}

	if config.Verbose {
		trace := config.TraceWriter
		if trace == nil {
			trace = os.Stderr
		}

		httpOpts = append(httpOpts, capihttp.WithTrace(trace))
	}

	if config.UserAgent != "" {
		httpOpts = append(httpOpts, capihttp.WithUserAgent(config.UserAgent))
	}

	if config.HTTPClient != nil {
		httpOpts = append(httpOpts, capihttp.WithHTTPClient(config.HTTPClient))
	}

	return httpOpts
}

// Get performs an authorized GET.
func (c *Client) Get(ctx context.Context, uri string, query url.Values) (any, error) {
	return c.Invoke(ctx, &Request{Method: http.MethodGet, URI: uri, Query: query})
}

// Delete performs an authorized DELETE.
func (c *Client) Delete(ctx context.Context, uri string, query url.Values) (any, error) {
	return c.Invoke(ctx, &Request{Method: http.MethodDelete, URI: uri, Query: query})
}

// Post performs an authorized POST with a JSON body.
func (c *Client) Post(ctx context.Context, uri string, query url.Values, body any) (any, error) {
	return c.Invoke(ctx, &Request{Method: http.MethodPost, URI: uri, Query: query, Body: body})
}

// Put performs an authorized PUT with a JSON body.
func (c *Client) Put(ctx context.Context, uri string, query url.Values, body any) (any, error) {
	return c.Invoke(ctx, &Request{Method: http.MethodPut, URI: uri, Query: query, Body: body})
}

// Patch performs an authorized PATCH with a JSON body.
func (c *Client) Patch(ctx context.Context, uri string, query url.Values, body any) (any, error) {
	return c.Invoke(ctx, &Request{Method: http.MethodPatch, URI: uri, Query: query, Body: body})
}

// Token returns the cached token, acquiring one if needed.
func (c *Client) Token(ctx context.Context) (*oauth2.Token, error) {
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return nil, c.authorizationError(err)
	}

	return token, nil
}

// Invoke is the single dispatch path for every call, including the token
// exchange. It returns the decoded body for statuses below 400, and a
// *ConfigurationError, *ConnectionError or *APIError otherwise.
func (c *Client) Invoke(ctx context.Context, req *Request) (any, error) {
	method, err := ParseMethod(req.Method)
	if err != nil {
		return nil, err
	}

	target, err := ResolveURL(c.config.Host, targetWithQuery(req.URI, req.Query))
	if err != nil {
		return nil, err
	}

	headers := http.Header{}
	headers.Set(constants.HeaderAccept, constants.MediaTypeJSON)
	headers.Set(constants.HeaderRequestID, uuid.NewString())

	if !req.Unauthorized {
		value, err := c.tokens.AuthorizationHeader(ctx)
		if err != nil {
			return nil, c.authorizationError(err)
		}

		headers.Set(constants.HeaderAuthorization, value)
	}

	var payload []byte

	if hasBody(req.Body) {
		payload, err = json.Marshal(req.Body)
		if err != nil {
			return nil, &ConfigurationError{Err: fmt.Errorf("failed to encode request body: %w", err)}
		}

		headers.Set(constants.HeaderContentType, constants.MediaTypeJSON)
	}

	resp, err := c.httpClient.Do(ctx, &capihttp.Request{
		Method:  method,
		URL:     target.String(),
		Headers: headers,
		Body:    payload,
	})
	if err != nil {
		return nil, &ConnectionError{Method: method, URL: target.String(), Err: err}
	}

	if resp.StatusCode >= constants.HTTPStatusBadRequest {
		return nil, c.newAPIError(method, target, headers, payload, resp)
	}

	return c.decodeSuccess(method, target, resp), nil
}

// exchange posts a grant to the token endpoint through Invoke with
// authorization disabled.
func (c *Client) exchange(ctx context.Context, body map[string]string) (any, error) {
	c.debug("Requesting access token", map[string]interface{}{"grant_type": body["grant_type"]})

	return c.Invoke(ctx, &Request{
		Method:       http.MethodPost,
		URI:          constants.OAuthPath,
		Body:         body,
		Unauthorized: true,
	})
}

func (c *Client) authorizationError(err error) error {
	if errors.Is(err, auth.ErrCredentialsRequired) {
		return &ConfigurationError{Err: err}
	}

	return err
}

func (c *Client) decodeSuccess(method string, target *url.URL, resp *capihttp.Response) any {
	if !isJSON(resp.Headers) {
		if len(resp.Body) == 0 {
			return nil
		}

		return string(resp.Body)
	}

	body, err := decodeJSON(resp.Body)
	if err != nil {
		c.warn("Response declared JSON but could not be decoded", map[string]interface{}{
			"method": method,
			"path":   target.Path,
			"error":  err.Error(),
		})

		return string(resp.Body)
	}

	return body
}

func (c *Client) newAPIError(method string, target *url.URL, reqHeaders http.Header, payload []byte, resp *capihttp.Response) *APIError {
	detail := &ErrorDetail{
		Host: target.Host,
		Path: target.Path,
		Request: RequestDetail{
			ID:     reqHeaders.Get(constants.HeaderRequestID),
			Method: method,
			URL:    target.String(),
			Query:  target.Query(),
		},
		Response: ResponseDetail{
			StatusCode: resp.StatusCode,
			RawHeaders: rawHeaders(resp.Headers),
			RawBody:    string(resp.Body),
			Headers:    resp.Headers,
		},
	}

	if len(detail.Request.Query) == 0 {
		detail.Request.Query = nil
	}

	if len(payload) > 0 {
		body, err := decodeJSON(payload)
		if err == nil {
			detail.Request.Body = body
		}
	}

	if len(resp.Body) > 0 {
		body, err := decodeJSON(resp.Body)
		if err == nil {
			detail.Response.Body = body
		}
	}

	return &APIError{
		StatusCode: resp.StatusCode,
		Message:    fmt.Sprintf("%s %s failed with status %d", method, target.Path, resp.StatusCode),
		Detail:     detail,
	}
}

func (c *Client) debug(msg string, fields map[string]interface{}) {
	if c.logger != nil && c.config.Debug {
		c.logger.Debug(msg, fields)
	}
}

func (c *Client) warn(msg string, fields map[string]interface{}) {
	if c.logger != nil {
		c.logger.Warn(msg, fields)
	}
}

func isJSON(headers http.Header) bool {
	mediaType, _, err := mime.ParseMediaType(headers.Get(constants.HeaderContentType))
	if err != nil {
		return false
	}

	return mediaType == constants.MediaTypeJSON || strings.HasSuffix(mediaType, "+json")
}

// decodeJSON keeps numbers as json.Number so large integers survive.
func decodeJSON(data []byte) (any, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()

	var value any

	err := decoder.Decode(&value)
	if err != nil {
		return nil, fmt.Errorf("failed to decode JSON: %w", err)
	}

	return value, nil
}

func rawHeaders(headers http.Header) string {
	var buf bytes.Buffer

	_ = headers.Write(&buf)

	return buf.String()
}
