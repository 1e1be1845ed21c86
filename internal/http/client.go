// Package http is the transport under the API client: it sends one prepared
// request and hands back the raw response. Retries are disabled; a transport
// failure is always returned as an error and never as a response.
package http

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/hashicorp/go-cleanhttp"
	"github.com/hashicorp/go-retryablehttp"

	"github.com/fivetwenty-io/apicli/internal/constants"
)

// Logger is the structured logger used by the transport.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Request is a fully prepared outbound request.
type Request struct {
	Method  string
	URL     string
	Headers http.Header
	Body    []byte
}

// Response is the raw outcome of an exchange.
type Response struct {
	StatusCode int
	Status     string
	Proto      string
	Headers    http.Header
	Body       []byte
}

// Client sends requests over a retryablehttp client configured for a single attempt.
type Client struct {
	retryClient *retryablehttp.Client
	httpClient  *http.Client
	logger      Logger
	debug       bool
	trace       io.Writer
	userAgent   string
	timeout     time.Duration
	insecure    bool
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger.
func WithLogger(logger Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithDebug enables request/response logging.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithTrace writes every request and response to w.
func WithTrace(w io.Writer) Option {
	return func(c *Client) {
		c.trace = w
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithTimeout bounds every exchange.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// WithInsecureSkipVerify disables TLS certificate verification.
func WithInsecureSkipVerify(insecure bool) Option {
	return func(c *Client) {
		c.insecure = insecure
	}
}

// WithHTTPClient replaces the underlying *http.Client. TLS settings are then
// left to that client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// NewClient creates a transport client.
func NewClient(opts ...Option) *Client {
	client := &Client{
		timeout: constants.DefaultHTTPTimeout,
	}

	for _, opt := range opts {
		opt(client)
	}

	if client.httpClient == nil {
		transport := cleanhttp.DefaultPooledTransport()
		if client.insecure {
			transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} // #nosec G402 -- explicitly requested with --insecure
		}

		client.httpClient = &http.Client{Transport: transport}
	} else {
		shallow := *client.httpClient
		client.httpClient = &shallow
	}

	client.httpClient.Timeout = client.timeout

	retryClient := retryablehttp.NewClient()
	retryClient.HTTPClient = client.httpClient
	retryClient.RetryMax = 0
	retryClient.CheckRetry = noRetry
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler
	retryClient.Logger = nil

	if client.logger != nil && client.debug {
		retryClient.Logger = &leveledLogger{logger: client.logger}
	}

	client.retryClient = retryClient

	return client
}

// noRetry never asks for another attempt. Transport errors are handed back
// unchanged; status classification is left to the caller.
func noRetry(ctx context.Context, _ *http.Response, err error) (bool, error) {
	if ctx.Err() != nil {
		return false, ctx.Err()
	}

	return false, err
}

// Do performs req. A non-nil error means no response was obtained.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	var body interface{}
	if req.Body != nil {
		body = req.Body
	}

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, req.Method, req.URL, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	for key, values := range req.Headers {
		for _, value := range values {
			httpReq.Header.Add(key, value)
		}
	}

	if c.userAgent != "" {
		httpReq.Header.Set(constants.HeaderUserAgent, c.userAgent)
	}

	c.traceRequest(httpReq, req.Body)

	if c.logger != nil && c.debug {
		c.logger.Debug("HTTP Request", map[string]interface{}{
			"method":     req.Method,
			"url":        req.URL,
			"request_id": req.Headers.Get(constants.HeaderRequestID),
		})
	}

	start := time.Now()

	httpResp, err := c.retryClient.Do(httpReq)
	if err != nil {
		if httpResp != nil && httpResp.Body != nil {
			_ = httpResp.Body.Close()
		}

		if c.logger != nil && c.debug {
			c.logger.Debug("HTTP Request failed", map[string]interface{}{
				"method": req.Method,
				"url":    req.URL,
				"error":  err.Error(),
			})
		}

		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	defer func() {
		_ = httpResp.Body.Close()
	}()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	resp := &Response{
		StatusCode: httpResp.StatusCode,
		Status:     httpResp.Status,
		Proto:      httpResp.Proto,
		Headers:    httpResp.Header,
		Body:       respBody,
	}

	c.traceResponse(resp)

	if c.logger != nil && c.debug {
		c.logger.Debug("HTTP Response", map[string]interface{}{
			"method":      req.Method,
			"url":         req.URL,
			"status_code": resp.StatusCode,
			"duration_ms": time.Since(start).Milliseconds(),
		})
	}

	return resp, nil
}

func (c *Client) traceRequest(req *retryablehttp.Request, body []byte) {
	if c.trace == nil {
		return
	}

	var buf bytes.Buffer

	fmt.Fprintf(&buf, "> %s %s %s\n", req.Method, req.URL.String(), req.Proto)
	writeTraceHeaders(&buf, ">", req.Header)
	buf.WriteString(">\n")
	writeTraceBody(&buf, body)

	_, _ = c.trace.Write(buf.Bytes())
}

func (c *Client) traceResponse(resp *Response) {
	if c.trace == nil {
		return
	}

	var buf bytes.Buffer

	fmt.Fprintf(&buf, "< %s %s\n", resp.Proto, resp.Status)
	writeTraceHeaders(&buf, "<", resp.Headers)
	buf.WriteString("<\n")
	writeTraceBody(&buf, resp.Body)

	_, _ = c.trace.Write(buf.Bytes())
}

func writeTraceHeaders(buf *bytes.Buffer, prefix string, headers http.Header) {
	keys := make([]string, 0, len(headers))
	for key := range headers {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	for _, key := range keys {
		for _, value := range headers[key] {
			if strings.EqualFold(key, constants.HeaderAuthorization) {
				value = maskAuthorization(value)
			}

			fmt.Fprintf(buf, "%s %s: %s\n", prefix, key, value)
		}
	}
}

func writeTraceBody(buf *bytes.Buffer, body []byte) {
	if len(body) == 0 {
		return
	}

	buf.Write(body)

	if !bytes.HasSuffix(body, []byte("\n")) {
		buf.WriteString("\n")
	}
}

// maskAuthorization keeps the scheme and hides the credential.
func maskAuthorization(value string) string {
	scheme, _, found := strings.Cut(value, " ")
	if !found {
		return constants.MaskedSecret
	}

	return scheme + " " + constants.MaskedSecret
}

// leveledLogger adapts Logger to retryablehttp.LeveledLogger.
type leveledLogger struct {
	logger Logger
}

func (l *leveledLogger) Error(msg string, keysAndValues ...interface{}) {
	l.logger.Error(msg, fieldsFromPairs(keysAndValues))
}

func (l *leveledLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Info(msg, fieldsFromPairs(keysAndValues))
}

func (l *leveledLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.logger.Debug(msg, fieldsFromPairs(keysAndValues))
}

func (l *leveledLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.logger.Warn(msg, fieldsFromPairs(keysAndValues))
}

func fieldsFromPairs(keysAndValues []interface{}) map[string]interface{} {
	fields := make(map[string]interface{}, len(keysAndValues)/2)

	for i := 0; i+1 < len(keysAndValues); i += 2 {
		fields[fmt.Sprint(keysAndValues[i])] = keysAndValues[i+1]
	}

	return fields
}
