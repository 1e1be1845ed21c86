package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/sync/singleflight"

	"github.com/fivetwenty-io/apicli/internal/constants"
)

// Static errors for err113 compliance.
var (
	ErrNoAccessToken = errors.New("token response has no access_token")
	ErrNoExchange    = errors.New("no token exchange configured")
)

// ExchangeFunc posts a grant body to the token endpoint and returns the
// decoded response. Errors are passed through to the caller untouched.
type ExchangeFunc func(ctx context.Context, body map[string]string) (any, error)

// TokenPersister is notified after every token acquisition.
type TokenPersister interface {
	PersistToken(token *oauth2.Token) error
}

// TokenManager lazily acquires and caches the token of one client.
type TokenManager struct {
	credentials Credentials
	exchange    ExchangeFunc
	store       *TokenStore
	persister   TokenPersister
	group       singleflight.Group
	now         func() time.Time
}

// Option configures a TokenManager.
type Option func(*TokenManager)

// WithPersister registers a persister for acquired tokens.
func WithPersister(persister TokenPersister) Option {
	return func(m *TokenManager) {
		m.persister = persister
	}
}

// WithClock overrides the clock used to compute expiry.
func WithClock(now func() time.Time) Option {
	return func(m *TokenManager) {
		m.now = now
	}
}

// NewTokenManager creates a token manager. A pre-supplied access token is
// cached right away and never exchanged.
func NewTokenManager(creds Credentials, exchange ExchangeFunc, opts ...Option) *TokenManager {
	manager := &TokenManager{
		credentials: creds,
		exchange:    exchange,
		store:       NewTokenStore(),
		now:         time.Now,
	}

	for _, opt := range opts {
		opt(manager)
	}

	if creds.AccessToken != "" {
		tokenType := creds.TokenType
		if tokenType == "" {
			tokenType = constants.DefaultTokenType
		}

		manager.store.Set(&oauth2.Token{
			AccessToken: creds.AccessToken,
			TokenType:   tokenType,
		})
	}

	return manager
}

// AuthorizationHeader returns the Authorization header value, acquiring a
// token first when none is cached.
func (m *TokenManager) AuthorizationHeader(ctx context.Context) (string, error) {
	token, err := m.Token(ctx)
	if err != nil {
		return "", err
	}

	return HeaderValue(token), nil
}

// Token returns the cached token or acquires one. Concurrent callers share a
// single exchange.
func (m *TokenManager) Token(ctx context.Context) (*oauth2.Token, error) {
	if token := m.store.Get(); Present(token) {
		return token, nil
	}

	grant, err := SelectGrant(m.credentials)
	if err != nil {
		return nil, err
	}

	result, err, _ := m.group.Do(grant.GrantType(), func() (any, error) {
		if token := m.store.Get(); Present(token) {
			return token, nil
		}

		return m.acquire(ctx, grant)
	})
	if err != nil {
		return nil, err //nolint:wrapcheck // grant failures keep their original kind
	}

	token, _ := result.(*oauth2.Token)

	return token, nil
}

// Current returns the cached token without acquiring one.
func (m *TokenManager) Current() *oauth2.Token {
	return m.store.Get()
}

// SetToken replaces the cached token.
func (m *TokenManager) SetToken(token *oauth2.Token) {
	m.store.Set(token)
}

func (m *TokenManager) acquire(ctx context.Context, grant Grant) (*oauth2.Token, error) {
	if m.exchange == nil {
		return nil, ErrNoExchange
	}

	result, err := m.exchange(ctx, grant.Body())
	if err != nil {
		return nil, err
	}

	token, err := m.parseTokenResponse(result)
	if err != nil {
		return nil, err
	}

	m.store.Set(token)

	if m.persister != nil {
		err = m.persister.PersistToken(token)
		if err != nil {
			return token, fmt.Errorf("failed to persist token: %w", err)
		}
	}

	return token, nil
}

type tokenResponse struct {
	AccessToken string      `json:"access_token"`
	TokenType   string      `json:"token_type"`
	ExpiresIn   json.Number `json:"expires_in"`
}

func (m *TokenManager) parseTokenResponse(result any) (*oauth2.Token, error) {
	// The exchange hands back a generic decoded document; round-trip it into
	// the typed response.
	raw, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("failed to encode token response: %w", err)
	}

	var resp tokenResponse

	err = json.Unmarshal(raw, &resp)
	if err != nil {
		return nil, fmt.Errorf("failed to parse token response: %w", err)
	}

	if resp.AccessToken == "" {
		return nil, ErrNoAccessToken
	}

	if resp.TokenType == "" {
		resp.TokenType = constants.DefaultTokenType
	}

	token := &oauth2.Token{
		AccessToken: resp.AccessToken,
		TokenType:   resp.TokenType,
	}

	if resp.ExpiresIn != "" {
		seconds, err := resp.ExpiresIn.Float64()
		if err != nil {
			return nil, fmt.Errorf("failed to parse expires_in: %w", err)
		}

		token.ExpiresIn = int64(seconds)
		token.Expiry = m.now().Add(time.Duration(seconds * float64(time.Second)))
	}

	return token, nil
}
