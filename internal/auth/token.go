package auth

import (
	"sync"

	"golang.org/x/oauth2"
)

// TokenStore holds the cached token of a single client.
type TokenStore struct {
	mutex sync.RWMutex
	token *oauth2.Token
}

// NewTokenStore creates an empty token store.
func NewTokenStore() *TokenStore {
	return &TokenStore{}
}

// Get returns a copy of the cached token, or nil.
func (s *TokenStore) Get() *oauth2.Token {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if s.token == nil {
		return nil
	}

	token := *s.token

	return &token
}

// Set replaces the cached token.
func (s *TokenStore) Set(token *oauth2.Token) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.token = token
}

// Clear drops the cached token.
func (s *TokenStore) Clear() {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.token = nil
}

// Present reports whether token carries both a type and an access token.
// Expiry is deliberately not consulted: a cached token is reused until the
// owning client is discarded.
func Present(token *oauth2.Token) bool {
	return token != nil && token.TokenType != "" && token.AccessToken != ""
}

// HeaderValue formats token for the Authorization header.
func HeaderValue(token *oauth2.Token) string {
	return token.TokenType + " " + token.AccessToken
}
