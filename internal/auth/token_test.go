package auth_test

import (
	"sync"
	"testing"
	"time"

	"github.com/fivetwenty-io/apicli/internal/auth"
	"github.com/stretchr/testify/assert"
	"golang.org/x/oauth2"
)

func TestPresent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		token    *oauth2.Token
		expected bool
	}{
		{name: "nil token", token: nil, expected: false},
		{name: "empty access token", token: &oauth2.Token{TokenType: "Bearer"}, expected: false},
		{name: "empty token type", token: &oauth2.Token{AccessToken: "abc"}, expected: false},
		{name: "type and access token", token: &oauth2.Token{AccessToken: "abc", TokenType: "Bearer"}, expected: true},
		{
			name:     "expired token is still present",
			token:    &oauth2.Token{AccessToken: "abc", TokenType: "Bearer", Expiry: time.Now().Add(-time.Hour)},
			expected: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, auth.Present(tt.token))
		})
	}
}

func TestHeaderValue(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Bearer abc", auth.HeaderValue(&oauth2.Token{AccessToken: "abc", TokenType: "Bearer"}))
	assert.Equal(t, "bearer abc", auth.HeaderValue(&oauth2.Token{AccessToken: "abc", TokenType: "bearer"}))
}

func TestTokenStore(t *testing.T) {
	t.Parallel()
	t.Run("new store is empty", testNewStoreEmpty)
	t.Run("set and get token", testSetAndGetToken)
	t.Run("get returns a copy", testGetReturnsCopy)
	t.Run("clear token", testClearToken)
	t.Run("concurrent access", testConcurrentTokenAccess)
}

func testNewStoreEmpty(t *testing.T) {
	t.Parallel()

	store := auth.NewTokenStore()
	assert.Nil(t, store.Get())
}

func testSetAndGetToken(t *testing.T) {
	t.Parallel()

	store := auth.NewTokenStore()
	store.Set(&oauth2.Token{AccessToken: "test-token", TokenType: "Bearer"})

	retrieved := store.Get()
	assert.NotNil(t, retrieved)
	assert.Equal(t, "test-token", retrieved.AccessToken)
	assert.Equal(t, "Bearer", retrieved.TokenType)
}

func testGetReturnsCopy(t *testing.T) {
	t.Parallel()

	store := auth.NewTokenStore()
	store.Set(&oauth2.Token{AccessToken: "test-token", TokenType: "Bearer"})

	retrieved := store.Get()
	retrieved.AccessToken = "changed"

	assert.Equal(t, "test-token", store.Get().AccessToken)
}

func testClearToken(t *testing.T) {
	t.Parallel()

	store := auth.NewTokenStore()
	store.Set(&oauth2.Token{AccessToken: "test-token", TokenType: "Bearer"})
	store.Clear()
	assert.Nil(t, store.Get())
}

func testConcurrentTokenAccess(t *testing.T) {
	t.Parallel()

	store := auth.NewTokenStore()

	var wg sync.WaitGroup

	for i := 0; i < 10; i++ {
		wg.Add(2)

		go func(i int) {
			defer wg.Done()

			store.Set(&oauth2.Token{AccessToken: "token", TokenType: "Bearer", ExpiresIn: int64(i)})
		}(i)

		go func() {
			defer wg.Done()

			_ = store.Get()
		}()
	}

	wg.Wait()
	assert.Equal(t, "token", store.Get().AccessToken)
}
