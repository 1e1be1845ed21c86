package auth_test

import (
	"testing"

	"github.com/fivetwenty-io/apicli/internal/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectGrant(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		creds    auth.Credentials
		expected map[string]string
	}{
		{
			name:  "client credentials",
			creds: auth.Credentials{ClientID: "C", ClientSecret: "S"},
			expected: map[string]string{
				"grant_type":    "client_credentials",
				"client_id":     "C",
				"client_secret": "S",
			},
		},
		{
			name:  "password grant for a public client omits the secret",
			creds: auth.Credentials{ClientID: "C", Username: "demo", Password: "123456"},
			expected: map[string]string{
				"grant_type": "password",
				"client_id":  "C",
				"username":   "demo",
				"password":   "123456",
			},
		},
		{
			name:  "password grant for a confidential client",
			creds: auth.Credentials{ClientID: "C", ClientSecret: "S", Username: "demo", Password: "123456"},
			expected: map[string]string{
				"grant_type":    "password",
				"client_id":     "C",
				"client_secret": "S",
				"username":      "demo",
				"password":      "123456",
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			grant, err := auth.SelectGrant(tt.creds)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, grant.Body())
			assert.Equal(t, tt.expected["grant_type"], grant.GrantType())
		})
	}
}

func TestSelectGrant_Unconfigured(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		creds auth.Credentials
	}{
		{name: "nothing configured", creds: auth.Credentials{}},
		{name: "client id only", creds: auth.Credentials{ClientID: "C"}},
		{name: "username and password without client id", creds: auth.Credentials{Username: "u", Password: "p"}},
		{name: "client id and username without password", creds: auth.Credentials{ClientID: "C", Username: "u"}},
		{name: "secret without client id", creds: auth.Credentials{ClientSecret: "S"}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			grant, err := auth.SelectGrant(tt.creds)
			require.ErrorIs(t, err, auth.ErrCredentialsRequired)
			assert.Nil(t, grant)
		})
	}
}

func TestSelectGrant_Variants(t *testing.T) {
	t.Parallel()

	grant, err := auth.SelectGrant(auth.Credentials{ClientID: "C", ClientSecret: "S", Username: "u", Password: "p"})
	require.NoError(t, err)
	assert.IsType(t, auth.PasswordGrant{}, grant)

	grant, err = auth.SelectGrant(auth.Credentials{ClientID: "C", ClientSecret: "S", Username: "u"})
	require.NoError(t, err)
	assert.IsType(t, auth.ClientCredentialsGrant{}, grant)
}
