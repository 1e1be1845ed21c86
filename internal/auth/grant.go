package auth

import (
	"errors"

	"github.com/fivetwenty-io/apicli/internal/constants"
)

// ErrCredentialsRequired is returned when no grant can be built from the configured credentials.
var ErrCredentialsRequired = errors.New("need client_id+client_secret or client_id+username+password")

// Credentials are the OAuth2 inputs of a client.
type Credentials struct {
	AccessToken  string
	TokenType    string
	ClientID     string
	ClientSecret string
	Username     string
	Password     string
}

// Grant is a request body for the token endpoint.
type Grant interface {
	GrantType() string
	Body() map[string]string
}

// PasswordGrant is the resource-owner-password grant. ClientSecret is
// optional; leaving it empty makes the request as a public client.
type PasswordGrant struct {
	ClientID     string
	ClientSecret string
	Username     string
	Password     string
}

// GrantType implements Grant.
func (g PasswordGrant) GrantType() string {
	return constants.GrantTypePassword
}

// Body implements Grant.
func (g PasswordGrant) Body() map[string]string {
	body := map[string]string{
		"grant_type": g.GrantType(),
		"client_id":  g.ClientID,
		"username":   g.Username,
		"password":   g.Password,
	}
	if g.ClientSecret != "" {
		body["client_secret"] = g.ClientSecret
	}

	return body
}

// ClientCredentialsGrant is the client-credentials grant.
type ClientCredentialsGrant struct {
	ClientID     string
	ClientSecret string
}

// GrantType implements Grant.
func (g ClientCredentialsGrant) GrantType() string {
	return constants.GrantTypeClientCredentials
}

// Body implements Grant.
func (g ClientCredentialsGrant) Body() map[string]string {
	return map[string]string{
		"grant_type":    g.GrantType(),
		"client_id":     g.ClientID,
		"client_secret": g.ClientSecret,
	}
}

// SelectGrant picks the grant the credentials allow. The password grant wins
// when both are possible.
func SelectGrant(creds Credentials) (Grant, error) {
	switch {
	case creds.ClientID != "" && creds.Username != "" && creds.Password != "":
		return PasswordGrant{
			ClientID:     creds.ClientID,
			ClientSecret: creds.ClientSecret,
			Username:     creds.Username,
			Password:     creds.Password,
		}, nil
	case creds.ClientID != "" && creds.ClientSecret != "":
		return ClientCredentialsGrant{
			ClientID:     creds.ClientID,
			ClientSecret: creds.ClientSecret,
		}, nil
	default:
		return nil, ErrCredentialsRequired
	}
}
