package commands

import (
	"fmt"
	"strings"

	"github.com/fivetwenty-io/apicli/pkg/apiclient"
	"golang.org/x/term"
)

// clientConfig builds the client configuration from flags, environment and
// config file, in that order of precedence.
func (c *cli) clientConfig(persister apiclient.TokenPersister) (*apiclient.Config, error) {
	config := &apiclient.Config{
		Host:           normalizeHost(c.viper.GetString("host")),
		Timeout:        c.viper.GetDuration("timeout"),
		InsecureTLS:    c.viper.GetBool("insecure"),
		Verbose:        c.viper.GetBool("verbose"),
		Debug:          c.viper.GetBool("debug"),
		AccessToken:    c.viper.GetString("access_token"),
		TokenType:      c.viper.GetString("token_type"),
		ClientID:       c.viper.GetString("client_id"),
		ClientSecret:   c.viper.GetString("client_secret"),
		Username:       c.viper.GetString("username"),
		Password:       c.viper.GetString("password"),
		Logger:         newLogger(c.opts.Stderr, c.viper.GetBool("debug"), c.noColor()),
		TraceWriter:    c.opts.Stderr,
		UserAgent:      "apicli/" + c.version(),
		HTTPClient:     c.opts.HTTPClient,
		TokenPersister: persister,
	}

	if config.AccessToken == "" && config.ClientID != "" && config.Username != "" && config.Password == "" {
		password, err := c.promptPassword()
		if err != nil {
			return nil, err
		}

		config.Password = password
	}

	return config, nil
}

// promptPassword reads a password from a terminal stdin. It returns an empty
// password when stdin is not a terminal.
func (c *cli) promptPassword() (string, error) {
	if c.opts.Stdin == nil {
		return "", nil
	}

	fd := int(c.opts.Stdin.Fd()) //nolint:gosec // file descriptors fit in int
	if !term.IsTerminal(fd) {
		return "", nil
	}

	_, _ = fmt.Fprint(c.opts.Stderr, "Password: ")

	bytePassword, err := term.ReadPassword(fd)

	_, _ = fmt.Fprintln(c.opts.Stderr)

	if err != nil {
		return "", &apiclient.ConfigurationError{Err: fmt.Errorf("failed to read password: %w", err)}
	}

	return string(bytePassword), nil
}

// normalizeHost accepts a pasted base URL: requests always go over https to
// the host part.
func normalizeHost(host string) string {
	host = strings.TrimSpace(host)
	host = strings.TrimPrefix(host, "https://")
	host = strings.TrimPrefix(host, "http://")

	return strings.TrimRight(host, "/")
}

func (c *cli) noColor() bool {
	return c.viper.GetBool("no_color")
}

func (c *cli) version() string {
	if c.opts.Version == "" {
		return "dev"
	}

	return c.opts.Version
}
