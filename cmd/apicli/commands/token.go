package commands

import (
	"fmt"
	"time"

	"github.com/fivetwenty-io/apicli/pkg/apiclient"
	"github.com/spf13/cobra"
)

func (c *cli) newTokenCommand() *cobra.Command {
	var save bool

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Acquire and print an access token",
		Long: `Print the access token the client would send, requesting one from /api/oauth
when no --access-token is configured. With --save the token is written to the
config file and reused by later runs.`,
		Args: noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var persister apiclient.TokenPersister
			if save {
				persister = NewConfigPersister(c.configFile)
			}

			config, err := c.clientConfig(persister)
			if err != nil {
				return err
			}

			client, err := apiclient.New(config)
			if err != nil {
				return fmt.Errorf("failed to create client: %w", err)
			}

			token, err := client.Token(cmd.Context())
			if err != nil {
				return err
			}

			tokenInfo := map[string]any{
				"token_type":   token.TokenType,
				"access_token": token.AccessToken,
				"expires_at":   nil,
			}

			if !token.Expiry.IsZero() {
				tokenInfo["expires_at"] = token.Expiry.UTC().Format(time.RFC3339)
			}

			return writeOutput(c.opts.Stdout, c.viper.GetString("output"), tokenInfo)
		},
	}

	cmd.Flags().BoolVar(&save, "save", false, "save the token to the config file")

	return cmd
}
