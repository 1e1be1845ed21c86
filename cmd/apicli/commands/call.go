package commands

import (
	"fmt"

	"github.com/fivetwenty-io/apicli/internal/constants"
	"github.com/fivetwenty-io/apicli/pkg/apiclient"
	"github.com/spf13/cobra"
)

func (c *cli) runCall(cmd *cobra.Command, args []string) error {
	method, err := apiclient.ParseMethod(args[0])
	if err != nil {
		return err
	}

	fields, query, err := ParseParams(args[constants.MinimumCallArgs:])
	if err != nil {
		return err
	}

	body, err := requestBody(c.viper.GetString("data"), fields)
	if err != nil {
		return err
	}

	config, err := c.clientConfig(nil)
	if err != nil {
		return err
	}

	client, err := apiclient.New(config)
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}

	result, err := client.Invoke(cmd.Context(), &apiclient.Request{
		Method:       method,
		URI:          args[1],
		Query:        query,
		Body:         body,
		Unauthorized: c.viper.GetBool("unauthorized"),
	})
	if err != nil {
		return err
	}

	return writeOutput(c.opts.Stdout, c.viper.GetString("output"), result)
}
