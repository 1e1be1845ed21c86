package commands

import (
	"github.com/spf13/cobra"
)

func (c *cli) newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Display version information",
		Long:  "Display detailed version information about the apicli binary",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			versionInfo := map[string]any{
				"version": c.version(),
				"commit":  c.opts.Commit,
				"built":   c.opts.Date,
			}

			return writeOutput(c.opts.Stdout, c.viper.GetString("output"), versionInfo)
		},
	}
}
