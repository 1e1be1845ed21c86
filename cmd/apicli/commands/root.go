package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/fivetwenty-io/apicli/internal/constants"
	"github.com/fivetwenty-io/apicli/pkg/apiclient"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Options carries the process collaborators of one CLI run.
type Options struct {
	Version string
	Commit  string
	Date    string

	Stdin  *os.File
	Stdout io.Writer
	Stderr io.Writer

	// ConfigFile replaces the default $HOME/.apicli/config.yml. A missing
	// default file is ignored; a missing --config file is an error.
	ConfigFile string
	// HTTPClient replaces the transport's *http.Client.
	HTTPClient *http.Client
}

type cli struct {
	opts       Options
	viper      *viper.Viper
	configFile string
}

// Execute runs the CLI with args and returns the process exit code.
func Execute(ctx context.Context, opts Options, args []string) int {
	app := newCLI(opts)

	root := app.rootCommand()
	root.SetArgs(args)

	err := root.ExecuteContext(ctx)
	if err != nil {
		app.reportError(err)

		return ExitCode(err)
	}

	return constants.ExitOK
}

func newCLI(opts Options) *cli {
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}

	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}

	return &cli{
		opts:  opts,
		viper: viper.New(),
	}
}

func (c *cli) rootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "apicli [flags] METHOD URL [PARAMS...]",
		Short: "Call an OAuth2-protected REST API",
		Long: `Send one request to a REST API and print the decoded response as JSON.

URL is resolved under /api on --host over https. PARAMS are name=value
(JSON body field) or name==value (query parameter). A token is requested
from /api/oauth with the configured client credentials or password when no
--access-token is given.

Exit codes: 1 API error, 2 connection error, 3 configuration error.`,
		Example: `  apicli --host api.example.com GET guest page==2
  apicli --host api.example.com POST /guest username=demo password=123456
  apicli --host api.example.com --unauthorized POST oauth grant_type=client_credentials client_id=C client_secret=S`,
		Args:              requireCallArgs,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.initConfig,
		RunE:              c.runCall,
	}

	cmd.CompletionOptions.DisableDefaultCmd = true
	cmd.SetOut(c.opts.Stdout)
	cmd.SetErr(c.opts.Stderr)
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &apiclient.ConfigurationError{Err: err}
	})

	// Global flags
	flags := cmd.PersistentFlags()
	flags.StringP("config", "c", "", "config file (default is $HOME/.apicli/config.yml)")
	flags.String("host", "", "API host, optionally with port")
	flags.Bool("insecure", false, "skip TLS certificate verification")
	flags.BoolP("verbose", "v", false, "trace requests and responses on stderr")
	flags.Bool("debug", false, "debug logging")
	flags.Duration("timeout", constants.DefaultHTTPTimeout, "request timeout")
	flags.String("access-token", "", "pre-obtained access token")
	flags.String("token-type", constants.DefaultTokenType, "type of --access-token")
	flags.String("client-id", "", "OAuth2 client ID")
	flags.String("client-secret", "", "OAuth2 client secret")
	flags.String("username", "", "username for the password grant")
	flags.String("password", "", "password for the password grant")
	flags.StringP("output", "o", constants.FormatJSON, "output format (json, yaml, table)")
	flags.Bool("no-color", false, "disable colored output")

	cmd.Flags().Bool("unauthorized", false, "send the request without an Authorization header")
	cmd.Flags().StringP("data", "d", "", "raw JSON request body; name=value params are merged into objects")

	// Bind flags to viper
	c.bindFlags(flags)
	c.bindFlags(cmd.Flags())

	cmd.AddCommand(c.newTokenCommand())
	cmd.AddCommand(c.newVersionCommand())

	return cmd
}

// bindFlags maps --client-id to the key client_id, which is also the config
// file key and the APICLI_CLIENT_ID variable.
func (c *cli) bindFlags(flags *pflag.FlagSet) {
	flags.VisitAll(func(flag *pflag.Flag) {
		_ = c.viper.BindPFlag(strings.ReplaceAll(flag.Name, "-", "_"), flag)
	})
}

func requireCallArgs(_ *cobra.Command, args []string) error {
	if len(args) < constants.MinimumCallArgs {
		return &apiclient.ConfigurationError{
			Err: fmt.Errorf("%w, got %d argument(s)", constants.ErrMissingArguments, len(args)),
		}
	}

	return nil
}

func noArgs(cmd *cobra.Command, args []string) error {
	err := cobra.NoArgs(cmd, args)
	if err != nil {
		return &apiclient.ConfigurationError{Err: err}
	}

	return nil
}

func (c *cli) initConfig(_ *cobra.Command, _ []string) error {
	c.viper.SetEnvPrefix(constants.EnvPrefix)
	c.viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.viper.AutomaticEnv()

	err := c.readConfigFile()
	if err != nil {
		return err
	}

	switch format := c.viper.GetString("output"); format {
	case constants.FormatJSON, constants.FormatYAML, constants.FormatTable:
		return nil
	default:
		return &apiclient.ConfigurationError{
			Err: fmt.Errorf("%w %q (expected json, yaml or table)", constants.ErrInvalidOutputFormat, format),
		}
	}
}

func (c *cli) readConfigFile() error {
	explicit := c.viper.GetString("config")

	c.configFile = explicit
	if c.configFile == "" {
		c.configFile = c.opts.ConfigFile
	}

	if c.configFile == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil //nolint:nilerr // no home directory means no default config file
		}

		c.configFile = filepath.Join(home, constants.ConfigDirName, constants.ConfigFileName)
	}

	c.viper.SetConfigFile(c.configFile)
	c.viper.SetConfigType("yaml")

	err := c.viper.ReadInConfig()
	if err == nil {
		if c.viper.GetBool("verbose") {
			_, _ = fmt.Fprintln(c.opts.Stderr, "Using config file:", c.viper.ConfigFileUsed())
		}

		return nil
	}

	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist) {
		if explicit == "" {
			return nil
		}

		return &apiclient.ConfigurationError{Err: fmt.Errorf("%w: %s", constants.ErrConfigFileNotFound, explicit)}
	}

	return &apiclient.ConfigurationError{Err: fmt.Errorf("failed to read config file %s: %w", c.configFile, err)}
}
