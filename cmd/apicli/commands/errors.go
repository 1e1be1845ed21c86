package commands

import (
	"encoding/json"
	"fmt"

	"github.com/fatih/color"
	"github.com/fivetwenty-io/apicli/internal/constants"
	"github.com/fivetwenty-io/apicli/pkg/apiclient"
)

// ExitCode maps an error to the process exit code. Errors outside the three
// client kinds, such as a token response without access_token, exit 1.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return constants.ExitOK
	case apiclient.IsConfigurationError(err):
		return constants.ExitConfigError
	case apiclient.IsConnectionError(err):
		return constants.ExitConnectionErr
	default:
		return constants.ExitAPIError
	}
}

// reportError writes err to stderr, followed by the request and response
// detail for API errors.
func (c *cli) reportError(err error) {
	prefix := color.New(color.FgRed, color.Bold)
	if c.noColor() {
		prefix.DisableColor()
	}

	_, _ = fmt.Fprintf(c.opts.Stderr, "%s %v\n", prefix.Sprint("Error:"), err)

	apiErr, ok := apiclient.AsAPIError(err)
	if !ok || apiErr.Detail == nil {
		return
	}

	encoder := json.NewEncoder(c.opts.Stderr)
	encoder.SetIndent("", constants.JSONIndent)
	encoder.SetEscapeHTML(false)

	_ = encoder.Encode(apiErr.Detail)
}
