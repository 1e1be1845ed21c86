package constants

import "errors"

// Configuration errors.
var (
	ErrHostRequired        = errors.New("host is required")
	ErrInvalidMethod       = errors.New("invalid HTTP method")
	ErrInvalidParams       = errors.New("invalid parameters")
	ErrInvalidOutputFormat = errors.New("invalid output format")
	ErrInvalidData         = errors.New("invalid --data JSON")
	ErrDataNotObject       = errors.New("--data must be a JSON object when combined with name=value parameters")
	ErrConfigFileNotFound  = errors.New("config file not found")
	ErrMissingArguments    = errors.New("expected METHOD URL [PARAMS...]")
)
