package commands

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/fivetwenty-io/apicli/internal/constants"
	"github.com/fivetwenty-io/apicli/pkg/apiclient"
)

// The query form is tried first: "a==b" also matches the body form.
var (
	queryParamPattern = regexp.MustCompile(`^([^=]+)==(.*)$`)
	bodyParamPattern  = regexp.MustCompile(`^([^=]+)=(.*)$`)
)

// ParseParams splits PARAMS tokens into JSON body fields (name=value) and
// query parameters (name==value). A repeated name keeps its last value.
// Every token matching neither form is reported in a single ConfigurationError.
func ParseParams(tokens []string) (map[string]any, url.Values, error) {
	fields := map[string]any{}
	query := url.Values{}

	var invalid []string

	for _, token := range tokens {
		if match := queryParamPattern.FindStringSubmatch(token); match != nil {
			query.Set(match[1], match[2])

			continue
		}

		if match := bodyParamPattern.FindStringSubmatch(token); match != nil {
			fields[match[1]] = match[2]

			continue
		}

		invalid = append(invalid, fmt.Sprintf("%q", token))
	}

	if len(invalid) > 0 {
		return nil, nil, &apiclient.ConfigurationError{
			Err: fmt.Errorf("%w: %s (expected name=value or name==value)", constants.ErrInvalidParams, strings.Join(invalid, ", ")),
		}
	}

	return fields, query, nil
}

// requestBody combines --data with name=value fields. Fields override keys of
// a --data object; any other --data value cannot take fields.
func requestBody(data string, fields map[string]any) (any, error) {
	if strings.TrimSpace(data) == "" {
		if len(fields) == 0 {
			return nil, nil
		}

		return fields, nil
	}

	decoder := json.NewDecoder(bytes.NewReader([]byte(data)))
	decoder.UseNumber()

	var body any

	err := decoder.Decode(&body)
	if err != nil {
		return nil, &apiclient.ConfigurationError{Err: fmt.Errorf("%w: %w", constants.ErrInvalidData, err)}
	}

	if len(fields) == 0 {
		return body, nil
	}

	object, ok := body.(map[string]any)
	if !ok {
		return nil, &apiclient.ConfigurationError{Err: constants.ErrDataNotObject}
	}

	for key, value := range fields {
		object[key] = value
	}

	return object, nil
}
