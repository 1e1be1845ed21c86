package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/fivetwenty-io/apicli/internal/constants"
	"github.com/olekukonko/tablewriter"
	"gopkg.in/yaml.v3"
)

const yamlIndent = 2

// writeOutput renders a decoded response body. Anything but yaml and table
// is written as indented JSON.
func writeOutput(w io.Writer, format string, value any) error {
	switch format {
	case constants.FormatYAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(yamlIndent)

		err := encoder.Encode(plainValue(value))
		if err != nil {
			return fmt.Errorf("failed to encode output as YAML: %w", err)
		}

		return encoder.Close()
	case constants.FormatTable:
		return writeTable(w, value)
	default:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", constants.JSONIndent)
		encoder.SetEscapeHTML(false)

		err := encoder.Encode(value)
		if err != nil {
			return fmt.Errorf("failed to encode output as JSON: %w", err)
		}

		return nil
	}
}

// plainValue replaces json.Number with int64 or float64 so YAML prints bare
// numbers instead of strings.
func plainValue(value any) any {
	switch typed := value.(type) {
	case json.Number:
		if i, err := typed.Int64(); err == nil {
			return i
		}

		if f, err := typed.Float64(); err == nil {
			return f
		}

		return typed.String()
	case map[string]any:
		plain := make(map[string]any, len(typed))
		for key, item := range typed {
			plain[key] = plainValue(item)
		}

		return plain
	case []any:
		plain := make([]any, len(typed))
		for i, item := range typed {
			plain[i] = plainValue(item)
		}

		return plain
	default:
		return value
	}
}

// writeTable prints objects as Property/Value rows, lists of objects with one
// column per key, and anything else as a single Value column.
func writeTable(w io.Writer, value any) error {
	table := tablewriter.NewWriter(w)

	switch typed := value.(type) {
	case map[string]any:
		table.Header("Property", "Value")

		for _, key := range sortedKeys(typed) {
			_ = table.Append(key, cellValue(typed[key]))
		}
	case []any:
		columns, ok := objectColumns(typed)
		if !ok {
			table.Header("Value")

			for _, item := range typed {
				_ = table.Append(cellValue(item))
			}

			break
		}

		table.Header(toCells(columns)...)

		for _, item := range typed {
			object, _ := item.(map[string]any)

			row := make([]any, 0, len(columns))
			for _, column := range columns {
				row = append(row, cellValue(object[column]))
			}

			_ = table.Append(row...)
		}
	default:
		table.Header("Value")
		_ = table.Append(cellValue(value))
	}

	err := table.Render()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

// objectColumns returns the union of keys when every item is an object.
func objectColumns(items []any) ([]string, bool) {
	if len(items) == 0 {
		return nil, false
	}

	seen := map[string]any{}

	for _, item := range items {
		object, ok := item.(map[string]any)
		if !ok {
			return nil, false
		}

		for key := range object {
			seen[key] = nil
		}
	}

	return sortedKeys(seen), true
}

func sortedKeys(object map[string]any) []string {
	keys := make([]string, 0, len(object))
	for key := range object {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	return keys
}

func toCells(values []string) []any {
	cells := make([]any, len(values))
	for i, value := range values {
		cells[i] = value
	}

	return cells
}

func cellValue(value any) string {
	switch typed := value.(type) {
	case nil:
		return ""
	case string:
		return typed
	case json.Number:
		return typed.String()
	case map[string]any, []any:
		data, err := json.Marshal(typed)
		if err != nil {
			return fmt.Sprint(typed)
		}

		return string(data)
	default:
		return fmt.Sprint(typed)
	}
}
