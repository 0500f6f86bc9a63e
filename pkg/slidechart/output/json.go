// Package output serializes chart records to JSON and xlsx workbooks.
package output

import (
	"bytes"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ToJSON serializes v to JSON, indented with two spaces when pretty is set.
func ToJSON(v any, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}

// FromJSON decodes JSON into v. Numbers decode as float64 into interface
// values, matching encoding/json.
func FromJSON(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

// IsJSON reports whether data looks like a JSON object or array rather than
// YAML.
func IsJSON(data []byte) bool {
	trimmed := bytes.TrimSpace(data)
	return len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[')
}
