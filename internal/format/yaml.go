package format

import (
	"io"

	"gopkg.in/yaml.v3"
)

// WriteYAML writes a YAML document using the JSON field names of v.
func WriteYAML(w io.Writer, v any) error {
	x, err := generic(v)
	if err != nil {
		return err
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(x); err != nil {
		_ = enc.Close()
		return err
	}
	return enc.Close()
}
