package envconfig

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// ErrUnsupportedFormat is returned by WriteReference for unknown formats.
var ErrUnsupportedFormat = errors.New("unsupported reference format")

// Format selects the encoding used by WriteReference.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// KeyInfo documents one key read by a schema.
type KeyInfo struct {
	Key      string  `yaml:"key" json:"key"`
	Field    string  `yaml:"field" json:"field"`
	Type     string  `yaml:"type" json:"type"`
	Required bool    `yaml:"required" json:"required"`
	Optional bool    `yaml:"optional,omitempty" json:"optional,omitempty"`
	Default  *string `yaml:"default,omitempty" json:"default,omitempty"`
}

// Describe lists every key s reads, fully qualified, in the order a bind call
// looks them up. prefix plays the role of WithPrefix.
func Describe(s *Schema, prefix string) []KeyInfo {
	var keys []KeyInfo
	describe(s, prefix+s.Prefix, "", &keys)
	return keys
}

func describe(s *Schema, prefix, path string, keys *[]KeyInfo) {
	for _, f := range s.Fields {
		name := path + f.Name
		if f.Nested {
			describe(f.Schema, prefix+f.Prefix, name+".", keys)
			continue
		}
		ki := KeyInfo{
			Key:      prefix + f.Key,
			Field:    name,
			Type:     f.Type.String(),
			Required: !f.Optional && !f.HasDefault,
			Optional: f.Optional,
		}
		if f.HasDefault {
			d := f.Default
			ki.Default = &d
		}
		*keys = append(*keys, ki)
	}
}

// WriteReference encodes keys to w in the given format.
func WriteReference(w io.Writer, keys []KeyInfo, format Format) error {
	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(keys); err != nil {
			return fmt.Errorf("encode reference as yaml: %w", err)
		}
		return enc.Close()
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(keys); err != nil {
			return fmt.Errorf("encode reference as json: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}
