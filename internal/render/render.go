// Package render prints backend payloads for the console, optionally narrowed
// by a JMESPath expression.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	jmespath "github.com/jmespath-community/go-jmespath"
	"gopkg.in/yaml.v3"
)

// Format selects the output encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat validates a user-supplied format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "", FormatJSON:
		return FormatJSON, nil
	case FormatYAML, "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("invalid output format %q (valid options: json, yaml)", s)
	}
}

// Printer writes payloads in one format.
type Printer struct {
	Out    io.Writer
	Format Format
	// Select is an optional JMESPath expression applied before encoding.
	Select string
}

// Validate compiles the selection expression so typos fail before any request is sent.
func (p Printer) Validate() error {
	if strings.TrimSpace(p.Select) == "" {
		return nil
	}
	if _, err := jmespath.Compile(p.Select); err != nil {
		return fmt.Errorf("invalid --select expression: %w", err)
	}
	return nil
}

// Print encodes v, applying Select first when set.
func (p Printer) Print(v any) error {
	if strings.TrimSpace(p.Select) != "" {
		generic, err := toGeneric(v)
		if err != nil {
			return err
		}
		v, err = jmespath.Search(p.Select, generic)
		if err != nil {
			return fmt.Errorf("evaluate --select: %w", err)
		}
	}

	switch p.Format {
	case FormatYAML:
		enc := yaml.NewEncoder(p.Out)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	default:
		enc := json.NewEncoder(p.Out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return nil
	}
}

// toGeneric maps v onto maps/slices keyed by JSON field names, which is what
// JMESPath expressions address.
func toGeneric(v any) (any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode payload: %w", err)
	}
	var out any
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, fmt.Errorf("decode payload: %w", err)
	}
	return out, nil
}
