// Package literal parses list and dict literals found in CSV cells.
//
// Cells are decoded as YAML flow collections, which accepts JSON as well as
// the single-quoted list/dict notation produced by spreadsheet exports
// (['suv', 'family'] or {'variant': 'ZX', 'sunroof': True}). Nothing is
// evaluated: only mappings, sequences and plain scalars are allowed.
package literal

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrInvalidLiteral is returned for cells that are not a list or dict literal.
var ErrInvalidLiteral = errors.New("invalid literal")

// ParseList decodes a list literal of scalars. An empty cell is an empty list.
func ParseList(s string) ([]string, error) {
	node, err := parse(s)
	if err != nil {
		return nil, err
	}
	if node == nil {
		return []string{}, nil
	}
	if node.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("%w: expected a list, got %q", ErrInvalidLiteral, s)
	}
	out := make([]string, 0, len(node.Content))
	for _, item := range node.Content {
		if item.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("%w: list items must be scalars", ErrInvalidLiteral)
		}
		out = append(out, item.Value)
	}
	return out, nil
}

// ParseMap decodes a dict literal. An empty cell is an empty map.
func ParseMap(s string) (map[string]interface{}, error) {
	node, err := parse(s)
	if err != nil {
		return nil, err
	}
	if node == nil {
		return map[string]interface{}{}, nil
	}
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: expected a dict, got %q", ErrInvalidLiteral, s)
	}
	v, err := convert(node)
	if err != nil {
		return nil, err
	}
	return v.(map[string]interface{}), nil
}

func parse(s string) (*yaml.Node, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	if s[0] != '[' && s[0] != '{' {
		return nil, fmt.Errorf("%w: %q is not a list or dict", ErrInvalidLiteral, s)
	}
	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(s), &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidLiteral, err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) != 1 {
		return nil, fmt.Errorf("%w: %q", ErrInvalidLiteral, s)
	}
	return doc.Content[0], nil
}

func convert(node *yaml.Node) (interface{}, error) {
	switch node.Kind {
	case yaml.MappingNode:
		out := make(map[string]interface{}, len(node.Content)/2)
		for i := 0; i+1 < len(node.Content); i += 2 {
			key := node.Content[i]
			if key.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("%w: dict keys must be scalars", ErrInvalidLiteral)
			}
			v, err := convert(node.Content[i+1])
			if err != nil {
				return nil, err
			}
			out[key.Value] = v
		}
		return out, nil
	case yaml.SequenceNode:
		out := make([]interface{}, 0, len(node.Content))
		for _, item := range node.Content {
			v, err := convert(item)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	case yaml.ScalarNode:
		return scalar(node)
	default:
		return nil, fmt.Errorf("%w: unsupported construct", ErrInvalidLiteral)
	}
}

// scalar maps a plain scalar to a JSON-compatible value. Quoted scalars stay strings.
func scalar(node *yaml.Node) (interface{}, error) {
	if node.Style&(yaml.SingleQuotedStyle|yaml.DoubleQuotedStyle) != 0 {
		return node.Value, nil
	}
	switch node.Value {
	case "None", "null", "~", "":
		return nil, nil
	case "True", "true":
		return true, nil
	case "False", "false":
		return false, nil
	}
	if i, err := strconv.ParseInt(node.Value, 10, 64); err == nil {
		return i, nil
	}
	if f, err := strconv.ParseFloat(node.Value, 64); err == nil && !math.IsInf(f, 0) && !math.IsNaN(f) {
		return f, nil
	}
	if node.Style&yaml.TaggedStyle != 0 {
		return nil, fmt.Errorf("%w: explicit tag %s", ErrInvalidLiteral, node.Tag)
	}
	return node.Value, nil
}
