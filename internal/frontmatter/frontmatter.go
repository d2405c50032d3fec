// Package frontmatter splits markdown documents into a YAML metadata block and a body.
package frontmatter

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrParse is matched (via errors.Is) by every metadata parse failure.
var ErrParse = errors.New("malformed frontmatter")

// ParseError reports a metadata block that is not a valid YAML mapping.
type ParseError struct {
	Path string
	Err  error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %v", ErrParse, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", e.Path, ErrParse, e.Err)
}

// Unwrap returns the underlying YAML error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrParse) succeed for any ParseError.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

// Document is a parsed markdown document.
type Document struct {
	// Meta is the generic metadata mapping. Empty (never nil) when the
	// document has no metadata block.
	Meta map[string]any

	// Body is the text after the closing delimiter.
	Body string

	node *yaml.Node
}

// HasMeta reports whether the document carried at least one metadata key.
func (d *Document) HasMeta() bool {
	return len(d.Meta) > 0
}

// Decode decodes the metadata block into v. A document without metadata
// leaves v untouched.
func (d *Document) Decode(v any) error {
	if d.node == nil {
		return nil
	}
	if err := d.node.Decode(v); err != nil {
		return &ParseError{Err: err}
	}
	return nil
}

// ReadFile reads and parses the document at path.
func ReadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	doc, err := Parse(string(data))
	if err != nil {
		var perr *ParseError
		if errors.As(err, &perr) {
			perr.Path = path
		}
		return nil, err
	}
	return doc, nil
}

// Parse splits raw into metadata and body.
func Parse(raw string) (*Document, error) {
	front, body, ok := split(raw)
	if !ok {
		return &Document{Meta: map[string]any{}, Body: body}, nil
	}

	var root yaml.Node
	if err := yaml.Unmarshal([]byte(front), &root); err != nil {
		return nil, &ParseError{Err: err}
	}

	doc := &Document{Meta: map[string]any{}, Body: body}

	// An empty block unmarshals to a zero node.
	if root.Kind == 0 {
		return doc, nil
	}

	mapping := &root
	if mapping.Kind == yaml.DocumentNode {
		if len(mapping.Content) == 0 {
			return doc, nil
		}
		mapping = mapping.Content[0]
	}
	if mapping.Kind == yaml.ScalarNode && mapping.Tag == "!!null" {
		return doc, nil
	}
	if mapping.Kind != yaml.MappingNode {
		return nil, &ParseError{Err: fmt.Errorf("metadata is a %s, not a mapping", kindName(mapping.Kind))}
	}

	if err := mapping.Decode(&doc.Meta); err != nil {
		return nil, &ParseError{Err: err}
	}
	doc.node = mapping
	return doc, nil
}

// split separates the metadata block from the body. The block must start on
// the first line and be closed by a line holding only "---".
func split(raw string) (front, body string, ok bool) {
	raw = strings.TrimPrefix(raw, "\ufeff")
	raw = strings.ReplaceAll(raw, "\r\n", "\n")

	first, rest, found := strings.Cut(raw, "\n")
	if !found || strings.TrimSpace(first) != "---" {
		return "", raw, false
	}

	var block []string
	for {
		line, tail, more := strings.Cut(rest, "\n")
		if strings.TrimSpace(line) == "---" {
			return strings.Join(block, "\n"), tail, true
		}
		if !more {
			return "", raw, false
		}
		block = append(block, line)
		rest = tail
	}
}

func kindName(kind yaml.Kind) string {
	switch kind {
	case yaml.SequenceNode:
		return "sequence"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	default:
		return "document"
	}
}
