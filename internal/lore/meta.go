package lore

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// StringList is a metadata field that may be written as a single scalar or
// as a list. Both decode to a list of strings; null and empty scalars decode
// to an empty list. A mapping decodes to an empty list and non-scalar list
// items are dropped.
type StringList []string

// UnmarshalYAML implements yaml.Unmarshaler.
func (l *StringList) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		if isNull(node) || node.Value == "" {
			*l = StringList{}
			return nil
		}
		*l = StringList{scalarValue(node)}
		return nil
	case yaml.SequenceNode:
		items := make(StringList, 0, len(node.Content))
		for _, item := range node.Content {
			if text, ok := scalarText(item); ok {
				items = append(items, text)
			}
		}
		*l = items
		return nil
	case yaml.AliasNode:
		return l.UnmarshalYAML(node.Alias)
	default:
		*l = StringList{}
		return nil
	}
}

// Text is a scalar metadata value. Quoted values keep their literal text;
// plain integers are read as decimal numbers, so `id: 007` reads as "7" and
// `id: "007"` as "007". A list or mapping counts as absent.
type Text struct {
	Value string
	Set   bool
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (t *Text) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.AliasNode {
		return t.UnmarshalYAML(node.Alias)
	}
	if node.Kind == yaml.ScalarNode && isNull(node) {
		*t = Text{}
		return nil
	}
	text, ok := scalarText(node)
	if !ok {
		*t = Text{}
		return nil
	}
	*t = Text{Value: text, Set: true}
	return nil
}

// OrDefault returns the value, or def when the field was absent or empty.
func (t Text) OrDefault(def string) string {
	if !t.Set || t.Value == "" {
		return def
	}
	return t.Value
}

// historyRecord is one status change in a document's history.
type historyRecord struct {
	Status Text       `yaml:"status"`
	By     StringList `yaml:"by"`
}

// taskMeta is the typed view of a task document's metadata.
type taskMeta struct {
	ID         Text       `yaml:"id"`
	Title      Text       `yaml:"title"`
	Type       Text       `yaml:"type"`
	Status     Text       `yaml:"status"`
	History    yaml.Node  `yaml:"history"`
	RelatedADR StringList `yaml:"related_adr"`
}

// blockedBy reads the blockers recorded by the latest history record.
// Earlier records are never consulted.
func (m *taskMeta) blockedBy() ([]string, error) {
	history := &m.History
	if history.Kind == yaml.AliasNode {
		history = history.Alias
	}
	if history.Kind != yaml.SequenceNode || len(history.Content) == 0 {
		return []string{}, nil
	}

	last := history.Content[len(history.Content)-1]
	if last.Kind == yaml.AliasNode {
		last = last.Alias
	}
	if last.Kind != yaml.MappingNode {
		return []string{}, nil
	}
	var record historyRecord
	if err := last.Decode(&record); err != nil {
		return nil, fmt.Errorf("decoding latest history record: %w", err)
	}
	if record.Status.Value != string(StatusBlocked) || len(record.By) == 0 {
		return []string{}, nil
	}
	return []string(record.By), nil
}

// adrMeta is the typed view of an ADR document's metadata.
type adrMeta struct {
	ID           Text       `yaml:"id"`
	Title        Text       `yaml:"title"`
	Status       Text       `yaml:"status"`
	RelatedTasks StringList `yaml:"related_tasks"`
}

// resolveTitle prefers the metadata title, then the text of the first "# "
// heading of the body (even when that text is empty), then "Untitled".
func resolveTitle(meta Text, body string) string {
	if title := meta.OrDefault(""); title != "" {
		return title
	}
	for line := range strings.SplitSeq(body, "\n") {
		if heading, ok := strings.CutPrefix(line, "# "); ok {
			return strings.TrimSpace(heading)
		}
	}
	return "Untitled"
}

// scalarText returns the text of a scalar node. ok is false for lists and
// mappings.
func scalarText(node *yaml.Node) (string, bool) {
	if node.Kind == yaml.AliasNode {
		return scalarText(node.Alias)
	}
	if node.Kind != yaml.ScalarNode {
		return "", false
	}
	return scalarValue(node), true
}

// scalarValue reads plain digit runs as decimal numbers without leading
// zeros. Quoted scalars keep their literal text.
func scalarValue(node *yaml.Node) string {
	if node.Style&(yaml.SingleQuotedStyle|yaml.DoubleQuotedStyle|yaml.LiteralStyle|yaml.FoldedStyle) == 0 && isDigits(node.Value) {
		return NormalizeID(node.Value)
	}
	return node.Value
}

func isNull(node *yaml.Node) bool {
	return node.ShortTag() == "!!null"
}
