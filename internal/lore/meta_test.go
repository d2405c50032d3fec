package lore

import (
	"slices"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestStringList(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want []string
	}{
		{name: "scalar", yaml: "v: \"5\"", want: []string{"5"}},
		{name: "number", yaml: "v: 5", want: []string{"5"}},
		{name: "plain leading zeros", yaml: "v: 007", want: []string{"7"}},
		{name: "empty string", yaml: "v: \"\"", want: []string{}},
		{name: "list", yaml: "v: [1, \"02\", x, 03]", want: []string{"1", "02", "x", "3"}},
		{name: "block list", yaml: "v:\n  - a\n  - b", want: []string{"a", "b"}},
		{name: "alias", yaml: "a: &ids [1, 2]\nv: *ids", want: []string{"1", "2"}},
		{name: "mapping is empty", yaml: "v: {a: 1}", want: []string{}},
		{name: "nested items dropped", yaml: "v: [[1], 2, {a: 3}]", want: []string{"2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out struct {
				V StringList `yaml:"v"`
			}
			if err := yaml.Unmarshal([]byte(tt.yaml), &out); err != nil {
				t.Fatalf("Unmarshal() error = %v", err)
			}
			if !slices.Equal(out.V, tt.want) {
				t.Errorf("V = %#v, want %#v", out.V, tt.want)
			}
		})
	}
}

func TestText(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want Text
	}{
		{name: "quoted keeps text", yaml: "v: \"007\"", want: Text{Value: "007", Set: true}},
		{name: "plain number is decimal", yaml: "v: 007", want: Text{Value: "7", Set: true}},
		{name: "plain zero", yaml: "v: 000", want: Text{Value: "0", Set: true}},
		{name: "bool keeps text", yaml: "v: yes", want: Text{Value: "yes", Set: true}},
		{name: "null", yaml: "v: ~", want: Text{}},
		{name: "absent", yaml: "other: 1", want: Text{}},
		{name: "list is absent", yaml: "v: [1]", want: Text{}},
		{name: "mapping is absent", yaml: "v: {a: 1}", want: Text{}},
		{name: "alias", yaml: "a: &x done\nv: *x", want: Text{Value: "done", Set: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out struct {
				V Text `yaml:"v"`
			}
			if err := yaml.Unmarshal([]byte(tt.yaml), &out); err != nil {
				t.Fatalf("Unmarshal() error = %v", err)
			}
			if out.V != tt.want {
				t.Errorf("V = %+v, want %+v", out.V, tt.want)
			}
		})
	}
}

func TestText_OrDefault(t *testing.T) {
	if got := (Text{}).OrDefault("d"); got != "d" {
		t.Errorf("unset OrDefault = %q", got)
	}
	if got := (Text{Set: true}).OrDefault("d"); got != "d" {
		t.Errorf("empty OrDefault = %q", got)
	}
	if got := (Text{Value: "v", Set: true}).OrDefault("d"); got != "v" {
		t.Errorf("set OrDefault = %q", got)
	}
}

func TestResolveTitle(t *testing.T) {
	tests := []struct {
		name string
		meta Text
		body string
		want string
	}{
		{name: "metadata wins", meta: Text{Value: "Meta", Set: true}, body: "# Body", want: "Meta"},
		{name: "heading fallback", body: "# Hello\nbody", want: "Hello"},
		{name: "first heading only", body: "intro\n# First\n# Second", want: "First"},
		{name: "subheading ignored", body: "## Sub\nbody", want: "Untitled"},
		{name: "empty first heading kept", body: "#  \n# Real", want: ""},
		{name: "heading trimmed", body: "#   Spaced   ", want: "Spaced"},
		{name: "neither", body: "body", want: "Untitled"},
		{name: "empty metadata title", meta: Text{Set: true}, body: "# Body", want: "Body"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := resolveTitle(tt.meta, tt.body); got != tt.want {
				t.Errorf("resolveTitle() = %q, want %q", got, tt.want)
			}
		})
	}
}
