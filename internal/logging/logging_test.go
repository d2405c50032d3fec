package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    log.Level
		wantErr bool
	}{
		{in: "", want: DefaultLevel},
		{in: "debug", want: log.DebugLevel},
		{in: " INFO ", want: log.InfoLevel},
		{in: "error", want: log.ErrorLevel},
		{in: "loud", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestNew_DefaultHidesDebug(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(&buf, "", false)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	logger.Debug("skipped document", "path", "lore/x.md")
	if buf.Len() != 0 {
		t.Errorf("debug line written at default level: %q", buf.String())
	}

	logger.Warn("duplicate id", "id", "7")
	out := buf.String()
	for _, want := range []string{"WARN", Prefix, "duplicate id", "id=7"} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %q", out, want)
		}
	}
}

func TestNew_Verbose(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(&buf, "error", true)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	logger.Debug("scanning", "dir", "active")
	if !strings.Contains(buf.String(), "scanning") {
		t.Errorf("verbose logger dropped debug line: %q", buf.String())
	}
}

func TestNew_BadLevel(t *testing.T) {
	if _, err := New(&bytes.Buffer{}, "chatty", false); err == nil {
		t.Error("New() expected error for unknown level")
	}
}

func TestDiscard(t *testing.T) {
	Discard().Error("nothing to see")
}
