package output

import (
	"bytes"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestResolveColorMode(t *testing.T) {
	tests := []struct {
		mode  string
		isTTY bool
		want  bool
	}{
		{ColorNever, true, false},
		{ColorNever, false, false},
		{ColorAlways, true, true},
		{ColorAlways, false, true},
		{ColorAuto, true, true},
		{ColorAuto, false, false},
		{"", true, true},
	}
	for _, tt := range tests {
		if got := ResolveColorMode(tt.mode, tt.isTTY); got != tt.want {
			t.Errorf("ResolveColorMode(%q, %v) = %v, want %v", tt.mode, tt.isTTY, got, tt.want)
		}
	}
}

func TestValidateColorMode(t *testing.T) {
	for _, mode := range []string{ColorAuto, ColorAlways, ColorNever} {
		if err := ValidateColorMode(mode); err != nil {
			t.Errorf("ValidateColorMode(%q) error = %v", mode, err)
		}
	}
	err := ValidateColorMode("rainbow")
	if err == nil || GetExitCode(err) != ExitUserError {
		t.Errorf("ValidateColorMode(rainbow) = %v, want user error", err)
	}
}

func TestColorMode_Styles(t *testing.T) {
	empty := lipgloss.NewStyle()

	never := NewPrinter(&bytes.Buffer{}, false, ResolveColorMode(ColorNever, true))
	if never.IsTTY() || never.styles.Error.GetForeground() != empty.GetForeground() {
		t.Error("color=never should clear styles")
	}

	always := NewPrinter(&bytes.Buffer{}, false, ResolveColorMode(ColorAlways, false))
	if !always.IsTTY() || always.styles.Error.GetForeground() == empty.GetForeground() {
		t.Error("color=always should keep styles")
	}
}

func TestColorNever_NoANSI(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf, false, ResolveColorMode(ColorNever, true)).Error(NewUserError("task not found"))
	if bytes.Contains(buf.Bytes(), []byte("\x1b[")) {
		t.Errorf("color=never produced ANSI codes: %q", buf.String())
	}
}
