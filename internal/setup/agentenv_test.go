package setup

import (
	"path/filepath"
	"testing"
)

func TestRegistryHasClaude(t *testing.T) {
	env := GetAgentEnv("claude")
	if env == nil {
		t.Fatal("claude agent env should be registered")
	}
	if env.Name() != "claude" {
		t.Errorf("Name() = %q, want %q", env.Name(), "claude")
	}
	if env.DisplayName() != "Claude Code" {
		t.Errorf("DisplayName() = %q, want %q", env.DisplayName(), "Claude Code")
	}
}

func TestGetAgentEnvUnknown(t *testing.T) {
	if GetAgentEnv("nonexistent") != nil {
		t.Error("GetAgentEnv(\"nonexistent\") should return nil")
	}
}

func TestAllAgentEnvs(t *testing.T) {
	envs := AllAgentEnvs()
	if len(envs) == 0 {
		t.Fatal("AllAgentEnvs() should return at least one env")
	}
	// First should be claude (stable ordering).
	if envs[0].Name() != "claude" {
		t.Errorf("first env = %q, want %q", envs[0].Name(), "claude")
	}
}

func TestClaudeEnvDetectNotInstalled(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	env := &ClaudeEnv{}
	if _, _, installed := env.Detect(t.TempDir()); installed {
		t.Error("Detect() should return false when nothing is installed")
	}
}

func TestClaudeEnvInstallAndDetect(t *testing.T) {
	tests := []struct {
		name      string
		global    bool
		wantScope string
	}{
		{name: "project scope", global: false, wantScope: "project"},
		{name: "global scope", global: true, wantScope: "global"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("HOME", t.TempDir())
			projectDir := t.TempDir()
			env := &ClaudeEnv{}

			path, err := env.Install(projectDir, tt.global)
			if err != nil {
				t.Fatalf("Install() error: %v", err)
			}
			if path == "" {
				t.Fatal("Install() returned empty path")
			}

			detectedPath, scope, installed := env.Detect(projectDir)
			if !installed {
				t.Fatal("Detect() should return true after install")
			}
			if scope != tt.wantScope {
				t.Errorf("scope = %q, want %q", scope, tt.wantScope)
			}
			if detectedPath != path {
				t.Errorf("Detect() path = %q, want %q", detectedPath, path)
			}
		})
	}
}

func TestClaudeEnvRemove(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	projectDir := t.TempDir()
	env := &ClaudeEnv{}

	if _, err := env.Install(projectDir, false); err != nil {
		t.Fatalf("Install() error: %v", err)
	}
	if err := env.Remove(projectDir, false); err != nil {
		t.Fatalf("Remove() error: %v", err)
	}

	if _, _, installed := env.Detect(projectDir); installed {
		t.Error("Detect() should return false after remove")
	}
}

func TestClaudeEnvCheck(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	projectDir := t.TempDir()
	env := &ClaudeEnv{}

	path, scope, installed, err := env.Check(projectDir, false)
	if err != nil {
		t.Fatalf("Check() error: %v", err)
	}
	if want := filepath.Join(projectDir, ".claude", "settings.local.json"); path != want {
		t.Errorf("Check() path = %q, want %q", path, want)
	}
	if scope != "project" {
		t.Errorf("scope = %q, want %q", scope, "project")
	}
	if installed {
		t.Error("Check() should return false when not installed")
	}
}

func TestDetectedAgentEnvs(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	projectDir := t.TempDir()

	if detected := DetectedAgentEnvs(projectDir); len(detected) != 0 {
		t.Errorf("DetectedAgentEnvs() = %d, want 0 when nothing installed", len(detected))
	}

	if _, err := (&ClaudeEnv{}).Install(projectDir, false); err != nil {
		t.Fatalf("Install() error: %v", err)
	}

	detected := DetectedAgentEnvs(projectDir)
	if len(detected) != 1 {
		t.Fatalf("DetectedAgentEnvs() = %d, want 1", len(detected))
	}
	if detected[0].Name() != "claude" {
		t.Errorf("detected[0].Name() = %q, want %q", detected[0].Name(), "claude")
	}
}
