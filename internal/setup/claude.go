package setup

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gorewood/lore/internal/output"
)

// LoreHookCommand refreshes the next-tasks digest at session start.
const LoreHookCommand = "lore generate-index --next-only --quiet"

const sessionStartEvent = "SessionStart"

// Settings file names inside .claude/.
const (
	projectSettingsFile = "settings.local.json"
	globalSettingsFile  = "settings.json"
)

// ResolveClaudeSettingsPath returns the settings file for a scope: the
// project's .claude/settings.local.json, or ~/.claude/settings.json when
// global is set.
func ResolveClaudeSettingsPath(projectDir string, global bool) (path, scope string, err error) {
	if !global {
		if projectDir == "" {
			return "", "", output.NewUserError("project directory is required for project scope")
		}
		return filepath.Join(projectDir, ".claude", projectSettingsFile), "project", nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", "", output.NewSystemErrorWithCause("failed to get home directory", err)
	}
	return filepath.Join(home, ".claude", globalSettingsFile), "global", nil
}

// isLoreHookCommand matches any "lore generate-index" invocation, whatever
// its flags or the path to the binary.
func isLoreHookCommand(command string) bool {
	fields := strings.Fields(command)
	return len(fields) >= 2 && filepath.Base(fields[0]) == "lore" && fields[1] == "generate-index"
}

// IsLoreHookInstalled checks if a settings file carries the lore hook.
func IsLoreHookInstalled(settingsPath string) bool {
	settings, err := readSettings(settingsPath)
	if err != nil {
		return false
	}
	for _, group := range getSessionStartGroups(settings) {
		for _, hook := range group.Hooks {
			if isLoreHookCommand(hook.Command) {
				return true
			}
		}
	}
	return false
}

// InstallLoreHook adds the lore SessionStart hook to a settings file,
// creating it if needed. An existing lore hook is left as it is.
func InstallLoreHook(settingsPath string) error {
	settings, err := readSettings(settingsPath)
	if err != nil {
		return err
	}
	for _, group := range getSessionStartGroups(settings) {
		for _, hook := range group.Hooks {
			if isLoreHookCommand(hook.Command) {
				return nil
			}
		}
	}

	hooks, _ := settings["hooks"].(map[string]any)
	if hooks == nil {
		hooks = map[string]any{}
	}
	groups, _ := hooks[sessionStartEvent].([]any)
	hooks[sessionStartEvent] = append(groups, map[string]any{
		"matcher": "",
		"hooks": []any{
			map[string]any{"type": "command", "command": LoreHookCommand},
		},
	})
	settings["hooks"] = hooks

	return writeSettings(settingsPath, settings)
}

// RemoveLoreHook removes every lore hook from a settings file. Groups,
// events and the hooks key are dropped once empty. A missing file is a
// no-op.
func RemoveLoreHook(settingsPath string) error {
	if _, err := os.Stat(settingsPath); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	settings, err := readSettings(settingsPath)
	if err != nil {
		return err
	}

	hooks, ok := settings["hooks"].(map[string]any)
	if !ok {
		return nil
	}
	groups, _ := hooks[sessionStartEvent].([]any)

	var kept []any
	for _, rawGroup := range groups {
		group, ok := rawGroup.(map[string]any)
		if !ok {
			kept = append(kept, rawGroup)
			continue
		}
		rawHooks, _ := group["hooks"].([]any)
		var keptHooks []any
		for _, rawHook := range rawHooks {
			if entry, ok := parseHookEntry(rawHook); ok && isLoreHookCommand(entry.Command) {
				continue
			}
			keptHooks = append(keptHooks, rawHook)
		}
		if len(keptHooks) == 0 {
			continue
		}
		group["hooks"] = keptHooks
		kept = append(kept, group)
	}

	if len(kept) == 0 {
		delete(hooks, sessionStartEvent)
	} else {
		hooks[sessionStartEvent] = kept
	}
	if len(hooks) == 0 {
		delete(settings, "hooks")
	}

	return writeSettings(settingsPath, settings)
}

// readSettings loads a settings file. A missing or empty file yields an
// empty map.
func readSettings(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]any{}, nil
		}
		return nil, output.NewSystemErrorWithCause("failed to read settings file", err)
	}
	if strings.TrimSpace(string(data)) == "" {
		return map[string]any{}, nil
	}

	var settings map[string]any
	if err := json.Unmarshal(data, &settings); err != nil {
		return nil, output.NewUserErrorWithCause(fmt.Sprintf("settings file %s is not valid JSON", path), err)
	}
	if settings == nil {
		settings = map[string]any{}
	}
	return settings, nil
}

func writeSettings(path string, settings map[string]any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return output.NewSystemErrorWithCause("failed to create settings directory", err)
	}
	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return output.NewSystemErrorWithCause("failed to encode settings", err)
	}
	// #nosec G306 -- settings files are not secrets
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return output.NewSystemErrorWithCause("failed to write settings file", err)
	}
	return nil
}
