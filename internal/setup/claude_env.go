package setup

// ClaudeEnv implements AgentEnv for Claude Code.
type ClaudeEnv struct{}

func init() {
	RegisterAgentEnv(&ClaudeEnv{})
}

// Name returns the CLI identifier.
func (c *ClaudeEnv) Name() string { return "claude" }

// DisplayName returns the human-readable name.
func (c *ClaudeEnv) DisplayName() string { return "Claude Code" }

// Detect checks whether the lore hook is installed at either scope.
func (c *ClaudeEnv) Detect(projectDir string) (path, scope string, installed bool) {
	// Check project first, then global.
	for _, global := range []bool{false, true} {
		settingsPath, s, err := ResolveClaudeSettingsPath(projectDir, global)
		if err != nil {
			continue
		}
		if IsLoreHookInstalled(settingsPath) {
			return settingsPath, s, true
		}
	}
	return "", "", false
}

// Install adds the lore hook to Claude Code settings.
func (c *ClaudeEnv) Install(projectDir string, global bool) (string, error) {
	settingsPath, _, err := ResolveClaudeSettingsPath(projectDir, global)
	if err != nil {
		return "", err
	}
	if err := InstallLoreHook(settingsPath); err != nil {
		return "", err
	}
	return settingsPath, nil
}

// Remove removes the lore hook from Claude Code settings.
func (c *ClaudeEnv) Remove(projectDir string, global bool) error {
	settingsPath, _, err := ResolveClaudeSettingsPath(projectDir, global)
	if err != nil {
		return err
	}
	return RemoveLoreHook(settingsPath)
}

// Check returns installation status for a specific scope.
func (c *ClaudeEnv) Check(projectDir string, global bool) (path, scope string, installed bool, err error) {
	settingsPath, s, resolveErr := ResolveClaudeSettingsPath(projectDir, global)
	if resolveErr != nil {
		return "", "", false, resolveErr
	}
	return settingsPath, s, IsLoreHookInstalled(settingsPath), nil
}
