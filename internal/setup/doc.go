// Package setup installs and removes lore's agent integrations.
//
// The Claude Code integration adds a SessionStart hook to a Claude settings
// file that refreshes lore/0-session/next-tasks.md at the start of every
// session, so the agent opens with a current digest:
//
//	path, scope, err := setup.ResolveClaudeSettingsPath(projectDir, false)
//	installed := setup.IsLoreHookInstalled(path)
//	err = setup.InstallLoreHook(path)
//	err = setup.RemoveLoreHook(path)
//
// Settings files are edited in place. Keys and hooks that lore did not add
// are preserved.
package setup
