// Package config resolves lore's configuration: the project and lore
// directories, the user configuration directory, and layered TOML settings.
package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// appName names the per-user configuration directory.
const appName = "lore"

// Dir returns the lore configuration directory.
//
// Resolution:
//   - $LORE_CONFIG_HOME if set
//   - $XDG_CONFIG_HOME/lore if set
//   - %AppData%/lore on Windows
//   - ~/.config/lore elsewhere
func Dir() string {
	if dir := os.Getenv("LORE_CONFIG_HOME"); dir != "" {
		return dir
	}

	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appName)
	}

	if runtime.GOOS == "windows" {
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, appName)
		}
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", appName)
}
