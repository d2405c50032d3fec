// Package envfile applies LORE_* settings from .env files.
// Variables already set in the environment take precedence, and keys
// without the LORE_ prefix are ignored so a project's .env for other tools
// cannot change lore's behaviour.
package envfile

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// Prefix selects the variables Load applies.
const Prefix = "LORE_"

// Load reads each file in order and sets every LORE_* variable that is not
// already in the environment. Earlier files win over later ones because a
// variable set by one file is no longer unset for the next. Missing files
// are skipped. The keys that were set are returned in the order applied.
func Load(paths ...string) ([]string, error) {
	var applied []string
	for _, path := range paths {
		keys, err := loadFile(path)
		applied = append(applied, keys...)
		if err != nil {
			return applied, err
		}
	}
	return applied, nil
}

func loadFile(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening env file %s: %w", path, err)
	}
	defer file.Close() //nolint:errcheck // best-effort close on read-only file

	var applied []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		key, value, ok := parseEnvLine(scanner.Text())
		if !ok || !strings.HasPrefix(key, Prefix) {
			continue
		}
		if _, set := os.LookupEnv(key); set {
			continue
		}
		if err := os.Setenv(key, value); err != nil {
			return applied, fmt.Errorf("setting %s from %s: %w", key, path, err)
		}
		applied = append(applied, key)
	}
	if err := scanner.Err(); err != nil {
		return applied, fmt.Errorf("reading env file %s: %w", path, err)
	}
	return applied, nil
}

// parseEnvLine extracts KEY=VALUE from a line. Blank lines and comments are
// rejected. Quoted values keep their content verbatim; unquoted values lose
// a trailing " # comment".
func parseEnvLine(line string) (key, value string, ok bool) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return "", "", false
	}

	key, value, found := strings.Cut(line, "=")
	if !found {
		return "", "", false
	}
	key = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(key), "export "))
	if key == "" || strings.ContainsAny(key, " \t") {
		return "", "", false
	}

	value = strings.TrimSpace(value)
	if len(value) >= 2 && (value[0] == '"' || value[0] == '\'') && value[len(value)-1] == value[0] {
		return key, value[1 : len(value)-1], true
	}
	if idx := strings.Index(value, " #"); idx >= 0 {
		value = strings.TrimSpace(value[:idx])
	}
	return key, value, true
}
