package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

// File names searched by Load.
const (
	UserConfigFile    = "config.toml"
	ProjectConfigFile = ".lore.toml"
)

// Config holds settings read from configuration files and the environment.
// Zero values mean "use the built-in default".
type Config struct {
	Index IndexConfig `toml:"index"`
	Log   LogConfig   `toml:"log"`

	// Files lists the configuration files that were applied, in order.
	Files []string `toml:"-"`
}

// IndexConfig tunes the generated reports.
type IndexConfig struct {
	NextLimit     int `toml:"next_limit"`
	HighThreshold int `toml:"high_threshold"`
	TitleWidth    int `toml:"title_width"`
	CriticalLimit int `toml:"critical_limit"`
}

// LogConfig controls diagnostic logging.
type LogConfig struct {
	Level string `toml:"level"`
}

// Load reads configuration in priority order:
//  1. User config file (Dir()/config.toml)
//  2. Project config file (<projectDir>/.lore.toml)
//  3. Environment variables (LORE_NEXT_LIMIT, LORE_HIGH_THRESHOLD,
//     LORE_TITLE_WIDTH, LORE_CRITICAL_LIMIT, LORE_LOG_LEVEL)
//
// Missing files are skipped.
func Load(projectDir string) (*Config, error) {
	cfg := &Config{}

	var files []string
	if dir := Dir(); dir != "" {
		files = append(files, filepath.Join(dir, UserConfigFile))
	}
	if projectDir != "" {
		files = append(files, filepath.Join(projectDir, ProjectConfigFile))
	}

	for _, path := range files {
		applied, err := loadConfigFile(cfg, path)
		if err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", path, err)
		}
		if applied {
			cfg.Files = append(cfg.Files, path)
		}
	}

	if err := loadFromEnv(cfg); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadConfigFile decodes path over cfg. It reports false when the file
// does not exist.
func loadConfigFile(cfg *Config, path string) (bool, error) {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, err
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, key := range undecoded {
			keys = append(keys, key.String())
		}
		sort.Strings(keys)
		return false, fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}
	return true, nil
}

func loadFromEnv(cfg *Config) error {
	ints := []struct {
		name   string
		target *int
	}{
		{"LORE_NEXT_LIMIT", &cfg.Index.NextLimit},
		{"LORE_HIGH_THRESHOLD", &cfg.Index.HighThreshold},
		{"LORE_TITLE_WIDTH", &cfg.Index.TitleWidth},
		{"LORE_CRITICAL_LIMIT", &cfg.Index.CriticalLimit},
	}
	for _, env := range ints {
		raw := strings.TrimSpace(os.Getenv(env.name))
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("%s: %q is not a number", env.name, raw)
		}
		*env.target = n
	}

	if level := strings.TrimSpace(os.Getenv("LORE_LOG_LEVEL")); level != "" {
		cfg.Log.Level = level
	}
	return nil
}

func (c *Config) validate() error {
	checks := []struct {
		name  string
		value int
	}{
		{"index.next_limit", c.Index.NextLimit},
		{"index.high_threshold", c.Index.HighThreshold},
		{"index.title_width", c.Index.TitleWidth},
		{"index.critical_limit", c.Index.CriticalLimit},
	}
	for _, check := range checks {
		if check.value < 0 {
			return fmt.Errorf("%s must not be negative, got %d", check.name, check.value)
		}
	}
	return nil
}
