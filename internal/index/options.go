// Package index renders the lore index (lore/README.md) and the next-tasks
// digest (lore/0-session/next-tasks.md) from a scanned snapshot.
package index

import "github.com/gorewood/lore/internal/config"

// Options tunes rendering.
type Options struct {
	// NextLimit caps the ready list of the digest.
	NextLimit int
	// HighThreshold is the blocks count at which a task is high priority.
	HighThreshold int
	// TitleWidth is the title length, in runes, kept in the status table.
	TitleWidth int
	// CriticalLimit caps the critical blockers list of the index.
	CriticalLimit int
}

// DefaultOptions returns the built-in rendering options.
func DefaultOptions() Options {
	return Options{
		NextLimit:     10,
		HighThreshold: 3,
		TitleWidth:    35,
		CriticalLimit: 5,
	}
}

// OptionsFromConfig applies configured values over the defaults. Zero
// values keep the default.
func OptionsFromConfig(cfg config.IndexConfig) Options {
	opts := DefaultOptions()
	if cfg.NextLimit > 0 {
		opts.NextLimit = cfg.NextLimit
	}
	if cfg.HighThreshold > 0 {
		opts.HighThreshold = cfg.HighThreshold
	}
	if cfg.TitleWidth > 0 {
		opts.TitleWidth = cfg.TitleWidth
	}
	if cfg.CriticalLimit > 0 {
		opts.CriticalLimit = cfg.CriticalLimit
	}
	return opts
}

// normalized fills unset fields so a zero Options renders like the defaults.
func (o Options) normalized() Options {
	return OptionsFromConfig(config.IndexConfig{
		NextLimit:     o.NextLimit,
		HighThreshold: o.HighThreshold,
		TitleWidth:    o.TitleWidth,
		CriticalLimit: o.CriticalLimit,
	})
}
