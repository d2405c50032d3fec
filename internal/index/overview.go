package index

import (
	"github.com/gorewood/lore/internal/config"
	"github.com/gorewood/lore/internal/lore"
)

// ReadyTask is a ready task with its priority.
type ReadyTask struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Path   string `json:"path"`
	Blocks int    `json:"blocks"`
	High   bool   `json:"high"`
}

// CriticalTask is an open task that holds back other open work.
type CriticalTask struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Path   string `json:"path"`
	Blocks int    `json:"blocks"`
}

// Overview is the read-only view behind the status command and tool. It
// carries the same selections as the generated documents.
type Overview struct {
	Counts      lore.Counts       `json:"counts"`
	Ready       []ReadyTask       `json:"ready"`
	Critical    []CriticalTask    `json:"critical"`
	Blocked     []string          `json:"blocked"`
	Diagnostics []lore.Diagnostic `json:"diagnostics"`
}

// Summarize builds the overview of snap.
func Summarize(snap *lore.Snapshot, opts Options) *Overview {
	opts = opts.normalized()
	ov := &Overview{
		Counts:      snap.Counts(),
		Ready:       []ReadyTask{},
		Critical:    []CriticalTask{},
		Blocked:     snap.BlockedIDs(),
		Diagnostics: snap.Diagnostics,
	}
	if ov.Blocked == nil {
		ov.Blocked = []string{}
	}
	if ov.Diagnostics == nil {
		ov.Diagnostics = []lore.Diagnostic{}
	}

	for _, task := range NextTasks(snap, opts.NextLimit) {
		count := snap.Blocks.Count(task.ID)
		ov.Ready = append(ov.Ready, ReadyTask{
			ID:     task.ID,
			Title:  task.Title,
			Path:   task.Path,
			Blocks: count,
			High:   count >= opts.HighThreshold,
		})
	}
	for _, blocker := range lore.CriticalBlockers(snap.Tasks, snap.Blocks, opts.CriticalLimit) {
		ov.Critical = append(ov.Critical, CriticalTask{
			ID:     blocker.Task.ID,
			Title:  blocker.Task.Title,
			Path:   blocker.Task.Path,
			Blocks: blocker.Count,
		})
	}
	return ov
}

// LoadOverview scans the project and summarizes it without writing. Only
// the lore root and 1-tasks are required; a missing 2-adrs counts no ADRs.
func LoadOverview(layout config.Layout, opts Options) (*Overview, error) {
	scanner := layout.Scanner()
	if err := scanner.Require(lore.TasksDirName); err != nil {
		return nil, missingDirError(err)
	}
	return Summarize(scanner.Snapshot(true), opts), nil
}
