package index

import (
	"fmt"
	"sort"
	"strings"

	"github.com/gorewood/lore/internal/lore"
)

// RenderNext renders the next-tasks digest: the ready tasks that unblock the
// most work first, then the roster of blocked tasks.
func RenderNext(snap *lore.Snapshot, opts Options) string {
	opts = opts.normalized()
	c := snap.Counts()

	lines := []string{
		"# Next Tasks",
		"",
		"> Auto-generated. " + regenerateHint,
		"> Full index: [README.md](../README.md)",
		"",
		fmt.Sprintf("**Active:** %d | **Blocked:** %d | **Backlog:** %d | **Completed:** %d",
			c.Active, c.Blocked, c.Backlog, c.Completed),
		"",
	}

	if ready := NextTasks(snap, opts.NextLimit); len(ready) > 0 {
		lines = append(lines, "## Ready to Start", "")
		for _, task := range ready {
			count := snap.Blocks.Count(task.ID)
			unblocks := "no blockers"
			if count > 0 {
				unblocks = fmt.Sprintf("unblocks %d", count)
			}
			suffix := ""
			if count >= opts.HighThreshold {
				suffix = " [HIGH]"
			}
			lines = append(lines, fmt.Sprintf("- **%s** [%s](%s) — %s%s",
				task.ID, task.Title, task.Path, unblocks, suffix))
		}
		lines = append(lines, "")
	}

	if blocked := snap.BlockedIDs(); len(blocked) > 0 {
		lines = append(lines,
			fmt.Sprintf("## Blocked (%d)", len(blocked)),
			"",
			strings.Join(blocked, ", "),
			"",
		)
	}

	lines = append(lines,
		"---",
		"",
		"Set current task: use `lore-framework_set-task` tool with task ID",
		"",
	)
	return strings.Join(lines, "\n")
}

// NextTasks returns up to limit ready tasks ordered by how many tasks each
// blocks, most first. Ties keep scan order. limit <= 0 means no limit.
func NextTasks(snap *lore.Snapshot, limit int) []*lore.Task {
	ready := append([]*lore.Task(nil), snap.Ready...)
	sort.SliceStable(ready, func(i, j int) bool {
		return snap.Blocks.Count(ready[i].ID) > snap.Blocks.Count(ready[j].ID)
	})
	if limit > 0 && len(ready) > limit {
		ready = ready[:limit]
	}
	return ready
}
