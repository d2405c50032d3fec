package index

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/gorewood/lore/internal/lore"
)

// regenerateHint tells readers how to rebuild the generated files.
const regenerateHint = "Use `lore generate-index` to regenerate."

// none fills empty table cells.
const none = "—"

// RenderIndex renders the full index. The output depends only on its
// arguments, so equal inputs give byte-identical documents.
func RenderIndex(snap *lore.Snapshot, now time.Time, opts Options) string {
	opts = opts.normalized()

	sections := []string{renderHeader(snap, now)}
	sections = append(sections, renderReady(snap, opts)...)
	sections = append(sections, renderCritical(snap, opts)...)
	sections = append(sections, "\n## Dependency Graph\n", RenderMermaid(snap))
	sections = append(sections, "\n"+renderStatusTable(snap, opts))
	sections = append(sections, "\n"+renderADRTable(snap))
	sections = append(sections, legend)

	return strings.Join(sections, "\n")
}

func renderHeader(snap *lore.Snapshot, now time.Time) string {
	c := snap.Counts()
	return fmt.Sprintf(`# Lore Index

> Auto-generated on %s. Do not edit manually.
> %s

Quick reference for task dependencies, status, and ADR relationships.

## Quick Stats

| Active | Blocked | Backlog | Completed | ADRs |
|:------:|:-------:|:-------:|:---------:|:----:|
| %d | %d | %d | %d | %d |`,
		now.Format("2006-01-02 15:04"), regenerateHint,
		c.Active, c.Blocked, c.Backlog, c.Completed, c.ADRs)
}

func renderReady(snap *lore.Snapshot, opts Options) []string {
	if len(snap.Ready) == 0 {
		return nil
	}

	ready := append([]*lore.Task(nil), snap.Ready...)
	sort.SliceStable(ready, func(i, j int) bool { return ready[i].ID < ready[j].ID })

	lines := []string{"\n## Ready to Start\n\nThese tasks have no blockers (or all blockers completed):\n"}
	for _, task := range ready {
		count := snap.Blocks.Count(task.ID)
		lines = append(lines, fmt.Sprintf("- **Task %s**: [%s](%s) — blocks %d tasks (%s)",
			task.ID, task.Title, task.Path, count, priority(count, opts.HighThreshold)))
	}
	return lines
}

func priority(count, high int) string {
	switch {
	case count >= high:
		return "**HIGH**"
	case count >= 1:
		return "medium"
	default:
		return "low"
	}
}

func renderCritical(snap *lore.Snapshot, opts Options) []string {
	critical := lore.CriticalBlockers(snap.Tasks, snap.Blocks, opts.CriticalLimit)
	if len(critical) == 0 {
		return nil
	}

	lines := []string{"\n## Critical Blockers\n\nThese tasks block the most other work:\n"}
	for _, blocker := range critical {
		lines = append(lines, fmt.Sprintf("- **Task %s**: [%s](%s) — blocks %d tasks",
			blocker.Task.ID, blocker.Task.Title, blocker.Task.Path, blocker.Count))
	}
	return lines
}

func renderStatusTable(snap *lore.Snapshot, opts Options) string {
	lines := []string{
		"## Task Status",
		"",
		"| ID | Title | Type | Status | Blocked By | Blocks | ADRs |",
		"|:---|:------|:-----|:-------|:-----------|:-------|:-----|",
	}

	for _, task := range statusOrder(snap.Tasks) {
		status := string(task.Status)
		if task.Status == lore.StatusActive {
			status = "**" + status + "**"
		}
		lines = append(lines, fmt.Sprintf("| %s | [%s](%s) | %s | %s | %s | %s | %s |",
			task.ID,
			truncate(task.Title, opts.TitleWidth),
			task.Path,
			task.Type,
			status,
			joinOrNone(task.BlockedBy),
			joinOrNone(snap.Blocks.Sorted(task.ID)),
			joinOrNone(task.RelatedADR),
		))
	}
	return strings.Join(lines, "\n")
}

// statusOrder sorts tasks by status rank, then id.
func statusOrder(tasks *lore.TaskSet) []*lore.Task {
	sorted := tasks.All()
	sort.SliceStable(sorted, func(i, j int) bool {
		ri, rj := sorted[i].Status.Rank(), sorted[j].Status.Rank()
		if ri != rj {
			return ri < rj
		}
		return sorted[i].ID < sorted[j].ID
	})
	return sorted
}

func renderADRTable(snap *lore.Snapshot) string {
	lines := []string{
		"## Architecture Decision Records",
		"",
		"| ID | Title | Status | Related Tasks |",
		"|:---|:------|:-------|:--------------|",
	}
	for _, adr := range snap.SortedADRs() {
		lines = append(lines, fmt.Sprintf("| %s | [%s](%s) | %s | %s |",
			adr.ID, adr.Title, adr.Path, adr.Status, joinOrNone(adr.RelatedTasks)))
	}
	return strings.Join(lines, "\n")
}

const legend = `
## Legend

**Task Status:**
- ` + "`active`" + ` — Work can proceed
- ` + "`blocked`" + ` — Waiting on dependencies
- ` + "`backlog`" + ` — Planned but not yet started
- ` + "`completed`" + ` — Done, in archive

**Graph Arrows:**
- ` + "`A --> B`" + ` — A blocks B (B depends on A)
- ` + "`ADR -.-> Task`" + ` — ADR informs Task
`

// truncate shortens s to width runes followed by an ellipsis.
func truncate(s string, width int) string {
	runes := []rune(s)
	if width <= 0 || len(runes) <= width {
		return s
	}
	return string(runes[:width]) + "…"
}

func joinOrNone(items []string) string {
	if len(items) == 0 {
		return none
	}
	return strings.Join(items, ", ")
}
