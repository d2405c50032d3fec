package index

import (
	"fmt"
	"sort"
	"strings"

	"github.com/gorewood/lore/internal/lore"
)

// Label widths inside graph nodes.
const (
	taskLabelWidth = 25
	adrLabelWidth  = 20
)

var graphGroups = []struct {
	name   string
	status lore.Status
}{
	{"Completed", lore.StatusCompleted},
	{"Active", lore.StatusActive},
	{"Blocked", lore.StatusBlocked},
	{"Backlog", lore.StatusBacklog},
}

// RenderMermaid renders the dependency graph as a fenced mermaid flowchart.
// Solid edges run from a blocker to the task it blocks; dotted edges link
// an ADR to the tasks that reference it. References to unknown tasks or
// ADRs draw no edge.
func RenderMermaid(snap *lore.Snapshot) string {
	lines := []string{"```mermaid", "flowchart LR"}

	for _, group := range graphGroups {
		tasks := snap.Tasks.WithStatus(group.status)
		if len(tasks) == 0 {
			continue
		}
		sort.SliceStable(tasks, func(i, j int) bool { return tasks[i].ID < tasks[j].ID })

		lines = append(lines, "    subgraph "+group.name)
		for _, task := range tasks {
			lines = append(lines, fmt.Sprintf(`        %s["%s: %s"]`,
				taskNode(task.ID), label(task.ID), label(truncate(task.Title, taskLabelWidth))))
		}
		lines = append(lines, "    end")
	}

	if len(snap.ADRs) > 0 {
		lines = append(lines, "    subgraph ADRs")
		for _, adr := range snap.SortedADRs() {
			lines = append(lines, fmt.Sprintf(`        %s[/"ADR %s: %s"/]`,
				adrNode(adr.ID), label(adr.ID), label(truncate(adr.Title, adrLabelWidth))))
		}
		lines = append(lines, "    end")
	}

	lines = append(lines, "")
	for _, task := range snap.Tasks.All() {
		for _, blocker := range task.BlockedBy {
			if snap.Tasks.Has(blocker) {
				lines = append(lines, fmt.Sprintf("    %s --> %s", taskNode(blocker), taskNode(task.ID)))
			}
		}
	}

	lines = append(lines, "")
	for _, task := range snap.Tasks.All() {
		for _, adrID := range task.RelatedADR {
			if _, ok := snap.ADRs[adrID]; ok {
				lines = append(lines, fmt.Sprintf("    %s -.-> %s", adrNode(adrID), taskNode(task.ID)))
			}
		}
	}

	lines = append(lines, "```")
	return strings.Join(lines, "\n")
}

func taskNode(id string) string { return "T" + nodeID(id) }

func adrNode(id string) string { return "ADR" + nodeID(id) }

// nodeID keeps letters, digits and underscores so any id is a valid node
// name.
func nodeID(id string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			return r
		default:
			return '_'
		}
	}, id)
}

// label escapes double quotes, which would end a quoted node label.
func label(s string) string {
	return strings.ReplaceAll(s, `"`, "#quot;")
}
