package lore

import (
	"slices"
	"sort"
)

// Blocks maps a task id to the ids of the tasks it blocks, in task order.
type Blocks map[string][]string

// Count returns how many tasks id blocks.
func (b Blocks) Count(id string) int {
	return len(b[id])
}

// Sorted returns the ids blocked by id in ascending order.
func (b Blocks) Sorted(id string) []string {
	ids := slices.Clone(b[id])
	sort.Strings(ids)
	return ids
}

// ComputeBlocks reverses the blocked_by lists of tasks. Every known id gets
// an entry; blocker ids that are not in the set are ignored.
func ComputeBlocks(tasks *TaskSet) Blocks {
	blocks := make(Blocks, tasks.Len())
	for _, id := range tasks.IDs() {
		blocks[id] = []string{}
	}
	for _, task := range tasks.All() {
		for _, blocker := range task.BlockedBy {
			if _, known := blocks[blocker]; known {
				blocks[blocker] = append(blocks[blocker], task.ID)
			}
		}
	}
	return blocks
}

// ReadyTasks returns the open tasks whose blockers are all completed, in
// task order. Being filed under blocked/ does not by itself prevent a task
// from being ready.
func ReadyTasks(tasks *TaskSet) []*Task {
	var ready []*Task
	for _, task := range tasks.All() {
		if task.Status.Open() && blockersDone(tasks, task) {
			ready = append(ready, task)
		}
	}
	return ready
}

func blockersDone(tasks *TaskSet, task *Task) bool {
	for _, blocker := range task.BlockedBy {
		dep, ok := tasks.Get(blocker)
		if !ok || dep.Status != StatusCompleted {
			return false
		}
	}
	return true
}

// Blocker is an open task ranked by how many open tasks wait on it.
type Blocker struct {
	Task  *Task
	Count int
}

// CriticalBlockers ranks open tasks by the number of open tasks they block,
// most first. Tasks blocking nothing open are left out. Ties keep task
// order. limit <= 0 means no limit.
func CriticalBlockers(tasks *TaskSet, blocks Blocks, limit int) []Blocker {
	var ranked []Blocker
	for _, task := range tasks.All() {
		if !task.Status.Open() {
			continue
		}
		count := 0
		for _, id := range blocks[task.ID] {
			if dep, ok := tasks.Get(id); ok && dep.Status.Open() {
				count++
			}
		}
		if count > 0 {
			ranked = append(ranked, Blocker{Task: task, Count: count})
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})
	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// UnknownBlocker is a blocked_by reference to an id outside the task set.
type UnknownBlocker struct {
	TaskID    string `json:"task_id"`
	BlockerID string `json:"blocker_id"`
}

// UnknownBlockers lists blocked_by references that name no known task.
func UnknownBlockers(tasks *TaskSet) []UnknownBlocker {
	var unknown []UnknownBlocker
	for _, task := range tasks.All() {
		for _, blocker := range task.BlockedBy {
			if !tasks.Has(blocker) {
				unknown = append(unknown, UnknownBlocker{TaskID: task.ID, BlockerID: blocker})
			}
		}
	}
	return unknown
}

// DetectCycle returns one dependency cycle as a path that starts and ends
// with the same id, or nil when the graph is acyclic. Nodes are visited in
// ascending id order so the result is stable.
func DetectCycle(blocks Blocks) []string {
	const (
		white = iota
		gray
		black
	)

	color := make(map[string]int, len(blocks))
	var stack []string

	var visit func(id string) []string
	visit = func(id string) []string {
		color[id] = gray
		stack = append(stack, id)
		for _, next := range blocks[id] {
			switch color[next] {
			case gray:
				start := slices.Index(stack, next)
				cycle := slices.Clone(stack[start:])
				return append(cycle, next)
			case white:
				if cycle := visit(next); cycle != nil {
					return cycle
				}
			}
		}
		stack = stack[:len(stack)-1]
		color[id] = black
		return nil
	}

	ids := make([]string, 0, len(blocks))
	for id := range blocks {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		if color[id] != white {
			continue
		}
		if cycle := visit(id); cycle != nil {
			return cycle
		}
	}
	return nil
}
