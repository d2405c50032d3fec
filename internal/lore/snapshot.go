package lore

import "sort"

// Snapshot is one full read of a lore tree with its derived graph.
type Snapshot struct {
	Tasks       *TaskSet
	ADRs        map[string]*ADR
	Blocks      Blocks
	Ready       []*Task
	Diagnostics []Diagnostic
}

// Counts are the per-status totals shown in reports.
type Counts struct {
	Active    int `json:"active"`
	Blocked   int `json:"blocked"`
	Backlog   int `json:"backlog"`
	Completed int `json:"completed"`
	ADRs      int `json:"adrs"`
}

// NewSnapshot derives the blocks graph and ready set for tasks and adrs.
// A nil adrs map is treated as empty.
func NewSnapshot(tasks *TaskSet, adrs map[string]*ADR) *Snapshot {
	if tasks == nil {
		tasks = NewTaskSet()
	}
	if adrs == nil {
		adrs = map[string]*ADR{}
	}
	return &Snapshot{
		Tasks:  tasks,
		ADRs:   adrs,
		Blocks: ComputeBlocks(tasks),
		Ready:  ReadyTasks(tasks),
	}
}

// Snapshot scans the tree. ADRs are read only when withADRs is set.
func (s *Scanner) Snapshot(withADRs bool) *Snapshot {
	tasks, diags := s.ScanTasks()

	var adrs map[string]*ADR
	if withADRs {
		var adrDiags []Diagnostic
		adrs, adrDiags = s.ScanADRs()
		diags = append(diags, adrDiags...)
	}

	snap := NewSnapshot(tasks, adrs)
	snap.Diagnostics = diags
	return snap
}

// Counts tallies tasks by status and counts ADRs. Tasks with an unknown
// status are not counted.
func (s *Snapshot) Counts() Counts {
	c := Counts{ADRs: len(s.ADRs)}
	for _, task := range s.Tasks.All() {
		switch task.Status {
		case StatusActive:
			c.Active++
		case StatusBlocked:
			c.Blocked++
		case StatusBacklog:
			c.Backlog++
		case StatusCompleted:
			c.Completed++
		}
	}
	return c
}

// SortedADRs returns the ADRs in ascending id order.
func (s *Snapshot) SortedADRs() []*ADR {
	adrs := make([]*ADR, 0, len(s.ADRs))
	for _, adr := range s.ADRs {
		adrs = append(adrs, adr)
	}
	sort.Slice(adrs, func(i, j int) bool { return adrs[i].ID < adrs[j].ID })
	return adrs
}

// BlockedIDs returns the ids of blocked-status tasks in ascending order.
func (s *Snapshot) BlockedIDs() []string {
	var ids []string
	for _, task := range s.Tasks.WithStatus(StatusBlocked) {
		ids = append(ids, task.ID)
	}
	sort.Strings(ids)
	return ids
}
