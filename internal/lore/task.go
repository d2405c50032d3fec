package lore

import (
	"strings"
)

// Status is a task's display status.
type Status string

// Known task statuses.
const (
	StatusActive    Status = "active"
	StatusBlocked   Status = "blocked"
	StatusBacklog   Status = "backlog"
	StatusCompleted Status = "completed"
)

// Rank orders statuses for the status table: active, blocked, backlog,
// completed, then anything else.
func (s Status) Rank() int {
	switch s {
	case StatusActive:
		return 0
	case StatusBlocked:
		return 1
	case StatusBacklog:
		return 2
	case StatusCompleted:
		return 3
	default:
		return 4
	}
}

// Open reports whether a task in this status can be scheduled.
func (s Status) Open() bool {
	return s == StatusActive || s == StatusBlocked
}

// Task status subdirectories in scan order. Later directories win id collisions.
const (
	DirActive  = "active"
	DirBlocked = "blocked"
	DirArchive = "archive"
	DirBacklog = "backlog"
)

// TaskDirs lists the task subdirectories in scan order.
var TaskDirs = []string{DirActive, DirBlocked, DirArchive, DirBacklog}

// forcedStatus returns the status a directory imposes on its tasks.
// Only the active directory defers to the document itself.
func forcedStatus(dir string) (Status, bool) {
	switch dir {
	case DirArchive:
		return StatusCompleted, true
	case DirBlocked:
		return StatusBlocked, true
	case DirBacklog:
		return StatusBacklog, true
	default:
		return "", false
	}
}

// DefaultTaskType is used when a task has no type field.
const DefaultTaskType = "FEATURE"

// DefaultADRStatus is used when an ADR has no status field.
const DefaultADRStatus = "proposed"

// Task is one task record from lore/1-tasks.
type Task struct {
	ID         string   `json:"id"`
	Title      string   `json:"title"`
	Type       string   `json:"type"`
	Status     Status   `json:"status"`
	Path       string   `json:"path"`
	BlockedBy  []string `json:"blocked_by"`
	RelatedADR []string `json:"related_adr"`

	// Dir is the status subdirectory the task was filed under.
	Dir string `json:"dir"`
}

// ADR is one architecture decision record from lore/2-adrs.
type ADR struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Status       string   `json:"status"`
	Path         string   `json:"path"`
	RelatedTasks []string `json:"related_tasks"`
}

// TaskSet holds tasks keyed by id in scan order.
// Replacing an id keeps its original position.
type TaskSet struct {
	order []string
	byID  map[string]*Task
}

// NewTaskSet builds a set from tasks, applying Put in order.
func NewTaskSet(tasks ...*Task) *TaskSet {
	set := &TaskSet{byID: make(map[string]*Task, len(tasks))}
	for _, task := range tasks {
		set.Put(task)
	}
	return set
}

// Put stores task under its id and reports whether it replaced an earlier task.
func (s *TaskSet) Put(task *Task) (replaced bool) {
	if s.byID == nil {
		s.byID = make(map[string]*Task)
	}
	if _, exists := s.byID[task.ID]; exists {
		s.byID[task.ID] = task
		return true
	}
	s.order = append(s.order, task.ID)
	s.byID[task.ID] = task
	return false
}

// Get returns the task with the given id.
func (s *TaskSet) Get(id string) (*Task, bool) {
	task, ok := s.byID[id]
	return task, ok
}

// Has reports whether id is a known task.
func (s *TaskSet) Has(id string) bool {
	_, ok := s.byID[id]
	return ok
}

// Len returns the number of tasks.
func (s *TaskSet) Len() int {
	return len(s.order)
}

// All returns the tasks in scan order.
func (s *TaskSet) All() []*Task {
	tasks := make([]*Task, 0, len(s.order))
	for _, id := range s.order {
		tasks = append(tasks, s.byID[id])
	}
	return tasks
}

// IDs returns the task ids in scan order.
func (s *TaskSet) IDs() []string {
	return append([]string(nil), s.order...)
}

// WithStatus returns the tasks in the given status, in scan order.
func (s *TaskSet) WithStatus(status Status) []*Task {
	var tasks []*Task
	for _, id := range s.order {
		if task := s.byID[id]; task.Status == status {
			tasks = append(tasks, task)
		}
	}
	return tasks
}

// NormalizeID strips leading zeros from a numeric id. An id made only of
// zeros becomes "0".
func NormalizeID(id string) string {
	trimmed := strings.TrimLeft(id, "0")
	if trimmed == "" {
		return "0"
	}
	return trimmed
}

// isDigits reports whether s is a non-empty run of ASCII digits.
func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// leadingToken returns the part of name before the first underscore.
func leadingToken(name string) string {
	token, _, _ := strings.Cut(name, "_")
	return token
}
