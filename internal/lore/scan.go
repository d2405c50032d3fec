package lore

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/gorewood/lore/internal/frontmatter"
)

// Directory and file names inside a lore root.
const (
	SessionDirName = "0-session"
	TasksDirName   = "1-tasks"
	ADRDirName     = "2-adrs"
	IndexFileName  = "README.md"
	NextFileName   = "next-tasks.md"

	taskReadme = "README.md"
	docSuffix  = ".md"
)

var (
	// ErrNotFound reports a missing lore root or required subdirectory.
	ErrNotFound = errors.New("directory not found")

	// ErrTaskNotFound is returned by FindTask when no entry matches.
	ErrTaskNotFound = errors.New("task not found")
)

// Scanner reads tasks and ADRs from a lore root. Every call rescans the
// filesystem; nothing is cached between calls.
type Scanner struct {
	root    string
	project string
}

// NewScanner creates a scanner for the lore root at loreDir. Document paths
// are reported relative to the directory containing loreDir.
func NewScanner(loreDir string) *Scanner {
	return &Scanner{root: loreDir, project: filepath.Dir(loreDir)}
}

// Root returns the lore root directory.
func (s *Scanner) Root() string { return s.root }

// TasksDir returns the tasks root (lore/1-tasks).
func (s *Scanner) TasksDir() string { return filepath.Join(s.root, TasksDirName) }

// ADRDir returns the ADR directory (lore/2-adrs).
func (s *Scanner) ADRDir() string { return filepath.Join(s.root, ADRDirName) }

// SessionDir returns the session directory (lore/0-session).
func (s *Scanner) SessionDir() string { return filepath.Join(s.root, SessionDirName) }

// Require checks that the lore root and each named subdirectory exist as
// directories. The first missing one is reported, wrapped in ErrNotFound.
func (s *Scanner) Require(subdirs ...string) error {
	paths := []string{s.root}
	for _, sub := range subdirs {
		paths = append(paths, filepath.Join(s.root, sub))
	}
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil || !info.IsDir() {
			return fmt.Errorf("%w: %s", ErrNotFound, path)
		}
	}
	return nil
}

// ScanTasks reads every task under the four status directories, in the
// order active, blocked, archive, backlog. Entries that cannot be read are
// reported as diagnostics and skipped; the scan itself never fails.
func (s *Scanner) ScanTasks() (*TaskSet, []Diagnostic) {
	tasks := NewTaskSet()
	var diags []Diagnostic

	for _, dir := range TaskDirs {
		dirPath := filepath.Join(s.TasksDir(), dir)
		entries, err := os.ReadDir(dirPath)
		if err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				diags = append(diags, s.diag(dirPath, SkipReadError, err.Error()))
			}
			continue
		}

		for _, entry := range entries {
			task, entryDiags := s.scanTaskEntry(dir, dirPath, entry)
			diags = append(diags, entryDiags...)
			if task == nil {
				continue
			}
			if tasks.Put(task) {
				diags = append(diags, s.diag(task.Path, WarnDuplicateID,
					fmt.Sprintf("task id %s is defined more than once; this entry replaces the earlier one", task.ID)))
			}
		}
	}

	return tasks, diags
}

// scanTaskEntry turns one directory entry into a task. A nil task means the
// entry was skipped.
func (s *Scanner) scanTaskEntry(dir, dirPath string, entry fs.DirEntry) (*Task, []Diagnostic) {
	docPath, stem, ok, diag := s.resolveTaskDocument(dirPath, entry)
	if !ok {
		if diag != nil {
			return nil, []Diagnostic{*diag}
		}
		return nil, nil
	}

	token := leadingToken(stem)
	if !isDigits(token) {
		return nil, []Diagnostic{s.diag(docPath, SkipInvalidID,
			fmt.Sprintf("task id %q is not numeric", token))}
	}
	fileID := NormalizeID(token)

	doc, skip := s.readDocument(docPath)
	if skip != nil {
		return nil, []Diagnostic{*skip}
	}

	var meta taskMeta
	if err := doc.Decode(&meta); err != nil {
		return nil, []Diagnostic{s.diag(docPath, SkipParseError, err.Error())}
	}
	blockedBy, err := meta.blockedBy()
	if err != nil {
		return nil, []Diagnostic{s.diag(docPath, SkipParseError, err.Error())}
	}

	status, forced := forcedStatus(dir)
	if !forced {
		status = Status(meta.Status.OrDefault(string(StatusActive)))
	}

	relatedADR := []string(meta.RelatedADR)
	if relatedADR == nil {
		relatedADR = []string{}
	}

	task := &Task{
		ID:         meta.ID.OrDefault(fileID),
		Title:      resolveTitle(meta.Title, doc.Body),
		Type:       meta.Type.OrDefault(DefaultTaskType),
		Status:     status,
		Path:       s.rel(docPath),
		BlockedBy:  blockedBy,
		RelatedADR: relatedADR,
		Dir:        dir,
	}

	var diags []Diagnostic
	if comparableID(task.ID) != fileID {
		diags = append(diags, s.diag(docPath, WarnIDMismatch,
			fmt.Sprintf("metadata id %q does not match filename id %q; the index uses %q, find-task uses %q",
				task.ID, fileID, task.ID, fileID)))
	}
	return task, diags
}

// resolveTaskDocument finds the canonical document for a task entry: the
// file itself for *.md files, README.md for directories. ok is false for
// reserved entries, non-markdown files and directories without a README.
func (s *Scanner) resolveTaskDocument(dirPath string, entry fs.DirEntry) (path, stem string, ok bool, diag *Diagnostic) {
	name := entry.Name()
	if strings.HasPrefix(name, "_") {
		return "", "", false, nil
	}

	full := filepath.Join(dirPath, name)
	info, err := os.Stat(full)
	if err != nil {
		d := s.diag(full, SkipReadError, err.Error())
		return "", "", false, &d
	}

	if info.IsDir() {
		readme := filepath.Join(full, taskReadme)
		readmeInfo, statErr := os.Stat(readme)
		if statErr != nil || readmeInfo.IsDir() {
			d := s.diag(full, SkipNoDocument, "task directory has no "+taskReadme)
			return "", "", false, &d
		}
		return readme, name, true, nil
	}

	if !strings.HasSuffix(name, docSuffix) {
		return "", "", false, nil
	}
	return full, strings.TrimSuffix(name, docSuffix), true, nil
}

// ScanADRs reads every *.md record in lore/2-adrs. A missing directory
// yields an empty result.
func (s *Scanner) ScanADRs() (map[string]*ADR, []Diagnostic) {
	adrs := make(map[string]*ADR)
	var diags []Diagnostic

	entries, err := os.ReadDir(s.ADRDir())
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			diags = append(diags, s.diag(s.ADRDir(), SkipReadError, err.Error()))
		}
		return adrs, diags
	}

	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, "_") || !strings.HasSuffix(name, docSuffix) {
			continue
		}
		path := filepath.Join(s.ADRDir(), name)
		if info, statErr := os.Stat(path); statErr != nil || info.IsDir() {
			continue
		}

		adr, skip := s.scanADR(path, strings.TrimSuffix(name, docSuffix))
		if skip != nil {
			diags = append(diags, *skip)
			continue
		}
		if _, exists := adrs[adr.ID]; exists {
			diags = append(diags, s.diag(path, WarnDuplicateID,
				fmt.Sprintf("ADR id %s is defined more than once; this entry replaces the earlier one", adr.ID)))
		}
		adrs[adr.ID] = adr
	}

	return adrs, diags
}

func (s *Scanner) scanADR(path, stem string) (*ADR, *Diagnostic) {
	doc, skip := s.readDocument(path)
	if skip != nil {
		return nil, skip
	}

	var meta adrMeta
	if err := doc.Decode(&meta); err != nil {
		d := s.diag(path, SkipParseError, err.Error())
		return nil, &d
	}

	related := []string(meta.RelatedTasks)
	if related == nil {
		related = []string{}
	}

	return &ADR{
		ID:           meta.ID.OrDefault(leadingToken(stem)),
		Title:        resolveTitle(meta.Title, doc.Body),
		Status:       meta.Status.OrDefault(DefaultADRStatus),
		Path:         s.rel(path),
		RelatedTasks: related,
	}, nil
}

// readDocument parses a document and rejects ones without metadata.
func (s *Scanner) readDocument(path string) (*frontmatter.Document, *Diagnostic) {
	doc, err := frontmatter.ReadFile(path)
	if err != nil {
		kind := SkipReadError
		if errors.Is(err, frontmatter.ErrParse) {
			kind = SkipParseError
		}
		d := s.diag(path, kind, err.Error())
		return nil, &d
	}
	if !doc.HasMeta() {
		d := s.diag(path, SkipNoMetadata, "document has no frontmatter")
		return nil, &d
	}
	return doc, nil
}

// FindTask returns the canonical document path of the task whose filename
// id matches id (leading zeros ignored). Directories are searched in scan
// order and the first match wins. Metadata ids are not consulted.
func (s *Scanner) FindTask(id string) (string, error) {
	query := strings.TrimSpace(id)
	if query == "" {
		return "", errors.New("task id is required")
	}
	want := NormalizeID(query)

	for _, dir := range TaskDirs {
		dirPath := filepath.Join(s.TasksDir(), dir)
		entries, err := os.ReadDir(dirPath)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			path, stem, ok, _ := s.resolveTaskDocument(dirPath, entry)
			if !ok {
				continue
			}
			if NormalizeID(leadingToken(stem)) == want {
				return path, nil
			}
		}
	}

	return "", fmt.Errorf("task %s: %w", query, ErrTaskNotFound)
}

// comparableID normalizes numeric ids so "007" and "7" compare equal.
func comparableID(id string) string {
	if isDigits(id) {
		return NormalizeID(id)
	}
	return id
}

func (s *Scanner) rel(path string) string {
	rel, err := filepath.Rel(s.project, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}

func (s *Scanner) diag(path string, kind DiagnosticKind, message string) Diagnostic {
	if filepath.IsAbs(path) {
		path = s.rel(path)
	}
	return Diagnostic{Path: path, Kind: kind, Message: message}
}
