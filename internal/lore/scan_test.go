package lore

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"
)

// newTestLore creates an empty lore tree and returns its root.
func newTestLore(t *testing.T) string {
	t.Helper()
	root := filepath.Join(t.TempDir(), "lore")
	for _, dir := range []string{SessionDirName, ADRDirName, filepath.Join(TasksDirName, DirActive)} {
		if err := os.MkdirAll(filepath.Join(root, dir), 0o755); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

// writeDoc writes content to a slash-separated path under root.
func writeDoc(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

func writeTask(t *testing.T, root, dir, name, meta string) {
	t.Helper()
	writeDoc(t, root, TasksDirName+"/"+dir+"/"+name, "---\n"+meta+"---\n")
}

func diagKinds(diags []Diagnostic) []DiagnosticKind {
	kinds := make([]DiagnosticKind, 0, len(diags))
	for _, d := range diags {
		kinds = append(kinds, d.Kind)
	}
	return kinds
}

func TestScanTasks_DirectoryForcesStatus(t *testing.T) {
	root := newTestLore(t)
	writeTask(t, root, DirActive, "001_own-status.md", "title: One\nstatus: completed\n")
	writeTask(t, root, DirActive, "002_default.md", "title: Two\n")
	writeTask(t, root, DirBlocked, "003_blocked.md", "title: Three\nstatus: active\n")
	writeTask(t, root, DirArchive, "004_done.md", "title: Four\nstatus: active\n")
	writeTask(t, root, DirBacklog, "005_later.md", "title: Five\nstatus: completed\n")

	tasks, diags := NewScanner(root).ScanTasks()
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}

	want := map[string]Status{
		"1": StatusCompleted,
		"2": StatusActive,
		"3": StatusBlocked,
		"4": StatusCompleted,
		"5": StatusBacklog,
	}
	for id, status := range want {
		task, ok := tasks.Get(id)
		if !ok {
			t.Errorf("task %s missing", id)
			continue
		}
		if task.Status != status {
			t.Errorf("task %s status = %q, want %q", id, task.Status, status)
		}
	}

	if got := tasks.IDs(); !slices.Equal(got, []string{"1", "2", "3", "4", "5"}) {
		t.Errorf("IDs() = %v, want scan order", got)
	}
}

func TestScanTasks_Fields(t *testing.T) {
	root := newTestLore(t)
	writeTask(t, root, DirActive, "007_login.md", "title: Login\ntype: BUG\nrelated_adr: \"2\"\n")
	writeDoc(t, root, TasksDirName+"/active/000_zero.md", "---\ntype: CHORE\n---\n# Zero heading\n\nbody\n")
	writeDoc(t, root, TasksDirName+"/active/010_untitled.md", "---\nstatus: active\n---\nno heading here\n")

	tasks, _ := NewScanner(root).ScanTasks()

	login, ok := tasks.Get("7")
	if !ok {
		t.Fatalf("task 7 missing, ids = %v", tasks.IDs())
	}
	if login.Title != "Login" || login.Type != "BUG" {
		t.Errorf("task 7 = %+v", login)
	}
	if !slices.Equal(login.RelatedADR, []string{"2"}) {
		t.Errorf("RelatedADR = %v, want [2]", login.RelatedADR)
	}
	if login.Path != "lore/1-tasks/active/007_login.md" {
		t.Errorf("Path = %q", login.Path)
	}
	if login.BlockedBy == nil || len(login.BlockedBy) != 0 {
		t.Errorf("BlockedBy = %#v, want empty non-nil", login.BlockedBy)
	}

	zero, ok := tasks.Get("0")
	if !ok {
		t.Fatalf("task 0 missing, ids = %v", tasks.IDs())
	}
	if zero.Title != "Zero heading" {
		t.Errorf("title = %q, want heading fallback", zero.Title)
	}
	if zero.Type != "CHORE" {
		t.Errorf("type = %q", zero.Type)
	}

	untitled, _ := tasks.Get("10")
	if untitled == nil || untitled.Title != "Untitled" || untitled.Type != DefaultTaskType {
		t.Errorf("task 10 = %+v, want Untitled FEATURE", untitled)
	}
	if untitled != nil && (untitled.RelatedADR == nil || len(untitled.RelatedADR) != 0) {
		t.Errorf("RelatedADR = %#v, want empty non-nil", untitled.RelatedADR)
	}
}

func TestScanTasks_Skips(t *testing.T) {
	root := newTestLore(t)
	writeTask(t, root, DirActive, "_template.md", "title: Template\n")
	writeDoc(t, root, TasksDirName+"/active/notes.txt", "not a task")
	writeTask(t, root, DirActive, "abc_named.md", "title: Named\n")
	writeDoc(t, root, TasksDirName+"/active/011_folder/README.md", "---\ntitle: Folder task\n---\n")
	if err := os.MkdirAll(filepath.Join(root, TasksDirName, DirActive, "012_empty"), 0o755); err != nil {
		t.Fatal(err)
	}
	writeDoc(t, root, TasksDirName+"/active/013_plain.md", "# No metadata\n")
	writeDoc(t, root, TasksDirName+"/active/014_broken.md", "---\ntitle: [unclosed\n---\n")
	writeTask(t, root, DirActive, "015_ok.md", "title: Fine\n")

	tasks, diags := NewScanner(root).ScanTasks()

	if got := tasks.IDs(); !slices.Equal(got, []string{"11", "15"}) {
		t.Errorf("IDs() = %v, want [11 15]", got)
	}
	folder, _ := tasks.Get("11")
	if folder == nil || folder.Path != "lore/1-tasks/active/011_folder/README.md" {
		t.Errorf("folder task = %+v", folder)
	}

	wantKinds := []DiagnosticKind{SkipNoDocument, SkipNoMetadata, SkipParseError, SkipInvalidID}
	if got := diagKinds(diags); !slices.Equal(got, wantKinds) {
		t.Errorf("diagnostic kinds = %v, want %v", got, wantKinds)
	}
	for _, d := range diags {
		if d.Path == "" || d.Message == "" {
			t.Errorf("diagnostic missing detail: %+v", d)
		}
	}

	stats := Stats(tasks.Len(), diags)
	if stats.Total != 6 || stats.Skipped != 4 || stats.NoMetadata != 1 || stats.ParseErrors != 1 {
		t.Errorf("Stats() = %+v", stats)
	}
}

func TestScanTasks_BlockedBy(t *testing.T) {
	tests := []struct {
		name string
		meta string
		want []string
	}{
		{
			name: "list in last record",
			meta: "history:\n  - status: active\n  - status: blocked\n    by: [\"3\", \"4\"]\n",
			want: []string{"3", "4"},
		},
		{
			name: "numeric list",
			meta: "history:\n  - status: blocked\n    by: [3, 04, \"05\"]\n",
			want: []string{"3", "4", "05"},
		},
		{
			name: "scalar by",
			meta: "history:\n  - status: blocked\n    by: \"9\"\n",
			want: []string{"9"},
		},
		{
			name: "empty scalar by",
			meta: "history:\n  - status: blocked\n    by: \"\"\n",
			want: []string{},
		},
		{
			name: "null by",
			meta: "history:\n  - status: blocked\n    by:\n",
			want: []string{},
		},
		{
			name: "earlier record ignored",
			meta: "history:\n  - status: blocked\n    by: [\"3\"]\n  - status: active\n",
			want: []string{},
		},
		{
			name: "no history",
			meta: "title: Plain\n",
			want: []string{},
		},
		{
			name: "history not a list",
			meta: "history: blocked\n",
			want: []string{},
		},
		{
			name: "mapping by",
			meta: "history:\n  - status: blocked\n    by: {task: 3}\n",
			want: []string{},
		},
		{
			name: "mapping items dropped",
			meta: "history:\n  - status: blocked\n    by: [{task: 3}, 4]\n",
			want: []string{"4"},
		},
		{
			name: "last record not a mapping",
			meta: "history:\n  - status: blocked\n    by: [\"3\"]\n  - blocked\n",
			want: []string{},
		},
		{
			name: "empty history",
			meta: "history: []\n",
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := newTestLore(t)
			writeTask(t, root, DirActive, "001_task.md", tt.meta)

			tasks, diags := NewScanner(root).ScanTasks()
			task, ok := tasks.Get("1")
			if !ok {
				t.Fatalf("task missing, diagnostics = %v", diags)
			}
			if task.BlockedBy == nil || !slices.Equal(task.BlockedBy, tt.want) {
				t.Errorf("BlockedBy = %#v, want %#v", task.BlockedBy, tt.want)
			}
		})
	}
}

func TestScanTasks_OddlyShapedFieldsKeepTheTask(t *testing.T) {
	root := newTestLore(t)
	writeTask(t, root, DirActive, "001_mapby.md", "title: Map by\nhistory:\n  - status: blocked\n    by: {task: 3}\n")
	writeTask(t, root, DirActive, "002_mapadr.md", "title: Map ADR\nrelated_adr: {a: 1}\n")
	writeTask(t, root, DirArchive, "003_liststatus.md", "title: List status\nstatus: [done]\n")
	writeTask(t, root, DirActive, "004_maptitle.md", "title: {text: x}\ntype: [BUG]\n")
	writeTask(t, root, DirActive, "005_after.md", "title: After\nhistory:\n  - status: blocked\n    by: [\"3\"]\n")

	tasks, diags := NewScanner(root).ScanTasks()
	if len(diags) != 0 {
		t.Errorf("unexpected diagnostics: %v", diags)
	}
	if got := tasks.IDs(); !slices.Equal(got, []string{"1", "2", "4", "5", "3"}) {
		t.Fatalf("IDs() = %v, want all five tasks in scan order", got)
	}

	tests := []struct {
		id         string
		status     Status
		title      string
		typ        string
		blockedBy  []string
		relatedADR []string
	}{
		{id: "1", status: StatusActive, title: "Map by", typ: DefaultTaskType, blockedBy: []string{}, relatedADR: []string{}},
		{id: "2", status: StatusActive, title: "Map ADR", typ: DefaultTaskType, blockedBy: []string{}, relatedADR: []string{}},
		{id: "3", status: StatusCompleted, title: "List status", typ: DefaultTaskType, blockedBy: []string{}, relatedADR: []string{}},
		{id: "4", status: StatusActive, title: "Untitled", typ: DefaultTaskType, blockedBy: []string{}, relatedADR: []string{}},
		{id: "5", status: StatusActive, title: "After", typ: DefaultTaskType, blockedBy: []string{"3"}, relatedADR: []string{}},
	}
	for _, tt := range tests {
		task, ok := tasks.Get(tt.id)
		if !ok {
			t.Errorf("task %s dropped", tt.id)
			continue
		}
		if task.Status != tt.status || task.Title != tt.title || task.Type != tt.typ {
			t.Errorf("task %s = %+v", tt.id, task)
		}
		if !slices.Equal(task.BlockedBy, tt.blockedBy) || !slices.Equal(task.RelatedADR, tt.relatedADR) {
			t.Errorf("task %s BlockedBy = %#v, RelatedADR = %#v", tt.id, task.BlockedBy, task.RelatedADR)
		}
	}

	if ready := readyIDs(ReadyTasks(tasks)); !slices.Contains(ready, "5") {
		t.Errorf("ReadyTasks() = %v, want 5 ready once its archived blocker is kept", ready)
	}
}

func TestScanTasks_MetadataIDKeysTheTask(t *testing.T) {
	root := newTestLore(t)
	writeTask(t, root, DirActive, "005_renamed.md", "id: \"9\"\ntitle: Renamed\n")
	writeTask(t, root, DirActive, "006_padded.md", "id: \"006\"\ntitle: Padded\n")

	scanner := NewScanner(root)
	tasks, diags := scanner.ScanTasks()

	if !tasks.Has("9") || tasks.Has("5") {
		t.Errorf("IDs() = %v, want metadata id 9 instead of 5", tasks.IDs())
	}
	if !tasks.Has("006") {
		t.Errorf("IDs() = %v, want literal metadata id 006", tasks.IDs())
	}
	if got := diagKinds(diags); !slices.Equal(got, []DiagnosticKind{WarnIDMismatch}) {
		t.Errorf("diagnostic kinds = %v, want one id-mismatch", got)
	}

	path, err := scanner.FindTask("5")
	if err != nil {
		t.Fatalf("FindTask(5) error = %v", err)
	}
	if filepath.Base(path) != "005_renamed.md" {
		t.Errorf("FindTask(5) = %q", path)
	}
	if _, err := scanner.FindTask("9"); !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("FindTask(9) error = %v, want ErrTaskNotFound", err)
	}
}

func TestScanTasks_LaterDirectoryWins(t *testing.T) {
	root := newTestLore(t)
	writeTask(t, root, DirActive, "003_first.md", "title: First\n")
	writeTask(t, root, DirActive, "004_other.md", "title: Other\n")
	writeTask(t, root, DirBacklog, "003_second.md", "title: Second\n")

	tasks, diags := NewScanner(root).ScanTasks()

	task, _ := tasks.Get("3")
	if task == nil || task.Title != "Second" || task.Status != StatusBacklog {
		t.Errorf("task 3 = %+v, want backlog entry", task)
	}
	if got := tasks.IDs(); !slices.Equal(got, []string{"3", "4"}) {
		t.Errorf("IDs() = %v, want replaced id to keep its position", got)
	}
	if got := diagKinds(diags); !slices.Equal(got, []DiagnosticKind{WarnDuplicateID}) {
		t.Errorf("diagnostic kinds = %v", got)
	}
}

func TestScanTasks_MissingDirectories(t *testing.T) {
	root := filepath.Join(t.TempDir(), "lore")

	tasks, diags := NewScanner(root).ScanTasks()
	if tasks.Len() != 0 || len(diags) != 0 {
		t.Errorf("ScanTasks() = %d tasks, %v", tasks.Len(), diags)
	}
}

func TestScanADRs(t *testing.T) {
	root := newTestLore(t)
	writeDoc(t, root, ADRDirName+"/001_use-go.md", "---\ntitle: Use Go\nstatus: accepted\nrelated_tasks: \"5\"\n---\n")
	writeDoc(t, root, ADRDirName+"/0002_keep-zeros.md", "---\nrelated_tasks: [1, 2]\n---\n# Keep zeros\n")
	writeDoc(t, root, ADRDirName+"/003_override.md", "---\nid: ADR-3\n---\n")
	writeDoc(t, root, ADRDirName+"/_template.md", "---\ntitle: Template\n---\n")
	writeDoc(t, root, ADRDirName+"/004_plain.md", "no metadata\n")
	writeDoc(t, root, ADRDirName+"/005_broken.md", "---\nstatus: [\n---\n")
	writeDoc(t, root, ADRDirName+"/README.txt", "ignored")

	adrs, diags := NewScanner(root).ScanADRs()

	if len(adrs) != 3 {
		t.Fatalf("len(adrs) = %d, want 3: %v", len(adrs), adrs)
	}

	first := adrs["001"]
	if first == nil {
		t.Fatal("ADR 001 missing")
	}
	if first.Title != "Use Go" || first.Status != "accepted" || !slices.Equal(first.RelatedTasks, []string{"5"}) {
		t.Errorf("ADR 001 = %+v", first)
	}
	if first.Path != "lore/2-adrs/001_use-go.md" {
		t.Errorf("Path = %q", first.Path)
	}

	second := adrs["0002"]
	if second == nil {
		t.Fatal("ADR 0002 missing; ADR ids keep leading zeros")
	}
	if second.Title != "Keep zeros" || second.Status != DefaultADRStatus {
		t.Errorf("ADR 0002 = %+v", second)
	}
	if !slices.Equal(second.RelatedTasks, []string{"1", "2"}) {
		t.Errorf("RelatedTasks = %v", second.RelatedTasks)
	}

	if _, ok := adrs["ADR-3"]; !ok {
		t.Error("metadata id should key ADR 003")
	}

	if got := diagKinds(diags); !slices.Equal(got, []DiagnosticKind{SkipNoMetadata, SkipParseError}) {
		t.Errorf("diagnostic kinds = %v", got)
	}
}

func TestScanADRs_MissingDirectory(t *testing.T) {
	root := filepath.Join(t.TempDir(), "lore")
	adrs, diags := NewScanner(root).ScanADRs()
	if adrs == nil || len(adrs) != 0 || len(diags) != 0 {
		t.Errorf("ScanADRs() = %v, %v", adrs, diags)
	}
}

func TestFindTask(t *testing.T) {
	root := newTestLore(t)
	writeTask(t, root, DirActive, "007_login.md", "title: Login\n")
	writeTask(t, root, DirBacklog, "007_shadow.md", "title: Shadow\n")
	if err := os.MkdirAll(filepath.Join(root, TasksDirName, DirActive, "008_folder"), 0o755); err != nil {
		t.Fatal(err)
	}
	writeTask(t, root, DirArchive, "008_done.md", "title: Done\n")
	writeDoc(t, root, TasksDirName+"/blocked/012_dir/README.md", "# no metadata needed\n")
	writeDoc(t, root, TasksDirName+"/blocked/_013_hidden.md", "---\ntitle: x\n---\n")

	scanner := NewScanner(root)
	tests := []struct {
		query string
		want  string
	}{
		{query: "7", want: "lore/1-tasks/active/007_login.md"},
		{query: "007", want: "lore/1-tasks/active/007_login.md"},
		{query: " 7 ", want: "lore/1-tasks/active/007_login.md"},
		{query: "8", want: "lore/1-tasks/archive/008_done.md"},
		{query: "12", want: "lore/1-tasks/blocked/012_dir/README.md"},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			path, err := scanner.FindTask(tt.query)
			if err != nil {
				t.Fatalf("FindTask(%q) error = %v", tt.query, err)
			}
			if got := scanner.rel(path); got != tt.want {
				t.Errorf("FindTask(%q) = %q, want %q", tt.query, got, tt.want)
			}
		})
	}

	for _, query := range []string{"13", "99"} {
		if _, err := scanner.FindTask(query); !errors.Is(err, ErrTaskNotFound) {
			t.Errorf("FindTask(%q) error = %v, want ErrTaskNotFound", query, err)
		}
	}

	_, err := scanner.FindTask("  ")
	if err == nil || errors.Is(err, ErrTaskNotFound) {
		t.Errorf("FindTask(blank) error = %v, want argument error", err)
	}
}

func TestRequire(t *testing.T) {
	root := newTestLore(t)
	scanner := NewScanner(root)

	if err := scanner.Require(TasksDirName, ADRDirName, SessionDirName); err != nil {
		t.Errorf("Require() error = %v", err)
	}

	writeDoc(t, root, "file-not-dir", "x")
	for _, sub := range []string{"missing", "file-not-dir"} {
		if err := scanner.Require(TasksDirName, sub); !errors.Is(err, ErrNotFound) {
			t.Errorf("Require(%q) error = %v, want ErrNotFound", sub, err)
		}
	}

	if err := NewScanner(filepath.Join(root, "nope")).Require(); !errors.Is(err, ErrNotFound) {
		t.Errorf("Require() on missing root error = %v, want ErrNotFound", err)
	}
}
