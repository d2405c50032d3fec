package lore

import (
	"fmt"
	"strings"
)

// Severity is the outcome of one check.
type Severity string

// Check outcomes.
const (
	SeverityPass Severity = "pass"
	SeverityWarn Severity = "warn"
	SeverityFail Severity = "fail"
)

// Finding is a single check result.
type Finding struct {
	Name     string   `json:"name"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
	Path     string   `json:"path,omitempty"`
	Hint     string   `json:"hint,omitempty"`
}

// Report groups check findings. Nothing is written or rejected by a check.
type Report struct {
	Layout    []Finding     `json:"layout"`
	Documents []Finding     `json:"documents"`
	Graph     []Finding     `json:"graph"`
	Stats     ScanStats     `json:"stats"`
	Summary   ReportSummary `json:"summary"`
}

// ReportSummary counts findings by severity.
type ReportSummary struct {
	Passed   int `json:"passed"`
	Warnings int `json:"warnings"`
	Failed   int `json:"failed"`
}

// Failed reports whether any finding failed.
func (r *Report) Failed() bool {
	return r.Summary.Failed > 0
}

// All returns every finding in section order.
func (r *Report) All() []Finding {
	all := make([]Finding, 0, len(r.Layout)+len(r.Documents)+len(r.Graph))
	all = append(all, r.Layout...)
	all = append(all, r.Documents...)
	return append(all, r.Graph...)
}

// Check inspects the tree behind s: the directory layout, every document
// the scanners skipped or flagged, and the dependency graph.
func Check(s *Scanner) *Report {
	report := &Report{Layout: checkLayout(s)}

	if rootMissing(report.Layout) {
		report.tally()
		return report
	}

	snap := s.Snapshot(true)
	report.Stats = Stats(snap.Tasks.Len()+len(snap.ADRs), snap.Diagnostics)
	report.Documents = checkDocuments(snap)
	report.Graph = checkGraph(snap)
	report.tally()
	return report
}

var layoutDirs = []struct {
	name string
	hint string
}{
	{TasksDirName, "create lore/" + TasksDirName + " with active, blocked, archive and backlog subdirectories"},
	{ADRDirName, "create lore/" + ADRDirName + "; generate-index needs it for the full index"},
	{SessionDirName, "create lore/" + SessionDirName + "; generate-index writes " + NextFileName + " there"},
}

func checkLayout(s *Scanner) []Finding {
	if err := s.Require(); err != nil {
		return []Finding{{
			Name:     "lore root",
			Severity: SeverityFail,
			Message:  err.Error(),
			Hint:     "run from the project directory or pass --project",
		}}
	}

	findings := []Finding{{Name: "lore root", Severity: SeverityPass, Message: s.Root()}}
	for _, dir := range layoutDirs {
		if err := s.Require(dir.name); err != nil {
			findings = append(findings, Finding{
				Name:     dir.name,
				Severity: SeverityFail,
				Message:  "missing",
				Hint:     dir.hint,
			})
			continue
		}
		findings = append(findings, Finding{Name: dir.name, Severity: SeverityPass, Message: "present"})
	}
	return findings
}

func rootMissing(layout []Finding) bool {
	return len(layout) == 1 && layout[0].Severity == SeverityFail
}

func checkDocuments(snap *Snapshot) []Finding {
	findings := []Finding{{
		Name:     "documents",
		Severity: SeverityPass,
		Message:  fmt.Sprintf("%d tasks, %d ADRs indexed", snap.Tasks.Len(), len(snap.ADRs)),
	}}
	for _, diag := range snap.Diagnostics {
		findings = append(findings, Finding{
			Name:     string(diag.Kind),
			Severity: diagnosticSeverity(diag.Kind),
			Message:  diag.Message,
			Path:     diag.Path,
		})
	}
	return findings
}

// diagnosticSeverity fails documents that carry content the index cannot
// read; layout oddities and id conflicts only warn.
func diagnosticSeverity(kind DiagnosticKind) Severity {
	switch kind {
	case SkipReadError, SkipParseError, SkipNoMetadata:
		return SeverityFail
	default:
		return SeverityWarn
	}
}

func checkGraph(snap *Snapshot) []Finding {
	var findings []Finding

	unknown := UnknownBlockers(snap.Tasks)
	for _, ref := range unknown {
		finding := Finding{
			Name:     "unknown-blocker",
			Severity: SeverityWarn,
			Message:  fmt.Sprintf("task %s is blocked by %s, which is not a known task", ref.TaskID, ref.BlockerID),
			Hint:     "the task is never ready until the reference is fixed",
		}
		if task, ok := snap.Tasks.Get(ref.TaskID); ok {
			finding.Path = task.Path
		}
		findings = append(findings, finding)
	}
	if len(unknown) == 0 {
		findings = append(findings, Finding{Name: "unknown-blocker", Severity: SeverityPass, Message: "all blockers are known tasks"})
	}

	if cycle := DetectCycle(snap.Blocks); cycle != nil {
		findings = append(findings, Finding{
			Name:     "dependency-cycle",
			Severity: SeverityFail,
			Message:  strings.Join(cycle, " -> "),
			Hint:     "tasks in a cycle can never become ready",
		})
	} else {
		findings = append(findings, Finding{Name: "dependency-cycle", Severity: SeverityPass, Message: "no cycles"})
	}

	return findings
}

func (r *Report) tally() {
	r.Summary = ReportSummary{}
	for _, f := range r.All() {
		switch f.Severity {
		case SeverityPass:
			r.Summary.Passed++
		case SeverityWarn:
			r.Summary.Warnings++
		case SeverityFail:
			r.Summary.Failed++
		}
	}
}
