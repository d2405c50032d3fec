package lore

import "fmt"

// DiagnosticKind classifies a per-document scan outcome.
type DiagnosticKind string

// Skip reasons. A skipped document contributes nothing to the scan.
const (
	SkipNoDocument  DiagnosticKind = "no-document"
	SkipInvalidID   DiagnosticKind = "invalid-id"
	SkipReadError   DiagnosticKind = "read-error"
	SkipParseError  DiagnosticKind = "parse-error"
	SkipNoMetadata  DiagnosticKind = "no-metadata"
	WarnIDMismatch  DiagnosticKind = "id-mismatch"
	WarnDuplicateID DiagnosticKind = "duplicate-id"
)

// Skipped reports whether the kind means the document was left out.
func (k DiagnosticKind) Skipped() bool {
	switch k {
	case SkipNoDocument, SkipInvalidID, SkipReadError, SkipParseError, SkipNoMetadata:
		return true
	default:
		return false
	}
}

// Diagnostic records something the scanner noticed about one entry.
type Diagnostic struct {
	Path    string         `json:"path"`
	Kind    DiagnosticKind `json:"kind"`
	Message string         `json:"message"`
}

// String formats the diagnostic for logs.
func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s (%s)", d.Path, d.Message, d.Kind)
}

// ScanStats counts scanned entries the way storage listings do.
type ScanStats struct {
	Total       int `json:"total"`
	Parsed      int `json:"parsed"`
	Skipped     int `json:"skipped"`
	NoMetadata  int `json:"no_metadata"`
	ParseErrors int `json:"parse_errors"`
}

// Stats summarizes a diagnostics list against the number of parsed documents.
func Stats(parsed int, diags []Diagnostic) ScanStats {
	stats := ScanStats{Parsed: parsed}
	for _, diag := range diags {
		if !diag.Kind.Skipped() {
			continue
		}
		stats.Skipped++
		switch diag.Kind {
		case SkipNoMetadata:
			stats.NoMetadata++
		case SkipParseError, SkipReadError:
			stats.ParseErrors++
		}
	}
	stats.Total = stats.Parsed + stats.Skipped
	return stats
}
