// Package lore reads a lore tree of task and ADR documents and derives the
// task dependency graph.
//
// # Layout
//
//	lore/1-tasks/{active,blocked,archive,backlog}/<NNN>_<slug>[.md | /README.md]
//	lore/2-adrs/<NNN>_<slug>.md
//
// Tasks filed under archive, blocked or backlog take the status of their
// directory. Only tasks under active read the status field of their own
// metadata.
//
// # Scanning
//
// A Scanner is constructed with the lore root and rescans the tree on every
// call. Scans are lenient: a document that cannot be read is skipped and
// reported as a Diagnostic, and the scan continues.
//
//	scanner := lore.NewScanner("/path/to/project/lore")
//	snap := scanner.Snapshot(true)
//	for _, task := range snap.Ready {
//	    fmt.Println(task.ID, snap.Blocks.Count(task.ID))
//	}
//
// # Ids
//
// Task ids come from the numeric prefix of the entry name with leading
// zeros stripped, so 007_login.md is task "7". A metadata id field takes
// precedence as the key of the indexed task, while FindTask always matches
// on the entry name. When the two disagree the scan records an id-mismatch
// warning.
package lore
