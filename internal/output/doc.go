// Package output formats command results for people and for agents.
//
// Every lore command writes through a Printer, which switches between
// styled terminal output and JSON (--json):
//
//	printer := output.NewPrinter(cmd.OutOrStdout(), jsonFlag, output.IsTTY(cmd.OutOrStdout()))
//	printer.Success(map[string]any{"message": "Index regenerated"})
//	printer.Table([]string{"ID", "Title"}, rows)
//
// In JSON mode errors are written as {"error": "...", "code": N}.
//
// # Exit Codes
//
//	output.ExitSuccess     // 0
//	output.ExitUserError   // 1: bad arguments, missing lore directories, task not found
//	output.ExitSystemError // 2: I/O failures
//
// Commands return *ExitError values built with NewUserError,
// NewUserErrorWithCause, NewSystemError or NewSystemErrorWithCause; the
// CLI maps them to the process exit code with GetExitCode.
package output
