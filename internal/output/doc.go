// Package output formats review reports for display or machine consumption.
//
// Four formats are supported:
//   - text     — human-readable terminal output (default)
//   - json     — full structured JSON report
//   - markdown — PR-comment-friendly with a findings table per file
//   - sarif    — SARIF v2.1.0 for upload to code-scanning backends
//
// Use [GetWriter] to obtain a [Writer] for a format string, or
// [WriteReport] to handle destination selection as well.
package output
