// Package cli wires together the Cobra command tree for the ai-pr-reviewer
// binary.
//
// It defines the root command and all subcommands (review, config, cache,
// version), binds flags, reads configuration, gathers git change sets,
// invokes the review engine, and returns deterministic exit codes for CI
// gating.
package cli
