// Ai-pr-reviewer reviews changed files with an LLM backend and reports
// validated bug findings.
//
// Each changed file is sent to the configured provider along with its diff
// and full content. The model's reply is normalized and validated before
// anything reaches the output: fenced or enveloped JSON is unwrapped, and
// malformed replies degrade to "no findings" instead of aborting the run.
//
// Usage:
//
//	ai-pr-reviewer review unstaged        # review working tree changes
//	ai-pr-reviewer review staged          # review staged changes
//	ai-pr-reviewer review commit <sha>    # review a specific commit
//	ai-pr-reviewer review file <path>     # review a single file vs HEAD
//
// See https://github.com/RyanBeasley1994/ai-pr-reviewer for full documentation.
package main
