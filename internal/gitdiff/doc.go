// Package gitdiff collects the per-file review units the pipeline consumes:
// for every changed file, its path, full content, and unified diff.
//
// Change sets come from git subprocess calls — unstaged (working tree vs
// index), staged (index vs HEAD), a specific commit, or a single named
// file. Include/exclude globs, binary files, and oversized files are
// filtered here so the review engine only ever sees reviewable text.
package gitdiff
