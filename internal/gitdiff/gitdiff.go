package gitdiff

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// FileChange is one changed file: the input triple for a per-file review.
type FileChange struct {
	Path    string
	Content string
	Diff    string
}

// Options controls how change sets are gathered.
type Options struct {
	Include      []string
	Exclude      []string
	MaxFileBytes int
}

// Unstaged returns the changed files of working tree vs index.
func Unstaged(opts Options) ([]FileChange, error) {
	paths, err := changedPaths("diff", "--name-only")
	if err != nil {
		return nil, fmt.Errorf("git diff: %w", err)
	}
	return collect(paths, opts,
		func(path string) (string, error) { return worktreeContent(path) },
		func(path string) (string, error) { return gitOutput("diff", "--", path) },
	)
}

// Staged returns the changed files of index vs HEAD.
func Staged(opts Options) ([]FileChange, error) {
	paths, err := changedPaths("diff", "--cached", "--name-only")
	if err != nil {
		return nil, fmt.Errorf("git diff --cached: %w", err)
	}
	return collect(paths, opts,
		func(path string) (string, error) { return gitOutput("show", ":"+path) },
		func(path string) (string, error) { return gitOutput("diff", "--cached", "--", path) },
	)
}

// Commit returns the changed files of a specific commit vs its parent.
func Commit(sha string, opts Options) ([]FileChange, error) {
	paths, err := changedPaths("diff", "--name-only", sha+"~1", sha)
	if err != nil {
		// Possibly the initial commit.
		paths, err = changedPaths("show", "--format=", "--name-only", sha)
		if err != nil {
			return nil, fmt.Errorf("git show %s: %w", sha, err)
		}
		return collect(paths, opts,
			func(path string) (string, error) { return gitOutput("show", sha+":"+path) },
			func(path string) (string, error) { return gitOutput("show", "--format=", sha, "--", path) },
		)
	}
	return collect(paths, opts,
		func(path string) (string, error) { return gitOutput("show", sha+":"+path) },
		func(path string) (string, error) { return gitOutput("diff", sha+"~1", sha, "--", path) },
	)
}

// Single returns one named file as a change set, diffed against HEAD. A file
// unknown to HEAD is presented as a synthetic new-file diff.
func Single(path string, opts Options) ([]FileChange, error) {
	content, err := worktreeContent(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	diff, err := gitOutput("diff", "HEAD", "--", path)
	if err != nil || strings.TrimSpace(diff) == "" {
		diff = syntheticNewFileDiff(path, content)
	}

	return collect([]string{path}, opts,
		func(string) (string, error) { return content, nil },
		func(string) (string, error) { return diff, nil },
	)
}

// collect filters paths and resolves content and diff for each survivor.
// Unreadable, binary, and oversized files are skipped, as are files with an
// empty diff (mode-only changes).
func collect(paths []string, opts Options, content, diff func(path string) (string, error)) ([]FileChange, error) {
	var changes []FileChange
	for _, path := range paths {
		if len(opts.Include) > 0 && !MatchesAny(path, opts.Include) {
			continue
		}
		if MatchesAny(path, opts.Exclude) {
			continue
		}

		body, err := content(path)
		if err != nil {
			continue
		}
		if opts.MaxFileBytes > 0 && len(body) > opts.MaxFileBytes {
			continue
		}
		if isBinary(body) {
			continue
		}

		d, err := diff(path)
		if err != nil || strings.TrimSpace(d) == "" {
			continue
		}

		changes = append(changes, FileChange{Path: path, Content: body, Diff: d})
	}
	return changes, nil
}

func changedPaths(args ...string) ([]string, error) {
	out, err := gitOutput(args...)
	if err != nil {
		return nil, err
	}
	var paths []string
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			paths = append(paths, line)
		}
	}
	return paths, nil
}

func worktreeContent(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func syntheticNewFileDiff(path, content string) string {
	lines := strings.Split(content, "\n")
	var b strings.Builder
	fmt.Fprintf(&b, "diff --git a/%s b/%s\n", path, path)
	fmt.Fprintf(&b, "new file mode 100644\n")
	fmt.Fprintf(&b, "--- /dev/null\n")
	fmt.Fprintf(&b, "+++ b/%s\n", path)
	fmt.Fprintf(&b, "@@ -0,0 +1,%d @@\n", len(lines))
	for _, line := range lines {
		fmt.Fprintf(&b, "+%s\n", line)
	}
	return b.String()
}

// isBinary treats any content with a NUL byte as binary.
func isBinary(content string) bool {
	return strings.ContainsRune(content, '\x00')
}

// MatchesAny returns true if the path matches any of the given glob
// patterns.
func MatchesAny(path string, patterns []string) bool {
	for _, pattern := range patterns {
		matched, err := filepath.Match(pattern, path)
		if err == nil && matched {
			return true
		}
		clean := strings.TrimPrefix(pattern, "**/")
		if clean != pattern {
			matched, err = filepath.Match(clean, filepath.Base(path))
			if err == nil && matched {
				return true
			}
			matched, err = filepath.Match(clean, path)
			if err == nil && matched {
				return true
			}
		}
	}
	return false
}

func gitOutput(args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	out, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return string(out), fmt.Errorf("%s: %s", err, string(exitErr.Stderr))
		}
		return "", err
	}
	return string(out), nil
}
