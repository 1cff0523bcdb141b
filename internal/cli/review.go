package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/RyanBeasley1994/ai-pr-reviewer/internal/config"
	"github.com/RyanBeasley1994/ai-pr-reviewer/internal/diag"
	"github.com/RyanBeasley1994/ai-pr-reviewer/internal/gitdiff"
	"github.com/RyanBeasley1994/ai-pr-reviewer/internal/output"
	"github.com/RyanBeasley1994/ai-pr-reviewer/internal/providers"
	"github.com/RyanBeasley1994/ai-pr-reviewer/internal/redact"
	"github.com/RyanBeasley1994/ai-pr-reviewer/internal/review"
	"github.com/spf13/cobra"
)

// Shared review flags
var (
	flagPaths        string
	flagExclude      string
	flagProvider     string
	flagModel        string
	flagFormat       string
	flagOut          string
	flagFailOn       string
	flagMaxFindings  int
	flagMaxFileBytes int
	flagDebug        bool
	flagNoRedact     bool
)

func addReviewFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagPaths, "paths", "", "Include file path globs (comma-separated)")
	cmd.Flags().StringVar(&flagExclude, "exclude", "", "Exclude file path globs (comma-separated)")
	cmd.Flags().StringVar(&flagProvider, "provider", "", "LLM provider (anthropic, openai, gemini, ollama)")
	cmd.Flags().StringVar(&flagModel, "model", "", "Model name")
	cmd.Flags().StringVar(&flagFormat, "format", "", "Output format (text, json, markdown, sarif)")
	cmd.Flags().StringVar(&flagOut, "out", "", "Output file path (default: stdout)")
	cmd.Flags().StringVar(&flagFailOn, "fail-on", "", "Fail on severity threshold (none, low, medium, high, critical)")
	cmd.Flags().IntVar(&flagMaxFindings, "max-findings", 0, "Maximum number of findings")
	cmd.Flags().IntVar(&flagMaxFileBytes, "max-file-bytes", 0, "Maximum file size in bytes")
	cmd.Flags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")
	cmd.Flags().BoolVar(&flagNoRedact, "no-redact", false, "Disable secret redaction (use with caution)")
}

func buildOverrides() map[string]string {
	m := make(map[string]string)
	if flagProvider != "" {
		m["provider"] = flagProvider
	}
	if flagModel != "" {
		m["model"] = flagModel
	}
	if flagFormat != "" {
		m["format"] = flagFormat
	}
	if flagFailOn != "" {
		m["failOn"] = flagFailOn
	}
	if flagMaxFindings > 0 {
		m["maxFindings"] = fmt.Sprintf("%d", flagMaxFindings)
	}
	if flagMaxFileBytes > 0 {
		m["maxFileBytes"] = fmt.Sprintf("%d", flagMaxFileBytes)
	}
	if flagDebug {
		m["debug"] = "true"
	}
	return m
}

func buildGitOpts(cfg config.Config) gitdiff.Options {
	opts := gitdiff.Options{
		Include:      cfg.Include,
		Exclude:      cfg.Exclude,
		MaxFileBytes: cfg.MaxFileBytes,
	}
	if flagPaths != "" {
		opts.Include = splitComma(flagPaths)
	}
	if flagExclude != "" {
		opts.Exclude = append(opts.Exclude, splitComma(flagExclude)...)
	}
	return opts
}

func splitComma(s string) []string {
	parts := strings.Split(s, ",")
	var result []string
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}

// runReview drives one review: redaction, the per-file pipelines, output,
// and the fail-on gate. gitMs is how long change gathering took.
func runReview(changes []gitdiff.FileChange, cfg config.Config, mode string, gitMs int64) {
	if flagNoRedact {
		cfg.Privacy.RedactSecrets = false
		fmt.Fprintln(os.Stderr, "WARNING: secret redaction is disabled")
	}

	sink, err := diag.New(cfg.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		exitCode = ExitRuntimeError
		return
	}

	files := make([]review.Input, 0, len(changes))
	for _, ch := range changes {
		content, diff := ch.Content, ch.Diff
		if cfg.Privacy.RedactSecrets {
			content = redact.Content(content, ch.Path, cfg.Privacy.RedactPaths)
			diff = redact.Secrets(diff)
		}
		files = append(files, review.Input{Path: ch.Path, Content: content, Diff: diff})
	}

	ctx := context.Background()
	report, err := review.Run(ctx, files, cfg, sink)
	if err != nil {
		if providers.IsAuthError(err) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitCode = ExitAuthError
			return
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		exitCode = ExitRuntimeError
		return
	}
	report.Mode = mode
	report.Timing.GitMs = gitMs
	report.Timing.TotalMs += gitMs

	if err := output.WriteReport(report, cfg.Format, flagOut); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
		exitCode = ExitRuntimeError
		return
	}

	// Check fail-on threshold
	if cfg.FailOn != "none" && cfg.FailOn != "" {
		for _, f := range report.Findings {
			if review.MeetsThreshold(f.Severity, cfg.FailOn) {
				exitCode = ExitFindings
				return
			}
		}
	}
}

// gather wraps a change-set collector with timing and uniform error
// handling.
func gather(collect func() ([]gitdiff.FileChange, error)) ([]gitdiff.FileChange, int64, bool) {
	start := time.Now()
	changes, err := collect()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		exitCode = ExitRuntimeError
		return nil, 0, false
	}
	return changes, time.Since(start).Milliseconds(), true
}

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Review code changes",
	Long:  "Review code changes using an LLM provider. Use subcommands to specify what to review.",
}

var reviewUnstagedCmd = &cobra.Command{
	Use:   "unstaged",
	Short: "Review unstaged changes (working tree vs index)",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(buildOverrides())
		if err != nil {
			return err
		}
		changes, gitMs, ok := gather(func() ([]gitdiff.FileChange, error) {
			return gitdiff.Unstaged(buildGitOpts(cfg))
		})
		if !ok {
			return nil
		}
		runReview(changes, cfg, "unstaged", gitMs)
		return nil
	},
}

var reviewStagedCmd = &cobra.Command{
	Use:   "staged",
	Short: "Review staged changes (index vs HEAD)",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(buildOverrides())
		if err != nil {
			return err
		}
		changes, gitMs, ok := gather(func() ([]gitdiff.FileChange, error) {
			return gitdiff.Staged(buildGitOpts(cfg))
		})
		if !ok {
			return nil
		}
		runReview(changes, cfg, "staged", gitMs)
		return nil
	},
}

var reviewCommitCmd = &cobra.Command{
	Use:   "commit <sha>",
	Short: "Review a specific commit",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(buildOverrides())
		if err != nil {
			return err
		}
		changes, gitMs, ok := gather(func() ([]gitdiff.FileChange, error) {
			return gitdiff.Commit(args[0], buildGitOpts(cfg))
		})
		if !ok {
			return nil
		}
		runReview(changes, cfg, "commit", gitMs)
		return nil
	},
}

var reviewFileCmd = &cobra.Command{
	Use:   "file <path>",
	Short: "Review a single file from the working tree",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(buildOverrides())
		if err != nil {
			return err
		}
		changes, gitMs, ok := gather(func() ([]gitdiff.FileChange, error) {
			return gitdiff.Single(args[0], buildGitOpts(cfg))
		})
		if !ok {
			return nil
		}
		runReview(changes, cfg, "file", gitMs)
		return nil
	},
}

func init() {
	reviewCmd.AddCommand(reviewUnstagedCmd)
	reviewCmd.AddCommand(reviewStagedCmd)
	reviewCmd.AddCommand(reviewCommitCmd)
	reviewCmd.AddCommand(reviewFileCmd)

	for _, cmd := range []*cobra.Command{
		reviewUnstagedCmd,
		reviewStagedCmd,
		reviewCommitCmd,
		reviewFileCmd,
	} {
		addReviewFlags(cmd)
	}
}
