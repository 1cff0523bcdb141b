package review

import (
	"context"
	"crypto/sha256"
	"fmt"
	"sync"
	"time"

	"github.com/RyanBeasley1994/ai-pr-reviewer/internal/cache"
	"github.com/RyanBeasley1994/ai-pr-reviewer/internal/config"
	"github.com/RyanBeasley1994/ai-pr-reviewer/internal/diag"
	"github.com/RyanBeasley1994/ai-pr-reviewer/internal/providers"
)

const (
	toolName    = "ai-pr-reviewer"
	toolVersion = "0.1.0"

	// defaultMaxTokens bounds a single review reply.
	defaultMaxTokens = 8192

	// maxConcurrentFiles bounds the number of per-file pipelines in flight.
	// Pipelines share nothing, so this is purely a rate consideration.
	maxConcurrentFiles = 4
)

// Input is one file under review: its path, full content, and unified diff.
type Input struct {
	Path    string
	Content string
	Diff    string
}

// Options configure a single per-file pipeline invocation.
type Options struct {
	Gateway  providers.Gateway
	Sink     diag.Sink    // optional
	Cache    *cache.Cache // optional
	CacheKey string       // required when Cache is set
}

// Analyze runs the normalization pipeline for one file and returns its
// validated findings. The returned slice is never nil. Every failure signal
// — gateway error or cancellation, empty or unrecognized reply, malformed
// JSON, unexpected shape — resolves to an empty result rather than an error,
// so one bad reply cannot abort the review of other files.
func Analyze(ctx context.Context, in Input, opts Options) []BugReport {
	sink := opts.Sink
	if sink == nil {
		sink = diag.Nop()
	}

	raw, err := fetchReply(ctx, in, opts)
	if err != nil {
		sink.Warnf("%s: gateway: %v", in.Path, err)
		return []BugReport{}
	}

	text, err := UnwrapEnvelope(raw)
	if err != nil {
		sink.Warnf("%s: %v", in.Path, err)
		return []BugReport{}
	}

	reports, err := ParseReply(StripFences(text), sink)
	if err != nil {
		sink.Warnf("%s: %v", in.Path, err)
		return []BugReport{}
	}

	return AttachFilePath(reports, in.Path)
}

// fetchReply returns the raw gateway reply for one file, consulting the
// cache when configured. Only plain-text replies are cached; envelope
// objects always come from a live call.
func fetchReply(ctx context.Context, in Input, opts Options) (any, error) {
	if opts.Cache != nil && opts.CacheKey != "" {
		if reply, ok := opts.Cache.Get(opts.CacheKey); ok {
			return reply, nil
		}
	}

	req := providers.Request{
		SystemPrompt: SystemPrompt(),
		UserPrompt:   BuildUserPrompt(in.Path, in.Content, in.Diff),
		MaxTokens:    defaultMaxTokens,
	}
	resp, err := opts.Gateway.Send(ctx, req)
	if err != nil {
		return nil, err
	}

	if opts.Cache != nil && opts.CacheKey != "" {
		if text, ok := resp.Content.(string); ok {
			if err := opts.Cache.Put(opts.CacheKey, text); err != nil && opts.Sink != nil {
				opts.Sink.Debugf("%s: cache put: %v", in.Path, err)
			}
		}
	}
	return resp.Content, nil
}

// Run reviews all files with bounded concurrency and assembles the per-file
// findings into a Report, preserving file order. The only error it returns
// is provider construction (unknown provider, missing API key); per-file
// failures degrade to empty findings.
func Run(ctx context.Context, files []Input, cfg config.Config, sink diag.Sink) (*Report, error) {
	startTime := time.Now()
	if sink == nil {
		sink = diag.Nop()
	}

	gw, err := providers.New(cfg.Provider, cfg.Model)
	if err != nil {
		return nil, fmt.Errorf("creating provider: %w", err)
	}

	replyCache, err := cache.New(cfg.Cache.Enabled, cfg.Cache.Dir, cfg.Cache.TTLSeconds)
	if err != nil {
		sink.Warnf("cache disabled: %v", err)
		replyCache, _ = cache.New(false, "", 0)
	}

	llmStart := time.Now()
	perFile := make([][]BugReport, len(files))
	sem := make(chan struct{}, maxConcurrentFiles)
	var wg sync.WaitGroup
	for i, in := range files {
		wg.Add(1)
		go func(i int, in Input) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			perFile[i] = Analyze(ctx, in, Options{
				Gateway:  gw,
				Sink:     sink,
				Cache:    replyCache,
				CacheKey: cache.BuildKey(cfg.Provider, cfg.Model, in.Path, in.Diff),
			})
		}(i, in)
	}
	wg.Wait()
	llmMs := time.Since(llmStart).Milliseconds()

	findings := make([]BugReport, 0)
	paths := make([]string, 0, len(files))
	for i, in := range files {
		paths = append(paths, in.Path)
		findings = append(findings, perFile[i]...)
	}
	if cfg.MaxFindings > 0 && len(findings) > cfg.MaxFindings {
		findings = findings[:cfg.MaxFindings]
	}

	return &Report{
		Tool:     toolName,
		Version:  toolVersion,
		RunID:    generateRunID(),
		Files:    paths,
		Summary:  ComputeSummary(findings),
		Findings: findings,
		Timing: Timing{
			LLMMs:   llmMs,
			TotalMs: time.Since(startTime).Milliseconds(),
		},
	}, nil
}

func generateRunID() string {
	h := sha256.Sum256([]byte(fmt.Sprintf("%d", time.Now().UnixNano())))
	return fmt.Sprintf("%x", h[:16])
}
