// Package cache provides a file-based cache for raw gateway replies.
//
// Entries are keyed by a SHA-256 hash of provider, model, file path, and
// redacted diff content, so a re-run over unchanged files skips the LLM call
// entirely. Each entry stores the reply text with a creation timestamp and
// TTL; expired entries are skipped on read. Only plain-text replies are
// cached — envelope objects are not.
//
// The default cache directory is $XDG_CACHE_HOME/ai-pr-reviewer (or the
// OS-appropriate equivalent).
package cache
