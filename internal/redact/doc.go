// Package redact removes secrets from file content and diffs before they
// are sent to any LLM backend.
//
// Detection uses regex heuristics over common secret shapes: API keys and
// tokens in assignments, AWS credentials, bearer tokens, JWTs, private key
// blocks, and provider-specific token prefixes. Files whose paths match
// configured glob patterns have their entire content replaced rather than
// being scanned.
package redact
