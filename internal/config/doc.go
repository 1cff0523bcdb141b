// Package config loads and merges ai-pr-reviewer configuration from
// multiple sources.
//
// Precedence (highest to lowest):
//  1. CLI flags
//  2. Environment variables (AIPR_PROVIDER, AIPR_MODEL, AIPR_FAIL_ON, etc.)
//  3. Config file ($XDG_CONFIG_HOME/ai-pr-reviewer/config.yaml)
//  4. Built-in defaults
//
// Use [Load] to obtain a merged [Config]. The Debug field is threaded
// explicitly into whatever needs it; nothing in this package holds process
// state.
package config
