// Package providers implements the Gateway interface for each supported LLM
// backend.
//
// Supported backends: Anthropic (Claude), OpenAI (GPT, via the go-openai
// client), Google (Gemini), and Ollama / LM Studio for local models.
//
// A gateway's reply content is typed any: the hosted backends return plain
// text, while OpenAI-compatible proxies may hand back a structured envelope
// object, which the review pipeline's unwrapper normalizes. All backends
// share a retry helper with exponential back-off and rate-limit handling,
// and surface authentication failures as a distinct error kind. Base URLs
// are struct fields so tests can point providers at httptest servers.
//
// Use [New] to obtain a Gateway by provider name and model string.
package providers
