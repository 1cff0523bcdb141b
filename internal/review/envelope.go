package review

import (
	"errors"
	"strings"
)

var (
	// ErrEmptyReply signals a reply with no usable text content.
	ErrEmptyReply = errors.New("empty reply")
	// ErrUnrecognizedEnvelope signals an object reply that matches none of
	// the known nesting shapes.
	ErrUnrecognizedEnvelope = errors.New("unrecognized reply envelope")
)

// envelopeProbes are tried in priority order against object replies. Each is
// a pure shape check; the first present, non-empty match wins.
var envelopeProbes = []func(map[string]any) (string, bool){
	probeMessageContent,
	probeText,
	probeChatChoices,
}

// UnwrapEnvelope extracts the literal reply text from whatever the gateway
// returned. Plain strings pass through; object replies are probed for the
// known nesting shapes. The input is never mutated.
func UnwrapEnvelope(raw any) (string, error) {
	switch v := raw.(type) {
	case string:
		return requireNonEmpty(v)
	case map[string]any:
		for _, probe := range envelopeProbes {
			if s, ok := probe(v); ok {
				return requireNonEmpty(s)
			}
		}
		return "", ErrUnrecognizedEnvelope
	case nil:
		return "", ErrEmptyReply
	default:
		return "", ErrUnrecognizedEnvelope
	}
}

func requireNonEmpty(s string) (string, error) {
	if strings.TrimSpace(s) == "" {
		return "", ErrEmptyReply
	}
	return s, nil
}

// probeMessageContent matches {"message": {"content": "..."}}.
func probeMessageContent(m map[string]any) (string, bool) {
	msg, ok := m["message"].(map[string]any)
	if !ok {
		return "", false
	}
	return stringField(msg, "content")
}

// probeText matches {"text": "..."}.
func probeText(m map[string]any) (string, bool) {
	return stringField(m, "text")
}

// probeChatChoices matches a chat-completion style envelope:
// {"detail": {"choices": [{"message": {"content": "..."}}]}}.
func probeChatChoices(m map[string]any) (string, bool) {
	detail, ok := m["detail"].(map[string]any)
	if !ok {
		return "", false
	}
	choices, ok := detail["choices"].([]any)
	if !ok || len(choices) == 0 {
		return "", false
	}
	first, ok := choices[0].(map[string]any)
	if !ok {
		return "", false
	}
	msg, ok := first["message"].(map[string]any)
	if !ok {
		return "", false
	}
	return stringField(msg, "content")
}

func stringField(m map[string]any, key string) (string, bool) {
	s, ok := m[key].(string)
	if !ok || strings.TrimSpace(s) == "" {
		return "", false
	}
	return s, true
}
