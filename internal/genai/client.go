// Package genai wraps the hosted generative-language service behind a small
// client interface. The service is treated as opaque: a request goes out, a
// finite, non-restartable sequence of text fragments comes back, or the call
// fails with one of the sentinel errors in this package.
package genai

import "context"

// Turn is one role-tagged entry of the conversation history replayed to the
// service. Role is one of "user" or "model".
type Turn struct {
	Role string
	Text string
}

// StreamRequest describes one generation call.
type StreamRequest struct {
	SystemInstruction string
	History           []Turn
	Prompt            string
	Temperature       float64
	MaxOutputTokens   int
}

// Client streams text fragments from the generation service. onFragment is
// invoked once per received fragment, in order, on the calling goroutine.
// Stream returns after the final fragment or on the first error; it never
// retries.
type Client interface {
	Stream(ctx context.Context, req StreamRequest, onFragment func(text string)) error
	Close() error
}
