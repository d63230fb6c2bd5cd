// Package llm is the text-generation gateway: a thin adapter that
// turns an (instruction, payload) pair into parsed structured output.
//
// It owns three concerns:
//   - the Client interface and its Anthropic implementation
//   - the instruction templates and payload builders for each
//     dialogue operation
//   - response decoding (code-fence stripping + strict JSON parsing)
//
// All upstream failures are normalized into the closed error taxonomy
// in errors.go. Parsing failure is reported as malformed_response,
// distinct from transport failure — both carry a recovery hint.
package llm

import "context"

// Client is an opaque text-completion capability: given a system
// instruction and a user payload, it returns free-form text.
//
// Complete may block for multi-second network latency; it honors ctx
// cancellation but performs no retries — the error kind tells the
// caller whether a retry makes sense.
type Client interface {
	Complete(ctx context.Context, system, user string) (string, error)
	Model() string
}
