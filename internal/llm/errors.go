package llm

import (
	"errors"
	"fmt"

	anthropic "github.com/anthropics/anthropic-sdk-go"
)

// Kind is the closed set of gateway failure modes. Every upstream
// failure is normalized into exactly one of these so callers can
// branch on recovery strategy instead of inspecting SDK internals.
type Kind string

const (
	// KindAuthenticationFailure means credentials are invalid or missing.
	KindAuthenticationFailure Kind = "authentication_failure"

	// KindRateLimited means the upstream throttled the request. The
	// caller should back off and retry — no retry happens here.
	KindRateLimited Kind = "rate_limited"

	// KindServiceUnavailable means an upstream internal error (5xx).
	KindServiceUnavailable Kind = "service_unavailable"

	// KindRequestFailed covers any other transport or protocol failure.
	KindRequestFailed Kind = "request_failed"

	// KindMalformedResponse means transport succeeded but the returned
	// text did not parse into the expected structure.
	KindMalformedResponse Kind = "malformed_response"
)

// Error is a gateway failure with a recovery hint. It never corrupts
// session state — all kinds are recoverable by retry or re-invocation.
type Error struct {
	Kind    Kind
	Message string
	Hint    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// recovery hints surfaced to the caller alongside the error kind.
const (
	hintAuth        = "The API key may be invalid or expired. Check ANTHROPIC_API_KEY and your account at console.anthropic.com."
	hintRateLimited = "Rate limit exceeded. Wait a few moments and try again."
	hintUnavailable = "The upstream API is temporarily unavailable. Wait a few moments and retry the operation."
	hintRequest     = "The API call failed. Retry the operation; session progress is preserved."
	hintMalformed   = "The model returned text that could not be parsed. Retry the operation."
)

// classify normalizes an upstream SDK error into the gateway taxonomy
// by HTTP status code, the way the rest of the codebase expects to
// branch on it.
func classify(err error) *Error {
	var gw *Error
	if errors.As(err, &gw) {
		return gw
	}

	var apiErr *anthropic.Error
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.StatusCode == 401 || apiErr.StatusCode == 403:
			return &Error{Kind: KindAuthenticationFailure, Message: err.Error(), Hint: hintAuth}
		case apiErr.StatusCode == 429:
			return &Error{Kind: KindRateLimited, Message: err.Error(), Hint: hintRateLimited}
		case apiErr.StatusCode >= 500:
			return &Error{Kind: KindServiceUnavailable, Message: err.Error(), Hint: hintUnavailable}
		}
	}

	// Network errors and everything else carry the upstream message.
	return &Error{Kind: KindRequestFailed, Message: err.Error(), Hint: hintRequest}
}

// malformed wraps a parse failure in a MalformedResponse error,
// distinct from transport failures.
func malformed(err error) *Error {
	return &Error{Kind: KindMalformedResponse, Message: err.Error(), Hint: hintMalformed}
}

// KindOf extracts the failure kind from an error, defaulting to
// request_failed for errors that did not originate in the gateway.
func KindOf(err error) Kind {
	var gw *Error
	if errors.As(err, &gw) {
		return gw.Kind
	}
	return KindRequestFailed
}

// HintOf extracts the recovery hint from an error.
func HintOf(err error) string {
	var gw *Error
	if errors.As(err, &gw) {
		return gw.Hint
	}
	return hintRequest
}
