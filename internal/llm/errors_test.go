package llm

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"testing"

	anthropic "github.com/anthropics/anthropic-sdk-go"
)

// apiError builds an SDK error the way the transport layer would.
// Error() formats from both the request and the response, so both
// must be populated.
func apiError(status int) error {
	return &anthropic.Error{
		StatusCode: status,
		Request: &http.Request{
			Method: "POST",
			URL:    &url.URL{Scheme: "https", Host: "api.anthropic.com", Path: "/v1/messages"},
		},
		Response: &http.Response{
			StatusCode: status,
			Status:     http.StatusText(status),
		},
	}
}

// --- classify ---

func TestClassify_Unauthorized(t *testing.T) {
	if got := classify(apiError(401)); got.Kind != KindAuthenticationFailure {
		t.Errorf("classify(401).Kind = %s, want %s", got.Kind, KindAuthenticationFailure)
	}
}

func TestClassify_Forbidden(t *testing.T) {
	if got := classify(apiError(403)); got.Kind != KindAuthenticationFailure {
		t.Errorf("classify(403).Kind = %s, want %s", got.Kind, KindAuthenticationFailure)
	}
}

func TestClassify_RateLimited(t *testing.T) {
	if got := classify(apiError(429)); got.Kind != KindRateLimited {
		t.Errorf("classify(429).Kind = %s, want %s", got.Kind, KindRateLimited)
	}
}

func TestClassify_ServerErrors(t *testing.T) {
	for _, status := range []int{500, 502, 503, 529} {
		if got := classify(apiError(status)); got.Kind != KindServiceUnavailable {
			t.Errorf("classify(%d).Kind = %s, want %s", status, got.Kind, KindServiceUnavailable)
		}
	}
}

func TestClassify_OtherStatusFallsThrough(t *testing.T) {
	if got := classify(apiError(400)); got.Kind != KindRequestFailed {
		t.Errorf("classify(400).Kind = %s, want %s", got.Kind, KindRequestFailed)
	}
}

func TestClassify_NetworkError(t *testing.T) {
	got := classify(errors.New("dial tcp: connection refused"))
	if got.Kind != KindRequestFailed {
		t.Errorf("Kind = %s, want %s", got.Kind, KindRequestFailed)
	}
	if got.Message != "dial tcp: connection refused" {
		t.Errorf("Message = %q, want upstream message preserved", got.Message)
	}
}

func TestClassify_AlreadyClassifiedPassesThrough(t *testing.T) {
	orig := &Error{Kind: KindMalformedResponse, Message: "bad json", Hint: hintMalformed}
	if got := classify(fmt.Errorf("complete: %w", orig)); got != orig {
		t.Errorf("classify re-wrapped an already classified error: %+v", got)
	}
}

// --- KindOf / HintOf ---

func TestKindOf_WrappedGatewayError(t *testing.T) {
	err := fmt.Errorf("submitting answers: %w", &Error{Kind: KindRateLimited, Hint: hintRateLimited})
	if got := KindOf(err); got != KindRateLimited {
		t.Errorf("KindOf = %s, want %s", got, KindRateLimited)
	}
	if got := HintOf(err); got != hintRateLimited {
		t.Errorf("HintOf = %q, want rate-limit hint", got)
	}
}

func TestKindOf_ForeignErrorDefaults(t *testing.T) {
	if got := KindOf(errors.New("boom")); got != KindRequestFailed {
		t.Errorf("KindOf(foreign) = %s, want %s", got, KindRequestFailed)
	}
	if got := HintOf(errors.New("boom")); got != hintRequest {
		t.Errorf("HintOf(foreign) = %q, want request hint", got)
	}
}

// --- Error formatting ---

func TestError_MessageIncludesKind(t *testing.T) {
	err := &Error{Kind: KindServiceUnavailable, Message: "upstream 503"}
	want := "service_unavailable: upstream 503"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}
