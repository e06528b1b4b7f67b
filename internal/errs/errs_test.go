package errs

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestHasKind(t *testing.T) {
	err := New(KindFetch, "boom")
	if !HasKind(err, KindFetch) {
		t.Error("expected KindFetch")
	}
	if HasKind(err, KindIO) {
		t.Error("did not expect KindIO")
	}
	if HasKind(nil, KindFetch) {
		t.Error("nil should have no kind")
	}
}

func TestHasKind_ThroughWrapping(t *testing.T) {
	inner := Newf(KindFormat, "values[%d]: missing value field", 3)
	outer := fmt.Errorf("normalize: %w", inner)
	if !HasKind(outer, KindFormat) {
		t.Error("kind should survive fmt.Errorf wrapping")
	}
}

func TestError_MessageIncludesCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(KindFetch, "indicator 600 request failed", cause)

	msg := err.Error()
	if !strings.Contains(msg, "fetch error") {
		t.Errorf("message %q should name the kind", msg)
	}
	if !strings.Contains(msg, "connection refused") {
		t.Errorf("message %q should include the cause", msg)
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is should reach the cause")
	}
}

func TestKind_String(t *testing.T) {
	cases := map[Kind]string{
		KindConfig: "config",
		KindFetch:  "fetch",
		KindFormat: "format",
		KindIO:     "io",
		Kind(99):   "unknown",
	}
	for kind, want := range cases {
		if got := kind.String(); got != want {
			t.Errorf("Kind(%d).String() = %q, want %q", kind, got, want)
		}
	}
}
