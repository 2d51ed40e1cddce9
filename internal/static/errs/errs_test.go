package errs

import (
	"errors"
	"fmt"
	"testing"
)

func TestDispatchErrorUnwrapsToSentinel(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	err := fmt.Errorf("failed to execute code: %w", &DispatchError{Cause: "connection refused", Err: cause})

	if !errors.Is(err, ErrDispatch) || !errors.Is(err, cause) {
		t.Fatalf("expected both ErrDispatch and the cause in %v", err)
	}
	var de *DispatchError
	if !errors.As(err, &de) || de.Cause != "connection refused" {
		t.Fatalf("expected DispatchError, got %v", err)
	}
	if got := (&DispatchError{Cause: "status 503"}).Error(); got != "judge dispatch failed: status 503" {
		t.Fatalf("unexpected message %q", got)
	}
}
