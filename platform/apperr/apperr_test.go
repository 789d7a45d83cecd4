package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestGetKindFindsWrappedError(t *testing.T) {
	base := Validation("client name is required")
	wrapped := fmt.Errorf("finalize: %w", base)

	if !Is(wrapped, KindValidation) {
		t.Fatalf("expected wrapped error to carry KindValidation, got %v", GetKind(wrapped))
	}
}

func TestGetKindUnknownForPlainErrors(t *testing.T) {
	if GetKind(errors.New("boom")) != KindUnknown {
		t.Fatal("expected KindUnknown for untyped error")
	}
}

func TestUnavailableMapsTo503AndUnwraps(t *testing.T) {
	cause := errors.New("connection refused")
	err := Unavailable("draft store unavailable", cause)

	if err.HTTPStatus() != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", err.HTTPStatus())
	}
	if !errors.Is(err, cause) {
		t.Fatal("expected errors.Is to reach the cause")
	}
	if err.Error() != "draft store unavailable: connection refused" {
		t.Fatalf("unexpected message %q", err.Error())
	}
}
