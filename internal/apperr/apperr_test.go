package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatusMapping(t *testing.T) {
	tests := []struct {
		kind Kind
		want int
	}{
		{KindValidation, http.StatusBadRequest},
		{KindAuth, http.StatusUnauthorized},
		{KindNotFound, http.StatusNotFound},
		{KindConflict, http.StatusConflict},
		{KindUpstream, http.StatusBadGateway},
		{KindInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		if got := HTTPStatus(tt.kind); got != tt.want {
			t.Errorf("HTTPStatus(%v) = %d, want %d", tt.kind, got, tt.want)
		}
		// The client-side mapping is the inverse.
		if got := KindFromStatus(tt.want); got != tt.kind {
			t.Errorf("KindFromStatus(%d) = %v, want %v", tt.want, got, tt.kind)
		}
	}
}

func TestKindOfUnclassifiedIsInternal(t *testing.T) {
	err := errors.New("disk on fire")
	if got := KindOf(err); got != KindInternal {
		t.Errorf("KindOf(plain error) = %v, want internal", got)
	}
	if got := MessageOf(err); got != "Something went wrong!" {
		t.Errorf("MessageOf(plain error) = %q", got)
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("UNIQUE constraint failed")
	err := Wrap(KindConflict, "Book already saved to your library", cause)

	if !errors.Is(err, cause) {
		t.Error("wrapped cause lost from chain")
	}
	if got := KindOf(fmt.Errorf("creating: %w", err)); got != KindConflict {
		t.Errorf("KindOf(rewrapped) = %v, want conflict", got)
	}
	if got := MessageOf(err); got != "Book already saved to your library" {
		t.Errorf("MessageOf = %q", got)
	}
}
