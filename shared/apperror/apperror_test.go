package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestStatusOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", New(ErrNotFound, "user 7 not found"), http.StatusNotFound},
		{"wrapped not found", fmt.Errorf("lookup: %w", ErrNotFound), http.StatusNotFound},
		{"invalid body", New(ErrInvalidRequestBody, "invalid email"), http.StatusBadRequest},
		{"invalid argument", New(ErrInvalidArgument, "size must be positive"), http.StatusBadRequest},
		{"bad request", New(ErrBadRequest, ""), http.StatusBadRequest},
		{"unknown", errors.New("connection refused"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StatusOf(tt.err); got != tt.want {
				t.Errorf("StatusOf() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestMessageOf(t *testing.T) {
	if got := MessageOf(New(ErrInvalidRequestBody, "invalid email")); got != "invalid email" {
		t.Errorf("got %q", got)
	}
	if got := MessageOf(fmt.Errorf("wrap: %w", New(ErrInvalidArgument, "bad page"))); got != "bad page" {
		t.Errorf("got %q", got)
	}
	if got := MessageOf(New(ErrBadRequest, "")); got != "bad request" {
		t.Errorf("got %q", got)
	}
	if got := MessageOf(errors.New("pq: relation does not exist")); got != "something went wrong" {
		t.Errorf("got %q", got)
	}
}

func TestErrorIs(t *testing.T) {
	err := New(ErrNotFound, "user 3 not found")
	if !errors.Is(err, ErrNotFound) {
		t.Fatal("expected errors.Is to match kind")
	}
	if errors.Is(err, ErrBadRequest) {
		t.Fatal("unexpected match")
	}
	if err.Error() != "not found: user 3 not found" {
		t.Errorf("Error() = %q", err.Error())
	}
}
