package rayerr

import (
	"errors"
	"strings"
	"testing"
)

func TestIsMatchesBareKind(t *testing.T) {
	err := New(InputNotFound, "scene.json")
	if !errors.Is(err, InputNotFound) {
		t.Errorf("expected errors.Is to match bare Kind")
	}
	if errors.Is(err, WriteFailure) {
		t.Errorf("expected errors.Is to reject a different Kind")
	}
}

func TestUnwrapExposesCause(t *testing.T) {
	cause := errors.New("unexpected token")
	err := Wrap(InputMalformed, "scene.json:12", cause)
	if !errors.Is(err, InputMalformed) {
		t.Errorf("expected wrapped error to match its Kind")
	}
	if errors.Unwrap(err) != cause {
		t.Errorf("expected Unwrap to return the original cause")
	}
}

func TestErrorMessageIncludesLocationAndCause(t *testing.T) {
	cause := errors.New("boom")
	err := Wrap(SceneInconsistent, "mesh \"teapot\"", cause)
	msg := err.Error()
	if msg == "" {
		t.Fatal("expected non-empty message")
	}
	if !strings.Contains(msg, "mesh \"teapot\"") {
		t.Errorf("message %q does not include the location", msg)
	}
	if !strings.Contains(msg, "boom") {
		t.Errorf("message %q does not include the cause", msg)
	}
}
