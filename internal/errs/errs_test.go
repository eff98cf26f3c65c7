package errs

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"testing"
)

func TestError_IsKindAndCause(t *testing.T) {
	err := Wrap("decoder", "open", ErrDecodeFailure, fs.ErrNotExist)

	if !errors.Is(err, ErrDecodeFailure) {
		t.Error("kind not matched by errors.Is")
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Error("cause not matched by errors.Is")
	}
	if errors.Is(err, ErrEncodeFailure) {
		t.Error("unrelated kind matched")
	}

	var e *Error
	if !errors.As(fmt.Errorf("outer: %w", err), &e) {
		t.Fatal("errors.As failed through wrapping")
	}
	if e.Component != "decoder" {
		t.Errorf("component: got %q", e.Component)
	}
}

func TestError_Message(t *testing.T) {
	err := New("transform", "encrypt", ErrShapeMismatch, "grid has %d pixels, want %d", 5, 6)
	msg := err.Error()
	for _, want := range []string{"transform", "encrypt", "shape mismatch", "5 pixels"} {
		if !strings.Contains(msg, want) {
			t.Errorf("message %q missing %q", msg, want)
		}
	}
}

func TestWrap_Nil(t *testing.T) {
	if Wrap("x", "y", ErrInvalidKey, nil) != nil {
		t.Error("Wrap(nil) should return nil")
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, 0},
		{"generic", errors.New("boom"), ExitGeneric},
		{"invalid key", &Error{Component: "keys", Op: "derive", Kind: ErrInvalidKey}, ExitInvalidKey},
		{"shape", fmt.Errorf("wrapped: %w", &Error{Kind: ErrShapeMismatch}), ExitShapeMismatch},
		{"decode", Wrap("decoder", "decode", ErrDecodeFailure, errors.New("bad png")), ExitDecode},
		{"encode", Wrap("encoder", "encode", ErrEncodeFailure, errors.New("disk full")), ExitEncode},
		{"joined", errors.Join(errors.New("a"), &Error{Kind: ErrEncodeFailure}), ExitEncode},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitCode(tt.err); got != tt.want {
				t.Errorf("ExitCode: got %d, want %d", got, tt.want)
			}
		})
	}
}
