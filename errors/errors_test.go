package errors

import (
	"errors"
	"strings"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name: "full error",
			err: &Error{
				Stage:   StageInit,
				Kind:    KindInitialization,
				Backend: "babylon",
				Op:      "Initialize",
				Detail:  "renderer construction failed",
			},
			contains: []string{"[init]", "initialization", "backend=babylon", "op=Initialize", "renderer construction failed"},
		},
		{
			name: "minimal error",
			err: &Error{
				Stage: StageCapture,
				Kind:  KindCapture,
			},
			contains: []string{"[capture]", "capture"},
		},
		{
			name: "error with cause",
			err: &Error{
				Stage:  StageFactory,
				Kind:   KindUnknownBackend,
				Detail: "backend lookup failed",
				Cause:  errors.New("underlying error"),
			},
			contains: []string{"[factory]", "unknown_backend", "backend lookup failed", "caused by", "underlying error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !strings.Contains(msg, s) {
					t.Errorf("error message %q does not contain %q", msg, s)
				}
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := &Error{
		Stage: StageInit,
		Kind:  KindInitialization,
		Cause: cause,
	}

	if !errors.Is(err.Unwrap(), cause) {
		t.Error("Unwrap did not return cause")
	}

	if !errors.Is(errors.Unwrap(err), cause) {
		t.Error("errors.Unwrap did not return cause")
	}
}

func TestError_Is(t *testing.T) {
	err := &Error{
		Stage:   StageInit,
		Kind:    KindInitialization,
		Backend: "babylon",
	}

	// Same stage and kind
	if !err.Is(&Error{Stage: StageInit, Kind: KindInitialization}) {
		t.Error("Is should match same stage and kind")
	}

	// Different stage
	if err.Is(&Error{Stage: StageFactory, Kind: KindInitialization}) {
		t.Error("Is should not match different stage")
	}

	// Different kind
	if err.Is(&Error{Stage: StageInit, Kind: KindNotImplemented}) {
		t.Error("Is should not match different kind")
	}

	// Backend is ignored by Is
	target := &Error{Stage: StageInit, Kind: KindInitialization, Backend: "three"}
	if !errors.Is(err, target) {
		t.Error("errors.Is should match regardless of backend")
	}
}

func TestBuilder(t *testing.T) {
	cause := errors.New("root")
	err := New(StageNavigate, KindNotReady).
		Backend("babylon").
		Op("ChangeLevel").
		Cause(cause).
		Detail("requested level %d", 3).
		Build()

	if err.Stage != StageNavigate {
		t.Errorf("Stage = %v, want %v", err.Stage, StageNavigate)
	}
	if err.Kind != KindNotReady {
		t.Errorf("Kind = %v, want %v", err.Kind, KindNotReady)
	}
	if err.Backend != "babylon" {
		t.Errorf("Backend = %q, want %q", err.Backend, "babylon")
	}
	if err.Op != "ChangeLevel" {
		t.Errorf("Op = %q, want %q", err.Op, "ChangeLevel")
	}
	if err.Detail != "requested level 3" {
		t.Errorf("Detail = %q, want %q", err.Detail, "requested level 3")
	}
	if !errors.Is(err.Cause, cause) {
		t.Error("Cause not preserved")
	}
}

func TestConvenienceConstructors(t *testing.T) {
	cause := errors.New("gpu context lost")

	tests := []struct {
		name  string
		err   *Error
		stage Stage
		kind  Kind
	}{
		{"Initialization", Initialization("babylon", cause), StageInit, KindInitialization},
		{"UnknownBackend", UnknownBackend("unity"), StageFactory, KindUnknownBackend},
		{"NotImplemented", NotImplemented("three", "Run"), StageInit, KindNotImplemented},
		{"Capture", Capture("babylon", "no surface bound"), StageCapture, KindCapture},
		{"NotReady", NotReady("babylon", "ChangeLevel"), StageNavigate, KindNotReady},
		{"InvalidConfig", InvalidConfig("paintings list is empty"), StageConfig, KindInvalidConfig},
		{"Canceled", Canceled("babylon", nil), StageInit, KindCanceled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Stage != tt.stage {
				t.Errorf("Stage = %v, want %v", tt.err.Stage, tt.stage)
			}
			if tt.err.Kind != tt.kind {
				t.Errorf("Kind = %v, want %v", tt.err.Kind, tt.kind)
			}
			if tt.err.Error() == "" {
				t.Error("empty error message")
			}
		})
	}
}
