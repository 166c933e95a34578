// File: error_test.go
// Title: Error Module Tests
// Description: Tests for error creation, wrapping, codes, severity and
//              metadata.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-19
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with comprehensive test coverage
// - 2026-10-19 v0.2.0: Cover Is by code, position details and chain limits

package error

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	msg := "buffer invariant broken"
	err := New(msg)

	if err == nil {
		t.Fatal("New() returned nil")
	}
	if err.Error() != msg {
		t.Errorf("Error() = %q, want %q", err.Error(), msg)
	}
	if err.Code() != CodeUnknown {
		t.Errorf("Code() = %v, want %v", err.Code(), CodeUnknown)
	}
	if err.Severity() != SeverityMedium {
		t.Errorf("Severity() = %v, want %v", err.Severity(), SeverityMedium)
	}
	if err.Timestamp().IsZero() {
		t.Error("Timestamp() should not be zero")
	}
	if len(err.StackTrace()) == 0 {
		t.Error("StackTrace() should not be empty")
	}
}

func TestNewf(t *testing.T) {
	err := Newf("stage %q failed at %d", "split", 3)
	if got, want := err.Error(), `stage "split" failed at 3`; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestWrap(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		message string
		wantNil bool
		wantMsg string
	}{
		{
			name:    "wrap nil error",
			err:     nil,
			message: "wrapper message",
			wantNil: true,
		},
		{
			name:    "wrap standard error",
			err:     errors.New("disk full"),
			message: "record run",
			wantMsg: "record run: disk full",
		},
		{
			name:    "wrap structured error",
			err:     New("unknown stage").WithCode(CodeUnknownStage),
			message: "execute pipeline",
			wantMsg: "execute pipeline: unknown stage",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := Wrap(tt.err, tt.message)

			if tt.wantNil {
				if wrapped != nil {
					t.Errorf("Wrap() = %v, want nil", wrapped)
				}
				return
			}
			if wrapped == nil {
				t.Fatal("Wrap() returned nil")
			}
			if wrapped.Error() != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", wrapped.Error(), tt.wantMsg)
			}
			if mdwErr, ok := tt.err.(*Error); ok {
				if wrapped.Code() != mdwErr.Code() {
					t.Errorf("Code() = %v, want %v", wrapped.Code(), mdwErr.Code())
				}
			}
		})
	}
}

func TestErrorChaining(t *testing.T) {
	original := errors.New("root cause")
	middle := Wrap(original, "middle layer")
	top := Wrap(middle, "top layer")

	if got, want := top.Error(), "top layer: middle layer: root cause"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !errors.Is(top, original) {
		t.Error("errors.Is() should find original error")
	}
	if top.RootCause() != original {
		t.Errorf("RootCause() = %v, want %v", top.RootCause(), original)
	}
}

func TestIsByCode(t *testing.T) {
	err := Wrap(New("bad stage").WithCode(CodeUnknownStage), "run")

	if !errors.Is(err, New("").WithCode(CodeUnknownStage)) {
		t.Error("errors.Is() should match by code")
	}
	if errors.Is(err, New("").WithCode(CodeParseError)) {
		t.Error("errors.Is() should not match a different code")
	}
	if errors.Is(err, New("")) {
		t.Error("errors.Is() should not match CodeUnknown targets")
	}
}

func TestWrapChainTruncation(t *testing.T) {
	var err error = errors.New("root")
	for i := 0; i < MaxErrorChainDepth+2; i++ {
		err = Wrap(err, "layer")
	}

	mdwErr, ok := err.(*Error)
	if !ok {
		t.Fatalf("Wrap() returned %T, want *Error", err)
	}
	if truncated, _ := mdwErr.Detail("truncated"); truncated != true {
		t.Error("deep chains should be flattened")
	}
	if !strings.Contains(mdwErr.Error(), "root") {
		t.Errorf("Error() = %q, want it to mention the root cause", mdwErr.Error())
	}
}

func TestWithCode(t *testing.T) {
	err := New("allocation").WithCode(CodeAllocationFailed)

	if err.Code() != CodeAllocationFailed {
		t.Errorf("Code() = %v, want %v", err.Code(), CodeAllocationFailed)
	}
	if err.Severity() != SeverityCritical {
		t.Errorf("Severity() = %v, want %v", err.Severity(), SeverityCritical)
	}
}

func TestWithSeverityNotOverridden(t *testing.T) {
	err := New("x").WithSeverity(SeverityLow).WithCode(CodeStorageError)
	if err.Severity() != SeverityLow {
		t.Errorf("Severity() = %v, want explicit %v", err.Severity(), SeverityLow)
	}
}

func TestDetails(t *testing.T) {
	err := New("parse").
		WithDetail("stage", "split").
		WithDetails(map[string]interface{}{"param": "max"}).
		WithPosition(7, 1, 8)

	details := err.Details()
	want := map[string]interface{}{"stage": "split", "param": "max", "offset": 7, "line": 1, "column": 8}
	if len(details) != len(want) {
		t.Fatalf("Details() length = %d, want %d", len(details), len(want))
	}
	for k, v := range want {
		if details[k] != v {
			t.Errorf("Details()[%q] = %v, want %v", k, details[k], v)
		}
	}

	details["stage"] = "mutated"
	if v, _ := err.Detail("stage"); v != "split" {
		t.Error("Details() must return a copy")
	}
}

func TestContextAndOperation(t *testing.T) {
	err := New("x").WithContext("cli").WithOperation("cstring.Check")
	if err.Context() != "cli" {
		t.Errorf("Context() = %q, want %q", err.Context(), "cli")
	}
	if err.Operation() != "cstring.Check" {
		t.Errorf("Operation() = %q, want %q", err.Operation(), "cstring.Check")
	}
}

func TestString(t *testing.T) {
	err := Wrap(errors.New("cause"), "outer").
		WithCode(CodeExecutionFailed).
		WithOperation("pipe.Execute").
		WithDetail("b", 2).
		WithDetail("a", 1)

	s := err.String()
	for _, want := range []string{"Error: outer", "Code: EXECUTION_FAILED", "Operation: pipe.Execute", "Details: {a=1, b=2}", "Cause: cause"} {
		if !strings.Contains(s, want) {
			t.Errorf("String() missing %q in:\n%s", want, s)
		}
	}
}

func TestMarshalJSON(t *testing.T) {
	err := New("bad input").WithCode(CodeInvalidInput).WithOperation("split")

	data, jerr := json.Marshal(err)
	if jerr != nil {
		t.Fatalf("json.Marshal() error = %v", jerr)
	}

	var decoded map[string]interface{}
	if jerr := json.Unmarshal(data, &decoded); jerr != nil {
		t.Fatalf("json.Unmarshal() error = %v", jerr)
	}
	if decoded["code"] != "INVALID_INPUT" {
		t.Errorf("code = %v, want INVALID_INPUT", decoded["code"])
	}
	if decoded["severity"] != "low" {
		t.Errorf("severity = %v, want low", decoded["severity"])
	}
	if decoded["operation"] != "split" {
		t.Errorf("operation = %v, want split", decoded["operation"])
	}
}

func TestHelpers(t *testing.T) {
	inner := New("x").WithCode(CodeNotFound)
	outer := Wrap(inner, "y").WithCode(CodeStorageError)

	if !HasCode(outer, CodeNotFound) {
		t.Error("HasCode() should search the chain")
	}
	if HasCode(errors.New("plain"), CodeNotFound) {
		t.Error("HasCode() on a plain error should be false")
	}
	if GetCode(outer) != CodeStorageError {
		t.Errorf("GetCode() = %v, want %v", GetCode(outer), CodeStorageError)
	}
	if GetCode(errors.New("plain")) != CodeUnknown {
		t.Error("GetCode() on a plain error should be CodeUnknown")
	}
	if GetSeverity(errors.New("plain")) != SeverityMedium {
		t.Error("GetSeverity() on a plain error should be SeverityMedium")
	}
}
