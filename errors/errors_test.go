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
				Phase:   PhaseDecode,
				Kind:    KindTypeMismatch,
				Path:    []string{"Format", "rate"},
				WantTag: "Int",
				GotTag:  "Long",
				Detail:  "cannot convert",
			},
			contains: []string{"[decode]", "type_mismatch", "Format.rate", "Int", "Long", "cannot convert"},
		},
		{
			name: "minimal error",
			err: &Error{
				Phase: PhaseDecode,
				Kind:  KindOutOfBounds,
			},
			contains: []string{"[decode]", "out_of_bounds"},
		},
		{
			name: "error with cause",
			err: &Error{
				Phase:  PhaseBuild,
				Kind:   KindInvalidData,
				Detail: "bad element",
				Cause:  errors.New("underlying error"),
			},
			contains: []string{"[build]", "invalid_data", "bad element", "caused by", "underlying error"},
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
		Phase: PhaseBuild,
		Kind:  KindInvalidData,
		Cause: cause,
	}

	if !errors.Is(err.Unwrap(), cause) {
		t.Error("Unwrap did not return cause")
	}

	// Test with errors.Unwrap
	if !errors.Is(errors.Unwrap(err), cause) {
		t.Error("errors.Unwrap did not return cause")
	}
}

func TestError_Is(t *testing.T) {
	err := &Error{
		Phase: PhaseDecode,
		Kind:  KindMalformedPod,
		Path:  []string{"foo"},
	}

	// Same phase and kind
	if !err.Is(&Error{Phase: PhaseDecode, Kind: KindMalformedPod}) {
		t.Error("Is should match same phase and kind")
	}

	// Different phase
	if err.Is(&Error{Phase: PhaseBuild, Kind: KindMalformedPod}) {
		t.Error("Is should not match different phase")
	}

	// Different kind
	if err.Is(&Error{Phase: PhaseDecode, Kind: KindOutOfBounds}) {
		t.Error("Is should not match different kind")
	}

	// Test with errors.Is
	target := &Error{Phase: PhaseDecode, Kind: KindMalformedPod}
	if !errors.Is(err, target) {
		t.Error("errors.Is should match")
	}
}

func TestIsKind(t *testing.T) {
	err := FrameMismatch("Array", "Struct")
	if !IsKind(err, KindFrameMismatch) {
		t.Error("IsKind should match the error's kind")
	}
	if IsKind(err, KindUnclosedFrame) {
		t.Error("IsKind should not match a different kind")
	}
	if IsKind(errors.New("plain"), KindFrameMismatch) {
		t.Error("IsKind should not match a non-structured error")
	}

	// Wrapped structured errors still match
	wrapped := Wrap(PhaseBuild, KindInvalidData, err, "while closing")
	if !IsKind(wrapped, KindInvalidData) {
		t.Error("IsKind should match the outer kind of a wrapped error")
	}
}

func TestBuilder(t *testing.T) {
	cause := errors.New("root")
	err := New(PhaseDecode, KindTypeMismatch).
		Path("Props", "volume").
		WantTag("Float").
		GotTag("Double").
		Value(42).
		Cause(cause).
		Detail("expected %s, got %s", "Float", "Double").
		Build()

	if err.Phase != PhaseDecode {
		t.Errorf("Phase = %v, want %v", err.Phase, PhaseDecode)
	}
	if err.Kind != KindTypeMismatch {
		t.Errorf("Kind = %v, want %v", err.Kind, KindTypeMismatch)
	}
	if len(err.Path) != 2 || err.Path[0] != "Props" || err.Path[1] != "volume" {
		t.Errorf("Path = %v, want [Props volume]", err.Path)
	}
	if err.WantTag != "Float" {
		t.Errorf("WantTag = %v, want 'Float'", err.WantTag)
	}
	if err.GotTag != "Double" {
		t.Errorf("GotTag = %v, want 'Double'", err.GotTag)
	}
	if err.Value != 42 {
		t.Errorf("Value = %v, want 42", err.Value)
	}
	if !errors.Is(err.Cause, cause) {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}
	if err.Detail != "expected Float, got Double" {
		t.Errorf("Detail = %v, want 'expected Float, got Double'", err.Detail)
	}
}

func TestConvenienceConstructors(t *testing.T) {
	t.Run("MalformedPod", func(t *testing.T) {
		err := MalformedPod([]string{"outer"}, "declared size %d exceeds remaining %d", 24, 16)
		if err.Kind != KindMalformedPod {
			t.Errorf("Kind = %v, want %v", err.Kind, KindMalformedPod)
		}
		if err.Phase != PhaseDecode {
			t.Errorf("Phase = %v, want %v", err.Phase, PhaseDecode)
		}
		if !strings.Contains(err.Detail, "24") {
			t.Errorf("Detail = %v, should contain declared size", err.Detail)
		}
	})

	t.Run("TypeMismatch", func(t *testing.T) {
		err := TypeMismatch(PhaseDecode, []string{"field"}, "Object", "Struct")
		if err.Kind != KindTypeMismatch {
			t.Errorf("Kind = %v, want %v", err.Kind, KindTypeMismatch)
		}
		if err.WantTag != "Object" || err.GotTag != "Struct" {
			t.Errorf("WantTag=%v GotTag=%v", err.WantTag, err.GotTag)
		}
	})

	t.Run("InvalidChoice", func(t *testing.T) {
		err := InvalidChoice(PhaseBuild, "step must be greater than zero")
		if err.Kind != KindInvalidChoice {
			t.Errorf("Kind = %v, want %v", err.Kind, KindInvalidChoice)
		}
	})

	t.Run("FrameMismatch", func(t *testing.T) {
		err := FrameMismatch("Array", "Object")
		if err.Kind != KindFrameMismatch {
			t.Errorf("Kind = %v, want %v", err.Kind, KindFrameMismatch)
		}
		if err.WantTag != "Array" || err.GotTag != "Object" {
			t.Errorf("WantTag=%v GotTag=%v", err.WantTag, err.GotTag)
		}
	})

	t.Run("UnclosedFrame", func(t *testing.T) {
		err := UnclosedFrame(2)
		if err.Kind != KindUnclosedFrame {
			t.Errorf("Kind = %v, want %v", err.Kind, KindUnclosedFrame)
		}
		if !strings.Contains(err.Detail, "2") {
			t.Errorf("Detail = %v, should contain open frame count", err.Detail)
		}
	})

	t.Run("BuilderFinished", func(t *testing.T) {
		err := BuilderFinished()
		if err.Kind != KindBuilderFinished {
			t.Errorf("Kind = %v, want %v", err.Kind, KindBuilderFinished)
		}
	})

	t.Run("InvalidUTF8", func(t *testing.T) {
		data := []byte{0xff, 0xfe}
		err := InvalidUTF8(PhaseConvert, []string{"str"}, data)
		if err.Kind != KindInvalidUTF8 {
			t.Errorf("Kind = %v, want %v", err.Kind, KindInvalidUTF8)
		}
	})

	t.Run("Unsupported", func(t *testing.T) {
		err := Unsupported(PhaseBuild, "variable-size array elements")
		if err.Kind != KindUnsupported {
			t.Errorf("Kind = %v, want %v", err.Kind, KindUnsupported)
		}
	})

	t.Run("OutOfBounds", func(t *testing.T) {
		err := OutOfBounds(PhaseDecode, []string{"array"}, 10, 5)
		if err.Kind != KindOutOfBounds {
			t.Errorf("Kind = %v, want %v", err.Kind, KindOutOfBounds)
		}
		if err.Value != 10 {
			t.Errorf("Value = %v, want 10", err.Value)
		}
	})

	t.Run("Overflow", func(t *testing.T) {
		err := Overflow(PhaseConvert, []string{"val"}, 300, "Id")
		if err.Kind != KindOverflow {
			t.Errorf("Kind = %v, want %v", err.Kind, KindOverflow)
		}
		if err.Value != 300 {
			t.Errorf("Value = %v, want 300", err.Value)
		}
	})
}

