// Package errors provides structured error types for the pod codec.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type includes rich context: access path, wire type tags, and cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseDecode, errors.KindTypeMismatch).
//		Path("Props", "rate").
//		WantTag("Int").
//		GotTag("Long").
//		Detail("choice child has the wrong tag").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.TypeMismatch(errors.PhaseDecode, path, "Int", "Long")
//	err := errors.MalformedPod(path, "declared size 24 exceeds remaining 16 bytes")
//
// All errors implement the standard error interface and support errors.Is/As.
// Matching with errors.Is compares phase and kind; the IsKind helper matches
// on kind alone.
package errors
