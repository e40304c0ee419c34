// Package errors provides structured error types for the handlebox library.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type carries the operation name, the Go type of the handle involved,
// the offending handle value and an optional cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseOpen, errors.KindOpenFailed).
//		Op("sysfd.Open").
//		Type("int").
//		Detail("open %s", path).
//		Cause(errno).
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.Duplicate(errors.PhaseRegister, h)
//	err := errors.UseAfterDrop("Assign", "uintptr")
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
