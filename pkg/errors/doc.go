// Package errors provides structured error types for better observability
// and programmatic error handling across the application.
//
// A snapshot that fails is reported through exactly one StructuredError, so the
// code and message must describe which domain failed and why:
//
//	err := errors.WrapWithContext(
//	    errors.ErrCodeUnavailable,
//	    "failed to collect packages",
//	    cause,
//	    map[string]any{
//	        "domain": "packages",
//	    },
//	)
package errors
