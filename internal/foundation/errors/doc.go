// Package errors provides the classified error primitives used across docstamp.
//
// Errors carry a category (vcs, revision, config, render, ...), a severity and
// free-form context. The CLI adapter maps categories to process exit codes.
//
// Example usage:
//
//	err := errors.NewError(errors.CategoryVCS, "git log failed").
//		WithSeverity(errors.SeverityWarning).
//		WithContext("op", "short_hash").
//		WithCause(originalErr).
//		WithSentinel(errors.ErrToolInvocation).
//		Build()
package errors
