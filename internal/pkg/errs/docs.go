// Package errs provides standardized error types for the tasking system.
// It implements a consistent pattern for error creation, formatting, and
// unwrapping that is used throughout the application.
//
// Each error type follows the same shape:
//   - a sentinel error variable (e.g. ErrObjectNotFound)
//   - a struct type carrying error details
//   - constructor functions with and without cause
//   - Error() for formatting and Unwrap() for errors.Is classification
//
// Keeping error construction uniform lets command handlers and adapters
// translate failures (task not found, invalid resource name, stale version)
// without inspecting message strings.
package errs
