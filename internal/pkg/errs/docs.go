// Package errs provides standardized error types shared across the clearance service.
// It implements a consistent pattern for error creation, formatting, and unwrapping.
//
// Each error type follows the same shape:
//   - A sentinel error variable (e.g. ErrObjectNotFound) used with errors.Is
//   - A struct type carrying the error details
//   - Constructor functions with and without an underlying cause
//   - Error() for formatting and Unwrap() for classification
//
// Domain-specific sentinels (invalid transition, accepted-bid conflicts, guard
// failures) live next to the model packages that raise them; this package holds
// only the generic vocabulary those packages build on.
package errs
