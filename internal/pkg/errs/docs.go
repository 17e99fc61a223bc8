// Package errs provides standardized error types for the logistics service.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used by the parcel transition engine, the performance aggregation engine
// and the adapters around them.
//
// The package includes:
//   - ObjectNotFoundError: a parcel, branch, courier or performance record is absent
//   - ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError: validation failures
//   - AccessDeniedError: the requester is not the custodian required by a held status
//   - ConflictError: a concurrent writer holds the parcel update lock (retryable)
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrObjectNotFound)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method returning the sentinel, so errors.Is works through wrapping
//
// Transport adapters classify failures by sentinel only, never by concrete type.
package errs
