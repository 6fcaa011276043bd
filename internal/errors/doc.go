// Package errors provides structured error values for the statebind engine.
//
// Fallible operations in the engine (dependency analysis, derivation
// computation, consumer callbacks) report failures with a code and a
// category so callers can decide whether to log, degrade, or abort
// instead of relying on ad hoc diagnostics.
//
// # Error Categories
//
// Errors are organized into categories:
//   - config: setup errors (non-callable derivation, derivation cycle)
//   - derivation: a derivation function failed while computing
//   - shape: a consumer received a value of an unexpected shape
//   - structural: contract violations in a collaborator's own domain
//
// # Error Codes
//
// Each registered error has a unique code (e.g., "B001") that maps to a
// short message and a detailed explanation.
//
// # Usage
//
//	err := errors.New("B002").
//	    WithSuggestion("declare dependencies explicitly with Deps")
package errors
