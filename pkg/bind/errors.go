package bind

import "errors"

// ErrRootClosed is returned when an operation requires a live root but
// the root has been torn down.
var ErrRootClosed = errors.New("statebind: root closed")

// ErrUnknownMethod is returned by Call for a name that is not a bound
// method of the root.
var ErrUnknownMethod = errors.New("statebind: unknown method")

// ErrDerivationCycle is returned by Build when the derivation
// dependency graph contains a cycle. The wrapped error carries the
// cycle path.
var ErrDerivationCycle = errors.New("statebind: derivation cycle")
