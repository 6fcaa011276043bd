// Package live is a reference consumer for a reactive root: an
// HTTP/WebSocket bridge that subscribes to the root's batched flushes
// and pushes them as JSON frames to any number of view clients.
//
// The bridge performs no rendering and interprets no binding syntax; it
// only forwards the outbound change-notification contract and exposes
// the inbound property-write contract to clients. Prometheus metrics
// and OpenTelemetry tracing are wired here, behind the same options
// pattern as the rest of the package.
package live
