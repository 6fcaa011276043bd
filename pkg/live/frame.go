package live

import (
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Change is one changed top-level property within a flush frame.
type Change struct {
	Property string `json:"property"`
	Value    any    `json:"value"`
}

// FlushFrame is one batched flush pushed to clients. Changes keep the
// scheduler's first-scheduled order.
type FlushFrame struct {
	Seq     uint64   `json:"seq"`
	Changes []Change `json:"changes"`
}

// SetRequest is an inbound property write from a client.
type SetRequest struct {
	Property string `json:"property"`
	Value    any    `json:"value"`

	// Source identifies the writing input element; used as the
	// debounce key for delayed commits.
	Source string `json:"source,omitempty"`
}
