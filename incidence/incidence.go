// Package incidence defines the tracked entity whose lifecycle generates
// events. The entity is owned by an external store; this module only reads
// its id for correlation and never mutates or persists it.
package incidence

// Incidence is the tracked entity. ID is an opaque identifier assigned by
// the owning store (often a hex object id) and is the correlation key for
// every dispatch, history record, and log line.
type Incidence struct {
	ID      string `json:"id"`
	Summary string `json:"summary,omitempty"`
}

// Valid reports whether the incidence carries the id required to correlate
// a dispatch. An incidence without an id must never reach a plugin handler
// or the history recorder.
func (i *Incidence) Valid() bool {
	return i != nil && i.ID != ""
}
