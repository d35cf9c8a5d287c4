// Package publish implements the publication coordinator: the single
// component allowed to mutate both the versioned working tree and the
// remote graph store. A publish request moves through a fixed sequence of
// states, and every partial failure leaves a named, resumable state behind.
package publish

// State is a coordinator state. The write path advances strictly in order:
//
//	Allocated → Built → LocallyCommitted → Pushed → GraphPublished
//
// Failure exits carry the furthest state reached, which determines the
// resumable action: failures before LocallyCommitted restart the whole
// operation; failures at or after it resume using the identity as the key.
type State string

const (
	// StateAllocated: an identity exists, nothing has been built.
	StateAllocated State = "allocated"

	// StateBuilt: document and statement set derived, nothing persisted.
	StateBuilt State = "built"

	// StateLocallyCommitted: the document is committed in the local tree
	// but the remote repository has not seen it. Recoverable: retry push
	// only, never re-commit.
	StateLocallyCommitted State = "locally_committed"

	// StatePushed: the document is fully persisted and shareable; the
	// graph store is stale. Recoverable: retry graph publish only.
	StatePushed State = "pushed"

	// StateGraphPublished: terminal success, both stores consistent.
	StateGraphPublished State = "graph_published"
)

// Recoverable reports whether a failure at this state leaves resumable
// on-disk state rather than requiring a restart from scratch.
func (s State) Recoverable() bool {
	return s == StateLocallyCommitted || s == StatePushed
}

// resumeAction names the caller-facing action that completes a publish
// stranded at this state.
func (s State) resumeAction(id string) string {
	switch s {
	case StateLocallyCommitted:
		return "local commit exists; run 'slop resume " + id + "' to retry the push and graph publish"
	case StatePushed:
		return "document is fully persisted; run 'slop resume " + id + "' to retry the graph publish"
	default:
		return "no partial state was created; retry the publish from scratch"
	}
}
