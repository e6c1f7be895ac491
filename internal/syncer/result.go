// Package syncer reconciles local documents against the remote page
// index and executes create/update operations under a bounded pool.
package syncer

// Outcome is the terminal state of one document's sync.
type Outcome string

const (
	// OutcomeCreated means the remote path was absent and a create succeeded.
	OutcomeCreated Outcome = "created"

	// OutcomeUpdated means the remote path existed and an update succeeded.
	OutcomeUpdated Outcome = "updated"

	// OutcomeFailed means the operation failed after exhausting retries.
	OutcomeFailed Outcome = "failed"
)

// Result is the outcome for one document. Created during the sync run,
// never mutated afterward.
type Result struct {
	// File is the local document filename.
	File string

	// Path is the derived remote path.
	Path string

	// Outcome is the terminal state.
	Outcome Outcome

	// PageID is the remote id used for updates (0 for creates).
	PageID int

	// Reason holds the final error text for failed outcomes.
	Reason string
}

// Report aggregates per-document results for one run.
type Report struct {
	Results []Result
	Created int
	Updated int
	Failed  int
}

// add tallies one result into the report counters.
func (r *Report) add(res Result) {
	r.Results = append(r.Results, res)
	switch res.Outcome {
	case OutcomeCreated:
		r.Created++
	case OutcomeUpdated:
		r.Updated++
	case OutcomeFailed:
		r.Failed++
	}
}
