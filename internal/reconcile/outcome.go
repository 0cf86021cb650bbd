package reconcile

import "errors"

// ErrCommitRetryRequired indicates that the global identity was changed and the commit must be repeated.
var ErrCommitRetryRequired = errors.New("git identity updated, run the commit command again")

// Outcome describes how a reconciliation ended.
type Outcome int

// Reconciliation outcomes.
const (
	OutcomeAlreadyConfigured Outcome = iota
	OutcomeApplied
	OutcomeSkipped
	OutcomeDanglingReference
)

// String returns the outcome name used in logs.
func (outcome Outcome) String() string {
	switch outcome {
	case OutcomeAlreadyConfigured:
		return "already_configured"
	case OutcomeApplied:
		return "applied"
	case OutcomeSkipped:
		return "skipped"
	case OutcomeDanglingReference:
		return "dangling_reference"
	default:
		return "unknown"
	}
}
