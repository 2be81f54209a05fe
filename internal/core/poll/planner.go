// Package poll contains the pure retry-scheduling decision for one fetch cycle.
// This is part of the Functional Core - the tracker executes the decision.
package poll

// State is the retry scheduler state for one category.
type State string

const (
	// StateIdle means no retry timer is armed; the next fetch is the next boundary.
	StateIdle State = "idle"
	// StatePolling means a short retry timer is armed.
	StatePolling State = "polling"
)

// Input describes the outcome of a fetch cycle up to the comparison step.
type Input struct {
	// Failed is set when the fetch or the baseline read failed.
	Failed bool
	// HasBaseline is false on the very first successful load of a category.
	HasBaseline bool
	// Changed reports whether the fetched stock differs from the baseline.
	Changed bool
	// Unscheduled marks a cycle that was not started by a boundary or a retry
	// (startup and forced refreshes). Such cycles never start polling.
	Unscheduled bool
}

// Decision is what the tracker must do after a cycle.
type Decision struct {
	SaveSnapshot   bool
	DetectRestocks bool
	ArmRetry       bool
	CancelRetry    bool
	// Next is empty when the state stays as it is.
	Next State
}

// Plan maps a cycle outcome to the scheduler's next step.
//
// Failures arm a retry and leave the snapshot alone. A first load stores the
// snapshot without comparing. A change stores, detects and stops polling. An
// unchanged result is persisted again and keeps polling. Unscheduled cycles
// leave the timer untouched unless they observe a change.
func Plan(in Input) Decision {
	switch {
	case in.Failed && in.Unscheduled:
		return Decision{}
	case in.Failed:
		return Decision{ArmRetry: true, Next: StatePolling}
	case !in.HasBaseline:
		return Decision{SaveSnapshot: true, CancelRetry: true, Next: StateIdle}
	case in.Changed:
		return Decision{SaveSnapshot: true, DetectRestocks: true, CancelRetry: true, Next: StateIdle}
	case in.Unscheduled:
		return Decision{SaveSnapshot: true}
	default:
		return Decision{SaveSnapshot: true, ArmRetry: true, Next: StatePolling}
	}
}

// AfterSaveFailure adjusts a decision when persisting the snapshot failed:
// nothing is reported and polling continues so the next cycle can retry.
func AfterSaveFailure(d Decision) Decision {
	d.DetectRestocks = false
	d.CancelRetry = false
	d.ArmRetry = true
	d.Next = StatePolling
	return d
}
