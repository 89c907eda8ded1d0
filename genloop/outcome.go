package genloop

// OutcomeStatus represents the terminal state of a loop invocation.
type OutcomeStatus string

const (
	// StatusSucceeded means a candidate passed validation.
	StatusSucceeded OutcomeStatus = "succeeded"
	// StatusExhausted means the attempt budget was spent without a valid
	// candidate. This is a normal terminal outcome, not an error.
	StatusExhausted OutcomeStatus = "exhausted"
	// StatusAborted means the loop stopped early: cancellation, a
	// validator crash under fail-fast, or a generator crash under the
	// abort mode.
	StatusAborted OutcomeStatus = "aborted"
)

// Outcome is the terminal result of one loop invocation. Exactly one
// Outcome is produced per Run call (except for configuration errors, which
// fail before the loop starts).
type Outcome struct {
	Status OutcomeStatus `json:"status"`

	// Candidate is the accepted candidate on success, nil otherwise.
	Candidate *Candidate `json:"candidate,omitempty"`

	// Report is the passing report on success and the last report on
	// exhaustion. Nil for outcomes aborted before any report existed.
	Report *ValidationReport `json:"report,omitempty"`

	// Attempts is the number of attempts started.
	Attempts int `json:"attempts"`

	// History holds one report per completed attempt, in attempt order.
	History []ValidationReport `json:"history"`
}

// Succeeded reports whether a candidate passed validation.
func (o *Outcome) Succeeded() bool { return o.Status == StatusSucceeded }

// Exhausted reports whether the attempt budget was spent without success.
func (o *Outcome) Exhausted() bool { return o.Status == StatusExhausted }

// Aborted reports whether the loop stopped early.
func (o *Outcome) Aborted() bool { return o.Status == StatusAborted }

func successOutcome(cand *Candidate, report *ValidationReport, attempts int, history []ValidationReport) *Outcome {
	return &Outcome{
		Status:    StatusSucceeded,
		Candidate: cand,
		Report:    report,
		Attempts:  attempts,
		History:   history,
	}
}

func exhaustedOutcome(lastReport *ValidationReport, attempts int, history []ValidationReport) *Outcome {
	return &Outcome{
		Status:   StatusExhausted,
		Report:   lastReport,
		Attempts: attempts,
		History:  history,
	}
}

func abortedOutcome(attempts int, history []ValidationReport) *Outcome {
	o := &Outcome{
		Status:   StatusAborted,
		Attempts: attempts,
		History:  history,
	}
	if len(history) > 0 {
		o.Report = &history[len(history)-1]
	}
	return o
}
