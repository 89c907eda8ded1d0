package genloop

import "fmt"

// LoopError is the base error type for all loop errors.
type LoopError struct {
	Message string
	Cause   error
}

func (e *LoopError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *LoopError) Unwrap() error {
	return e.Cause
}

// ConfigurationError reports a misconfigured RetryPolicy. It is surfaced
// before any generate call and never retried.
type ConfigurationError struct{ LoopError }

// GenerationError reports that an attempt's generator call failed. Under
// the default GeneratorErrorRetry mode it is absorbed into the attempt's
// synthetic report; under GeneratorErrorAbort it propagates to the caller.
type GenerationError struct {
	LoopError
	Attempt int
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generation failed on attempt %d: %s", e.Attempt, e.LoopError.Error())
}

// ValidationError reports that the validator itself broke, as opposed to
// the candidate being invalid. A broken gate cannot be trusted to approve
// anything, so under the default ValidatorErrorFail mode this propagates
// immediately without starting another attempt.
type ValidationError struct {
	LoopError
	Attempt int
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validator failed on attempt %d: %s", e.Attempt, e.LoopError.Error())
}

// AbortError reports that the loop stopped because its context was
// cancelled at an attempt boundary or during backoff.
type AbortError struct{ LoopError }
