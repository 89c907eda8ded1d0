package genloop

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// timeoutReportError is the exact error string recorded for an attempt
// that exceeded RetryPolicy.AttemptTimeout.
const timeoutReportError = "attempt timed out"

// stallNote is appended to feedback text when stall detection fires.
const stallNote = "Previous attempts produced identical failing output. Try a different approach."

// Loop coordinates bounded-retry generation against a validation gate.
// A Loop holds no state between Run calls; separate invocations may run
// concurrently on separate goroutines as long as the injected generator
// and validator are themselves safe for concurrent use.
type Loop struct {
	id            string
	generator     Generator
	validator     Validator
	policy        RetryPolicy
	emitter       *EventEmitter
	stallWindow   int
	stallDisabled bool
	feedbackLimit int
}

// Option configures a Loop.
type Option func(*Loop)

// WithPolicy sets the retry policy.
func WithPolicy(p RetryPolicy) Option {
	return func(l *Loop) { l.policy = p }
}

// WithStallWindow sets how many trailing attempts stall detection inspects.
func WithStallWindow(n int) Option {
	return func(l *Loop) {
		if n > 0 {
			l.stallWindow = n
		}
	}
}

// WithoutStallDetection disables stall detection.
func WithoutStallDetection() Option {
	return func(l *Loop) { l.stallDisabled = true }
}

// WithFeedbackLimit caps the rendered feedback text in characters.
func WithFeedbackLimit(n int) Option {
	return func(l *Loop) { l.feedbackLimit = n }
}

// New creates a Loop around the given generator and validator. The policy
// defaults to DefaultRetryPolicy.
func New(generator Generator, validator Validator, opts ...Option) *Loop {
	l := &Loop{
		id:            uuid.New().String(),
		generator:     generator,
		validator:     validator,
		policy:        DefaultRetryPolicy(),
		stallWindow:   3,
		feedbackLimit: DefaultFeedbackLimit,
	}
	for _, opt := range opts {
		opt(l)
	}
	l.emitter = NewEventEmitter(l.id, 256)
	return l
}

// ID returns the loop identifier.
func (l *Loop) ID() string { return l.id }

// Events returns the event channel for the host application.
func (l *Loop) Events() <-chan LoopEvent { return l.emitter.Events() }

// Close closes the event channel. Safe to call multiple times.
func (l *Loop) Close() { l.emitter.Close() }

// Run executes the loop once for a single convenience invocation.
func Run(ctx context.Context, req Request, generator Generator, validator Validator, policy RetryPolicy) (*Outcome, error) {
	l := New(generator, validator, WithPolicy(policy))
	defer l.Close()
	return l.Run(ctx, req)
}

// Run drives repeated generate/validate rounds until a candidate passes,
// the attempt budget is spent, or a structural problem stops the loop.
//
// Success and exhaustion are ordinary outcomes with a nil error. A
// misconfigured policy returns (nil, *ConfigurationError) before any
// generate call. Cancellation, a validator crash under the default fail
// mode, and a generator crash under the abort mode return a non-nil error
// together with an aborted Outcome carrying the reports accumulated so
// far.
func (l *Loop) Run(ctx context.Context, req Request) (*Outcome, error) {
	if err := l.policy.Validate(); err != nil {
		return nil, err
	}

	policy := l.policy
	history := make([]ValidationReport, 0, policy.MaxAttempts)
	var feedback *Feedback
	var sigs []string

	l.emitter.Emit(EventLoopStart, map[string]interface{}{
		"task":         req.Task,
		"max_attempts": policy.MaxAttempts,
	})

	for attempt := 1; ; attempt++ {
		// Cancellation is cooperative at attempt boundaries only; an
		// in-flight generate or validate call is never interrupted.
		select {
		case <-ctx.Done():
			outcome := abortedOutcome(attempt-1, history)
			l.emitLoopEnd(outcome)
			return outcome, &AbortError{LoopError: LoopError{
				Message: "loop cancelled", Cause: ctx.Err(),
			}}
		default:
		}

		l.emitter.Emit(EventAttemptStart, map[string]interface{}{
			"attempt": attempt,
		})

		cand, report, err := l.runAttempt(ctx, req, feedback, attempt)
		if err != nil {
			outcome := abortedOutcome(attempt, history)
			l.emitLoopEnd(outcome)
			return outcome, err
		}
		history = append(history, *report)

		if report.Valid {
			// Short-circuit: no further attempts even if budget remains.
			l.emitter.Emit(EventValidationPassed, map[string]interface{}{
				"attempt":      attempt,
				"candidate_id": cand.ID,
			})
			outcome := successOutcome(cand, report, attempt, history)
			l.emitLoopEnd(outcome)
			return outcome, nil
		}

		l.emitter.Emit(EventValidationFailed, map[string]interface{}{
			"attempt": attempt,
			"errors":  len(report.Errors),
		})

		if attempt == policy.MaxAttempts {
			outcome := exhaustedOutcome(report, attempt, history)
			l.emitLoopEnd(outcome)
			return outcome, nil
		}

		feedback = FeedbackFromReport(attempt, report, l.feedbackLimit)

		if !l.stallDisabled && cand != nil {
			sigs = append(sigs, candidateSignature(cand.Content))
			if detectStall(sigs, l.stallWindow) {
				l.emitter.Emit(EventStallDetected, map[string]interface{}{
					"attempt": attempt,
					"window":  l.stallWindow,
				})
				feedback.Text += "\n\n" + stallNote
			}
		}

		delay := policy.Delay(attempt)
		if policy.OnRetry != nil {
			policy.OnRetry(attempt, report, delay)
		}
		l.emitter.Emit(EventRetryScheduled, map[string]interface{}{
			"attempt":  attempt + 1,
			"delay_ms": delay.Milliseconds(),
		})
		if delay > 0 {
			select {
			case <-ctx.Done():
				outcome := abortedOutcome(attempt, history)
				l.emitLoopEnd(outcome)
				return outcome, &AbortError{LoopError: LoopError{
					Message: "loop cancelled during backoff", Cause: ctx.Err(),
				}}
			case <-time.After(delay):
			}
		}
	}
}

// runAttempt executes one generate/validate round. It returns a fatal
// error only for conditions that must stop the loop; recoverable problems
// (generator failure under retry mode, timeouts, validator crashes under
// the invalid mode) come back as a synthetic report.
func (l *Loop) runAttempt(ctx context.Context, req Request, feedback *Feedback, attempt int) (*Candidate, *ValidationReport, error) {
	attemptCtx := ctx
	var cancel context.CancelFunc
	if l.policy.AttemptTimeout > 0 {
		attemptCtx, cancel = context.WithTimeout(ctx, l.policy.AttemptTimeout)
		defer cancel()
	}

	cand, err := l.generator.Generate(attemptCtx, req, feedback)
	if err != nil {
		if timedOut(ctx, attemptCtx) {
			return nil, timeoutReport(attempt), nil
		}
		l.emitter.Emit(EventGenerationError, map[string]interface{}{
			"attempt": attempt,
			"error":   err.Error(),
		})
		if l.policy.generatorErrorMode() == GeneratorErrorAbort {
			return nil, nil, &GenerationError{
				LoopError: LoopError{Message: "generator error", Cause: err},
				Attempt:   attempt,
			}
		}
		return nil, generationFailureReport(attempt, err), nil
	}
	if cand == nil {
		cand = NewCandidate("")
	}
	cand.stamp(attempt)

	l.emitter.Emit(EventCandidateProduced, map[string]interface{}{
		"attempt":      attempt,
		"candidate_id": cand.ID,
		"chars":        len(cand.Content),
	})

	report, err := l.validator.Validate(attemptCtx, cand)
	if err == nil && report == nil {
		err = &LoopError{Message: "validator returned neither report nor error"}
	}
	if err != nil {
		if timedOut(ctx, attemptCtx) {
			return cand, timeoutReport(attempt), nil
		}
		if l.policy.validatorErrorMode() == ValidatorErrorInvalid {
			return cand, &ValidationReport{
				Valid:    false,
				Errors:   []string{"validator failed: " + err.Error()},
				Metadata: map[string]interface{}{"validator_error": true},
			}, nil
		}
		return cand, nil, &ValidationError{
			LoopError: LoopError{Message: "validator error", Cause: err},
			Attempt:   attempt,
		}
	}

	return cand, report, nil
}

// timedOut reports whether the attempt deadline expired while the parent
// context is still live.
func timedOut(parent, attemptCtx context.Context) bool {
	return attemptCtx.Err() == context.DeadlineExceeded && parent.Err() == nil
}

// timeoutReport is the synthetic report for an attempt that exceeded the
// per-attempt timeout. A timeout is treated identically to a validation
// failure for retry purposes.
func timeoutReport(attempt int) *ValidationReport {
	return &ValidationReport{
		Valid:    false,
		Errors:   []string{timeoutReportError},
		Metadata: map[string]interface{}{"attempt": attempt, "timeout": true},
	}
}

// generationFailureReport is the synthetic report recorded when the
// generator fails under the retry mode.
func generationFailureReport(attempt int, err error) *ValidationReport {
	return &ValidationReport{
		Valid:    false,
		Errors:   []string{"generation failed: " + err.Error()},
		Metadata: map[string]interface{}{"attempt": attempt, "generation_error": true},
	}
}

func (l *Loop) emitLoopEnd(outcome *Outcome) {
	l.emitter.Emit(EventLoopEnd, map[string]interface{}{
		"status":   string(outcome.Status),
		"attempts": outcome.Attempts,
	})
}
