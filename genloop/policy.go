package genloop

import (
	"fmt"
	"math"
	"math/rand"
	"time"
)

// GeneratorErrorMode controls how the loop treats a failing generator call.
type GeneratorErrorMode string

const (
	// GeneratorErrorRetry records the failure as a failed attempt with a
	// synthetic report and keeps looping. This is the default.
	GeneratorErrorRetry GeneratorErrorMode = "retry"
	// GeneratorErrorAbort stops the loop immediately and propagates the
	// generator's error.
	GeneratorErrorAbort GeneratorErrorMode = "abort"
)

// ValidatorErrorMode controls how the loop treats a crashing validator.
type ValidatorErrorMode string

const (
	// ValidatorErrorFail propagates the validator's error immediately.
	// This is the default.
	ValidatorErrorFail ValidatorErrorMode = "fail"
	// ValidatorErrorInvalid converts a validator crash into an automatic
	// invalid report and keeps looping.
	ValidatorErrorInvalid ValidatorErrorMode = "invalid"
)

// RetryPolicy configures the loop's attempt budget and backoff behavior.
type RetryPolicy struct {
	MaxAttempts       int     // total attempts, must be >= 1
	BaseDelay         float64 // initial delay between attempts in seconds
	MaxDelay          float64 // maximum delay between attempts in seconds
	BackoffMultiplier float64 // exponential backoff factor
	Jitter            bool    // add random jitter to prevent thundering herd

	// Backoff, when set, overrides the exponential formula entirely.
	// It receives the 1-based attempt number that just failed.
	Backoff func(attempt int) time.Duration

	// AttemptTimeout, when positive, bounds each generate+validate pair.
	// A timed-out attempt consumes one attempt and is recorded as a
	// validation failure with a synthetic report.
	AttemptTimeout time.Duration

	GeneratorErrors GeneratorErrorMode
	ValidatorErrors ValidatorErrorMode

	// OnRetry is invoked before sleeping between attempts.
	OnRetry func(attempt int, report *ValidationReport, delay time.Duration)
}

// DefaultRetryPolicy returns the default policy: three attempts, 1s base
// delay doubling up to 60s with jitter, generator errors retryable,
// validator crashes fatal.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts:       3,
		BaseDelay:         1.0,
		MaxDelay:          60.0,
		BackoffMultiplier: 2.0,
		Jitter:            true,
		GeneratorErrors:   GeneratorErrorRetry,
		ValidatorErrors:   ValidatorErrorFail,
	}
}

// Validate checks the policy for structural problems.
func (p RetryPolicy) Validate() error {
	if p.MaxAttempts < 1 {
		return &ConfigurationError{LoopError: LoopError{
			Message: fmt.Sprintf("max attempts must be >= 1, got %d", p.MaxAttempts),
		}}
	}
	switch p.GeneratorErrors {
	case "", GeneratorErrorRetry, GeneratorErrorAbort:
	default:
		return &ConfigurationError{LoopError: LoopError{
			Message: fmt.Sprintf("unknown generator error mode %q", p.GeneratorErrors),
		}}
	}
	switch p.ValidatorErrors {
	case "", ValidatorErrorFail, ValidatorErrorInvalid:
	default:
		return &ConfigurationError{LoopError: LoopError{
			Message: fmt.Sprintf("unknown validator error mode %q", p.ValidatorErrors),
		}}
	}
	return nil
}

// Delay calculates the wait before the attempt following attempt n (1-based).
func (p RetryPolicy) Delay(attempt int) time.Duration {
	if p.Backoff != nil {
		return p.Backoff(attempt)
	}
	if p.BaseDelay <= 0 {
		return 0
	}
	delay := math.Min(p.BaseDelay*math.Pow(p.BackoffMultiplier, float64(attempt-1)), p.MaxDelay)
	if p.Jitter {
		// +/- 50% jitter
		delay = delay * (0.5 + rand.Float64()) // rand in [0,1) -> [0.5, 1.5)
	}
	return time.Duration(delay * float64(time.Second))
}

// generatorErrorMode returns the effective mode, defaulting to retry.
func (p RetryPolicy) generatorErrorMode() GeneratorErrorMode {
	if p.GeneratorErrors == "" {
		return GeneratorErrorRetry
	}
	return p.GeneratorErrors
}

// validatorErrorMode returns the effective mode, defaulting to fail-fast.
func (p RetryPolicy) validatorErrorMode() ValidatorErrorMode {
	if p.ValidatorErrors == "" {
		return ValidatorErrorFail
	}
	return p.ValidatorErrors
}
