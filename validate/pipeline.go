package validate

import (
	"context"
	"fmt"
	"time"

	"github.com/martinemde/refinery/genloop"
)

// Func adapts a plain function into a genloop.Validator that cannot fail
// operationally. Checks that only inspect content in memory have no
// crash mode, so only a report is produced.
type Func func(cand *genloop.Candidate) *genloop.ValidationReport

// Validate implements genloop.Validator.
func (f Func) Validate(_ context.Context, cand *genloop.Candidate) (*genloop.ValidationReport, error) {
	return f(cand), nil
}

type namedValidator struct {
	name      string
	validator genloop.Validator
}

// Pipeline runs a sequence of named validators against a candidate and
// merges their reports. Errors and warnings from each check are prefixed
// with the check name so feedback tells the generator which check failed.
type Pipeline struct {
	checks   []namedValidator
	failFast bool
}

// PipelineOption configures a Pipeline.
type PipelineOption func(*Pipeline)

// FailFast stops the pipeline at the first check that reports invalid.
// By default all checks run so the generator sees every error at once.
func FailFast() PipelineOption {
	return func(p *Pipeline) { p.failFast = true }
}

// NewPipeline creates an empty pipeline.
func NewPipeline(opts ...PipelineOption) *Pipeline {
	p := &Pipeline{}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Add appends a named check to the pipeline and returns the pipeline for
// chaining.
func (p *Pipeline) Add(name string, v genloop.Validator) *Pipeline {
	p.checks = append(p.checks, namedValidator{name: name, validator: v})
	return p
}

// Validate implements genloop.Validator. A check that returns an
// operational error aborts the pipeline; the error is wrapped with the
// check name and surfaced to the loop as a validator failure.
func (p *Pipeline) Validate(ctx context.Context, cand *genloop.Candidate) (*genloop.ValidationReport, error) {
	start := time.Now()
	merged := &genloop.ValidationReport{
		Valid:    true,
		Metadata: map[string]interface{}{},
	}

	ran := 0
	for _, check := range p.checks {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		report, err := check.validator.Validate(ctx, cand)
		if err != nil {
			return nil, fmt.Errorf("check %s: %w", check.name, err)
		}
		if report == nil {
			return nil, fmt.Errorf("check %s returned no report", check.name)
		}
		ran++

		if !report.Valid {
			merged.Valid = false
		}
		for _, e := range report.Errors {
			merged.Errors = append(merged.Errors, check.name+": "+e)
		}
		for _, w := range report.Warnings {
			merged.Warnings = append(merged.Warnings, check.name+": "+w)
		}
		for k, v := range report.Metadata {
			merged.Metadata[check.name+"."+k] = v
		}

		if p.failFast && !report.Valid {
			break
		}
	}

	merged.Metadata["checks"] = ran
	merged.Metadata["duration_ms"] = time.Since(start).Milliseconds()
	return merged, nil
}
