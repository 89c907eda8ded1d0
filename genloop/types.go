package genloop

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Request describes the artifact the caller wants generated. The loop does
// not interpret Task; it is passed through to the generator unchanged.
type Request struct {
	Task     string            `json:"task"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// Candidate is the generator's output for a single attempt, with provenance.
type Candidate struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	Attempt   int       `json:"attempt"`
	CreatedAt time.Time `json:"created_at"`
}

// NewCandidate creates a Candidate with a fresh ID and timestamp.
// Generators may also return a bare &Candidate{Content: ...}; the loop
// stamps any provenance fields left unset.
func NewCandidate(content string) *Candidate {
	return &Candidate{
		ID:        "cand_" + uuid.New().String()[:8],
		Content:   content,
		CreatedAt: time.Now(),
	}
}

// stamp fills in provenance fields the generator left unset.
func (c *Candidate) stamp(attempt int) {
	c.Attempt = attempt
	if c.ID == "" {
		c.ID = "cand_" + uuid.New().String()[:8]
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now()
	}
}

// ValidationReport is the verdict on one candidate. A report is produced
// fresh per attempt and never mutated after creation.
type ValidationReport struct {
	Valid    bool                   `json:"valid"`
	Errors   []string               `json:"errors,omitempty"`
	Warnings []string               `json:"warnings,omitempty"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

// ValidReport creates a passing report.
func ValidReport() *ValidationReport {
	return &ValidationReport{Valid: true}
}

// InvalidReport creates a failing report with the given errors.
func InvalidReport(errors ...string) *ValidationReport {
	return &ValidationReport{Valid: false, Errors: errors}
}

// Generator produces one candidate per attempt. The feedback argument is
// nil on the first attempt and carries the previous attempt's validation
// errors afterwards so the generator can self-correct.
type Generator interface {
	Generate(ctx context.Context, req Request, feedback *Feedback) (*Candidate, error)
}

// Validator renders a verdict on one candidate. A non-nil error means the
// validator itself broke, which is distinct from the candidate being
// invalid; an invalid candidate is a report with Valid == false.
type Validator interface {
	Validate(ctx context.Context, cand *Candidate) (*ValidationReport, error)
}

// GeneratorFunc adapts a function to the Generator interface.
type GeneratorFunc func(ctx context.Context, req Request, feedback *Feedback) (*Candidate, error)

// Generate calls f.
func (f GeneratorFunc) Generate(ctx context.Context, req Request, feedback *Feedback) (*Candidate, error) {
	return f(ctx, req, feedback)
}

// ValidatorFunc adapts a function to the Validator interface.
type ValidatorFunc func(ctx context.Context, cand *Candidate) (*ValidationReport, error)

// Validate calls f.
func (f ValidatorFunc) Validate(ctx context.Context, cand *Candidate) (*ValidationReport, error) {
	return f(ctx, cand)
}
