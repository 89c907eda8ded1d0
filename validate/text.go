package validate

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/martinemde/refinery/genloop"
)

// Pattern validates that candidate content matches a regular expression.
type Pattern struct {
	re       *regexp.Regexp
	describe string
}

// NewPattern compiles the expression and returns a validator that
// requires content to match it. The description appears in validation
// errors so feedback tells the generator what was expected.
func NewPattern(expr, description string) (*Pattern, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", expr, err)
	}
	if description == "" {
		description = expr
	}
	return &Pattern{re: re, describe: description}, nil
}

// Validate implements genloop.Validator.
func (p *Pattern) Validate(_ context.Context, cand *genloop.Candidate) (*genloop.ValidationReport, error) {
	if p.re.MatchString(cand.Content) {
		return genloop.ValidReport(), nil
	}
	return genloop.InvalidReport(fmt.Sprintf("content does not match expected pattern: %s", p.describe)), nil
}

// RequireSubstrings returns a validator requiring every given substring
// to appear in the content. Each missing substring is its own error.
func RequireSubstrings(substrings ...string) genloop.Validator {
	return Func(func(cand *genloop.Candidate) *genloop.ValidationReport {
		report := &genloop.ValidationReport{Valid: true}
		for _, sub := range substrings {
			if !strings.Contains(cand.Content, sub) {
				report.Valid = false
				report.Errors = append(report.Errors, fmt.Sprintf("missing required text: %q", sub))
			}
		}
		return report
	})
}

// LengthBetween returns a validator requiring content length in
// [min, max] bytes. A max of 0 means unbounded.
func LengthBetween(min, max int) genloop.Validator {
	return Func(func(cand *genloop.Candidate) *genloop.ValidationReport {
		n := len(cand.Content)
		switch {
		case n < min:
			return genloop.InvalidReport(fmt.Sprintf("content too short: %d bytes, need at least %d", n, min))
		case max > 0 && n > max:
			return genloop.InvalidReport(fmt.Sprintf("content too long: %d bytes, limit is %d", n, max))
		default:
			return genloop.ValidReport()
		}
	})
}
