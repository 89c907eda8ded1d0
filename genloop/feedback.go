package genloop

import (
	"fmt"
	"strings"
)

// DefaultFeedbackLimit caps the rendered feedback text so validator output
// cannot grow the next prompt without bound.
const DefaultFeedbackLimit = 8192

// Feedback carries a failed attempt's validation errors forward to the
// next generation call. Errors holds the report's errors verbatim; Text is
// a rendered (and possibly truncated) form suitable for prompt injection.
type Feedback struct {
	Attempt int      `json:"attempt"`
	Errors  []string `json:"errors"`
	Text    string   `json:"text"`
}

// FeedbackFromReport derives feedback from a failed attempt's report.
// maxChars bounds the rendered text; pass 0 for DefaultFeedbackLimit.
func FeedbackFromReport(attempt int, report *ValidationReport, maxChars int) *Feedback {
	if maxChars <= 0 {
		maxChars = DefaultFeedbackLimit
	}
	errs := make([]string, len(report.Errors))
	copy(errs, report.Errors)
	return &Feedback{
		Attempt: attempt,
		Errors:  errs,
		Text:    truncateFeedback(renderFeedback(attempt, errs), maxChars),
	}
}

// renderFeedback formats the errors as a correction block.
func renderFeedback(attempt int, errors []string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Attempt %d failed validation", attempt)
	if len(errors) == 0 {
		sb.WriteString(" (the validator reported no specific errors).")
		return sb.String()
	}
	sb.WriteString(" with these errors:\n")
	for _, e := range errors {
		sb.WriteString("- ")
		sb.WriteString(e)
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

// truncateFeedback applies head/tail truncation when the rendered text
// exceeds maxChars, keeping the first and last errors visible.
func truncateFeedback(text string, maxChars int) string {
	if len(text) <= maxChars {
		return text
	}
	half := maxChars / 2
	removed := len(text) - maxChars
	return text[:half] +
		fmt.Sprintf("\n[... feedback truncated, %d characters removed ...]\n", removed) +
		text[len(text)-half:]
}
