package genloop

import (
	"strings"
	"testing"
)

func TestFeedbackFromReport(t *testing.T) {
	report := InvalidReport("missing semicolon", "undefined variable x")
	fb := FeedbackFromReport(2, report, 0)

	if fb.Attempt != 2 {
		t.Errorf("expected attempt 2, got %d", fb.Attempt)
	}
	if !sameErrors(fb.Errors, []string{"missing semicolon", "undefined variable x"}) {
		t.Errorf("expected verbatim errors, got %v", fb.Errors)
	}
	for _, e := range report.Errors {
		if !strings.Contains(fb.Text, e) {
			t.Errorf("expected text to contain %q", e)
		}
	}
	if !strings.Contains(fb.Text, "Attempt 2") {
		t.Errorf("expected attempt number in text, got %q", fb.Text)
	}
}

func TestFeedbackFromReportCopiesErrors(t *testing.T) {
	report := InvalidReport("one")
	fb := FeedbackFromReport(1, report, 0)
	fb.Errors[0] = "mutated"
	if report.Errors[0] != "one" {
		t.Error("feedback must not alias the report's error slice")
	}
}

func TestFeedbackFromReportNoErrors(t *testing.T) {
	fb := FeedbackFromReport(1, &ValidationReport{Valid: false}, 0)
	if len(fb.Errors) != 0 {
		t.Errorf("expected no errors, got %v", fb.Errors)
	}
	if fb.Text == "" {
		t.Error("expected generic text for a report without errors")
	}
}

func TestFeedbackTruncation(t *testing.T) {
	huge := strings.Repeat("x", 5000)
	fb := FeedbackFromReport(1, InvalidReport(huge, huge, huge), 1000)

	if len(fb.Text) > 1100 {
		t.Errorf("expected truncated text near 1000 chars, got %d", len(fb.Text))
	}
	if !strings.Contains(fb.Text, "feedback truncated") {
		t.Error("expected truncation marker in text")
	}
	// Verbatim errors survive truncation untouched.
	if len(fb.Errors) != 3 || len(fb.Errors[0]) != 5000 {
		t.Error("expected errors to remain verbatim")
	}
}

func TestFeedbackBelowLimitNotTruncated(t *testing.T) {
	fb := FeedbackFromReport(1, InvalidReport("short"), 1000)
	if strings.Contains(fb.Text, "truncated") {
		t.Errorf("unexpected truncation: %q", fb.Text)
	}
}
