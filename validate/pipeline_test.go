package validate

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/martinemde/refinery/genloop"
)

func testCandidate(content string) *genloop.Candidate {
	return &genloop.Candidate{ID: "cand_test", Content: content}
}

func passingCheck() genloop.Validator {
	return Func(func(*genloop.Candidate) *genloop.ValidationReport {
		return genloop.ValidReport()
	})
}

func failingCheck(msg string) genloop.Validator {
	return Func(func(*genloop.Candidate) *genloop.ValidationReport {
		return genloop.InvalidReport(msg)
	})
}

func TestPipelineAllPass(t *testing.T) {
	p := NewPipeline().
		Add("a", passingCheck()).
		Add("b", passingCheck())

	report, err := p.Validate(context.Background(), testCandidate("x"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !report.Valid {
		t.Error("report should be valid when all checks pass")
	}
	if got := report.Metadata["checks"]; got != 2 {
		t.Errorf("checks metadata = %v, want 2", got)
	}
}

func TestPipelineMergesErrors(t *testing.T) {
	p := NewPipeline().
		Add("first", failingCheck("broke one way")).
		Add("second", failingCheck("broke another way"))

	report, err := p.Validate(context.Background(), testCandidate("x"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Valid {
		t.Error("report should be invalid")
	}
	if len(report.Errors) != 2 {
		t.Fatalf("got %d errors, want 2: %v", len(report.Errors), report.Errors)
	}
	if report.Errors[0] != "first: broke one way" {
		t.Errorf("errors[0] = %q, want check-name prefix", report.Errors[0])
	}
	if report.Errors[1] != "second: broke another way" {
		t.Errorf("errors[1] = %q, want check-name prefix", report.Errors[1])
	}
}

func TestPipelineFailFast(t *testing.T) {
	secondRan := false
	p := NewPipeline(FailFast()).
		Add("first", failingCheck("nope")).
		Add("second", Func(func(*genloop.Candidate) *genloop.ValidationReport {
			secondRan = true
			return genloop.ValidReport()
		}))

	report, err := p.Validate(context.Background(), testCandidate("x"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Valid {
		t.Error("report should be invalid")
	}
	if secondRan {
		t.Error("fail-fast pipeline should stop after the first invalid check")
	}
	if got := report.Metadata["checks"]; got != 1 {
		t.Errorf("checks metadata = %v, want 1", got)
	}
}

func TestPipelineCheckErrorPropagates(t *testing.T) {
	boom := errors.New("backend unavailable")
	crashing := genloop.ValidatorFunc(func(context.Context, *genloop.Candidate) (*genloop.ValidationReport, error) {
		return nil, boom
	})
	p := NewPipeline().Add("crashy", crashing)

	report, err := p.Validate(context.Background(), testCandidate("x"))
	if report != nil {
		t.Errorf("report = %v, want nil on check error", report)
	}
	if !errors.Is(err, boom) {
		t.Errorf("error = %v, want wrapped %v", err, boom)
	}
	if err == nil || !strings.Contains(err.Error(), "crashy") {
		t.Errorf("error %v should name the failing check", err)
	}
}

func TestPipelineNilReportIsError(t *testing.T) {
	broken := genloop.ValidatorFunc(func(context.Context, *genloop.Candidate) (*genloop.ValidationReport, error) {
		return nil, nil
	})
	p := NewPipeline().Add("broken", broken)

	if _, err := p.Validate(context.Background(), testCandidate("x")); err == nil {
		t.Error("expected error when a check returns neither report nor error")
	}
}

func TestPipelineCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	p := NewPipeline().Add("a", passingCheck())

	if _, err := p.Validate(ctx, testCandidate("x")); err != context.Canceled {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

func TestPipelineMetadataNamespaced(t *testing.T) {
	withMeta := Func(func(*genloop.Candidate) *genloop.ValidationReport {
		return &genloop.ValidationReport{
			Valid:    true,
			Metadata: map[string]interface{}{"score": 0.9},
		}
	})
	p := NewPipeline().Add("quality", withMeta)

	report, err := p.Validate(context.Background(), testCandidate("x"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := report.Metadata["quality.score"]; got != 0.9 {
		t.Errorf("metadata[quality.score] = %v, want 0.9", got)
	}
}
