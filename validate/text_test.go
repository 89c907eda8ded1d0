package validate

import (
	"context"
	"testing"
)

func TestPatternMatch(t *testing.T) {
	v, err := NewPattern(`^package \w+`, "a Go package clause")
	if err != nil {
		t.Fatalf("NewPattern: %v", err)
	}

	report, err := v.Validate(context.Background(), testCandidate("package main\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !report.Valid {
		t.Errorf("matching content reported invalid: %v", report.Errors)
	}
}

func TestPatternNoMatch(t *testing.T) {
	v, err := NewPattern(`^package \w+`, "a Go package clause")
	if err != nil {
		t.Fatalf("NewPattern: %v", err)
	}

	report, err := v.Validate(context.Background(), testCandidate("import \"fmt\"\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Valid {
		t.Fatal("non-matching content reported valid")
	}
	if len(report.Errors) != 1 {
		t.Fatalf("got %d errors, want 1", len(report.Errors))
	}
}

func TestPatternBadExpression(t *testing.T) {
	if _, err := NewPattern(`[unclosed`, ""); err == nil {
		t.Error("expected error for invalid regular expression")
	}
}

func TestRequireSubstrings(t *testing.T) {
	v := RequireSubstrings("func main", "package main")

	report, err := v.Validate(context.Background(), testCandidate("package main\nfunc main() {}\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !report.Valid {
		t.Errorf("report invalid: %v", report.Errors)
	}

	report, err = v.Validate(context.Background(), testCandidate("package main\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Valid {
		t.Fatal("report should be invalid with a missing substring")
	}
	if len(report.Errors) != 1 {
		t.Errorf("got %d errors, want 1: %v", len(report.Errors), report.Errors)
	}
}

func TestLengthBetween(t *testing.T) {
	v := LengthBetween(5, 10)

	tests := []struct {
		content string
		valid   bool
	}{
		{"hello", true},
		{"helloworld", true},
		{"hi", false},
		{"hello world!", false},
	}
	for _, tt := range tests {
		report, err := v.Validate(context.Background(), testCandidate(tt.content))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if report.Valid != tt.valid {
			t.Errorf("LengthBetween(5,10) on %q: valid = %v, want %v", tt.content, report.Valid, tt.valid)
		}
	}
}

func TestLengthBetweenUnboundedMax(t *testing.T) {
	v := LengthBetween(1, 0)
	report, err := v.Validate(context.Background(), testCandidate("a very long string that should still pass"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !report.Valid {
		t.Error("max of 0 should mean unbounded length")
	}
}
