package genloop

import "testing"

func TestCandidateSignatureDeterministic(t *testing.T) {
	a := candidateSignature("same content")
	b := candidateSignature("same content")
	c := candidateSignature("other content")

	if a != b {
		t.Error("expected equal signatures for equal content")
	}
	if a == c {
		t.Error("expected different signatures for different content")
	}
}

func TestDetectStall(t *testing.T) {
	s1 := candidateSignature("one")
	s2 := candidateSignature("two")
	s3 := candidateSignature("three")

	tests := []struct {
		name   string
		sigs   []string
		window int
		want   bool
	}{
		{"too few attempts", []string{s1, s1}, 3, false},
		{"repeat length 1", []string{s1, s1, s1}, 3, true},
		{"repeat length 2", []string{s1, s2, s1, s2}, 4, true},
		{"no repeat", []string{s1, s2, s3}, 3, false},
		{"only tail repeats", []string{s3, s1, s1, s1}, 3, true},
		{"tail varies", []string{s1, s1, s1, s3}, 3, false},
	}

	for _, tt := range tests {
		if got := detectStall(tt.sigs, tt.window); got != tt.want {
			t.Errorf("%s: expected %v, got %v", tt.name, tt.want, got)
		}
	}
}
