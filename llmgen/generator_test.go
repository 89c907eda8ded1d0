package llmgen

import (
	"strings"
	"testing"

	"github.com/martinemde/refinery/genloop"
)

func TestBuildPromptNoFeedback(t *testing.T) {
	req := genloop.Request{Task: "write a haiku about Go"}
	prompt := BuildPrompt(req, nil)
	if prompt != "write a haiku about Go" {
		t.Errorf("prompt = %q, want the bare task text", prompt)
	}
}

func TestBuildPromptWithFeedback(t *testing.T) {
	req := genloop.Request{Task: "write a config file"}
	fb := &genloop.Feedback{
		Attempt: 1,
		Errors:  []string{"missing field: name"},
		Text:    "Attempt 1 failed validation with these errors:\n- missing field: name",
	}
	prompt := BuildPrompt(req, fb)

	if !strings.HasPrefix(prompt, "write a config file") {
		t.Error("prompt should start with the task text")
	}
	if !strings.Contains(prompt, "missing field: name") {
		t.Error("prompt should contain the validation error")
	}
	if !strings.Contains(prompt, "corrected version") {
		t.Error("prompt should contain the correction instruction")
	}
	if strings.Index(prompt, "write a config file") > strings.Index(prompt, "missing field") {
		t.Error("task text should come before the feedback block")
	}
}

func TestNewGenerator(t *testing.T) {
	gen, err := New("openai",
		WithAPIKey("test-key"),
		WithModel("gpt5"),
		WithMaxTokens(1024),
	)
	if err != nil {
		// gollm may refuse construction without real credentials depending
		// on version; treat as environmental.
		t.Logf("skipping: could not create generator: %v", err)
		t.Skip()
	}
	if gen.Provider() != "openai" {
		t.Errorf("Provider() = %q, want openai", gen.Provider())
	}
	if gen.Model() != "gpt-5.2" {
		t.Errorf("Model() = %q, want gpt-5.2 (alias resolved)", gen.Model())
	}
}

func TestNewGeneratorDefaultModel(t *testing.T) {
	gen, err := New("anthropic", WithAPIKey("test-key"))
	if err != nil {
		t.Logf("skipping: could not create generator: %v", err)
		t.Skip()
	}
	if gen.Model() != "claude-opus-4-6" {
		t.Errorf("Model() = %q, want catalog default claude-opus-4-6", gen.Model())
	}
}
