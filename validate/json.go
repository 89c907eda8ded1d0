package validate

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/martinemde/refinery/genloop"
)

// JSONShape validates that candidate content is a JSON object containing
// a set of required top-level keys.
type JSONShape struct {
	required []string
}

// NewJSONShape creates a validator requiring the given top-level keys.
// With no keys it only checks that the content is a JSON object.
func NewJSONShape(keys ...string) *JSONShape {
	return &JSONShape{required: keys}
}

// Validate implements genloop.Validator.
func (j *JSONShape) Validate(_ context.Context, cand *genloop.Candidate) (*genloop.ValidationReport, error) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal([]byte(cand.Content), &obj); err != nil {
		return genloop.InvalidReport(fmt.Sprintf("not a JSON object: %v", err)), nil
	}

	var missing []string
	for _, key := range j.required {
		if _, ok := obj[key]; !ok {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		report := &genloop.ValidationReport{Valid: false}
		for _, key := range missing {
			report.Errors = append(report.Errors, fmt.Sprintf("missing required key: %q", key))
		}
		return report, nil
	}

	return &genloop.ValidationReport{
		Valid: true,
		Metadata: map[string]interface{}{
			"keys": len(obj),
		},
	}, nil
}
