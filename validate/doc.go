// Package validate provides concrete genloop.Validator implementations:
// tree-sitter syntax checking, JSON shape checking, text pattern checks,
// and a pipeline that composes named validators into a single merged
// report.
//
// # Architecture
//
//   - Func: adapter for plain validation functions
//   - Pipeline: runs named validators in order and merges their reports
//   - Syntax: parses candidate content with tree-sitter and reports
//     syntax errors with line and column positions
//   - JSONShape: checks that content is valid JSON with required keys
//   - Pattern, RequireSubstrings, LengthBetween: lightweight text checks
//
// # Quick Start
//
//	syntax, err := validate.NewSyntax("go", validate.WithFenceExtraction())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	pipeline := validate.NewPipeline().
//	    Add("syntax", syntax).
//	    Add("length", validate.LengthBetween(1, 10000))
//	outcome, err := genloop.Run(ctx, req, gen, pipeline, genloop.DefaultRetryPolicy())
package validate
