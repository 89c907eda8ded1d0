// Package llmgen provides a genloop.Generator backed by the gollm library
// (github.com/teilomillet/gollm), supporting OpenAI, Anthropic, and other
// providers that gollm supports.
//
// The generator renders the request task into a prompt and, when feedback
// from a failed attempt is present, appends a correction block listing the
// previous attempt's validation errors so the model can self-correct.
//
// Transport problems (rate limits, server errors, timeouts) are classified
// into a retryable/fatal taxonomy and retried with exponential backoff
// inside a single loop attempt; only a call that still fails after
// transport retries surfaces to the loop as a generation failure.
//
// # Quick Start
//
//	gen, err := llmgen.New("anthropic", llmgen.WithModel("claude-opus-4-6"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	outcome, err := genloop.Run(ctx, genloop.Request{Task: "write a limerick"},
//	    gen, myValidator, genloop.DefaultRetryPolicy())
package llmgen
