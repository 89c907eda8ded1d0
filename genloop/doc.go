// Package genloop implements a validated generation loop: a bounded-retry
// control loop that couples an imperfect external generator to a validation
// gate, feeding validator errors back into subsequent generation attempts.
//
// The loop is deliberately small. It owns attempt accounting, feedback
// derivation, backoff, cancellation, and outcome construction; everything
// domain-specific lives behind two injected capabilities:
//
//   - Generator: produces one Candidate per attempt, optionally steered by
//     feedback from the previous attempt's validation errors.
//   - Validator: renders a ValidationReport verdict on one Candidate.
//
// # Architecture
//
// The package is organized around these core concepts:
//
//   - Loop: the orchestrator. Runs up to RetryPolicy.MaxAttempts
//     generate/validate rounds and returns exactly one Outcome.
//   - RetryPolicy: typed configuration with documented defaults, including
//     exponential backoff and the error-handling modes for generator and
//     validator crashes.
//   - Outcome: the terminal result as an ordinary value. Exhausting the
//     retry budget is not an error; it is an Outcome carrying the full
//     per-attempt report history.
//   - EventEmitter: typed event stream for host application integration.
//
// # Quick Start
//
//	outcome, err := genloop.Run(ctx, genloop.Request{Task: "write a haiku"},
//	    myGenerator, myValidator, genloop.DefaultRetryPolicy())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if outcome.Succeeded() {
//	    fmt.Println(outcome.Candidate.Content)
//	}
//
// For event observation, construct a Loop directly:
//
//	loop := genloop.New(myGenerator, myValidator)
//	defer loop.Close()
//
//	go func() {
//	    for event := range loop.Events() {
//	        fmt.Printf("[%s] %v\n", event.Kind, event.Data)
//	    }
//	}()
//	outcome, err := loop.Run(ctx, genloop.Request{Task: "write a haiku"})
package genloop
