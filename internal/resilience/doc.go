// Package resilience groups the fault tolerance patterns wrapped around
// summarization backends: circuit breakers and retry with exponential backoff.
//
// Usage Example:
//
//	cb := circuitbreaker.New(circuitbreaker.DefaultConfig("huggingface-api"))
//	candidates, err := circuitbreaker.Execute(cb, func() ([]Candidate, error) {
//	    return callModel()
//	})
//
//	err := retry.WithBackoff(ctx, retry.SummarizerConfig(3), func() error {
//	    return performOperation()
//	})
package resilience
