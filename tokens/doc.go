// Package tokens provides character-ratio token estimation.
//
// Token estimation is based on the rule-of-thumb that approximately 4
// characters equals 1 token for English text. This provides a fast
// estimate without requiring a model-specific tokenizer. Estimates round
// up: ceil(chars / ratio).
//
// # Counter
//
// The Counter interface provides token counting methods:
//
//	counter := tokens.NewEstimatingCounter()
//	count := counter.Count("Hello, world!")     // ~4 tokens
//	fits := counter.FitsInLimit("text", 1000)   // true if <= 1000 tokens
//
// For one-off counting, use the convenience functions:
//
//	count := tokens.EstimateTokens("Hello, world!")
//	count := tokens.EstimateChars(5000)
//
// The estimator is a pure function with no error conditions: empty or
// absent text yields 0.
//
// # Capacity
//
// Capacity relates used tokens to a context-window ceiling, with
// warning-threshold buckets for display:
//
//	c := tokens.Capacity{Limit: 32000, Used: 27000}
//	c.Remaining() // 5000
//	c.Status()    // StatusNearing
package tokens
