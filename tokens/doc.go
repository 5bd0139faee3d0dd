// Package tokens estimates how many model tokens a prompt will use.
//
// Estimation is based on the rule of thumb that approximately 4 characters
// equal 1 token for English text. It needs no model-specific tokenizer and
// rounds up, so a prompt that fits the estimate rarely overflows in practice.
//
//	counter := tokens.NewEstimatingCounter()
//	counter.Count("Hello, world!")        // 4
//	counter.FitsInLimit(prompt, 2000)
//
// For one-off counting:
//
//	tokens.Estimate("Hello, world!")
//
// Any type with a Count method can replace the estimator, for example a real
// tokenizer wrapped to the Counter interface.
package tokens
