package transform

import "github.com/randalmurphal/promptkit/truncate"

// BudgetName is the conventional registry name for a Budget transformer.
const BudgetName = "budget"

// Budget returns a transformer that truncates text to maxTokens estimated
// tokens using strategy. A maxTokens <= 0 disables truncation.
//
// Register it after Trim so the budget applies to the final text:
//
//	transform.Builtins().Extend(registry.NewEntry(transform.BudgetName, transform.Budget(2000, truncate.FromMiddle)))
func Budget(maxTokens int, strategy truncate.Strategy) Transformer {
	return BudgetWith(truncate.New(strategy), maxTokens)
}

// BudgetWith is like Budget but uses a configured truncator.
func BudgetWith(t *truncate.Truncator, maxTokens int) Transformer {
	if maxTokens <= 0 {
		return func(text string) string { return text }
	}
	return func(text string) string {
		out, _ := t.Truncate(text, maxTokens)
		return out
	}
}
