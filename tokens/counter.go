package tokens

import (
	"math"
	"unicode/utf8"
)

// DefaultCharsPerToken is the default character-to-token ratio.
const DefaultCharsPerToken = 4.0

// Counter counts tokens in text.
type Counter interface {
	Count(text string) int
}

// EstimatingCounter estimates tokens from the rune count.
type EstimatingCounter struct {
	// CharsPerToken is the average number of characters per token.
	CharsPerToken float64
}

// NewEstimatingCounter creates a counter using DefaultCharsPerToken.
func NewEstimatingCounter() *EstimatingCounter {
	return &EstimatingCounter{CharsPerToken: DefaultCharsPerToken}
}

// NewEstimatingCounterWithRatio creates a counter with a custom ratio.
// A ratio <= 0 falls back to DefaultCharsPerToken.
func NewEstimatingCounterWithRatio(charsPerToken float64) *EstimatingCounter {
	if charsPerToken <= 0 {
		charsPerToken = DefaultCharsPerToken
	}
	return &EstimatingCounter{CharsPerToken: charsPerToken}
}

// Count returns the estimated token count, rounded up.
// Runes are counted rather than bytes so non-ASCII text is not overcounted.
func (c *EstimatingCounter) Count(text string) int {
	ratio := c.CharsPerToken
	if ratio <= 0 {
		ratio = DefaultCharsPerToken
	}
	return int(math.Ceil(float64(utf8.RuneCountInString(text)) / ratio))
}

// FitsInLimit reports whether text is estimated to fit in limit tokens.
func (c *EstimatingCounter) FitsInLimit(text string, limit int) bool {
	return c.Count(text) <= limit
}

// Estimate counts tokens with the default estimator.
func Estimate(text string) int {
	return NewEstimatingCounter().Count(text)
}
