// Package metrics holds the token accounting reported after model calls.
package metrics

// TokenUsage counts the tokens a single model call consumed. The provider
// reports these in its response metadata; when it omits them the caller
// substitutes local estimates.
type TokenUsage struct {
	PromptTokens     int `json:"promptTokens"`
	CompletionTokens int `json:"completionTokens"`
	TotalTokens      int `json:"totalTokens"`
}

// FromCounts derives the total from its two parts.
func FromCounts(prompt, completion int) TokenUsage {
	return TokenUsage{
		PromptTokens:     prompt,
		CompletionTokens: completion,
		TotalTokens:      prompt + completion,
	}
}

// IsZero reports whether the provider supplied no counts at all.
func (u TokenUsage) IsZero() bool {
	return u.PromptTokens == 0 && u.CompletionTokens == 0 && u.TotalTokens == 0
}
