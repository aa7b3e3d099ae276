package processor

import (
	"github.com/wgomg/notesift/internal/utils"
)

// EstimateTokens approximates the language-model token count of content.
func EstimateTokens(content string) int {
	cleanedUpContent := utils.CleanUp(content)

	wordCount := utils.CountWords(cleanedUpContent)
	estimatedTokens := utils.EstimateTokensFromWords(wordCount)

	return estimatedTokens
}

// ExceedsBudget reports whether content is longer than maxChars runes.
func ExceedsBudget(content string, maxChars int) bool {
	return maxChars >= 0 && len(utils.Truncate(content, maxChars)) < len(content)
}

// TruncateContext keeps the first maxChars runes of context. It is applied
// before retrieval so paragraph scoring never sees more than the prompt
// budget allows.
func TruncateContext(context string, maxChars int) string {
	return utils.Truncate(context, maxChars)
}
