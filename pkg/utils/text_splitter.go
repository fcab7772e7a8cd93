package utils

import "strings"

// SplitTokens cuts text into windows of at most maxTokens whitespace-separated
// tokens. Consecutive windows share overlap tokens. Windows are re-joined with
// single spaces.
func SplitTokens(text string, maxTokens int, overlap int) []string {
	tokens := strings.Fields(text)
	if len(tokens) == 0 || maxTokens <= 0 {
		return []string{}
	}

	step := maxTokens - overlap
	if step <= 0 {
		step = maxTokens // overlap >= window would never advance
	}

	var chunks []string
	for start := 0; start < len(tokens); start += step {
		end := start + maxTokens
		if end > len(tokens) {
			end = len(tokens)
		}

		chunks = append(chunks, strings.Join(tokens[start:end], " "))

		if end == len(tokens) {
			break
		}
	}

	return chunks
}

// CountTokens is the whitespace token count used by SplitTokens.
func CountTokens(text string) int {
	return len(strings.Fields(text))
}
