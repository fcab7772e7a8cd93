package response

import (
	"fmt"
	"strings"
)

// minFragment is the smallest remaining budget worth a truncated block.
const minFragment = 100

// GenerationContext is the evidence block handed to the answer prompt.
type GenerationContext struct {
	Text    string
	Sources int
	Length  int
}

// BuildContext tags each non-empty chunk "[Source n]: ..." and joins the
// blocks with blank lines, stopping once budget characters are used. A chunk
// that does not fit is cut down and ended with "..." when more than
// minFragment characters remain. budget <= 0 means no limit.
func BuildContext(chunks []string, budget int) GenerationContext {
	var (
		parts  []string
		length int
	)

	for _, chunk := range chunks {
		if strings.TrimSpace(chunk) == "" {
			continue
		}

		sep := 0
		if len(parts) > 0 {
			sep = 2
		}
		block := fmt.Sprintf("[Source %d]: %s", len(parts)+1, chunk)
		size := len([]rune(block))

		if budget > 0 && length+sep+size > budget {
			remaining := budget - length - sep
			if remaining > minFragment {
				fragment := []rune(block)[:remaining-3]
				parts = append(parts, string(fragment)+"...")
				length += sep + remaining
			}
			break
		}

		parts = append(parts, block)
		length += sep + size
	}

	return GenerationContext{
		Text:    strings.Join(parts, "\n\n"),
		Sources: len(parts),
		Length:  length,
	}
}
