package expansion

import (
	"regexp"
	"strings"
)

const expectedRephrasings = 3

var (
	numberPrefix = regexp.MustCompile(`^\s*\d+[.)]\s*`)
	lineEndings  = strings.NewReplacer("\r\n", "\n", "\r", "\n")
)

// ParseRephrasings pulls the numbered items out of a model reply. Only lines
// starting with 1, 2 or 3 count. Exactly three items are returned as-is;
// anything else collapses to the whole reply as a single variant.
//
// legacy reproduces the older character-set strip of '1', '2', '3', '.' and
// ' ' from both ends of the line, which also eats digits belonging to the
// text ("3 seconds" loses its 3). Kept only for output parity.
func ParseRephrasings(raw string, legacy bool) []string {
	raw = strings.TrimSpace(lineEndings.Replace(raw))

	var items []string
	for _, line := range strings.Split(raw, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || !strings.ContainsRune("123", rune(trimmed[0])) {
			continue
		}
		if legacy {
			items = append(items, strings.Trim(line, "123. "))
			continue
		}
		items = append(items, strings.TrimSpace(numberPrefix.ReplaceAllString(trimmed, "")))
	}

	if len(items) != expectedRephrasings {
		return []string{raw}
	}
	return items
}
