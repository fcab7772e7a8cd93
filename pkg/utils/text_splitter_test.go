package utils

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func words(n int) string {
	w := make([]string, n)
	for i := range w {
		w[i] = fmt.Sprintf("w%d", i)
	}
	return strings.Join(w, " ")
}

func TestSplitTokens(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		max       int
		overlap   int
		wantCount int
	}{
		{"empty", "   ", 512, 50, 0},
		{"single window", words(10), 512, 50, 1},
		{"exact window", words(512), 512, 50, 1},
		{"two windows", words(600), 512, 50, 2},
		{"three windows", words(1000), 512, 50, 3},
		{"overlap too large", words(10), 4, 4, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitTokens(tt.text, tt.max, tt.overlap)
			assert.Len(t, got, tt.wantCount)
			for _, c := range got {
				assert.LessOrEqual(t, CountTokens(c), tt.max)
			}
		})
	}
}

func TestSplitTokens_Overlap(t *testing.T) {
	got := SplitTokens(words(600), 512, 50)
	require.Len(t, got, 2)

	first := strings.Fields(got[0])
	second := strings.Fields(got[1])
	assert.Equal(t, "w0", first[0])
	assert.Equal(t, "w462", second[0])
	assert.Equal(t, first[462:], second[:50])
	assert.Equal(t, "w599", second[len(second)-1])
}

func TestSplitTokens_CollapsesWhitespace(t *testing.T) {
	assert.Equal(t, []string{"reset the router"}, SplitTokens(" reset\n\tthe  router ", 10, 2))
}
