package response

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildContext_NumbersNonEmptyChunks(t *testing.T) {
	gc := BuildContext([]string{"reset button", "  ", "hold for 10s"}, 1000)

	assert.Equal(t, "[Source 1]: reset button\n\n[Source 2]: hold for 10s", gc.Text)
	assert.Equal(t, 2, gc.Sources)
	assert.Equal(t, len(gc.Text), gc.Length)
}

func TestBuildContext_Empty(t *testing.T) {
	gc := BuildContext(nil, 1000)

	assert.Equal(t, "", gc.Text)
	assert.Zero(t, gc.Sources)
}

func TestBuildContext_TruncatesWhenRoomRemains(t *testing.T) {
	first := "12345678" // "[Source 1]: 12345678" is 20 runes
	gc := BuildContext([]string{first, strings.Repeat("x", 300), "never"}, 150)

	assert.Equal(t, 2, gc.Sources)
	assert.Equal(t, 150, len([]rune(gc.Text)))
	assert.Equal(t, 150, gc.Length)
	assert.True(t, strings.HasSuffix(gc.Text, "..."))
	assert.NotContains(t, gc.Text, "never")
}

func TestBuildContext_StopsWhenLittleRoomRemains(t *testing.T) {
	gc := BuildContext([]string{"12345678", strings.Repeat("x", 300)}, 50)

	assert.Equal(t, "[Source 1]: 12345678", gc.Text)
	assert.Equal(t, 1, gc.Sources)
}

func TestBuildContext_CountsRunes(t *testing.T) {
	gc := BuildContext([]string{"ñandú"}, 0)

	assert.Equal(t, len([]rune("[Source 1]: ñandú")), gc.Length)
}
