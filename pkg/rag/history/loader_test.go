package history

import (
	"context"
	"errors"
	"testing"

	"device-assistant-ai/internal/entity"
	"device-assistant-ai/internal/repository/specification"

	"github.com/stretchr/testify/assert"
)

type stubRepo struct {
	turns     []*entity.ConversationTurn
	err       error
	lastLimit int
}

func (s *stubRepo) FindAll(context.Context, ...specification.Specification) ([]*entity.ConversationTurn, error) {
	return s.turns, s.err
}

func (s *stubRepo) FetchRecent(_ context.Context, _ string, limit int) ([]*entity.ConversationTurn, error) {
	s.lastLimit = limit
	return s.turns, s.err
}

func turn(q, a string) *entity.ConversationTurn {
	return &entity.ConversationTurn{Request: q, Response: a}
}

func TestBudget_GreedyStopsAtFirstOverflow(t *testing.T) {
	turns := []*entity.ConversationTurn{
		turn("one two", "three"),       // 3
		turn("four five six", "seven"), // 4 -> 7
		turn("a", "b"),                 // 2 -> 9, over 8
		turn("c", "d"),
	}

	kept := Budget(turns, 8)

	assert.Len(t, kept, 2)
}

func TestBudget_SkipsEmptySides(t *testing.T) {
	turns := []*entity.ConversationTurn{
		turn("", "orphan answer"),
		turn("orphan question", "  "),
		nil,
		turn("q", "a"),
	}

	kept := Budget(turns, 100)

	assert.Equal(t, []*entity.ConversationTurn{turns[3]}, kept)
}

func TestFormat(t *testing.T) {
	out := Format([]*entity.ConversationTurn{turn("q1", "a1"), turn("q2", "a2")})
	assert.Equal(t, "Q: q1\nA: a1\n\nQ: q2\nA: a2", out)
	assert.Equal(t, "", Format(nil))
}

func TestLoader_Load(t *testing.T) {
	repo := &stubRepo{turns: []*entity.ConversationTurn{turn("newest q", "newest a"), turn("older q", "older a")}}
	l := NewLoader(repo, 0, 0, nil)

	block, n := l.Load(context.Background(), "conv")

	assert.Equal(t, 2, n)
	assert.Equal(t, DefaultTurns, repo.lastLimit)
	assert.Equal(t, "Q: newest q\nA: newest a\n\nQ: older q\nA: older a", block)
}

func TestLoader_StoreErrorIsEmptyHistory(t *testing.T) {
	l := NewLoader(&stubRepo{err: errors.New("db down")}, 5, 100, nil)

	block, n := l.Load(context.Background(), "conv")

	assert.Zero(t, n)
	assert.Empty(t, block)
}

func TestLoader_BlankConversationId(t *testing.T) {
	repo := &stubRepo{turns: []*entity.ConversationTurn{turn("q", "a")}}
	l := NewLoader(repo, 5, 100, nil)

	_, n := l.Load(context.Background(), " ")
	assert.Zero(t, n)
	assert.Zero(t, repo.lastLimit)
}
