package history

import (
	"context"
	"strings"

	"device-assistant-ai/internal/entity"
	"device-assistant-ai/internal/pkg/logger"
	"device-assistant-ai/internal/repository/contract"
	"device-assistant-ai/pkg/utils"
)

const (
	DefaultTurns       = 5
	DefaultTokenBudget = 1_000_000
)

// Loader reads prior turns of a conversation and packs them into a
// Q/A block that fits a token budget.
type Loader struct {
	repo        contract.ConversationRepository
	turns       int
	tokenBudget int
	logger      logger.ILogger
}

func NewLoader(repo contract.ConversationRepository, turns, tokenBudget int, log logger.ILogger) *Loader {
	if turns <= 0 {
		turns = DefaultTurns
	}
	if tokenBudget <= 0 {
		tokenBudget = DefaultTokenBudget
	}
	if log == nil {
		log = logger.NewNopLogger()
	}
	return &Loader{repo: repo, turns: turns, tokenBudget: tokenBudget, logger: log}
}

// Recent returns the newest turns first. Store failures are logged and read
// as an empty history.
func (l *Loader) Recent(ctx context.Context, conversationId string) []*entity.ConversationTurn {
	if strings.TrimSpace(conversationId) == "" {
		return nil
	}
	turns, err := l.repo.FetchRecent(ctx, conversationId, l.turns)
	if err != nil {
		l.logger.Error("HISTORY", "failed to load conversation history", map[string]interface{}{
			"conversation_id": conversationId,
			"error":           err.Error(),
		})
		return nil
	}
	return turns
}

// Load returns the formatted history block and how many turns it holds.
func (l *Loader) Load(ctx context.Context, conversationId string) (string, int) {
	kept := Budget(l.Recent(ctx, conversationId), l.tokenBudget)
	return Format(kept), len(kept)
}

// Budget drops turns missing either side, then keeps turns in order until
// the next one would push the running token count past budget.
func Budget(turns []*entity.ConversationTurn, budget int) []*entity.ConversationTurn {
	kept := make([]*entity.ConversationTurn, 0, len(turns))
	total := 0
	for _, t := range turns {
		if t == nil || strings.TrimSpace(t.Request) == "" || strings.TrimSpace(t.Response) == "" {
			continue
		}
		cost := utils.CountTokens(t.Request) + utils.CountTokens(t.Response)
		if total+cost > budget {
			break
		}
		kept = append(kept, t)
		total += cost
	}
	return kept
}

func Format(turns []*entity.ConversationTurn) string {
	blocks := make([]string, len(turns))
	for i, t := range turns {
		blocks[i] = "Q: " + t.Request + "\nA: " + t.Response
	}
	return strings.Join(blocks, "\n\n")
}
