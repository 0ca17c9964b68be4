package assistant

import (
	"unicode/utf8"

	"github.com/akolosov/fincoach/internal/llm"
	"github.com/pkoukk/tiktoken-go"
)

// heuristicDivisor approximates tokens from runes when no encoding is
// available; ~4 characters per token holds for English prose.
const heuristicDivisor = 4

// Windower trims prior conversation turns to a token budget before they are
// sent to the model. Counting uses a tiktoken encoding when one can be
// loaded and falls back to a deterministic rune heuristic otherwise.
type Windower struct {
	enc    *tiktoken.Tiktoken
	budget int
}

// NewWindower builds a Windower with the given token budget. Encoding load
// failures are tolerated; the heuristic counter takes over.
func NewWindower(budget int) *Windower {
	enc, err := tiktoken.GetEncoding(tiktoken.MODEL_CL100K_BASE)
	if err != nil {
		enc = nil
	}
	return &Windower{enc: enc, budget: budget}
}

// CountTokens estimates the token cost of one message.
func (w *Windower) CountTokens(text string) int {
	if w.enc != nil {
		return len(w.enc.Encode(text, nil, nil))
	}
	return utf8.RuneCountInString(text)/heuristicDivisor + 1
}

// Trim returns the newest suffix of history that fits the budget, preserving
// order. The newest message is always kept, even when it alone exceeds the
// budget: dropping the turn being answered is never acceptable.
func (w *Windower) Trim(history []llm.Message) []llm.Message {
	if len(history) == 0 || w.budget <= 0 {
		return history[len(history):]
	}

	total := 0
	start := len(history)
	for i := len(history) - 1; i >= 0; i-- {
		cost := w.CountTokens(history[i].Content)
		if total+cost > w.budget && start < len(history) {
			break
		}
		total += cost
		start = i
	}

	return history[start:]
}
