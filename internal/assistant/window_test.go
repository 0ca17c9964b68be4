package assistant

import (
	"strings"
	"testing"

	"github.com/akolosov/fincoach/internal/llm"
	"github.com/stretchr/testify/assert"
)

// newHeuristicWindower avoids the encoding download in tests; counting uses
// the rune heuristic, which is deterministic.
func newHeuristicWindower(budget int) *Windower {
	return &Windower{budget: budget}
}

func TestTrim_AllFit(t *testing.T) {
	t.Parallel()

	w := newHeuristicWindower(1000)
	history := []llm.Message{
		llm.UserMessage("hi"),
		llm.AssistantMessage("hello"),
	}

	got := w.Trim(history)
	assert.Equal(t, history, got)
}

func TestTrim_DropsOldestFirst(t *testing.T) {
	t.Parallel()

	big := strings.Repeat("word ", 400) // ~500 tokens heuristically
	w := newHeuristicWindower(600)
	history := []llm.Message{
		llm.UserMessage(big),
		llm.AssistantMessage(big),
		llm.UserMessage("latest question"),
	}

	got := w.Trim(history)
	assert.Len(t, got, 2, "only the newest turns fit")
	assert.Equal(t, "latest question", got[1].Content)
	assert.Equal(t, big, got[0].Content)
}

func TestTrim_NewestAlwaysKept(t *testing.T) {
	t.Parallel()

	big := strings.Repeat("word ", 400)
	w := newHeuristicWindower(10)
	history := []llm.Message{
		llm.UserMessage("old"),
		llm.UserMessage(big),
	}

	got := w.Trim(history)
	assert.Len(t, got, 1)
	assert.Equal(t, big, got[0].Content)
}

func TestTrim_Empty(t *testing.T) {
	t.Parallel()

	w := newHeuristicWindower(100)
	assert.Empty(t, w.Trim(nil))
}

func TestCountTokens_Heuristic(t *testing.T) {
	t.Parallel()

	w := newHeuristicWindower(100)
	assert.Equal(t, 1, w.CountTokens(""))
	assert.Equal(t, 3, w.CountTokens("12345678"))
}
