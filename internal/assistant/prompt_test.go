package assistant

import (
	"strings"
	"testing"

	"github.com/akolosov/fincoach/internal/server/models"
	"github.com/stretchr/testify/assert"
)

func TestRenderFacts(t *testing.T) {
	t.Parallel()

	facts := []*models.MemoryFact{
		{Category: "Location", Content: "Moved to Berlin"},
		{Category: "General", Content: "Prefers index funds"},
	}

	got := RenderFacts(facts)
	assert.Equal(t, "- [Location] Moved to Berlin\n- [General] Prefers index funds", got)
}

func TestBuildSystemPrompt_EmptyMemory(t *testing.T) {
	t.Parallel()

	got := BuildSystemPrompt("persona text", nil)

	assert.Contains(t, got, emptyMemoryPlaceholder, "empty fact list renders the placeholder")
	assert.Contains(t, got, memoryHeader)
	assert.Contains(t, got, "[MEMORY: category | content]")
}

func TestBuildSystemPrompt_Ordering(t *testing.T) {
	t.Parallel()

	facts := []*models.MemoryFact{{Category: "Location", Content: "Berlin"}}
	got := BuildSystemPrompt("persona text", facts)

	personaIdx := strings.Index(got, "persona text")
	headerIdx := strings.Index(got, memoryHeader)
	factIdx := strings.Index(got, "- [Location] Berlin")
	instrIdx := strings.Index(got, "INSTRUCTION:")

	assert.True(t, personaIdx >= 0 && headerIdx > personaIdx && factIdx > headerIdx && instrIdx > factIdx,
		"order must be persona, memory header, facts, instruction; got %q", got)
}

func TestBuildSystemPrompt_Deterministic(t *testing.T) {
	t.Parallel()

	facts := []*models.MemoryFact{
		{Category: "A", Content: "first"},
		{Category: "B", Content: "second"},
	}

	assert.Equal(t, BuildSystemPrompt(Persona, facts), BuildSystemPrompt(Persona, facts))
}
