package assistant

import (
	"fmt"
	"strings"

	"github.com/akolosov/fincoach/internal/server/models"
)

const (
	memoryHeader = "=== USER LONG-TERM MEMORY ==="

	// emptyMemoryPlaceholder stands in for the fact list when the user has no
	// stored facts; the memory section is never rendered empty.
	emptyMemoryPlaceholder = "No prior context available."

	directiveInstruction = `INSTRUCTION: Use the above memory to personalize your response. If the user tells you a new important fact (e.g. "I moved to Berlin", "My salary is $5000"), reply normally but also output a special tag [MEMORY: category | content] at the end of your message so the system can save it.`
)

// RenderFacts renders memory facts one per line as "- [category] content".
func RenderFacts(facts []*models.MemoryFact) string {
	if len(facts) == 0 {
		return ""
	}
	lines := make([]string, 0, len(facts))
	for _, fact := range facts {
		lines = append(lines, fmt.Sprintf("- [%s] %s", fact.Category, fact.Content))
	}
	return strings.Join(lines, "\n")
}

// BuildSystemPrompt merges the persona/policy text with the current memory
// snapshot and the directive instruction. The concatenation order is fixed:
// persona, then memory section, then instruction.
func BuildSystemPrompt(persona string, facts []*models.MemoryFact) string {
	memorySection := RenderFacts(facts)
	if memorySection == "" {
		memorySection = emptyMemoryPlaceholder
	}

	var b strings.Builder
	b.WriteString(persona)
	b.WriteString("\n\n")
	b.WriteString(memoryHeader)
	b.WriteString("\n")
	b.WriteString(memorySection)
	b.WriteString("\n\n")
	b.WriteString(directiveInstruction)
	return b.String()
}
