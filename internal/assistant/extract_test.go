package assistant

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtract_NoDirective(t *testing.T) {
	t.Parallel()

	raw := "Index funds spread your money across many stocks.\n\nKey takeaways:\n- Low fees"
	got := Extract(raw)

	assert.Equal(t, raw, got.VisibleText, "clean input must pass through byte-for-byte")
	assert.Nil(t, got.Fact)
}

func TestExtract_SingleDirective(t *testing.T) {
	t.Parallel()

	got := Extract("Noted. [MEMORY: Location | Moved to Berlin] Let me know more.")

	assert.Equal(t, "Noted.  Let me know more.", got.VisibleText)
	require.NotNil(t, got.Fact)
	assert.Equal(t, "Location", got.Fact.Category)
	assert.Equal(t, "Moved to Berlin", got.Fact.Content)
}

func TestExtract_DirectiveAtEnd(t *testing.T) {
	t.Parallel()

	got := Extract("Congrats on the new job!\n\n[MEMORY: Income | Salary is $5000 per month]")

	assert.Equal(t, "Congrats on the new job!", got.VisibleText)
	require.NotNil(t, got.Fact)
	assert.Equal(t, "Income", got.Fact.Category)
	assert.Equal(t, "Salary is $5000 per month", got.Fact.Content)
}

func TestExtract_MultipleDirectives_FirstWinsAllStripped(t *testing.T) {
	t.Parallel()

	raw := "A [MEMORY: Location | Berlin] B [MEMORY: Income | 5000] C"
	got := Extract(raw)

	require.NotNil(t, got.Fact)
	assert.Equal(t, "Location", got.Fact.Category)
	assert.Equal(t, "Berlin", got.Fact.Content)
	// every directive span is removed, not just the first
	assert.Equal(t, "A  B  C", got.VisibleText)
	assert.NotContains(t, got.VisibleText, "MEMORY")
}

func TestExtract_EmptyContent(t *testing.T) {
	t.Parallel()

	got := Extract("Sure. [MEMORY: Location | ] Anything else?")

	assert.Nil(t, got.Fact, "empty content must not produce a fact")
	assert.Equal(t, "Sure.  Anything else?", got.VisibleText, "the span is still stripped")
}

func TestExtract_CaseSensitiveKeyword(t *testing.T) {
	t.Parallel()

	raw := "Noted. [memory: Location | Berlin]"
	got := Extract(raw)

	assert.Nil(t, got.Fact)
	assert.Equal(t, raw, got.VisibleText)
}

func TestExtract_DirectiveNeverSpansLines(t *testing.T) {
	t.Parallel()

	raw := "Noted. [MEMORY: Location |\nBerlin]"
	got := Extract(raw)

	assert.Nil(t, got.Fact)
	assert.Equal(t, raw, got.VisibleText)
}

func TestExtract_WhitespaceInsideDirective(t *testing.T) {
	t.Parallel()

	got := Extract("[MEMORY:   Goals   |   Buy a house in 5 years   ]")

	require.NotNil(t, got.Fact)
	assert.Equal(t, "Goals", got.Fact.Category)
	assert.Equal(t, "Buy a house in 5 years", got.Fact.Content)
	assert.Equal(t, "", got.VisibleText)
}
