package assistant

import (
	"regexp"
	"strings"
)

// directivePattern matches a memory directive embedded in model output:
// [MEMORY: <category> | <content>]. The keyword is case-sensitive, the
// directive never spans lines, and neither field may contain ']' or '|'.
var directivePattern = regexp.MustCompile(`\[MEMORY:\s*([^|\]\n]*?)\s*\|\s*([^|\]\n]*?)\s*\]`)

// Fact is a durable fact mined from model output.
type Fact struct {
	Category string
	Content  string
}

// Extraction is the tagged result of scanning one model reply.
type Extraction struct {
	// VisibleText is the reply with every directive span removed and the
	// surrounding whitespace trimmed. When no directive is present it equals
	// the raw input byte-for-byte.
	VisibleText string

	// Fact is the extracted fact, nil when the reply carried none.
	Fact *Fact
}

// Extract scans raw model output for memory directives.
//
// Only the first directive is honored as a fact; every directive span is
// stripped from the visible text so control syntax never leaks to the user,
// even when the model emits several. A directive with empty content yields
// no fact but is still stripped.
func Extract(raw string) Extraction {
	matches := directivePattern.FindAllStringSubmatchIndex(raw, -1)
	if len(matches) == 0 {
		return Extraction{VisibleText: raw}
	}

	// submatch index pairs: [0,1] whole span, [2,3] category, [4,5] content
	first := matches[0]
	category := raw[first[2]:first[3]]
	content := raw[first[4]:first[5]]

	var fact *Fact
	if content != "" {
		fact = &Fact{Category: category, Content: content}
	}

	var b strings.Builder
	b.Grow(len(raw))
	prev := 0
	for _, m := range matches {
		b.WriteString(raw[prev:m[0]])
		prev = m[1]
	}
	b.WriteString(raw[prev:])

	return Extraction{
		VisibleText: strings.TrimSpace(b.String()),
		Fact:        fact,
	}
}
