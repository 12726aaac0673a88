package braces

import "strings"

// indentUnit is the fallback indentation and the increment for space
// indented code.
const indentUnit = "    "

// Indentation holds the whitespace of a statement's line and that
// whitespace deepened by one level.
type Indentation struct {
	Base   string
	Nested string
}

// DeriveIndent inspects the line holding pos. Base is the leading run of
// spaces and tabs; Nested adds a tab when Base contains one and four
// spaces otherwise. When the line cannot be resolved Nested falls back to
// a single unit.
func DeriveIndent(sm *SourceMap, pos Position) Indentation {
	lineStart, ok := sm.LineStart(pos)
	if !ok {
		return Indentation{Nested: indentUnit}
	}

	prefix := sm.Text(lineStart, pos)
	n := 0
	for n < len(prefix) && (prefix[n] == ' ' || prefix[n] == '\t') {
		n++
	}
	base := prefix[:n]

	if strings.ContainsRune(base, '\t') {
		return Indentation{Base: base, Nested: base + "\t"}
	}
	return Indentation{Base: base, Nested: base + indentUnit}
}
