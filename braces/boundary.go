package braces

import sitter "github.com/smacker/go-tree-sitter"

// Span is the validated extent of a clause in the original text.
type Span struct {
	Start Position
	End   Position
}

// ResolveBoundary computes the span to wrap for a clause. It returns
// false when either end is invalid or comes from a macro expansion; such
// clauses are left untouched.
func ResolveBoundary(sm *SourceMap, clause *sitter.Node) (Span, bool) {
	start := sm.Begin(clause)
	end := sm.TokenEnd(clause)
	if !start.Editable() || !end.Editable() || start.Offset > end.Offset {
		return Span{Start: start, End: end}, false
	}
	return Span{Start: start, End: end}, true
}

// headerEnd returns the position just past the token that introduces
// clause: the closing parenthesis of a condition, else, or do.
func headerEnd(sm *SourceMap, clause *sitter.Node) Position {
	head := prevSignificant(clause)
	if head == nil || head.IsMissing() {
		return Position{Offset: -1, Flags: PosInvalid}
	}
	end := int(head.EndByte())
	if end > len(sm.src) {
		return Position{Offset: end, Flags: PosInvalid}
	}
	return Position{Offset: end}
}

// headerStart returns the position of the first token of the header that
// introduces c: the control statement itself for then and body clauses,
// the else keyword for an else clause.
func headerStart(sm *SourceMap, c Clause) Position {
	var head *sitter.Node
	if c.Role == RoleElse {
		head = prevSignificant(c.Node)
	} else {
		head = c.Stmt
	}
	if head == nil || head.IsMissing() {
		return Position{Offset: -1, Flags: PosInvalid}
	}
	start := int(head.StartByte())
	if start > len(sm.src) {
		return Position{Offset: start, Flags: PosInvalid}
	}
	return Position{Offset: start}
}
