package braces

import (
	"bytes"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// PosFlags qualifies a Position.
type PosFlags uint8

const (
	// PosInvalid marks a position that could not be resolved against the
	// source text (error recovery, missing tokens, out of range).
	PosInvalid PosFlags = 1 << iota

	// PosMacro marks a position whose text is produced by a macro
	// expansion rather than spelled literally in the file.
	PosMacro
)

// Position is a byte offset into the original source of a unit.
type Position struct {
	Offset int
	Flags  PosFlags
}

// Valid reports whether the position resolved against the source.
func (p Position) Valid() bool {
	return p.Flags&PosInvalid == 0
}

// FromMacro reports whether the position lies inside a macro expansion.
func (p Position) FromMacro() bool {
	return p.Flags&PosMacro != 0
}

// Editable reports whether an edit may be anchored at p.
func (p Position) Editable() bool {
	return p.Flags == 0
}

// SourceMap maps syntax nodes of one unit back to its original text.
// It answers validity and macro-origin queries, resolves token ends and
// line starts, and gives raw access to the bytes between positions.
type SourceMap struct {
	src    []byte
	macros map[string]struct{}
	eol    string
}

// NewSourceMap creates a SourceMap over src. macros holds the names whose
// invocations count as macro expansions.
func NewSourceMap(src []byte, macros map[string]struct{}) *SourceMap {
	if macros == nil {
		macros = map[string]struct{}{}
	}
	return &SourceMap{src: src, macros: macros, eol: lineEnding(src)}
}

// Newline returns the line terminator inserted text should use: "\r\n"
// when the unit's first line ends that way, "\n" otherwise.
func (m *SourceMap) Newline() string {
	return m.eol
}

func lineEnding(src []byte) string {
	if i := bytes.IndexByte(src, '\n'); i > 0 && src[i-1] == '\r' {
		return "\r\n"
	}
	return "\n"
}

// Begin returns the position of the first byte of n.
func (m *SourceMap) Begin(n *sitter.Node) Position {
	if broken(n) {
		return Position{Offset: -1, Flags: PosInvalid}
	}
	first := firstLeaf(n)
	if first == nil || first.IsMissing() {
		return Position{Offset: int(n.StartByte()), Flags: PosInvalid}
	}
	pos := Position{Offset: int(first.StartByte())}
	if pos.Offset > len(m.src) {
		pos.Flags |= PosInvalid
		return pos
	}
	if strings.HasPrefix(n.Type(), "preproc_") || m.inMacro(first, n) {
		pos.Flags |= PosMacro
	}
	return pos
}

// TokenEnd returns the position just past the last token of n. A
// statement terminator that the grammar left outside n is included.
func (m *SourceMap) TokenEnd(n *sitter.Node) Position {
	if broken(n) {
		return Position{Offset: -1, Flags: PosInvalid}
	}
	last := lastLeaf(n)
	if last == nil || last.IsMissing() {
		return Position{Offset: int(n.EndByte()), Flags: PosInvalid}
	}

	pos := Position{Offset: int(last.EndByte())}
	if t := last.Type(); t != ";" && t != "}" {
		if next := nextSignificant(n); next != nil && next.Type() == ";" && !next.IsMissing() &&
			m.blank(pos.Offset, int(next.StartByte())) {
			pos.Offset = int(next.EndByte())
		}
	}
	if pos.Offset > len(m.src) {
		pos.Flags |= PosInvalid
		return pos
	}

	tok := last
	if tok.Type() == ";" {
		tok = prevLeaf(tok, n)
	}
	if strings.HasPrefix(n.Type(), "preproc_") || m.inMacro(tok, n) {
		pos.Flags |= PosMacro
	}
	return pos
}

// LineStart returns the position of the first byte of the line holding p.
func (m *SourceMap) LineStart(p Position) (Position, bool) {
	if !p.Valid() || p.Offset < 0 || p.Offset > len(m.src) {
		return Position{Offset: -1, Flags: PosInvalid}, false
	}
	start := bytes.LastIndexByte(m.src[:p.Offset], '\n') + 1
	return Position{Offset: start, Flags: p.Flags}, true
}

// Text returns the original bytes in [from, to).
func (m *SourceMap) Text(from, to Position) string {
	if from.Offset < 0 || to.Offset > len(m.src) || from.Offset > to.Offset {
		return ""
	}
	return string(m.src[from.Offset:to.Offset])
}

// SameLine reports whether no line break separates a and b.
func (m *SourceMap) SameLine(a, b Position) bool {
	if a.Offset > b.Offset {
		a, b = b, a
	}
	return !strings.ContainsRune(m.Text(a, b), '\n')
}

// LineCol converts p to a 1-based line and column.
func (m *SourceMap) LineCol(p Position) (int, int) {
	if p.Offset < 0 || p.Offset > len(m.src) {
		return 0, 0
	}
	head := m.src[:p.Offset]
	line := bytes.Count(head, []byte{'\n'}) + 1
	col := p.Offset - (bytes.LastIndexByte(head, '\n') + 1) + 1
	return line, col
}

// IsMacro reports whether name is a known macro of the unit.
func (m *SourceMap) IsMacro(name string) bool {
	_, ok := m.macros[name]
	return ok
}

func (m *SourceMap) blank(from, to int) bool {
	if from < 0 || to > len(m.src) || from > to {
		return false
	}
	return len(bytes.TrimSpace(m.src[from:to])) == 0
}

// inMacro reports whether tok, a token inside root, is spelled by a macro
// invocation: either the macro name itself or any token of a
// function-like macro call.
func (m *SourceMap) inMacro(tok, root *sitter.Node) bool {
	if tok == nil {
		return false
	}
	if m.isMacroName(tok) {
		return true
	}
	for cur := tok.Parent(); cur != nil; cur = cur.Parent() {
		t := cur.Type()
		if strings.HasPrefix(t, "preproc_") {
			return true
		}
		if t == "call_expression" {
			if fn := cur.ChildByFieldName("function"); fn != nil && m.isMacroName(fn) {
				return true
			}
		}
		if sameSpan(cur, root) {
			break
		}
	}
	return false
}

func (m *SourceMap) isMacroName(n *sitter.Node) bool {
	switch n.Type() {
	case "identifier", "type_identifier":
	default:
		return false
	}
	start, end := int(n.StartByte()), int(n.EndByte())
	if end > len(m.src) || start > end {
		return false
	}
	return m.IsMacro(string(m.src[start:end]))
}

// broken reports whether n cannot anchor an edit at all.
func broken(n *sitter.Node) bool {
	return n == nil || n.IsNull() || n.IsMissing() || n.Type() == "ERROR" || n.HasError()
}

func sameSpan(a, b *sitter.Node) bool {
	return a.StartByte() == b.StartByte() && a.EndByte() == b.EndByte() && a.Type() == b.Type()
}

func isComment(n *sitter.Node) bool {
	return n.Type() == "comment"
}

func firstLeaf(n *sitter.Node) *sitter.Node {
	for n != nil && n.ChildCount() > 0 {
		next := firstChild(n)
		if next == nil {
			break
		}
		n = next
	}
	return n
}

func lastLeaf(n *sitter.Node) *sitter.Node {
	for n != nil && n.ChildCount() > 0 {
		next := lastChild(n)
		if next == nil {
			break
		}
		n = next
	}
	return n
}

func firstChild(n *sitter.Node) *sitter.Node {
	count := int(n.ChildCount())
	for i := 0; i < count; i++ {
		if c := n.Child(i); c != nil && !isComment(c) {
			return c
		}
	}
	return nil
}

func lastChild(n *sitter.Node) *sitter.Node {
	for i := int(n.ChildCount()) - 1; i >= 0; i-- {
		if c := n.Child(i); c != nil && !isComment(c) {
			return c
		}
	}
	return nil
}

// prevSignificant returns the closest preceding sibling that is not a comment.
func prevSignificant(n *sitter.Node) *sitter.Node {
	for s := n.PrevSibling(); s != nil; s = s.PrevSibling() {
		if !isComment(s) {
			return s
		}
	}
	return nil
}

func nextSignificant(n *sitter.Node) *sitter.Node {
	for s := n.NextSibling(); s != nil; s = s.NextSibling() {
		if !isComment(s) {
			return s
		}
	}
	return nil
}

// prevLeaf returns the token before tok without leaving root.
func prevLeaf(tok, root *sitter.Node) *sitter.Node {
	for cur := tok; cur != nil && !sameSpan(cur, root); cur = cur.Parent() {
		if s := prevSignificant(cur); s != nil {
			return lastLeaf(s)
		}
	}
	return nil
}
