package braces

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	sitter "github.com/smacker/go-tree-sitter"
)

// Style selects where braces are placed.
type Style string

const (
	// StyleAttach puts the opening brace at the end of the control
	// statement's header and aligns the closing brace with the header line.
	StyleAttach Style = "attach"

	// StyleWrap puts both braces around the clause in place, indented one
	// level deeper than the clause's own line.
	StyleWrap Style = "wrap"
)

// ParseStyle validates a style name. The empty string selects StyleAttach.
func ParseStyle(s string) (Style, error) {
	switch Style(strings.ToLower(strings.TrimSpace(s))) {
	case "", StyleAttach:
		return StyleAttach, nil
	case StyleWrap:
		return StyleWrap, nil
	default:
		return "", fmt.Errorf("unknown style %q (want attach or wrap)", s)
	}
}

// planner walks one unit and stages two edits per clause that needs braces.
type planner struct {
	sm     *SourceMap
	style  Style
	buf    *rewriteBuffer
	logger *log.Logger

	wrapped int
	skipped int
}

// walk visits every node depth first, classifying each control statement
// once.
func (p *planner) walk(n *sitter.Node) {
	if n == nil || n.ChildCount() == 0 {
		return
	}
	if isControl(n) {
		for _, c := range Classify(n) {
			p.plan(c)
		}
	}
	count := int(n.ChildCount())
	for i := 0; i < count; i++ {
		p.walk(n.Child(i))
	}
}

// plan stages the open and close edits for one clause, or skips it when
// its boundaries cannot be edited safely.
func (p *planner) plan(c Clause) {
	span, ok := ResolveBoundary(p.sm, c.Node)
	if !ok {
		p.skip(c, span.Start, span.End)
		return
	}
	// A recovered parse error in the header makes the clause boundaries
	// unreliable even when the clause itself parsed cleanly.
	if c.Stmt != nil && c.Stmt.HasError() {
		p.skip(c, Position{Offset: span.Start.Offset, Flags: PosInvalid}, span.End)
		return
	}

	eol := p.sm.Newline()
	if p.style == StyleWrap {
		ind := DeriveIndent(p.sm, span.Start)
		p.buf.wrap(span, span.Start, "{"+eol+ind.Nested, eol+ind.Nested+"}")
		p.wrapped++
		return
	}

	// The open brace goes after the header's last token, the close brace
	// lines up with the line the header starts on.
	head := headerEnd(p.sm, c.Node)
	if !head.Valid() {
		p.skip(c, head, span.End)
		return
	}
	ind := DeriveIndent(p.sm, headerStart(p.sm, c))
	if p.sm.SameLine(head, span.Start) {
		p.buf.wrap(span, span.Start, "{"+eol+ind.Nested, eol+ind.Base+"}")
	} else {
		p.buf.wrap(span, head, " {", eol+ind.Base+"}")
	}
	p.wrapped++
}

func (p *planner) skip(c Clause, start, end Position) {
	p.skipped++
	line, col := p.sm.LineCol(Position{Offset: int(c.Node.StartByte())})
	p.logger.Debug("clause left unbraced",
		"role", c.Role.String(),
		"line", line,
		"column", col,
		"macro", start.FromMacro() || end.FromMacro(),
		"invalid", !start.Valid() || !end.Valid(),
	)
}
