package braces

import (
	"bytes"
	"fmt"
	"sort"
)

// Edit is a pending insertion into the original text of a unit. Offsets
// always refer to the original bytes, never to partially rewritten text.
type Edit struct {
	// Offset is the byte index the text is inserted before.
	Offset int
	// Text is the inserted text.
	Text string
	// Open is true for the opening brace of a pair.
	Open bool

	// span of the wrapped clause, used to order insertions that share an offset.
	spanStart int
	spanEnd   int
}

// Kind returns "open" or "close".
func (e Edit) Kind() string {
	if e.Open {
		return "open"
	}
	return "close"
}

// before orders edits at the same offset: closing braces come first,
// inner clauses close before outer ones, outer clauses open before inner ones.
func (e Edit) before(o Edit) bool {
	if e.Offset != o.Offset {
		return e.Offset < o.Offset
	}
	if e.Open != o.Open {
		return !e.Open
	}
	if !e.Open {
		return e.spanStart > o.spanStart
	}
	return e.spanEnd > o.spanEnd
}

// EditError describes a staged edit that does not fit the source.
type EditError struct {
	Edit    Edit
	Message string
}

func (e *EditError) Error() string {
	return fmt.Sprintf("invalid %s edit at %d: %s", e.Edit.Kind(), e.Edit.Offset, e.Message)
}

// rewriteBuffer is the original text of one unit plus the insertions
// staged against it. Staged edits are never modified.
type rewriteBuffer struct {
	src   []byte
	edits []Edit
}

func newRewriteBuffer(src []byte) *rewriteBuffer {
	return &rewriteBuffer{src: src}
}

// insert stages an edit.
func (b *rewriteBuffer) insert(e Edit) {
	b.edits = append(b.edits, e)
}

// wrap stages the open and close edits of one clause.
func (b *rewriteBuffer) wrap(span Span, openAt Position, openText, closeText string) {
	b.insert(Edit{Offset: openAt.Offset, Text: openText, Open: true, spanStart: span.Start.Offset, spanEnd: span.End.Offset})
	b.insert(Edit{Offset: span.End.Offset, Text: closeText, spanStart: span.Start.Offset, spanEnd: span.End.Offset})
}

// sorted returns a copy of the staged edits in application order.
func (b *rewriteBuffer) sorted() []Edit {
	out := make([]Edit, len(b.edits))
	copy(out, b.edits)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].before(out[j])
	})
	return out
}

func (b *rewriteBuffer) validate() error {
	for _, e := range b.edits {
		if e.Offset < 0 {
			return &EditError{Edit: e, Message: "offset is negative"}
		}
		if e.Offset > len(b.src) {
			return &EditError{
				Edit:    e,
				Message: fmt.Sprintf("offset exceeds content length %d", len(b.src)),
			}
		}
	}
	return nil
}

// apply produces the rewritten text in a single pass over the original,
// copying original spans interleaved with inserted text in increasing
// offset order. changed is false when nothing was staged, in which case
// the original bytes are returned as is.
func (b *rewriteBuffer) apply() (out []byte, changed bool, err error) {
	if len(b.edits) == 0 {
		return b.src, false, nil
	}
	if err := b.validate(); err != nil {
		return nil, false, err
	}

	edits := b.sorted()
	grow := 0
	for _, e := range edits {
		grow += len(e.Text)
	}

	var buf bytes.Buffer
	buf.Grow(len(b.src) + grow)

	cursor := 0
	for _, e := range edits {
		buf.Write(b.src[cursor:e.Offset])
		buf.WriteString(e.Text)
		cursor = e.Offset
	}
	buf.Write(b.src[cursor:])

	return buf.Bytes(), true, nil
}
