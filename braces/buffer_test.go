package braces

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRewriteBufferApply(t *testing.T) {
	tests := []struct {
		name    string
		content string
		edits   []Edit
		want    string
		changed bool
	}{
		{
			name:    "no edits returns original",
			content: "x;",
			want:    "x;",
		},
		{
			name:    "insertions use original offsets",
			content: "abc",
			edits: []Edit{
				{Offset: 2, Text: "2"},
				{Offset: 0, Text: "0", Open: true},
				{Offset: 3, Text: "3"},
			},
			want:    "0ab2c3",
			changed: true,
		},
		{
			name:    "close before open at the same offset",
			content: "ab",
			edits: []Edit{
				{Offset: 1, Text: "{", Open: true, spanStart: 1, spanEnd: 2},
				{Offset: 1, Text: "}", spanStart: 0, spanEnd: 1},
			},
			want:    "a}{b",
			changed: true,
		},
		{
			name:    "inner clause closes first",
			content: "if (a) if (b) c;",
			edits: []Edit{
				{Offset: 16, Text: "[outer]", spanStart: 7, spanEnd: 16},
				{Offset: 16, Text: "[inner]", spanStart: 14, spanEnd: 16},
			},
			want:    "if (a) if (b) c;[inner][outer]",
			changed: true,
		},
		{
			name:    "outer clause opens first",
			content: "xy",
			edits: []Edit{
				{Offset: 1, Text: "[inner]", Open: true, spanStart: 1, spanEnd: 2},
				{Offset: 1, Text: "[outer]", Open: true, spanStart: 1, spanEnd: 3},
			},
			want:    "x[outer][inner]y",
			changed: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			buf := newRewriteBuffer([]byte(tc.content))
			for _, e := range tc.edits {
				buf.insert(e)
			}

			out, changed, err := buf.apply()
			require.NoError(t, err)
			require.Equal(t, tc.changed, changed)
			require.Equal(t, tc.want, string(out))
		})
	}
}

func TestRewriteBufferWrap(t *testing.T) {
	buf := newRewriteBuffer([]byte("if (a) b();"))
	span := Span{Start: Position{Offset: 7}, End: Position{Offset: 11}}
	buf.wrap(span, span.Start, "{ ", " }")

	out, changed, err := buf.apply()
	require.NoError(t, err)
	require.True(t, changed)
	require.Equal(t, "if (a) { b(); }", string(out))

	edits := buf.sorted()
	require.Len(t, edits, 2)
	require.Equal(t, "open", edits[0].Kind())
	require.Equal(t, "close", edits[1].Kind())
}

func TestRewriteBufferRejectsOutOfRange(t *testing.T) {
	for _, off := range []int{-1, 4} {
		buf := newRewriteBuffer([]byte("abc"))
		buf.insert(Edit{Offset: off, Text: "x"})

		_, _, err := buf.apply()
		var editErr *EditError
		require.ErrorAs(t, err, &editErr)
		require.Equal(t, off, editErr.Edit.Offset)
	}
}

func TestRewriteBufferSortedLeavesStagedOrder(t *testing.T) {
	buf := newRewriteBuffer([]byte("abc"))
	buf.insert(Edit{Offset: 2, Text: "b"})
	buf.insert(Edit{Offset: 1, Text: "a"})

	_ = buf.sorted()
	require.Equal(t, 2, buf.edits[0].Offset)
	require.Equal(t, 1, buf.edits[1].Offset)
}
