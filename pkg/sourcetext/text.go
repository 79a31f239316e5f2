// Package sourcetext provides an immutable view of one file's content
// with an offset-to-position index. Diagnostic spans are byte offsets;
// editors want zero-based line/character pairs, so a Text is built once
// per analysis pass and consulted for every span.
package sourcetext

import (
	"sort"
	"unicode/utf8"

	"github.com/yaklabco/codelint/pkg/protocol"
)

// Text is immutable file content plus a line-start index.
// Construction is O(n) in the content length; each position lookup is
// O(log lines) plus a scan of the containing line.
type Text struct {
	content    string
	lineStarts []int
}

// NewText builds the line index for content.
func NewText(content string) *Text {
	// lineStarts[0] is always 0: even an empty document has one line.
	starts := []int{0}
	for idx := 0; idx < len(content); idx++ {
		if content[idx] == '\n' {
			starts = append(starts, idx+1)
		}
	}
	return &Text{content: content, lineStarts: starts}
}

// Content returns the underlying text.
func (t *Text) Content() string { return t.content }

// Len returns the content length in bytes.
func (t *Text) Len() int { return len(t.content) }

// LineCount returns the number of lines, counting a trailing line after
// a final newline.
func (t *Text) LineCount() int { return len(t.lineStarts) }

// PositionFor converts a byte offset into a zero-based line/character
// position. Character counts UTF-16 code units from the line start.
// Negative offsets map to the document start; offsets at or past the
// end of content clamp to the end of the last line. An offset landing
// inside a multi-byte rune resolves to that rune's position.
func (t *Text) PositionFor(offset int) protocol.Position {
	if offset < 0 {
		return protocol.Position{}
	}
	if offset > len(t.content) {
		offset = len(t.content)
	}

	// Greatest line start at or before offset.
	line := sort.Search(len(t.lineStarts), func(i int) bool {
		return t.lineStarts[i] > offset
	}) - 1

	character := 0
	for pos := t.lineStarts[line]; pos < offset; {
		r, size := utf8.DecodeRuneInString(t.content[pos:])
		if pos+size > offset {
			break
		}
		if r > 0xFFFF {
			character += 2
		} else {
			character++
		}
		pos += size
	}

	return protocol.Position{Line: line, Character: character}
}

// RangeFor converts a byte span into a protocol range. Both ends clamp
// the same way PositionFor does.
func (t *Text) RangeFor(start, end int) protocol.Range {
	return protocol.Range{
		Start: t.PositionFor(start),
		End:   t.PositionFor(end),
	}
}

// OffsetFor converts a position back into a byte offset, clamping the
// line into range and the character to the end of that line. It is the
// inverse of PositionFor for positions that fall on rune boundaries.
func (t *Text) OffsetFor(pos protocol.Position) int {
	if pos.Line < 0 {
		return 0
	}
	if pos.Line >= len(t.lineStarts) {
		return len(t.content)
	}

	lineStart := t.lineStarts[pos.Line]
	lineEnd := len(t.content)
	if pos.Line+1 < len(t.lineStarts) {
		// Exclude the newline itself.
		lineEnd = t.lineStarts[pos.Line+1] - 1
	}

	units := 0
	offset := lineStart
	for offset < lineEnd && units < pos.Character {
		r, size := utf8.DecodeRuneInString(t.content[offset:lineEnd])
		if r > 0xFFFF {
			units += 2
		} else {
			units++
		}
		offset += size
	}
	return offset
}

// LineContent returns the content of a zero-based line, excluding the
// trailing newline. Returns "" for out-of-range lines.
func (t *Text) LineContent(line int) string {
	if line < 0 || line >= len(t.lineStarts) {
		return ""
	}
	start := t.lineStarts[line]
	end := len(t.content)
	if line+1 < len(t.lineStarts) {
		end = t.lineStarts[line+1] - 1
	}
	if end > 0 && end <= len(t.content) && end > start && t.content[end-1] == '\r' {
		end--
	}
	return t.content[start:end]
}
