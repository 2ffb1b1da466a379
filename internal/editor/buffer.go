// Package editor is the plain-text buffer behind the note editor: a rune
// slice with a caret and a modified flag.
package editor

import "strings"

// Buffer holds editable text. The caret is a rune offset in [0, len].
type Buffer struct {
	runes    []rune
	caret    int
	modified bool
}

// New returns a buffer holding text with the caret at the end.
func New(text string) *Buffer {
	b := &Buffer{}
	b.SetText(text)
	return b
}

// SetText replaces the content, moves the caret to the end and clears the
// modified flag.
func (b *Buffer) SetText(text string) {
	b.runes = []rune(normalize(text))
	b.caret = len(b.runes)
	b.modified = false
}

// Text returns the content.
func (b *Buffer) Text() string { return string(b.runes) }

// Len returns the content length in runes.
func (b *Buffer) Len() int { return len(b.runes) }

// Caret returns the caret offset.
func (b *Buffer) Caret() int { return b.caret }

// SetCaret moves the caret, clamped to the content.
func (b *Buffer) SetCaret(i int) {
	b.caret = max(0, min(i, len(b.runes)))
}

// Modified reports whether the content changed since the last SetText or
// ClearModified.
func (b *Buffer) Modified() bool { return b.modified }

// ClearModified resets the modified flag.
func (b *Buffer) ClearModified() { b.modified = false }

// Insert puts s at the caret and moves the caret past it. Carriage returns
// are dropped.
func (b *Buffer) Insert(s string) {
	rs := []rune(normalize(s))
	if len(rs) == 0 {
		return
	}
	out := make([]rune, 0, len(b.runes)+len(rs))
	out = append(out, b.runes[:b.caret]...)
	out = append(out, rs...)
	out = append(out, b.runes[b.caret:]...)
	b.runes = out
	b.caret += len(rs)
	b.modified = true
}

// Backspace deletes the rune before the caret.
func (b *Buffer) Backspace() bool {
	if b.caret == 0 {
		return false
	}
	b.runes = append(b.runes[:b.caret-1], b.runes[b.caret:]...)
	b.caret--
	b.modified = true
	return true
}

// Delete deletes the rune after the caret.
func (b *Buffer) Delete() bool {
	if b.caret >= len(b.runes) {
		return false
	}
	b.runes = append(b.runes[:b.caret], b.runes[b.caret+1:]...)
	b.modified = true
	return true
}

// Left moves the caret one rune back.
func (b *Buffer) Left() { b.SetCaret(b.caret - 1) }

// Right moves the caret one rune forward.
func (b *Buffer) Right() { b.SetCaret(b.caret + 1) }

// Home moves the caret to the start of its line.
func (b *Buffer) Home() { b.caret = b.lineStart(b.caret) }

// End moves the caret to the end of its line.
func (b *Buffer) End() { b.caret = b.lineEnd(b.caret) }

// Up moves the caret to the previous line, keeping the column when the
// line is long enough.
func (b *Buffer) Up() {
	start := b.lineStart(b.caret)
	if start == 0 {
		b.caret = 0
		return
	}
	col := b.caret - start
	prevStart := b.lineStart(start - 1)
	b.caret = min(prevStart+col, start-1)
}

// Down moves the caret to the next line, keeping the column when the line
// is long enough.
func (b *Buffer) Down() {
	end := b.lineEnd(b.caret)
	if end == len(b.runes) {
		b.caret = end
		return
	}
	col := b.caret - b.lineStart(b.caret)
	nextStart := end + 1
	b.caret = min(nextStart+col, b.lineEnd(nextStart))
}

// LineCol returns the caret's zero-based line and column.
func (b *Buffer) LineCol() (line, col int) {
	for i := 0; i < b.caret; i++ {
		if b.runes[i] == '\n' {
			line++
			col = 0
			continue
		}
		col++
	}
	return line, col
}

func (b *Buffer) lineStart(i int) int {
	for i > 0 && b.runes[i-1] != '\n' {
		i--
	}
	return i
}

func (b *Buffer) lineEnd(i int) int {
	for i < len(b.runes) && b.runes[i] != '\n' {
		i++
	}
	return i
}

func normalize(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}
