package editor

import "strings"

// Line is one visual line of wrapped text. Start is the rune offset of its
// first rune in the buffer.
type Line struct {
	Text  string
	Start int
}

// Wrap breaks text into visual lines no wider than width as reported by
// measure. Breaks prefer the last space; a word wider than width is split.
// Hard newlines always break.
func Wrap(text string, width float64, measure func(string) float64) []Line {
	var out []Line
	offset := 0
	for _, para := range strings.Split(text, "\n") {
		rs := []rune(para)
		if len(rs) == 0 {
			out = append(out, Line{Start: offset})
		}
		for start := 0; start < len(rs); {
			end := fit(rs[start:], width, measure)
			if end < len(rs)-start {
				if sp := lastSpace(rs[start : start+end]); sp > 0 {
					end = sp + 1
				}
			}
			out = append(out, Line{Text: string(rs[start : start+end]), Start: offset + start})
			start += end
		}
		offset += len(rs) + 1
	}
	return out
}

// fit returns how many leading runes of rs fit in width, at least one.
func fit(rs []rune, width float64, measure func(string) float64) int {
	n := 1
	for n < len(rs) && measure(string(rs[:n+1])) <= width {
		n++
	}
	return n
}

func lastSpace(rs []rune) int {
	for i := len(rs) - 1; i >= 0; i-- {
		if rs[i] == ' ' {
			return i
		}
	}
	return -1
}

// CaretPosition returns the visual line index and the text before the caret
// on that line.
func CaretPosition(lines []Line, caret int) (int, string) {
	for i := len(lines) - 1; i >= 0; i-- {
		if caret >= lines[i].Start {
			rs := []rune(lines[i].Text)
			col := min(caret-lines[i].Start, len(rs))
			return i, string(rs[:col])
		}
	}
	return 0, ""
}
