package document

import (
	"strings"
	"unicode/utf8"
)

// Measurer reports the rendered width of a string in points. The renderer
// supplies the implementation so wrapping matches the fonts it draws with.
type Measurer interface {
	StringWidth(s string, f Font) float64
}

// Wrap splits s into lines no wider than width, breaking on spaces and,
// for words longer than a line, inside the word. Explicit newlines are kept.
// An empty string yields no lines.
func Wrap(m Measurer, s string, f Font, width float64) []string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	if strings.TrimSpace(s) == "" {
		return nil
	}

	var lines []string
	for _, para := range strings.Split(s, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}

		cur := ""
		for _, w := range words {
			candidate := w
			if cur != "" {
				candidate = cur + " " + w
			}
			if m.StringWidth(candidate, f) <= width {
				cur = candidate
				continue
			}
			if cur != "" {
				lines = append(lines, cur)
				cur = ""
			}
			// The word alone may still be too long.
			for m.StringWidth(w, f) > width {
				head, tail := splitToWidth(m, w, f, width)
				lines = append(lines, head)
				w = tail
			}
			cur = w
		}
		if cur != "" {
			lines = append(lines, cur)
		}
	}
	return lines
}

// splitToWidth returns the longest prefix of w that fits width, at least one
// rune, and the remainder.
func splitToWidth(m Measurer, w string, f Font, width float64) (string, string) {
	end := 0
	for end < len(w) {
		_, size := utf8.DecodeRuneInString(w[end:])
		next := end + size
		if end > 0 && m.StringWidth(w[:next], f) > width {
			break
		}
		end = next
	}
	return w[:end], w[end:]
}
