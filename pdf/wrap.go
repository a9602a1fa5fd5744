package pdf

import (
	"strings"

	"github.com/muesli/reflow/ansi"
	"github.com/muesli/reflow/wrap"
)

const tabWidth = 4

// wrapCode hard-wraps a code line at cols columns.
func wrapCode(line string, cols int) []string {
	line = expandTabs(line)
	if cols <= 0 || ansi.PrintableRuneWidth(line) <= cols {
		return []string{line}
	}
	return strings.Split(wrap.String(line, cols), "\n")
}

func expandTabs(line string) string {
	if !strings.ContainsRune(line, '\t') {
		return line
	}
	var b strings.Builder
	col := 0
	for _, r := range line {
		if r == '\t' {
			n := tabWidth - col%tabWidth
			b.WriteString(strings.Repeat(" ", n))
			col += n
			continue
		}
		b.WriteRune(r)
		col++
	}
	return b.String()
}

// splitRunesToWidth breaks text into the longest prefixes accepted by fits.
// Every piece holds at least one rune.
func splitRunesToWidth(text string, fits func(string) bool) []string {
	var parts []string
	runes := []rune(text)
	for len(runes) > 0 {
		n := 1
		for n < len(runes) && fits(string(runes[:n+1])) {
			n++
		}
		parts = append(parts, string(runes[:n]))
		runes = runes[n:]
	}
	return parts
}
