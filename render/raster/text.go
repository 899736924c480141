package raster

import (
	"strings"

	"github.com/rivo/uniseg"
)

// ellipsis is ASCII because the fixed face has no U+2026 glyph.
const ellipsis = "..."

// layoutLines breaks text into at most maxLines lines no wider than width.
// maxLines <= 1 keeps a single line. When text does not fit and trim is set,
// the last line ends in an ellipsis; otherwise it is cut at the last whole
// grapheme.
func layoutLines(text string, width, maxLines int, trim bool, measure func(string) int) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	if maxLines <= 1 {
		line, _, _ := strings.Cut(text, "\n")
		return []string{fitLine(line, width, trim || line != text, trim, measure)}
	}

	var lines []string
	for para := range strings.SplitSeq(text, "\n") {
		lines = append(lines, wrap(para, width, measure)...)
	}
	if len(lines) <= maxLines {
		return lines
	}
	lines = lines[:maxLines]
	last := len(lines) - 1
	lines[last] = fitLine(lines[last], width, true, trim, measure)
	return lines
}

// wrap greedily fills lines word by word. A single word wider than width
// stays on its own line.
func wrap(para string, width int, measure func(string) int) []string {
	words := strings.Fields(para)
	if len(words) == 0 {
		return []string{""}
	}
	var lines []string
	cur := words[0]
	for _, w := range words[1:] {
		next := cur + " " + w
		if measure(next) <= width {
			cur = next
			continue
		}
		lines = append(lines, cur)
		cur = w
	}
	return append(lines, cur)
}

// fitLine shortens line to width. more marks text that continues past line,
// which earns an ellipsis even when line itself fits.
func fitLine(line string, width int, more, trim bool, measure func(string) int) string {
	if measure(line) <= width && !(more && trim) {
		return line
	}
	suffix := ""
	if trim {
		suffix = ellipsis
	}
	budget := width - measure(suffix)
	if measure(line) <= budget {
		return line + suffix
	}

	var b strings.Builder
	g := uniseg.NewGraphemes(line)
	for g.Next() {
		cluster := g.Str()
		if measure(b.String()+cluster) > budget {
			break
		}
		b.WriteString(cluster)
	}
	if b.Len() == 0 && !trim {
		return ""
	}
	return strings.TrimRight(b.String(), " ") + suffix
}
