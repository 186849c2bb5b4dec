package rendering

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// BoldKeywords wraps each matched keyword occurrence in escapedText with
// \textbf{...}. escapedText must already be LaTeX-escaped; the keywords are
// escaped here before matching so they line up with the escaped text.
//
// Keywords are processed longest first so a longer phrase ("react native")
// is bolded whole instead of being split by one of its substrings ("react").
// Occurrences inside an already inserted \textbf{...} are left alone.
// Matching is case-insensitive; the replacement preserves the original casing
// found in the text.
func BoldKeywords(escapedText string, keywords []string) string {
	if escapedText == "" || len(keywords) == 0 {
		return escapedText
	}

	sorted := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		if strings.TrimSpace(kw) != "" {
			sorted = append(sorted, kw)
		}
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return len(sorted[i]) > len(sorted[j])
	})

	for _, kw := range sorted {
		escapedText = boldOccurrences(escapedText, EscapeLaTeX(kw))
	}
	return escapedText
}

// boldOccurrences replaces every case-insensitive occurrence of needle in
// text with \textbf{<original match>}, skipping occurrences that fall inside
// an existing \textbf command or its argument.
func boldOccurrences(text, needle string) string {
	if needle == "" {
		return text
	}

	lowerNeedle := strings.ToLower(needle)
	lowerText, offsets := foldWithOffsets(text)
	spans := boldSpans(text)

	var result strings.Builder
	result.Grow(len(text) + len(text)/4)

	written := 0 // bytes of text copied into result so far
	lpos := 0    // search cursor in lowerText
	for {
		idx := strings.Index(lowerText[lpos:], lowerNeedle)
		if idx < 0 {
			result.WriteString(text[written:])
			break
		}
		ls := lpos + idx
		le := ls + len(lowerNeedle)
		start, end := offsets[ls], offsets[le]
		lpos = le
		if insideSpan(spans, start, end) {
			continue
		}
		result.WriteString(text[written:start])
		result.WriteString(`\textbf{`)
		result.WriteString(text[start:end])
		result.WriteString(`}`)
		written = end
	}

	return result.String()
}

// foldWithOffsets lowercases text and maps every byte of the lowered form
// back to the byte offset of its originating rune in text. Some runes change
// byte length when lowered (Kelvin sign to "k"), so folded match positions
// cannot be used to slice the original directly. The extra trailing entry
// maps one past the end so match ends resolve too.
func foldWithOffsets(text string) (string, []int) {
	var b strings.Builder
	b.Grow(len(text))
	offsets := make([]int, 0, len(text)+1)
	for i, r := range text {
		lowered := unicode.ToLower(r)
		for n := utf8.RuneLen(lowered); n > 0; n-- {
			offsets = append(offsets, i)
		}
		b.WriteRune(lowered)
	}
	offsets = append(offsets, len(text))
	return b.String(), offsets
}

// boldSpans returns the [start, end) ranges covering each \textbf{...},
// command name included, brace depth respected. Escaped literal braces come
// in balanced pairs, so the depth count survives them.
func boldSpans(text string) [][2]int {
	const marker = `\textbf{`
	var spans [][2]int
	pos := 0
	for {
		idx := strings.Index(text[pos:], marker)
		if idx < 0 {
			return spans
		}
		start := pos + idx
		depth := 1
		i := start + len(marker)
		for i < len(text) && depth > 0 {
			switch text[i] {
			case '{':
				depth++
			case '}':
				depth--
			}
			i++
		}
		spans = append(spans, [2]int{start, i})
		pos = i
	}
}

func insideSpan(spans [][2]int, start, end int) bool {
	for _, s := range spans {
		if start >= s[0] && end <= s[1] {
			return true
		}
	}
	return false
}
