// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/chunkdoc

package chunkdoc

import (
	"html"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	// descriptionWrapWidth wraps plain description paragraphs at this width.
	descriptionWrapWidth = 100
	// descriptionListMarker is the normalized unordered list marker.
	descriptionListMarker = "-"
)

var (
	// markdownEscaper escapes CommonMark inline specials in plain text.
	markdownEscaper = strings.NewReplacer(
		`\`, `\\`,
		"`", "\\`",
		`*`, `\*`,
		`_`, `\_`,
		`[`, `\[`,
		`]`, `\]`,
		`<`, `\<`,
		`>`, `\>`,
		`|`, `\|`,
	)

	// mdxEscaper adds JSX expression and tag delimiters to markdown escaping.
	mdxEscaper = strings.NewReplacer(
		`\`, `\\`,
		"`", "\\`",
		`*`, `\*`,
		`_`, `\_`,
		`[`, `\[`,
		`]`, `\]`,
		`|`, `\|`,
		`{`, `\{`,
		`}`, `\}`,
		`<`, `&lt;`,
		`>`, `&gt;`,
	)

	// slotEscaper escapes text placed inside component slots as entities.
	slotEscaper = strings.NewReplacer(
		`&`, `&amp;`,
		`<`, `&lt;`,
		`>`, `&gt;`,
		`{`, `&#123;`,
		`}`, `&#125;`,
		`*`, `\*`,
		`_`, `\_`,
		"`", "\\`",
		`[`, `\[`,
		`]`, `\]`,
	)

	// mdxSourceEscaper protects JSX delimiters in markdown source outside code.
	mdxSourceEscaper = strings.NewReplacer(
		`{`, `\{`,
		`}`, `\}`,
		`<`, `&lt;`,
	)
)

// escapeText applies one escaping mode with the dialect native table.
func escapeText(text string, mode EscapeMode, native *strings.Replacer) string {
	switch mode {
	case EscapeRaw:
		return text
	case EscapeHTML:
		return html.EscapeString(text)
	case EscapeNative:
		return native.Replace(text)
	default:
		fail("unhandled escape mode %d", mode)
		return ""
	}
}

// sanitizeText trims and squashes repeated whitespace in plain text fields.
func sanitizeText(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// formatDescription wraps plain paragraphs and keeps markdown structures untouched.
func formatDescription(text string) string {
	text = strings.TrimSpace(normalizeLineEndings(text))
	if text == "" {
		return ""
	}

	out := make([]string, 0, 8)
	paragraph := make([]string, 0, 4)
	inFence := false

	flush := func() {
		if len(paragraph) == 0 {
			return
		}

		out = append(out, wrapParagraph(strings.Join(paragraph, " "), descriptionWrapWidth)...)
		paragraph = paragraph[:0]
	}

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimRight(raw, " \t")
		trimmed := strings.TrimSpace(line)

		switch {
		case strings.HasPrefix(trimmed, "```") || strings.HasPrefix(trimmed, "~~~"):
			flush()
			out = append(out, line)
			inFence = !inFence
		case inFence:
			out = append(out, line)
		case trimmed == "":
			flush()
			if len(out) > 0 && out[len(out)-1] != "" {
				out = append(out, "")
			}
		case isStructuredLine(line):
			flush()
			out = append(out, normalizeListMarker(line))
		default:
			paragraph = append(paragraph, trimmed)
		}
	}

	flush()
	return strings.Join(out, "\n")
}

// isStructuredLine reports whether line must bypass paragraph wrapping.
func isStructuredLine(line string) bool {
	if strings.HasPrefix(line, "    ") || strings.HasPrefix(line, "\t") {
		return true
	}

	trimmed := strings.TrimSpace(line)
	for _, prefix := range []string{"#", ">", "- ", "* ", "+ ", "|", "---", "***", "___"} {
		if strings.HasPrefix(trimmed, prefix) {
			return true
		}
	}

	return hasOrderedListPrefix(trimmed)
}

// normalizeListMarker rewrites unordered list bullets to the configured marker.
func normalizeListMarker(line string) string {
	trimmed := strings.TrimLeft(line, " ")
	indent := line[:len(line)-len(trimmed)]
	if len(trimmed) < 2 || trimmed[1] != ' ' {
		return line
	}

	switch trimmed[0] {
	case '*', '+', '-':
		return indent + descriptionListMarker + trimmed[1:]
	default:
		return line
	}
}

// hasOrderedListPrefix reports whether line starts with ordered list marker.
func hasOrderedListPrefix(line string) bool {
	index := 0
	for index < len(line) && line[index] >= '0' && line[index] <= '9' {
		index++
	}

	if index == 0 || index+1 >= len(line) {
		return false
	}

	return (line[index] == '.' || line[index] == ')') && line[index+1] == ' '
}

// wrapParagraph wraps one plain paragraph to max rune width.
func wrapParagraph(text string, width int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	out := make([]string, 0, 2)
	current := words[0]
	currentLen := utf8.RuneCountInString(current)
	for _, word := range words[1:] {
		wordLen := utf8.RuneCountInString(word)
		if currentLen+1+wordLen <= width {
			current += " " + word
			currentLen += 1 + wordLen
			continue
		}

		out = append(out, current)
		current = word
		currentLen = wordLen
	}

	return append(out, current)
}

// escapeMDXSource escapes JSX delimiters in markdown text outside fences and code spans.
func escapeMDXSource(text string) string {
	lines := strings.Split(text, "\n")
	inFence := false
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "```") || strings.HasPrefix(trimmed, "~~~") {
			inFence = !inFence
			continue
		}

		if inFence {
			continue
		}

		lines[i] = escapeOutsideCodeSpans(line, mdxSourceEscaper)
	}

	return strings.Join(lines, "\n")
}

// escapeOutsideCodeSpans applies replacer to text between backtick code spans.
func escapeOutsideCodeSpans(line string, replacer *strings.Replacer) string {
	parts := strings.Split(line, "`")
	if len(parts)%2 == 0 {
		// Unbalanced backticks: no code span can be trusted.
		return replacer.Replace(line)
	}

	for i := 0; i < len(parts); i += 2 {
		parts[i] = replacer.Replace(parts[i])
	}

	return strings.Join(parts, "`")
}

// inlineCode wraps text into a backtick code span that survives embedded backticks.
func inlineCode(text string) string {
	text = strings.ReplaceAll(normalizeLineEndings(text), "\n", " ")
	fence := strings.Repeat("`", longestRun(text, '`')+1)
	if strings.HasPrefix(text, "`") || strings.HasSuffix(text, "`") {
		return fence + " " + text + " " + fence
	}

	return fence + text + fence
}

// codeFence returns a fence longer than any backtick run inside code.
func codeFence(code string) string {
	return strings.Repeat("`", max(3, longestRun(code, '`')+1))
}

// longestRun returns the longest run length of r in text.
func longestRun(text string, r rune) int {
	longest, current := 0, 0
	for _, c := range text {
		if c != r {
			current = 0
			continue
		}

		current++
		longest = max(longest, current)
	}

	return longest
}

// normalizeLineEndings converts CRLF/CR to LF.
func normalizeLineEndings(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.ReplaceAll(text, "\r", "\n")
}

// normalizeMarkdownOutput collapses extra blank lines outside fenced blocks.
func normalizeMarkdownOutput(text string) string {
	lines := strings.Split(normalizeLineEndings(text), "\n")
	out := make([]string, 0, len(lines))

	inFence := false
	blank := false
	for _, raw := range lines {
		line := strings.TrimRight(raw, " \t")
		trimmed := strings.TrimSpace(line)

		if strings.HasPrefix(trimmed, "```") {
			inFence = !inFence
		}

		if !inFence && trimmed == "" {
			if !blank && len(out) > 0 {
				out = append(out, "")
			}

			blank = true
			continue
		}

		blank = false
		out = append(out, line)
	}

	return strings.TrimRight(strings.Join(out, "\n"), "\n")
}

// ensureTrailingNewline guarantees exactly one trailing newline in output.
func ensureTrailingNewline(value string) string {
	return strings.TrimRight(value, "\n") + "\n"
}

// anchor converts text into a lowercase URL and heading anchor slug.
func anchor(value string) string {
	trimmed := strings.TrimSpace(strings.ToLower(value))

	var out strings.Builder
	out.Grow(len(trimmed))

	lastDash := false
	for _, r := range trimmed {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r):
			out.WriteRune(r)
			lastDash = false
		case unicode.IsSpace(r), r == '-', r == '_', r == '/', r == '.':
			if lastDash || out.Len() == 0 {
				continue
			}

			out.WriteByte('-')
			lastDash = true
		}
	}

	return strings.Trim(out.String(), "-")
}

// joinID builds a hierarchical section identifier from prefix and segments.
func joinID(prefix string, segments ...string) string {
	out := prefix
	for _, segment := range segments {
		segment = anchor(segment)
		if segment == "" {
			continue
		}

		if out == "" {
			out = segment
			continue
		}

		out += "+" + segment
	}

	return out
}
