package docstrfmt

import (
	"errors"
	"regexp"
	"strings"
	"unicode"
)

// ErrQuoteMismatch reports a docstring whose opening and closing
// triple-quote delimiters use different quote characters.
var ErrQuoteMismatch = errors.New("mismatched docstring quote style")

var (
	sentenceEnd    = regexp.MustCompile(`\.\s`)
	summaryNewline = regexp.MustCompile(`\s*\n\s*`)
)

// FormatDocstring returns the PEP 257 shaped version of a docstring
// token. The docstring includes its delimiters; indentation is the
// literal whitespace of the block the docstring sits in. An empty
// docstring formats to the empty string.
func FormatDocstring(indentation, docstring string) (string, error) {
	contents, err := stripDocstring(docstring)
	if err != nil {
		return "", err
	}
	if contents == "" {
		return "", nil
	}

	summary, description := splitSummaryAndDescription(contents)
	if description == "" {
		return `"""` + contents + `"""`, nil
	}

	lines := strings.Split(description, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRightFunc(indentNonIndented(line, indentation), unicode.IsSpace)
	}
	return `"""` + normalizeSummary(summary) + "\n\n" +
		strings.Join(lines, "\n") + "\n\n" +
		indentation + `"""`, nil
}

// stripDocstring returns the contents between the triple-quote
// delimiters, with surrounding whitespace trimmed.
func stripDocstring(docstring string) (string, error) {
	triple := `"""`
	if strings.HasPrefix(strings.TrimSpace(docstring), "'''") {
		triple = "'''"
		if !strings.HasSuffix(strings.TrimSpace(docstring), "'''") {
			return "", ErrQuoteMismatch
		}
	}
	_, rest, found := strings.Cut(docstring, triple)
	if !found {
		return "", ErrQuoteMismatch
	}
	last := strings.LastIndex(rest, triple)
	if last < 0 {
		return "", ErrQuoteMismatch
	}
	return strings.TrimSpace(rest[:last]), nil
}

// splitSummaryAndDescription splits on the first blank line, or failing
// that on the first period followed by a whitespace character. The
// sentence split is deliberately naive about abbreviations.
func splitSummaryAndDescription(contents string) (summary, description string) {
	lines := strings.Split(contents, "\n")
	if len(lines) > 1 && strings.TrimSpace(lines[1]) == "" {
		return lines[0], strings.Join(lines[2:], "\n")
	}
	if loc := sentenceEnd.FindStringIndex(contents); loc != nil {
		return strings.TrimSpace(contents[:loc[0]]) + ".", strings.TrimSpace(contents[loc[1]:])
	}
	return strings.TrimSpace(contents), ""
}

// normalizeSummary collapses line breaks into single spaces and makes
// sure the summary ends with a period.
func normalizeSummary(summary string) string {
	summary = summaryNewline.ReplaceAllString(strings.TrimSpace(summary), " ")
	if !strings.HasSuffix(summary, ".") {
		summary += "."
	}
	return summary
}

// indentNonIndented prefixes the indentation onto lines that carry
// none of their own; lines already indented are assumed intentional.
func indentNonIndented(line, indentation string) string {
	if strings.TrimLeftFunc(line, unicode.IsSpace) == line {
		return indentation + line
	}
	return line
}

// startsWithTriple reports whether the string literal opens with a
// triple-quote delimiter once surrounding whitespace is ignored.
func startsWithTriple(literal string) bool {
	trimmed := strings.TrimSpace(literal)
	return strings.HasPrefix(trimmed, `"""`) || strings.HasPrefix(trimmed, "'''")
}
