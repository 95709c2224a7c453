package docstrfmt

import "strings"

// Format returns source with its docstrings reformatted and everything
// else reproduced byte for byte. A docstring is a triple-quoted string
// token whose immediately preceding token opened an indented block.
//
// On a tokenization error no partial output is returned; callers must
// not persist anything when err is non-nil.
func Format(source string) (string, error) {
	var out strings.Builder
	out.Grow(len(source))

	tok := NewTokenizer(source)
	lastRow, lastCol := 0, -1
	var prev Token
	for {
		tk, err := tok.Next()
		if err != nil {
			return "", err
		}
		if tk.Kind == KindEOF {
			break
		}

		// A token on a later row inherits no column; within a row the
		// gap to the cursor is refilled with spaces.
		if tk.StartRow > lastRow {
			lastCol = 0
		}
		if tk.StartCol > lastCol {
			out.WriteString(strings.Repeat(" ", tk.StartCol-lastCol))
		}

		if tk.Kind == KindString && startsWithTriple(tk.Text) && prev.Kind == KindIndent {
			formatted, err := FormatDocstring(prev.Text, tk.Text)
			if err != nil {
				return "", err
			}
			out.WriteString(formatted)
		} else {
			out.WriteString(tk.Text)
		}

		prev = tk
		lastRow, lastCol = tk.EndRow, tk.EndCol
	}
	return out.String(), nil
}
