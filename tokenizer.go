package docstrfmt

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnterminatedString reports a string literal with no closing delimiter.
	ErrUnterminatedString = errors.New("unterminated string literal")
	// ErrInconsistentIndent reports an unindent that matches no outer level.
	ErrInconsistentIndent = errors.New("unindent does not match any outer indentation level")
)

// Tokenizer scans source text into a lazy stream of position-annotated
// tokens. The stream is lossless: every non-whitespace byte of the input
// belongs to exactly one token, and inter-token gaps are horizontal
// whitespace that reassembly refills from the token positions.
type Tokenizer struct {
	src          string
	pos          int
	row          int // 1-based
	col          int // 0-based byte column
	indents      []int
	depth        int // open bracket depth
	atLineStart  bool
	continuation bool // previous line ended with backslash-newline
	pending      []Token
	done         bool
	err          error
}

// NewTokenizer returns a tokenizer positioned at the start of source.
func NewTokenizer(source string) *Tokenizer {
	return &Tokenizer{
		src:         source,
		row:         1,
		indents:     []int{0},
		atLineStart: true,
	}
}

// Next returns the next token. After the input is exhausted it returns
// a KindEOF token; after an error it keeps returning the same error.
func (t *Tokenizer) Next() (Token, error) {
	if t.err != nil {
		return Token{}, t.err
	}
	for len(t.pending) == 0 && !t.done {
		if err := t.scan(); err != nil {
			t.err = err
			return Token{}, err
		}
	}
	if len(t.pending) > 0 {
		tok := t.pending[0]
		t.pending = t.pending[1:]
		return tok, nil
	}
	return Token{Kind: KindEOF, StartRow: t.row, StartCol: t.col, EndRow: t.row, EndCol: t.col}, nil
}

// Tokenize scans the whole source eagerly. The EOF token is not included.
func Tokenize(source string) ([]Token, error) {
	tok := NewTokenizer(source)
	var tokens []Token
	for {
		tk, err := tok.Next()
		if err != nil {
			return nil, err
		}
		if tk.Kind == KindEOF {
			return tokens, nil
		}
		tokens = append(tokens, tk)
	}
}

func (t *Tokenizer) push(tok Token) {
	t.pending = append(t.pending, tok)
}

func (t *Tokenizer) scan() error {
	if t.pos >= len(t.src) {
		t.finish()
		return nil
	}
	if t.atLineStart {
		return t.scanLineStart()
	}
	return t.scanToken()
}

// scanLineStart measures leading whitespace and applies indentation
// tracking. Blank and comment-only lines never open or close a block,
// and neither do continuation lines or lines inside brackets.
func (t *Tokenizer) scanLineStart() error {
	i := t.pos
	for i < len(t.src) && isLineSpace(t.src[i]) {
		i++
	}
	width := i - t.pos
	if i >= len(t.src) {
		t.pos = i
		t.col += width
		t.finish()
		return nil
	}
	switch t.src[i] {
	case '\n':
		t.pos = i
		t.col += width
		t.emitNewline()
		return nil
	case '\r':
		if i+1 < len(t.src) && t.src[i+1] == '\n' {
			t.pos = i
			t.col += width
			t.push(Token{Kind: KindOp, Text: "\r", StartRow: t.row, StartCol: t.col, EndRow: t.row, EndCol: t.col + 1})
			t.pos++
			t.col++
			t.emitNewline()
			return nil
		}
	case '#':
		t.pos = i
		t.col += width
		t.scanComment()
		t.atLineStart = false
		return nil
	}
	if t.depth == 0 && !t.continuation {
		if err := t.updateIndent(t.src[t.pos:i]); err != nil {
			return err
		}
	}
	t.continuation = false
	t.pos = i
	t.col += width
	t.atLineStart = false
	return nil
}

func (t *Tokenizer) updateIndent(ws string) error {
	width := len(ws)
	top := t.indents[len(t.indents)-1]
	switch {
	case width > top:
		t.indents = append(t.indents, width)
		t.push(Token{Kind: KindIndent, Text: ws, StartRow: t.row, StartCol: 0, EndRow: t.row, EndCol: width})
	case width < top:
		for len(t.indents) > 1 && t.indents[len(t.indents)-1] > width {
			t.indents = t.indents[:len(t.indents)-1]
			t.push(Token{Kind: KindDedent, StartRow: t.row, StartCol: width, EndRow: t.row, EndCol: width})
		}
		if t.indents[len(t.indents)-1] != width {
			return fmt.Errorf("line %d: %w", t.row, ErrInconsistentIndent)
		}
	}
	return nil
}

func (t *Tokenizer) scanToken() error {
	for t.pos < len(t.src) && isLineSpace(t.src[t.pos]) {
		t.pos++
		t.col++
	}
	if t.pos >= len(t.src) {
		t.finish()
		return nil
	}
	c := t.src[t.pos]
	switch {
	case c == '\n':
		t.emitNewline()
	case c == '#':
		t.scanComment()
	case c == '\\' && t.pos+1 < len(t.src) && t.src[t.pos+1] == '\n':
		// Kept as a token so reassembly stays byte-lossless.
		t.push(Token{Kind: KindOp, Text: "\\\n", StartRow: t.row, StartCol: t.col, EndRow: t.row + 1, EndCol: 0})
		t.pos += 2
		t.row++
		t.col = 0
		t.continuation = true
		t.atLineStart = true
	case stringStartsAt(t.src, t.pos):
		return t.scanString()
	case isIdentStart(c):
		t.scanName()
	case c >= '0' && c <= '9':
		t.scanNumber()
	default:
		switch c {
		case '(', '[', '{':
			t.depth++
		case ')', ']', '}':
			if t.depth > 0 {
				t.depth--
			}
		}
		t.push(Token{Kind: KindOp, Text: t.src[t.pos : t.pos+1], StartRow: t.row, StartCol: t.col, EndRow: t.row, EndCol: t.col + 1})
		t.pos++
		t.col++
	}
	return nil
}

func (t *Tokenizer) emitNewline() {
	t.push(Token{Kind: KindNewline, Text: "\n", StartRow: t.row, StartCol: t.col, EndRow: t.row, EndCol: t.col + 1})
	t.pos++
	t.row++
	t.col = 0
	t.atLineStart = true
}

func (t *Tokenizer) scanComment() {
	j := t.pos
	for j < len(t.src) && t.src[j] != '\n' {
		j++
	}
	text := t.src[t.pos:j]
	t.push(Token{Kind: KindComment, Text: text, StartRow: t.row, StartCol: t.col, EndRow: t.row, EndCol: t.col + len(text)})
	t.pos = j
	t.col += len(text)
}

func (t *Tokenizer) scanName() {
	j := t.pos
	for j < len(t.src) && isIdentChar(t.src[j]) {
		j++
	}
	text := t.src[t.pos:j]
	t.push(Token{Kind: KindName, Text: text, StartRow: t.row, StartCol: t.col, EndRow: t.row, EndCol: t.col + len(text)})
	t.pos = j
	t.col += len(text)
}

func (t *Tokenizer) scanNumber() {
	j := t.pos
	for j < len(t.src) && (isIdentChar(t.src[j]) || t.src[j] == '.') {
		j++
	}
	text := t.src[t.pos:j]
	t.push(Token{Kind: KindNumber, Text: text, StartRow: t.row, StartCol: t.col, EndRow: t.row, EndCol: t.col + len(text)})
	t.pos = j
	t.col += len(text)
}

func (t *Tokenizer) scanString() error {
	startRow, startCol, startPos := t.row, t.col, t.pos
	i := t.pos
	for i < len(t.src) && i-t.pos < 2 && isStringPrefixLetter(t.src[i]) {
		i++
	}
	quote := t.src[i]
	triple := i+2 < len(t.src) && t.src[i+1] == quote && t.src[i+2] == quote

	var j int
	if triple {
		j = i + 3
		for {
			if j >= len(t.src) {
				return fmt.Errorf("line %d: %w", startRow, ErrUnterminatedString)
			}
			if t.src[j] == '\\' {
				j += 2
				continue
			}
			if t.src[j] == quote && j+2 < len(t.src) && t.src[j+1] == quote && t.src[j+2] == quote {
				j += 3
				break
			}
			j++
		}
	} else {
		j = i + 1
		for {
			if j >= len(t.src) {
				return fmt.Errorf("line %d: %w", startRow, ErrUnterminatedString)
			}
			c := t.src[j]
			if c == '\\' {
				j += 2
				continue
			}
			if c == '\n' {
				return fmt.Errorf("line %d: %w", startRow, ErrUnterminatedString)
			}
			j++
			if c == quote {
				break
			}
		}
	}

	text := t.src[startPos:j]
	newlines := strings.Count(text, "\n")
	endRow := startRow + newlines
	endCol := startCol + len(text)
	if newlines > 0 {
		endCol = len(text) - (strings.LastIndexByte(text, '\n') + 1)
	}
	t.push(Token{Kind: KindString, Text: text, StartRow: startRow, StartCol: startCol, EndRow: endRow, EndCol: endCol})
	t.pos = j
	t.row = endRow
	t.col = endCol
	return nil
}

func (t *Tokenizer) finish() {
	for len(t.indents) > 1 {
		t.indents = t.indents[:len(t.indents)-1]
		t.push(Token{Kind: KindDedent, StartRow: t.row, StartCol: t.col, EndRow: t.row, EndCol: t.col})
	}
	t.done = true
}

func isLineSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\f'
}

func isIdentStart(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || b >= 0x80
}

func isIdentChar(b byte) bool {
	return isIdentStart(b) || (b >= '0' && b <= '9')
}

func isStringPrefixLetter(b byte) bool {
	switch b {
	case 'r', 'R', 'b', 'B', 'u', 'U', 'f', 'F':
		return true
	}
	return false
}

// stringStartsAt reports whether a string literal, with an optional
// valid prefix such as r, b, f, rb or fr, begins at pos.
func stringStartsAt(src string, pos int) bool {
	i := pos
	for i < len(src) && i-pos < 2 && isStringPrefixLetter(src[i]) {
		i++
	}
	if i >= len(src) || (src[i] != '"' && src[i] != '\'') {
		return false
	}
	if i == pos {
		return true
	}
	switch strings.ToLower(src[pos:i]) {
	case "r", "b", "u", "f", "rb", "br", "fr", "rf":
		return true
	}
	return false
}
