package docstrfmt

import "fmt"

// Token is an atomic lexical unit of the source text. Text holds the
// literal bytes of the token; positions use 1-based rows and 0-based
// byte columns within the row.
type Token struct {
	Kind     Kind
	Text     string
	StartRow int
	StartCol int
	EndRow   int
	EndCol   int
}

// Kind identifies the lexical class of a token.
type Kind uint8

const (
	// KindEOF marks the end of the token stream.
	KindEOF Kind = iota
	// KindIndent carries the leading whitespace that opens an indented block.
	KindIndent
	// KindDedent is a zero-width marker closing one indentation level.
	KindDedent
	// KindNewline terminates a line; its text is "\n".
	KindNewline
	// KindComment is a "#" comment running to end of line.
	KindComment
	// KindString is a string literal, including any prefix and the delimiters.
	KindString
	// KindName is an identifier or keyword.
	KindName
	// KindNumber is a digit-led literal.
	KindNumber
	// KindOp is any other printable character, one byte per token.
	KindOp
)

var kindNames = [...]string{
	KindEOF:     "EOF",
	KindIndent:  "Indent",
	KindDedent:  "Dedent",
	KindNewline: "Newline",
	KindComment: "Comment",
	KindString:  "String",
	KindName:    "Name",
	KindNumber:  "Number",
	KindOp:      "Op",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

func (t Token) String() string {
	switch {
	case t.Kind == KindEOF:
		return "EOF"
	case len(t.Text) > 10:
		return fmt.Sprintf("%s: %.10q...", t.Kind, t.Text)
	}
	return fmt.Sprintf("%s: %q", t.Kind, t.Text)
}
