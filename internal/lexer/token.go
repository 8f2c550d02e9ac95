package lexer

import "github.com/angelscript-go/asc/internal/diag"

// LiteralKind discriminates the payload carried by a literal token, per
// spec: "Literal tokens carry a kind discriminator (int / float / double /
// bool / string / null) and raw bytes."
type LiteralKind int

const (
	LiteralNone LiteralKind = iota
	LiteralInt
	LiteralFloat
	LiteralDouble
	LiteralString
	LiteralBool
	LiteralNull
)

// Token is a single lexed unit: its Kind, the literal slice of source it
// came from, its Span, and — for literal tokens — a LiteralKind
// discriminator and the raw (unescaped, un-widened) bytes.
type Token struct {
	Kind    Kind
	Literal string
	Span    diag.Span
	LitKind LiteralKind
	Raw     string // unescaped payload for string/heredoc literals
}

// Is reports whether t has the given Kind. Convenience for parser call
// sites that would otherwise write `t.Kind == lexer.FOO` repeatedly.
func (t Token) Is(k Kind) bool { return t.Kind == k }

// IsEOF reports whether t is the terminal EOF sentinel.
func (t Token) IsEOF() bool { return t.Kind == EOF }
