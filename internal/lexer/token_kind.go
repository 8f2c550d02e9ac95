package lexer

// Kind identifies the category of a token, grouped by AngelScript's
// keyword and punctuation set.
type Kind int

const (
	ILLEGAL Kind = iota // unexpected byte/rune
	EOF                 // end of input
	COMMENT             // // or /* */ (only emitted with WithPreserveComments)

	IDENT // identifiers, including template-free type names

	// Literals. Numeric parsing into a concrete width/signedness happens
	// later (in the semantic layer), per spec: "numeric parsing happens
	// later so the lexer does not need to know target-type range."
	INT_LIT
	FLOAT_LIT
	DOUBLE_LIT
	STRING_LIT
	HEREDOC_LIT
	BOOL_LIT
	NULL_LIT

	literalEnd // marker

	// Keywords.
	CLASS
	INTERFACE
	ENUM
	FUNCDEF
	NAMESPACE
	IMPORT
	CONST
	PRIVATE
	PROTECTED
	FINAL
	OVERRIDE
	EXPLICIT
	SHARED
	EXTERNAL
	MIXIN
	TYPEDEF
	PROPERTY
	GET
	SET
	FROM

	IF
	ELSE
	FOR
	WHILE
	DO
	SWITCH
	CASE
	DEFAULT
	BREAK
	CONTINUE
	RETURN
	TRY
	CATCH
	FOREACH

	VOID
	BOOL
	INT8
	INT16
	INT32
	INT64
	INTK // "int"
	UINT8
	UINT16
	UINT32
	UINT64
	UINTK // "uint"
	FLOATK
	DOUBLEK

	TRUEK
	FALSEK
	NULLK
	THIS
	CAST
	IN
	OUT
	INOUT
	AUTO
	IS
	AND
	OR
	XOR
	NOT
	SUPER

	keywordEnd // marker

	// Punctuation / operators.
	LPAREN
	RPAREN
	LBRACE
	RBRACE
	LBRACKET
	RBRACKET
	SEMICOLON
	COLON
	DOUBLE_COLON
	COMMA
	DOT
	QUESTION
	QUESTION_QUESTION
	AT // '@' handle sigil

	ASSIGN
	PLUS_ASSIGN
	MINUS_ASSIGN
	STAR_ASSIGN
	SLASH_ASSIGN
	PERCENT_ASSIGN
	POW_ASSIGN
	AMP_ASSIGN
	PIPE_ASSIGN
	CARET_ASSIGN
	SHL_ASSIGN
	SHR_ASSIGN
	USHR_ASSIGN
	HANDLE_ASSIGN // '@='

	PLUS
	MINUS
	STAR
	SLASH
	PERCENT
	POW
	INC
	DEC

	EQ
	NEQ
	LT
	LE
	GT
	GE

	AMP_AMP // &&
	PIPE_PIPE
	CARET_CARET
	BANG

	AMP
	PIPE
	CARET
	TILDE
	SHL
	SHR
	USHR

	ARROW // '->' (unused in core grammar, reserved)
)

var kindNames = map[Kind]string{
	ILLEGAL: "ILLEGAL", EOF: "EOF", COMMENT: "COMMENT", IDENT: "IDENT",
	INT_LIT: "INT_LIT", FLOAT_LIT: "FLOAT_LIT", DOUBLE_LIT: "DOUBLE_LIT",
	STRING_LIT: "STRING_LIT", HEREDOC_LIT: "HEREDOC_LIT", BOOL_LIT: "BOOL_LIT",
	NULL_LIT: "NULL_LIT",
}

// String renders a Kind for diagnostics/debugging.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	if name, ok := keywordText[k]; ok {
		return name
	}
	if name, ok := punctText[k]; ok {
		return name
	}
	return "UNKNOWN"
}

// IsKeyword reports whether k is one of the reserved words.
func (k Kind) IsKeyword() bool {
	return k > literalEnd && k < keywordEnd
}

// keywords is the single source of truth for reserved words: the keyword
// table the lexer consults after scanning an identifier.
var keywords = map[string]Kind{
	"class": CLASS, "interface": INTERFACE, "enum": ENUM, "funcdef": FUNCDEF,
	"namespace": NAMESPACE, "import": IMPORT, "const": CONST,
	"private": PRIVATE, "protected": PROTECTED, "final": FINAL,
	"override": OVERRIDE, "explicit": EXPLICIT, "shared": SHARED,
	"external": EXTERNAL, "mixin": MIXIN, "typedef": TYPEDEF,
	"property": PROPERTY, "get": GET, "set": SET, "from": FROM,
	"if": IF, "else": ELSE, "for": FOR, "while": WHILE, "do": DO,
	"switch": SWITCH, "case": CASE, "default": DEFAULT, "break": BREAK,
	"continue": CONTINUE, "return": RETURN, "try": TRY, "catch": CATCH,
	"foreach": FOREACH,
	"void":    VOID, "bool": BOOL,
	"int8": INT8, "int16": INT16, "int32": INT32, "int64": INT64, "int": INTK,
	"uint8": UINT8, "uint16": UINT16, "uint32": UINT32, "uint64": UINT64, "uint": UINTK,
	"float": FLOATK, "double": DOUBLEK,
	"true": TRUEK, "false": FALSEK, "null": NULLK, "this": THIS,
	"cast": CAST, "in": IN, "out": OUT, "inout": INOUT, "auto": AUTO,
	"is": IS, "and": AND, "or": OR, "xor": XOR, "not": NOT, "super": SUPER,
}

var keywordText = reverse(keywords)

func reverse(m map[string]Kind) map[Kind]string {
	out := make(map[Kind]string, len(m))
	for k, v := range m {
		out[v] = k
	}
	return out
}

var punctText = map[Kind]string{
	LPAREN: "(", RPAREN: ")", LBRACE: "{", RBRACE: "}", LBRACKET: "[", RBRACKET: "]",
	SEMICOLON: ";", COLON: ":", DOUBLE_COLON: "::", COMMA: ",", DOT: ".",
	QUESTION: "?", QUESTION_QUESTION: "??", AT: "@",
	ASSIGN: "=", PLUS_ASSIGN: "+=", MINUS_ASSIGN: "-=", STAR_ASSIGN: "*=",
	SLASH_ASSIGN: "/=", PERCENT_ASSIGN: "%=", POW_ASSIGN: "**=",
	AMP_ASSIGN: "&=", PIPE_ASSIGN: "|=", CARET_ASSIGN: "^=",
	SHL_ASSIGN: "<<=", SHR_ASSIGN: ">>=", USHR_ASSIGN: ">>>=", HANDLE_ASSIGN: "@=",
	PLUS: "+", MINUS: "-", STAR: "*", SLASH: "/", PERCENT: "%", POW: "**",
	INC: "++", DEC: "--",
	EQ: "==", NEQ: "!=", LT: "<", LE: "<=", GT: ">", GE: ">=",
	AMP_AMP: "&&", PIPE_PIPE: "||", CARET_CARET: "^^", BANG: "!",
	AMP: "&", PIPE: "|", CARET: "^", TILDE: "~", SHL: "<<", SHR: ">>", USHR: ">>>",
	ARROW: "->",
}

// LookupIdent classifies a scanned identifier as a keyword Kind or IDENT.
func LookupIdent(ident string) Kind {
	if kind, ok := keywords[ident]; ok {
		return kind
	}
	return IDENT
}
