package lexer

// TokenType represents the type of a token.
type TokenType string

// Token represents a lexical token.
type Token struct {
	Type     TokenType
	Literal  string // The actual text of the token (lexeme)
	Line     int    // 1-based line number where the token starts
	Column   int    // 1-based column number where the token starts
	StartPos int    // 0-based byte offset where the token starts
	EndPos   int    // 0-based byte offset after the token ends
}

// --- Token Types ---
const (
	// Special
	ILLEGAL TokenType = "ILLEGAL" // Unknown token/character
	EOF     TokenType = "EOF"     // End Of File

	// Identifiers + literals
	IDENT  TokenType = "IDENT"  // variable and type names
	INT    TokenType = "INT"    // 123 (arbitrary precision)
	FLOAT  TokenType = "FLOAT"  // 45.67
	STRING TokenType = "STRING" // "hello world"
	CHAR   TokenType = "CHAR"   // 'a'
	BYTES  TokenType = "BYTES"  // b"\x01\x02"
	TRUE   TokenType = "TRUE"
	FALSE  TokenType = "FALSE"
	NULL   TokenType = "NULL"

	// Builtin type keywords
	INT_TYPE   TokenType = "int"
	FLOAT_TYPE TokenType = "float"
	STR_TYPE   TokenType = "str"
	CHAR_TYPE  TokenType = "char"
	BOOL_TYPE  TokenType = "bool"
	BYTES_TYPE TokenType = "bytes"
	TUPLE_TYPE TokenType = "tuple"
	LIST_TYPE  TokenType = "list"
	DICT_TYPE  TokenType = "dict"

	// Keywords
	IF        TokenType = "IF"
	ELIF      TokenType = "ELIF"
	ELSE      TokenType = "ELSE"
	FOR       TokenType = "FOR"
	WHILE     TokenType = "WHILE"
	CLASS     TokenType = "CLASS"
	FN        TokenType = "FN"
	PRIV      TokenType = "PRIV"
	PUB       TokenType = "PUB"
	NEW       TokenType = "NEW"
	SELF      TokenType = "SELF"
	DEL       TokenType = "DEL"
	CONSTRUCT TokenType = "CONSTRUCT"
	DESTRUCT  TokenType = "DESTRUCT"
	SUPER     TokenType = "SUPER"
	RETURN    TokenType = "RETURN"
	ENUM      TokenType = "ENUM"

	// Operators
	ASSIGN      TokenType = "="
	PLUS        TokenType = "+"
	MINUS       TokenType = "-"
	ASTERISK    TokenType = "*"
	SLASH       TokenType = "/"
	PERCENT     TokenType = "%"
	BANG        TokenType = "!"
	EQ          TokenType = "=="
	NOT_EQ      TokenType = "!="
	LT          TokenType = "<"
	GT          TokenType = ">"
	LE          TokenType = "<="
	GE          TokenType = ">="
	LOGICAL_AND TokenType = "&&"
	LOGICAL_OR  TokenType = "||"
	BITWISE_AND TokenType = "&"
	BITWISE_OR  TokenType = "|"
	BITWISE_XOR TokenType = "^"
	BITWISE_NOT TokenType = "~"
	LEFT_SHIFT  TokenType = "<<"
	RIGHT_SHIFT TokenType = ">>"

	// Delimiters
	LPAREN       TokenType = "("
	RPAREN       TokenType = ")"
	LBRACE       TokenType = "{"
	RBRACE       TokenType = "}"
	LBRACKET     TokenType = "["
	RBRACKET     TokenType = "]"
	SEMICOLON    TokenType = ";"
	COMMA        TokenType = ","
	DOT          TokenType = "."  // member accessor
	DOUBLE_COLON TokenType = "::" // static accessor (Enum::Variant)
	ARROW        TokenType = "->" // return type delimiter
)

var keywords = map[string]TokenType{
	"if":        IF,
	"elif":      ELIF,
	"else":      ELSE,
	"for":       FOR,
	"while":     WHILE,
	"class":     CLASS,
	"fn":        FN,
	"priv":      PRIV,
	"pub":       PUB,
	"new":       NEW,
	"self":      SELF,
	"del":       DEL,
	"construct": CONSTRUCT,
	"destruct":  DESTRUCT,
	"super":     SUPER,
	"return":    RETURN,
	"true":      TRUE,
	"false":     FALSE,
	"null":      NULL,

	// Builtin types
	"int":   INT_TYPE,
	"float": FLOAT_TYPE,
	"str":   STR_TYPE,
	"char":  CHAR_TYPE,
	"bool":  BOOL_TYPE,
	"bytes": BYTES_TYPE,
	"tuple": TUPLE_TYPE,
	"enum":  ENUM,
	"list":  LIST_TYPE,
	"dict":  DICT_TYPE,
}

// LookupIdent checks the keywords table for an identifier.
func LookupIdent(ident string) TokenType {
	if tokType, ok := keywords[ident]; ok {
		return tokType
	}
	return IDENT
}

// IsTypeKeyword reports whether a token type names one of the builtin Bead
// types. These may start field, parameter, and local declarations.
func IsTypeKeyword(t TokenType) bool {
	switch t {
	case INT_TYPE, FLOAT_TYPE, STR_TYPE, CHAR_TYPE, BOOL_TYPE,
		BYTES_TYPE, TUPLE_TYPE, LIST_TYPE, DICT_TYPE:
		return true
	}
	return false
}

// Lexer holds the state of the scanner.
type Lexer struct {
	input        string
	position     int  // current position in input (points to current char's byte offset)
	readPosition int  // current reading position in input (byte offset after current char)
	ch           byte // current char under examination
	line         int  // current 1-based line number
	column       int  // current 1-based column number
}

// NewLexer creates a new Lexer over the given input.
func NewLexer(input string) *Lexer {
	l := &Lexer{input: input, line: 1, column: 0}
	l.readChar()
	return l
}

// readChar gives us the next character and advances our position in the input
// string. It also updates the line and column count.
func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
		l.column = 0 // reset, incremented below
	}

	if l.readPosition >= len(l.input) {
		l.ch = 0 // NUL signifies EOF
	} else {
		l.ch = l.input[l.readPosition]
	}
	l.position = l.readPosition
	l.readPosition++
	l.column++
}

// peekChar looks ahead in the input without consuming the character.
func (l *Lexer) peekChar() byte {
	if l.readPosition >= len(l.input) {
		return 0
	}
	return l.input[l.readPosition]
}

// skipWhitespace consumes whitespace characters (space, tab, newline,
// carriage return). Bead has no comment syntax.
func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' {
		l.readChar()
	}
}

func isLetter(ch byte) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || ch == '_'
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}

// NextToken scans the input and returns the next token.
func (l *Lexer) NextToken() Token {
	l.skipWhitespace()

	// Capture token start position after skipping whitespace.
	startLine := l.line
	startCol := l.column
	startPos := l.position

	mk := func(t TokenType, literal string) Token {
		return Token{Type: t, Literal: literal, Line: startLine, Column: startCol, StartPos: startPos, EndPos: l.position}
	}

	var tok Token
	switch l.ch {
	case 0:
		tok = Token{Type: EOF, Literal: "", Line: startLine, Column: startCol, StartPos: startPos, EndPos: startPos}
		return tok
	case '=':
		if l.peekChar() == '=' {
			l.readChar()
			l.readChar()
			tok = mk(EQ, "==")
		} else {
			l.readChar()
			tok = mk(ASSIGN, "=")
		}
	case '!':
		if l.peekChar() == '=' {
			l.readChar()
			l.readChar()
			tok = mk(NOT_EQ, "!=")
		} else {
			l.readChar()
			tok = mk(BANG, "!")
		}
	case '+':
		l.readChar()
		tok = mk(PLUS, "+")
	case '-':
		if l.peekChar() == '>' {
			l.readChar()
			l.readChar()
			tok = mk(ARROW, "->")
		} else {
			l.readChar()
			tok = mk(MINUS, "-")
		}
	case '*':
		l.readChar()
		tok = mk(ASTERISK, "*")
	case '/':
		l.readChar()
		tok = mk(SLASH, "/")
	case '%':
		l.readChar()
		tok = mk(PERCENT, "%")
	case '|':
		if l.peekChar() == '|' {
			l.readChar()
			l.readChar()
			tok = mk(LOGICAL_OR, "||")
		} else {
			l.readChar()
			tok = mk(BITWISE_OR, "|")
		}
	case '&':
		if l.peekChar() == '&' {
			l.readChar()
			l.readChar()
			tok = mk(LOGICAL_AND, "&&")
		} else {
			l.readChar()
			tok = mk(BITWISE_AND, "&")
		}
	case '^':
		l.readChar()
		tok = mk(BITWISE_XOR, "^")
	case '~':
		l.readChar()
		tok = mk(BITWISE_NOT, "~")
	case '<':
		switch l.peekChar() {
		case '<':
			l.readChar()
			l.readChar()
			tok = mk(LEFT_SHIFT, "<<")
		case '=':
			l.readChar()
			l.readChar()
			tok = mk(LE, "<=")
		default:
			l.readChar()
			tok = mk(LT, "<")
		}
	case '>':
		switch l.peekChar() {
		case '>':
			l.readChar()
			l.readChar()
			tok = mk(RIGHT_SHIFT, ">>")
		case '=':
			l.readChar()
			l.readChar()
			tok = mk(GE, ">=")
		default:
			l.readChar()
			tok = mk(GT, ">")
		}
	case '(':
		l.readChar()
		tok = mk(LPAREN, "(")
	case ')':
		l.readChar()
		tok = mk(RPAREN, ")")
	case '{':
		l.readChar()
		tok = mk(LBRACE, "{")
	case '}':
		l.readChar()
		tok = mk(RBRACE, "}")
	case '[':
		l.readChar()
		tok = mk(LBRACKET, "[")
	case ']':
		l.readChar()
		tok = mk(RBRACKET, "]")
	case ';':
		l.readChar()
		tok = mk(SEMICOLON, ";")
	case ',':
		l.readChar()
		tok = mk(COMMA, ",")
	case '.':
		l.readChar()
		tok = mk(DOT, ".")
	case ':':
		// Bead has no bare ':' token; only the '::' static accessor.
		if l.peekChar() == ':' {
			l.readChar()
			l.readChar()
			tok = mk(DOUBLE_COLON, "::")
		} else {
			l.readChar()
			tok = mk(ILLEGAL, ":")
		}
	case '"':
		return l.readString(startLine, startCol, startPos)
	case '\'':
		return l.readCharLiteral(startLine, startCol, startPos)
	default:
		if l.ch == 'b' && l.peekChar() == '"' {
			return l.readBytesLiteral(startLine, startCol, startPos)
		}
		if isLetter(l.ch) {
			literal := l.readIdentifier()
			return Token{Type: LookupIdent(literal), Literal: literal, Line: startLine, Column: startCol, StartPos: startPos, EndPos: l.position}
		}
		if isDigit(l.ch) {
			return l.readNumber(startLine, startCol, startPos)
		}
		illegal := string(l.ch)
		l.readChar()
		tok = mk(ILLEGAL, illegal)
	}

	return tok
}

// readIdentifier reads an identifier or keyword: a letter or underscore
// followed by letters, digits, and underscores.
func (l *Lexer) readIdentifier() string {
	start := l.position
	for isLetter(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	return l.input[start:l.position]
}

// readNumber reads an integer or float literal. A single dot separator makes
// a float; more than one is an error.
func (l *Lexer) readNumber(startLine, startCol, startPos int) Token {
	dots := 0
	for isDigit(l.ch) || l.ch == '.' {
		if l.ch == '.' {
			dots++
		}
		l.readChar()
	}
	literal := l.input[startPos:l.position]

	tokType := INT
	switch dots {
	case 0:
		tokType = INT
	case 1:
		tokType = FLOAT
	default:
		tokType = ILLEGAL
	}
	return Token{Type: tokType, Literal: literal, Line: startLine, Column: startCol, StartPos: startPos, EndPos: l.position}
}

// readString reads a double-quoted string literal. Bead strings are raw:
// no escape sequences are processed.
func (l *Lexer) readString(startLine, startCol, startPos int) Token {
	l.readChar() // consume opening '"'
	contentStart := l.position
	for l.ch != '"' && l.ch != 0 {
		l.readChar()
	}
	if l.ch == 0 {
		return Token{Type: ILLEGAL, Literal: l.input[startPos:l.position], Line: startLine, Column: startCol, StartPos: startPos, EndPos: l.position}
	}
	literal := l.input[contentStart:l.position]
	l.readChar() // consume closing '"'
	return Token{Type: STRING, Literal: literal, Line: startLine, Column: startCol, StartPos: startPos, EndPos: l.position}
}

// readCharLiteral reads a single-quoted character literal containing exactly
// one codepoint.
func (l *Lexer) readCharLiteral(startLine, startCol, startPos int) Token {
	l.readChar() // consume opening '\''
	if l.ch == 0 || l.ch == '\'' {
		l.readChar()
		return Token{Type: ILLEGAL, Literal: l.input[startPos:l.position], Line: startLine, Column: startCol, StartPos: startPos, EndPos: l.position}
	}
	literal := string(l.ch)
	l.readChar()
	if l.ch != '\'' {
		return Token{Type: ILLEGAL, Literal: l.input[startPos:l.position], Line: startLine, Column: startCol, StartPos: startPos, EndPos: l.position}
	}
	l.readChar() // consume closing '\''
	return Token{Type: CHAR, Literal: literal, Line: startLine, Column: startCol, StartPos: startPos, EndPos: l.position}
}

// readBytesLiteral reads a b"..." bytes literal. The content between the
// quotes is kept verbatim; escape decoding is the reader's concern.
func (l *Lexer) readBytesLiteral(startLine, startCol, startPos int) Token {
	l.readChar() // consume 'b'
	l.readChar() // consume opening '"'
	contentStart := l.position
	for l.ch != '"' && l.ch != 0 {
		l.readChar()
	}
	if l.ch == 0 {
		return Token{Type: ILLEGAL, Literal: l.input[startPos:l.position], Line: startLine, Column: startCol, StartPos: startPos, EndPos: l.position}
	}
	literal := l.input[contentStart:l.position]
	l.readChar() // consume closing '"'
	return Token{Type: BYTES, Literal: literal, Line: startLine, Column: startCol, StartPos: startPos, EndPos: l.position}
}
