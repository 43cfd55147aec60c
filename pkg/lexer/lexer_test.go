package lexer

import (
	"testing"
)

func TestClassStructure(t *testing.T) {
	input := `
class Logger {
    priv str name;

    fn construct(str name) {
        self.name = name;
    }

    fn destruct() {
        int i = 76;
    }

    fn clone() -> Logger;
}`

	tests := []struct {
		expectedType    TokenType
		expectedLiteral string
	}{
		{CLASS, "class"},
		{IDENT, "Logger"},
		{LBRACE, "{"},
		{PRIV, "priv"},
		{STR_TYPE, "str"},
		{IDENT, "name"},
		{SEMICOLON, ";"},
		{FN, "fn"},
		{CONSTRUCT, "construct"},
		{LPAREN, "("},
		{STR_TYPE, "str"},
		{IDENT, "name"},
		{RPAREN, ")"},
		{LBRACE, "{"},
		{SELF, "self"},
		{DOT, "."},
		{IDENT, "name"},
		{ASSIGN, "="},
		{IDENT, "name"},
		{SEMICOLON, ";"},
		{RBRACE, "}"},
		{FN, "fn"},
		{DESTRUCT, "destruct"},
		{LPAREN, "("},
		{RPAREN, ")"},
		{LBRACE, "{"},
		{INT_TYPE, "int"},
		{IDENT, "i"},
		{ASSIGN, "="},
		{INT, "76"},
		{SEMICOLON, ";"},
		{RBRACE, "}"},
		{FN, "fn"},
		{IDENT, "clone"},
		{LPAREN, "("},
		{RPAREN, ")"},
		{ARROW, "->"},
		{IDENT, "Logger"},
		{SEMICOLON, ";"},
		{RBRACE, "}"},
		{EOF, ""},
	}

	l := NewLexer(input)
	for i, tt := range tests {
		tok := l.NextToken()
		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - tokentype wrong. expected=%q, got=%q (literal %q)",
				i, tt.expectedType, tok.Type, tok.Literal)
		}
		if tok.Literal != tt.expectedLiteral {
			t.Fatalf("tests[%d] - literal wrong. expected=%q, got=%q",
				i, tt.expectedLiteral, tok.Literal)
		}
	}
}

func TestOperators(t *testing.T) {
	input := `|| && + - * / % | ^ ~ & >> << ! == != > >= < <= =`

	expected := []TokenType{
		LOGICAL_OR, LOGICAL_AND, PLUS, MINUS, ASTERISK, SLASH, PERCENT,
		BITWISE_OR, BITWISE_XOR, BITWISE_NOT, BITWISE_AND,
		RIGHT_SHIFT, LEFT_SHIFT, BANG, EQ, NOT_EQ,
		GT, GE, LT, LE, ASSIGN, EOF,
	}

	l := NewLexer(input)
	for i, want := range expected {
		tok := l.NextToken()
		if tok.Type != want {
			t.Fatalf("token[%d] - expected=%q, got=%q (literal %q)", i, want, tok.Type, tok.Literal)
		}
	}
}

func TestDelimiters(t *testing.T) {
	input := `( ) { } [ ] . ; , :: ->`

	expected := []TokenType{
		LPAREN, RPAREN, LBRACE, RBRACE, LBRACKET, RBRACKET,
		DOT, SEMICOLON, COMMA, DOUBLE_COLON, ARROW, EOF,
	}

	l := NewLexer(input)
	for i, want := range expected {
		tok := l.NextToken()
		if tok.Type != want {
			t.Fatalf("token[%d] - expected=%q, got=%q", i, want, tok.Type)
		}
	}
}

func TestNumberLiterals(t *testing.T) {
	input := `423 763.433 0 24454333`

	tests := []struct {
		expectedType    TokenType
		expectedLiteral string
	}{
		{INT, "423"},
		{FLOAT, "763.433"},
		{INT, "0"},
		{INT, "24454333"},
		{EOF, ""},
	}

	l := NewLexer(input)
	for i, tt := range tests {
		tok := l.NextToken()
		if tok.Type != tt.expectedType || tok.Literal != tt.expectedLiteral {
			t.Fatalf("tests[%d] - expected (%q, %q), got (%q, %q)",
				i, tt.expectedType, tt.expectedLiteral, tok.Type, tok.Literal)
		}
	}
}

func TestNumberWithTooManyDots(t *testing.T) {
	l := NewLexer("1.2.3")
	tok := l.NextToken()
	if tok.Type != ILLEGAL {
		t.Errorf("expected ILLEGAL for 1.2.3, got %q (literal %q)", tok.Type, tok.Literal)
	}
}

func TestStringLiteral(t *testing.T) {
	l := NewLexer(`"Some string value"`)
	tok := l.NextToken()
	if tok.Type != STRING {
		t.Fatalf("expected STRING, got %q", tok.Type)
	}
	if tok.Literal != "Some string value" {
		t.Errorf("wrong literal: %q", tok.Literal)
	}
}

func TestBytesLiteral(t *testing.T) {
	l := NewLexer(`b"hello \x01\03 \x44"`)
	tok := l.NextToken()
	if tok.Type != BYTES {
		t.Fatalf("expected BYTES, got %q (literal %q)", tok.Type, tok.Literal)
	}
	if tok.Literal != `hello \x01\03 \x44` {
		t.Errorf("wrong literal: %q", tok.Literal)
	}
}

func TestBytesPrefixIsNotGreedy(t *testing.T) {
	// "ba" must lex as a plain identifier, not a bytes literal.
	l := NewLexer(`bytes ba char c`)

	tests := []struct {
		expectedType    TokenType
		expectedLiteral string
	}{
		{BYTES_TYPE, "bytes"},
		{IDENT, "ba"},
		{CHAR_TYPE, "char"},
		{IDENT, "c"},
		{EOF, ""},
	}
	for i, tt := range tests {
		tok := l.NextToken()
		if tok.Type != tt.expectedType || tok.Literal != tt.expectedLiteral {
			t.Fatalf("tests[%d] - expected (%q, %q), got (%q, %q)",
				i, tt.expectedType, tt.expectedLiteral, tok.Type, tok.Literal)
		}
	}
}

func TestCharacterLiteral(t *testing.T) {
	l := NewLexer("'a'")
	tok := l.NextToken()
	if tok.Type != CHAR || tok.Literal != "a" {
		t.Fatalf("expected CHAR 'a', got %q (literal %q)", tok.Type, tok.Literal)
	}

	// Multi-codepoint char literals are invalid.
	l = NewLexer("'ab'")
	tok = l.NextToken()
	if tok.Type != ILLEGAL {
		t.Errorf("expected ILLEGAL for 'ab', got %q", tok.Type)
	}
}

func TestVariableIdentifiers(t *testing.T) {
	input := `str some_str int i float _ff tuple t list lll dict d enum e`

	tests := []struct {
		expectedType    TokenType
		expectedLiteral string
	}{
		{STR_TYPE, "str"},
		{IDENT, "some_str"},
		{INT_TYPE, "int"},
		{IDENT, "i"},
		{FLOAT_TYPE, "float"},
		{IDENT, "_ff"},
		{TUPLE_TYPE, "tuple"},
		{IDENT, "t"},
		{LIST_TYPE, "list"},
		{IDENT, "lll"},
		{DICT_TYPE, "dict"},
		{IDENT, "d"},
		{ENUM, "enum"},
		{IDENT, "e"},
		{EOF, ""},
	}

	l := NewLexer(input)
	for i, tt := range tests {
		tok := l.NextToken()
		if tok.Type != tt.expectedType || tok.Literal != tt.expectedLiteral {
			t.Fatalf("tests[%d] - expected (%q, %q), got (%q, %q)",
				i, tt.expectedType, tt.expectedLiteral, tok.Type, tok.Literal)
		}
	}
}

func TestBareColonIsIllegal(t *testing.T) {
	l := NewLexer("a : b")
	if tok := l.NextToken(); tok.Type != IDENT {
		t.Fatalf("expected IDENT, got %q", tok.Type)
	}
	if tok := l.NextToken(); tok.Type != ILLEGAL {
		t.Errorf("expected ILLEGAL for bare ':', got %q", tok.Type)
	}
}

func TestLineAndColumnTracking(t *testing.T) {
	input := "class A {\n  pub int x;\n}"
	l := NewLexer(input)

	tok := l.NextToken() // class
	if tok.Line != 1 || tok.Column != 1 {
		t.Errorf("class: expected 1:1, got %d:%d", tok.Line, tok.Column)
	}
	l.NextToken() // A
	l.NextToken() // {
	tok = l.NextToken() // pub
	if tok.Line != 2 || tok.Column != 3 {
		t.Errorf("pub: expected 2:3, got %d:%d", tok.Line, tok.Column)
	}
}
