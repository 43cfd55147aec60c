package parser

import (
	"fmt"
	"math/big"
	"strconv"

	"bead/pkg/errors"
	"bead/pkg/lexer"
	"bead/pkg/source"
	"bead/pkg/types"
)

// Parser takes a lexer and builds a declaration AST.
type Parser struct {
	l      *lexer.Lexer
	source *source.SourceFile
	errors []errors.BeadError

	curToken  lexer.Token
	peekToken lexer.Token

	prefixParseFns map[lexer.TokenType]prefixParseFn
	infixParseFns  map[lexer.TokenType]infixParseFn
}

type (
	prefixParseFn func() Expression
	infixParseFn  func(Expression) Expression // arg is the left side expression
)

// Precedence levels for expression operators.
const (
	_ int = iota
	LOWEST
	ASSIGNMENT  // =
	LOGICAL_OR  // ||
	LOGICAL_AND // &&
	BITWISE_OR  // |
	BITWISE_XOR // ^
	BITWISE_AND // &
	EQUALS      // ==, !=
	LESSGREATER // >, <, >=, <=
	SHIFT       // <<, >>
	SUM         // +, -
	PRODUCT     // *, /, %
	PREFIX      // -x, !x, ~x
	CALL        // f(x)
	INDEX       // a[i]
	MEMBER      // object.property, Enum::Variant
)

var precedences = map[lexer.TokenType]int{
	lexer.ASSIGN:       ASSIGNMENT,
	lexer.LOGICAL_OR:   LOGICAL_OR,
	lexer.LOGICAL_AND:  LOGICAL_AND,
	lexer.BITWISE_OR:   BITWISE_OR,
	lexer.BITWISE_XOR:  BITWISE_XOR,
	lexer.BITWISE_AND:  BITWISE_AND,
	lexer.EQ:           EQUALS,
	lexer.NOT_EQ:       EQUALS,
	lexer.LT:           LESSGREATER,
	lexer.GT:           LESSGREATER,
	lexer.LE:           LESSGREATER,
	lexer.GE:           LESSGREATER,
	lexer.LEFT_SHIFT:   SHIFT,
	lexer.RIGHT_SHIFT:  SHIFT,
	lexer.PLUS:         SUM,
	lexer.MINUS:        SUM,
	lexer.ASTERISK:     PRODUCT,
	lexer.SLASH:        PRODUCT,
	lexer.PERCENT:      PRODUCT,
	lexer.LPAREN:       CALL,
	lexer.LBRACKET:     INDEX,
	lexer.DOT:          MEMBER,
	lexer.DOUBLE_COLON: MEMBER,
}

// NewParser creates a parser over the given lexer. The source file is used
// for diagnostic positions only.
func NewParser(l *lexer.Lexer, src *source.SourceFile) *Parser {
	p := &Parser{
		l:      l,
		source: src,
	}

	p.prefixParseFns = make(map[lexer.TokenType]prefixParseFn)
	p.registerPrefix(lexer.IDENT, p.parseIdentifier)
	p.registerPrefix(lexer.INT, p.parseIntegerLiteral)
	p.registerPrefix(lexer.FLOAT, p.parseFloatLiteral)
	p.registerPrefix(lexer.STRING, p.parseStringLiteral)
	p.registerPrefix(lexer.CHAR, p.parseCharLiteral)
	p.registerPrefix(lexer.BYTES, p.parseBytesLiteral)
	p.registerPrefix(lexer.TRUE, p.parseBooleanLiteral)
	p.registerPrefix(lexer.FALSE, p.parseBooleanLiteral)
	p.registerPrefix(lexer.NULL, p.parseNullLiteral)
	p.registerPrefix(lexer.SELF, p.parseSelfExpression)
	p.registerPrefix(lexer.SUPER, p.parseSuperExpression)
	p.registerPrefix(lexer.NEW, p.parseNewExpression)
	p.registerPrefix(lexer.LPAREN, p.parseGroupedExpression)
	p.registerPrefix(lexer.LBRACKET, p.parseListLiteral)
	p.registerPrefix(lexer.MINUS, p.parsePrefixExpression)
	p.registerPrefix(lexer.BANG, p.parsePrefixExpression)
	p.registerPrefix(lexer.BITWISE_NOT, p.parsePrefixExpression)
	p.registerPrefix(lexer.ASTERISK, p.parseVariadicArgument)

	p.infixParseFns = make(map[lexer.TokenType]infixParseFn)
	for _, tt := range []lexer.TokenType{
		lexer.PLUS, lexer.MINUS, lexer.ASTERISK, lexer.SLASH, lexer.PERCENT,
		lexer.EQ, lexer.NOT_EQ, lexer.LT, lexer.GT, lexer.LE, lexer.GE,
		lexer.LOGICAL_AND, lexer.LOGICAL_OR,
		lexer.BITWISE_AND, lexer.BITWISE_OR, lexer.BITWISE_XOR,
		lexer.LEFT_SHIFT, lexer.RIGHT_SHIFT,
	} {
		p.registerInfix(tt, p.parseInfixExpression)
	}
	p.registerInfix(lexer.ASSIGN, p.parseAssignmentExpression)
	p.registerInfix(lexer.LPAREN, p.parseCallExpression)
	p.registerInfix(lexer.LBRACKET, p.parseIndexExpression)
	p.registerInfix(lexer.DOT, p.parseMemberExpression)
	p.registerInfix(lexer.DOUBLE_COLON, p.parseStaticAccessExpression)

	// Read two tokens so curToken and peekToken are both set.
	p.nextToken()
	p.nextToken()
	return p
}

func (p *Parser) registerPrefix(tokenType lexer.TokenType, fn prefixParseFn) {
	p.prefixParseFns[tokenType] = fn
}

func (p *Parser) registerInfix(tokenType lexer.TokenType, fn infixParseFn) {
	p.infixParseFns[tokenType] = fn
}

// ParseProgram parses the ordered sequence of top-level declarations.
func (p *Parser) ParseProgram() (*Program, []errors.BeadError) {
	program := &Program{}

	for !p.curTokenIs(lexer.EOF) {
		var decl Statement
		switch p.curToken.Type {
		case lexer.CLASS:
			decl = p.parseClassDeclaration()
		case lexer.ENUM:
			decl = p.parseEnumDeclaration()
		default:
			p.addError(p.curToken, fmt.Sprintf("expected a class or enum declaration, got %s", p.curToken.Type))
			p.synchronizeTopLevel()
			continue
		}

		if decl != nil {
			program.Declarations = append(program.Declarations, decl)
			p.nextToken() // move past the closing '}'
		} else {
			p.synchronizeTopLevel()
		}
	}

	return program, p.errors
}

// synchronizeTopLevel skips tokens until the next top-level declaration so
// one malformed declaration does not cascade into spurious diagnostics.
func (p *Parser) synchronizeTopLevel() {
	p.nextToken()
	for !p.curTokenIs(lexer.EOF) && !p.curTokenIs(lexer.CLASS) && !p.curTokenIs(lexer.ENUM) {
		p.nextToken()
	}
}

// --- Statements ---

// parseStatement leaves curToken on the statement's final token (the
// semicolon or closing brace); the enclosing loop advances past it.
func (p *Parser) parseStatement() Statement {
	switch p.curToken.Type {
	case lexer.RETURN:
		return p.parseReturnStatement()
	case lexer.DEL:
		return p.parseDeleteStatement()
	case lexer.IF:
		return p.parseIfStatement()
	case lexer.WHILE:
		return p.parseWhileStatement()
	case lexer.FOR:
		return p.parseForStatement()
	case lexer.LBRACE:
		return p.parseBlockStatement()
	case lexer.IDENT:
		// `TypeName name ...` is a local declaration; anything else is an
		// expression beginning with an identifier.
		if p.peekTokenIs(lexer.IDENT) {
			return p.parseLocalDeclaration()
		}
		return p.parseExpressionStatement()
	default:
		if lexer.IsTypeKeyword(p.curToken.Type) {
			return p.parseLocalDeclaration()
		}
		return p.parseExpressionStatement()
	}
}

func (p *Parser) parseBlockStatement() *BlockStatement {
	block := &BlockStatement{Token: p.curToken}
	p.nextToken() // move past '{'

	for !p.curTokenIs(lexer.RBRACE) && !p.curTokenIs(lexer.EOF) {
		stmt := p.parseStatement()
		if stmt == nil {
			return nil
		}
		block.Statements = append(block.Statements, stmt)
		p.nextToken()
	}

	if !p.curTokenIs(lexer.RBRACE) {
		p.addError(p.curToken, "expected '}' to close block")
		return nil
	}
	return block
}

func (p *Parser) parseLocalDeclaration() Statement {
	decl := &LocalDeclaration{Token: p.curToken, TypeName: p.curToken.Literal}

	if !p.expectPeek(lexer.IDENT) {
		return nil
	}
	decl.Name = &Identifier{Token: p.curToken, Value: p.curToken.Literal}

	if p.peekTokenIs(lexer.ASSIGN) {
		p.nextToken() // consume name
		p.nextToken() // move to value
		decl.Value = p.parseExpression(LOWEST)
		if decl.Value == nil {
			return nil
		}
	}

	if !p.expectPeek(lexer.SEMICOLON) {
		return nil
	}
	return decl
}

func (p *Parser) parseExpressionStatement() Statement {
	stmt := &ExpressionStatement{Token: p.curToken}
	stmt.Expression = p.parseExpression(LOWEST)
	if stmt.Expression == nil {
		return nil
	}
	if !p.expectPeek(lexer.SEMICOLON) {
		return nil
	}
	return stmt
}

func (p *Parser) parseReturnStatement() Statement {
	stmt := &ReturnStatement{Token: p.curToken}

	if p.peekTokenIs(lexer.SEMICOLON) {
		p.nextToken()
		return stmt
	}

	p.nextToken()
	stmt.ReturnValue = p.parseExpression(LOWEST)
	if stmt.ReturnValue == nil {
		return nil
	}
	if !p.expectPeek(lexer.SEMICOLON) {
		return nil
	}
	return stmt
}

func (p *Parser) parseDeleteStatement() Statement {
	stmt := &DeleteStatement{Token: p.curToken}
	p.nextToken()
	stmt.Target = p.parseExpression(LOWEST)
	if stmt.Target == nil {
		return nil
	}
	if !p.expectPeek(lexer.SEMICOLON) {
		return nil
	}
	return stmt
}

func (p *Parser) parseIfStatement() Statement {
	stmt := &IfStatement{Token: p.curToken}

	p.nextToken()
	stmt.Condition = p.parseExpression(LOWEST)
	if stmt.Condition == nil {
		return nil
	}
	if !p.expectPeek(lexer.LBRACE) {
		return nil
	}
	stmt.Consequence = p.parseBlockStatement()
	if stmt.Consequence == nil {
		return nil
	}

	for p.peekTokenIs(lexer.ELIF) {
		p.nextToken() // consume '}'
		branch := &ElifBranch{Token: p.curToken}
		p.nextToken()
		branch.Condition = p.parseExpression(LOWEST)
		if branch.Condition == nil {
			return nil
		}
		if !p.expectPeek(lexer.LBRACE) {
			return nil
		}
		branch.Consequence = p.parseBlockStatement()
		if branch.Consequence == nil {
			return nil
		}
		stmt.Elifs = append(stmt.Elifs, branch)
	}

	if p.peekTokenIs(lexer.ELSE) {
		p.nextToken() // consume '}'
		if !p.expectPeek(lexer.LBRACE) {
			return nil
		}
		stmt.Alternative = p.parseBlockStatement()
		if stmt.Alternative == nil {
			return nil
		}
	}

	return stmt
}

func (p *Parser) parseWhileStatement() Statement {
	stmt := &WhileStatement{Token: p.curToken}

	p.nextToken()
	stmt.Condition = p.parseExpression(LOWEST)
	if stmt.Condition == nil {
		return nil
	}
	if !p.expectPeek(lexer.LBRACE) {
		return nil
	}
	stmt.Body = p.parseBlockStatement()
	if stmt.Body == nil {
		return nil
	}
	return stmt
}

func (p *Parser) parseForStatement() Statement {
	stmt := &ForStatement{Token: p.curToken}

	if !p.expectPeek(lexer.LPAREN) {
		return nil
	}
	p.nextToken() // move past '('

	// Init clause (may be empty).
	if !p.curTokenIs(lexer.SEMICOLON) {
		var init Statement
		if lexer.IsTypeKeyword(p.curToken.Type) || (p.curTokenIs(lexer.IDENT) && p.peekTokenIs(lexer.IDENT)) {
			init = p.parseLocalDeclaration()
		} else {
			init = p.parseExpressionStatement()
		}
		if init == nil {
			return nil
		}
		stmt.Init = init
	}
	p.nextToken() // move past ';'

	// Condition clause (may be empty).
	if !p.curTokenIs(lexer.SEMICOLON) {
		stmt.Condition = p.parseExpression(LOWEST)
		if stmt.Condition == nil {
			return nil
		}
		if !p.expectPeek(lexer.SEMICOLON) {
			return nil
		}
	}
	p.nextToken() // move past ';'

	// Post clause (may be empty).
	if !p.curTokenIs(lexer.RPAREN) {
		stmt.Post = p.parseExpression(LOWEST)
		if stmt.Post == nil {
			return nil
		}
		if !p.expectPeek(lexer.RPAREN) {
			return nil
		}
	}

	if !p.expectPeek(lexer.LBRACE) {
		return nil
	}
	stmt.Body = p.parseBlockStatement()
	if stmt.Body == nil {
		return nil
	}
	return stmt
}

// --- Expressions ---

func (p *Parser) parseExpression(precedence int) Expression {
	prefix := p.prefixParseFns[p.curToken.Type]
	if prefix == nil {
		p.addError(p.curToken, fmt.Sprintf("unexpected token %s in expression", p.curToken.Type))
		return nil
	}
	leftExp := prefix()

	for leftExp != nil && !p.peekTokenIs(lexer.SEMICOLON) && precedence < p.peekPrecedence() {
		infix := p.infixParseFns[p.peekToken.Type]
		if infix == nil {
			return leftExp
		}
		p.nextToken()
		leftExp = infix(leftExp)
	}

	return leftExp
}

func (p *Parser) parseIdentifier() Expression {
	return &Identifier{Token: p.curToken, Value: p.curToken.Literal}
}

func (p *Parser) parseIntegerLiteral() Expression {
	value, ok := new(big.Int).SetString(p.curToken.Literal, 10)
	if !ok {
		p.addError(p.curToken, fmt.Sprintf("could not parse %q as integer", p.curToken.Literal))
		return nil
	}
	return &IntegerLiteral{Token: p.curToken, Value: value}
}

func (p *Parser) parseFloatLiteral() Expression {
	value, err := strconv.ParseFloat(p.curToken.Literal, 64)
	if err != nil {
		p.addError(p.curToken, fmt.Sprintf("could not parse %q as float", p.curToken.Literal))
		return nil
	}
	return &FloatLiteral{Token: p.curToken, Value: value}
}

func (p *Parser) parseStringLiteral() Expression {
	return &StringLiteral{Token: p.curToken, Value: p.curToken.Literal}
}

func (p *Parser) parseCharLiteral() Expression {
	runes := []rune(p.curToken.Literal)
	if len(runes) != 1 {
		p.addError(p.curToken, "character literal may only contain one codepoint")
		return nil
	}
	return &CharLiteral{Token: p.curToken, Value: runes[0]}
}

func (p *Parser) parseBytesLiteral() Expression {
	return &BytesLiteral{Token: p.curToken, Value: []byte(p.curToken.Literal)}
}

func (p *Parser) parseBooleanLiteral() Expression {
	return &BooleanLiteral{Token: p.curToken, Value: p.curTokenIs(lexer.TRUE)}
}

func (p *Parser) parseNullLiteral() Expression {
	return &NullLiteral{Token: p.curToken}
}

func (p *Parser) parseSelfExpression() Expression {
	return &SelfExpression{Token: p.curToken}
}

// parseSuperExpression handles both `super(...)` (constructor delegation)
// and `super` in member position (`super.m`).
func (p *Parser) parseSuperExpression() Expression {
	superToken := p.curToken

	if p.peekTokenIs(lexer.LPAREN) {
		p.nextToken() // consume 'super'
		call := &SuperCallExpression{Token: superToken}
		call.Arguments = p.parseExpressionList(lexer.RPAREN)
		if call.Arguments == nil && !p.curTokenIs(lexer.RPAREN) {
			return nil
		}
		return call
	}

	if !p.peekTokenIs(lexer.DOT) {
		p.addError(p.peekToken, "expected '(' or '.' after 'super'")
		return nil
	}
	return &SuperExpression{Token: superToken}
}

func (p *Parser) parseNewExpression() Expression {
	expr := &NewExpression{Token: p.curToken}

	if !p.expectPeek(lexer.IDENT) {
		return nil
	}
	expr.ClassName = &Identifier{Token: p.curToken, Value: p.curToken.Literal}

	if !p.expectPeek(lexer.LPAREN) {
		return nil
	}
	expr.Arguments = p.parseExpressionList(lexer.RPAREN)
	if expr.Arguments == nil && !p.curTokenIs(lexer.RPAREN) {
		return nil
	}
	return expr
}

func (p *Parser) parseGroupedExpression() Expression {
	p.nextToken()
	exp := p.parseExpression(LOWEST)
	if exp == nil {
		return nil
	}
	if !p.expectPeek(lexer.RPAREN) {
		return nil
	}
	return exp
}

func (p *Parser) parseListLiteral() Expression {
	list := &ListLiteral{Token: p.curToken}
	list.Elements = p.parseExpressionList(lexer.RBRACKET)
	if list.Elements == nil && !p.curTokenIs(lexer.RBRACKET) {
		return nil
	}
	return list
}

func (p *Parser) parsePrefixExpression() Expression {
	expr := &PrefixExpression{Token: p.curToken, Operator: p.curToken.Literal}
	p.nextToken()
	expr.Right = p.parseExpression(PREFIX)
	if expr.Right == nil {
		return nil
	}
	return expr
}

// parseVariadicArgument parses `*name` and `**name` forwarding markers in
// argument position.
func (p *Parser) parseVariadicArgument() Expression {
	arg := &VariadicArgument{Token: p.curToken, Kind: types.VariadicPositional}

	if p.peekTokenIs(lexer.ASTERISK) {
		p.nextToken()
		arg.Kind = types.VariadicKeyword
	}
	if !p.expectPeek(lexer.IDENT) {
		return nil
	}
	arg.Name = &Identifier{Token: p.curToken, Value: p.curToken.Literal}
	return arg
}

func (p *Parser) parseInfixExpression(left Expression) Expression {
	expr := &InfixExpression{
		Token:    p.curToken,
		Left:     left,
		Operator: p.curToken.Literal,
	}
	precedence := p.curPrecedence()
	p.nextToken()
	expr.Right = p.parseExpression(precedence)
	if expr.Right == nil {
		return nil
	}
	return expr
}

func (p *Parser) parseAssignmentExpression(left Expression) Expression {
	expr := &AssignmentExpression{Token: p.curToken, Target: left}

	switch left.(type) {
	case *Identifier, *MemberExpression, *IndexExpression:
		// assignable
	default:
		p.addError(p.curToken, "invalid assignment target")
		return nil
	}

	p.nextToken()
	// Right-associative: parse the value at one level below ASSIGNMENT.
	expr.Value = p.parseExpression(ASSIGNMENT - 1)
	if expr.Value == nil {
		return nil
	}
	return expr
}

func (p *Parser) parseCallExpression(function Expression) Expression {
	call := &CallExpression{Token: p.curToken, Function: function}
	call.Arguments = p.parseExpressionList(lexer.RPAREN)
	if call.Arguments == nil && !p.curTokenIs(lexer.RPAREN) {
		return nil
	}
	return call
}

func (p *Parser) parseIndexExpression(left Expression) Expression {
	expr := &IndexExpression{Token: p.curToken, Left: left}
	p.nextToken()
	expr.Index = p.parseExpression(LOWEST)
	if expr.Index == nil {
		return nil
	}
	if !p.expectPeek(lexer.RBRACKET) {
		return nil
	}
	return expr
}

func (p *Parser) parseMemberExpression(object Expression) Expression {
	expr := &MemberExpression{Token: p.curToken, Object: object}
	if !p.expectPeek(lexer.IDENT) {
		return nil
	}
	expr.Property = &Identifier{Token: p.curToken, Value: p.curToken.Literal}
	return expr
}

func (p *Parser) parseStaticAccessExpression(left Expression) Expression {
	target, ok := left.(*Identifier)
	if !ok {
		p.addError(p.curToken, "'::' requires an enum name on its left")
		return nil
	}
	expr := &StaticAccessExpression{Token: p.curToken, Target: target}
	if !p.expectPeek(lexer.IDENT) {
		return nil
	}
	expr.Variant = &Identifier{Token: p.curToken, Value: p.curToken.Literal}
	return expr
}

// parseExpressionList parses a comma-separated expression list; curToken is
// on the opening delimiter on entry and on `end` on exit.
func (p *Parser) parseExpressionList(end lexer.TokenType) []Expression {
	list := []Expression{}

	if p.peekTokenIs(end) {
		p.nextToken()
		return list
	}

	p.nextToken()
	first := p.parseExpression(LOWEST)
	if first == nil {
		return nil
	}
	list = append(list, first)

	for p.peekTokenIs(lexer.COMMA) {
		p.nextToken()
		p.nextToken()
		next := p.parseExpression(LOWEST)
		if next == nil {
			return nil
		}
		list = append(list, next)
	}

	if !p.expectPeek(end) {
		return nil
	}
	return list
}

// --- Helpers ---

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.l.NextToken()
}

func (p *Parser) curTokenIs(t lexer.TokenType) bool {
	return p.curToken.Type == t
}

func (p *Parser) peekTokenIs(t lexer.TokenType) bool {
	return p.peekToken.Type == t
}

func (p *Parser) expectPeek(t lexer.TokenType) bool {
	if p.peekTokenIs(t) {
		p.nextToken()
		return true
	}
	p.peekError(t)
	return false
}

func (p *Parser) peekPrecedence() int {
	if prec, ok := precedences[p.peekToken.Type]; ok {
		return prec
	}
	return LOWEST
}

func (p *Parser) curPrecedence() int {
	if prec, ok := precedences[p.curToken.Type]; ok {
		return prec
	}
	return LOWEST
}

// --- Error handling ---

func (p *Parser) peekError(t lexer.TokenType) {
	p.addError(p.peekToken, fmt.Sprintf("expected next token to be %s, got %s instead", t, p.peekToken.Type))
}

func (p *Parser) addError(tok lexer.Token, msg string) {
	p.errors = append(p.errors, &errors.SyntaxError{
		Position: errors.Position{
			Line:     tok.Line,
			Column:   tok.Column,
			StartPos: tok.StartPos,
			EndPos:   tok.EndPos,
			Source:   p.source,
		},
		Msg: msg,
	})
}
