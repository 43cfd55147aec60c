package parser

import (
	"fmt"

	"bead/pkg/lexer"
	"bead/pkg/types"
)

// parseClassDeclaration parses `class Name [(Super)] { members }`.
// curToken is 'class' on entry and the closing '}' on exit.
func (p *Parser) parseClassDeclaration() Statement {
	decl := &ClassDeclaration{Token: p.curToken}

	if !p.expectPeek(lexer.IDENT) {
		return nil
	}
	decl.Name = &Identifier{Token: p.curToken, Value: p.curToken.Literal}

	if p.peekTokenIs(lexer.LPAREN) {
		p.nextToken()
		if !p.expectPeek(lexer.IDENT) {
			return nil
		}
		decl.SuperClass = &Identifier{Token: p.curToken, Value: p.curToken.Literal}
		if !p.expectPeek(lexer.RPAREN) {
			return nil
		}
	}

	if !p.expectPeek(lexer.LBRACE) {
		return nil
	}
	p.nextToken() // move past '{'

	for !p.curTokenIs(lexer.RBRACE) && !p.curTokenIs(lexer.EOF) {
		if !p.parseClassMember(decl) {
			return nil
		}
		p.nextToken()
	}

	if !p.curTokenIs(lexer.RBRACE) {
		p.addError(p.curToken, fmt.Sprintf("expected '}' to close class %s", decl.Name.Value))
		return nil
	}
	return decl
}

// parseClassMember parses one field, method, constructor, or destructor and
// appends it to the class. curToken ends on the member's final token.
func (p *Parser) parseClassMember(class *ClassDeclaration) bool {
	visToken := p.curToken
	visibility := types.AccessPublic
	explicit := false

	switch p.curToken.Type {
	case lexer.PRIV:
		visibility = types.AccessPrivate
		explicit = true
		p.nextToken()
	case lexer.PUB:
		explicit = true
		p.nextToken()
	}

	switch {
	case p.curTokenIs(lexer.FN):
		return p.parseFunctionMember(class, visToken, visibility, explicit)
	case p.curTokenIs(lexer.IDENT) || lexer.IsTypeKeyword(p.curToken.Type):
		field := p.parseFieldDeclaration(visToken, visibility)
		if field == nil {
			return false
		}
		class.Fields = append(class.Fields, field)
		return true
	default:
		p.addError(p.curToken, fmt.Sprintf("expected a field or method declaration, got %s", p.curToken.Type))
		return false
	}
}

// parseFieldDeclaration parses `TypeName name;` with curToken on the type.
func (p *Parser) parseFieldDeclaration(visToken lexer.Token, visibility types.AccessModifier) *FieldDeclaration {
	field := &FieldDeclaration{
		Token:      visToken,
		Visibility: visibility,
		TypeName:   p.curToken.Literal,
	}

	if !p.expectPeek(lexer.IDENT) {
		return nil
	}
	field.Name = &Identifier{Token: p.curToken, Value: p.curToken.Literal}

	if !p.expectPeek(lexer.SEMICOLON) {
		return nil
	}
	return field
}

// parseFunctionMember dispatches on the name after 'fn': `construct` and
// `destruct` are special members, everything else is an ordinary method.
func (p *Parser) parseFunctionMember(class *ClassDeclaration, visToken lexer.Token, visibility types.AccessModifier, explicitVis bool) bool {
	fnToken := p.curToken

	switch p.peekToken.Type {
	case lexer.CONSTRUCT:
		if explicitVis {
			p.addError(visToken, "constructors may not carry a visibility modifier")
			return false
		}
		p.nextToken()
		ctor := p.parseConstructorDeclaration()
		if ctor == nil {
			return false
		}
		class.Constructors = append(class.Constructors, ctor)
		return true
	case lexer.DESTRUCT:
		if explicitVis {
			p.addError(visToken, "destructors may not carry a visibility modifier")
			return false
		}
		p.nextToken()
		dtor := p.parseDestructorDeclaration()
		if dtor == nil {
			return false
		}
		class.Destructors = append(class.Destructors, dtor)
		return true
	default:
		method := p.parseMethodDeclaration(fnToken, visibility)
		if method == nil {
			return false
		}
		class.Methods = append(class.Methods, method)
		return true
	}
}

// parseMethodDeclaration parses `name(params) [-> Type] (; | { body })` with
// curToken on 'fn'. A semicolon in place of a body is a forward declaration.
func (p *Parser) parseMethodDeclaration(fnToken lexer.Token, visibility types.AccessModifier) *MethodDeclaration {
	method := &MethodDeclaration{Token: fnToken, Visibility: visibility}

	if !p.expectPeek(lexer.IDENT) {
		return nil
	}
	method.Name = &Identifier{Token: p.curToken, Value: p.curToken.Literal}

	if !p.expectPeek(lexer.LPAREN) {
		return nil
	}
	method.Params = p.parseParameterList()
	if method.Params == nil && !p.curTokenIs(lexer.RPAREN) {
		return nil
	}

	if p.peekTokenIs(lexer.ARROW) {
		p.nextToken()
		if !p.peekTokenIs(lexer.IDENT) && !lexer.IsTypeKeyword(p.peekToken.Type) {
			p.peekError(lexer.IDENT)
			return nil
		}
		p.nextToken()
		method.ReturnType = p.curToken.Literal
	}

	switch p.peekToken.Type {
	case lexer.SEMICOLON:
		p.nextToken() // forward declaration, no body
	case lexer.LBRACE:
		p.nextToken()
		method.Body = p.parseBlockStatement()
		if method.Body == nil {
			return nil
		}
	default:
		p.addError(p.peekToken, fmt.Sprintf("expected ';' or '{' after method signature, got %s", p.peekToken.Type))
		return nil
	}

	return method
}

// parseConstructorDeclaration parses `construct(params) { body }` with
// curToken on 'construct'. Constructors always have a body.
func (p *Parser) parseConstructorDeclaration() *ConstructorDeclaration {
	ctor := &ConstructorDeclaration{Token: p.curToken}

	if !p.expectPeek(lexer.LPAREN) {
		return nil
	}
	ctor.Params = p.parseParameterList()
	if ctor.Params == nil && !p.curTokenIs(lexer.RPAREN) {
		return nil
	}

	if !p.expectPeek(lexer.LBRACE) {
		return nil
	}
	ctor.Body = p.parseBlockStatement()
	if ctor.Body == nil {
		return nil
	}
	return ctor
}

// parseDestructorDeclaration parses `destruct() { body }` with curToken on
// 'destruct'. Destructors take no parameters and return no value.
func (p *Parser) parseDestructorDeclaration() *DestructorDeclaration {
	dtor := &DestructorDeclaration{Token: p.curToken}

	if !p.expectPeek(lexer.LPAREN) {
		return nil
	}
	if !p.peekTokenIs(lexer.RPAREN) {
		p.addError(p.peekToken, "destructors take no parameters")
		return nil
	}
	p.nextToken()

	if p.peekTokenIs(lexer.ARROW) {
		p.addError(p.peekToken, "destructors may not declare a return type")
		return nil
	}

	if !p.expectPeek(lexer.LBRACE) {
		return nil
	}
	dtor.Body = p.parseBlockStatement()
	if dtor.Body == nil {
		return nil
	}
	return dtor
}

// parseParameterList parses the parenthesized parameter list of a method or
// constructor. curToken is '(' on entry and ')' on exit. Accepted forms:
//
//	TypeName name    named parameter
//	TypeName         type-only (forward declarations)
//	*name            positional remainder
//	**name           keyword remainder
func (p *Parser) parseParameterList() []*Parameter {
	params := []*Parameter{}

	if p.peekTokenIs(lexer.RPAREN) {
		p.nextToken()
		return params
	}

	p.nextToken()
	for {
		param := p.parseParameter()
		if param == nil {
			return nil
		}
		params = append(params, param)

		if !p.peekTokenIs(lexer.COMMA) {
			break
		}
		p.nextToken() // consume current param's last token
		p.nextToken() // move to next param
	}

	if !p.expectPeek(lexer.RPAREN) {
		return nil
	}
	return params
}

func (p *Parser) parseParameter() *Parameter {
	param := &Parameter{Token: p.curToken}

	if p.curTokenIs(lexer.ASTERISK) {
		param.Variadic = types.VariadicPositional
		if p.peekTokenIs(lexer.ASTERISK) {
			p.nextToken()
			param.Variadic = types.VariadicKeyword
		}
		if !p.expectPeek(lexer.IDENT) {
			return nil
		}
		param.Name = &Identifier{Token: p.curToken, Value: p.curToken.Literal}
		return param
	}

	if !p.curTokenIs(lexer.IDENT) && !lexer.IsTypeKeyword(p.curToken.Type) {
		p.addError(p.curToken, fmt.Sprintf("expected parameter type, got %s", p.curToken.Type))
		return nil
	}
	param.TypeName = p.curToken.Literal

	// A following identifier names the parameter; otherwise it is type-only.
	if p.peekTokenIs(lexer.IDENT) {
		p.nextToken()
		param.Name = &Identifier{Token: p.curToken, Value: p.curToken.Literal}
	}
	return param
}
