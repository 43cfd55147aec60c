package parser

import (
	"bead/pkg/lexer"
)

// parseEnumDeclaration parses `enum Name { Variant, Variant, ... }`.
// curToken is 'enum' on entry and the closing '}' on exit. Duplicate
// variant names are kept in order; the resolver reports them.
func (p *Parser) parseEnumDeclaration() Statement {
	decl := &EnumDeclaration{Token: p.curToken}

	if !p.expectPeek(lexer.IDENT) {
		return nil
	}
	decl.Name = &Identifier{Token: p.curToken, Value: p.curToken.Literal}

	if !p.expectPeek(lexer.LBRACE) {
		return nil
	}

	if p.peekTokenIs(lexer.RBRACE) {
		p.nextToken()
		return decl
	}

	if !p.expectPeek(lexer.IDENT) {
		return nil
	}
	decl.Variants = append(decl.Variants, &Identifier{Token: p.curToken, Value: p.curToken.Literal})

	for p.peekTokenIs(lexer.COMMA) {
		p.nextToken()
		// Trailing comma before '}' is allowed.
		if p.peekTokenIs(lexer.RBRACE) {
			break
		}
		if !p.expectPeek(lexer.IDENT) {
			return nil
		}
		decl.Variants = append(decl.Variants, &Identifier{Token: p.curToken, Value: p.curToken.Literal})
	}

	if !p.expectPeek(lexer.RBRACE) {
		return nil
	}
	return decl
}
