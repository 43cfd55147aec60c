package parser

import (
	"bytes"
	"math/big"
	"strings"

	"bead/pkg/lexer"
	"bead/pkg/types"
)

// Node is the base interface of all AST nodes.
type Node interface {
	TokenLiteral() string
	String() string
}

// Statement nodes appear in declaration and block position.
type Statement interface {
	Node
	statementNode()
}

// Expression nodes produce a value.
type Expression interface {
	Node
	expressionNode()
}

// Program is the root node: an ordered sequence of top-level declarations
// (enums and classes).
type Program struct {
	Declarations []Statement
}

func (p *Program) TokenLiteral() string {
	if len(p.Declarations) > 0 {
		return p.Declarations[0].TokenLiteral()
	}
	return ""
}

func (p *Program) String() string {
	var out bytes.Buffer
	for _, d := range p.Declarations {
		out.WriteString(d.String())
		out.WriteString("\n")
	}
	return out.String()
}

// --- Declarations ---

// EnumDeclaration represents `enum Name { Variant, ... }`.
type EnumDeclaration struct {
	Token    lexer.Token // the 'enum' token
	Name     *Identifier
	Variants []*Identifier // declaration order
}

func (ed *EnumDeclaration) statementNode()       {}
func (ed *EnumDeclaration) TokenLiteral() string { return ed.Token.Literal }
func (ed *EnumDeclaration) String() string {
	names := make([]string, len(ed.Variants))
	for i, v := range ed.Variants {
		names[i] = v.Value
	}
	return "enum " + ed.Name.Value + " { " + strings.Join(names, ", ") + " }"
}

// ClassDeclaration represents `class Name [(Super)] { members }`.
// Constructors and Destructors are slices so that duplicate declarations
// survive parsing and can be reported by the resolver.
type ClassDeclaration struct {
	Token        lexer.Token // the 'class' token
	Name         *Identifier
	SuperClass   *Identifier // nil for root classes
	Fields       []*FieldDeclaration
	Methods      []*MethodDeclaration
	Constructors []*ConstructorDeclaration
	Destructors  []*DestructorDeclaration
}

func (cd *ClassDeclaration) statementNode()       {}
func (cd *ClassDeclaration) TokenLiteral() string { return cd.Token.Literal }
func (cd *ClassDeclaration) String() string {
	var out bytes.Buffer
	out.WriteString("class " + cd.Name.Value)
	if cd.SuperClass != nil {
		out.WriteString("(" + cd.SuperClass.Value + ")")
	}
	out.WriteString(" { ... }")
	return out.String()
}

// FieldDeclaration represents `[priv|pub] TypeName name;`.
type FieldDeclaration struct {
	Token      lexer.Token // the visibility or type token
	Visibility types.AccessModifier
	TypeName   string
	Name       *Identifier
}

func (fd *FieldDeclaration) statementNode()       {}
func (fd *FieldDeclaration) TokenLiteral() string { return fd.Token.Literal }
func (fd *FieldDeclaration) String() string {
	return fd.Visibility.String() + " " + fd.TypeName + " " + fd.Name.Value + ";"
}

// Parameter represents one entry in a parameter list. Name may be nil for
// type-only parameters in forward declarations (`fn write(LogLevel, str);`);
// TypeName is empty for variadic remainder markers.
type Parameter struct {
	Token    lexer.Token
	Name     *Identifier // may be nil
	TypeName string
	Variadic types.VariadicKind
}

func (p *Parameter) expressionNode()      {}
func (p *Parameter) TokenLiteral() string { return p.Token.Literal }
func (p *Parameter) String() string {
	switch p.Variadic {
	case types.VariadicPositional:
		return "*" + p.Name.Value
	case types.VariadicKeyword:
		return "**" + p.Name.Value
	}
	if p.Name == nil {
		return p.TypeName
	}
	return p.TypeName + " " + p.Name.Value
}

// MethodDeclaration represents `[priv|pub] fn name(params) [-> Type] (; | { body })`.
// A nil Body is a forward declaration: some class in the descendant chain
// must supply a body before the class is instantiable.
type MethodDeclaration struct {
	Token      lexer.Token // the 'fn' token
	Name       *Identifier
	Visibility types.AccessModifier // default pub
	Params     []*Parameter
	ReturnType string // empty = no value
	Body       *BlockStatement
}

func (md *MethodDeclaration) statementNode()       {}
func (md *MethodDeclaration) TokenLiteral() string { return md.Token.Literal }
func (md *MethodDeclaration) String() string {
	var out bytes.Buffer
	out.WriteString(md.Visibility.String() + " fn " + md.Name.Value + "(")
	params := make([]string, len(md.Params))
	for i, p := range md.Params {
		params[i] = p.String()
	}
	out.WriteString(strings.Join(params, ", ") + ")")
	if md.ReturnType != "" {
		out.WriteString(" -> " + md.ReturnType)
	}
	if md.Body == nil {
		out.WriteString(";")
	} else {
		out.WriteString(" { ... }")
	}
	return out.String()
}

// ConstructorDeclaration represents `fn construct(params) { body }`.
// Visibility is implicitly public.
type ConstructorDeclaration struct {
	Token  lexer.Token // the 'construct' token
	Params []*Parameter
	Body   *BlockStatement
}

func (cd *ConstructorDeclaration) statementNode()       {}
func (cd *ConstructorDeclaration) TokenLiteral() string { return cd.Token.Literal }
func (cd *ConstructorDeclaration) String() string {
	params := make([]string, len(cd.Params))
	for i, p := range cd.Params {
		params[i] = p.String()
	}
	return "fn construct(" + strings.Join(params, ", ") + ") { ... }"
}

// SuperCall returns the `super(...)` call that is the first statement of the
// constructor body, or nil when delegation is implicit.
func (cd *ConstructorDeclaration) SuperCall() *SuperCallExpression {
	if cd.Body == nil || len(cd.Body.Statements) == 0 {
		return nil
	}
	es, ok := cd.Body.Statements[0].(*ExpressionStatement)
	if !ok {
		return nil
	}
	sc, ok := es.Expression.(*SuperCallExpression)
	if !ok {
		return nil
	}
	return sc
}

// DestructorDeclaration represents `fn destruct() { body }`: no parameters,
// no return value.
type DestructorDeclaration struct {
	Token lexer.Token // the 'destruct' token
	Body  *BlockStatement
}

func (dd *DestructorDeclaration) statementNode()       {}
func (dd *DestructorDeclaration) TokenLiteral() string { return dd.Token.Literal }
func (dd *DestructorDeclaration) String() string       { return "fn destruct() { ... }" }

// --- Statements ---

// BlockStatement is a `{ ... }` sequence of statements.
type BlockStatement struct {
	Token      lexer.Token // the '{' token
	Statements []Statement
}

func (bs *BlockStatement) statementNode()       {}
func (bs *BlockStatement) TokenLiteral() string { return bs.Token.Literal }
func (bs *BlockStatement) String() string {
	var out bytes.Buffer
	for _, s := range bs.Statements {
		out.WriteString(s.String())
	}
	return out.String()
}

// LocalDeclaration represents `TypeName name [= value];` inside a body.
type LocalDeclaration struct {
	Token    lexer.Token // the type token
	TypeName string
	Name     *Identifier
	Value    Expression // may be nil
}

func (ld *LocalDeclaration) statementNode()       {}
func (ld *LocalDeclaration) TokenLiteral() string { return ld.Token.Literal }
func (ld *LocalDeclaration) String() string {
	var out bytes.Buffer
	out.WriteString(ld.TypeName + " " + ld.Name.Value)
	if ld.Value != nil {
		out.WriteString(" = " + ld.Value.String())
	}
	out.WriteString(";")
	return out.String()
}

// ExpressionStatement wraps an expression in statement position.
type ExpressionStatement struct {
	Token      lexer.Token // first token of the expression
	Expression Expression
}

func (es *ExpressionStatement) statementNode()       {}
func (es *ExpressionStatement) TokenLiteral() string { return es.Token.Literal }
func (es *ExpressionStatement) String() string {
	if es.Expression != nil {
		return es.Expression.String() + ";"
	}
	return ";"
}

// ReturnStatement represents `return [expr];`.
type ReturnStatement struct {
	Token       lexer.Token // the 'return' token
	ReturnValue Expression  // may be nil
}

func (rs *ReturnStatement) statementNode()       {}
func (rs *ReturnStatement) TokenLiteral() string { return rs.Token.Literal }
func (rs *ReturnStatement) String() string {
	if rs.ReturnValue != nil {
		return "return " + rs.ReturnValue.String() + ";"
	}
	return "return;"
}

// DeleteStatement represents `del expr;`.
type DeleteStatement struct {
	Token  lexer.Token // the 'del' token
	Target Expression
}

func (ds *DeleteStatement) statementNode()       {}
func (ds *DeleteStatement) TokenLiteral() string { return ds.Token.Literal }
func (ds *DeleteStatement) String() string       { return "del " + ds.Target.String() + ";" }

// ElifBranch is one `elif cond { ... }` arm of an if statement.
type ElifBranch struct {
	Token       lexer.Token // the 'elif' token
	Condition   Expression
	Consequence *BlockStatement
}

// IfStatement represents `if cond { } [elif cond { }]* [else { }]`.
type IfStatement struct {
	Token       lexer.Token // the 'if' token
	Condition   Expression
	Consequence *BlockStatement
	Elifs       []*ElifBranch
	Alternative *BlockStatement // may be nil
}

func (is *IfStatement) statementNode()       {}
func (is *IfStatement) TokenLiteral() string { return is.Token.Literal }
func (is *IfStatement) String() string {
	var out bytes.Buffer
	out.WriteString("if " + is.Condition.String() + " { " + is.Consequence.String() + " }")
	for _, e := range is.Elifs {
		out.WriteString(" elif " + e.Condition.String() + " { " + e.Consequence.String() + " }")
	}
	if is.Alternative != nil {
		out.WriteString(" else { " + is.Alternative.String() + " }")
	}
	return out.String()
}

// WhileStatement represents `while cond { ... }`.
type WhileStatement struct {
	Token     lexer.Token // the 'while' token
	Condition Expression
	Body      *BlockStatement
}

func (ws *WhileStatement) statementNode()       {}
func (ws *WhileStatement) TokenLiteral() string { return ws.Token.Literal }
func (ws *WhileStatement) String() string {
	return "while " + ws.Condition.String() + " { " + ws.Body.String() + " }"
}

// ForStatement represents `for (init; cond; post) { ... }`. Each header
// slot may be empty.
type ForStatement struct {
	Token       lexer.Token // the 'for' token
	Init        Statement   // LocalDeclaration or ExpressionStatement; may be nil
	Condition   Expression  // may be nil
	Post        Expression  // may be nil
	Body        *BlockStatement
}

func (fs *ForStatement) statementNode()       {}
func (fs *ForStatement) TokenLiteral() string { return fs.Token.Literal }
func (fs *ForStatement) String() string       { return "for (...) { " + fs.Body.String() + " }" }

// --- Expressions ---

// Identifier is a bare symbol reference.
type Identifier struct {
	Token lexer.Token
	Value string
}

func (i *Identifier) expressionNode()      {}
func (i *Identifier) TokenLiteral() string { return i.Token.Literal }
func (i *Identifier) String() string       { return i.Value }

// IntegerLiteral carries arbitrary-precision Bead int values.
type IntegerLiteral struct {
	Token lexer.Token
	Value *big.Int
}

func (il *IntegerLiteral) expressionNode()      {}
func (il *IntegerLiteral) TokenLiteral() string { return il.Token.Literal }
func (il *IntegerLiteral) String() string       { return il.Token.Literal }

// FloatLiteral is a float literal.
type FloatLiteral struct {
	Token lexer.Token
	Value float64
}

func (fl *FloatLiteral) expressionNode()      {}
func (fl *FloatLiteral) TokenLiteral() string { return fl.Token.Literal }
func (fl *FloatLiteral) String() string       { return fl.Token.Literal }

// StringLiteral is a double-quoted string literal.
type StringLiteral struct {
	Token lexer.Token
	Value string
}

func (sl *StringLiteral) expressionNode()      {}
func (sl *StringLiteral) TokenLiteral() string { return sl.Token.Literal }
func (sl *StringLiteral) String() string       { return "\"" + sl.Value + "\"" }

// CharLiteral is a single-quoted character literal.
type CharLiteral struct {
	Token lexer.Token
	Value rune
}

func (cl *CharLiteral) expressionNode()      {}
func (cl *CharLiteral) TokenLiteral() string { return cl.Token.Literal }
func (cl *CharLiteral) String() string       { return "'" + string(cl.Value) + "'" }

// BytesLiteral is a b"..." literal; the content is kept verbatim.
type BytesLiteral struct {
	Token lexer.Token
	Value []byte
}

func (bl *BytesLiteral) expressionNode()      {}
func (bl *BytesLiteral) TokenLiteral() string { return bl.Token.Literal }
func (bl *BytesLiteral) String() string       { return "b\"" + string(bl.Value) + "\"" }

// BooleanLiteral represents `true` or `false`.
type BooleanLiteral struct {
	Token lexer.Token
	Value bool
}

func (bl *BooleanLiteral) expressionNode()      {}
func (bl *BooleanLiteral) TokenLiteral() string { return bl.Token.Literal }
func (bl *BooleanLiteral) String() string       { return bl.Token.Literal }

// NullLiteral represents `null`.
type NullLiteral struct {
	Token lexer.Token
}

func (nl *NullLiteral) expressionNode()      {}
func (nl *NullLiteral) TokenLiteral() string { return nl.Token.Literal }
func (nl *NullLiteral) String() string       { return "null" }

// SelfExpression represents `self`.
type SelfExpression struct {
	Token lexer.Token
}

func (se *SelfExpression) expressionNode()      {}
func (se *SelfExpression) TokenLiteral() string { return se.Token.Literal }
func (se *SelfExpression) String() string       { return "self" }

// SuperExpression represents `super` in member position (`super.m`).
type SuperExpression struct {
	Token lexer.Token
}

func (se *SuperExpression) expressionNode()      {}
func (se *SuperExpression) TokenLiteral() string { return se.Token.Literal }
func (se *SuperExpression) String() string       { return "super" }

// SuperCallExpression represents constructor delegation `super(args)`.
type SuperCallExpression struct {
	Token     lexer.Token // the 'super' token
	Arguments []Expression
}

func (sc *SuperCallExpression) expressionNode()      {}
func (sc *SuperCallExpression) TokenLiteral() string { return sc.Token.Literal }
func (sc *SuperCallExpression) String() string {
	args := make([]string, len(sc.Arguments))
	for i, a := range sc.Arguments {
		args[i] = a.String()
	}
	return "super(" + strings.Join(args, ", ") + ")"
}

// NewExpression represents `new ClassName(args)`.
type NewExpression struct {
	Token     lexer.Token // the 'new' token
	ClassName *Identifier
	Arguments []Expression
}

func (ne *NewExpression) expressionNode()      {}
func (ne *NewExpression) TokenLiteral() string { return ne.Token.Literal }
func (ne *NewExpression) String() string {
	args := make([]string, len(ne.Arguments))
	for i, a := range ne.Arguments {
		args[i] = a.String()
	}
	return "new " + ne.ClassName.Value + "(" + strings.Join(args, ", ") + ")"
}

// MemberExpression represents `object.property`.
type MemberExpression struct {
	Token    lexer.Token // the '.' token
	Object   Expression
	Property *Identifier
}

func (me *MemberExpression) expressionNode()      {}
func (me *MemberExpression) TokenLiteral() string { return me.Token.Literal }
func (me *MemberExpression) String() string {
	return me.Object.String() + "." + me.Property.Value
}

// StaticAccessExpression represents a qualified enum variant reference
// `EnumName::VariantName`.
type StaticAccessExpression struct {
	Token   lexer.Token // the '::' token
	Target  *Identifier
	Variant *Identifier
}

func (sa *StaticAccessExpression) expressionNode()      {}
func (sa *StaticAccessExpression) TokenLiteral() string { return sa.Token.Literal }
func (sa *StaticAccessExpression) String() string {
	return sa.Target.Value + "::" + sa.Variant.Value
}

// CallExpression represents `callee(args)`.
type CallExpression struct {
	Token     lexer.Token // the '(' token
	Function  Expression
	Arguments []Expression
}

func (ce *CallExpression) expressionNode()      {}
func (ce *CallExpression) TokenLiteral() string { return ce.Token.Literal }
func (ce *CallExpression) String() string {
	args := make([]string, len(ce.Arguments))
	for i, a := range ce.Arguments {
		args[i] = a.String()
	}
	return ce.Function.String() + "(" + strings.Join(args, ", ") + ")"
}

// IndexExpression represents `collection[index]`.
type IndexExpression struct {
	Token lexer.Token // the '[' token
	Left  Expression
	Index Expression
}

func (ie *IndexExpression) expressionNode()      {}
func (ie *IndexExpression) TokenLiteral() string { return ie.Token.Literal }
func (ie *IndexExpression) String() string {
	return "(" + ie.Left.String() + "[" + ie.Index.String() + "])"
}

// ListLiteral represents `[a, b, c]`.
type ListLiteral struct {
	Token    lexer.Token // the '[' token
	Elements []Expression
}

func (ll *ListLiteral) expressionNode()      {}
func (ll *ListLiteral) TokenLiteral() string { return ll.Token.Literal }
func (ll *ListLiteral) String() string {
	elems := make([]string, len(ll.Elements))
	for i, e := range ll.Elements {
		elems[i] = e.String()
	}
	return "[" + strings.Join(elems, ", ") + "]"
}

// PrefixExpression represents `-x`, `!x`, `~x`.
type PrefixExpression struct {
	Token    lexer.Token
	Operator string
	Right    Expression
}

func (pe *PrefixExpression) expressionNode()      {}
func (pe *PrefixExpression) TokenLiteral() string { return pe.Token.Literal }
func (pe *PrefixExpression) String() string {
	return "(" + pe.Operator + pe.Right.String() + ")"
}

// InfixExpression represents a binary operator application.
type InfixExpression struct {
	Token    lexer.Token // the operator token
	Left     Expression
	Operator string
	Right    Expression
}

func (ie *InfixExpression) expressionNode()      {}
func (ie *InfixExpression) TokenLiteral() string { return ie.Token.Literal }
func (ie *InfixExpression) String() string {
	return "(" + ie.Left.String() + " " + ie.Operator + " " + ie.Right.String() + ")"
}

// AssignmentExpression represents `target = value`.
type AssignmentExpression struct {
	Token  lexer.Token // the '=' token
	Target Expression
	Value  Expression
}

func (ae *AssignmentExpression) expressionNode()      {}
func (ae *AssignmentExpression) TokenLiteral() string { return ae.Token.Literal }
func (ae *AssignmentExpression) String() string {
	return ae.Target.String() + " = " + ae.Value.String()
}

// VariadicArgument represents forwarding an opaque remainder in an argument
// list: `*args` or `**kwargs`.
type VariadicArgument struct {
	Token lexer.Token // the '*' token
	Kind  types.VariadicKind
	Name  *Identifier
}

func (va *VariadicArgument) expressionNode()      {}
func (va *VariadicArgument) TokenLiteral() string { return va.Token.Literal }
func (va *VariadicArgument) String() string {
	if va.Kind == types.VariadicKeyword {
		return "**" + va.Name.Value
	}
	return "*" + va.Name.Value
}
