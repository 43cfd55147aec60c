package resolver

import (
	"fmt"
	"strings"

	"bead/pkg/errors"
	"bead/pkg/lexer"
	"bead/pkg/parser"
	"bead/pkg/types"
)

// resolveMemberAccess walks every method, constructor, and destructor body
// of every linked class and resolves each member access against the
// accessing class's linearization, enforcing the visibility rule. Classes
// that failed inheritance linking are skipped entirely rather than
// cascading into spurious unknown-member noise.
func (r *Resolver) resolveMemberAccess() {
	for _, name := range r.classOrder {
		cm := r.resolved.Classes[name]
		if !cm.Linked() {
			continue
		}
		decl := r.classDecls[name]
		r.currentSrc = r.classSrc[name]

		for _, method := range decl.Methods {
			if method.Body != nil {
				r.checkBody(cm, method.Params, method.Body, false)
			}
		}
		for _, ctor := range decl.Constructors {
			r.checkBody(cm, ctor.Params, ctor.Body, true)
		}
		for _, dtor := range decl.Destructors {
			r.checkBody(cm, nil, dtor.Body, false)
		}
	}
}

func (r *Resolver) checkBody(cm *types.ClassMetadata, params []*parser.Parameter, body *parser.BlockStatement, inConstructor bool) {
	ctx := types.NewAccessContext(cm.ClassName)
	ctx.InConstructor = inConstructor
	bc := &bodyChecker{r: r, class: cm, ctx: ctx}
	bc.pushScope()
	for _, p := range params {
		if p.Name != nil {
			bc.define(p.Name.Value, p.TypeName)
		}
	}
	bc.checkBlock(body)
	bc.popScope()
}

// bodyChecker resolves one body with a lexical scope of locals and
// parameters layered over the class's linearization.
type bodyChecker struct {
	r      *Resolver
	class  *types.ClassMetadata
	ctx    *types.AccessContext
	scopes []map[string]string // local name -> declared type name
}

func (bc *bodyChecker) pushScope() {
	bc.scopes = append(bc.scopes, make(map[string]string))
}

func (bc *bodyChecker) popScope() {
	bc.scopes = bc.scopes[:len(bc.scopes)-1]
}

func (bc *bodyChecker) define(name, typeName string) {
	bc.scopes[len(bc.scopes)-1][name] = typeName
}

func (bc *bodyChecker) lookupLocal(name string) (string, bool) {
	for i := len(bc.scopes) - 1; i >= 0; i-- {
		if t, ok := bc.scopes[i][name]; ok {
			return t, true
		}
	}
	return "", false
}

func (bc *bodyChecker) checkBlock(block *parser.BlockStatement) {
	bc.pushScope()
	for _, stmt := range block.Statements {
		bc.checkStatement(stmt)
	}
	bc.popScope()
}

func (bc *bodyChecker) checkStatement(stmt parser.Statement) {
	switch s := stmt.(type) {
	case *parser.LocalDeclaration:
		if s.Value != nil {
			bc.checkExpression(s.Value)
		}
		bc.define(s.Name.Value, s.TypeName)
	case *parser.ExpressionStatement:
		bc.checkExpression(s.Expression)
	case *parser.ReturnStatement:
		if s.ReturnValue != nil {
			bc.checkExpression(s.ReturnValue)
		}
	case *parser.DeleteStatement:
		bc.checkExpression(s.Target)
	case *parser.BlockStatement:
		bc.checkBlock(s)
	case *parser.IfStatement:
		bc.checkExpression(s.Condition)
		bc.checkBlock(s.Consequence)
		for _, elif := range s.Elifs {
			bc.checkExpression(elif.Condition)
			bc.checkBlock(elif.Consequence)
		}
		if s.Alternative != nil {
			bc.checkBlock(s.Alternative)
		}
	case *parser.WhileStatement:
		bc.checkExpression(s.Condition)
		bc.checkBlock(s.Body)
	case *parser.ForStatement:
		bc.pushScope()
		if s.Init != nil {
			bc.checkStatement(s.Init)
		}
		if s.Condition != nil {
			bc.checkExpression(s.Condition)
		}
		if s.Post != nil {
			bc.checkExpression(s.Post)
		}
		bc.checkBlock(s.Body)
		bc.popScope()
	}
}

// checkExpression resolves one expression and returns the name of the
// declared class it statically evaluates to, or "" when the type is a
// builtin, an enum, or not statically known. The returned name is what lets
// member chains like self.logger.log(...) resolve link by link.
func (bc *bodyChecker) checkExpression(expr parser.Expression) string {
	switch e := expr.(type) {
	case *parser.Identifier:
		return bc.checkIdentifier(e)

	case *parser.SelfExpression:
		return bc.class.ClassName

	case *parser.MemberExpression:
		return bc.checkMemberExpression(e)

	case *parser.StaticAccessExpression:
		if _, ok := bc.r.resolved.ResolveVariant(e.Target.Value, e.Variant.Value); !ok {
			bc.r.addError(e.Variant.Token, errors.UnresolvedEnumVariant,
				fmt.Sprintf("'%s' does not resolve to an enum variant", e.String()),
				e.String(), "")
		}
		return ""

	case *parser.NewExpression:
		for _, arg := range e.Arguments {
			bc.checkExpression(arg)
		}
		bc.checkInstantiation(e)
		return e.ClassName.Value

	case *parser.CallExpression:
		resultType := bc.checkExpression(e.Function)
		for _, arg := range e.Arguments {
			bc.checkExpression(arg)
		}
		return resultType

	case *parser.AssignmentExpression:
		bc.checkExpression(e.Target)
		bc.checkExpression(e.Value)
		return ""

	case *parser.InfixExpression:
		bc.checkExpression(e.Left)
		bc.checkExpression(e.Right)
		return ""

	case *parser.PrefixExpression:
		bc.checkExpression(e.Right)
		return ""

	case *parser.IndexExpression:
		bc.checkExpression(e.Left)
		bc.checkExpression(e.Index)
		return ""

	case *parser.ListLiteral:
		for _, el := range e.Elements {
			bc.checkExpression(el)
		}
		return ""

	case *parser.SuperCallExpression:
		// A root class has nothing to delegate to, wherever the call
		// appears. Delegation placement and arity stay with the
		// construction chain validator.
		if len(bc.class.Linearization) < 2 {
			bc.r.addError(e.Token, errors.NoSuperclass,
				fmt.Sprintf("class '%s' has no superclass to delegate to", bc.class.ClassName),
				bc.class.ClassName, "")
		}
		for _, arg := range e.Arguments {
			bc.checkExpression(arg)
		}
		return ""

	case *parser.VariadicArgument:
		if _, ok := bc.lookupLocal(e.Name.Value); !ok {
			bc.r.addError(e.Name.Token, errors.UnknownMember,
				fmt.Sprintf("unknown name '%s'", e.Name.Value), e.Name.Value, "")
		}
		return ""
	}

	// Literals carry no class type.
	return ""
}

// checkIdentifier resolves a bare name: locals and parameters shadow class
// members, which shadow global type names.
func (bc *bodyChecker) checkIdentifier(ident *parser.Identifier) string {
	if typeName, ok := bc.lookupLocal(ident.Value); ok {
		return bc.declaredClass(typeName)
	}
	if m, found := bc.r.resolved.LookupMember(bc.class.ClassName, ident.Value); found {
		bc.checkAccess(m, ident.Token)
		return bc.memberClassType(m)
	}
	if _, ok := bc.r.classDecls[ident.Value]; ok {
		return ""
	}
	if _, ok := bc.r.enumDecls[ident.Value]; ok {
		return ""
	}
	if owner, ok := bc.variantOwner(ident.Value); ok {
		bc.r.addError(ident.Token, errors.UnresolvedEnumVariant,
			fmt.Sprintf("enum variant '%s' must be qualified: did you mean '%s::%s'?",
				ident.Value, owner, ident.Value),
			ident.Value, owner)
		return ""
	}
	bc.r.addError(ident.Token, errors.UnknownMember,
		fmt.Sprintf("unknown name '%s'", ident.Value), ident.Value, "")
	return ""
}

// variantOwner scans the registered enums in declaration order for one that
// declares the named variant, so an unqualified variant reference gets the
// qualification it needs instead of a generic unknown-name diagnostic.
func (bc *bodyChecker) variantOwner(name string) (string, bool) {
	for _, enumName := range bc.r.enumOrder {
		if e := bc.r.resolved.Enum(enumName); e != nil && e.Variant(name) != nil {
			return enumName, true
		}
	}
	return "", false
}

func (bc *bodyChecker) checkMemberExpression(e *parser.MemberExpression) string {
	// super.member scans the linearization from the second entry.
	if _, ok := e.Object.(*parser.SuperExpression); ok {
		if len(bc.class.Linearization) < 2 {
			bc.r.addError(e.Token, errors.NoSuperclass,
				fmt.Sprintf("class '%s' has no superclass", bc.class.ClassName),
				bc.class.ClassName, "")
			return ""
		}
		m, found := bc.r.resolved.LookupSuperMember(bc.class.ClassName, e.Property.Value)
		if !found {
			bc.r.addError(e.Property.Token, errors.UnknownMember,
				fmt.Sprintf("no superclass of '%s' declares '%s'", bc.class.ClassName, e.Property.Value),
				e.Property.Value, "")
			return ""
		}
		bc.checkAccess(m, e.Property.Token)
		return bc.memberClassType(m)
	}

	objType := bc.checkExpression(e.Object)
	if objType == "" {
		// Dynamic or builtin-typed object, nothing to resolve against.
		return ""
	}
	target := bc.r.resolved.Class(objType)
	if target == nil || !target.Linked() {
		return ""
	}
	m, found := bc.r.resolved.LookupMember(objType, e.Property.Value)
	if !found {
		bc.r.addError(e.Property.Token, errors.UnknownMember,
			fmt.Sprintf("class '%s' has no member '%s'", objType, e.Property.Value),
			objType+"."+e.Property.Value, "")
		return ""
	}
	bc.checkAccess(m, e.Property.Token)
	return bc.memberClassType(m)
}

// checkInstantiation validates a `new ClassName(args)` site: the name must
// be an instantiable class and the arguments must satisfy the constructor
// the instantiation runs (the class's own, or the nearest inherited one).
func (bc *bodyChecker) checkInstantiation(e *parser.NewExpression) {
	name := e.ClassName.Value
	target := bc.r.resolved.Class(name)
	if target == nil {
		if _, ok := bc.r.enumDecls[name]; ok {
			bc.r.addError(e.ClassName.Token, errors.NotAClass,
				fmt.Sprintf("'%s' is an enum, not a class", name), name, "")
		} else {
			bc.r.addError(e.ClassName.Token, errors.UnknownMember,
				fmt.Sprintf("unknown class '%s'", name), name, "")
		}
		return
	}
	if !target.Linked() {
		return
	}
	if !target.Instantiable {
		bc.r.addError(e.ClassName.Token, errors.AbstractMethodUnimplemented,
			fmt.Sprintf("class '%s' is not instantiable: no body for %s",
				name, strings.Join(target.Obligations, ", ")),
			name, strings.Join(target.Obligations, ", "))
		return
	}

	ctor := target.Constructor
	if ctor == nil {
		ctor = bc.r.resolved.SuperConstructor(name)
	}
	bc.r.checkConstructorArity(e.Arguments, ctor, e.ClassName.Token,
		fmt.Sprintf("constructor of '%s'", name))
}

// checkAccess enforces the visibility rule: a private member is usable only
// from bodies of the exact class that declares it.
func (bc *bodyChecker) checkAccess(m *types.MemberInfo, tok lexer.Token) {
	if m.IsAccessibleFrom(bc.ctx) {
		return
	}
	bc.r.addError(tok, errors.PrivateMemberInaccessible,
		fmt.Sprintf("'%s' is private to class '%s'", m.Name, m.DeclaredIn),
		m.DeclaredIn+"."+m.Name, bc.class.ClassName)
}

// memberClassType returns the declared class a member access evaluates to:
// the field's type, or the method's return type, when it names a class.
func (bc *bodyChecker) memberClassType(m *types.MemberInfo) string {
	if m.Kind == types.FieldMember {
		return bc.declaredClass(m.TypeName)
	}
	return bc.declaredClass(m.ReturnType)
}

func (bc *bodyChecker) declaredClass(typeName string) string {
	if _, ok := bc.r.classDecls[typeName]; ok {
		return typeName
	}
	return ""
}
