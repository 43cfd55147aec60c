package resolver

import (
	"fmt"

	"bead/pkg/errors"
	"bead/pkg/lexer"
	"bead/pkg/parser"
	"bead/pkg/types"
)

// validateConstruction checks the constructor chain of every class: at most
// one constructor and destructor each, explicit super(...) delegation where
// the inherited constructor requires arguments, and positional arity on the
// delegation call with variadic remainders forwarded opaquely.
func (r *Resolver) validateConstruction() {
	for _, name := range r.classOrder {
		decl := r.classDecls[name]
		r.currentSrc = r.classSrc[name]
		r.checkSpecialMethodCounts(decl)

		cm := r.resolved.Classes[name]
		if !cm.Linked() || len(decl.Constructors) == 0 {
			continue
		}
		r.checkConstructorChain(cm, decl.Constructors[0])
	}
}

func (r *Resolver) checkSpecialMethodCounts(decl *parser.ClassDeclaration) {
	className := decl.Name.Value
	if len(decl.Constructors) > 1 {
		for _, extra := range decl.Constructors[1:] {
			r.addError(extra.Token, errors.DuplicateSpecialMethod,
				fmt.Sprintf("class '%s' already declares a constructor", className),
				className+".construct", className+".construct")
		}
	}
	if len(decl.Destructors) > 1 {
		for _, extra := range decl.Destructors[1:] {
			r.addError(extra.Token, errors.DuplicateSpecialMethod,
				fmt.Sprintf("class '%s' already declares a destructor", className),
				className+".destruct", className+".destruct")
		}
	}
}

// checkConstructorChain validates one class's (first) constructor against
// the constructor its chain delegates to.
func (r *Resolver) checkConstructorChain(cm *types.ClassMetadata, ctor *parser.ConstructorDeclaration) {
	hasSuper := len(cm.Linearization) > 1
	superCtor := r.resolved.SuperConstructor(cm.ClassName)
	superCall := ctor.SuperCall()

	if superCall == nil {
		// Implicit zero-argument delegation: fine unless the inherited
		// constructor requires parameters.
		if hasSuper && superCtor != nil && superCtor.RequiredParams() > 0 {
			r.addError(ctor.Token, errors.MissingSuperCall,
				fmt.Sprintf("constructor of '%s' must call super(...): constructor of '%s' requires %d argument(s)",
					cm.ClassName, superCtor.DeclaredIn, superCtor.RequiredParams()),
				cm.ClassName, superCtor.DeclaredIn)
		}
		return
	}

	if !hasSuper {
		// Already reported as NoSuperclass when the body was resolved.
		return
	}

	target := "constructor of '" + cm.SuperClassName + "'"
	if superCtor != nil {
		target = "constructor of '" + superCtor.DeclaredIn + "'"
	}
	r.checkConstructorArity(superCall.Arguments, superCtor, superCall.Token, target)
}

// checkConstructorArity matches call arguments positionally against a
// constructor's parameter list. Variadic remainder arguments (*args,
// **kwargs) are forwarded opaquely: they satisfy any remaining required
// parameters without arity-checking their contents. A nil constructor
// stands for the implicit zero-parameter default.
func (r *Resolver) checkConstructorArity(args []parser.Expression, ctor *types.ConstructorInfo, tok lexer.Token, target string) {
	explicit := 0
	forwarded := false
	for _, arg := range args {
		if _, ok := arg.(*parser.VariadicArgument); ok {
			forwarded = true
		} else {
			explicit++
		}
	}

	required := 0
	absorbs := false
	if ctor != nil {
		required = ctor.RequiredParams()
		absorbs = ctor.HasVariadic()
	}

	if explicit > required && !absorbs {
		r.addError(tok, errors.ConstructorArityMismatch,
			fmt.Sprintf("%s takes %d argument(s), got %d", target, required, explicit),
			target, "")
		return
	}
	if explicit < required && !forwarded {
		r.addError(tok, errors.ConstructorArityMismatch,
			fmt.Sprintf("%s requires %d argument(s), got %d", target, required, explicit),
			target, "")
	}
}
