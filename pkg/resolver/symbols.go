package resolver

import (
	"fmt"

	"bead/pkg/errors"
	"bead/pkg/parser"
	"bead/pkg/types"
)

// buildSymbolTable registers every top-level declaration under its name.
// Enums and classes share one namespace; the first declaration of a name
// wins and later ones are reported as duplicates. No cross-references are
// resolved here — forward references to later-declared classes are legal.
func (r *Resolver) buildSymbolTable() {
	for _, u := range r.units {
		r.currentSrc = u.src
		for _, d := range u.program.Declarations {
			switch decl := d.(type) {
			case *parser.EnumDeclaration:
				name := decl.Name.Value
				if prior := r.priorSymbol(name); prior != "" {
					r.addError(decl.Name.Token, errors.DuplicateSymbol,
						fmt.Sprintf("'%s' is already declared as a %s", name, prior), name, name)
					continue
				}
				r.enumDecls[name] = decl
				r.enumOrder = append(r.enumOrder, name)
				r.enumSrc[name] = u.src

			case *parser.ClassDeclaration:
				name := decl.Name.Value
				if prior := r.priorSymbol(name); prior != "" {
					r.addError(decl.Name.Token, errors.DuplicateSymbol,
						fmt.Sprintf("'%s' is already declared as a %s", name, prior), name, name)
					continue
				}
				r.classDecls[name] = decl
				r.classOrder = append(r.classOrder, name)
				r.classSrc[name] = u.src
				r.resolved.Classes[name] = r.buildClassMetadata(decl)
			}
		}
	}
}

// priorSymbol returns what kind of symbol already occupies the name, or "".
func (r *Resolver) priorSymbol(name string) string {
	if _, ok := r.classDecls[name]; ok {
		return "class"
	}
	if _, ok := r.enumDecls[name]; ok {
		return "enum"
	}
	return ""
}

// buildClassMetadata indexes one class's own declarations. Member names are
// unique within a class; the one exception is a forward-declared method
// later given a body in the same class, which fills the existing slot.
func (r *Resolver) buildClassMetadata(decl *parser.ClassDeclaration) *types.ClassMetadata {
	className := decl.Name.Value
	superName := ""
	if decl.SuperClass != nil {
		superName = decl.SuperClass.Value
	}
	cm := types.NewClassMetadata(className, superName)

	for _, field := range decl.Fields {
		name := field.Name.Value
		if existing := cm.Member(name); existing != nil {
			r.addError(field.Name.Token, errors.DuplicateSymbol,
				fmt.Sprintf("'%s' is already declared in class %s", name, className),
				className+"."+name, className+"."+name)
			continue
		}
		cm.AddMember(&types.MemberInfo{
			Name:       name,
			Kind:       types.FieldMember,
			Access:     field.Visibility,
			TypeName:   field.TypeName,
			HasBody:    true,
			DeclaredIn: className,
		})
	}

	for _, method := range decl.Methods {
		name := method.Name.Value
		if existing := cm.Member(name); existing != nil {
			filling := existing.Kind == types.MethodMember && !existing.HasBody && method.Body != nil
			if !filling {
				r.addError(method.Name.Token, errors.DuplicateSymbol,
					fmt.Sprintf("'%s' is already declared in class %s", name, className),
					className+"."+name, className+"."+name)
				continue
			}
		}
		cm.AddMember(&types.MemberInfo{
			Name:       name,
			Kind:       types.MethodMember,
			Access:     method.Visibility,
			Params:     paramInfos(method.Params),
			ReturnType: method.ReturnType,
			HasBody:    method.Body != nil,
			DeclaredIn: className,
		})
	}

	// Extra constructors and destructors are kept in the declaration for
	// the construction validator to report; the model records the first.
	if len(decl.Constructors) > 0 {
		cm.Constructor = &types.ConstructorInfo{
			Params:     paramInfos(decl.Constructors[0].Params),
			DeclaredIn: className,
		}
	}
	cm.HasDestructor = len(decl.Destructors) > 0

	return cm
}

func paramInfos(params []*parser.Parameter) []types.ParamInfo {
	infos := make([]types.ParamInfo, len(params))
	for i, p := range params {
		info := types.ParamInfo{TypeName: p.TypeName, Variadic: p.Variadic}
		if p.Name != nil {
			info.Name = p.Name.Value
		}
		infos[i] = info
	}
	return infos
}
