package resolver

import (
	"fmt"

	"bead/pkg/errors"
	"bead/pkg/types"
)

// registerEnums assigns each variant a zero-based ordinal in declaration
// order and records the qualified name (Enum::Variant) in the registry.
// A repeated variant name keeps its first ordinal and is reported.
func (r *Resolver) registerEnums() {
	for _, name := range r.enumOrder {
		decl := r.enumDecls[name]
		r.currentSrc = r.enumSrc[name]
		enum := types.NewEnumType(name)
		for _, variant := range decl.Variants {
			if !enum.AddVariant(variant.Value) {
				r.addError(variant.Token, errors.DuplicateVariant,
					fmt.Sprintf("variant '%s' is already declared in enum %s", variant.Value, name),
					name+"::"+variant.Value, name+"::"+variant.Value)
			}
		}
		r.resolved.Enums[name] = enum
	}
}
