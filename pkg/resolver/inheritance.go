package resolver

import (
	"fmt"
	"sort"

	"bead/pkg/errors"
	"bead/pkg/types"
)

// linkInheritance resolves each class's superclass reference, rejects
// cycles, and computes the linearization [self, super, ..., root] that all
// member lookup runs against. A class whose chain cannot be completed keeps
// a nil linearization and is skipped by the later stages; the fault is
// reported once, at the class that introduced it, not at every descendant.
func (r *Resolver) linkInheritance() {
	// Each class's direct superclass reference is validated exactly once.
	superOK := make(map[string]bool, len(r.classOrder))
	for _, name := range r.classOrder {
		decl := r.classDecls[name]
		r.currentSrc = r.classSrc[name]
		if decl.SuperClass == nil {
			superOK[name] = true
			continue
		}
		superName := decl.SuperClass.Value
		if _, ok := r.classDecls[superName]; ok {
			superOK[name] = true
			continue
		}
		if _, ok := r.enumDecls[superName]; ok {
			r.addError(decl.SuperClass.Token, errors.NotAClass,
				fmt.Sprintf("'%s' is an enum, not a class", superName), name, superName)
		} else {
			r.addError(decl.SuperClass.Token, errors.UnknownSuperclass,
				fmt.Sprintf("unknown superclass '%s'", superName), name, superName)
		}
	}

	for _, name := range r.classOrder {
		r.currentSrc = r.classSrc[name]
		if chain, ok := r.walkChain(name, superOK); ok {
			r.resolved.Classes[name].Linearization = chain
		}
	}

	for _, name := range r.classOrder {
		if cm := r.resolved.Classes[name]; cm.Linked() {
			r.computeInstantiability(cm)
		}
	}
}

// walkChain follows parent pointers from start toward the root with a
// visited-set guard. A revisited name is a cycle; it is reported only when
// the revisit closes on start itself, so each cycle member produces one
// diagnostic and mere descendants of a cycle stay silent.
func (r *Resolver) walkChain(start string, superOK map[string]bool) ([]string, bool) {
	visited := make(map[string]bool)
	chain := []string{}
	current := start

	for {
		if visited[current] {
			if current == start {
				decl := r.classDecls[start]
				r.addError(decl.SuperClass.Token, errors.InheritanceCycle,
					fmt.Sprintf("class '%s' is its own ancestor", start), start, current)
			}
			return nil, false
		}
		visited[current] = true
		chain = append(chain, current)

		decl := r.classDecls[current]
		if decl.SuperClass == nil {
			return chain, true
		}
		if !superOK[current] {
			// Broken link upstream, already reported there.
			return nil, false
		}
		current = decl.SuperClass.Value
	}
}

// computeInstantiability collects the class's unmet method obligations. A
// forward declaration anywhere in the chain is satisfied as soon as any
// chain entry supplies a body for that name; otherwise the class stays
// non-instantiable and the obligation is recorded as "Class.method" naming
// the class that introduced it.
func (r *Resolver) computeInstantiability(cm *types.ClassMetadata) {
	bodies := make(map[string]bool)
	for _, entry := range cm.Linearization {
		entryMeta := r.resolved.Classes[entry]
		for _, memberName := range entryMeta.MemberOrder {
			m := entryMeta.Member(memberName)
			if m.Kind == types.MethodMember && m.HasBody {
				bodies[m.Name] = true
			}
		}
	}

	var obligations []string
	seen := make(map[string]bool)
	for _, entry := range cm.Linearization {
		entryMeta := r.resolved.Classes[entry]
		for _, memberName := range entryMeta.MemberOrder {
			m := entryMeta.Member(memberName)
			if m.Kind != types.MethodMember || m.HasBody || bodies[m.Name] {
				continue
			}
			obligation := m.DeclaredIn + "." + m.Name
			if !seen[obligation] {
				seen[obligation] = true
				obligations = append(obligations, obligation)
			}
		}
	}
	sort.Strings(obligations)

	cm.Obligations = obligations
	cm.Instantiable = len(obligations) == 0
}
