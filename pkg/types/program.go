package types

// ResolvedProgram is the terminal artifact of resolution: the enum registry
// plus the resolved class model, consumed downstream by code generation or
// interpretation.
type ResolvedProgram struct {
	Enums   map[string]*EnumType
	Classes map[string]*ClassMetadata
}

// NewResolvedProgram creates an empty program model.
func NewResolvedProgram() *ResolvedProgram {
	return &ResolvedProgram{
		Enums:   make(map[string]*EnumType),
		Classes: make(map[string]*ClassMetadata),
	}
}

// Class returns the metadata for the named class, or nil.
func (p *ResolvedProgram) Class(name string) *ClassMetadata {
	return p.Classes[name]
}

// Enum returns the named enum type, or nil.
func (p *ResolvedProgram) Enum(name string) *EnumType {
	return p.Enums[name]
}

// LookupMember resolves a member name against the named class's
// linearization, returning the first match (closest declaration wins).
// The second result is false when no entry in the chain matches or the
// class is unknown or unlinked.
func (p *ResolvedProgram) LookupMember(className, member string) (*MemberInfo, bool) {
	cm := p.Classes[className]
	if cm == nil || !cm.Linked() {
		return nil, false
	}
	return p.lookupAlongChain(cm.Linearization, member)
}

// LookupSuperMember resolves `super.member` from within the named class:
// the scan starts at the second entry of the linearization (skip self).
func (p *ResolvedProgram) LookupSuperMember(className, member string) (*MemberInfo, bool) {
	cm := p.Classes[className]
	if cm == nil || !cm.Linked() || len(cm.Linearization) < 2 {
		return nil, false
	}
	return p.lookupAlongChain(cm.Linearization[1:], member)
}

func (p *ResolvedProgram) lookupAlongChain(chain []string, member string) (*MemberInfo, bool) {
	for _, name := range chain {
		cm := p.Classes[name]
		if cm == nil {
			continue
		}
		if m := cm.Member(member); m != nil {
			return m, true
		}
	}
	return nil, false
}

// SuperConstructor returns the constructor a `super(...)` call in the named
// class delegates to: the nearest ancestor along the linearization that
// declares one. Nil when no ancestor has a constructor.
func (p *ResolvedProgram) SuperConstructor(className string) *ConstructorInfo {
	cm := p.Classes[className]
	if cm == nil || !cm.Linked() {
		return nil
	}
	for _, name := range cm.Linearization[1:] {
		if ancestor := p.Classes[name]; ancestor != nil && ancestor.Constructor != nil {
			return ancestor.Constructor
		}
	}
	return nil
}

// ResolveVariant resolves a qualified Enum::Variant reference by exact
// match. Unqualified references are not resolvable.
func (p *ResolvedProgram) ResolveVariant(enumName, variantName string) (*EnumMemberType, bool) {
	e := p.Enums[enumName]
	if e == nil {
		return nil, false
	}
	v := e.Variant(variantName)
	if v == nil {
		return nil, false
	}
	return v, true
}
