package types

// MemberKind distinguishes fields from methods in a class member index.
type MemberKind int

const (
	FieldMember MemberKind = iota
	MethodMember
)

func (k MemberKind) String() string {
	switch k {
	case FieldMember:
		return "field"
	case MethodMember:
		return "method"
	default:
		return "unknown"
	}
}

// VariadicKind marks a parameter as an opaque variadic remainder. Forwarded
// remainders are type-erased: the construction chain validator treats them
// as satisfying any remaining required parameters without inspecting them.
type VariadicKind int

const (
	VariadicNone VariadicKind = iota
	VariadicPositional // *args
	VariadicKeyword    // **kwargs
)

// ParamInfo describes one parameter of a method or constructor.
type ParamInfo struct {
	Name     string
	TypeName string // empty for variadic markers and type-only declarations
	Variadic VariadicKind
}

// MemberInfo is the resolved view of a single field or method declaration.
// DeclaredIn records the class whose body contains the declaration; the
// visibility rule compares against it exactly, never by subtype.
type MemberInfo struct {
	Name       string
	Kind       MemberKind
	Access     AccessModifier
	TypeName   string // field type (fields only)
	Params     []ParamInfo
	ReturnType string // empty = no value
	HasBody    bool   // false = forward declaration (methods only)
	DeclaredIn string
}

// IsAccessibleFrom reports whether the member may be accessed from the given
// context. Public members are visible everywhere; private members only from
// the declaring class's own bodies.
func (m *MemberInfo) IsAccessibleFrom(ctx *AccessContext) bool {
	if m.Access == AccessPublic {
		return true
	}
	return ctx != nil && ctx.CurrentClassName == m.DeclaredIn
}

// ConstructorInfo is the resolved view of a class constructor.
type ConstructorInfo struct {
	Params     []ParamInfo
	DeclaredIn string
}

// RequiredParams returns the number of non-variadic parameters.
func (c *ConstructorInfo) RequiredParams() int {
	n := 0
	for _, p := range c.Params {
		if p.Variadic == VariadicNone {
			n++
		}
	}
	return n
}

// HasVariadic reports whether the parameter list ends in variadic markers.
func (c *ConstructorInfo) HasVariadic() bool {
	for _, p := range c.Params {
		if p.Variadic != VariadicNone {
			return true
		}
	}
	return false
}

// ClassMetadata is the resolved model of one class declaration: its own
// member index plus the linearization computed by the inheritance linker.
type ClassMetadata struct {
	ClassName      string
	SuperClassName string // empty for root classes

	// Linearization is the member-resolution order: self first, root last.
	// Nil when inheritance linking failed for this class; dependent stages
	// skip such classes.
	Linearization []string

	// Members indexes this class's own declarations only; inherited members
	// are found by walking the linearization.
	Members     map[string]*MemberInfo
	MemberOrder []string // declaration order

	Constructor   *ConstructorInfo
	HasDestructor bool

	// Instantiable is false while any method in the linearization has no
	// body anywhere in the chain. Obligations lists those methods as
	// "Class.method", sorted, where Class introduced the obligation.
	Instantiable bool
	Obligations  []string
}

// NewClassMetadata creates an empty metadata record for the named class.
func NewClassMetadata(className, superClassName string) *ClassMetadata {
	return &ClassMetadata{
		ClassName:      className,
		SuperClassName: superClassName,
		Members:        make(map[string]*MemberInfo),
		Instantiable:   true,
	}
}

// AddMember records one of the class's own declarations in declaration order.
func (cm *ClassMetadata) AddMember(m *MemberInfo) {
	if _, exists := cm.Members[m.Name]; !exists {
		cm.MemberOrder = append(cm.MemberOrder, m.Name)
	}
	cm.Members[m.Name] = m
}

// Member returns the class's own member with the given name, or nil.
// Inherited members are not consulted; use ResolvedProgram.LookupMember.
func (cm *ClassMetadata) Member(name string) *MemberInfo {
	return cm.Members[name]
}

// Linked reports whether inheritance linking succeeded for this class.
func (cm *ClassMetadata) Linked() bool {
	return cm.Linearization != nil
}
