package types

// EnumMemberType represents a single enum variant as a fully-qualified,
// ordered constant.
type EnumMemberType struct {
	EnumName    string
	VariantName string
	Ordinal     int // zero-based, in declaration order
}

// QualifiedName returns the only resolvable reference form for the variant.
func (m *EnumMemberType) QualifiedName() string {
	return m.EnumName + "::" + m.VariantName
}

// EnumType represents a registered enum: a name plus its ordinal-assigned
// variant set. Immutable after registration.
type EnumType struct {
	Name     string
	Variants map[string]*EnumMemberType
	Order    []string // declaration order
}

// NewEnumType creates an empty enum type.
func NewEnumType(name string) *EnumType {
	return &EnumType{
		Name:     name,
		Variants: make(map[string]*EnumMemberType),
	}
}

// AddVariant registers a variant at the next ordinal. It returns false if a
// variant with the name already exists.
func (e *EnumType) AddVariant(name string) bool {
	if _, exists := e.Variants[name]; exists {
		return false
	}
	e.Variants[name] = &EnumMemberType{
		EnumName:    e.Name,
		VariantName: name,
		Ordinal:     len(e.Order),
	}
	e.Order = append(e.Order, name)
	return true
}

// Variant returns the named variant, or nil.
func (e *EnumType) Variant(name string) *EnumMemberType {
	return e.Variants[name]
}
