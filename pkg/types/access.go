package types

// AccessModifier represents the visibility level of class members.
// Bead has exactly two levels: `pub` and `priv`. A private member is
// visible only inside the class that declares it — subclasses included
// in the exclusion.
type AccessModifier int

const (
	AccessPublic AccessModifier = iota
	AccessPrivate
)

// String returns the Bead keyword for the access modifier.
func (a AccessModifier) String() string {
	switch a {
	case AccessPublic:
		return "pub"
	case AccessPrivate:
		return "priv"
	default:
		return "unknown"
	}
}

// AccessContext represents the context from which a member is being accessed.
type AccessContext struct {
	// Name of the class whose method or constructor body contains the access.
	// Empty for top-level (external) access.
	CurrentClassName string

	// Whether the access occurs inside a constructor body.
	InConstructor bool
}

// NewAccessContext creates an access context for a method or constructor
// body of the named class.
func NewAccessContext(className string) *AccessContext {
	return &AccessContext{CurrentClassName: className}
}
