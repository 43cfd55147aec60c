package errors

import (
	"fmt"
)

// BeadError is the interface implemented by all Bead front-end errors.
type BeadError interface {
	error // Embed the standard error interface
	Pos() Position
	Kind() string // e.g., "Syntax", "Resolve"
	// Message returns the specific error message without position info.
	Message() string
	Unwrap() error // For error wrapping support (errors.Is/As)
}

// ResolveErrorCode identifies the class-resolution failure a ResolveError
// reports. Each code corresponds to one rule of the resolver.
type ResolveErrorCode string

const (
	DuplicateSymbol             ResolveErrorCode = "DuplicateSymbol"
	DuplicateVariant            ResolveErrorCode = "DuplicateVariant"
	UnknownSuperclass           ResolveErrorCode = "UnknownSuperclass"
	NotAClass                   ResolveErrorCode = "NotAClass"
	InheritanceCycle            ResolveErrorCode = "InheritanceCycle"
	UnknownMember               ResolveErrorCode = "UnknownMember"
	PrivateMemberInaccessible   ResolveErrorCode = "PrivateMemberInaccessible"
	AbstractMethodUnimplemented ResolveErrorCode = "AbstractMethodUnimplemented"
	MissingSuperCall            ResolveErrorCode = "MissingSuperCall"
	ConstructorArityMismatch    ResolveErrorCode = "ConstructorArityMismatch"
	NoSuperclass                ResolveErrorCode = "NoSuperclass"
	DuplicateSpecialMethod      ResolveErrorCode = "DuplicateSpecialMethod"
	UnresolvedEnumVariant       ResolveErrorCode = "UnresolvedEnumVariant"
)

// --- Concrete Error Types ---

// SyntaxError represents an error during lexing or parsing.
type SyntaxError struct {
	Position
	Msg   string
	Cause error // Underlying cause, if any
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("Syntax Error at %d:%d: %s", e.Line, e.Column, e.Msg)
}
func (e *SyntaxError) Pos() Position   { return e.Position }
func (e *SyntaxError) Kind() string    { return "Syntax" }
func (e *SyntaxError) Message() string { return e.Msg }
func (e *SyntaxError) Unwrap() error   { return e.Cause }
func (e *SyntaxError) CausedBy(cause error) *SyntaxError {
	e.Cause = cause
	return e
}

// ResolveError represents a class-resolution or access-control failure.
// Symbol names the offending declaration; Prior names the conflicting
// earlier declaration where one exists (duplicate symbols, shadowed
// constructors, and the like).
type ResolveError struct {
	Position
	Code   ResolveErrorCode
	Msg    string
	Symbol string // the offending declaration
	Prior  string // conflicting prior declaration, when applicable
	Cause  error
}

func (e *ResolveError) Error() string {
	return fmt.Sprintf("Resolve Error at %d:%d: %s: %s", e.Line, e.Column, e.Code, e.Msg)
}
func (e *ResolveError) Pos() Position   { return e.Position }
func (e *ResolveError) Kind() string    { return "Resolve" }
func (e *ResolveError) Message() string { return fmt.Sprintf("%s: %s", e.Code, e.Msg) }
func (e *ResolveError) Unwrap() error   { return e.Cause }
