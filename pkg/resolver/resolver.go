package resolver

import (
	"bead/pkg/errors"
	"bead/pkg/lexer"
	"bead/pkg/parser"
	"bead/pkg/source"
	"bead/pkg/types"
)

// Resolver turns parsed declaration lists into a ResolvedProgram: the enum
// registry plus the linked, visibility-checked class model. It runs as a
// strict pipeline — symbol table, enum registry, inheritance linker, member
// resolver, construction chain validator — where each stage consumes the
// prior stage's output and accumulates diagnostics instead of aborting.
type Resolver struct {
	units    []unit
	resolved *types.ResolvedProgram
	errors   []errors.BeadError

	// Raw declarations by name, first declaration wins. Later duplicates
	// are reported and excluded from all following stages.
	classDecls map[string]*parser.ClassDeclaration
	enumDecls  map[string]*parser.EnumDeclaration
	classOrder []string
	enumOrder  []string

	// Source files by declaring symbol, for diagnostic positions.
	classSrc map[string]*source.SourceFile
	enumSrc  map[string]*source.SourceFile

	// Source of the declaration currently being processed.
	currentSrc *source.SourceFile
}

// unit is one parsed file. A batch of units resolves as a single program:
// enums and classes share one namespace across all files.
type unit struct {
	program *parser.Program
	src     *source.SourceFile
}

// NewResolver creates a resolver seeded with one parsed program. The source
// file is used for diagnostic positions only.
func NewResolver(program *parser.Program, src *source.SourceFile) *Resolver {
	r := &Resolver{
		resolved:   types.NewResolvedProgram(),
		classDecls: make(map[string]*parser.ClassDeclaration),
		enumDecls:  make(map[string]*parser.EnumDeclaration),
		classSrc:   make(map[string]*source.SourceFile),
		enumSrc:    make(map[string]*source.SourceFile),
	}
	r.Add(program, src)
	return r
}

// Add appends another parsed file to the batch. Must be called before
// Resolve.
func (r *Resolver) Add(program *parser.Program, src *source.SourceFile) {
	r.units = append(r.units, unit{program: program, src: src})
}

// Resolve runs the full pipeline and returns the resolved model together
// with every diagnostic found. A class that fails inheritance linking is
// skipped by the later stages; independent classes still resolve, so the
// diagnostic list covers the whole program in one pass.
func (r *Resolver) Resolve() (*types.ResolvedProgram, []errors.BeadError) {
	r.buildSymbolTable()
	r.registerEnums()
	r.linkInheritance()
	r.resolveMemberAccess()
	r.validateConstruction()
	return r.resolved, r.errors
}

func (r *Resolver) addError(tok lexer.Token, code errors.ResolveErrorCode, msg, symbol, prior string) {
	r.errors = append(r.errors, &errors.ResolveError{
		Position: errors.Position{
			Line:     tok.Line,
			Column:   tok.Column,
			StartPos: tok.StartPos,
			EndPos:   tok.EndPos,
			Source:   r.currentSrc,
		},
		Code:   code,
		Msg:    msg,
		Symbol: symbol,
		Prior:  prior,
	})
}
