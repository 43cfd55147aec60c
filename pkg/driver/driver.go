package driver

import (
	"fmt"

	"github.com/hashicorp/go-multierror"

	"bead/pkg/errors"
	"bead/pkg/lexer"
	"bead/pkg/parser"
	"bead/pkg/resolver"
	"bead/pkg/source"
	"bead/pkg/types"
)

// CheckString runs the full front end — lex, parse, resolve — over one
// in-memory source and returns the resolved model plus every diagnostic.
func CheckString(input string) (*types.ResolvedProgram, []errors.BeadError) {
	return checkSources([]*source.SourceFile{source.FromString(input)})
}

// CheckFile checks a single source file from disk.
func CheckFile(path string) (*types.ResolvedProgram, []errors.BeadError) {
	src, err := source.ReadFile(path)
	if err != nil {
		return nil, []errors.BeadError{readError(path, err)}
	}
	return checkSources([]*source.SourceFile{src})
}

// CheckFiles checks a batch of source files as one program: all files share
// a single top-level namespace, so a class in one file may inherit from a
// class declared in another.
func CheckFiles(paths []string) (*types.ResolvedProgram, []errors.BeadError) {
	var sources []*source.SourceFile
	var diags []errors.BeadError
	for _, path := range paths {
		src, err := source.ReadFile(path)
		if err != nil {
			diags = append(diags, readError(path, err))
			continue
		}
		sources = append(sources, src)
	}
	if len(diags) != 0 {
		return nil, diags
	}
	return checkSources(sources)
}

func checkSources(sources []*source.SourceFile) (*types.ResolvedProgram, []errors.BeadError) {
	var res *resolver.Resolver
	var syntaxErrs []errors.BeadError

	for _, src := range sources {
		p := parser.NewParser(lexer.NewLexer(src.Content), src)
		program, errs := p.ParseProgram()
		syntaxErrs = append(syntaxErrs, errs...)
		if res == nil {
			res = resolver.NewResolver(program, src)
		} else {
			res.Add(program, src)
		}
	}

	// Resolution requires syntactically complete declarations.
	if len(syntaxErrs) != 0 {
		return nil, syntaxErrs
	}
	if res == nil {
		return types.NewResolvedProgram(), nil
	}

	resolved, resolveErrs := res.Resolve()
	if len(resolveErrs) != 0 {
		return nil, resolveErrs
	}
	return resolved, nil
}

// Tokenize lexes one source to completion, for token-stream inspection.
func Tokenize(input string) []lexer.Token {
	l := lexer.NewLexer(input)
	var tokens []lexer.Token
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Type == lexer.EOF {
			return tokens
		}
	}
}

// FoldErrors collapses a diagnostic list into a single error value for
// callers that embed the front end behind a plain error interface. Returns
// nil for an empty list.
func FoldErrors(diags []errors.BeadError) error {
	if len(diags) == 0 {
		return nil
	}
	var folded *multierror.Error
	for _, d := range diags {
		folded = multierror.Append(folded, d)
	}
	return folded.ErrorOrNil()
}

func readError(path string, err error) errors.BeadError {
	return (&errors.SyntaxError{
		Position: errors.Position{Line: 0, Column: 0},
		Msg:      fmt.Sprintf("could not read %s: %s", path, err),
	}).CausedBy(err)
}
