package resolver

import (
	"testing"

	"bead/pkg/errors"
	"bead/pkg/lexer"
	"bead/pkg/parser"
	"bead/pkg/source"
	"bead/pkg/types"
)

func resolveSource(t *testing.T, input string) (*types.ResolvedProgram, []errors.BeadError) {
	t.Helper()
	src := source.FromString(input)
	p := parser.NewParser(lexer.NewLexer(input), src)
	program, parseErrs := p.ParseProgram()
	if len(parseErrs) != 0 {
		for _, e := range parseErrs {
			t.Errorf("parse error: %s", e.Error())
		}
		t.FailNow()
	}
	return NewResolver(program, src).Resolve()
}

func resolveOK(t *testing.T, input string) *types.ResolvedProgram {
	t.Helper()
	resolved, errs := resolveSource(t, input)
	if len(errs) != 0 {
		for _, e := range errs {
			t.Errorf("unexpected error: %s", e.Error())
		}
		t.FailNow()
	}
	return resolved
}

func errorsWithCode(errs []errors.BeadError, code errors.ResolveErrorCode) []*errors.ResolveError {
	var matched []*errors.ResolveError
	for _, e := range errs {
		if re, ok := e.(*errors.ResolveError); ok && re.Code == code {
			matched = append(matched, re)
		}
	}
	return matched
}

func expectCode(t *testing.T, errs []errors.BeadError, code errors.ResolveErrorCode) *errors.ResolveError {
	t.Helper()
	matched := errorsWithCode(errs, code)
	if len(matched) == 0 {
		for _, e := range errs {
			t.Logf("got error: %s", e.Error())
		}
		t.Fatalf("expected a %s error, got %d errors", code, len(errs))
	}
	return matched[0]
}

// --- Inheritance linking ---

func TestLinearizationOrderAndDepth(t *testing.T) {
	resolved := resolveOK(t, `
class A { }
class B(A) { }
class C(B) { }
`)

	tests := []struct {
		class string
		chain []string
	}{
		{"A", []string{"A"}},
		{"B", []string{"B", "A"}},
		{"C", []string{"C", "B", "A"}},
	}
	for _, tt := range tests {
		cm := resolved.Class(tt.class)
		if cm == nil || !cm.Linked() {
			t.Fatalf("class %s did not link", tt.class)
		}
		if len(cm.Linearization) != len(tt.chain) {
			t.Fatalf("class %s: expected chain length %d, got %d", tt.class, len(tt.chain), len(cm.Linearization))
		}
		for i, name := range tt.chain {
			if cm.Linearization[i] != name {
				t.Errorf("class %s: chain[%d] expected %s, got %s", tt.class, i, name, cm.Linearization[i])
			}
		}
	}
}

func TestForwardReferenceToLaterClass(t *testing.T) {
	resolved := resolveOK(t, `
class B(A) { }
class A { }
`)
	if !resolved.Class("B").Linked() {
		t.Errorf("B should link against the later-declared A")
	}
}

func TestUnknownSuperclass(t *testing.T) {
	_, errs := resolveSource(t, `class B(Missing) { }`)
	e := expectCode(t, errs, errors.UnknownSuperclass)
	if e.Symbol != "B" {
		t.Errorf("expected offending class B, got %s", e.Symbol)
	}
}

func TestSuperclassIsNotAClass(t *testing.T) {
	_, errs := resolveSource(t, `
enum Color { Red }
class Paint(Color) { }
`)
	expectCode(t, errs, errors.NotAClass)
}

func TestDirectInheritanceCycle(t *testing.T) {
	resolved, errs := resolveSource(t, `
class A(B) { }
class B(A) { }
`)
	if len(errorsWithCode(errs, errors.InheritanceCycle)) == 0 {
		t.Fatalf("expected InheritanceCycle")
	}
	if resolved.Class("A").Linked() || resolved.Class("B").Linked() {
		t.Errorf("cycle members must not link")
	}
}

func TestThreeClassInheritanceCycle(t *testing.T) {
	_, errs := resolveSource(t, `
class A(C) { }
class B(A) { }
class C(B) { }
`)
	if len(errorsWithCode(errs, errors.InheritanceCycle)) == 0 {
		t.Fatalf("expected InheritanceCycle for a 3-class cycle")
	}
}

func TestCycleDoesNotCascadeToDescendants(t *testing.T) {
	_, errs := resolveSource(t, `
class A(B) { }
class B(A) { }
class D(A) { }
`)
	// D merely inherits from a broken chain; the cycle is reported at its
	// members, not again at D.
	for _, e := range errorsWithCode(errs, errors.InheritanceCycle) {
		if e.Symbol == "D" {
			t.Errorf("cycle reported at descendant D: %s", e.Error())
		}
	}
}

func TestBrokenLinkSkipsDependentChecks(t *testing.T) {
	_, errs := resolveSource(t, `
class B(Missing) {
    fn f() {
        self.anything;
    }
}
`)
	expectCode(t, errs, errors.UnknownSuperclass)
	if len(errorsWithCode(errs, errors.UnknownMember)) != 0 {
		t.Errorf("unlinked class must not produce member-resolution noise")
	}
}

// --- Symbol table ---

func TestDuplicateTopLevelSymbol(t *testing.T) {
	resolved, errs := resolveSource(t, `
class Logger { }
enum Logger { A }
class Fine { }
`)
	expectCode(t, errs, errors.DuplicateSymbol)
	if len(errs) != 1 {
		t.Errorf("expected exactly 1 error, got %d", len(errs))
	}
	// Independent classes still resolve.
	if fine := resolved.Class("Fine"); fine == nil || !fine.Linked() {
		t.Errorf("independent class Fine should still resolve")
	}
}

func TestDuplicateMemberInClass(t *testing.T) {
	_, errs := resolveSource(t, `
class C {
    int x;
    str x;
}
`)
	expectCode(t, errs, errors.DuplicateSymbol)
}

func TestForwardDeclarationFilledInSameClass(t *testing.T) {
	resolved := resolveOK(t, `
class C {
    fn f(int x);
    fn f(int x) { return; }
}
`)
	cm := resolved.Class("C")
	if !cm.Instantiable {
		t.Errorf("C should be instantiable once f has a body")
	}
	if m := cm.Member("f"); m == nil || !m.HasBody {
		t.Errorf("filled declaration should record the body")
	}
}

// --- Enum registry ---

func TestEnumOrdinalsAndResolution(t *testing.T) {
	resolved := resolveOK(t, `enum LogLevel { Debug, Info, Warning, Error }`)

	enum := resolved.Enum("LogLevel")
	if enum == nil {
		t.Fatalf("LogLevel not registered")
	}
	for i, name := range []string{"Debug", "Info", "Warning", "Error"} {
		v := enum.Variant(name)
		if v == nil {
			t.Fatalf("variant %s missing", name)
		}
		if v.Ordinal != i {
			t.Errorf("variant %s: expected ordinal %d, got %d", name, i, v.Ordinal)
		}
		if v.QualifiedName() != "LogLevel::"+name {
			t.Errorf("qualified name mismatch: %s", v.QualifiedName())
		}
	}
}

func TestDuplicateVariant(t *testing.T) {
	resolved, errs := resolveSource(t, `enum Color { Red, Green, Red }`)
	expectCode(t, errs, errors.DuplicateVariant)
	// The first ordinal survives.
	if v := resolved.Enum("Color").Variant("Red"); v == nil || v.Ordinal != 0 {
		t.Errorf("first Red should keep ordinal 0")
	}
}

func TestUnresolvedEnumVariant(t *testing.T) {
	_, errs := resolveSource(t, `
enum LogLevel { Debug, Info }
class C {
    fn f() {
        LogLevel::Verbose;
    }
}
`)
	expectCode(t, errs, errors.UnresolvedEnumVariant)
}

func TestUnknownEnumInStaticAccess(t *testing.T) {
	_, errs := resolveSource(t, `
class C {
    fn f() {
        Severity::High;
    }
}
`)
	expectCode(t, errs, errors.UnresolvedEnumVariant)
}

func TestBareEnumVariantReference(t *testing.T) {
	// An unqualified variant name is not resolvable, but it should be
	// diagnosed as a variant needing qualification, not an unknown name.
	_, errs := resolveSource(t, `
enum LogLevel { Debug, Info }
class C {
    fn f() {
        int x = Debug;
    }
}
`)
	re := expectCode(t, errs, errors.UnresolvedEnumVariant)
	if re.Prior != "LogLevel" {
		t.Errorf("expected the diagnostic to name enum LogLevel, got %q", re.Prior)
	}
	if got := errorsWithCode(errs, errors.UnknownMember); len(got) != 0 {
		t.Errorf("bare variant must not also report an unknown name")
	}
}

// --- Member resolution and visibility ---

func TestMethodShadowingAndSuperResolution(t *testing.T) {
	resolved := resolveOK(t, `
class A {
    fn m() { return; }
}
class B(A) { }
class C(B) {
    fn m() {
        super.m();
    }
}
`)

	m, found := resolved.LookupMember("C", "m")
	if !found || m.DeclaredIn != "C" {
		t.Fatalf("m from C should resolve to C's version, got %v", m)
	}
	superM, found := resolved.LookupSuperMember("C", "m")
	if !found || superM.DeclaredIn != "A" {
		t.Fatalf("super.m from C should resolve to A's version, got %v", superM)
	}
}

func TestFieldShadowingIsNotAnError(t *testing.T) {
	resolved := resolveOK(t, `
class A {
    str name;
}
class B(A) {
    str name;
    fn f() {
        self.name = "b";
    }
}
`)
	m, _ := resolved.LookupMember("B", "name")
	if m.DeclaredIn != "B" {
		t.Errorf("B's own field should shadow A's, resolved to %s", m.DeclaredIn)
	}
}

func TestPrivateFieldInaccessibleFromSubclass(t *testing.T) {
	_, errs := resolveSource(t, `
class A {
    priv str secret;
}
class B(A) {
    fn leak() {
        self.secret = "x";
    }
}
`)
	e := expectCode(t, errs, errors.PrivateMemberInaccessible)
	if e.Symbol != "A.secret" {
		t.Errorf("expected offending member A.secret, got %s", e.Symbol)
	}
}

func TestPrivateMemberAccessibleInDeclaringClass(t *testing.T) {
	resolveOK(t, `
class A {
    priv str secret;
    priv fn hidden() { return; }
    fn f() {
        self.secret = "x";
        self.hidden();
        secret = "y";
    }
}
`)
}

func TestPrivateMethodInaccessibleFromOutside(t *testing.T) {
	_, errs := resolveSource(t, `
class A {
    priv fn hidden() { return; }
    fn construct() { }
}
class C {
    fn f(A a) {
        a.hidden();
    }
}
`)
	expectCode(t, errs, errors.PrivateMemberInaccessible)
}

func TestUnknownMember(t *testing.T) {
	_, errs := resolveSource(t, `
class C {
    fn f() {
        self.missing();
    }
}
`)
	e := expectCode(t, errs, errors.UnknownMember)
	if e.Symbol != "C.missing" {
		t.Errorf("expected symbol C.missing, got %s", e.Symbol)
	}
}

func TestBareMemberAccessResolvesAgainstChain(t *testing.T) {
	resolveOK(t, `
class A {
    str name;
}
class B(A) {
    fn f() {
        name = "b";
    }
}
`)
}

func TestLocalsShadowMembers(t *testing.T) {
	resolveOK(t, `
class C {
    priv str label;
    fn f(str label) {
        label = "param, not the field";
    }
}
`)
}

func TestMemberChainAcrossClassTypedField(t *testing.T) {
	_, errs := resolveSource(t, `
class Logger {
    fn log(str msg) { return; }
}
class App {
    Logger logger;
    fn run() {
        self.logger.log("up");
        self.logger.missing("boom");
    }
}
`)
	e := expectCode(t, errs, errors.UnknownMember)
	if e.Symbol != "Logger.missing" {
		t.Errorf("expected symbol Logger.missing, got %s", e.Symbol)
	}
	if len(errs) != 1 {
		t.Errorf("the valid chain link must not error, got %d errors", len(errs))
	}
}

func TestSuperMemberWithoutSuperclass(t *testing.T) {
	_, errs := resolveSource(t, `
class Root {
    fn f() {
        super.f();
    }
}
`)
	expectCode(t, errs, errors.NoSuperclass)
}

func TestSuperMemberSkipsSelf(t *testing.T) {
	_, errs := resolveSource(t, `
class A { }
class B(A) {
    fn only() {
        super.only();
    }
}
`)
	// B has `only` but no ancestor does; super.only must not see B's own.
	expectCode(t, errs, errors.UnknownMember)
}

// --- Instantiability ---

func TestForwardDeclarationObligation(t *testing.T) {
	resolved := resolveOK(t, `
class Writer {
    fn write(str line);
}
class FileWriter(Writer) {
    fn write(str line) { return; }
}
`)

	writer := resolved.Class("Writer")
	if writer.Instantiable {
		t.Errorf("Writer should not be instantiable")
	}
	if len(writer.Obligations) != 1 || writer.Obligations[0] != "Writer.write" {
		t.Errorf("expected obligation Writer.write, got %v", writer.Obligations)
	}

	fileWriter := resolved.Class("FileWriter")
	if !fileWriter.Instantiable {
		t.Errorf("FileWriter's override supplies the body; it should be instantiable")
	}
	if len(fileWriter.Obligations) != 0 {
		t.Errorf("expected no obligations, got %v", fileWriter.Obligations)
	}
}

func TestObligationsAreSorted(t *testing.T) {
	resolved := resolveOK(t, `
class Sink {
    fn write(str line);
    fn close();
    fn flush();
}
`)
	want := []string{"Sink.close", "Sink.flush", "Sink.write"}
	got := resolved.Class("Sink").Obligations
	if len(got) != len(want) {
		t.Fatalf("expected %d obligations, got %v", len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("obligation %d: expected %s, got %s", i, want[i], got[i])
		}
	}
}

func TestInstantiatingAbstractClass(t *testing.T) {
	_, errs := resolveSource(t, `
class Writer {
    fn write(str line);
}
class App {
    fn run() {
        new Writer();
    }
}
`)
	e := expectCode(t, errs, errors.AbstractMethodUnimplemented)
	if e.Prior != "Writer.write" {
		t.Errorf("expected obligation Writer.write, got %s", e.Prior)
	}
}

// --- Construction chains ---

func TestMissingSuperCall(t *testing.T) {
	_, errs := resolveSource(t, `
class Logger {
    fn construct(str name) { }
}
class FileLogger(Logger) {
    fn construct(str path) { }
}
`)
	expectCode(t, errs, errors.MissingSuperCall)

	// The same class with an explicit super(name) succeeds.
	resolveOK(t, `
class Logger {
    fn construct(str name) { }
}
class FileLogger(Logger) {
    fn construct(str path) {
        super(path);
    }
}
`)
}

func TestImplicitDelegationToZeroArgConstructor(t *testing.T) {
	resolveOK(t, `
class Base {
    fn construct() { }
}
class Sub(Base) {
    fn construct(int x) { }
}
`)
}

func TestSuperCallMustBeFirstStatement(t *testing.T) {
	_, errs := resolveSource(t, `
class Base {
    fn construct(str name) { }
}
class Sub(Base) {
    fn construct(str name) {
        str tmp = name;
        super(name);
    }
}
`)
	expectCode(t, errs, errors.MissingSuperCall)
}

func TestSuperCallArityMismatch(t *testing.T) {
	_, errs := resolveSource(t, `
class Base {
    fn construct(str a, str b) { }
}
class Sub(Base) {
    fn construct(str a) {
        super(a);
    }
}
`)
	expectCode(t, errs, errors.ConstructorArityMismatch)
}

func TestVariadicForwardingSatisfiesArity(t *testing.T) {
	resolveOK(t, `
class Base {
    fn construct(str name, int size) { }
}
class Sub(Base) {
    fn construct(str name, *args, **kwargs) {
        super(name, *args, **kwargs);
    }
}
`)
}

func TestVariadicTargetAbsorbsExtraArguments(t *testing.T) {
	resolveOK(t, `
class Base {
    fn construct(str name, *rest) { }
}
class Sub(Base) {
    fn construct() {
        super("a", "b", "c");
    }
}
`)
}

func TestSuperCallInRootClass(t *testing.T) {
	_, errs := resolveSource(t, `
class Root {
    fn construct() {
        super();
    }
}
`)
	expectCode(t, errs, errors.NoSuperclass)
	if n := len(errs); n != 1 {
		t.Errorf("expected exactly 1 error, got %d", n)
	}
}

func TestSuperCallInRootClassMethod(t *testing.T) {
	_, errs := resolveSource(t, `
class Root {
    fn m() {
        super();
    }
}
`)
	expectCode(t, errs, errors.NoSuperclass)
}

func TestSuperCallInRootClassAfterFirstStatement(t *testing.T) {
	// Not in delegation position, but still a super call in a class with
	// nothing to delegate to.
	_, errs := resolveSource(t, `
class Root {
    fn construct() {
        int x = 1;
        super();
    }
}
`)
	expectCode(t, errs, errors.NoSuperclass)
}

func TestSuperCallDelegatesPastConstructorlessAncestor(t *testing.T) {
	// B has no constructor; super(...) in C binds to A's.
	resolveOK(t, `
class A {
    fn construct(str name) { }
}
class B(A) { }
class C(B) {
    fn construct() {
        super("c");
    }
}
`)
}

func TestDuplicateConstructor(t *testing.T) {
	_, errs := resolveSource(t, `
class C {
    fn construct() { }
    fn construct(int x) { }
}
`)
	expectCode(t, errs, errors.DuplicateSpecialMethod)
}

func TestDuplicateDestructor(t *testing.T) {
	_, errs := resolveSource(t, `
class C {
    fn destruct() { }
    fn destruct() { }
}
`)
	expectCode(t, errs, errors.DuplicateSpecialMethod)
}

// --- Instantiation sites ---

func TestNewArityChecked(t *testing.T) {
	_, errs := resolveSource(t, `
class P {
    fn construct(str a) { }
}
class Q {
    fn f() {
        new P();
    }
}
`)
	expectCode(t, errs, errors.ConstructorArityMismatch)

	resolveOK(t, `
class P {
    fn construct(str a) { }
}
class Q {
    fn f() {
        new P("x");
    }
}
`)
}

func TestNewUsesInheritedConstructor(t *testing.T) {
	_, errs := resolveSource(t, `
class Base {
    fn construct(str name) { }
}
class Sub(Base) { }
class App {
    fn f() {
        new Sub();
    }
}
`)
	expectCode(t, errs, errors.ConstructorArityMismatch)

	resolveOK(t, `
class Base {
    fn construct(str name) { }
}
class Sub(Base) { }
class App {
    fn f() {
        new Sub("s");
    }
}
`)
}

func TestNewOfEnum(t *testing.T) {
	_, errs := resolveSource(t, `
enum Color { Red }
class C {
    fn f() {
        new Color();
    }
}
`)
	expectCode(t, errs, errors.NotAClass)
}

// --- Whole-program scenario ---

func TestLoggerScenario(t *testing.T) {
	resolved := resolveOK(t, `
enum LogLevel { Debug, Info }

class Logger {
    priv str name;
    fn construct(str name) {
        self.name = name;
    }
    fn write(LogLevel level, str message);
}

class FileLogger(Logger) {
    priv str path;
    fn construct(str name, str path) {
        super(name);
        self.path = path;
    }
    pub fn write(LogLevel level, str message) {
        return;
    }
}
`)

	if v, ok := resolved.ResolveVariant("LogLevel", "Debug"); !ok || v.Ordinal != 0 {
		t.Errorf("LogLevel::Debug should resolve to ordinal 0")
	}
	if resolved.Class("Logger").Instantiable {
		t.Errorf("Logger lacks a write body and must not be instantiable")
	}
	if !resolved.Class("FileLogger").Instantiable {
		t.Errorf("FileLogger supplies the write body and must be instantiable")
	}

	m, found := resolved.LookupMember("FileLogger", "write")
	if !found || m.DeclaredIn != "FileLogger" || !m.HasBody {
		t.Errorf("write should resolve to FileLogger's bodied override")
	}
	if ctor := resolved.SuperConstructor("FileLogger"); ctor == nil || ctor.DeclaredIn != "Logger" {
		t.Errorf("FileLogger's super(...) should bind to Logger's constructor")
	}
}

func TestDiagnosticsAccumulateAcrossStages(t *testing.T) {
	_, errs := resolveSource(t, `
enum Color { Red, Red }
class A(Missing) { }
class B {
    fn f() {
        self.nothing;
    }
    fn construct() { }
    fn construct() { }
}
`)
	for _, code := range []errors.ResolveErrorCode{
		errors.DuplicateVariant,
		errors.UnknownSuperclass,
		errors.UnknownMember,
		errors.DuplicateSpecialMethod,
	} {
		if len(errorsWithCode(errs, code)) == 0 {
			t.Errorf("expected a %s diagnostic in the batch", code)
		}
	}
}
