// Package conscript compiles and evaluates conscriptions, the embeddable
// single-expression predicate/value language described in README-level
// terms by the root package doc: a conscription is compiled once and
// evaluated any number of times against different variable bindings and
// an optional defaultLeft value (§2, §3).
package conscript

import (
	"github.com/conscript-lang/conscript/internal/compiler"
	"github.com/conscript-lang/conscript/typecheck"
	"github.com/conscript-lang/conscript/value"
)

// Value is the runtime representation every conscription produces and
// consumes. See the value package for the concrete Null/Bool/Number/
// String/Array/Object/Func/Regex family.
type Value = value.Value

// Vars resolves a variable name to a Value at evaluation time (§3).
type Vars = compiler.Vars

// MapVars adapts a plain name->Value map to Vars.
type MapVars = compiler.MapVars

// FuncVars adapts an on-demand lookup function to Vars.
type FuncVars = compiler.FuncVars

// UnknownsMode governs how an unresolved bare identifier is handled (§4.4).
type UnknownsMode = compiler.UnknownsMode

const (
	UnknownsAsStrings = compiler.UnknownsAsStrings
	UnknownsAsNull    = compiler.UnknownsAsNull
	UnknownsAsErrors  = compiler.UnknownsAsErrors
)

// DebugSink receives the (sourceText, value) pair produced by a `debug`
// prefix (§4.3.3) on every evaluation.
type DebugSink = compiler.DebugSink

// TypeChecker is the external type-predicate service backing `is`/`is not`
// (§6). See the typecheck package for the default implementation.
type TypeChecker = typecheck.Checker

// Option configures a compile (Engine.Compile or package-level Compile).
// Construct one with the With* functions below.
type Option = compiler.Option

func WithAllowRegexLiterals(v bool) Option       { return compiler.WithAllowRegexLiterals(v) }
func WithSafe(v bool) Option                     { return compiler.WithSafe(v) }
func WithSafeCall(v bool) Option                 { return compiler.WithSafeCall(v) }
func WithSafeNav(v bool) Option                  { return compiler.WithSafeNav(v) }
func WithSafeOp(v bool) Option                   { return compiler.WithSafeOp(v) }
func WithUnknownsAre(mode UnknownsMode) Option    { return compiler.WithUnknownsAre(mode) }
func WithDebugOutput(sink DebugSink) Option       { return compiler.WithDebugOutput(sink) }
func WithTypeChecker(tc TypeChecker) Option       { return compiler.WithTypeChecker(tc) }

// Program is a compiled conscription, ready for repeated Exec calls
// against different Vars/defaultLeft pairs (§3, §5: compilation is
// strict and produces an immutable, concurrency-safe artifact).
type Program struct {
	inner *compiler.Program
}

// Source returns the original conscription text the Program was compiled
// from.
func (p *Program) Source() string { return p.inner.Source() }

// Exec evaluates the Program against vars and defaultLeft. execOpts, if
// given, are merged over the Program's compile-time options for this
// call only (§6's "options merge per-call-over-global").
func (p *Program) Exec(vars Vars, defaultLeft Value, execOpts ...Option) (Value, error) {
	return p.inner.Exec(vars, defaultLeft, execOpts...)
}

// Engine is a reusable compiler configuration: every Program it compiles
// inherits Engine's options as its base, mirroring the teacher's
// `dwscript.New(options...) *Engine` factory (pkg/dwscript).
type Engine struct {
	opts []Option
}

// New builds an Engine from the given base options.
func New(opts ...Option) *Engine {
	return &Engine{opts: opts}
}

// Compile compiles source under the Engine's base options, overridden by
// any opts given here.
func (e *Engine) Compile(source string, opts ...Option) (*Program, error) {
	merged := append(append([]Option(nil), e.opts...), opts...)
	inner, err := compiler.Compile(source, merged...)
	if err != nil {
		return nil, err
	}
	return &Program{inner: inner}, nil
}

// Compile compiles source with the package default (zero-value) Engine.
// Most one-off callers never need to construct an Engine at all.
func Compile(source string, opts ...Option) (*Program, error) {
	inner, err := compiler.Compile(source, opts...)
	if err != nil {
		return nil, err
	}
	return &Program{inner: inner}, nil
}

// Eval compiles source and immediately executes it once against vars and
// defaultLeft — a convenience for the common one-shot case; repeated
// evaluation of the same conscription should use Compile/Program.Exec
// instead, since compilation is not free.
func Eval(source string, vars Vars, defaultLeft Value, opts ...Option) (Value, error) {
	prog, err := Compile(source, opts...)
	if err != nil {
		return nil, err
	}
	return prog.Exec(vars, defaultLeft)
}
