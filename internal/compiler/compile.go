package compiler

import (
	"strings"

	"github.com/conscript-lang/conscript/errs"
	"github.com/conscript-lang/conscript/internal/cursor"
	"github.com/conscript-lang/conscript/value"
)

// pctx is the compile-time parse context threaded through every grammar
// rule: the resolved Options plus the one piece of state the grammar
// itself must track across layers — whether this call is compiling a
// ternary's predicate slot, which suppresses the comparison layer's
// default-left projection (spec §4.7).
type pctx struct {
	opts               Options
	inTernaryPredicate bool
}

// syntaxErrf builds a syntax-category error positioned at c's current
// column, with c's remaining source attached for caret rendering (spec
// §7: syntax errors are raised synchronously from Compile).
func syntaxErrf(c *cursor.Cursor, format string, args ...any) error {
	return errs.Syntax(errs.Position{Offset: c.Pos(), Line: 1, Column: c.Column()}, c.Remaining(), format, args...)
}

// defaultLeftThunk is the compiled form of an omitted operand (spec
// §4.2's "default-left site"): it returns a nil Value, a sentinel
// distinct from value.Null, which resolveOperand below resolves against
// Env.DefaultLeft at evaluation time.
var defaultLeftThunk Thunk = func(*Env) (value.Value, error) { return nil, nil }

// resolveOperand turns a possibly-omitted operand (nil, produced by
// defaultLeftThunk or by a ternary branch compiled from empty text) into
// a concrete Value: env.DefaultLeft if one is in effect, else Null.
func resolveOperand(v value.Value, env *Env) value.Value {
	if v != nil {
		return v
	}
	if env.DefaultLeft != nil {
		return env.DefaultLeft
	}
	return value.Null{}
}

// parseStart is the grammar's top-level entry point (spec §2's "start"
// rule): the ternary layer, entered with inTernaryPredicate always reset.
// Every parseStart call begins a fresh expression — a bracketed
// sub-expression, a call argument, a function body — never a
// continuation of an enclosing ternary's predicate slot, so the flag must
// not leak across a parseStart boundary.
func parseStart(c *cursor.Cursor, pc *pctx) (Thunk, error) {
	fresh := *pc
	fresh.inTernaryPredicate = false
	return parseTernary(c, &fresh)
}

// Program is a compiled conscription (spec §3's "compiled form"): an
// immutable thunk tree closed over its captured literal data, plus the
// resolved Options it was compiled with.
type Program struct {
	source string
	thunk  Thunk
	opts   Options
}

// Compile parses source under opts, producing a reusable Program.
// Compilation is strict (spec §5): the whole thunk tree is built eagerly,
// and any defect raises a syntax error synchronously.
func Compile(source string, opts ...Option) (*Program, error) {
	if strings.TrimSpace(source) == "" {
		return nil, errs.Syntax(errs.Position{Line: 1, Column: 1}, source, errs.ErrMsgEmptySource)
	}
	resolved := Apply(Options{}, opts...).resolved()
	pc := &pctx{opts: resolved}
	c := cursor.New(source)
	thunk, err := parseTernary(c, pc)
	if err != nil {
		return nil, err
	}
	return &Program{source: source, thunk: thunk, opts: resolved}, nil
}

// Exec evaluates the compiled Program against vars and defaultLeft, with
// execOpts merged over the Program's compile-time options (spec §6).
func (p *Program) Exec(vars Vars, defaultLeft value.Value, execOpts ...Option) (value.Value, error) {
	merged := Apply(p.opts, execOpts...).resolved()
	env := &Env{Vars: vars, DefaultLeft: defaultLeft, Options: merged}
	v, err := p.thunk(env)
	if err != nil {
		return nil, err
	}
	return resolveOperand(v, env), nil
}

// Source returns the original conscription text the Program was compiled
// from.
func (p *Program) Source() string { return p.source }
