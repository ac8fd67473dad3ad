package compiler

import (
	"strings"

	"github.com/conscript-lang/conscript/errs"
	"github.com/conscript-lang/conscript/internal/cursor"
	"github.com/conscript-lang/conscript/value"
)

// parseTernary implements the ternary layer (spec §4.2): `C ? A : B`, the
// grammar's only right-associative form, recovered by locating the first
// top-level `?` and then the first top-level `:` in what follows. The
// `A ?: B` shorthand falls out for free from the null-coalescing
// evaluation rule: an empty then-branch compiles to defaultLeftThunk, and
// at evaluation time an undefined then-branch result falls back to the
// already-computed condition value.
func parseTernary(c *cursor.Cursor, pc *pctx) (Thunk, error) {
	text, _, found := c.Until(cursor.DefaultBrackets, []string{"?"}, nil)
	if !found {
		return ternaryOperand(text, pc)
	}
	c.Consume(false, "?")

	predPC := *pc
	predPC.inTernaryPredicate = true
	condThunk, err := ternaryOperand(text, &predPC)
	if err != nil {
		return nil, err
	}

	remainder := c.Remaining()
	rc := cursor.New(remainder)
	thenText, _, thenFound := rc.Until(cursor.DefaultBrackets, []string{":"}, nil)
	if !thenFound {
		return nil, syntaxErrf(c, errs.ErrMsgUnterminatedTernary)
	}
	rc.Consume(false, ":")

	thenThunk, err := ternaryOperand(thenText, pc)
	if err != nil {
		return nil, err
	}
	elseThunk, err := cursor.Sub(func(cc *cursor.Cursor) (Thunk, error) { return parseTernary(cc, pc) }, rc.Remaining())
	if err != nil {
		return nil, err
	}

	return foldTernary(condThunk, thenThunk, elseThunk), nil
}

// ternaryOperand compiles one ternary slot (predicate or then-branch): an
// empty slot is a default-left site (the `A ?: B` shorthand relies on the
// then-branch being empty), otherwise it delegates to the boolean layer.
func ternaryOperand(text string, pc *pctx) (Thunk, error) {
	if strings.TrimSpace(text) == "" {
		return defaultLeftThunk, nil
	}
	return cursor.Sub(func(cc *cursor.Cursor) (Thunk, error) { return parseBoolean(cc, pc) }, text)
}

// foldTernary implements the evaluation rule from spec §4.2: `A :=
// evalA2 ?? defaultLeft`, `B := evalB2 ?? A`, result = `A ? B : C`.
func foldTernary(cond, then, els Thunk) Thunk {
	return func(env *Env) (value.Value, error) {
		cv, err := cond(env)
		if err != nil {
			return nil, err
		}
		a := cv
		if a == nil {
			a = env.DefaultLeft
		}
		if a == nil {
			a = value.Null{}
		}
		if value.ToBool(a) {
			bv, err := then(env)
			if err != nil {
				return nil, err
			}
			if bv == nil {
				bv = a
			}
			return bv, nil
		}
		cev, err := els(env)
		if err != nil {
			return nil, err
		}
		if cev == nil {
			cev = value.Null{}
		}
		return cev, nil
	}
}
