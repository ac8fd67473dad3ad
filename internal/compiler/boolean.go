package compiler

import (
	"strings"

	"github.com/conscript-lang/conscript/errs"
	"github.com/conscript-lang/conscript/internal/cursor"
	"github.com/conscript-lang/conscript/value"
)

// boolOps are the boolean layer's operator spellings (spec §4.2): plain
// symbols, so no word-boundary reject is needed here (contrast the
// comparison layer's `is`/`in`/`matches`).
var boolOps = []string{"&", "|"}

// parseBoolean implements the boolean layer (spec §4.2, §4.7): `&`/`|`,
// left-to-right, short-circuiting on truthiness but yielding the source
// value rather than a forced boolean.
func parseBoolean(c *cursor.Cursor, pc *pctx) (Thunk, error) {
	text, op, found := c.Until(cursor.DefaultBrackets, boolOps, nil)
	left, err := boolOperand(text, pc)
	if err != nil {
		return nil, err
	}
	for found {
		c.Consume(false, op)
		curOp := op
		rtext, nextOp, nextFound := c.Until(cursor.DefaultBrackets, boolOps, nil)
		if strings.TrimSpace(rtext) == "" {
			return nil, syntaxErrf(c, errs.ErrMsgEmptyRightOperand, curOp)
		}
		right, err := cursor.Sub(func(cc *cursor.Cursor) (Thunk, error) { return parseComparison(cc, pc) }, rtext)
		if err != nil {
			return nil, err
		}
		left = foldBoolean(curOp, left, right)
		op, found = nextOp, nextFound
	}
	return left, nil
}

func boolOperand(text string, pc *pctx) (Thunk, error) {
	if strings.TrimSpace(text) == "" {
		return defaultLeftThunk, nil
	}
	return cursor.Sub(func(cc *cursor.Cursor) (Thunk, error) { return parseComparison(cc, pc) }, text)
}

func foldBoolean(op string, l, r Thunk) Thunk {
	return func(env *Env) (value.Value, error) {
		lv, err := l(env)
		if err != nil {
			return nil, err
		}
		lv = resolveOperand(lv, env)
		switch op {
		case "&":
			if !value.ToBool(lv) {
				return lv, nil
			}
		case "|":
			if value.ToBool(lv) {
				return lv, nil
			}
		default:
			return nil, errs.Type(errs.ErrMsgUnknownOperator, op)
		}
		rv, err := r(env)
		if err != nil {
			return nil, err
		}
		return resolveOperand(rv, env), nil
	}
}
