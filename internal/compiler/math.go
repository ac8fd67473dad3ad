package compiler

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/conscript-lang/conscript/errs"
	"github.com/conscript-lang/conscript/internal/cursor"
	"github.com/conscript-lang/conscript/value"
)

// mathOps are the math layer's operator spellings (spec §4.2), longest
// first so `before`/`then` never shadow a shorter symbolic spelling at
// the same position (Until's own longest-match rule already handles the
// symbolic ones; ordering here only matters for readability).
var mathOps = []string{"before", "then", "+", "-", "*", "/", "%", "^"}

// parseMath implements the math layer (spec §4.2, §4.7): `+ - * / % ^
// before then`, left to right.
func parseMath(c *cursor.Cursor, pc *pctx) (Thunk, error) {
	reject := mathMinusReject(c)
	text, op, found := c.Until(cursor.DefaultBrackets, mathOps, reject)
	left, err := mathOperand(text, pc)
	if err != nil {
		return nil, err
	}
	for found {
		c.Consume(false, op)
		curOp := op
		reject = mathMinusReject(c)
		rtext, nextOp, nextFound := c.Until(cursor.DefaultBrackets, mathOps, reject)
		if strings.TrimSpace(rtext) == "" {
			return nil, syntaxErrf(c, errs.ErrMsgEmptyRightOperand, curOp)
		}
		right, err := cursor.Sub(func(cc *cursor.Cursor) (Thunk, error) { return parseValue(cc, pc) }, rtext)
		if err != nil {
			return nil, err
		}
		left = foldMath(curOp, left, right)
		op, found = nextOp, nextFound
	}
	return left, nil
}

// mathMinusReject vetoes a sign that belongs to a number literal rather
// than acting as an operator, whenever a digit follows it: a `-` at the
// start of the current Until scan (after any leading whitespace), so that
// a leading `-1` parses as the number literal -1 rather than the
// subtraction operator applied to an empty left operand, and a `-` or `+`
// that signs the exponent of a literal such as `1.5e-1`. Until's own scan
// offset resets to 0 on every call, so this naturally covers both the
// first operand of a math chunk and every right-operand after an
// intervening operator.
func mathMinusReject(c *cursor.Cursor) cursor.Reject {
	return func(matched string, offset int) bool {
		if matched != "-" && matched != "+" {
			return false
		}
		runes := []rune(c.Peek(2))
		if len(runes) < 2 || !unicode.IsDigit(runes[1]) {
			return false
		}
		prefix := strings.TrimSpace(c.PeekBack(offset))
		if matched == "-" && prefix == "" {
			return true
		}
		mantissa, hasE := strings.CutSuffix(strings.ToLower(prefix), "e")
		if !hasE || mantissa == "" || !strings.ContainsRune("0123456789.", rune(mantissa[len(mantissa)-1])) {
			return false
		}
		_, err := strconv.ParseFloat(mantissa, 64)
		return err == nil
	}
}

func mathOperand(text string, pc *pctx) (Thunk, error) {
	if strings.TrimSpace(text) == "" {
		return defaultLeftThunk, nil
	}
	return cursor.Sub(func(cc *cursor.Cursor) (Thunk, error) { return parseValue(cc, pc) }, text)
}

func foldMath(op string, l, r Thunk) Thunk {
	return func(env *Env) (value.Value, error) {
		lv, err := l(env)
		if err != nil {
			return nil, err
		}
		lv = resolveOperand(lv, env)
		rv, err := r(env)
		if err != nil {
			return nil, err
		}
		rv = resolveOperand(rv, env)
		safe := env.Options.SafeOp
		switch op {
		case "+":
			return opAdd(lv, rv, safe)
		case "-":
			return opSub(lv, rv, safe)
		case "*":
			return opMul(lv, rv, safe)
		case "/":
			return opDiv(lv, rv, safe)
		case "%":
			return opMod(lv, rv, safe)
		case "^":
			return opPow(lv, rv, safe)
		case "before":
			return opBefore(lv, rv)
		case "then":
			return opThen(lv, rv, safe)
		default:
			return nil, errs.Type(errs.ErrMsgUnknownOperator, op)
		}
	}
}
