package compiler

import (
	"strings"

	"github.com/conscript-lang/conscript/errs"
	"github.com/conscript-lang/conscript/internal/cursor"
	"github.com/conscript-lang/conscript/value"
)

type cmpEval func(l, r value.Value, env *Env) (value.Value, error)

type cmpOperator struct {
	spelling string
	isWord   bool
	negate   bool
	eval     cmpEval
}

// cmpOperators enumerates every comparison-layer spelling (spec §4.2's
// comparison row): each absolute operator alongside its `!`- or
// `not `-prefixed negation. cursor.Until's longest-match rule picks
// "is not" over "is" and "<=" over "<" without any extra ordering care
// here.
var cmpOperators = buildCmpOperators()

func buildCmpOperators() []cmpOperator {
	var ops []cmpOperator
	add := func(spelling string, word bool, eval cmpEval) {
		ops = append(ops, cmpOperator{spelling: spelling, isWord: word, eval: eval})
	}
	addNeg := func(spelling string, word bool, eval cmpEval) {
		ops = append(ops, cmpOperator{spelling: spelling, isWord: word, negate: true, eval: eval})
	}

	add("is", true, evalIs)
	addNeg("is not", true, evalIs)
	addNeg("!is", true, evalIs)

	add("~in", true, evalInCI)
	addNeg("not ~in", true, evalInCI)
	addNeg("!~in", true, evalInCI)
	add("in", true, evalIn)
	addNeg("not in", true, evalIn)
	addNeg("!in", true, evalIn)

	add("matches", true, evalMatches)
	addNeg("!matches", true, evalMatches)

	add("<=", false, evalLE)
	addNeg("!<=", false, evalLE)
	add("<>", false, evalIdentityNotEqual)
	addNeg("!<>", false, evalIdentityNotEqual)
	add("<", false, evalLT)
	addNeg("!<", false, evalLT)
	add(">=", false, evalGE)
	addNeg("!>=", false, evalGE)
	add(">", false, evalGT)
	addNeg("!>", false, evalGT)
	add("=", false, evalEq)
	add("!=", false, evalIdentityNotEqual)

	add("^~=", false, evalPrefixCI)
	addNeg("!^~=", false, evalPrefixCI)
	add("^=", false, evalPrefix)
	addNeg("!^=", false, evalPrefix)
	add("$~=", false, evalSuffixCI)
	addNeg("!$~=", false, evalSuffixCI)
	add("$=", false, evalSuffix)
	addNeg("!$=", false, evalSuffix)
	add("*~=", false, evalContainsCI)
	addNeg("!*~=", false, evalContainsCI)
	add("*=", false, evalContains)
	addNeg("!*=", false, evalContains)
	add("~=", false, evalEqCI)
	addNeg("!~=", false, evalEqCI)

	return ops
}

func cmpSpellings() []string {
	out := make([]string, len(cmpOperators))
	for i, op := range cmpOperators {
		out[i] = op.spelling
	}
	return out
}

func findCmpOperator(spelling string) (cmpOperator, bool) {
	for _, op := range cmpOperators {
		if op.spelling == spelling {
			return op, true
		}
	}
	return cmpOperator{}, false
}

// wordBoundaryReject vetoes a word-form match (is/in/not/matches and
// their compounds) that is not surrounded by non-identifier characters —
// otherwise "in" would match inside "main" (spec §4.2's closing note on
// tokenizing `!is`/`!in`/`!matches` as single operators).
func wordBoundaryReject(c *cursor.Cursor) cursor.Reject {
	return func(matched string, offset int) bool {
		op, ok := findCmpOperator(matched)
		if !ok || !op.isWord {
			return false
		}
		if offset > 0 {
			before := []rune(c.PeekBack(1))
			if len(before) == 1 && cursor.IsIdentRune(before[0]) && before[0] != ' ' {
				return true
			}
		}
		matchedLen := len([]rune(matched))
		after := []rune(c.Peek(matchedLen + 1))
		if len(after) > matchedLen {
			r := after[matchedLen]
			if cursor.IsIdentRune(r) && r != ' ' {
				return true
			}
		}
		return false
	}
}

// parseComparison implements the comparison layer (spec §4.2, §4.7).
func parseComparison(c *cursor.Cursor, pc *pctx) (Thunk, error) {
	seps := cmpSpellings()
	text, op, found := c.Until(cursor.DefaultBrackets, seps, wordBoundaryReject(c))

	if !found {
		return comparisonProjection(text, pc)
	}

	left, err := cmpOperand(text, pc)
	if err != nil {
		return nil, err
	}
	for found {
		c.Consume(false, op)
		cmpOp, _ := findCmpOperator(op)
		rtext, nextOp, nextFound := c.Until(cursor.DefaultBrackets, seps, wordBoundaryReject(c))
		if strings.TrimSpace(rtext) == "" {
			return nil, syntaxErrf(c, errs.ErrMsgEmptyRightOperand, op)
		}
		right, err := cursor.Sub(func(cc *cursor.Cursor) (Thunk, error) { return parseMath(cc, pc) }, rtext)
		if err != nil {
			return nil, err
		}
		left = foldComparison(cmpOp, left, right)
		op, found = nextOp, nextFound
	}
	return left, nil
}

func cmpOperand(text string, pc *pctx) (Thunk, error) {
	if strings.TrimSpace(text) == "" {
		return defaultLeftThunk, nil
	}
	return cursor.Sub(func(cc *cursor.Cursor) (Thunk, error) { return parseMath(cc, pc) }, text)
}

// comparisonProjection implements spec §4.7's "default-left projection":
// when a comparison-layer chunk carries no comparison operator at all and
// its value is not a boolean, a defined defaultLeft, outside a ternary
// predicate, turns the chunk's bare value into an equality test against
// defaultLeft.
func comparisonProjection(text string, pc *pctx) (Thunk, error) {
	inner, err := cmpOperand(text, pc)
	if err != nil {
		return nil, err
	}
	return func(env *Env) (value.Value, error) {
		v, err := inner(env)
		if err != nil {
			return nil, err
		}
		v = resolveOperand(v, env)
		if _, isBool := v.(value.Bool); isBool {
			return v, nil
		}
		if env.DefaultLeft == nil || pc.inTernaryPredicate {
			return v, nil
		}
		return value.Bool{Value: value.IdentityEqual(v, env.DefaultLeft)}, nil
	}, nil
}

func foldComparison(op cmpOperator, l, r Thunk) Thunk {
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
		result, err := op.eval(lv, rv, env)
		if err != nil {
			return nil, err
		}
		if op.negate {
			return value.Bool{Value: !value.ToBool(result)}, nil
		}
		return result, nil
	}
}

func evalIs(l, r value.Value, env *Env) (value.Value, error) {
	descriptor, ok := r.(value.String)
	if !ok {
		return nil, errs.Type(errs.ErrMsgIsDescriptorType, r.Kind())
	}
	checker := env.Options.TypeChecker
	return value.Bool{Value: checker.Check(l, descriptor.Value)}, nil
}

func evalEq(l, r value.Value, _ *Env) (value.Value, error) {
	return value.Bool{Value: value.Equal(l, r)}, nil
}

func evalEqCI(l, r value.Value, _ *Env) (value.Value, error) {
	return value.Bool{Value: strings.EqualFold(value.ToStr(l), value.ToStr(r))}, nil
}

func evalIdentityNotEqual(l, r value.Value, _ *Env) (value.Value, error) {
	return value.Bool{Value: !value.IdentityEqual(l, r)}, nil
}

func evalLT(l, r value.Value, _ *Env) (value.Value, error) {
	return value.Bool{Value: value.Compare(l, r) < 0}, nil
}

func evalLE(l, r value.Value, _ *Env) (value.Value, error) {
	return value.Bool{Value: value.Compare(l, r) <= 0}, nil
}

func evalGE(l, r value.Value, _ *Env) (value.Value, error) {
	return value.Bool{Value: value.Compare(l, r) >= 0}, nil
}

func evalGT(l, r value.Value, _ *Env) (value.Value, error) {
	return value.Bool{Value: value.Compare(l, r) > 0}, nil
}

func evalPrefix(l, r value.Value, _ *Env) (value.Value, error) {
	return value.Bool{Value: stringHasPrefix(l, r, false)}, nil
}

func evalPrefixCI(l, r value.Value, _ *Env) (value.Value, error) {
	return value.Bool{Value: stringHasPrefix(l, r, true)}, nil
}

func evalSuffix(l, r value.Value, _ *Env) (value.Value, error) {
	return value.Bool{Value: stringHasSuffix(l, r, false)}, nil
}

func evalSuffixCI(l, r value.Value, _ *Env) (value.Value, error) {
	return value.Bool{Value: stringHasSuffix(l, r, true)}, nil
}

func evalContains(l, r value.Value, _ *Env) (value.Value, error) {
	return value.Bool{Value: containsValue(l, r, false)}, nil
}

func evalContainsCI(l, r value.Value, _ *Env) (value.Value, error) {
	return value.Bool{Value: containsValue(l, r, true)}, nil
}

func containsValue(l, r value.Value, ci bool) bool {
	if arr, ok := l.(value.Array); ok {
		return arrayContains(arr, r, ci)
	}
	return stringContains(l, r, ci)
}

// evalIn/evalInCI implement `in`/`~in` as the substring/contains family
// with operands swapped (spec §4.7: "in, ~in, etc. As above with
// operands swapped").
func evalIn(l, r value.Value, env *Env) (value.Value, error) {
	return evalContains(r, l, env)
}

func evalInCI(l, r value.Value, env *Env) (value.Value, error) {
	return evalContainsCI(r, l, env)
}

func evalMatches(l, r value.Value, env *Env) (value.Value, error) {
	lre, lok := l.(*value.Regex)
	rre, rok := r.(*value.Regex)
	switch {
	case lok && !rok:
		return value.Bool{Value: lre.Re.MatchString(value.ToStr(r))}, nil
	case rok && !lok:
		return value.Bool{Value: rre.Re.MatchString(value.ToStr(l))}, nil
	default:
		if env.Options.SafeOp {
			return value.Bool{Value: false}, nil
		}
		return nil, errs.Type(errs.ErrMsgMatchesOperands, l.Kind(), r.Kind())
	}
}
