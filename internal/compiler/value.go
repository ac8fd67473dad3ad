package compiler

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/conscript-lang/conscript/errs"
	"github.com/conscript-lang/conscript/internal/cursor"
	"github.com/conscript-lang/conscript/value"
)

// parseValue implements the value layer (spec §4.3): the eleven terminal
// alternatives, each optionally followed by a property-access/call chain
// (spec §4.5).
func parseValue(c *cursor.Cursor, pc *pctx) (Thunk, error) {
	c.SkipSpaces()
	head, err := parseValueHead(c, pc)
	if err != nil {
		return nil, err
	}
	return parseAccessTail(c, pc, head)
}

// parseValueHead dispatches on the next input, in spec §4.3's listed
// order. Keywords are tried first since "-infinity"/"-∞" would otherwise
// be mistaken for a negative-number prefix.
func parseValueHead(c *cursor.Cursor, pc *pctx) (Thunk, error) {
	if c.AtEnd() {
		return defaultLeftThunk, nil
	}
	if thunk, ok := tryKeyword(c); ok {
		return thunk, nil
	}
	r, _ := c.PeekRune()
	switch {
	case r == '(':
		return parseParenOrFunc(c, pc)
	case r == '!':
		return parseNot(c, pc)
	case matchesDebugPrefix(c):
		return parseDebugPrefix(c, pc)
	case r == '$':
		return parseDollarVar(c, pc)
	case r == '[':
		return parseArrayLiteral(c, pc)
	case r == '@' && pc.opts.AllowRegexLiterals:
		return parseRegexLiteral(c, pc)
	case r == '"' || r == '\'':
		return parseStringLiteral(c, r)
	case r == '.':
		return parseDefaultLeftChain(c, pc)
	case looksLikeNumber(c):
		return parseNumberLiteral(c)
	default:
		return parseFallbackIdentifier(c, pc)
	}
}

// parseParenOrFunc disambiguates a parenthesised expression from a
// `(params){body}` function literal (spec §4.6) by peeking for an
// immediately-following `{` after the closing `)`.
func parseParenOrFunc(c *cursor.Cursor, pc *pctx) (Thunk, error) {
	c.Consume(false, "(")
	interior, found := c.ThroughEnd('(', ')')
	if !found {
		return nil, syntaxErrf(c, errs.ErrMsgUnterminatedBracket, "(", ")")
	}
	if c.Peek(1) == "{" {
		return parseFunctionLiteral(c, pc, interior)
	}
	return cursor.Sub(func(cc *cursor.Cursor) (Thunk, error) { return parseStart(cc, pc) }, interior)
}

// parseNot implements `!value` (spec §4.3.2): plain logical NOT, except
// that a non-boolean result under an active defaultLeft becomes an
// inequality test against it ("differs from default").
func parseNot(c *cursor.Cursor, pc *pctx) (Thunk, error) {
	c.Consume(false, "!")
	inner, err := parseValue(c, pc)
	if err != nil {
		return nil, err
	}
	return foldNot(inner), nil
}

func foldNot(inner Thunk) Thunk {
	return func(env *Env) (value.Value, error) {
		v, err := inner(env)
		if err != nil {
			return nil, err
		}
		v = resolveOperand(v, env)
		if _, isBool := v.(value.Bool); !isBool && env.DefaultLeft != nil {
			return value.Bool{Value: !value.IdentityEqual(v, env.DefaultLeft)}, nil
		}
		return value.Bool{Value: !value.ToBool(v)}, nil
	}
}

func matchesDebugPrefix(c *cursor.Cursor) bool {
	return strings.EqualFold(c.Peek(6), "debug ")
}

// parseDebugPrefix implements the `debug ` prefix (spec §4.3.3): it
// consumes the rest of the chunk as source text, compiles that text as a
// value, and on every evaluation reports (sourceText, value) to the
// debugOutput sink before returning value unchanged.
func parseDebugPrefix(c *cursor.Cursor, pc *pctx) (Thunk, error) {
	c.Consume(true, "debug ")
	sourceText := c.Remaining()
	inner, err := cursor.Sub(func(cc *cursor.Cursor) (Thunk, error) { return parseValue(cc, pc) }, sourceText)
	if err != nil {
		return nil, err
	}
	c.ConsumeWhile(func(rune) bool { return true })
	return func(env *Env) (value.Value, error) {
		v, err := inner(env)
		if err != nil {
			return nil, err
		}
		v = resolveOperand(v, env)
		env.Options.DebugOutput(sourceText, v)
		return v, nil
	}, nil
}

// parseDollarVar implements the explicit `$name` variable reference
// (spec §4.3.4), resolving the identifier dynamically since its spelling
// may itself be a `(expr)` dynamic name.
func parseDollarVar(c *cursor.Cursor, pc *pctx) (Thunk, error) {
	c.Consume(false, "$")
	nameFn, err := parseIdentName(c, pc)
	if err != nil {
		return nil, err
	}
	mode := pc.opts.UnknownsAre
	return func(env *Env) (value.Value, error) {
		name, err := nameFn(env)
		if err != nil {
			return nil, err
		}
		if env.Vars != nil {
			if v, ok := env.Vars.Lookup(name); ok {
				if v == nil {
					return value.Null{}, nil
				}
				return v, nil
			}
		}
		switch mode {
		case UnknownsAsNull:
			return value.Null{}, nil
		case UnknownsAsErrors:
			return nil, errs.Reference(name)
		default:
			return value.String{Value: name}, nil
		}
	}, nil
}

// parseArrayLiteral implements `[a, b, c]` (spec §4.3.5).
func parseArrayLiteral(c *cursor.Cursor, pc *pctx) (Thunk, error) {
	c.Consume(false, "[")
	interior, found := c.ThroughEnd('[', ']')
	if !found {
		return nil, syntaxErrf(c, errs.ErrMsgUnterminatedBracket, "[", "]")
	}
	args, err := parseArgList(interior, pc)
	if err != nil {
		return nil, err
	}
	return func(env *Env) (value.Value, error) {
		vals := make([]value.Value, len(args))
		for i, a := range args {
			v, err := a(env)
			if err != nil {
				return nil, err
			}
			vals[i] = resolveOperand(v, env)
		}
		return value.Array{Values: vals}, nil
	}, nil
}

// regexFlagRunes are the JS-style inline flags conscript accepts after a
// regex literal's closing `@` (spec §4.3.6).
const regexFlagRunes = "gimsuy"

// parseRegexLiteral implements `@pattern@flags` (spec §4.3.6), translating
// the JS-style `i m s` flags to Go's `(?ims)` inline-flag prefix; `g`,
// `u`, and `y` have no effect on the single regexp.Regexp used by
// `matches` and are accepted but dropped.
func parseRegexLiteral(c *cursor.Cursor, pc *pctx) (Thunk, error) {
	c.Consume(false, "@")
	pattern, found := c.UntilUnescaped('@')
	if !found {
		return nil, syntaxErrf(c, errs.ErrMsgUnterminatedRegex)
	}
	flags := c.ConsumeWhile(func(r rune) bool { return strings.ContainsRune(regexFlagRunes, r) })
	re, err := translateRegexFlags(pattern, flags)
	if err != nil {
		return nil, syntaxErrf(c, errs.ErrMsgInvalidRegex, err)
	}
	rv := &value.Regex{Pattern: pattern, Flags: flags, Re: re}
	return func(*Env) (value.Value, error) { return rv, nil }, nil
}

func translateRegexFlags(pattern, flags string) (*regexp.Regexp, error) {
	var goFlags strings.Builder
	for _, f := range flags {
		switch f {
		case 'i', 'm', 's':
			goFlags.WriteRune(f)
		}
	}
	src := pattern
	if goFlags.Len() > 0 {
		src = "(?" + goFlags.String() + ")" + pattern
	}
	return regexp.Compile(src)
}

// parseStringLiteral implements `"..."`/`'...'` (spec §4.3.7).
func parseStringLiteral(c *cursor.Cursor, quote rune) (Thunk, error) {
	c.Consume(false, string(quote))
	text, found := c.QuoteBody(quote)
	if !found {
		return nil, syntaxErrf(c, errs.ErrMsgUnterminatedString)
	}
	sv := value.String{Value: text}
	return func(*Env) (value.Value, error) { return sv, nil }, nil
}

// parseDefaultLeftChain implements the leading-`.` property-access chain
// (spec §4.3.8), which begins on defaultLeft. Resolution of defaultLeft's
// absence is deferred to evaluation time, since defaultLeft is only known
// once Exec supplies it, not at Compile time.
func parseDefaultLeftChain(c *cursor.Cursor, pc *pctx) (Thunk, error) {
	head := func(env *Env) (value.Value, error) {
		if env.DefaultLeft == nil {
			if env.Options.SafeNav {
				return value.Null{}, nil
			}
			return nil, errs.Type(errs.ErrMsgLeadingDotNoDefault)
		}
		return env.DefaultLeft, nil
	}
	return parseAccessTail(c, pc, head)
}

// keywordSpelling is one entry of the spec §4.3.9 keyword table: each
// word-form entry must not be followed by an identifier rune other than a
// space, so "null" never matches the start of "nullable".
type keywordSpelling struct {
	lit  string
	val  value.Value
	word bool
}

var keywordTable = []keywordSpelling{
	{"-infinity", value.Number{Value: math.Inf(-1)}, true},
	{"infinity", value.Number{Value: math.Inf(1)}, true},
	{"true", value.Bool{Value: true}, true},
	{"false", value.Bool{Value: false}, true},
	{"null", value.Null{}, true},
	{"-∞", value.Number{Value: math.Inf(-1)}, false},
	{"∞", value.Number{Value: math.Inf(1)}, false},
}

// tryKeyword matches and consumes one of the §4.3.9 keyword spellings at
// the cursor's current position, case-insensitively for the word forms.
func tryKeyword(c *cursor.Cursor) (Thunk, bool) {
	for _, kw := range keywordTable {
		n := len([]rune(kw.lit))
		upcoming := c.Peek(n)
		if !strings.EqualFold(upcoming, kw.lit) {
			continue
		}
		if kw.word {
			after := []rune(c.Peek(n + 1))
			if len(after) > n && cursor.IsIdentRune(after[n]) && after[n] != ' ' {
				continue
			}
		}
		c.Consume(true, kw.lit)
		val := kw.val
		return func(*Env) (value.Value, error) { return val, nil }, true
	}
	return nil, false
}

// looksLikeNumber reports whether the upcoming text matches `-?\.?\d`
// (spec §4.3.10) without consuming anything.
func looksLikeNumber(c *cursor.Cursor) bool {
	runes := []rune(c.Remaining())
	pos := 0
	if pos < len(runes) && runes[pos] == '-' {
		pos++
	}
	if pos < len(runes) && runes[pos] == '.' {
		pos++
	}
	return pos < len(runes) && unicode.IsDigit(runes[pos])
}

// parseNumberLiteral consumes a number literal: an optional leading `-`,
// digits with at most one decimal point, and a tentative exponent suffix
// (`e`/`E` optionally signed).
func parseNumberLiteral(c *cursor.Cursor) (Thunk, error) {
	var b strings.Builder
	if lit, ok := c.Consume(false, "-"); ok {
		b.WriteString(lit)
	}
	seenDot := false
	digits := c.ConsumeWhile(func(r rune) bool {
		if r == '.' {
			if seenDot {
				return false
			}
			seenDot = true
			return true
		}
		return unicode.IsDigit(r)
	})
	b.WriteString(digits)

	if ch, ok := c.PeekRune(); ok && ch == '.' && seenDot {
		return nil, syntaxErrf(c, errs.ErrMsgDuplicateDecimalPoint, b.String()+".")
	}

	markBeforeExp := c.Mark()
	if lit, ok := c.Consume(true, "e"); ok {
		exponent := lit
		if sign, ok := c.Consume(false, "+", "-"); ok {
			exponent += sign
		}
		expDigits := c.ConsumeWhile(unicode.IsDigit)
		if expDigits == "" {
			c.ResetTo(markBeforeExp)
		} else {
			b.WriteString(exponent)
			b.WriteString(expDigits)
		}
	}

	text := b.String()
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return nil, syntaxErrf(c, errs.ErrMsgUnexpectedToken, text)
	}
	nv := value.Number{Value: f}
	return func(*Env) (value.Value, error) { return nv, nil }, nil
}

// parseFallbackIdentifier implements the fallback rule (spec §4.3.11):
// characters up to the next `(` or `.` are the identifier text; leaving
// that separator unconsumed lets the caller's parseAccessTail pick it up
// as the start of an access chain.
func parseFallbackIdentifier(c *cursor.Cursor, pc *pctx) (Thunk, error) {
	text, _, _ := c.Until(cursor.DefaultBrackets, []string{"(", "."}, nil)
	name := cursor.TrimIdent(text)
	return resolveIdentifier(name, pc), nil
}
