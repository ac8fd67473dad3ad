package compiler

import (
	"strings"

	"github.com/conscript-lang/conscript/internal/cursor"
	"github.com/conscript-lang/conscript/value"
)

// frameVars is the variable-resolver chain a function-literal invocation
// installs (spec §4.6): parameter bindings first, then a fallback to the
// outer resolver. Each call gets a fresh frameVars, so concurrent
// invocations of the same function literal never share mutable state
// (spec §5, §9 "function-literal scoping").
type frameVars struct {
	params map[string]value.Value
	outer  Vars
}

func (f *frameVars) Lookup(name string) (value.Value, bool) {
	if v, ok := f.params[name]; ok {
		return v, true
	}
	if f.outer != nil {
		return f.outer.Lookup(name)
	}
	return nil, false
}

// parseFunctionLiteral compiles a `(params){body}` token (spec §4.6). The
// cursor must be positioned just after the closing `)` of the parameter
// list, on the body's opening `{`; paramsText is that list's
// already-extracted interior text.
// Parameters are parsed with list evaluation disabled: each is a raw name,
// stripped of non-identifier characters, not a compiled expression.
// The body is compiled eagerly (compilation is strict, spec §5); at call
// time a fresh frameVars is installed per invocation and the precompiled
// body thunk runs under it.
func parseFunctionLiteral(c *cursor.Cursor, pc *pctx, paramsText string) (Thunk, error) {
	params := parseParamNames(paramsText)

	c.Consume(false, "{")
	body, found := c.ThroughEnd('{', '}')
	if !found {
		return nil, syntaxErrf(c, "unterminated function body: missing `}`")
	}
	bodyThunk, err := cursor.Sub(func(cc *cursor.Cursor) (Thunk, error) { return parseStart(cc, pc) }, body)
	if err != nil {
		return nil, err
	}

	return func(defEnv *Env) (value.Value, error) {
		fn := &value.Func{
			Name: "",
			Call: func(args []value.Value) (value.Value, error) {
				bindings := map[string]value.Value{}
				for i, name := range params {
					if i < len(args) {
						bindings[name] = args[i]
					} else {
						bindings[name] = value.Null{}
					}
				}
				callEnv := &Env{
					Vars:        &frameVars{params: bindings, outer: defEnv.Vars},
					DefaultLeft: defEnv.DefaultLeft,
					Options:     defEnv.Options,
				}
				return bodyThunk(callEnv)
			},
		}
		return fn, nil
	}, nil
}

// parseParamNames splits a parameter list with "list evaluation disabled"
// (spec §4.6): each comma-separated entry is stripped of any character
// that is not part of the bare-identifier class, rather than compiled as
// an expression.
func parseParamNames(src string) []string {
	if strings.TrimSpace(src) == "" {
		return nil
	}
	raw := strings.Split(src, ",")
	names := make([]string, len(raw))
	for i, r := range raw {
		var b strings.Builder
		for _, ch := range r {
			if cursor.IsIdentRune(ch) && ch != ' ' {
				b.WriteRune(ch)
			}
		}
		names[i] = b.String()
	}
	return names
}
