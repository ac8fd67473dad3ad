package compiler

import (
	"strconv"
	"strings"

	"github.com/conscript-lang/conscript/internal/cursor"
	"github.com/conscript-lang/conscript/errs"
	"github.com/conscript-lang/conscript/value"
)

// nameEval evaluates an identifier-shaped name (bare run, {literal}, or
// (expr) dynamic form — spec §4.4) to a string at runtime.
type nameEval func(env *Env) (string, error)

func staticName(s string) nameEval {
	return func(*Env) (string, error) { return s, nil }
}

// parseIdentName parses one of conscript's three identifier spellings:
// a `{literal}` quoted name, a `(expr)` dynamic name, or a bare
// alphanumeric/underscore/space run (trimmed). Used for both `$name`
// variable references and `.name` property segments.
func parseIdentName(c *cursor.Cursor, pc *pctx) (nameEval, error) {
	if _, ok := c.Consume(false, "{"); ok {
		interior, found := c.ThroughEnd('{', '}')
		if !found {
			return nil, syntaxErrf(c, errs.ErrMsgUnterminatedBracket, "{", "}")
		}
		return staticName(interior), nil
	}
	if _, ok := c.Consume(false, "("); ok {
		interior, found := c.ThroughEnd('(', ')')
		if !found {
			return nil, syntaxErrf(c, errs.ErrMsgUnterminatedBracket, "(", ")")
		}
		inner, err := cursor.Sub(func(cc *cursor.Cursor) (Thunk, error) { return parseStart(cc, pc) }, interior)
		if err != nil {
			return nil, err
		}
		return func(env *Env) (string, error) {
			v, err := inner(env)
			if err != nil {
				return "", err
			}
			return value.ToStr(v), nil
		}, nil
	}
	raw := c.ConsumeWhile(cursor.IsIdentRune)
	return staticName(cursor.TrimIdent(raw)), nil
}

// parseAccessTail parses zero or more `.name` / `(args)` segments
// following an already-parsed head value (spec §4.5) and folds them into
// a single Thunk.
func parseAccessTail(c *cursor.Cursor, pc *pctx, head Thunk) (Thunk, error) {
	current := head
	for {
		if _, ok := c.Consume(false, "."); ok {
			name, err := parseIdentName(c, pc)
			if err != nil {
				return nil, err
			}
			current = applyPropertyAccess(current, name, pc)
			continue
		}
		if _, ok := c.Consume(false, "("); ok {
			interior, found := c.ThroughEnd('(', ')')
			if !found {
				return nil, syntaxErrf(c, errs.ErrMsgUnterminatedBracket, "(", ")")
			}
			args, err := parseArgList(interior, pc)
			if err != nil {
				return nil, err
			}
			current = applyCall(current, args, pc)
			continue
		}
		return current, nil
	}
}

// parseArgList splits a comma-separated, bracket-aware argument list into
// compiled argument thunks. Function-literal parameter lists do not come
// here; parseParamNames handles them.
func parseArgList(src string, pc *pctx) ([]Thunk, error) {
	chunks, err := splitTopLevel(src, []string{","})
	if err != nil {
		return nil, err
	}
	if len(chunks) == 1 && strings.TrimSpace(chunks[0]) == "" {
		return nil, nil
	}
	args := make([]Thunk, len(chunks))
	for i, chunk := range chunks {
		thunk, err := cursor.Sub(func(cc *cursor.Cursor) (Thunk, error) { return parseStart(cc, pc) }, chunk)
		if err != nil {
			return nil, err
		}
		args[i] = thunk
	}
	return args, nil
}

// splitTopLevel splits src on any of seps at bracket nesting depth zero.
func splitTopLevel(src string, seps []string) ([]string, error) {
	c := cursor.New(src)
	var parts []string
	for {
		text, matched, found := c.Until(cursor.DefaultBrackets, seps, nil)
		parts = append(parts, text)
		if !found {
			return parts, nil
		}
		c.Consume(false, matched)
	}
}

func applyPropertyAccess(head Thunk, name nameEval, pc *pctx) Thunk {
	return func(env *Env) (value.Value, error) {
		recv, err := head(env)
		if err != nil {
			return nil, err
		}
		key, err := name(env)
		if err != nil {
			return nil, err
		}
		return getProperty(recv, key, env, pc)
	}
}

func getProperty(recv value.Value, key string, env *Env, pc *pctx) (value.Value, error) {
	switch r := recv.(type) {
	case *value.Object:
		v, ok := r.Get(key)
		if !ok {
			return value.Null{}, nil
		}
		return v, nil
	case value.Array:
		return arrayProperty(r.Values, key, env, pc, wrapArray)
	case value.String:
		runes := []rune(r.Value)
		return arrayProperty(runeValues(runes), key, env, pc, wrapString)
	default:
		if env.Options.SafeNav {
			return value.Null{}, nil
		}
		return nil, errs.Type(errs.ErrMsgNotAnObject, key, recv.Kind())
	}
}

func runeValues(runes []rune) []value.Value {
	out := make([]value.Value, len(runes))
	for i, r := range runes {
		out[i] = value.String{Value: string(r)}
	}
	return out
}

// wrap rebuilds a receiver-shaped Value from a []value.Value, used so the
// array/string property helpers below can be shared between Array and
// String receivers (spec §4.5: "strings behave as arrays of characters").
type wrapFunc func([]value.Value) value.Value

func wrapArray(vs []value.Value) value.Value { return value.Array{Values: vs} }
func wrapString(vs []value.Value) value.Value {
	var b strings.Builder
	for _, v := range vs {
		b.WriteString(value.ToStr(v))
	}
	return value.String{Value: b.String()}
}

func arrayProperty(items []value.Value, key string, env *Env, pc *pctx, wrap wrapFunc) (value.Value, error) {
	if idx, err := strconv.Atoi(key); err == nil {
		if idx < 0 || idx >= len(items) {
			return value.Null{}, nil
		}
		return items[idx], nil
	}
	switch key {
	case "empty":
		return value.Bool{Value: len(items) == 0}, nil
	case "last":
		if len(items) == 0 {
			return value.Null{}, nil
		}
		return items[len(items)-1], nil
	case "length", "count":
		return value.Number{Value: float64(len(items))}, nil
	case "multiple":
		return value.Bool{Value: len(items) > 1}, nil
	case "every":
		return nativeFunc("every", func(args []value.Value) (value.Value, error) {
			pred, err := requireFunc(args, 0, env, pc)
			if err != nil {
				return nil, err
			}
			for _, it := range items {
				ok, err := callPredicate(pred, it)
				if err != nil {
					return nil, err
				}
				if !ok {
					return value.Bool{Value: false}, nil
				}
			}
			return value.Bool{Value: true}, nil
		}), nil
	case "some":
		return nativeFunc("some", func(args []value.Value) (value.Value, error) {
			pred, err := requireFunc(args, 0, env, pc)
			if err != nil {
				return nil, err
			}
			for _, it := range items {
				ok, err := callPredicate(pred, it)
				if err != nil {
					return nil, err
				}
				if ok {
					return value.Bool{Value: true}, nil
				}
			}
			return value.Bool{Value: false}, nil
		}), nil
	case "map":
		return nativeFunc("map", func(args []value.Value) (value.Value, error) {
			fn, err := requireFunc(args, 0, env, pc)
			if err != nil {
				return nil, err
			}
			out := make([]value.Value, len(items))
			for i, it := range items {
				v, err := fn.Call([]value.Value{it})
				if err != nil {
					return nil, err
				}
				out[i] = v
			}
			return wrap(out), nil
		}), nil
	case "slice":
		return nativeFunc("slice", func(args []value.Value) (value.Value, error) {
			start, end := sliceBounds(args, len(items))
			if start >= end {
				return wrap(nil), nil
			}
			return wrap(append([]value.Value(nil), items[start:end]...)), nil
		}), nil
	case "pop":
		return nativeFunc("pop", func(args []value.Value) (value.Value, error) {
			n := popShiftCount(args)
			if n > len(items) {
				n = len(items)
			}
			return wrap(append([]value.Value(nil), items[:len(items)-n]...)), nil
		}), nil
	case "shift":
		return nativeFunc("shift", func(args []value.Value) (value.Value, error) {
			n := popShiftCount(args)
			if n > len(items) {
				n = len(items)
			}
			return wrap(append([]value.Value(nil), items[n:]...)), nil
		}), nil
	default:
		if env.Options.SafeNav {
			return value.Null{}, nil
		}
		return nil, errs.Type(errs.ErrMsgUnknownProperty, key, wrap(items).Kind())
	}
}

func nativeFunc(name string, call func(args []value.Value) (value.Value, error)) *value.Func {
	return &value.Func{Name: name, Call: call}
}

func requireFunc(args []value.Value, i int, env *Env, pc *pctx) (*value.Func, error) {
	if i >= len(args) {
		if env.Options.SafeCall {
			return nativeFunc("noop", func([]value.Value) (value.Value, error) { return value.Null{}, nil }), nil
		}
		return nil, errs.Type(errs.ErrMsgNotCallable, "missing argument")
	}
	fn, ok := args[i].(*value.Func)
	if !ok {
		if env.Options.SafeCall {
			return nativeFunc("noop", func([]value.Value) (value.Value, error) { return value.Null{}, nil }), nil
		}
		return nil, errs.Type(errs.ErrMsgNotCallable, args[i].Kind())
	}
	return fn, nil
}

func callPredicate(fn *value.Func, arg value.Value) (bool, error) {
	v, err := fn.Call([]value.Value{arg})
	if err != nil {
		return false, err
	}
	return value.ToBool(v), nil
}

func sliceBounds(args []value.Value, length int) (int, int) {
	start, end := 0, length
	if len(args) > 0 {
		start = clampIndex(int(value.ToNumber(args[0])), length)
	}
	if len(args) > 1 {
		end = clampIndex(int(value.ToNumber(args[1])), length)
	}
	return start, end
}

func clampIndex(i, length int) int {
	if i < 0 {
		i += length
	}
	if i < 0 {
		return 0
	}
	if i > length {
		return length
	}
	return i
}

func popShiftCount(args []value.Value) int {
	if len(args) == 0 {
		return 1
	}
	return int(value.ToNumber(args[0]))
}

// applyCall compiles a call site `head(args...)` (spec §4.5).
func applyCall(head Thunk, argThunks []Thunk, pc *pctx) Thunk {
	return func(env *Env) (value.Value, error) {
		recv, err := head(env)
		if err != nil {
			return nil, err
		}
		fn, ok := recv.(*value.Func)
		if !ok {
			if env.Options.SafeCall {
				return value.Null{}, nil
			}
			return nil, errs.Type(errs.ErrMsgNotCallable, recv.Kind())
		}
		args := make([]value.Value, len(argThunks))
		for i, a := range argThunks {
			v, err := a(env)
			if err != nil {
				return nil, err
			}
			args[i] = v
		}
		return fn.Call(args)
	}
}
