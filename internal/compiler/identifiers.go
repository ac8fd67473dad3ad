package compiler

import (
	"github.com/conscript-lang/conscript/errs"
	"github.com/conscript-lang/conscript/value"
)

// resolveIdentifier builds the Thunk for a named variable reference, used
// by the bare-identifier fallback (spec §4.4); parseDollarVar applies the
// same rules to its runtime-evaluated name. Resolution order: Env.Vars
// lookup first; if unresolved, the compile-time UnknownsAre policy decides
// the outcome.
func resolveIdentifier(name string, pc *pctx) Thunk {
	mode := pc.opts.UnknownsAre
	return func(env *Env) (value.Value, error) {
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
	}
}

// dynamicNameThunk evaluates nameExpr and coerces it to a string, the
// shape of the `$(expr)` dynamic variable-name form (spec §4.3.4). Nothing
// calls it: parseIdentName builds its own closure for that form.
func dynamicNameThunk(nameExpr Thunk) func(env *Env) (string, error) {
	return func(env *Env) (string, error) {
		v, err := nameExpr(env)
		if err != nil {
			return "", err
		}
		return value.ToStr(v), nil
	}
}
