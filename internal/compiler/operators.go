package compiler

import (
	"math"
	"strings"

	"github.com/conscript-lang/conscript/errs"
	"github.com/conscript-lang/conscript/value"
)

// opAdd implements `+` (spec §4.7): polymorphic over arrays (concat),
// objects (merge), numbers, and strings.
func opAdd(l, r value.Value, safe bool) (value.Value, error) {
	switch lv := l.(type) {
	case value.Array:
		if rv, ok := r.(value.Array); ok {
			return value.Array{Values: append(append([]value.Value(nil), lv.Values...), rv.Values...)}, nil
		}
		return value.Array{Values: append(append([]value.Value(nil), lv.Values...), r)}, nil
	case *value.Object:
		if rv, ok := r.(*value.Object); ok {
			return lv.Merge(rv), nil
		}
		return nil, typeErrUnlessSafe(safe, errs.ErrMsgArithmeticMismatch, "+", l.Kind(), r.Kind())
	}
	if rv, ok := r.(value.Array); ok {
		return value.Array{Values: append([]value.Value{l}, rv.Values...)}, nil
	}
	if _, ok := l.(value.String); ok {
		return value.String{Value: value.ToStr(l) + numOrStr(r)}, nil
	}
	if _, ok := r.(value.String); ok {
		return value.String{Value: numOrStr(l) + value.ToStr(r)}, nil
	}
	ln, lok := l.(value.Number)
	rn, rok := r.(value.Number)
	if lok && rok {
		return numericResult(ln.Value+rn.Value, safe)
	}
	if !lok || !rok {
		if !safe {
			return nil, typeErrUnlessSafe(safe, errs.ErrMsgArithmeticMismatch, "+", l.Kind(), r.Kind())
		}
		return numericResult(value.ToNumber(l)+value.ToNumber(r), safe)
	}
	return numericResult(value.ToNumber(l)+value.ToNumber(r), safe)
}

func numOrStr(v value.Value) string {
	if n, ok := v.(value.Number); ok {
		return n.String()
	}
	return value.ToStr(v)
}

// opSub implements `-` (spec §4.7): arrays (set difference), objects
// (key/value filter), strings (substring removal), numbers (arithmetic).
func opSub(l, r value.Value, safe bool) (value.Value, error) {
	switch lv := l.(type) {
	case value.Array:
		rv, ok := r.(value.Array)
		if !ok {
			rv = value.Array{Values: []value.Value{r}}
		}
		var out []value.Value
		for _, item := range lv.Values {
			found := false
			for _, rem := range rv.Values {
				if value.Equal(item, rem) {
					found = true
					break
				}
			}
			if !found {
				out = append(out, item)
			}
		}
		return value.Array{Values: out}, nil
	case *value.Object:
		result := value.EmptyObject()
		switch rv := r.(type) {
		case *value.Object:
			for _, k := range lv.Keys() {
				v, _ := lv.Get(k)
				if rmv, ok := rv.Get(k); ok && value.Equal(v, rmv) {
					continue
				}
				result.Set(k, v)
			}
		case value.Array:
			removeKeys := map[string]bool{}
			for _, item := range rv.Values {
				removeKeys[value.ToStr(item)] = true
			}
			for _, k := range lv.Keys() {
				if removeKeys[k] {
					continue
				}
				v, _ := lv.Get(k)
				result.Set(k, v)
			}
		default:
			return nil, typeErrUnlessSafe(safe, errs.ErrMsgArithmeticMismatch, "-", l.Kind(), r.Kind())
		}
		return result, nil
	case value.String:
		return value.String{Value: strings.ReplaceAll(lv.Value, value.ToStr(r), "")}, nil
	}
	return numericResult(value.ToNumber(l)-value.ToNumber(r), safe)
}

func opMul(l, r value.Value, safe bool) (value.Value, error) {
	return numericResult(value.ToNumber(l)*value.ToNumber(r), safe)
}

// opDiv implements `/`: division by exact +0/-0 yields +Infinity/-Infinity
// (spec §4.7, §8), which is plain IEEE-754 float division semantics.
func opDiv(l, r value.Value, safe bool) (value.Value, error) {
	return numericResult(value.ToNumber(l)/value.ToNumber(r), safe)
}

func opMod(l, r value.Value, safe bool) (value.Value, error) {
	return numericResult(math.Mod(value.ToNumber(l), value.ToNumber(r)), safe)
}

func opPow(l, r value.Value, safe bool) (value.Value, error) {
	return numericResult(math.Pow(value.ToNumber(l), value.ToNumber(r)), safe)
}

// numericResult applies the NaN->0 promotion documented in spec §4.7/§9
// under safeOp; otherwise a NaN result raises.
func numericResult(f float64, safe bool) (value.Value, error) {
	if math.IsNaN(f) {
		if safe {
			return value.Number{Value: 0}, nil
		}
		return nil, errs.Type(errs.ErrMsgNaNResult, "arithmetic")
	}
	return value.Number{Value: f}, nil
}

func typeErrUnlessSafe(safe bool, format string, args ...any) error {
	if safe {
		return nil
	}
	return errs.Type(format, args...)
}

// opBefore implements `before` (spec §4.7).
func opBefore(l, r value.Value) (value.Value, error) {
	s := value.ToStr(r)
	if s == "" {
		return r, nil
	}
	return value.String{Value: value.ToStr(l) + s}, nil
}

// opThen implements `then` (spec §4.7), including the documented `true`
// -> "" left-coercion quirk (preserved as specified, see spec §9).
func opThen(l, r value.Value, safe bool) (value.Value, error) {
	if !value.ToBool(l) {
		return l, nil
	}
	left := l
	if b, ok := l.(value.Bool); ok && b.Value {
		left = value.String{Value: ""}
	}
	return opAdd(left, r, safe)
}

// stringContains implements the substring family (`*=`/`*~=` on
// non-arrays, `^=`/`^~=`/`$=`/`$~=`) with an optional case-fold.
func stringContains(l, r value.Value, ci bool) bool {
	ls, rs := value.ToStr(l), value.ToStr(r)
	if ci {
		ls, rs = strings.ToLower(ls), strings.ToLower(rs)
	}
	return strings.Contains(ls, rs)
}

func stringHasPrefix(l, r value.Value, ci bool) bool {
	ls, rs := value.ToStr(l), value.ToStr(r)
	if ci {
		ls, rs = strings.ToLower(ls), strings.ToLower(rs)
	}
	return strings.HasPrefix(ls, rs)
}

func stringHasSuffix(l, r value.Value, ci bool) bool {
	ls, rs := value.ToStr(l), value.ToStr(r)
	if ci {
		ls, rs = strings.ToLower(ls), strings.ToLower(rs)
	}
	return strings.HasSuffix(ls, rs)
}

// arrayContains implements `*=`/`*~=` when the left operand is an array:
// deep element containment, case-folded for `*~=`.
func arrayContains(arr value.Array, needle value.Value, ci bool) bool {
	for _, item := range arr.Values {
		if ci {
			if strings.EqualFold(value.ToStr(item), value.ToStr(needle)) {
				return true
			}
			continue
		}
		if value.Equal(item, needle) {
			return true
		}
	}
	return false
}
