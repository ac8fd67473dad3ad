// Package typecheck defines the external type-predicate service that
// backs conscript's `is` / `is not` operator (spec §6). Conscript's core
// treats the right-hand descriptor string as opaque; this package supplies
// a default Checker covering the primitive-type and `empty` vocabulary
// named in spec §6, and lets embedders plug in their own via
// conscript.WithTypeChecker, the way the teacher lets callers extend its
// interpreter by registering native functions
// (examples/ffi/main.go's engine.RegisterFunction).
package typecheck

import (
	"strings"

	"github.com/conscript-lang/conscript/value"
)

// Checker is conscript's single type-predicate extension point: given a
// value and a descriptor string (e.g. "number", "empty array", "Date"), it
// reports whether the value satisfies the descriptor. The core forwards
// the left operand and composes the result with logical NOT for `is not`/
// `!is`; it never interprets the descriptor itself.
type Checker interface {
	Check(v value.Value, descriptor string) bool
}

// Func adapts a plain function to Checker.
type Func func(v value.Value, descriptor string) bool

func (f Func) Check(v value.Value, descriptor string) bool { return f(v, descriptor) }

// Default returns the built-in Checker covering the primitive-type names
// and `empty` modifier enumerated in spec §6: number, int, float, string,
// boolean/bool, array, object, function, null, regex, and `empty <kind>`
// for array/object/string. Descriptors are matched case-insensitively and
// with surrounding whitespace trimmed, since conscript identifiers
// (including the right operand of `is`) may carry incidental spacing.
func Default() Checker {
	return Func(defaultCheck)
}

func defaultCheck(v value.Value, descriptor string) bool {
	descriptor = strings.TrimSpace(descriptor)
	if rest, ok := cutPrefixFold(descriptor, "empty "); ok {
		return isEmpty(v, strings.TrimSpace(rest))
	}
	switch strings.ToLower(descriptor) {
	case "number":
		_, ok := v.(value.Number)
		return ok
	case "int", "integer":
		n, ok := v.(value.Number)
		return ok && n.Value == float64(int64(n.Value))
	case "float":
		_, ok := v.(value.Number)
		return ok
	case "string":
		_, ok := v.(value.String)
		return ok
	case "boolean", "bool":
		_, ok := v.(value.Bool)
		return ok
	case "array":
		_, ok := v.(value.Array)
		return ok
	case "object":
		_, ok := v.(*value.Object)
		return ok
	case "function":
		_, ok := v.(*value.Func)
		return ok
	case "regexp", "regex":
		_, ok := v.(*value.Regex)
		return ok
	case "null":
		_, ok := v.(value.Null)
		return ok
	case "empty":
		return isEmpty(v, "")
	default:
		return false
	}
}

func isEmpty(v value.Value, kind string) bool {
	switch t := v.(type) {
	case Nuller:
		return t.IsNull()
	case value.Null:
		return true
	case value.Array:
		if kind != "" && kind != "array" {
			return false
		}
		return len(t.Values) == 0
	case *value.Object:
		if kind != "" && kind != "object" {
			return false
		}
		return t.Len() == 0
	case value.String:
		if kind != "" && kind != "string" {
			return false
		}
		return t.Value == ""
	default:
		return false
	}
}

// Nuller lets a host-supplied value report its own emptiness for "empty"
// without conscript needing to know its concrete type.
type Nuller interface {
	IsNull() bool
}

func cutPrefixFold(s, prefix string) (string, bool) {
	if len(s) < len(prefix) {
		return s, false
	}
	if strings.EqualFold(s[:len(prefix)], prefix) {
		return s[len(prefix):], true
	}
	return s, false
}
