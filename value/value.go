// Package value defines the runtime value representation for conscript, the
// tagged Null | Bool | Number | String | Array | Object | Function | Regex
// sum described by the conscript data model. All runtime values implement
// the Value interface; there is no undefined/null distinction — absent or
// undefined results are normalised to Null at their point of production.
package value

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Value is the interface every conscript runtime value implements.
// It is deliberately not interface{}: every concrete kind is enumerated
// below, which keeps type switches over Value exhaustive and catches new
// kinds at compile time rather than at a type-assertion panic.
type Value interface {
	// Kind reports the tag of this value (e.g. "null", "number", "array").
	Kind() string
	// String renders the value for display and for string coercion.
	String() string
}

// Null is the single null value. The language does not distinguish
// undefined from null; both are represented by this value.
type Null struct{}

func (Null) Kind() string   { return "null" }
func (Null) String() string { return "null" }

// Bool is a boolean value.
type Bool struct{ Value bool }

func (b Bool) Kind() string { return "bool" }
func (b Bool) String() string {
	if b.Value {
		return "true"
	}
	return "false"
}

// Number is an IEEE-754 double. Sign of zero is preserved (see Equal),
// since conscript's `=` operator discriminates 0 from -0.
type Number struct{ Value float64 }

func (n Number) Kind() string { return "number" }
func (n Number) String() string {
	if math.IsNaN(n.Value) {
		return "NaN"
	}
	if math.IsInf(n.Value, 1) {
		return "Infinity"
	}
	if math.IsInf(n.Value, -1) {
		return "-Infinity"
	}
	return strconv.FormatFloat(n.Value, 'g', -1, 64)
}

// String is a string value.
type String struct{ Value string }

func (s String) Kind() string   { return "string" }
func (s String) String() string { return s.Value }

// Array is an ordered list of values.
type Array struct{ Values []Value }

func (a Array) Kind() string { return "array" }
func (a Array) String() string {
	parts := make([]string, len(a.Values))
	for i, v := range a.Values {
		parts[i] = v.String()
	}
	return "[" + strings.Join(parts, ",") + "]"
}

// Object is an ordered string-keyed mapping. Ordering is preserved on
// insertion so that String() and iteration are deterministic.
type Object struct {
	keys   []string
	values map[string]Value
}

// NewObject builds an Object from an ordered slice of keys, all of which
// must be present in values.
func NewObject(keys []string, values map[string]Value) *Object {
	return &Object{keys: append([]string(nil), keys...), values: values}
}

// EmptyObject returns a freshly allocated, empty Object.
func EmptyObject() *Object {
	return &Object{values: map[string]Value{}}
}

func (o *Object) Kind() string { return "object" }

func (o *Object) String() string {
	parts := make([]string, 0, len(o.keys))
	for _, k := range o.keys {
		parts = append(parts, fmt.Sprintf("%s:%s", k, o.values[k].String()))
	}
	return "{" + strings.Join(parts, ",") + "}"
}

// Keys returns the object's keys in insertion order.
func (o *Object) Keys() []string { return o.keys }

// Get returns the value stored at key and whether it was present.
func (o *Object) Get(key string) (Value, bool) {
	v, ok := o.values[key]
	return v, ok
}

// Set inserts or overwrites key, appending it to the key order only if new.
func (o *Object) Set(key string, v Value) {
	if _, exists := o.values[key]; !exists {
		o.keys = append(o.keys, key)
	}
	o.values[key] = v
}

// Len reports the number of keys.
func (o *Object) Len() int { return len(o.keys) }

// Merge returns a new Object holding every key of o, overwritten by every
// key of other (used by the `+` operator for object+object, §4.7).
func (o *Object) Merge(other *Object) *Object {
	result := EmptyObject()
	for _, k := range o.keys {
		v, _ := o.values[k]
		result.Set(k, v)
	}
	for _, k := range other.keys {
		v, _ := other.values[k]
		result.Set(k, v)
	}
	return result
}

// Func is a callable value: a native Go function over a Value argument
// list, or one compiled from a conscript function literal (§4.6).
type Func struct {
	Name string
	Call func(args []Value) (Value, error)
}

func (f *Func) Kind() string   { return "function" }
func (f *Func) String() string { return "function" }

// Regex is a compiled regex literal (§4.3.6), carrying its compiled form
// plus the original pattern/flags for display.
type Regex struct {
	Pattern string
	Flags   string
	Re      *regexp.Regexp
}

func (r *Regex) Kind() string   { return "regex" }
func (r *Regex) String() string { return "/" + r.Pattern + "/" + r.Flags }

// Bool/number coercion helpers shared by the operator and identifier layers.

// ToBool reports the truthiness of v, following typical dynamic-language
// rules: null and false are falsy, "" and 0 (either sign) are falsy, empty
// arrays/objects are truthy (presence, not emptiness, governs array/object
// truthiness — only .empty inspects emptiness explicitly).
func ToBool(v Value) bool {
	switch t := v.(type) {
	case Null:
		return false
	case Bool:
		return t.Value
	case Number:
		return t.Value != 0
	case String:
		return t.Value != ""
	default:
		return true
	}
}

// ToNumber coerces v to a float64 following conscript's number-coercion
// rules: numbers pass through, booleans become 0/1, strings parse (empty
// string is 0), null is 0, everything else is NaN.
func ToNumber(v Value) float64 {
	switch t := v.(type) {
	case Number:
		return t.Value
	case Bool:
		if t.Value {
			return 1
		}
		return 0
	case String:
		if strings.TrimSpace(t.Value) == "" {
			return 0
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(t.Value), 64)
		if err != nil {
			return math.NaN()
		}
		return f
	case Null:
		return 0
	default:
		return math.NaN()
	}
}

// ToStr coerces v to a string following conscript's string-coercion rules.
func ToStr(v Value) string {
	if v == nil {
		return ""
	}
	return v.String()
}

// Equal implements conscript's deep structural equality (§3, §4.7,
// the `=` operator): arrays/objects compare elementwise/deep, and 0/-0 are
// distinguished via sign-of-zero (NaN is never equal to anything, including
// itself, matching IEEE-754).
func Equal(a, b Value) bool {
	switch av := a.(type) {
	case Null:
		_, ok := b.(Null)
		return ok
	case Bool:
		bv, ok := b.(Bool)
		return ok && av.Value == bv.Value
	case Number:
		bv, ok := b.(Number)
		if !ok {
			return false
		}
		if math.IsNaN(av.Value) || math.IsNaN(bv.Value) {
			return false
		}
		if av.Value == 0 && bv.Value == 0 {
			return math.Signbit(av.Value) == math.Signbit(bv.Value)
		}
		return av.Value == bv.Value
	case String:
		bv, ok := b.(String)
		if !ok {
			return false
		}
		if zeroish, ok := stringZeroEqual(av.Value, bv.Value); ok {
			return zeroish
		}
		return av.Value == bv.Value
	case Array:
		bv, ok := b.(Array)
		if !ok || len(av.Values) != len(bv.Values) {
			return false
		}
		for i := range av.Values {
			if !Equal(av.Values[i], bv.Values[i]) {
				return false
			}
		}
		return true
	case *Object:
		bv, ok := b.(*Object)
		if !ok || av.Len() != bv.Len() {
			return false
		}
		for _, k := range av.keys {
			bval, present := bv.Get(k)
			if !present || !Equal(av.values[k], bval) {
				return false
			}
		}
		return true
	case *Func:
		bv, ok := b.(*Func)
		return ok && av == bv
	case *Regex:
		bv, ok := b.(*Regex)
		return ok && av.Pattern == bv.Pattern && av.Flags == bv.Flags
	default:
		return false
	}
}

// stringZeroEqual implements the narrow carve-out in §4.7: "0" and "-0" are
// coerced to numeric zero *only* for zero/sign comparison between two
// strings, never as a general string-to-number equality rule.
func stringZeroEqual(a, b string) (equal bool, applies bool) {
	af, aIsZero := zeroStringSign(a)
	bf, bIsZero := zeroStringSign(b)
	if !aIsZero || !bIsZero {
		return false, false
	}
	return math.Signbit(af) == math.Signbit(bf), true
}

func zeroStringSign(s string) (sign float64, isZero bool) {
	switch s {
	case "0":
		return 0, true
	case "-0":
		return math.Copysign(0, -1), true
	default:
		return 0, false
	}
}

// IdentityEqual implements the `<>`/`!=` non-deep identity-inequality
// comparison (§4.7): scalars compare by value, composite values compare
// by identity (pointer/slice-header), never deep.
func IdentityEqual(a, b Value) bool {
	switch av := a.(type) {
	case Null, Bool, Number, String:
		return Equal(a, b)
	case Array:
		bv, ok := b.(Array)
		return ok && sameArrayIdentity(av, bv)
	case *Object:
		bv, ok := b.(*Object)
		return ok && av == bv
	case *Func:
		bv, ok := b.(*Func)
		return ok && av == bv
	case *Regex:
		bv, ok := b.(*Regex)
		return ok && av == bv
	default:
		return false
	}
}

func sameArrayIdentity(a, b Array) bool {
	if len(a.Values) != len(b.Values) {
		return false
	}
	if len(a.Values) == 0 {
		return true
	}
	return &a.Values[0] == &b.Values[0]
}

// Compare implements the `<`, `<=`, `>=`, `>` ordering (§4.7): numbers
// compare numerically, everything else compares lexicographically on its
// string coercion. It returns -1, 0, or 1.
func Compare(a, b Value) int {
	an, aIsNum := a.(Number)
	bn, bIsNum := b.(Number)
	if aIsNum && bIsNum {
		switch {
		case an.Value < bn.Value:
			return -1
		case an.Value > bn.Value:
			return 1
		default:
			return 0
		}
	}
	as, bs := ToStr(a), ToStr(b)
	return strings.Compare(as, bs)
}

// SortedObjectKeys returns o's keys in sorted order, for callers that want
// a deterministic key order distinct from insertion order. Nothing in this
// module calls it.
func SortedObjectKeys(o *Object) []string {
	keys := append([]string(nil), o.Keys()...)
	sort.Strings(keys)
	return keys
}
