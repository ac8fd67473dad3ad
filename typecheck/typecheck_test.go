package typecheck_test

import (
	"testing"

	"github.com/conscript-lang/conscript/typecheck"
	"github.com/conscript-lang/conscript/value"
)

func TestDefaultPrimitiveDescriptors(t *testing.T) {
	d := typecheck.Default()
	tests := []struct {
		name       string
		v          value.Value
		descriptor string
		want       bool
	}{
		{"number matches number", value.Number{Value: 1}, "number", true},
		{"number matches int when whole", value.Number{Value: 4}, "int", true},
		{"fractional number does not match int", value.Number{Value: 4.5}, "int", false},
		{"string matches string", value.String{Value: "x"}, "string", true},
		{"string does not match number", value.String{Value: "x"}, "number", false},
		{"bool matches boolean", value.Bool{Value: true}, "boolean", true},
		{"bool matches bool alias", value.Bool{Value: true}, "bool", true},
		{"array matches array", value.Array{}, "array", true},
		{"object matches object", value.EmptyObject(), "object", true},
		{"null matches null", value.Null{}, "null", true},
		{"case-insensitive descriptor", value.Number{Value: 1}, "NUMBER", true},
		{"surrounding whitespace trimmed", value.Number{Value: 1}, "  number  ", true},
		{"unknown descriptor never matches", value.Number{Value: 1}, "frobnicator", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := d.Check(tt.v, tt.descriptor); got != tt.want {
				t.Errorf("Check(%v, %q) = %v, want %v", tt.v, tt.descriptor, got, tt.want)
			}
		})
	}
}

func TestDefaultEmptyModifier(t *testing.T) {
	d := typecheck.Default()
	tests := []struct {
		name       string
		v          value.Value
		descriptor string
		want       bool
	}{
		{"empty array", value.Array{}, "empty array", true},
		{"nonempty array", value.Array{Values: []value.Value{value.Number{Value: 1}}}, "empty array", false},
		{"empty string", value.String{Value: ""}, "empty string", true},
		{"nonempty string", value.String{Value: "x"}, "empty string", false},
		{"empty object", value.EmptyObject(), "empty object", true},
		{"bare empty matches null", value.Null{}, "empty", true},
		{"kind mismatch on empty", value.Array{}, "empty object", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := d.Check(tt.v, tt.descriptor); got != tt.want {
				t.Errorf("Check(%v, %q) = %v, want %v", tt.v, tt.descriptor, got, tt.want)
			}
		})
	}
}

type nullerValue struct{ null bool }

func (n nullerValue) Kind() string   { return "custom" }
func (n nullerValue) String() string { return "custom" }
func (n nullerValue) IsNull() bool   { return n.null }

func TestDefaultHonoursNuller(t *testing.T) {
	d := typecheck.Default()
	if !d.Check(nullerValue{null: true}, "empty") {
		t.Fatalf("expected a Nuller reporting null to satisfy 'empty'")
	}
	if d.Check(nullerValue{null: false}, "empty") {
		t.Fatalf("expected a Nuller reporting non-null not to satisfy 'empty'")
	}
}

func TestFuncAdapter(t *testing.T) {
	var calledWith string
	checker := typecheck.Func(func(v value.Value, descriptor string) bool {
		calledWith = descriptor
		return descriptor == "ok"
	})
	if !checker.Check(value.Null{}, "ok") {
		t.Fatalf("expected Func adapter to report true for a matching descriptor")
	}
	if calledWith != "ok" {
		t.Fatalf("Func adapter must forward the descriptor verbatim, got %q", calledWith)
	}
}
