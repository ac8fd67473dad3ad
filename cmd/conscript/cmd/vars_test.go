package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/conscript-lang/conscript/value"
)

func TestYamlToValue(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want value.Value
	}{
		{"nil", nil, value.Null{}},
		{"bool", true, value.Bool{Value: true}},
		{"int", 42, value.Number{Value: 42}},
		{"float", 1.5, value.Number{Value: 1.5}},
		{"string", "hi", value.String{Value: "hi"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := yamlToValue(tt.in)
			if got.Kind() != tt.want.Kind() || got.String() != tt.want.String() {
				t.Errorf("yamlToValue(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestYamlToValueNestedArray(t *testing.T) {
	got := yamlToValue([]any{1, "two", nil})
	arr, ok := got.(value.Array)
	if !ok {
		t.Fatalf("expected an Array, got %T", got)
	}
	if len(arr.Values) != 3 {
		t.Fatalf("len = %d, want 3", len(arr.Values))
	}
	if arr.Values[1].String() != "two" {
		t.Errorf("arr.Values[1] = %v, want \"two\"", arr.Values[1])
	}
}

func TestYamlToValueNestedObject(t *testing.T) {
	got := yamlToValue(map[string]any{"a": 1, "b": "x"})
	obj, ok := got.(*value.Object)
	if !ok {
		t.Fatalf("expected an Object, got %T", got)
	}
	if obj.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", obj.Len())
	}
	v, ok := obj.Get("a")
	if !ok || v.String() != "1" {
		t.Errorf("obj.Get(\"a\") = (%v, %v), want (1, true)", v, ok)
	}
}

func TestParseScalarEmptyIsNil(t *testing.T) {
	v, err := parseScalar("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != nil {
		t.Fatalf("expected a nil Value for empty text, got %v", v)
	}
}

func TestParseScalar(t *testing.T) {
	v, err := parseScalar("42")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.String() != "42" {
		t.Errorf("parseScalar(\"42\") = %v, want 42", v)
	}
}

func TestLoadVarsEmptyPath(t *testing.T) {
	vars, err := loadVars("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if vars != nil {
		t.Fatalf("expected nil Vars for an empty path, got %v", vars)
	}
}

func TestLoadVarsFromYAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "vars.yaml")
	if err := os.WriteFile(path, []byte("name: Ada\nage: 37\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	vars, err := loadVars(path)
	if err != nil {
		t.Fatalf("loadVars: %v", err)
	}
	v, ok := vars.Lookup("name")
	if !ok || v.String() != "Ada" {
		t.Errorf("Lookup(\"name\") = (%v, %v), want (Ada, true)", v, ok)
	}
}
