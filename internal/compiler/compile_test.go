package compiler_test

import (
	"math"
	"testing"

	"github.com/conscript-lang/conscript/errs"
	"github.com/conscript-lang/conscript/internal/compiler"
	"github.com/conscript-lang/conscript/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func eval(t *testing.T, source string, vars compiler.Vars, defaultLeft value.Value, opts ...compiler.Option) value.Value {
	t.Helper()
	prog, err := compiler.Compile(source, opts...)
	require.NoError(t, err, "compile %q", source)
	v, err := prog.Exec(vars, defaultLeft)
	require.NoError(t, err, "exec %q", source)
	return v
}

func TestCompileRejectsEmptySource(t *testing.T) {
	_, err := compiler.Compile("   ")
	require.Error(t, err)
	assert.True(t, errs.IsCategory(err, errs.CategorySyntax))
}

func TestMathLayer(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want value.Value
	}{
		{"addition", "1 + 2", value.Number{Value: 3}},
		{"precedence left to right", "2 + 3 * 4", value.Number{Value: 20}},
		{"leading negative number", "-1 + 2", value.Number{Value: 1}},
		{"subtraction after operator is still minus", "5 - -2", value.Number{Value: 7}},
		{"string concatenation", `"a" + "b"`, value.String{Value: "ab"}},
		{"modulo", "7 % 3", value.Number{Value: 1}},
		{"power", "2 ^ 3", value.Number{Value: 8}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := eval(t, tt.src, nil, nil)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestComparisonLayer(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want bool
	}{
		{"equality", "1 = 1", true},
		{"inequality operator", "1 != 2", true},
		{"less than", "1 < 2", true},
		{"greater or equal", "2 >= 2", true},
		{"string prefix", `"hello" ^= "he"`, true},
		{"string suffix", `"hello" $= "lo"`, true},
		{"contains", `"hello" *= "ell"`, true},
		{"in reverses operands", `"ell" in "hello"`, true},
		{"case-insensitive equality", `"HELLO" ~= "hello"`, true},
		{"is type predicate", "1 is number", true},
		{"is not negation", `"x" is not number`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := eval(t, tt.src, nil, nil)
			assert.Equal(t, value.Bool{Value: tt.want}, got)
		})
	}
}

func TestIsNotWordBoundary(t *testing.T) {
	// "main" contains "in" but must not be mis-tokenized as the `in` operator.
	vars := compiler.MapVars{"main": value.Number{Value: 1}}
	got := eval(t, "main", vars, nil)
	assert.Equal(t, value.Number{Value: 1}, got)
}

func TestBooleanLayerShortCircuits(t *testing.T) {
	got := eval(t, "false & (0/0)", nil, nil)
	assert.Equal(t, value.Bool{Value: false}, got, "short-circuiting `&` must not evaluate the right side")

	got = eval(t, `"left" | "right"`, nil, nil)
	assert.Equal(t, value.String{Value: "left"}, got, "`|` yields the truthy left operand's own value, not a forced bool")
}

func TestTernary(t *testing.T) {
	got := eval(t, `1 < 2 ? "yes" : "no"`, nil, nil)
	assert.Equal(t, value.String{Value: "yes"}, got)

	got = eval(t, `1 > 2 ? "yes" : "no"`, nil, nil)
	assert.Equal(t, value.String{Value: "no"}, got)
}

func TestTernaryElvisShorthand(t *testing.T) {
	got := eval(t, `0 ?: "fallback"`, nil, nil)
	assert.Equal(t, value.String{Value: "fallback"}, got)

	got = eval(t, `"set" ?: "fallback"`, nil, nil)
	assert.Equal(t, value.String{Value: "set"}, got)
}

func TestDefaultLeftProjection(t *testing.T) {
	got := eval(t, "test", nil, value.String{Value: "test"})
	assert.Equal(t, value.Bool{Value: true}, got, "a bare non-bool comparison chunk projects to equality against defaultLeft")

	got = eval(t, "other", nil, value.String{Value: "test"})
	assert.Equal(t, value.Bool{Value: false}, got)
}

func TestStringLiteralsAndEscapes(t *testing.T) {
	got := eval(t, `"a\nb"`, nil, nil)
	assert.Equal(t, value.String{Value: "a\nb"}, got)

	got = eval(t, `'single quoted'`, nil, nil)
	assert.Equal(t, value.String{Value: "single quoted"}, got)
}

func TestArrayLiteral(t *testing.T) {
	got := eval(t, "[1, 2, 3]", nil, nil)
	assert.Equal(t, value.Array{Values: []value.Value{
		value.Number{Value: 1}, value.Number{Value: 2}, value.Number{Value: 3},
	}}, got)
}

func TestArrayProperties(t *testing.T) {
	assert.Equal(t, value.Number{Value: 3}, eval(t, "[1,2,3].length", nil, nil))
	assert.Equal(t, value.Number{Value: 3}, eval(t, "[1,2,3].last", nil, nil))
	assert.Equal(t, value.Bool{Value: false}, eval(t, "[1,2,3].empty", nil, nil))
	assert.Equal(t, value.Bool{Value: true}, eval(t, "[].empty", nil, nil))
}

func TestKeywords(t *testing.T) {
	assert.Equal(t, value.Bool{Value: true}, eval(t, "true", nil, nil))
	assert.Equal(t, value.Bool{Value: false}, eval(t, "false", nil, nil))
	assert.Equal(t, value.Null{}, eval(t, "null", nil, nil))
	got := eval(t, "infinity", nil, nil).(value.Number)
	assert.True(t, math.IsInf(got.Value, 1))
	got = eval(t, "-infinity", nil, nil).(value.Number)
	assert.True(t, math.IsInf(got.Value, -1))
}

func TestNumberLiteralsWithExponent(t *testing.T) {
	assert.Equal(t, value.Number{Value: 150}, eval(t, "1.5e2", nil, nil))
	assert.Equal(t, value.Number{Value: 0.15}, eval(t, "1.5e-1", nil, nil))
}

func TestNumberLiteralDuplicateDecimalPoint(t *testing.T) {
	_, err := compiler.Compile("1.2.3")
	require.Error(t, err)
	assert.True(t, errs.IsCategory(err, errs.CategorySyntax))
}

func TestDollarVariable(t *testing.T) {
	vars := compiler.MapVars{"age": value.Number{Value: 21}}
	assert.Equal(t, value.Number{Value: 21}, eval(t, "$age", vars, nil))
}

func TestUnknownsAreStringsByDefault(t *testing.T) {
	assert.Equal(t, value.String{Value: "banana"}, eval(t, "banana", nil, nil))
}

func TestUnknownsAreErrors(t *testing.T) {
	_, err := eval0(t, "banana", nil, nil, compiler.WithUnknownsAre(compiler.UnknownsAsErrors))
	require.Error(t, err)
	assert.True(t, errs.IsCategory(err, errs.CategoryReference))
}

func eval0(t *testing.T, source string, vars compiler.Vars, defaultLeft value.Value, opts ...compiler.Option) (value.Value, error) {
	t.Helper()
	prog, err := compiler.Compile(source, opts...)
	require.NoError(t, err)
	return prog.Exec(vars, defaultLeft)
}

func TestLeadingDotRequiresDefaultLeft(t *testing.T) {
	_, err := eval0(t, ".length", nil, nil)
	require.Error(t, err)
	assert.True(t, errs.IsCategory(err, errs.CategoryType))

	got := eval(t, ".length = 1", nil, value.Array{Values: []value.Value{value.Number{Value: 1}}})
	assert.Equal(t, value.Bool{Value: true}, got)
}

func TestLeadingDotSafeNav(t *testing.T) {
	got := eval(t, ".length", nil, nil, compiler.WithSafeNav(true))
	assert.Equal(t, value.Null{}, got)
}

func TestFunctionLiteralAndCall(t *testing.T) {
	got := eval(t, "(x,y){x+y}(2,3)", nil, nil)
	assert.Equal(t, value.Number{Value: 5}, got)
}

func TestArrayMapWithFunctionLiteral(t *testing.T) {
	got := eval(t, "[1,2,3].map((x){x*2})", nil, nil)
	assert.Equal(t, value.Array{Values: []value.Value{
		value.Number{Value: 2}, value.Number{Value: 4}, value.Number{Value: 6},
	}}, got)
}

func TestRegexLiteralRequiresOption(t *testing.T) {
	got := eval(t, `"abc" matches @a.c@`, nil, nil, compiler.WithAllowRegexLiterals(true))
	assert.Equal(t, value.Bool{Value: true}, got)
}

func TestBareWordWithRegexLiteralsDisabled(t *testing.T) {
	// With allowRegexLiterals left off (the default), a bare word still
	// resolves through the fallback-identifier rule to its own text.
	got := eval(t, `test`, nil, nil)
	assert.Equal(t, value.String{Value: "test"}, got)
}

func TestDebugPrefixInvokesSink(t *testing.T) {
	var gotSource string
	var gotValue value.Value
	sink := func(source string, v value.Value) {
		gotSource = source
		gotValue = v
	}
	got := eval(t, "debug 1+1", nil, nil, compiler.WithDebugOutput(sink))
	assert.Equal(t, value.Number{Value: 2}, got)
	// `debug` is a value-layer prefix, so it binds tighter than `+`: the
	// sink sees only the left operand "1", and the sum is taken afterwards.
	assert.Equal(t, "1", gotSource)
	assert.Equal(t, value.Number{Value: 1}, gotValue)
}

func TestSafeOpPromotesNaNToZero(t *testing.T) {
	_, err := eval0(t, "0/0", nil, nil)
	require.Error(t, err)
	assert.True(t, errs.IsCategory(err, errs.CategoryType))

	got := eval(t, "0/0", nil, nil, compiler.WithSafeOp(true))
	assert.Equal(t, value.Number{Value: 0}, got)
}

func TestExecOptionsOverrideCompileOptions(t *testing.T) {
	prog, err := compiler.Compile(".length", compiler.WithSafeNav(false))
	require.NoError(t, err)
	_, err = prog.Exec(nil, nil)
	require.Error(t, err)

	v, err := prog.Exec(nil, nil, compiler.WithSafeNav(true))
	require.NoError(t, err)
	assert.Equal(t, value.Null{}, v)
}
