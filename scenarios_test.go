package conscript_test

import (
	"fmt"
	"testing"

	"github.com/conscript-lang/conscript"
	"github.com/conscript-lang/conscript/value"
	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/stretchr/testify/require"
)

// TestEndToEndScenarios snapshots the result of every end-to-end worked
// example, the way the teacher's fixture runner snapshots a whole
// program's output (internal/interp/fixture_test.go), adapted here to a
// handful of named scenarios rather than an on-disk fixture corpus, since
// conscript has no multi-statement program format to snapshot a trace of.
func TestEndToEndScenarios(t *testing.T) {
	scenarios := []struct {
		name        string
		source      string
		vars        conscript.Vars
		defaultLeft conscript.Value
		opts        []conscript.Option
	}{
		{
			name:   "and-of-two-equalities",
			source: "month=10 & day=28",
			vars:   conscript.MapVars{"month": value.Number{Value: 10}, "day": value.Number{Value: 28}},
		},
		{
			name:   "mixed-boolean-range-check",
			source: "(x>0 & x<=y-1) | x=999",
			vars:   conscript.MapVars{"x": value.Number{Value: 51}, "y": value.Number{Value: 100}},
		},
		{
			name:   "array-map-equality",
			source: "[1,2,3].map((x){x*2}) = [2,4,6]",
			vars:   conscript.MapVars{},
		},
		{
			name:   "regex-literal-case-insensitive",
			source: "\"test\" matches @^T@i",
			opts:   []conscript.Option{conscript.WithAllowRegexLiterals(true)},
		},
		{
			name:        "default-left-chain",
			source:      ">2 & +1=4 & -  1 = 2",
			defaultLeft: value.Number{Value: 3},
		},
		{
			name:   "unknown-identifier-as-string",
			source: `unknown = "unknown"`,
		},
	}

	for _, sc := range scenarios {
		t.Run(sc.name, func(t *testing.T) {
			result, err := conscript.Eval(sc.source, sc.vars, sc.defaultLeft, sc.opts...)
			require.NoError(t, err)
			snaps.MatchSnapshot(t, fmt.Sprintf("%s = %s", sc.source, result.String()))
		})
	}
}

func TestEndToEndScenarioUnknownsAsErrors(t *testing.T) {
	_, err := conscript.Eval(`unknown = "unknown"`, nil, nil, conscript.WithUnknownsAre(conscript.UnknownsAsErrors))
	require.Error(t, err)
}
