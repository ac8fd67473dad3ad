package cmd

import (
	"os"

	"github.com/conscript-lang/conscript"
	"github.com/conscript-lang/conscript/value"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// loadVars reads a YAML (or JSON, which is valid YAML) document from
// path mapping variable names to values, and adapts it to conscript.Vars.
// An empty path yields nil Vars (every identifier is unresolved).
func loadVars(path string) (conscript.Vars, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading vars file %s", path)
	}
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrapf(err, "parsing vars file %s", path)
	}
	vars := make(conscript.MapVars, len(raw))
	for k, v := range raw {
		vars[k] = yamlToValue(v)
	}
	return vars, nil
}

// parseScalar decodes a single YAML scalar (used for --default-left) into
// a conscript.Value.
func parseScalar(text string) (conscript.Value, error) {
	if text == "" {
		return nil, nil
	}
	var raw any
	if err := yaml.Unmarshal([]byte(text), &raw); err != nil {
		return nil, errors.Wrapf(err, "parsing scalar %q", text)
	}
	return yamlToValue(raw), nil
}

// yamlToValue converts a value decoded by yaml.v3 into `any` (maps,
// slices, and scalars) into the conscript Value sum.
func yamlToValue(v any) conscript.Value {
	switch t := v.(type) {
	case nil:
		return value.Null{}
	case bool:
		return value.Bool{Value: t}
	case int:
		return value.Number{Value: float64(t)}
	case int64:
		return value.Number{Value: float64(t)}
	case float64:
		return value.Number{Value: t}
	case string:
		return value.String{Value: t}
	case []any:
		items := make([]value.Value, len(t))
		for i, item := range t {
			items[i] = yamlToValue(item)
		}
		return value.Array{Values: items}
	case map[string]any:
		keys := make([]string, 0, len(t))
		values := make(map[string]value.Value, len(t))
		for k, item := range t {
			keys = append(keys, k)
			values[k] = yamlToValue(item)
		}
		return value.NewObject(keys, values)
	default:
		return value.Null{}
	}
}
