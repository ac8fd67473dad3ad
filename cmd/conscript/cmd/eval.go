package cmd

import (
	"fmt"

	"github.com/alecthomas/repr"
	"github.com/conscript-lang/conscript"
	"github.com/conscript-lang/conscript/errs"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var (
	evalVarsFile     string
	evalDefaultLeft  string
	evalSafe         bool
	evalAllowRegex   bool
	evalUnknownsAre  string
)

var evalCmd = &cobra.Command{
	Use:   "eval <conscription>",
	Short: "Compile and evaluate a conscription",
	Long: `Compile a conscription and evaluate it once against a variable
environment loaded from --vars (a YAML or JSON file mapping names to
values) and an optional --default-left scalar.

Examples:
  conscript eval '1 + 2'
  conscript eval '$age >= 18' --vars person.yaml
  conscript eval '"a" | "b"' --default-left '"a"'`,
	Args: cobra.ExactArgs(1),
	RunE: runEval,
}

func init() {
	rootCmd.AddCommand(evalCmd)

	evalCmd.Flags().StringVar(&evalVarsFile, "vars", "", "YAML/JSON file mapping variable names to values")
	evalCmd.Flags().StringVar(&evalDefaultLeft, "default-left", "", "defaultLeft value, as a YAML scalar (e.g. '\"a\"', 42, true)")
	evalCmd.Flags().BoolVar(&evalSafe, "safe", false, "enable safeCall/safeNav/safeOp")
	evalCmd.Flags().BoolVar(&evalAllowRegex, "allow-regex", false, "allow @pattern@ regex literals")
	evalCmd.Flags().StringVar(&evalUnknownsAre, "unknowns", "strings", "unresolved-identifier policy: strings, null, errors")
}

func runEval(_ *cobra.Command, args []string) error {
	source := args[0]

	mode, ok := conscriptUnknownsMode(evalUnknownsAre)
	if !ok {
		return errors.Errorf("invalid --unknowns value %q", evalUnknownsAre)
	}

	opts := []conscript.Option{
		conscript.WithSafe(evalSafe),
		conscript.WithAllowRegexLiterals(evalAllowRegex),
		conscript.WithUnknownsAre(mode),
	}

	vars, err := loadVars(evalVarsFile)
	if err != nil {
		return err
	}
	defaultLeft, err := parseScalar(evalDefaultLeft)
	if err != nil {
		return err
	}

	log.Debugf("compiling conscription: %s", source)
	prog, err := conscript.Compile(source, opts...)
	if err != nil {
		return reportCompileError(err)
	}

	result, err := prog.Exec(vars, defaultLeft)
	if err != nil {
		return errors.Wrap(err, "evaluation failed")
	}

	fmt.Println(repr.String(result, repr.Indent("  ")))
	return nil
}

// conscriptUnknownsMode accepts the exact option spellings from spec §6.
func conscriptUnknownsMode(s string) (conscript.UnknownsMode, bool) {
	switch s {
	case "", "strings", "str":
		return conscript.UnknownsAsStrings, true
	case "null":
		return conscript.UnknownsAsNull, true
	case "errors", "err":
		return conscript.UnknownsAsErrors, true
	default:
		return conscript.UnknownsAsStrings, false
	}
}

// reportCompileError renders a *errs.Error with its source-line caret if
// possible, falling back to a plain wrap for anything else.
func reportCompileError(err error) error {
	if ce, ok := err.(*errs.Error); ok {
		fmt.Println(ce.Format(true))
		return errors.New("compilation failed")
	}
	return errors.Wrap(err, "compilation failed")
}
