package cmd

import (
	"fmt"

	"github.com/conscript-lang/conscript"
	"github.com/spf13/cobra"
)

var checkAllowRegex bool

var checkCmd = &cobra.Command{
	Use:   "check <conscription>",
	Short: "Compile a conscription and report syntax errors, without evaluating it",
	Args:  cobra.ExactArgs(1),
	RunE:  runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().BoolVar(&checkAllowRegex, "allow-regex", false, "allow @pattern@ regex literals")
}

func runCheck(_ *cobra.Command, args []string) error {
	source := args[0]
	_, err := conscript.Compile(source, conscript.WithAllowRegexLiterals(checkAllowRegex))
	if err != nil {
		return reportCompileError(err)
	}
	fmt.Println("ok")
	return nil
}
