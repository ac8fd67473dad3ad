package cmd

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags).
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var (
	verbose bool
	log     = logrus.New()
)

var rootCmd = &cobra.Command{
	Use:   "conscript",
	Short: "Compile and evaluate conscriptions",
	Long: `conscript is a CLI for the conscript expression/predicate language.

A conscription is a single-expression conscript program: a ternary of
boolean chunks, each a chain of comparisons over math expressions, over
a small value grammar (literals, variables, property chains, function
literals). See "conscript check" and "conscript eval".`,
	Version:           Version,
	PersistentPreRunE: setUpLogging,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose (debug-level) logging")
}

func setUpLogging(*cobra.Command, []string) error {
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	}
	return nil
}
