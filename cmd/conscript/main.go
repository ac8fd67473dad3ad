// Command conscript is a small CLI for trying conscriptions from a
// terminal: compiling one, checking it for syntax errors, and evaluating
// it against a JSON/YAML variable environment.
package main

import (
	"os"

	"github.com/conscript-lang/conscript/cmd/conscript/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
