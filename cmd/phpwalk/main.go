// Command phpwalk is the CLI driver (spec.md §1/§6): read a source file,
// hand it to the parser, evaluate the result, and print output followed by
// formatted diagnostics.
package main

import (
	"os"

	"github.com/scriptlang/phpwalk/cmd/phpwalk/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
