// Package cmd holds the phpwalk CLI's cobra subcommands (run, lex, parse,
// version), grounded on the teacher's cmd/dwscript/cmd package layout
// (SPEC_FULL.md §2.3/§3).
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Version is set by build flags; unset builds report "dev".
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "phpwalk",
	Short: "A tree-walking evaluator for a C-family scripting language subset",
	Long: `phpwalk parses and evaluates programs written in a large subset of a
dynamically-typed, C-family server-side scripting language: variables and
references, classes/abstract classes/traits, constructors with promoted
properties, and free-function/method dispatch with positional and named
argument binding.`,
	Version: Version,
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
}

func exitWithError(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+msg+"\n", args...)
	os.Exit(1)
}
