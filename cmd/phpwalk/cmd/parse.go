package cmd

import (
	"fmt"
	"os"

	"github.com/scriptlang/phpwalk/internal/lexer"
	"github.com/scriptlang/phpwalk/internal/parser"
	"github.com/spf13/cobra"
)

var parseCmd = &cobra.Command{
	Use:   "parse <file>",
	Short: "Parse a source file and report parse errors",
	Long: `Parse a program and report success or the accumulated parse errors,
without evaluating it.`,
	Args: cobra.ExactArgs(1),
	RunE: parseFile,
}

func init() {
	rootCmd.AddCommand(parseCmd)
}

func parseFile(_ *cobra.Command, args []string) error {
	path := args[0]
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}

	l := lexer.New(string(data))
	p := parser.New(l)
	prog := p.ParseProgram()

	if errs := p.Errors(); len(errs) > 0 {
		for _, msg := range errs {
			fmt.Fprintf(os.Stderr, "PHP Parse error: %s in %s\n", msg, path)
		}
		return fmt.Errorf("parsing failed with %d error(s)", len(errs))
	}

	fmt.Printf("%s: %d top-level statement(s), no parse errors\n", path, len(prog.Statements))
	return nil
}
