package cmd

import (
	"fmt"
	"os"

	"github.com/scriptlang/phpwalk/internal/evaluator"
	"github.com/scriptlang/phpwalk/internal/lexer"
	"github.com/scriptlang/phpwalk/internal/parser"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run <file>",
	Short: "Parse and evaluate a source file",
	Long: `Read a source file, parse it, and evaluate it (spec.md §1/§6).

Program output is written to stdout, followed by any warnings/fatal
diagnostics formatted as "PHP <LEVEL>: <message> in <path> on line <N>".
The process exits nonzero when the file cannot be opened or a fatal
diagnostic propagates from the top-level statement loop.`,
	Args: cobra.ExactArgs(1),
	RunE: runFile,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runFile(_ *cobra.Command, args []string) error {
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

	ev := evaluator.New(evaluator.Config{Path: path})
	fatal := ev.Run(prog)

	fmt.Print(ev.Output())
	for _, w := range ev.Warnings() {
		fmt.Println(w.Format())
	}

	if fatal != nil {
		fmt.Println(fatal.Format())
		return fmt.Errorf("evaluation failed")
	}
	return nil
}
