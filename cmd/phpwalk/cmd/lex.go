package cmd

import (
	"fmt"
	"os"

	"github.com/scriptlang/phpwalk/internal/lexer"
	"github.com/scriptlang/phpwalk/internal/token"
	"github.com/spf13/cobra"
)

var showPos bool

var lexCmd = &cobra.Command{
	Use:   "lex <file>",
	Short: "Tokenize a source file and print the resulting tokens",
	Long: `Tokenize (lex) a program and print the resulting tokens, useful for
debugging the lexer that feeds the parser (SPEC_FULL.md §2.1).`,
	Args: cobra.ExactArgs(1),
	RunE: lexFile,
}

func init() {
	rootCmd.AddCommand(lexCmd)
	lexCmd.Flags().BoolVar(&showPos, "show-pos", false, "show token positions (line:column)")
}

func lexFile(_ *cobra.Command, args []string) error {
	path := args[0]
	data, err := os.ReadFile(path)
	if err != nil {
		exitWithError("failed to open %s: %v", path, err)
	}

	l := lexer.New(string(data))
	for {
		tok := l.NextToken()
		if showPos {
			fmt.Printf("%-14s %q @%d:%d\n", tok.Type, tok.Literal, tok.Pos.Line, tok.Pos.Column)
		} else {
			fmt.Printf("%-14s %q\n", tok.Type, tok.Literal)
		}
		if tok.Type == token.EOF {
			break
		}
	}
	return nil
}
