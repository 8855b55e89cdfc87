// Command cssparse parses CSS files and prints the resulting structure.
//
// By default it prints the parsed rule tree, including selector lists
// and declarations. With --tokens it prints the token stream instead,
// one token per line. The exit code is 0 whenever the file could be
// read, even if parse errors were recovered along the way.
package main

import (
	"fmt"
	"os"

	"github.com/lukehoban/cssparse/css"
	"github.com/spf13/cobra"
)

var (
	showTokens bool
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "cssparse [--tokens] <file.css>",
	Short: "Parse a CSS file and print its structure",
	Long: `cssparse parses a CSS file with a CSS Syntax Level 3 conformant parser
and prints the result.

Without flags it prints the parsed rule tree: at-rules, qualified rules
with their selector lists, and declarations. With --tokens it prints the
raw token stream instead, which is useful for debugging the tokenizer.

Parse errors are recovered, not fatal; set CSSPARSER_PARSE_ERRORS=1 to
see them on stderr with line:column positions.`,
	Args:          cobra.ExactArgs(1),
	RunE:          run,
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() {
	rootCmd.Flags().BoolVar(&showTokens, "tokens", false, "print the token stream instead of the rule tree")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "print a summary after parsing")
}

func run(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", args[0], err)
	}

	if showTokens {
		return dumpTokens(data)
	}
	return dumpTree(data)
}

func dumpTokens(data []byte) error {
	diag := &css.Diagnostics{}
	tokenizer := css.NewTokenizerWithDiagnostics(data, diag)
	count := 0
	for {
		tok := tokenizer.Next()
		fmt.Println(tok)
		if tok.Type == css.EOFToken {
			break
		}
		count++
	}
	if verbose {
		fmt.Printf("%d tokens, %d parse errors\n", count, len(diag.Errors))
	}
	return nil
}

func dumpTree(data []byte) error {
	diag := &css.Diagnostics{}
	sheet := css.ParseWithDiagnostics(data, diag)
	sheet.Dump(os.Stdout)
	if verbose {
		fmt.Printf("%d rules, %d parse errors\n", len(sheet.Rules), len(diag.Errors))
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
