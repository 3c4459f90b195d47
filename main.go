// This is the main-driver for our compiler.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ninecc/minic/compiler"
	"github.com/ninecc/minic/diag"
)

var debug bool

var command = &cobra.Command{
	Use:   "minic <source-file>",
	Short: "Compile a strict subset of C to x86-64 assembly",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		path := args[0]

		src, err := os.ReadFile(path)
		if err != nil {
			diag.Fatal("%s", err)
		}

		text := string(src)
		if len(text) == 0 || text[len(text)-1] != '\n' {
			text += "\n"
		}

		c := compiler.New(path, text)
		c.SetDebug(debug)
		fmt.Print(c.Compile())
	},
}

func main() {
	command.Flags().BoolVar(&debug, "debug", false, "insert debug \"stuff\" (int3) in the generated output")

	// cobra.Command.Args already enforces the one-positional-argument
	// contract, but it reports its own usage error and exit code for a
	// wrong count; this compiler's contract is simpler, so we silence
	// cobra's usage output and translate any error into exit status 1.
	command.SilenceUsage = true
	command.SilenceErrors = true

	if err := command.Execute(); err != nil {
		diag.Fatal("%s", err)
	}
}
